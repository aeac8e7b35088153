package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/memory-mosaic/internal/core"
)

type colorPair struct {
	fg, bg core.Color
}

// Renderer converts screen buffers to styled strings, caching one
// lipgloss style per foreground/background pair.
type Renderer struct {
	styles map[colorPair]lipgloss.Style
}

// NewRenderer creates a renderer with an empty style cache.
func NewRenderer() *Renderer {
	return &Renderer{styles: make(map[colorPair]lipgloss.Style)}
}

func (r *Renderer) style(p colorPair) lipgloss.Style {
	if s, ok := r.styles[p]; ok {
		return s
	}
	s := lipgloss.NewStyle()
	if code, ok := p.fg.Code(); ok {
		s = s.Foreground(lipgloss.Color(strconv.Itoa(int(code))))
	}
	if code, ok := p.bg.Code(); ok {
		s = s.Background(lipgloss.Color(strconv.Itoa(int(code))))
	}
	r.styles[p] = s
	return s
}

// Render converts a Screen buffer to a styled string for display.
// Adjacent cells with the same colors share one styled run.
func (r *Renderer) Render(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y, h := 0, s.Height(); y < h; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			colors := colorPair{cell.FG, cell.BG}

			run.Reset()
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if (colorPair{cell.FG, cell.BG}) != colors {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if colors == (colorPair{}) {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(r.style(colors).Render(run.String()))
		}
	}
	return sb.String()
}

// RenderScreen renders with a throwaway style cache.
func RenderScreen(s *core.Screen) string {
	return NewRenderer().Render(s)
}
