package mosaic

import (
	"fmt"

	"github.com/vovakirdan/memory-mosaic/internal/core"
	"github.com/vovakirdan/memory-mosaic/internal/puzzle"
)

const (
	hudRows    = 3 // title, timer line, warning
	footerRows = 2 // toast, controls
	minCellW   = 4
	minCellH   = 2
	refGap     = 4 // columns between the board and the reference picture
	lowTime    = 60
)

const controlsHint = "arrows move  space flip/drop  g grab  f finish  p pause  q quit"

// layout is where the board and the reference picture go on screen.
type layout struct {
	grid    core.GridLayout
	ref     core.Rect
	showRef bool
}

// relayout fits the board to the screen. Cells keep a 2:1 width to height
// ratio so square pictures stay square.
func (g *Game) relayout() {
	if g.board == nil {
		return
	}
	g.layout, g.tooSmall = computeLayout(g.screenW, g.screenH, g.board.Size())
}

func computeLayout(screenW, screenH, n int) (layout, bool) {
	availH := screenH - hudRows - footerRows
	cellH := (availH - (n - 1)) / n
	cellW := min(cellH*2, (screenW-2-(n-1))/n)
	if cellH < minCellH || cellW < minCellW {
		return layout{}, true
	}

	l := layout{grid: core.GridLayout{N: n, CellW: cellW, CellH: cellH, Gap: 1}}
	gridW := l.grid.Bounds().W
	gridH := l.grid.Bounds().H

	refW := gridW / 2
	refH := refW / 2
	total := gridW
	if refH >= 2 && gridW+refGap+refW <= screenW-2 {
		l.showRef = true
		total += refGap + refW
	}

	x := (screenW - total) / 2
	y := hudRows + (availH-gridH)/2
	l.grid.Origin = core.NewRect(x, y, 0, 0)
	if l.showRef {
		l.ref = core.NewRect(x+gridW+refGap, y+1, refW, refH)
	}
	return l, false
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		renderTooSmall(dst)
		return
	}

	g.renderHUD(dst)
	g.renderBoard(dst)
	g.renderReference(dst)
	g.renderFooter(dst)
	g.renderOverlays(dst)
}

// renderTooSmall shows a "window too small" message.
func renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorYellow)
	dst.DrawTextCentered(y+1, "Please resize terminal", core.ColorDefault)
}

// renderHUD draws the title, the countdown and the lock progress.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawTextCentered(0, g.Title(), core.ColorBrightWhite)

	left := g.layout.grid.Origin.X
	timeColor := core.ColorGreen
	if g.countdown.Remaining() <= lowTime {
		timeColor = core.ColorRed
	}
	dst.DrawTextColor(left, 1, "Time Left: "+g.countdown.Format(), timeColor)

	n := g.board.Size()
	info := fmt.Sprintf("Locked %d/%d  Rule: %s", g.board.LockedCount(), n*n, g.board.Rule().Name())
	right := g.layout.grid.Bounds().Right()
	if g.layout.showRef {
		right = g.layout.ref.Right()
	}
	dst.DrawTextColor(max(right-len(info), left), 1, info, core.ColorGray)

	if g.board.IsPlaceholder() {
		dst.DrawTextCentered(2, placeholderWarning, core.ColorYellow)
	}
}

// renderBoard draws every tile plus the cursor and drag markers.
func (g *Game) renderBoard(dst *core.Screen) {
	n := g.board.Size()
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			tile, _ := g.board.At(row, col)
			renderTile(dst, g.layout.grid.Cell(row, col), tile)
		}
	}

	if g.finished {
		return
	}

	cell := g.layout.grid.Cell(g.cursor.Row, g.cursor.Col)
	markColor := core.ColorBrightYellow
	if g.holding || g.dragging {
		markColor = core.ColorBrightCyan
	}
	mid := cell.Y + cell.H/2
	dst.SetCell(cell.X-1, mid, core.Cell{Rune: '▶', FG: markColor})
	dst.SetCell(cell.Right(), mid, core.Cell{Rune: '◀', FG: markColor})

	for _, id := range g.grabbed() {
		if tile, ok := g.board.Find(id); ok {
			c := g.layout.grid.Cell(tile.Current.Row, tile.Current.Col)
			dst.SetCell(c.X, c.Y, core.Cell{Rune: '●', FG: core.ColorBrightCyan, BG: core.ColorBlack})
		}
	}
}

// grabbed returns the tiles currently held by keyboard or mouse.
func (g *Game) grabbed() []puzzle.TileID {
	var ids []puzzle.TileID
	if g.holding {
		ids = append(ids, g.held)
	}
	if g.dragging {
		ids = append(ids, g.dragged)
	}
	return ids
}

// renderTile draws one tile: a sand-colored back with '?' when face-down,
// the picture fragment when face-up.
func renderTile(dst *core.Screen, r core.Rect, t puzzle.Tile[*Face]) {
	if !t.Flipped || t.Placeholder || t.Face == nil {
		dst.FillRect(r, core.Cell{Rune: ' ', BG: core.ColorSand})
		if !t.Placeholder {
			dst.SetCell(r.X+r.W/2, r.Y+r.H/2, core.Cell{Rune: '?', FG: core.ColorBlack, BG: core.ColorSand})
		}
		return
	}

	drawPixels(dst, r, t.Face)
	switch {
	case t.Matched:
		dst.SetCell(r.Right()-1, r.Y, core.Cell{Rune: '✓', FG: core.ColorBrightGreen, BG: core.ColorBlack})
	case t.Hiding():
		dst.SetCell(r.Right()-1, r.Y, core.Cell{Rune: '✗', FG: core.ColorBrightRed, BG: core.ColorBlack})
	}
}

// renderReference draws the full picture next to the board.
func (g *Game) renderReference(dst *core.Screen) {
	if !g.layout.showRef || g.reference == nil {
		return
	}
	r := g.layout.ref
	dst.DrawTextColor(r.X, r.Y-1, "Reference", core.ColorGray)
	drawPixels(dst, r, g.reference)
}

// renderFooter draws the toast and the controls line.
func (g *Game) renderFooter(dst *core.Screen) {
	h := dst.Height()
	if g.toast != "" {
		dst.DrawTextCentered(h-2, g.toast, core.ColorBrightYellow)
	}
	dst.DrawTextCentered(h-1, controlsHint, core.ColorGray)
}

// renderOverlays draws pause, win and time-up messages over the board.
func (g *Game) renderOverlays(dst *core.Screen) {
	var lines []string
	color := core.ColorBrightWhite

	switch {
	case g.won:
		lines = []string{"Puzzle complete!", fmt.Sprintf("Score: %d", g.score), "R to play again, Q to quit"}
		color = core.ColorBrightGreen
	case g.timeUp:
		lines = []string{TimeUpMessage, "R to try again, Q to quit"}
		color = core.ColorBrightRed
	case g.paused:
		lines = []string{"PAUSED", "P to resume"}
	default:
		return
	}

	b := g.layout.grid.Bounds()
	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	box := core.NewRect(b.X+(b.W-w-4)/2, b.Y+(b.H-len(lines)-2)/2, w+4, len(lines)+2)
	dst.FillRect(box, core.Cell{Rune: ' ', BG: core.ColorBlack})
	dst.DrawBox(box, color)
	for i, l := range lines {
		x := box.X + (box.W-len([]rune(l)))/2
		dst.DrawTextColor(x, box.Y+1+i, l, color)
	}
}
