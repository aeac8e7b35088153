package mosaic

import (
	"image"

	"github.com/vovakirdan/memory-mosaic/internal/core"
	"github.com/vovakirdan/memory-mosaic/internal/slicer"
)

// Face is the picture fragment carried by a tile. Terminal pixels are
// sampled lazily per cell size, since the layout follows the window.
type Face struct {
	img   image.Image
	cache map[[2]int][][]core.Color
}

func newFace(img image.Image) *Face {
	return &Face{img: img, cache: make(map[[2]int][][]core.Color)}
}

// faces wraps sliced tiles.
func faces(tiles []image.Image) []*Face {
	out := make([]*Face, len(tiles))
	for i, t := range tiles {
		out[i] = newFace(t)
	}
	return out
}

// Pixels returns the face scaled to w×h terminal pixels as [y][x]. Two
// pixel rows fit in one screen row.
func (f *Face) Pixels(w, h int) [][]core.Color {
	if f == nil || f.img == nil || w < 1 || h < 1 {
		return nil
	}
	key := [2]int{w, h}
	if px, ok := f.cache[key]; ok {
		return px
	}
	sampled := slicer.Sample(f.img, w, h)
	px := make([][]core.Color, len(sampled))
	for y, row := range sampled {
		px[y] = make([]core.Color, len(row))
		for x, c := range row {
			px[y][x] = core.FromRGB(c.R, c.G, c.B)
		}
	}
	f.cache[key] = px
	return px
}

// drawPixels paints f into r with upper half-blocks: the foreground is the
// upper pixel and the background the lower one.
func drawPixels(dst *core.Screen, r core.Rect, f *Face) {
	px := f.Pixels(r.W, r.H*2)
	if px == nil {
		return
	}
	for row := 0; row < r.H; row++ {
		for col := 0; col < r.W; col++ {
			dst.SetCell(r.X+col, r.Y+row, core.Cell{
				Rune: '▀',
				FG:   px[row*2][col],
				BG:   px[row*2+1][col],
			})
		}
	}
}
