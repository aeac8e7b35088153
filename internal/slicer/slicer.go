// Package slicer turns pictures into puzzle tile faces.
package slicer

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/vovakirdan/memory-mosaic/internal/puzzle"
)

// Slice cuts img into n×n equal tiles in row-major order. Tile bounds are
// integer; remainder pixels on the right and bottom edges are dropped.
// Every tile is an independent copy with bounds starting at (0, 0).
func Slice(img image.Image, n int) ([]image.Image, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", puzzle.ErrGridSize, n)
	}
	if img == nil {
		return nil, fmt.Errorf("%w: no picture", puzzle.ErrAsset)
	}
	b := img.Bounds()
	tw, th := b.Dx()/n, b.Dy()/n
	if tw < 1 || th < 1 {
		return nil, fmt.Errorf("%w: %dx%d picture is too small for a %dx%d grid", puzzle.ErrAsset, b.Dx(), b.Dy(), n, n)
	}

	tiles := make([]image.Image, 0, n*n)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			src := image.Rect(b.Min.X+col*tw, b.Min.Y+row*th, b.Min.X+(col+1)*tw, b.Min.Y+(row+1)*th)
			dst := image.NewRGBA(image.Rect(0, 0, tw, th))
			draw.Copy(dst, image.Point{}, img, src, draw.Src, nil)
			tiles = append(tiles, dst)
		}
	}
	return tiles, nil
}

// Thumbnail returns img scaled to w×h.
func Thumbnail(img image.Image, w, h int) *image.RGBA {
	w, h = max(w, 1), max(h, 1)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// Sample scales img to w×h and returns the colors as [y][x].
func Sample(img image.Image, w, h int) [][]color.RGBA {
	thumb := Thumbnail(img, w, h)
	b := thumb.Bounds()
	out := make([][]color.RGBA, b.Dy())
	for y := range out {
		out[y] = make([]color.RGBA, b.Dx())
		for x := range out[y] {
			out[y][x] = thumb.RGBAAt(x, y)
		}
	}
	return out
}
