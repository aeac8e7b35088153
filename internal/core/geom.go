// Package core provides fundamental types and utilities for the mosaic platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Rect represents an axis-aligned box on the screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// GridLayout places an N×N grid of equally sized cells on the screen.
// Cells are separated by Gap columns horizontally and one row vertically
// when Gap > 0.
type GridLayout struct {
	Origin Rect // Only X and Y are used; W/H are derived
	N      int
	CellW  int
	CellH  int
	Gap    int
}

// Bounds returns the rectangle covering the whole grid.
func (g GridLayout) Bounds() Rect {
	return NewRect(g.Origin.X, g.Origin.Y, g.N*g.CellW+(g.N-1)*g.Gap, g.N*g.CellH+(g.N-1)*g.rowGap())
}

// Cell returns the screen rectangle of the cell at (row, col).
func (g GridLayout) Cell(row, col int) Rect {
	x := g.Origin.X + col*(g.CellW+g.Gap)
	y := g.Origin.Y + row*(g.CellH+g.rowGap())
	return NewRect(x, y, g.CellW, g.CellH)
}

// CellAt maps a screen point to a grid cell.
// Returns false for points outside the grid or inside a gap.
func (g GridLayout) CellAt(x, y int) (row, col int, ok bool) {
	if g.N <= 0 || !g.Bounds().Contains(x, y) {
		return 0, 0, false
	}
	col = (x - g.Origin.X) / (g.CellW + g.Gap)
	row = (y - g.Origin.Y) / (g.CellH + g.rowGap())
	if col >= g.N || row >= g.N {
		return 0, 0, false
	}
	if !g.Cell(row, col).Contains(x, y) {
		return 0, 0, false
	}
	return row, col, true
}

func (g GridLayout) rowGap() int {
	if g.Gap > 0 {
		return 1
	}
	return 0
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
