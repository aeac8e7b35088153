package puzzle

import (
	"fmt"
	"strings"
)

// Pos is a grid coordinate.
type Pos struct {
	Row, Col int
}

// String formats the position as [row,col].
func (p Pos) String() string {
	return fmt.Sprintf("[%d,%d]", p.Row, p.Col)
}

// index returns the row-major index of p in an n×n grid.
func (p Pos) index(n int) int {
	return p.Row*n + p.Col
}

// Rule decides which two solved-image positions form a pair.
// Partner must be an involution: Partner(Partner(p)) == p.
type Rule interface {
	// Name returns the identifier used in configuration ("diagonal", "vertical").
	Name() string

	// Partner returns the position that p pairs with in an n×n grid.
	Partner(p Pos, n int) Pos
}

// DiagonalMirror pairs (r, c) with (n-1-r, n-1-c): the tile mirrored through
// the centre of the picture. This is the game's canonical rule.
type DiagonalMirror struct{}

// Name implements Rule.
func (DiagonalMirror) Name() string { return "diagonal" }

// Partner implements Rule.
func (DiagonalMirror) Partner(p Pos, n int) Pos {
	return Pos{Row: n - 1 - p.Row, Col: n - 1 - p.Col}
}

// VerticalMirror pairs (r, c) with (r, n-1-c): the tile mirrored across the
// vertical axis, within the same row.
type VerticalMirror struct{}

// Name implements Rule.
func (VerticalMirror) Name() string { return "vertical" }

// Partner implements Rule.
func (VerticalMirror) Partner(p Pos, n int) Pos {
	return Pos{Row: p.Row, Col: n - 1 - p.Col}
}

// DefaultRule is the rule used when none is configured.
var DefaultRule Rule = DiagonalMirror{}

// ParseRule returns the rule with the given name.
func ParseRule(name string) (Rule, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "diagonal":
		return DiagonalMirror{}, nil
	case "vertical":
		return VerticalMirror{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}
}

// Paired reports whether a and b are two distinct positions that the rule pairs.
func Paired(r Rule, a, b Pos, n int) bool {
	return a != b && r.Partner(a, n) == b
}

// Pairs lists every pair of the rule once, ordered by the row-major index of
// the first position. Positions that are their own partner (the centre
// column or cell of an odd grid) are omitted.
func Pairs(r Rule, n int) [][2]Pos {
	var pairs [][2]Pos
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			p := Pos{Row: row, Col: col}
			q := r.Partner(p, n)
			if p.index(n) < q.index(n) {
				pairs = append(pairs, [2]Pos{p, q})
			}
		}
	}
	return pairs
}
