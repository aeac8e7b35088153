// Package puzzle implements the Memory Mosaic board engine.
//
// A picture is cut into N×N tiles which are shuffled face-down. The player
// flips two tiles at a time; two tiles whose solved positions mirror each
// other under the board's Rule stay face-up and may then be dropped onto
// other cells. A tile dropped onto its own solved position locks, and every
// successful drop reshuffles all tiles that are not locked yet.
//
// The engine is single-threaded and owns its own logical clock: mismatch
// flip-backs are scheduled on it and only fire from Advance.
package puzzle

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/memory-mosaic/internal/clock"
)

// DefaultMismatchDelay is how long a mismatched pair stays visible.
const DefaultMismatchDelay = time.Second

// Config holds board construction parameters.
type Config struct {
	Size          int           // Grid dimension N
	Rule          Rule          // Pairing rule; DefaultRule when nil
	MismatchDelay time.Duration // Flip-back delay; DefaultMismatchDelay when zero
	Rand          *rand.Rand    // Shuffle source; time-seeded when nil
}

func (c Config) withDefaults() Config {
	if c.Rule == nil {
		c.Rule = DefaultRule
	}
	if c.MismatchDelay <= 0 {
		c.MismatchDelay = DefaultMismatchDelay
	}
	if c.Rand == nil {
		c.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return c
}

// TapResult describes what a tap did.
type TapResult int

const (
	TapIgnored  TapResult = iota // out of range, already face-up or locked
	TapFirst                     // first tile of a selection
	TapPaired                    // second tile completed a correct pair
	TapMismatch                  // second tile did not pair; both will flip back
)

// DropResult describes what a drop did.
type DropResult int

const (
	DropIgnored DropResult = iota // preconditions not met, board unchanged
	DropMoved                     // tiles swapped, dragged tile not on its solved position
	DropLocked                    // dragged tile landed on its solved position and locked
)

// Board is the N×N arrangement of tiles for one game session.
type Board[F any] struct {
	size  int
	rule  Rule
	delay time.Duration
	rng   *rand.Rand
	sched *clock.Scheduler

	grid      [][]*Tile[F] // [row][col] by current position
	byID      map[TileID]*Tile[F]
	selection []*Tile[F]

	placeholder bool
}

// New builds a shuffled board from exactly Size² faces in row-major order.
//
// If the face count is wrong, New returns a blank placeholder board
// together with an error wrapping ErrAsset, so callers can always render a
// well-formed grid. A Size below 1 returns ErrGridSize and no board.
func New[F any](faces []F, cfg Config) (*Board[F], error) {
	if cfg.Size < 1 {
		return nil, fmt.Errorf("%w: %d", ErrGridSize, cfg.Size)
	}
	n := cfg.Size
	if len(faces) != n*n {
		return NewPlaceholder[F](cfg), fmt.Errorf("%w: got %d tiles for a %dx%d grid", ErrAsset, len(faces), n, n)
	}

	b := newBoard[F](cfg)
	for i, face := range faces {
		pos := Pos{Row: i / n, Col: i % n}
		b.place(&Tile[F]{ID: b.newID(), Face: face, Correct: pos, Current: pos})
	}
	b.shuffle(b.tilesInGridOrder())
	return b, nil
}

// NewPlaceholder builds a blank, unshuffled board: every tile is a
// placeholder sitting on its solved position. Sizes below 1 are treated as 1.
func NewPlaceholder[F any](cfg Config) *Board[F] {
	if cfg.Size < 1 {
		cfg.Size = 1
	}
	b := newBoard[F](cfg)
	b.placeholder = true
	for row := 0; row < b.size; row++ {
		for col := 0; col < b.size; col++ {
			pos := Pos{Row: row, Col: col}
			b.place(&Tile[F]{ID: b.newID(), Correct: pos, Current: pos, Placeholder: true})
		}
	}
	return b
}

func newBoard[F any](cfg Config) *Board[F] {
	cfg = cfg.withDefaults()
	b := &Board[F]{
		size:  cfg.Size,
		rule:  cfg.Rule,
		delay: cfg.MismatchDelay,
		rng:   cfg.Rand,
		sched: clock.NewScheduler(),
		grid:  make([][]*Tile[F], cfg.Size),
		byID:  make(map[TileID]*Tile[F], cfg.Size*cfg.Size),
	}
	for row := range b.grid {
		b.grid[row] = make([]*Tile[F], cfg.Size)
	}
	return b
}

// newID draws a tile ID from the board's RNG so seeded boards are reproducible.
func (b *Board[F]) newID() TileID {
	id, err := uuid.NewRandomFromReader(b.rng)
	if err != nil {
		return TileID(uuid.New())
	}
	return TileID(id)
}

// place puts t on the grid cell named by t.Current and indexes it.
func (b *Board[F]) place(t *Tile[F]) {
	b.grid[t.Current.Row][t.Current.Col] = t
	b.byID[t.ID] = t
}

// move puts t on the given cell.
func (b *Board[F]) move(t *Tile[F], to Pos) {
	t.Current = to
	b.grid[to.Row][to.Col] = t
}

// tilesInGridOrder returns the tiles in row-major order of their current cell.
func (b *Board[F]) tilesInGridOrder() []*Tile[F] {
	tiles := make([]*Tile[F], 0, b.size*b.size)
	for _, row := range b.grid {
		tiles = append(tiles, row...)
	}
	return tiles
}

// shuffle redistributes the given tiles uniformly over the cells they
// currently occupy (Fisher–Yates via rand.Shuffle).
func (b *Board[F]) shuffle(tiles []*Tile[F]) {
	cells := make([]Pos, len(tiles))
	for i, t := range tiles {
		cells[i] = t.Current
	}
	b.rng.Shuffle(len(cells), func(i, j int) {
		cells[i], cells[j] = cells[j], cells[i]
	})
	for i, t := range tiles {
		b.move(t, cells[i])
	}
}

// Size returns the grid dimension N.
func (b *Board[F]) Size() int {
	return b.size
}

// Rule returns the board's pairing rule.
func (b *Board[F]) Rule() Rule {
	return b.rule
}

// IsPlaceholder reports whether the board was built without a picture.
func (b *Board[F]) IsPlaceholder() bool {
	return b.placeholder
}

func (b *Board[F]) inRange(row, col int) bool {
	return row >= 0 && row < b.size && col >= 0 && col < b.size
}

// At returns a copy of the tile on the given cell.
func (b *Board[F]) At(row, col int) (Tile[F], bool) {
	if !b.inRange(row, col) {
		return Tile[F]{}, false
	}
	return *b.grid[row][col], true
}

// Find returns a copy of the tile with the given ID.
func (b *Board[F]) Find(id TileID) (Tile[F], bool) {
	t, ok := b.byID[id]
	if !ok {
		return Tile[F]{}, false
	}
	return *t, true
}

// Tiles returns copies of all tiles in row-major order of their current cell.
func (b *Board[F]) Tiles() []Tile[F] {
	tiles := make([]Tile[F], 0, b.size*b.size)
	for _, t := range b.tilesInGridOrder() {
		tiles = append(tiles, *t)
	}
	return tiles
}

// IsPairCorrect applies the pairing rule to the solved positions of two
// distinct tiles. It is symmetric.
func (b *Board[F]) IsPairCorrect(a, c Tile[F]) bool {
	return a.ID != c.ID && Paired(b.rule, a.Correct, c.Correct, b.size)
}

// Tap flips the tile on (row, col).
//
// Taps on cells out of range, on face-up tiles and on locked tiles are
// ignored. The second tile of a selection is checked against the first:
// a correct pair stays face-up, a mismatch is flipped back after the
// board's mismatch delay.
func (b *Board[F]) Tap(row, col int) TapResult {
	if !b.inRange(row, col) {
		return TapIgnored
	}
	t := b.grid[row][col]
	if t.Flipped || t.Matched {
		return TapIgnored
	}

	t.Flipped = true
	b.selection = append(b.selection, t)
	if len(b.selection) < 2 {
		return TapFirst
	}

	first, second := b.selection[0], b.selection[1]
	b.selection = b.selection[:0]

	if b.IsPairCorrect(*first, *second) {
		return TapPaired
	}

	first.hiding = true
	second.hiding = true
	ids := [2]TileID{first.ID, second.ID}
	b.sched.After(b.delay, func() { b.flipBack(ids) })
	return TapMismatch
}

// flipBack turns the given tiles face-down again, locating them by ID.
func (b *Board[F]) flipBack(ids [2]TileID) {
	for _, id := range ids {
		t, ok := b.byID[id]
		if !ok {
			continue
		}
		t.hiding = false
		if !t.Matched {
			t.Flipped = false
		}
	}
}

// Drop moves the tile with the given ID onto (row, col), swapping it with
// the tile there.
//
// The dragged tile must be face-up, not locked and not waiting to flip
// back; the target must be a different, unlocked tile. If the dragged tile
// lands on its solved position it locks. Every accepted drop then
// reshuffles all unlocked tiles over the unlocked cells.
func (b *Board[F]) Drop(id TileID, row, col int) DropResult {
	t, ok := b.byID[id]
	if !ok || !t.Flipped || t.Matched || t.hiding {
		return DropIgnored
	}
	if !b.inRange(row, col) {
		return DropIgnored
	}
	target := b.grid[row][col]
	if target == t || target.Matched {
		return DropIgnored
	}

	from := t.Current
	b.move(t, target.Current)
	b.move(target, from)

	result := DropMoved
	if t.Solved() {
		t.Matched = true
		result = DropLocked
	}

	b.shuffle(b.unlocked())
	return result
}

// unlocked returns the tiles that are not locked, in row-major grid order.
func (b *Board[F]) unlocked() []*Tile[F] {
	var tiles []*Tile[F]
	for _, t := range b.tilesInGridOrder() {
		if !t.Matched {
			tiles = append(tiles, t)
		}
	}
	return tiles
}

// LockedCount returns the number of locked tiles.
func (b *Board[F]) LockedCount() int {
	n := 0
	for _, t := range b.byID {
		if t.Matched {
			n++
		}
	}
	return n
}

// AllLocked reports whether every tile has been locked by a drop.
// A fully locked board is always solved; the converse need not hold.
func (b *Board[F]) AllLocked() bool {
	return b.LockedCount() == b.size*b.size
}

// Submit reports whether every tile sits on its solved position,
// regardless of which tiles are locked. It does not change the board.
func (b *Board[F]) Submit() bool {
	for _, t := range b.byID {
		if !t.Solved() {
			return false
		}
	}
	return true
}

// Selected returns copies of the tiles awaiting a second tap (0 or 1).
func (b *Board[F]) Selected() []Tile[F] {
	out := make([]Tile[F], len(b.selection))
	for i, t := range b.selection {
		out[i] = *t
	}
	return out
}

// PendingFlips returns the number of mismatched pairs waiting to flip back.
func (b *Board[F]) PendingFlips() int {
	return b.sched.Pending()
}

// Advance moves the board's clock forward, flipping back mismatched pairs
// whose delay has elapsed.
func (b *Board[F]) Advance(dt time.Duration) {
	b.sched.Advance(dt)
}

// Close cancels every pending flip-back. The board stays readable but its
// scheduled work will never run.
func (b *Board[F]) Close() {
	b.sched.Invalidate()
	b.selection = b.selection[:0]
}
