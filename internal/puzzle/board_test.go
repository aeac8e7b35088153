package puzzle

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
	"time"
)

// newTestBoard builds a seeded n×n board whose faces are the row-major
// solved indices.
func newTestBoard(t *testing.T, n int, seed int64, rule Rule) *Board[int] {
	t.Helper()
	faces := make([]int, n*n)
	for i := range faces {
		faces[i] = i
	}
	b, err := New(faces, Config{Size: n, Rule: rule, Rand: rand.New(rand.NewSource(seed))})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return b
}

// checkPermutation verifies that both the solved and current positions of
// the board cover the grid exactly once and that the grid agrees with
// every tile's Current.
func checkPermutation[F any](t *testing.T, b *Board[F]) {
	t.Helper()
	n := b.Size()
	if len(b.byID) != n*n {
		t.Fatalf("board holds %d tiles, want %d", len(b.byID), n*n)
	}
	correct := map[Pos]bool{}
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			tile := b.grid[row][col]
			if tile == nil {
				t.Fatalf("empty cell at (%d, %d)", row, col)
			}
			if tile.Current != (Pos{row, col}) {
				t.Fatalf("tile at (%d, %d) believes it is at %v", row, col, tile.Current)
			}
			c := tile.Correct
			if c.Row < 0 || c.Row >= n || c.Col < 0 || c.Col >= n || correct[c] {
				t.Fatalf("solved position %v out of range or duplicated", c)
			}
			correct[c] = true
		}
	}
}

// cellOf returns the current cell of the tile whose solved position is p.
func cellOf[F any](b *Board[F], p Pos) Pos {
	for _, tile := range b.byID {
		if tile.Correct == p {
			return tile.Current
		}
	}
	panic("no tile for " + p.String())
}

// idOf returns the ID of the tile whose solved position is p.
func idOf[F any](b *Board[F], p Pos) TileID {
	for _, tile := range b.byID {
		if tile.Correct == p {
			return tile.ID
		}
	}
	panic("no tile for " + p.String())
}

// swapCells exchanges the tiles on two cells without any game rules.
func swapCells[F any](b *Board[F], p, q Pos) {
	tp, tq := b.grid[p.Row][p.Col], b.grid[q.Row][q.Col]
	b.move(tp, q)
	b.move(tq, p)
}

// solveAll places every tile on its solved cell without any game rules.
func solveAll[F any](b *Board[F]) {
	for _, tile := range b.byID {
		b.move(tile, tile.Correct)
	}
}

func TestNewProducesPermutation(t *testing.T) {
	for n := 1; n <= 6; n++ {
		b := newTestBoard(t, n, int64(n), nil)
		checkPermutation(t, b)

		for _, tile := range b.Tiles() {
			if tile.Flipped || tile.Matched || tile.Placeholder {
				t.Errorf("n=%d: fresh tile has state flipped=%v matched=%v placeholder=%v",
					n, tile.Flipped, tile.Matched, tile.Placeholder)
			}
			if tile.Face != tile.Correct.Row*n+tile.Correct.Col {
				t.Errorf("n=%d: face %d does not follow row-major order for %v", n, tile.Face, tile.Correct)
			}
		}
	}
}

func TestNewWrongCountFallsBackToPlaceholder(t *testing.T) {
	b, err := New([]int{1, 2, 3}, Config{Size: 4})
	if !errors.Is(err, ErrAsset) {
		t.Fatalf("New error = %v, want ErrAsset", err)
	}
	if b == nil {
		t.Fatal("New must return a placeholder board on asset errors")
	}
	if !b.IsPlaceholder() || b.Size() != 4 {
		t.Errorf("placeholder=%v size=%d", b.IsPlaceholder(), b.Size())
	}
	checkPermutation(t, b)
	for _, tile := range b.Tiles() {
		if !tile.Placeholder || !tile.Solved() {
			t.Errorf("placeholder tile %v at %v", tile.Correct, tile.Current)
		}
	}
}

func TestNewInvalidSize(t *testing.T) {
	b, err := New([]int{}, Config{Size: 0})
	if !errors.Is(err, ErrGridSize) || b != nil {
		t.Errorf("New(size 0) = %v, %v; want nil, ErrGridSize", b, err)
	}
}

func TestSeededBoardsAreReproducible(t *testing.T) {
	b1 := newTestBoard(t, 6, 99, nil)
	b2 := newTestBoard(t, 6, 99, nil)

	t1, t2 := b1.Tiles(), b2.Tiles()
	for i := range t1 {
		if t1[i].ID != t2[i].ID || t1[i].Correct != t2[i].Correct {
			t.Fatalf("cell %d differs between identically seeded boards", i)
		}
	}
}

func TestShuffleIsUniform(t *testing.T) {
	const (
		n      = 4
		trials = 3200
	)
	master := rand.New(rand.NewSource(2024))

	// counts[tile][cell]
	var counts [n * n][n * n]int
	for i := 0; i < trials; i++ {
		b := newTestBoard(t, n, master.Int63(), nil)
		for _, tile := range b.Tiles() {
			counts[tile.Correct.index(n)][tile.Current.index(n)]++
		}
	}

	// Expected 200 per (tile, cell); allow roughly six standard deviations.
	for tile := range counts {
		for cell, c := range counts[tile] {
			if c < 120 || c > 280 {
				t.Errorf("tile %d landed on cell %d %d times, expected about %d", tile, cell, c, trials/(n*n))
			}
		}
	}
}

func TestTapSameTileTwice(t *testing.T) {
	b := newTestBoard(t, 4, 1, nil)

	if got := b.Tap(0, 0); got != TapFirst {
		t.Fatalf("first tap = %v, want TapFirst", got)
	}
	if got := b.Tap(0, 0); got != TapIgnored {
		t.Errorf("second tap on the same tile = %v, want TapIgnored", got)
	}
	if len(b.Selected()) != 1 {
		t.Errorf("selection holds %d tiles, want 1", len(b.Selected()))
	}
	if b.PendingFlips() != 0 {
		t.Error("no pair should have been evaluated")
	}
}

func TestTapOutOfRangeIgnored(t *testing.T) {
	b := newTestBoard(t, 4, 1, nil)
	for _, cell := range []Pos{{-1, 0}, {0, 4}, {4, 4}} {
		if got := b.Tap(cell.Row, cell.Col); got != TapIgnored {
			t.Errorf("Tap(%v) = %v, want TapIgnored", cell, got)
		}
	}
}

func TestTapCorrectPairStaysFlipped(t *testing.T) {
	b := newTestBoard(t, 4, 7, nil)
	a := cellOf(b, Pos{0, 0})
	c := cellOf(b, Pos{3, 3})

	if got := b.Tap(a.Row, a.Col); got != TapFirst {
		t.Fatalf("first tap = %v", got)
	}
	if got := b.Tap(c.Row, c.Col); got != TapPaired {
		t.Fatalf("second tap = %v, want TapPaired", got)
	}

	b.Advance(5 * time.Second)
	for _, p := range []Pos{a, c} {
		tile, _ := b.At(p.Row, p.Col)
		if !tile.Flipped || tile.Matched {
			t.Errorf("paired tile at %v: flipped=%v matched=%v", p, tile.Flipped, tile.Matched)
		}
	}
	if len(b.Selected()) != 0 {
		t.Error("selection should be cleared after the second tap")
	}
}

func TestTapPairUsesVerticalRule(t *testing.T) {
	b := newTestBoard(t, 4, 7, VerticalMirror{})
	a := cellOf(b, Pos{1, 0})
	c := cellOf(b, Pos{1, 3})

	b.Tap(a.Row, a.Col)
	if got := b.Tap(c.Row, c.Col); got != TapPaired {
		t.Errorf("vertical partners: Tap = %v, want TapPaired", got)
	}
}

func TestMismatchFlipsBackOnlyThatPair(t *testing.T) {
	b := newTestBoard(t, 4, 11, nil)

	// A correct pair that must stay face-up throughout.
	p1, p2 := cellOf(b, Pos{1, 2}), cellOf(b, Pos{2, 1})
	b.Tap(p1.Row, p1.Col)
	b.Tap(p2.Row, p2.Col)

	// A mismatch: (0,0) and (0,1) are not mirrors.
	m1, m2 := cellOf(b, Pos{0, 0}), cellOf(b, Pos{0, 1})
	b.Tap(m1.Row, m1.Col)
	if got := b.Tap(m2.Row, m2.Col); got != TapMismatch {
		t.Fatalf("Tap = %v, want TapMismatch", got)
	}
	if b.PendingFlips() != 1 {
		t.Fatalf("PendingFlips() = %d, want 1", b.PendingFlips())
	}

	// Other taps during the delay are unaffected.
	other := cellOf(b, Pos{3, 3})
	if got := b.Tap(other.Row, other.Col); got != TapFirst {
		t.Errorf("tap during the delay = %v, want TapFirst", got)
	}

	b.Advance(999 * time.Millisecond)
	for _, p := range []Pos{m1, m2} {
		if tile, _ := b.At(p.Row, p.Col); !tile.Flipped || !tile.Hiding() {
			t.Errorf("mismatched tile at %v flipped back too early", p)
		}
	}

	b.Advance(time.Millisecond)
	for _, p := range []Pos{m1, m2} {
		if tile, _ := b.At(p.Row, p.Col); tile.Flipped || tile.Hiding() {
			t.Errorf("mismatched tile at %v still face-up after the delay", p)
		}
	}
	for _, p := range []Pos{p1, p2, other} {
		if tile, _ := b.At(p.Row, p.Col); !tile.Flipped {
			t.Errorf("unrelated tile at %v was flipped back", p)
		}
	}
}

func TestMismatchedTileCannotBeDropped(t *testing.T) {
	b := newTestBoard(t, 4, 3, nil)
	m1, m2 := cellOf(b, Pos{0, 0}), cellOf(b, Pos{0, 1})
	b.Tap(m1.Row, m1.Col)
	b.Tap(m2.Row, m2.Col)

	target := Pos{0, 0}
	if m1 == target {
		target = Pos{3, 3}
	}
	if got := b.Drop(idOf(b, Pos{0, 0}), target.Row, target.Col); got != DropIgnored {
		t.Errorf("Drop of a tile waiting to flip back = %v, want DropIgnored", got)
	}
}

func TestCloseCancelsPendingFlipBack(t *testing.T) {
	b := newTestBoard(t, 4, 5, nil)
	m1, m2 := cellOf(b, Pos{0, 0}), cellOf(b, Pos{0, 1})
	b.Tap(m1.Row, m1.Col)
	b.Tap(m2.Row, m2.Col)

	b.Close()
	b.Advance(2 * time.Second)

	if b.PendingFlips() != 0 {
		t.Errorf("PendingFlips() = %d after Close", b.PendingFlips())
	}
	if tile, _ := b.At(m1.Row, m1.Col); !tile.Flipped {
		t.Error("flip-back ran after Close")
	}
}

func TestDropPreconditions(t *testing.T) {
	b := newTestBoard(t, 4, 21, nil)

	// Face-down tile cannot be dragged.
	if got := b.Drop(idOf(b, Pos{0, 0}), 1, 1); got != DropIgnored {
		t.Errorf("face-down drop = %v, want DropIgnored", got)
	}

	// Pair (0,0)/(3,3) and keep (0,0) away from its solved cell.
	if cellOf(b, Pos{0, 0}) == (Pos{0, 0}) {
		swapCells(b, Pos{0, 0}, Pos{1, 1})
	}
	a, c := cellOf(b, Pos{0, 0}), cellOf(b, Pos{3, 3})
	b.Tap(a.Row, a.Col)
	b.Tap(c.Row, c.Col)
	id := idOf(b, Pos{0, 0})

	if got := b.Drop(id, a.Row, a.Col); got != DropIgnored {
		t.Errorf("drop onto own cell = %v, want DropIgnored", got)
	}
	if got := b.Drop(id, 4, 0); got != DropIgnored {
		t.Errorf("drop out of range = %v, want DropIgnored", got)
	}
	if got := b.Drop(TileID{}, 0, 0); got != DropIgnored {
		t.Errorf("drop of unknown tile = %v, want DropIgnored", got)
	}

	// Lock (0,0), then try to drop its partner onto it.
	if got := b.Drop(id, 0, 0); got != DropLocked {
		t.Fatalf("drop onto solved cell = %v, want DropLocked", got)
	}
	if got := b.Drop(idOf(b, Pos{3, 3}), 0, 0); got != DropIgnored {
		t.Errorf("drop onto a locked tile = %v, want DropIgnored", got)
	}
	if got := b.Drop(id, 2, 2); got != DropIgnored {
		t.Errorf("drop of a locked tile = %v, want DropIgnored", got)
	}
}

func TestDropLocksAndReshufflesUnlockedTiles(t *testing.T) {
	b := newTestBoard(t, 4, 8, nil)
	if cellOf(b, Pos{0, 0}) == (Pos{0, 0}) {
		swapCells(b, Pos{0, 0}, Pos{2, 2})
	}
	a, c := cellOf(b, Pos{0, 0}), cellOf(b, Pos{3, 3})
	b.Tap(a.Row, a.Col)
	b.Tap(c.Row, c.Col)

	if got := b.Drop(idOf(b, Pos{0, 0}), 0, 0); got != DropLocked {
		t.Fatalf("Drop = %v, want DropLocked", got)
	}
	checkPermutation(t, b)

	locked, _ := b.At(0, 0)
	if !locked.Matched || locked.Correct != (Pos{0, 0}) {
		t.Errorf("cell (0,0) holds %v matched=%v", locked.Correct, locked.Matched)
	}
	if b.LockedCount() != 1 {
		t.Errorf("LockedCount() = %d, want 1", b.LockedCount())
	}

	// The partner stays face-up wherever the reshuffle put it.
	partner, _ := b.Find(idOf(b, Pos{3, 3}))
	if !partner.Flipped || partner.Matched {
		t.Errorf("partner flipped=%v matched=%v after reshuffle", partner.Flipped, partner.Matched)
	}
}

func TestDropWithoutLockStillReshuffles(t *testing.T) {
	reshuffled := false
	for seed := int64(0); seed < 20 && !reshuffled; seed++ {
		b := newTestBoard(t, 4, seed, nil)
		a, c := cellOf(b, Pos{0, 0}), cellOf(b, Pos{3, 3})
		b.Tap(a.Row, a.Col)
		b.Tap(c.Row, c.Col)

		// Drop (0,0) somewhere that is not its solved cell or its own cell.
		target := Pos{1, 1}
		if target == a {
			target = Pos{2, 2}
		}
		before := b.Tiles()
		if got := b.Drop(idOf(b, Pos{0, 0}), target.Row, target.Col); got != DropMoved {
			t.Fatalf("seed %d: Drop = %v, want DropMoved", seed, got)
		}
		checkPermutation(t, b)

		after := b.Tiles()
		moved := 0
		for i := range before {
			if before[i].ID != after[i].ID {
				moved++
			}
		}
		// A plain swap moves exactly two tiles.
		if moved > 2 {
			reshuffled = true
		}
	}
	if !reshuffled {
		t.Error("drops never reshuffled more than the swapped pair")
	}
}

func TestLockedTilesNeverUnlock(t *testing.T) {
	b := newTestBoard(t, 4, 31, nil)
	rng := rand.New(rand.NewSource(31))
	locked := map[TileID]Pos{}

	for step := 0; step < 3000; step++ {
		switch rng.Intn(3) {
		case 0:
			b.Tap(rng.Intn(4), rng.Intn(4))
		case 1:
			tiles := b.Tiles()
			tile := tiles[rng.Intn(len(tiles))]
			// Aim at the solved cell half of the time so locks happen.
			target := Pos{rng.Intn(4), rng.Intn(4)}
			if rng.Intn(2) == 0 {
				target = tile.Correct
			}
			b.Drop(tile.ID, target.Row, target.Col)
		case 2:
			b.Advance(time.Duration(rng.Intn(600)) * time.Millisecond)
		}

		checkPermutation(t, b)
		for id, pos := range locked {
			tile, _ := b.Find(id)
			if !tile.Matched || tile.Current != pos {
				t.Fatalf("step %d: locked tile %v unlocked or moved", step, tile.Correct)
			}
		}
		for _, tile := range b.Tiles() {
			if tile.Matched {
				if !tile.Solved() {
					t.Fatalf("step %d: locked tile %v is not on its solved cell", step, tile.Correct)
				}
				locked[tile.ID] = tile.Current
			}
		}
	}
	if len(locked) == 0 {
		t.Error("random play never locked a tile")
	}
}

func TestSubmit(t *testing.T) {
	b := newTestBoard(t, 4, 17, nil)
	solveAll(b)

	before := b.Snapshot()
	if !b.Submit() {
		t.Fatal("Submit() = false for a board with every tile on its solved cell")
	}
	if !reflect.DeepEqual(before, b.Snapshot()) {
		t.Error("Submit changed the board")
	}
	if b.LockedCount() != 0 {
		t.Error("Submit must not depend on or set locks")
	}

	swapCells(b, Pos{0, 0}, Pos{0, 1})
	if b.Submit() {
		t.Error("Submit() = true with two tiles swapped")
	}
}

func TestPlayToCompletion(t *testing.T) {
	for _, rule := range []Rule{DiagonalMirror{}, VerticalMirror{}} {
		b := newTestBoard(t, 6, 42, rule)

		for iter := 0; iter < 1000 && !b.Submit(); iter++ {
			var held *Tile[int]
			for _, tile := range b.byID {
				if tile.Flipped && !tile.Matched && !tile.hiding {
					held = tile
					break
				}
			}

			if held == nil {
				// Flip a face-down tile together with its partner.
				for _, tile := range b.byID {
					if tile.Flipped || tile.Matched {
						continue
					}
					partner := cellOf(b, rule.Partner(tile.Correct, 6))
					if got := b.Tap(tile.Current.Row, tile.Current.Col); got != TapFirst {
						t.Fatalf("%s: Tap = %v, want TapFirst", rule.Name(), got)
					}
					if got := b.Tap(partner.Row, partner.Col); got != TapPaired {
						t.Fatalf("%s: Tap = %v, want TapPaired", rule.Name(), got)
					}
					break
				}
				continue
			}

			target := held.Correct
			if held.Solved() {
				// Already home but unlocked: move it away first.
				for _, tile := range b.byID {
					if !tile.Matched && tile != held {
						target = tile.Current
						break
					}
				}
			}
			if got := b.Drop(held.ID, target.Row, target.Col); got == DropIgnored {
				t.Fatalf("%s: drop of %v onto %v ignored", rule.Name(), held.Correct, target)
			}
			checkPermutation(t, b)
		}

		if !b.Submit() {
			t.Fatalf("%s: board not solved after play", rule.Name())
		}
		if b.AllLocked() && !b.Submit() {
			t.Errorf("%s: fully locked board must be solved", rule.Name())
		}
	}
}

func TestSnapshot(t *testing.T) {
	b := newTestBoard(t, 4, 2, nil)
	b.Tap(0, 0)

	snap := b.Snapshot()
	if snap.Size != 4 || snap.Rule != "diagonal" || snap.Selected != 1 || snap.Placeholder {
		t.Errorf("unexpected snapshot header %+v", snap)
	}
	if !snap.Cells[0][0].Flipped {
		t.Error("snapshot should show the tapped tile face-up")
	}

	// Mutating the snapshot must not touch the board.
	snap.Cells[1][1].Matched = true
	if tile, _ := b.At(1, 1); tile.Matched {
		t.Error("snapshot shares state with the board")
	}
}
