package puzzle

// Snapshot is a read-only copy of a board for renderers and tests.
type Snapshot[F any] struct {
	Size         int
	Rule         string
	Cells        [][]Tile[F] // [row][col] by current position
	Locked       int
	Selected     int
	PendingFlips int
	Placeholder  bool
	Solved       bool
}

// Snapshot copies the current board state.
func (b *Board[F]) Snapshot() Snapshot[F] {
	cells := make([][]Tile[F], b.size)
	for row := range cells {
		cells[row] = make([]Tile[F], b.size)
		for col := range cells[row] {
			cells[row][col] = *b.grid[row][col]
		}
	}
	return Snapshot[F]{
		Size:         b.size,
		Rule:         b.rule.Name(),
		Cells:        cells,
		Locked:       b.LockedCount(),
		Selected:     len(b.selection),
		PendingFlips: b.PendingFlips(),
		Placeholder:  b.placeholder,
		Solved:       b.Submit(),
	}
}
