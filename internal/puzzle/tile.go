package puzzle

import (
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrAsset reports that the picture could not be turned into N² tiles.
	ErrAsset = errors.New("puzzle: picture unavailable")

	// ErrGridSize reports a grid size below 1.
	ErrGridSize = errors.New("puzzle: invalid grid size")

	// ErrUnknownRule reports an unrecognised pairing rule name.
	ErrUnknownRule = errors.New("puzzle: unknown pairing rule")
)

// TileID identifies a tile for its whole lifetime.
type TileID uuid.UUID

// String returns the canonical UUID form.
func (id TileID) String() string {
	return uuid.UUID(id).String()
}

// Tile is one piece of the picture.
// Tiles returned by Board queries are copies; mutate a board only through
// its methods.
type Tile[F any] struct {
	ID          TileID
	Face        F   // opaque payload owned by the slicer
	Correct     Pos // position in the solved picture
	Current     Pos // position on the board
	Flipped     bool
	Matched     bool
	Placeholder bool

	hiding bool // mismatched, waiting to flip back
}

// Hiding reports whether the tile is face-up only until its pending
// mismatch flip-back fires.
func (t Tile[F]) Hiding() bool {
	return t.hiding
}

// Solved reports whether the tile currently sits on its correct position.
func (t Tile[F]) Solved() bool {
	return t.Current == t.Correct
}
