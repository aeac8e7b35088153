package mosaic

import "github.com/vovakirdan/memory-mosaic/internal/puzzle"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateWon         GameStateType = "won"
	StateTimeUp      GameStateType = "time_up"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	Tick      uint64
	Mode      string
	Picture   string
	Board     puzzle.Snapshot[*Face]
	Cursor    puzzle.Pos
	Holding   bool
	Remaining int // seconds
	Score     int
	Toast     string
	State     GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.won:
		state = StateWon
	case g.timeUp:
		state = StateTimeUp
	case g.paused:
		state = StatePaused
	}

	return Snapshot{
		Tick:      g.tick,
		Mode:      string(g.mode),
		Picture:   g.cfg.Board.Picture,
		Board:     g.board.Snapshot(),
		Cursor:    g.cursor,
		Holding:   g.holding,
		Remaining: g.countdown.Remaining(),
		Score:     g.score,
		Toast:     g.toast,
		State:     state,
	}
}
