// Package mosaic implements the Memory Mosaic game session and its tutorial.
package mosaic

import (
	"math/rand"
	"sync"
	"time"

	"github.com/vovakirdan/memory-mosaic/internal/audio"
	"github.com/vovakirdan/memory-mosaic/internal/clock"
	"github.com/vovakirdan/memory-mosaic/internal/config"
	"github.com/vovakirdan/memory-mosaic/internal/core"
	"github.com/vovakirdan/memory-mosaic/internal/puzzle"
	"github.com/vovakirdan/memory-mosaic/internal/registry"
	"github.com/vovakirdan/memory-mosaic/internal/slicer"
)

// Mode selects the grid size.
type Mode string

const (
	ModeClassic Mode = "classic" // board.size from config (easy preset by default)
	ModeHard    Mode = "hard"    // hard preset
)

// Messages shown to the player.
const (
	IncompleteMessage  = "The puzzle is not complete. Keep trying!"
	PlaceholderMessage = "There is no picture to solve."
	TimeUpMessage      = "Time's up!"
	placeholderWarning = "Picture unavailable, playing a blank board"
)

// Options override configuration for one game.
type Options struct {
	ConfigPath string
	Difficulty string // preset name; empty keeps the mode's size
	Picture    string // catalog name or file path
	Rule       string // "diagonal" or "vertical"
}

// Package-level settings picked up by games created afterwards.
var (
	settingsMu sync.Mutex
	settings   Options
)

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	settingsMu.Lock()
	settings.ConfigPath = path
	settingsMu.Unlock()
}

// SetDifficultyPreset sets the difficulty preset for new games.
func SetDifficultyPreset(preset string) {
	settingsMu.Lock()
	settings.Difficulty = preset
	settingsMu.Unlock()
}

// SetPicture sets the picture for new games.
func SetPicture(ref string) {
	settingsMu.Lock()
	settings.Picture = ref
	settingsMu.Unlock()
}

// SetRule sets the pairing rule for new games.
func SetRule(name string) {
	settingsMu.Lock()
	settings.Rule = name
	settingsMu.Unlock()
}

func currentOptions() Options {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	return settings
}

func init() {
	registry.Register("mosaic", func() registry.Game {
		return New(ModeClassic)
	})
	registry.Register("mosaic_hard", func() registry.Game {
		return New(ModeHard)
	})
	registry.Register("mosaic_tutorial", func() registry.Game {
		return NewTutorial()
	})
}

// Game implements one timed Memory Mosaic session.
type Game struct {
	mode Mode
	opts Options
	cfg  config.MosaicConfig
	rng  *rand.Rand
	tick uint64
	dt   time.Duration

	// Screen dimensions
	screenW  int
	screenH  int
	layout   layout
	tooSmall bool

	board     *puzzle.Board[*Face]
	reference *Face
	warnings  []string

	countdown *clock.Countdown
	timers    *clock.Scheduler // toast expiry
	toast     string
	toastID   clock.Handle

	cursor   puzzle.Pos
	held     puzzle.TileID // keyboard grab
	holding  bool
	dragged  puzzle.TileID // mouse drag
	dragging bool

	score    int
	finished bool
	won      bool
	timeUp   bool
	paused   bool

	cues []audio.Cue
}

// New creates a game using the current package settings.
func New(mode Mode) *Game {
	return NewWithOptions(mode, currentOptions())
}

// NewWithOptions creates a game with explicit options.
func NewWithOptions(mode Mode, opts Options) *Game {
	return &Game{mode: mode, opts: opts}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeHard {
		return "mosaic_hard"
	}
	return "mosaic"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeHard {
		return "Memory Mosaic (Hard)"
	}
	return "Memory Mosaic"
}

// Reset starts a new session: config is reloaded, the picture is sliced
// and shuffled, and the countdown restarts. Work scheduled by the previous
// session is dropped.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if g.board != nil {
		g.board.Close()
	}
	if g.timers != nil {
		g.timers.Invalidate()
	}

	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.dt = tickDuration(cfg.TickRate)
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	g.score = 0
	g.finished = false
	g.won = false
	g.timeUp = false
	g.paused = false
	g.cursor = puzzle.Pos{}
	g.holding = false
	g.dragging = false
	g.toast = ""
	g.cues = g.cues[:0]

	var rule puzzle.Rule
	g.cfg, rule, g.warnings = loadConfig(g.mode, g.opts)

	g.timers = clock.NewScheduler()
	g.countdown = clock.NewCountdown(g.cfg.Timing.TimeLimit)
	g.buildBoard(rule)
	g.countdown.Start()
	g.relayout()

	g.cue(audio.Cue{Name: audio.LoopBackground, Loop: true})
}

func tickDuration(rate int) time.Duration {
	if rate <= 0 {
		rate = core.DefaultConfig().TickRate
	}
	return time.Second / time.Duration(rate)
}

// loadConfig resolves the effective configuration. Problems are returned as
// warnings and the affected setting falls back to its default.
func loadConfig(mode Mode, opts Options) (config.MosaicConfig, puzzle.Rule, []string) {
	var warnings []string

	cfg, err := config.LoadMosaic(opts.ConfigPath)
	if err != nil {
		warnings = append(warnings, err.Error())
	}

	preset := config.DifficultyPreset("")
	if mode == ModeHard {
		preset = config.DifficultyHard
	}
	if opts.Difficulty != "" {
		preset = config.ParseDifficulty(opts.Difficulty)
	}
	if preset != "" {
		if err := config.ApplyPreset(&cfg, preset); err != nil {
			warnings = append(warnings, err.Error())
		}
	}

	if opts.Picture != "" {
		cfg.Board.Picture = opts.Picture
	}
	if opts.Rule != "" {
		cfg.Board.Rule = opts.Rule
	}
	rule, err := cfg.Rule()
	if err != nil {
		warnings = append(warnings, err.Error())
		rule = puzzle.DefaultRule
		cfg.Board.Rule = rule.Name()
	}
	return cfg, rule, warnings
}

// buildBoard slices the configured picture into a fresh board. When the
// picture cannot be used the session gets a blank placeholder board.
func (g *Game) buildBoard(rule puzzle.Rule) {
	pcfg := puzzle.Config{
		Size:          g.cfg.Board.Size,
		Rule:          rule,
		MismatchDelay: g.cfg.Timing.MismatchDelay,
		Rand:          g.rng,
	}

	tiles, ref, err := slicer.LoadTiles(g.cfg.Board.Picture, pcfg.Size)
	if err == nil {
		var board *puzzle.Board[*Face]
		board, err = puzzle.New(faces(tiles), pcfg)
		if err == nil {
			g.board = board
			g.reference = newFace(ref)
			return
		}
	}

	g.warnings = append(g.warnings, placeholderWarning, err.Error())
	g.board = puzzle.NewPlaceholder[*Face](pcfg)
	g.reference = nil
}

// Warnings returns configuration and asset problems found by Reset.
func (g *Game) Warnings() []string {
	return g.warnings
}

// Resize adapts the layout to a new screen size without restarting.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.relayout()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	// Handle window size check
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	// Handle pause
	if in.Has(core.ActionPause) && !g.finished {
		g.paused = !g.paused
	}
	if g.paused || g.finished {
		return core.StepResult{State: g.State()}
	}

	g.board.Advance(g.dt)
	g.timers.Advance(g.dt)
	if g.countdown.Advance(g.dt) {
		g.expire()
		return core.StepResult{State: g.State()}
	}

	if !g.board.IsPlaceholder() {
		g.handleKeys(in)
		g.handlePointer(in.Pointer)
	} else if in.Has(core.ActionFinish) {
		g.submit()
	}

	return core.StepResult{State: g.State()}
}

// handleKeys applies keyboard actions: cursor moves, flip, grab and drop,
// and submission.
func (g *Game) handleKeys(in core.InputFrame) {
	n := g.board.Size()
	if in.Has(core.ActionUp) {
		g.cursor.Row = core.Clamp(g.cursor.Row-1, 0, n-1)
	}
	if in.Has(core.ActionDown) {
		g.cursor.Row = core.Clamp(g.cursor.Row+1, 0, n-1)
	}
	if in.Has(core.ActionLeft) {
		g.cursor.Col = core.Clamp(g.cursor.Col-1, 0, n-1)
	}
	if in.Has(core.ActionRight) {
		g.cursor.Col = core.Clamp(g.cursor.Col+1, 0, n-1)
	}

	if in.Has(core.ActionBack) {
		g.holding = false
	}
	if in.Has(core.ActionGrab) {
		g.toggleGrab()
	}
	if in.Has(core.ActionFlip) {
		if g.holding {
			g.dropHeld()
		} else {
			g.tap(g.cursor)
		}
	}
	if in.Has(core.ActionFinish) {
		g.submit()
	}
}

// handlePointer turns mouse presses into taps and press-move-release into
// drags.
func (g *Game) handlePointer(events []core.PointerEvent) {
	for _, ev := range events {
		if g.finished {
			return
		}
		row, col, ok := g.layout.grid.CellAt(ev.X, ev.Y)
		pos := puzzle.Pos{Row: row, Col: col}

		switch ev.Kind {
		case core.PointerPress:
			if !ok {
				continue
			}
			g.cursor = pos
			g.holding = false
			if tile, _ := g.board.At(row, col); draggable(tile) {
				g.dragged = tile.ID
				g.dragging = true
				continue
			}
			g.tap(pos)

		case core.PointerRelease:
			if !g.dragging {
				continue
			}
			g.dragging = false
			if !ok {
				continue
			}
			if tile, found := g.board.Find(g.dragged); found && tile.Current != pos {
				g.cursor = pos
				g.drop(g.dragged, pos)
			}
		}
	}
}

func draggable(t puzzle.Tile[*Face]) bool {
	return t.Flipped && !t.Matched && !t.Hiding()
}

// toggleGrab picks up the tile under the cursor, or drops the held one.
func (g *Game) toggleGrab() {
	if g.holding {
		g.dropHeld()
		return
	}
	if tile, ok := g.board.At(g.cursor.Row, g.cursor.Col); ok && draggable(tile) {
		g.held = tile.ID
		g.holding = true
		g.cue(audio.Cue{Name: audio.CueClick})
	}
}

// dropHeld drops the held tile on the cursor. Dropping it back on its own
// cell just lets go.
func (g *Game) dropHeld() {
	tile, ok := g.board.Find(g.held)
	if !ok || tile.Current == g.cursor {
		g.holding = false
		return
	}
	if g.drop(g.held, g.cursor) != puzzle.DropIgnored {
		g.holding = false
	}
}

func (g *Game) tap(p puzzle.Pos) {
	switch g.board.Tap(p.Row, p.Col) {
	case puzzle.TapFirst:
		g.cue(audio.Cue{Name: audio.CueFlip})
	case puzzle.TapPaired:
		g.cue(audio.Cue{Name: audio.CuePair})
	case puzzle.TapMismatch:
		g.cue(audio.Cue{Name: audio.CueMismatch})
	}
}

func (g *Game) drop(id puzzle.TileID, p puzzle.Pos) puzzle.DropResult {
	res := g.board.Drop(id, p.Row, p.Col)
	switch res {
	case puzzle.DropIgnored:
		return res
	case puzzle.DropMoved:
		g.cue(audio.Cue{Name: audio.CueClick})
	case puzzle.DropLocked:
		g.cue(audio.Cue{Name: audio.CueLock})
	}

	// The last unlocked tile always ends up home by elimination and can
	// never be dropped onto its own cell, so a solved arrangement rather
	// than AllLocked ends the game.
	if g.board.Submit() {
		g.submit()
	}
	return res
}

// submit checks the board. A solved board ends the session with a score
// of multiplier × seconds left; otherwise a toast asks the player to keep
// going.
func (g *Game) submit() {
	if g.finished {
		return
	}
	if g.board.IsPlaceholder() {
		g.showToast(PlaceholderMessage)
		return
	}
	if !g.board.Submit() {
		g.showToast(IncompleteMessage)
		return
	}

	g.countdown.Stop()
	g.score = g.cfg.Scoring.Multiplier * g.countdown.Remaining()
	g.won = true
	g.end()
	g.cue(audio.Cue{Name: audio.CueWin})
}

// expire ends the session when the countdown runs out.
func (g *Game) expire() {
	g.timeUp = true
	g.end()
	g.cue(audio.Cue{Name: audio.CueTimeout})
}

func (g *Game) end() {
	g.finished = true
	g.holding = false
	g.dragging = false
	g.toast = ""
	g.board.Close()
	g.timers.Invalidate()
}

func (g *Game) showToast(msg string) {
	g.timers.Cancel(g.toastID)
	g.toast = msg
	g.toastID = g.timers.After(g.cfg.Timing.Toast, func() {
		g.toast = ""
	})
}

func (g *Game) cue(c audio.Cue) {
	g.cues = append(g.cues, c)
}

// DrainCues returns and clears the sound cues emitted since the last call.
func (g *Game) DrainCues() []audio.Cue {
	if len(g.cues) == 0 {
		return nil
	}
	out := make([]audio.Cue, len(g.cues))
	copy(out, g.cues)
	g.cues = g.cues[:0]
	return out
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.finished,
		Won:      g.won,
		Paused:   g.paused || g.tooSmall,
	}
}
