package mosaic

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/memory-mosaic/internal/audio"
	"github.com/vovakirdan/memory-mosaic/internal/clock"
	"github.com/vovakirdan/memory-mosaic/internal/config"
	"github.com/vovakirdan/memory-mosaic/internal/core"
	"github.com/vovakirdan/memory-mosaic/internal/puzzle"
	"github.com/vovakirdan/memory-mosaic/internal/slicer"
)

// Tutorial pages.
const (
	PagePairs = iota
	PageSearch
	PageDragDrop
	pageCount
)

const tutorialSize = 4

// Tutorial walks through the rules on a 4×4 board. All of its animations
// run on one scheduler that is invalidated whenever the page changes.
type Tutorial struct {
	opts Options
	cfg  config.MosaicConfig
	rule puzzle.Rule
	rng  *rand.Rand
	tick uint64
	dt   time.Duration

	screenW  int
	screenH  int
	layout   layout
	tooSmall bool

	faces     []*Face // solved order
	reference *Face
	warnings  []string

	page  int
	sched *clock.Scheduler
	done  bool

	// PagePairs
	pairs     [][2]puzzle.Pos
	pairIndex int
	phase     int // 0 highlights the first tile, 1 its partner

	// PageSearch
	demo     *puzzle.Board[*Face]
	attempts int
	found    bool

	cues []audio.Cue
}

// NewTutorial creates a tutorial using the current package settings.
func NewTutorial() *Tutorial {
	return NewTutorialWithOptions(currentOptions())
}

// NewTutorialWithOptions creates a tutorial with explicit options.
func NewTutorialWithOptions(opts Options) *Tutorial {
	return &Tutorial{opts: opts}
}

// ID returns the game identifier.
func (t *Tutorial) ID() string {
	return "mosaic_tutorial"
}

// Title returns the display name.
func (t *Tutorial) Title() string {
	return "Memory Mosaic Tutorial"
}

// Reset reloads config and the demo picture and returns to the first page.
func (t *Tutorial) Reset(cfg core.RuntimeConfig) {
	if t.sched != nil {
		t.sched.Invalidate()
	}
	if t.demo != nil {
		t.demo.Close()
		t.demo = nil
	}

	t.rng = rand.New(rand.NewSource(cfg.Seed))
	t.tick = 0
	t.dt = tickDuration(cfg.TickRate)
	t.screenW = cfg.ScreenW
	t.screenH = cfg.ScreenH
	t.done = false
	t.cues = t.cues[:0]

	opts := t.opts
	opts.Difficulty = ""
	t.cfg, t.rule, t.warnings = loadConfig(ModeClassic, opts)
	t.cfg.Board.Size = tutorialSize
	t.loadPicture()

	t.sched = clock.NewScheduler()
	t.layout, t.tooSmall = computeLayout(t.screenW, t.screenH, tutorialSize)
	t.enterPage(PagePairs)
}

// loadPicture slices the configured picture, falling back to the default
// catalog picture.
func (t *Tutorial) loadPicture() {
	tiles, ref, err := slicer.LoadTiles(t.cfg.Board.Picture, tutorialSize)
	if err != nil {
		t.warnings = append(t.warnings, err.Error())
		tiles, ref, err = slicer.LoadTiles(slicer.DefaultPicture, tutorialSize)
		if err != nil {
			t.faces, t.reference = nil, nil
			return
		}
	}
	t.faces = faces(tiles)
	t.reference = newFace(ref)
}

// Warnings returns configuration and asset problems found by Reset.
func (t *Tutorial) Warnings() []string {
	return t.warnings
}

// Resize adapts the layout to a new screen size.
func (t *Tutorial) Resize(w, h int) {
	t.screenW = w
	t.screenH = h
	t.layout, t.tooSmall = computeLayout(w, h, tutorialSize)
}

// Page returns the current page index.
func (t *Tutorial) Page() int {
	return t.page
}

// enterPage drops every animation of the previous page and starts the new
// page's.
func (t *Tutorial) enterPage(p int) {
	t.sched.Invalidate()
	if t.demo != nil {
		t.demo.Close()
		t.demo = nil
	}
	t.page = p

	switch p {
	case PagePairs:
		t.pairs = puzzle.Pairs(t.rule, tutorialSize)
		t.pairIndex = 0
		t.phase = 0
		t.sched.After(t.cfg.Tutorial.Highlight, t.advanceHighlight)

	case PageSearch:
		t.attempts = 0
		t.found = false
		if len(t.faces) == tutorialSize*tutorialSize {
			t.demo, _ = puzzle.New(t.faces, puzzle.Config{
				Size:          tutorialSize,
				Rule:          t.rule,
				MismatchDelay: t.cfg.Tutorial.EvaluateDelay,
				Rand:          t.rng,
			})
			t.sched.After(t.cfg.Tutorial.StartDelay, t.search)
		}
	}
}

// advanceHighlight moves the highlight from a tile to its partner, then to
// the next pair.
func (t *Tutorial) advanceHighlight() {
	t.phase = (t.phase + 1) % 2
	if t.phase == 0 && len(t.pairs) > 0 {
		t.pairIndex = (t.pairIndex + 1) % len(t.pairs)
	}
	t.sched.After(t.cfg.Tutorial.Highlight, t.advanceHighlight)
}

// search plays one CPU attempt: flip a random closed tile, flip a second
// one after a pause, then judge the pair. A mismatch flips back and the
// CPU tries again.
func (t *Tutorial) search() {
	if t.found || t.demo == nil {
		return
	}

	var closed []puzzle.Pos
	for _, tile := range t.demo.Tiles() {
		if !tile.Flipped && !tile.Matched {
			closed = append(closed, tile.Current)
		}
	}
	if len(closed) < 2 {
		return
	}

	perm := t.rng.Perm(len(closed))
	first, second := closed[perm[0]], closed[perm[1]]
	t.attempts++
	t.demo.Tap(first.Row, first.Col)
	t.cue(audio.CueFlip)

	t.sched.After(t.cfg.Tutorial.FlipDelay, func() {
		res := t.demo.Tap(second.Row, second.Col)
		t.cue(audio.CueFlip)

		t.sched.After(t.cfg.Tutorial.EvaluateDelay, func() {
			if res == puzzle.TapPaired {
				t.found = true
				t.cue(audio.CuePair)
				return
			}
			t.cue(audio.CueMismatch)
			t.sched.After(t.cfg.Tutorial.RetryDelay, t.search)
		})
	})
}

func (t *Tutorial) cue(name string) {
	t.cues = append(t.cues, audio.Cue{Name: name})
}

// DrainCues returns and clears the sound cues emitted since the last call.
func (t *Tutorial) DrainCues() []audio.Cue {
	if len(t.cues) == 0 {
		return nil
	}
	out := make([]audio.Cue, len(t.cues))
	copy(out, t.cues)
	t.cues = t.cues[:0]
	return out
}

// Step handles page navigation and advances the page animations.
func (t *Tutorial) Step(in core.InputFrame) core.StepResult {
	t.tick++
	if t.done {
		return core.StepResult{State: t.State()}
	}

	switch {
	case in.Has(core.ActionNext) || in.Has(core.ActionRight) || in.Has(core.ActionFlip):
		if t.page == pageCount-1 {
			t.done = true
			t.sched.Invalidate()
			return core.StepResult{State: t.State()}
		}
		t.enterPage(t.page + 1)
		t.cue(audio.CueClick)
	case in.Has(core.ActionBack) || in.Has(core.ActionLeft):
		if t.page > 0 {
			t.enterPage(t.page - 1)
			t.cue(audio.CueClick)
		}
	}

	if t.demo != nil {
		t.demo.Advance(t.dt)
	}
	t.sched.Advance(t.dt)

	return core.StepResult{State: t.State()}
}

// State returns the current game state.
func (t *Tutorial) State() core.GameState {
	return core.GameState{
		GameOver: t.done,
		Paused:   t.tooSmall,
	}
}

// Highlighted returns the tile position highlighted on the pairs page and
// the pair it belongs to.
func (t *Tutorial) Highlighted() (puzzle.Pos, [2]puzzle.Pos) {
	if len(t.pairs) == 0 {
		return puzzle.Pos{}, [2]puzzle.Pos{}
	}
	pair := t.pairs[t.pairIndex]
	return pair[t.phase], pair
}

// Render draws the current tutorial page.
func (t *Tutorial) Render(dst *core.Screen) {
	dst.Clear()
	if t.tooSmall {
		renderTooSmall(dst)
		return
	}

	dst.DrawTextCentered(0, fmt.Sprintf("How to Play (%d/%d)", t.page+1, pageCount), core.ColorBrightWhite)

	switch t.page {
	case PagePairs:
		t.renderPairs(dst)
	case PageSearch:
		t.renderSearch(dst)
	case PageDragDrop:
		t.renderDragDrop(dst)
	}

	h := dst.Height()
	if t.done {
		dst.DrawTextCentered(h-2, "Tutorial complete! R to replay, Q to quit", core.ColorBrightGreen)
	}
	dst.DrawTextCentered(h-1, "left/right change page  space next  q quit", core.ColorGray)
}

func ruleDescription(r puzzle.Rule) string {
	if r.Name() == (puzzle.VerticalMirror{}).Name() {
		return "the tile mirrored across the middle column"
	}
	return "the tile mirrored through the centre of the picture"
}

func (t *Tutorial) renderPairs(dst *core.Screen) {
	dst.DrawTextCentered(1, "Every tile pairs with "+ruleDescription(t.rule)+".", core.ColorDefault)

	for i, f := range t.faces {
		drawPixels(dst, t.layout.grid.Cell(i/tutorialSize, i%tutorialSize), f)
	}

	pos, pair := t.Highlighted()
	cell := t.layout.grid.Cell(pos.Row, pos.Col)
	color := core.ColorBrightYellow
	if t.phase == 1 {
		color = core.ColorBrightCyan
	}
	for y := cell.Y; y < cell.Bottom(); y++ {
		dst.SetCell(cell.X-1, y, core.Cell{Rune: '▌', FG: color})
		dst.SetCell(cell.Right(), y, core.Cell{Rune: '▐', FG: color})
	}

	b := t.layout.grid.Bounds()
	dst.DrawTextCentered(b.Bottom()+1, fmt.Sprintf("%v pairs with %v", pair[0], pair[1]), color)
}

func (t *Tutorial) renderSearch(dst *core.Screen) {
	dst.DrawTextCentered(1, "Flip two tiles. A correct pair stays face-up; anything else flips back.", core.ColorDefault)
	if t.demo == nil {
		return
	}

	for _, tile := range t.demo.Tiles() {
		renderTile(dst, t.layout.grid.Cell(tile.Current.Row, tile.Current.Col), tile)
	}

	status := fmt.Sprintf("Searching... attempt %d", t.attempts)
	color := core.ColorYellow
	if t.found {
		status = fmt.Sprintf("Found a pair after %d attempts!", t.attempts)
		color = core.ColorBrightGreen
	}
	b := t.layout.grid.Bounds()
	dst.DrawTextCentered(b.Bottom()+1, status, color)
}

var dragDropText = []string{
	"Drag a face-up pair tile onto another cell to swap them.",
	"Keyboard: move with the arrows, g to grab, space to drop.",
	"Mouse: press on a face-up tile and release over the target.",
	"A tile dropped on its true place locks with a check mark.",
	"After every drop the unlocked tiles shuffle again!",
	"Press f to submit. Rebuild the picture before the clock runs out:",
	"every second left is worth points.",
}

func (t *Tutorial) renderDragDrop(dst *core.Screen) {
	y := 2
	for _, line := range dragDropText {
		dst.DrawTextCentered(y, line, core.ColorDefault)
		y++
	}

	if t.reference == nil {
		return
	}
	w := min(t.layout.grid.Bounds().W, dst.Width()-2)
	h := min(w/2, dst.Height()-y-4)
	if h < 2 {
		return
	}
	w = h * 2
	r := core.NewRect((dst.Width()-w)/2, y+1, w, h)
	drawPixels(dst, r, t.reference)
}
