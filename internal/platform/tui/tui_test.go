package tui

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/memory-mosaic/internal/audio"
	"github.com/vovakirdan/memory-mosaic/internal/core"
	"github.com/vovakirdan/memory-mosaic/internal/registry"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{runeKey("s"), core.ActionDown},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{runeKey("d"), core.ActionRight},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionFlip},
		{runeKey("g"), core.ActionGrab},
		{runeKey("f"), core.ActionFinish},
		{runeKey("n"), core.ActionNext},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack},
		{runeKey("p"), core.ActionPause},
		{runeKey("r"), core.ActionRestart},
		{runeKey("q"), core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{runeKey("?"), core.ActionNone},
		{runeKey("z"), core.ActionNone},
	}

	for _, tc := range tests {
		if got := keys.MapKey(tc.msg); got != tc.want {
			t.Errorf("MapKey(%q) = %s, want %s", tc.msg.String(), got, tc.want)
		}
	}
}

func TestMapKeyToFrame(t *testing.T) {
	keys := DefaultKeyMap()
	frame := core.NewInputFrame()

	if keys.MapKeyToFrame(runeKey("g"), &frame) {
		t.Error("g reported as quit")
	}
	if !frame.Has(core.ActionGrab) {
		t.Error("grab not set")
	}
	if !keys.MapKeyToFrame(runeKey("q"), &frame) {
		t.Error("q not reported as quit")
	}
	if frame.Has(core.ActionQuit) {
		t.Error("quit should not reach the game")
	}
}

func TestMapMouseToFrame(t *testing.T) {
	frame := core.NewInputFrame()
	MapMouseToFrame(tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, &frame)
	MapMouseToFrame(tea.MouseMsg{X: 5, Y: 6, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}, &frame)
	MapMouseToFrame(tea.MouseMsg{X: 7, Y: 8, Action: tea.MouseActionPress, Button: tea.MouseButtonRight}, &frame)
	MapMouseToFrame(tea.MouseMsg{X: 9, Y: 1, Action: tea.MouseActionRelease}, &frame)

	want := []core.PointerEvent{
		{Kind: core.PointerPress, X: 3, Y: 4},
		{Kind: core.PointerRelease, X: 9, Y: 1},
	}
	if len(frame.Pointer) != len(want) {
		t.Fatalf("pointer events %v, want %v", frame.Pointer, want)
	}
	for i := range want {
		if frame.Pointer[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, frame.Pointer[i], want[i])
		}
	}
}

func TestMenuKeys(t *testing.T) {
	keys := DefaultMenuKeyMap()
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{runeKey("k"), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyRight}, MenuActionNextPicture},
		{tea.KeyMsg{Type: tea.KeyLeft}, MenuActionPrevPicture},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionDifficulty},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey("q"), MenuActionQuit},
		{runeKey("x"), MenuActionNone},
	}
	for _, tc := range tests {
		if got := keys.MapKeyToMenuAction(tc.msg); got != tc.want {
			t.Errorf("MapKeyToMenuAction(%q) = %d, want %d", tc.msg.String(), got, tc.want)
		}
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 2)
	s.DrawText(0, 0, "plain")
	s.DrawTextColor(0, 1, "red", core.ColorRed)
	s.SetCell(4, 1, core.Cell{Rune: '▀', FG: core.ANSI(196), BG: core.ANSI(21)})

	out := NewRenderer().Render(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0] != "plain       " {
		t.Errorf("default-colored row = %q", lines[0])
	}
	for _, want := range []string{"red", "▀"} {
		if !strings.Contains(lines[1], want) {
			t.Errorf("colored row %q missing %q", lines[1], want)
		}
	}
}

func TestRendererCachesStyles(t *testing.T) {
	r := NewRenderer()
	s := core.NewScreen(4, 1)
	s.FillRect(core.NewRect(0, 0, 2, 1), core.Cell{Rune: 'x', FG: core.ColorGreen, BG: core.ColorSand})
	s.FillRect(core.NewRect(2, 0, 2, 1), core.Cell{Rune: 'y', FG: core.ColorGreen})

	r.Render(s)
	r.Render(s)
	if len(r.styles) != 2 {
		t.Errorf("cached %d styles, want 2", len(r.styles))
	}
}

// fakeGame records what the model does to it.
type fakeGame struct {
	resets   int
	steps    int
	resized  [2]int
	last     core.InputFrame
	state    core.GameState
	cues     []audio.Cue
	warnings []string
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }
func (g *fakeGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.state = core.GameState{}
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.last = core.InputFrame{Actions: map[core.Action]bool{}}
	for a, on := range in.Actions {
		g.last.Actions[a] = on
	}
	g.last.Pointer = append([]core.PointerEvent(nil), in.Pointer...)
	return core.StepResult{State: g.state}
}

func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "fake game") }
func (g *fakeGame) State() core.GameState   { return g.state }
func (g *fakeGame) Resize(w, h int)         { g.resized = [2]int{w, h} }
func (g *fakeGame) Warnings() []string      { return g.warnings }

func (g *fakeGame) DrainCues() []audio.Cue {
	out := g.cues
	g.cues = nil
	return out
}

var (
	_ registry.Resizer = (*fakeGame)(nil)
	_ registry.Warner  = (*fakeGame)(nil)
)

type recordPlayer struct {
	effects []string
	loops   []string
}

func (p *recordPlayer) PlayEffect(name string) { p.effects = append(p.effects, name) }
func (p *recordPlayer) PlayLoop(name string)   { p.loops = append(p.loops, name) }
func (p *recordPlayer) SetVolume(float64)      {}

func newTestModel(g *fakeGame, opts ModelOptions) Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return NewModel(g, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 30, Seed: 1}, opts)
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func TestModelForwardsInputOnTick(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g, ModelOptions{})
	m.Init()

	m = update(t, m, runeKey("f"))
	m = update(t, m, tea.MouseMsg{X: 2, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(t, m, TickMsg{})

	if g.steps != 1 || !g.last.Has(core.ActionFinish) || len(g.last.Pointer) != 1 {
		t.Fatalf("step %d saw %+v", g.steps, g.last)
	}

	m = update(t, m, TickMsg{})
	if g.last.Has(core.ActionFinish) || len(g.last.Pointer) != 0 {
		t.Error("input not cleared after a tick")
	}
	if !strings.Contains(m.View(), "fake game") {
		t.Error("view does not show the game")
	}
}

func TestModelPlaysCues(t *testing.T) {
	g := &fakeGame{cues: []audio.Cue{{Name: audio.LoopBackground, Loop: true}}}
	p := &recordPlayer{}
	m := newTestModel(g, ModelOptions{Player: p})
	m.Init()

	g.cues = []audio.Cue{{Name: audio.CuePair}, {Name: audio.CueLock}}
	update(t, m, TickMsg{})

	if len(p.loops) != 1 || p.loops[0] != audio.LoopBackground {
		t.Errorf("loops = %v", p.loops)
	}
	if strings.Join(p.effects, ",") != "pair,lock" {
		t.Errorf("effects = %v", p.effects)
	}
}

func TestModelLogsWarnings(t *testing.T) {
	var buf bytes.Buffer
	g := &fakeGame{warnings: []string{"picture missing"}}
	m := newTestModel(g, ModelOptions{Logger: log.New(&buf)})
	m.Init()

	if !strings.Contains(buf.String(), "picture missing") {
		t.Errorf("warning not logged: %q", buf.String())
	}
}

func TestModelResizeKeepsSession(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g, ModelOptions{})
	m.Init()

	update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if g.resized != [2]int{100, 30} {
		t.Errorf("resized to %v", g.resized)
	}
	if g.resets != 1 {
		t.Errorf("resize reset the game (%d resets)", g.resets)
	}
}

func TestModelRestartAfterGameOver(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g, ModelOptions{})
	m.Init()

	g.state.GameOver = true
	m = update(t, m, TickMsg{})
	m = update(t, m, runeKey("r"))
	m = update(t, m, TickMsg{})

	if g.resets != 2 {
		t.Errorf("resets = %d, want 2", g.resets)
	}
	if m.GameState().GameOver {
		t.Error("state still game over after restart")
	}
}

func TestModelBackToMenu(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g, ModelOptions{Embedded: true})
	m.Init()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("back during play must not leave the game")
	}

	g.state.GameOver = true
	m = update(t, m, TickMsg{})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("back on a finished game should return to the menu")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(&fakeGame{}, ModelOptions{})
	next, cmd := m.Update(runeKey("q"))
	if cmd == nil || !next.(Model).IsQuitting() {
		t.Error("q did not quit")
	}
	if next.(Model).View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestModelScreenshot(t *testing.T) {
	dir := t.TempDir()
	m := newTestModel(&fakeGame{}, ModelOptions{ScreenshotDir: dir})
	update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	files, err := filepath.Glob(filepath.Join(dir, "fake_*.txt"))
	if err != nil || len(files) != 1 {
		t.Fatalf("screenshots = %v, err %v", files, err)
	}
	data, err := os.ReadFile(files[0])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "fake game") {
		t.Errorf("screenshot content %q", data)
	}
}

func TestModelHelpToggle(t *testing.T) {
	m := newTestModel(&fakeGame{}, ModelOptions{})
	m = update(t, m, runeKey("?"))
	if !strings.Contains(m.View(), "grab") {
		t.Error("help view not shown")
	}
	m = update(t, m, runeKey("?"))
	if strings.Contains(m.View(), "grab") {
		t.Error("help view not hidden")
	}
}

func TestMenuSelection(t *testing.T) {
	registerMenuGames()
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24}
	menu := NewMenuModel(cfg, MenuChoices{
		Pictures:     []string{"aurora", "sunset"},
		Difficulties: []string{"easy", "hard"},
	})

	step := func(msg tea.KeyMsg) {
		next, _ := menu.Update(msg)
		menu = next.(MenuModel)
	}
	step(tea.KeyMsg{Type: tea.KeyLeft})
	step(tea.KeyMsg{Type: tea.KeyTab})
	step(tea.KeyMsg{Type: tea.KeyDown})
	step(tea.KeyMsg{Type: tea.KeyEnter})

	sel := menu.Selected()
	if sel == nil {
		t.Fatal("nothing selected")
	}
	games := registry.List()
	if sel.GameID != games[1].ID || sel.Picture != "sunset" || sel.Difficulty != "hard" {
		t.Errorf("selection %+v", sel)
	}
}

func registerMenuGames() {
	for _, id := range []string{"menu_test_a", "menu_test_b"} {
		if !registry.Exists(id) {
			registry.Register(id, func() registry.Game { return &fakeGame{} })
		}
	}
}

func TestCycle(t *testing.T) {
	tests := []struct{ i, delta, n, want int }{
		{0, 1, 3, 1},
		{2, 1, 3, 0},
		{0, -1, 3, 2},
		{0, 1, 0, 0},
	}
	for _, tc := range tests {
		if got := cycle(tc.i, tc.delta, tc.n); got != tc.want {
			t.Errorf("cycle(%d, %d, %d) = %d, want %d", tc.i, tc.delta, tc.n, got, tc.want)
		}
	}
}
