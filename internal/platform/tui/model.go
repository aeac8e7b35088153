package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/memory-mosaic/internal/audio"
	"github.com/vovakirdan/memory-mosaic/internal/core"
	"github.com/vovakirdan/memory-mosaic/internal/registry"
)

// cueSource is implemented by games that emit sound cues.
type cueSource interface {
	DrainCues() []audio.Cue
}

// ModelOptions configures the platform side of a game model.
type ModelOptions struct {
	Player        audio.Player // nil plays nothing
	Logger        *log.Logger  // nil uses the default logger
	ScreenshotDir string       // empty uses ~/.mosaic/screenshots
	Embedded      bool         // Back on a finished or paused game returns to the menu
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	renderer   *Renderer
	keys       KeyMap
	help       help.Model
	config     core.RuntimeConfig
	opts       ModelOptions
	inputFrame core.InputFrame
	gameState  core.GameState
	showHelp   bool
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts ModelOptions) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if opts.Player == nil {
		opts.Player = audio.Nop{}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		renderer:   NewRenderer(),
		keys:       DefaultKeyMap(),
		help:       help.New(),
		config:     cfg,
		opts:       opts,
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.resetGame()
	// gameState is set on the first tick (value receiver)
	return tickCmd(m.config.TickRate)
}

// resetGame restarts the game and reports its fallbacks.
func (m *Model) resetGame() {
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	if w, ok := m.game.(registry.Warner); ok {
		for _, warning := range w.Warnings() {
			m.opts.Logger.Warn("game fell back to defaults", "game", m.game.ID(), "warning", warning)
		}
	}
	m.playCues()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		if err := m.saveScreenshot(); err != nil {
			m.opts.Logger.Error("screenshot failed", "error", err)
		}
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.opts.Embedded && key.Matches(msg, m.keys.Back) && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
	}
	return m, nil
}

// handleResize processes window resize events. Games that can relayout keep
// their session; the rest restart at the new size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.help.Width = msg.Width

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
		m.gameState = m.game.State()
		return m, nil
	}
	if !m.gameState.GameOver {
		m.resetGame()
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.resetGame()
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	if result.State.GameOver && !m.gameState.GameOver {
		m.opts.Logger.Info("game over", "game", m.game.ID(), "score", result.State.Score, "won", result.State.Won)
	}
	m.gameState = result.State
	m.playCues()

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// playCues forwards the game's pending sound cues to the player.
func (m *Model) playCues() {
	src, ok := m.game.(cueSource)
	if !ok {
		return
	}
	for _, c := range src.DrainCues() {
		c.Play(m.opts.Player)
	}
}

// saveScreenshot saves the current screen as plain text.
func (m *Model) saveScreenshot() error {
	m.game.Render(m.screen)

	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home directory: %w", err)
		}
		dir = filepath.Join(home, ".mosaic", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create screenshot directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return fmt.Errorf("write screenshot: %w", err)
	}
	m.opts.Logger.Info("screenshot saved", "path", path)
	return nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	out := m.renderer.Render(m.screen)
	if !m.showHelp {
		return out
	}

	// The help view replaces the bottom rows of the game.
	helpView := m.help.View(m.keys)
	helpRows := strings.Count(helpView, "\n") + 1
	lines := strings.Split(out, "\n")
	keep := max(len(lines)-helpRows, 0)
	return strings.Join(lines[:keep], "\n") + "\n" + helpView
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// GameState returns the state seen on the last tick.
func (m Model) GameState() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts ModelOptions) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
