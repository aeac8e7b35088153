package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/memory-mosaic/internal/core"
	"github.com/vovakirdan/memory-mosaic/internal/registry"
)

// MenuChoices are the options the menu cycles through besides the game.
type MenuChoices struct {
	Pictures     []string
	Difficulties []string
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID     string
	Picture    string
	Difficulty string
	Config     core.RuntimeConfig
	Quit       bool
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("223"))
	menuLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	menuValueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
)

// MenuModel is the Bubble Tea model for the game picker.
type MenuModel struct {
	games      []registry.GameInfo
	table      table.Model
	help       help.Model
	keys       MenuKeyMap
	choices    MenuChoices
	picture    int
	difficulty int
	config     core.RuntimeConfig
	quitting   bool
	selected   *MenuResult
}

// NewMenuModel creates a new menu model.
func NewMenuModel(cfg core.RuntimeConfig, choices MenuChoices) MenuModel {
	m := MenuModel{
		games:   registry.List(),
		help:    help.New(),
		keys:    DefaultMenuKeyMap(),
		choices: choices,
		config:  cfg,
	}
	m.table = m.createTable()
	return m
}

func (m *MenuModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Game", Width: 26},
		{Title: "ID", Width: 18},
	}
	rows := make([]table.Row, len(m.games))
	for i, g := range m.games {
		rows[i] = table.Row{g.Title, g.ID}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(len(rows)+1, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		m.table.MoveUp(1)

	case MenuActionDown:
		m.table.MoveDown(1)

	case MenuActionNextPicture:
		m.picture = cycle(m.picture, 1, len(m.choices.Pictures))

	case MenuActionPrevPicture:
		m.picture = cycle(m.picture, -1, len(m.choices.Pictures))

	case MenuActionDifficulty:
		m.difficulty = cycle(m.difficulty, 1, len(m.choices.Difficulties))

	case MenuActionSelect:
		if len(m.games) == 0 {
			return m, nil
		}
		res := m.result()
		res.GameID = m.games[m.table.Cursor()].ID
		m.selected = &res
		return m, tea.Quit
	}

	return m, nil
}

func cycle(i, delta, n int) int {
	if n == 0 {
		return 0
	}
	return ((i+delta)%n + n) % n
}

func pick(items []string, i int) string {
	if len(items) == 0 {
		return ""
	}
	return items[i]
}

func (m MenuModel) result() MenuResult {
	return MenuResult{
		Picture:    pick(m.choices.Pictures, m.picture),
		Difficulty: pick(m.choices.Difficulties, m.difficulty),
		Config:     m.config,
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("M E M O R Y   M O S A I C"), m.config.ScreenW))
	b.WriteString("\n\n")
	b.WriteString(m.table.View())
	b.WriteString("\n\n")

	res := m.result()
	if res.Picture != "" {
		b.WriteString(menuLabelStyle.Render("Picture:    "))
		b.WriteString(menuValueStyle.Render(fmt.Sprintf("◀ %s ▶", res.Picture)))
		b.WriteString("\n")
	}
	if res.Difficulty != "" {
		b.WriteString(menuLabelStyle.Render("Difficulty: "))
		b.WriteString(menuValueStyle.Render(res.Difficulty))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the selection, or nil if none was made.
func (m MenuModel) Selected() *MenuResult {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(cfg core.RuntimeConfig, choices MenuChoices) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(cfg, choices), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok || m.IsQuitting() || m.Selected() == nil {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return *m.Selected(), nil
}
