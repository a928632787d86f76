package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/split-horizon/internal/core"
	"github.com/vovakirdan/split-horizon/internal/registry"
	"github.com/vovakirdan/split-horizon/internal/storage"
)

// MenuItem is one campaign level with its run record.
type MenuItem struct {
	LevelID string
	Title   string
	Number  int // 1-based campaign position
	Best    int // best score, 0 when unplayed or without storage
	Runs    int
	Cleared int
	Flips   int64
}

// record is the right-hand column of a menu line.
func (it MenuItem) record() string {
	switch {
	case it.Runs == 0:
		return "new"
	case it.Cleared > 0:
		return fmt.Sprintf("best %d *", it.Best)
	default:
		return fmt.Sprintf("best %d", it.Best)
	}
}

// MenuModel is the level picker.
type MenuModel struct {
	items  []MenuItem
	cursor int
	config core.RuntimeConfig
	keys   MenuKeyMap
	help   help.Model

	standalone     bool // quit the program on selection
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel lists the campaign with each level's record from store.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	var stats map[string]*storage.LevelStats
	if store != nil {
		stats, _ = store.GetAllLevelStats()
	}

	levels := registry.List()
	items := make([]MenuItem, len(levels))
	for i, l := range levels {
		items[i] = MenuItem{LevelID: l.ID, Title: l.Title, Number: i + 1}
		if st, ok := stats[l.ID]; ok {
			items[i].Best = st.HighScore
			items[i].Runs = st.RunsCount
			items[i].Cleared = st.Completions
			items[i].Flips = st.TotalFlips
		}
	}

	m := MenuModel{
		items:  items,
		config: cfg,
		keys:   DefaultMenuKeyMap(),
		help:   help.New(),
	}
	m.help.Width = cfg.ScreenW
	return m
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
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Digits pick a level by its campaign number.
	if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		if i := int(s[0] - '1'); i < len(m.items) {
			m.cursor = i
			return m.choose()
		}
		return m, nil
	}

	switch m.keys.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		m.cursor = max(m.cursor-1, 0)
	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		return m.choose()
	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, m.exit()
	}
	return m, nil
}

func (m MenuModel) choose() (tea.Model, tea.Cmd) {
	if len(m.items) == 0 {
		return m, nil
	}
	it := m.items[m.cursor]
	m.selected = &it
	return m, m.exit()
}

// exit ends the program only when the menu runs on its own; inside an SSH
// session the parent model reads the result instead.
func (m MenuModel) exit() tea.Cmd {
	if m.standalone {
		return tea.Quit
	}
	return nil
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51"))
	menuRuleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	menuPickStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
)

// View renders the menu: the level list sits between a ceiling and a ground rule.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	titleW := 0
	for _, it := range m.items {
		titleW = max(titleW, lipgloss.Width(it.Title))
	}
	rowW := titleW + 22
	w := m.config.ScreenW

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(centerText("S P L I T   H O R I Z O N", w)))
	b.WriteString("\n\n")
	b.WriteString(centerText(menuRuleStyle.Render(strings.Repeat("▔", rowW)), w))
	b.WriteString("\n")

	for i, it := range m.items {
		line := fmt.Sprintf("  %d. %-*s  %12s", it.Number, titleW, it.Title, it.record())
		if i == m.cursor {
			line = menuPickStyle.Render("> " + line[2:])
		}
		b.WriteString(centerText(line, w))
		b.WriteString("\n")
	}

	b.WriteString(centerText(menuRuleStyle.Render(strings.Repeat("▁", rowW)), w))
	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render(m.summary()), w))
	b.WriteString("\n\n")
	b.WriteString(centerText(helpStyle.Render(m.help.View(m.keys)), w))
	b.WriteString("\n")
	return b.String()
}

// summary describes the highlighted level's history.
func (m MenuModel) summary() string {
	if len(m.items) == 0 {
		return "no levels registered"
	}
	it := m.items[m.cursor]
	if it.Runs == 0 {
		return "not played yet"
	}
	return fmt.Sprintf("%d runs, %d cleared, %d flips", it.Runs, it.Cleared, it.Flips)
}

// Selected returns the chosen level, or nil.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the runtime config, resized to the latest window.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText pads text on the left to center it within width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult is what the standalone menu ended with.
type MenuResult struct {
	LevelID         string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu shows the menu on its own and reports the user's choice.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(store, cfg)
	model.standalone = true

	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	res := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		res.WantsScoreboard = true
	case m.Selected() != nil:
		res.LevelID = m.Selected().LevelID
	default:
		res.Quit = true
	}
	return res, nil
}
