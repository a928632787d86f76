package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/split-horizon/internal/core"
	"github.com/vovakirdan/split-horizon/internal/registry"
	"github.com/vovakirdan/split-horizon/internal/runner"
	"github.com/vovakirdan/split-horizon/internal/storage"
)

const (
	minWidthForPanel = 84 // below this the run detail goes under the table
	panelWidth       = 26
	maxRuns          = 100
)

// historyView selects which runs the scoreboard lists.
type historyView int

const (
	viewFurthest historyView = iota
	viewRecent
)

func (v historyView) String() string {
	if v == viewRecent {
		return "RECENT RUNS"
	}
	return "FURTHEST RUNS"
}

// ScoreboardKeyMap defines the key bindings for the run history screen.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Prev    key.Binding
	Next    key.Binding
	View    key.Binding
	Cleared key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.View, k.Cleared, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Prev, k.Next},
		{k.View, k.Cleared, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Prev:    key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "prev level")),
		Next:    key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/tab", "next level")),
		View:    key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "furthest/recent")),
		Cleared: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cleared only")),
		Back:    key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel browses the stored runs of each campaign level.
type ScoreboardModel struct {
	store    *storage.Store
	levels   []registry.LevelInfo
	level    int
	view     historyView
	cleared  bool // hide crashed runs
	levelEnd float64

	runs  []storage.Run
	stats *storage.LevelStats

	table table.Model
	bar   progress.Model
	help  help.Model
	keys  ScoreboardKeyMap

	width, height int
	standalone    bool // quit the program on back
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel creates the run history screen for the first level.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:    store,
		levels:   registry.List(),
		levelEnd: levelEndZ(),
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		help:     help.New(),
		keys:     DefaultScoreboardKeyMap(),
		width:    width,
		height:   height,
	}
	m.help.Width = width
	m.layout()
	m.reload()
	return m
}

// levelEndZ is the distance a cleared run covers, 0 when levels are endless.
func levelEndZ() float64 {
	cfg := runner.LoadConfig()
	if cfg.Locomotion.LevelEndZ == nil {
		return 0
	}
	return *cfg.Locomotion.LevelEndZ
}

func (m ScoreboardModel) wide() bool { return m.width >= minWidthForPanel }

// layout rebuilds the table for the current size.
func (m *ScoreboardModel) layout() {
	dateW := 12
	avail := m.width - 6
	if m.wide() {
		avail -= panelWidth + 4
	}
	if avail > 56 {
		dateW = 12 + min(avail-56, 4)
	}

	rows := m.height - 12 // title, tabs, stats, borders, help
	if !m.wide() {
		rows -= 5 // detail lines under the table
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Distance", Width: 9},
			{Title: "Cleared", Width: 7},
			{Title: "Flips", Width: 5},
			{Title: "Time", Width: 6},
			{Title: "Played", Width: dateW},
		}),
		table.WithFocused(true),
		table.WithHeight(max(rows, 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("16")).
		Background(lipgloss.Color("51")).
		Bold(false)
	t.SetStyles(s)
	m.table = t

	m.bar.Width = panelWidth - 4
	if !m.wide() {
		m.bar.Width = max(min(m.width-20, 40), 10)
	}
}

// reload fetches the runs for the current level, view and filter.
func (m *ScoreboardModel) reload() {
	m.runs, m.stats = nil, nil
	if m.store != nil && len(m.levels) > 0 {
		id := m.levels[m.level].ID
		m.runs = m.fetch(id)
		if stats, err := m.store.GetLevelStats(id); err == nil {
			m.stats = stats
		}
	}
	m.fillTable()
}

func (m *ScoreboardModel) fetch(levelID string) []storage.Run {
	var runs []storage.Run
	var err error
	if m.view == viewRecent {
		runs, err = m.store.RecentRuns(maxRuns)
	} else {
		runs, err = m.store.TopRuns(levelID, maxRuns)
	}
	if err != nil {
		return nil
	}
	out := runs[:0]
	for _, r := range runs {
		if r.LevelID != levelID || (m.cleared && !r.Completed) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (m *ScoreboardModel) fillTable() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		cleared := "-"
		if r.Completed {
			cleared = "yes"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%.1f", r.Distance),
			cleared,
			fmt.Sprintf("%d", r.Flips),
			clock(r.Duration),
			r.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// clock formats a run duration as m:ss.
func clock(d time.Duration) string {
	s := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

// Selected returns the run under the cursor.
func (m ScoreboardModel) Selected() (storage.Run, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.runs) {
		return storage.Run{}, false
	}
	return m.runs[i], true
}

// completion is the share of the level a run covered.
func (m ScoreboardModel) completion(r storage.Run) float64 {
	if r.Completed {
		return 1
	}
	if m.levelEnd <= 0 {
		return 0
	}
	return core.Clamp01(r.Distance / m.levelEnd)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.standalone {
				return m, tea.Quit
			}
			return m, nil
		case key.Matches(msg, m.keys.Next):
			m.shiftLevel(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.shiftLevel(-1)
			return m, nil
		case key.Matches(msg, m.keys.View):
			m.view = 1 - m.view
			m.reload()
			return m, nil
		case key.Matches(msg, m.keys.Cleared):
			m.cleared = !m.cleared
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.layout()
		m.fillTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) shiftLevel(d int) {
	if n := len(m.levels); n > 0 {
		m.level = (m.level + d + n) % n
		m.reload()
	}
}

var (
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245"))
	activeTabStyle = tabStyle.Foreground(lipgloss.Color("16")).Background(lipgloss.Color("51")).Bold(true)
	boxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := m.view.String()
	if len(m.levels) > 0 {
		title += " - " + m.levels[m.level].Title
	}
	if m.cleared {
		title += " (cleared)"
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51")).Render(centerText(title, m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tabs(), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render(m.statsLine()), m.width))
	b.WriteString("\n\n")

	body := boxStyle.Render(m.tableView())
	if m.wide() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ",
			boxStyle.Width(panelWidth).Render(m.detail()))
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, body, m.detail())
	}
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// tabs lists the campaign with the current level highlighted.
func (m ScoreboardModel) tabs() string {
	parts := make([]string, len(m.levels))
	for i, l := range m.levels {
		label := fmt.Sprintf("%d %s", i+1, l.ID)
		if i == m.level {
			parts[i] = activeTabStyle.Render(label)
		} else {
			parts[i] = tabStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// statsLine summarises the selected level.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.RunsCount == 0 {
		return "no runs yet"
	}
	line := fmt.Sprintf("%d runs  %d cleared  %d flips  avg %.1f",
		m.stats.RunsCount, m.stats.Completions, m.stats.TotalFlips, m.stats.AvgDistance)
	if !m.stats.LastPlayed.IsZero() {
		line += "  last " + m.stats.LastPlayed.Local().Format("Jan 02")
	}
	return line
}

func (m ScoreboardModel) tableView() string {
	if len(m.runs) != 0 {
		return m.table.View()
	}
	msg := "No runs recorded yet.\nPlay the level to set a distance!"
	if m.cleared {
		msg = "No cleared runs yet."
	}
	return dimStyle.Italic(true).Padding(2, 4).Render(msg)
}

// detail describes the run under the cursor.
func (m ScoreboardModel) detail() string {
	r, ok := m.Selected()
	if !ok {
		return dimStyle.Render("Select a run")
	}

	outcome := "crashed"
	if r.Completed {
		outcome = "cleared"
	}
	rate := 0.0
	if secs := r.Duration.Seconds(); secs > 0 {
		rate = float64(r.Flips) / secs * 60
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s at %.1f\n", outcome, r.Distance)
	b.WriteString(m.bar.ViewAs(m.completion(r)))
	fmt.Fprintf(&b, "\n%.0f%% of the level\n", m.completion(r)*100)
	fmt.Fprintf(&b, "%d flips (%.1f/min)\n", r.Flips, rate)
	fmt.Fprintf(&b, "seed %d", r.Seed)
	return b.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the run history on its own. It reports whether the
// user went back to the menu rather than quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(store, width, height)
	model.standalone = true

	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
