package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/split-horizon/internal/core"
	"github.com/vovakirdan/split-horizon/internal/replay"
	"github.com/vovakirdan/split-horizon/internal/runner"
	"github.com/vovakirdan/split-horizon/internal/storage"
)

// Options are the optional collaborators of a Model. Zero values disable them.
type Options struct {
	Store   *storage.Store
	Logger  *log.Logger
	Metrics *Metrics
	Record  bool // capture a replay of the run
	InMenu  bool // Back returns to the menu instead of quitting
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for playing a level.
type Model struct {
	game       *runner.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	opts       Options
	logger     *log.Logger
	keys       KeyMap
	help       help.Model
	latch      *LateralLatch
	inputFrame core.InputFrame
	gameState  core.GameState
	recorder   *replay.Recorder
	runSaved   bool // whether the current level attempt has been recorded
	quitting   bool
	backToMenu bool
}

// NewModel creates a model for game and starts the run.
func NewModel(game *runner.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.Width = cfg.ScreenW

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, playHeight(cfg.ScreenH)),
		config:     cfg,
		opts:       opts,
		logger:     logger,
		keys:       DefaultKeyMap(),
		help:       h,
		latch:      NewLateralLatch(cfg.TickRate),
		inputFrame: core.NewInputFrame(),
	}
	m.start()
	return m
}

// playHeight leaves the bottom row for the help line.
func playHeight(h int) int {
	return max(h-1, 1)
}

// start resets the game and, when recording, begins a fresh replay.
func (m *Model) start() {
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.runSaved = false
	m.latch.Release()
	m.recorder = nil
	if m.opts.Record {
		rec, err := replay.NewRecorder(m.game)
		if err != nil {
			m.logger.Warn("recording disabled", "error", err)
			return
		}
		m.recorder = rec
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	if m.keys.Apply(msg, &m.inputFrame, m.latch) {
		m.quitting = true
		return m, tea.Quit
	}

	// Back leaves the run once it is paused or over
	if m.inputFrame.Has(core.ActionBack) && (m.gameState.Paused || m.gameState.GameOver || m.gameState.LevelComplete) {
		m.backToMenu = true
		if !m.opts.InMenu {
			return m, tea.Quit
		}
	}

	return m, nil
}

// handleResize processes window resize events. The run keeps going; only the
// view size changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, playHeight(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick advances the run by one frame.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	if m.inputFrame.Has(core.ActionRestart) {
		m.config.Seed = time.Now().UnixNano()
		m.start()
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	m.latch.Apply(&m.inputFrame)
	if m.recorder != nil {
		m.recorder.Record(m.inputFrame)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.trackRun()

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// trackRun records each level attempt once, when it is won or lost.
func (m *Model) trackRun() {
	ended := m.gameState.GameOver || m.gameState.LevelComplete
	if !ended {
		m.runSaved = false
		return
	}
	if m.runSaved {
		return
	}
	m.runSaved = true

	st := m.game.Stats()
	m.opts.Metrics.ObserveRun(st)
	m.logger.Info("run finished",
		"level", st.Level,
		"distance", fmt.Sprintf("%.1f", st.Distance),
		"complete", st.Complete,
		"flips", st.Flips,
	)

	if m.opts.Store == nil || (m.gameState.Score == 0 && !st.Complete) {
		return
	}
	_, err := m.opts.Store.SaveRun(storage.Run{
		LevelID:   st.Level,
		Seed:      m.config.Seed,
		Score:     m.gameState.Score,
		Distance:  st.Distance,
		Completed: st.Complete,
		Flips:     st.Flips,
		Duration:  time.Duration(st.SimTime * float64(time.Second)),
	})
	if err != nil {
		m.logger.Warn("could not save run", "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".horizon", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Replay returns the recording of the current run, if recording.
func (m Model) Replay() (replay.Replay, bool) {
	if m.recorder == nil {
		return replay.Replay{}, false
	}
	return m.recorder.Replay(), true
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Config returns the current runtime config.
func (m Model) Config() core.RuntimeConfig {
	return m.config
}

// Run plays game in the terminal until the user quits. When recordPath is
// set, the run is saved there as a replay on exit.
func Run(game *runner.Game, cfg core.RuntimeConfig, opts Options, recordPath string) error {
	opts.Record = recordPath != ""
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return err
	}

	m, ok := final.(Model)
	if !ok || recordPath == "" {
		return nil
	}
	rec, ok := m.Replay()
	if !ok {
		return nil
	}
	if err := replay.Save(recordPath, rec); err != nil {
		return fmt.Errorf("tui: cannot save replay: %w", err)
	}
	return nil
}
