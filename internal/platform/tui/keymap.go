package tui

import (
	"math"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/split-horizon/internal/core"
)

// HoldWindow is how long a lateral key counts as held after its last press.
// Terminals report key repeats, not key-up events.
const HoldWindow = 250 * time.Millisecond

// KeyMap defines the in-game key bindings.
type KeyMap struct {
	Flip       key.Binding
	Left       key.Binding
	Right      key.Binding
	Confirm    key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Back       key.Binding
	Quit       key.Binding
	Screenshot key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Flip, k.Left, k.Right, k.Pause, k.Restart, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Flip, k.Left, k.Right},
		{k.Confirm, k.Pause, k.Restart},
		{k.Back, k.Screenshot, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Flip: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "flip"),
		),
		Left: key.NewBinding(
			key.WithKeys("a", "left"),
			key.WithHelp("a/←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("d", "right"),
			key.WithHelp("d/→", "right"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "next level"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Back: key.NewBinding(
			key.WithKeys("b", "esc"),
			key.WithHelp("b/esc", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
	}
}

// arrowEdges maps arrow keys to the edge actions read by cheat codes.
var arrowEdges = map[string]core.Action{
	"up":    core.ActionArrowUp,
	"down":  core.ActionArrowDown,
	"left":  core.ActionArrowLeft,
	"right": core.ActionArrowRight,
}

// Apply maps a key onto the frame and the lateral latch.
// Returns true if the key was a quit request.
func (k KeyMap) Apply(msg tea.KeyMsg, frame *core.InputFrame, latch *LateralLatch) bool {
	if key.Matches(msg, k.Quit) {
		frame.Set(core.ActionQuit)
		return true
	}

	if edge, ok := arrowEdges[msg.String()]; ok {
		frame.Set(edge)
	}

	switch {
	case key.Matches(msg, k.Flip):
		frame.Set(core.ActionFlip)
	case key.Matches(msg, k.Left):
		latch.Press(core.ActionLeft)
	case key.Matches(msg, k.Right):
		latch.Press(core.ActionRight)
	case key.Matches(msg, k.Confirm):
		frame.Set(core.ActionConfirm)
	case key.Matches(msg, k.Pause):
		frame.Set(core.ActionPause)
	case key.Matches(msg, k.Restart):
		frame.Set(core.ActionRestart)
	case key.Matches(msg, k.Back):
		frame.Set(core.ActionBack)
	}
	return false
}

// LateralLatch turns repeated lateral key presses into a held state.
type LateralLatch struct {
	frames int // hold length in frames
	left   int
	right  int
}

// NewLateralLatch creates a latch holding for HoldWindow at the given tick rate.
func NewLateralLatch(tickRate int) *LateralLatch {
	if tickRate <= 0 {
		tickRate = 60
	}
	frames := int(math.Ceil(HoldWindow.Seconds() * float64(tickRate)))
	return &LateralLatch{frames: max(frames, 1)}
}

// Press latches a direction, releasing the opposite one.
func (l *LateralLatch) Press(a core.Action) {
	switch a {
	case core.ActionLeft:
		l.left, l.right = l.frames, 0
	case core.ActionRight:
		l.right, l.left = l.frames, 0
	}
}

// Apply marks latched directions as held on frame and ages the latch by one frame.
func (l *LateralLatch) Apply(frame *core.InputFrame) {
	if l.left > 0 {
		frame.Hold(core.ActionLeft)
		l.left--
	}
	if l.right > 0 {
		frame.Hold(core.ActionRight)
		l.right--
	}
}

// Release drops any latched direction.
func (l *LateralLatch) Release() {
	l.left, l.right = 0, 0
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionScoreboard
	MenuActionBack
	MenuActionQuit
)

// MenuKeyMap defines key bindings for the level menu.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Scores key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Scores, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Select}, {k.Scores, k.Back, k.Quit}}
}

// DefaultMenuKeyMap returns default menu key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Scores: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "scores"),
		),
		Back: key.NewBinding(
			key.WithKeys("b", "esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MapKeyToMenuAction translates a key to a menu action.
func (k MenuKeyMap) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch {
	case key.Matches(msg, k.Quit):
		return MenuActionQuit
	case key.Matches(msg, k.Up):
		return MenuActionUp
	case key.Matches(msg, k.Down):
		return MenuActionDown
	case key.Matches(msg, k.Select):
		return MenuActionSelect
	case key.Matches(msg, k.Scores):
		return MenuActionScoreboard
	case key.Matches(msg, k.Back):
		return MenuActionBack
	}
	return MenuActionNone
}
