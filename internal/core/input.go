package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows levels to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone       Action = iota
	ActionFlip              // Space - flip gravity
	ActionLeft              // A, Left arrow - lateral movement (held)
	ActionRight             // D, Right arrow - lateral movement (held)
	ActionArrowUp           // Up arrow edge, feeds cheat codes
	ActionArrowDown         // Down arrow edge, feeds cheat codes
	ActionArrowLeft         // Left arrow edge, feeds cheat codes
	ActionArrowRight        // Right arrow edge, feeds cheat codes
	ActionConfirm           // Enter - continue to the next level
	ActionBack              // B, Escape - go back to menu
	ActionRestart           // R key - restart after game over
	ActionQuit              // Q, Ctrl+C - exit game/session
	ActionPause             // P - pause/unpause
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionFlip:
		return "Flip"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionArrowUp:
		return "ArrowUp"
	case ActionArrowDown:
		return "ArrowDown"
	case ActionArrowLeft:
		return "ArrowLeft"
	case ActionArrowRight:
		return "ArrowRight"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state for one platform frame.
// Actions holds key-down edges; Held holds continuous state such as lateral keys.
type InputFrame struct {
	Actions map[Action]bool
	Held    map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
		Held:    make(map[Action]bool),
	}
}

// Set marks an action as pressed this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Hold marks an action as held down during this frame.
func (f *InputFrame) Hold(a Action) {
	if f.Held == nil {
		f.Held = make(map[Action]bool)
	}
	f.Held[a] = true
}

// Has returns true if the given action was pressed this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// IsHeld returns true if the given action is held this frame.
func (f InputFrame) IsHeld(a Action) bool {
	if f.Held == nil {
		return false
	}
	return f.Held[a]
}

// Lateral returns the lateral axis in [-1, 1]: -1 left, +1 right, 0 none or both.
func (f InputFrame) Lateral() float64 {
	axis := 0.0
	if f.IsHeld(ActionRight) {
		axis++
	}
	if f.IsHeld(ActionLeft) {
		axis--
	}
	return axis
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	for k := range f.Held {
		delete(f.Held, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	for k, v := range f.Held {
		clone.Held[k] = v
	}
	return clone
}
