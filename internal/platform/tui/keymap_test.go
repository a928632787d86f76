package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/split-horizon/internal/core"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyMapApply(t *testing.T) {
	tests := []struct {
		key  string
		want core.Action
	}{
		{" ", core.ActionFlip},
		{"enter", core.ActionConfirm},
		{"p", core.ActionPause},
		{"r", core.ActionRestart},
		{"esc", core.ActionBack},
		{"up", core.ActionArrowUp},
		{"down", core.ActionArrowDown},
	}

	keys := DefaultKeyMap()
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			frame := core.NewInputFrame()
			quit := keys.Apply(keyMsg(tt.key), &frame, NewLateralLatch(60))
			assert.False(t, quit)
			assert.True(t, frame.Has(tt.want), "expected %v", tt.want)
		})
	}
}

func TestKeyMapQuit(t *testing.T) {
	keys := DefaultKeyMap()
	for _, k := range []string{"q", "ctrl+c"} {
		frame := core.NewInputFrame()
		assert.True(t, keys.Apply(keyMsg(k), &frame, NewLateralLatch(60)), k)
	}
}

func TestArrowFeedsCheatAndLatch(t *testing.T) {
	keys := DefaultKeyMap()
	latch := NewLateralLatch(60)
	frame := core.NewInputFrame()

	keys.Apply(keyMsg("left"), &frame, latch)
	latch.Apply(&frame)

	assert.True(t, frame.Has(core.ActionArrowLeft))
	assert.True(t, frame.IsHeld(core.ActionLeft))
	assert.Equal(t, -1.0, frame.Lateral())
}

func TestLetterKeysDoNotFeedCheats(t *testing.T) {
	keys := DefaultKeyMap()
	latch := NewLateralLatch(60)
	frame := core.NewInputFrame()

	keys.Apply(keyMsg("d"), &frame, latch)
	latch.Apply(&frame)

	assert.False(t, frame.Has(core.ActionArrowRight))
	assert.True(t, frame.IsHeld(core.ActionRight))
}

func TestLateralLatchExpires(t *testing.T) {
	latch := NewLateralLatch(60)
	latch.Press(core.ActionRight)

	// 250ms at 60fps
	held := 0
	for i := 0; i < 30; i++ {
		frame := core.NewInputFrame()
		latch.Apply(&frame)
		if frame.IsHeld(core.ActionRight) {
			held++
		}
	}
	assert.Equal(t, 15, held)
}

func TestLateralLatchOppositeReleases(t *testing.T) {
	latch := NewLateralLatch(60)
	latch.Press(core.ActionLeft)
	latch.Press(core.ActionRight)

	frame := core.NewInputFrame()
	latch.Apply(&frame)
	assert.False(t, frame.IsHeld(core.ActionLeft))
	assert.True(t, frame.IsHeld(core.ActionRight))

	latch.Release()
	frame = core.NewInputFrame()
	latch.Apply(&frame)
	assert.Zero(t, frame.Lateral())
}

func TestLateralLatchMinimumOneFrame(t *testing.T) {
	latch := NewLateralLatch(1)
	latch.Press(core.ActionLeft)
	frame := core.NewInputFrame()
	latch.Apply(&frame)
	assert.True(t, frame.IsHeld(core.ActionLeft))
}

func TestMenuKeyMap(t *testing.T) {
	keys := DefaultMenuKeyMap()
	assert.Equal(t, MenuActionUp, keys.MapKeyToMenuAction(keyMsg("k")))
	assert.Equal(t, MenuActionDown, keys.MapKeyToMenuAction(keyMsg("down")))
	assert.Equal(t, MenuActionSelect, keys.MapKeyToMenuAction(keyMsg("enter")))
	assert.Equal(t, MenuActionScoreboard, keys.MapKeyToMenuAction(keyMsg("tab")))
	assert.Equal(t, MenuActionQuit, keys.MapKeyToMenuAction(keyMsg("q")))
	assert.Equal(t, MenuActionNone, keys.MapKeyToMenuAction(keyMsg("x")))
}
