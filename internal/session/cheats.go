package session

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/split-horizon/internal/core"
)

// Cheat identifies an entered code.
type Cheat int

const (
	CheatNone Cheat = iota
	CheatSkipLevel
	CheatInvincibility
)

// String returns the cheat name.
func (c Cheat) String() string {
	switch c {
	case CheatSkipLevel:
		return "skip-level"
	case CheatInvincibility:
		return "invincibility"
	default:
		return "none"
	}
}

// CheatConfig holds the arrow sequences, written with U, D, L and R.
type CheatConfig struct {
	SkipLevel     string
	Invincibility string
}

// DefaultCheatConfig returns the stock codes.
func DefaultCheatConfig() CheatConfig {
	return CheatConfig{SkipLevel: "UUUDD", Invincibility: "LLRLL"}
}

// CheatCodes matches the most recent arrow presses against the codes.
type CheatCodes struct {
	cfg        CheatConfig
	window     int
	seq        []rune
	invincible bool
	logger     *log.Logger
}

// NewCheatCodes creates a matcher. The window is the longest code.
func NewCheatCodes(cfg CheatConfig, logger *log.Logger) *CheatCodes {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	w := len(cfg.SkipLevel)
	if n := len(cfg.Invincibility); n > w {
		w = n
	}
	return &CheatCodes{cfg: cfg, window: w, logger: logger}
}

// Invincible reports whether invincibility has been unlocked.
func (c *CheatCodes) Invincible() bool { return c.invincible }

// Sequence returns the buffered arrows.
func (c *CheatCodes) Sequence() string { return string(c.seq) }

var arrowRunes = []struct {
	action core.Action
	r      rune
}{
	{core.ActionArrowUp, 'U'},
	{core.ActionArrowDown, 'D'},
	{core.ActionArrowLeft, 'L'},
	{core.ActionArrowRight, 'R'},
}

// HandleInput registers this frame's arrow presses and returns the last
// cheat they completed.
func (c *CheatCodes) HandleInput(in core.InputFrame) Cheat {
	got := CheatNone
	for _, a := range arrowRunes {
		if in.Has(a.action) {
			if cheat := c.Register(a.r); cheat != CheatNone {
				got = cheat
			}
		}
	}
	return got
}

// Register appends one arrow and checks the codes.
func (c *CheatCodes) Register(arrow rune) Cheat {
	if c.window == 0 {
		return CheatNone
	}
	c.seq = append(c.seq, arrow)
	if len(c.seq) > c.window {
		c.seq = c.seq[len(c.seq)-c.window:]
	}
	if len(c.seq) < c.window {
		return CheatNone
	}

	code := string(c.seq)
	switch {
	case c.cfg.SkipLevel != "" && code == c.cfg.SkipLevel:
		c.logger.Info("cheat activated", "cheat", CheatSkipLevel)
		c.seq = c.seq[:0]
		return CheatSkipLevel
	case c.cfg.Invincibility != "" && code == c.cfg.Invincibility:
		c.invincible = true
		c.logger.Info("cheat activated", "cheat", CheatInvincibility)
		c.seq = c.seq[:0]
		return CheatInvincibility
	}
	return CheatNone
}
