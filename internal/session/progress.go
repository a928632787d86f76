package session

import (
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
	opt "github.com/repeale/fp-go/option"

	"github.com/vovakirdan/split-horizon/internal/core"
)

// Progress turns the player position into the score readout and the
// fraction of the level covered.
type Progress struct {
	StartZ float64
	EndZ   float64

	score    float64
	fraction float64
	started  bool
	gameOver bool
}

// NewProgress creates a tracker for a level spanning startZ to endZ.
func NewProgress(startZ, endZ float64) *Progress {
	return &Progress{StartZ: startZ, EndZ: endZ}
}

// Update reads the player position. An absent player means game over.
func (p *Progress) Update(player opt.Option[mgl64.Vec3]) {
	if opt.IsNone(player) {
		p.gameOver = true
		return
	}
	z := player.Value.Z()
	switch {
	case z >= p.EndZ:
		p.score, p.started = p.EndZ, true
	case z > 0:
		p.score, p.started = z, true
	default:
		p.score, p.started = 0, false
	}
	if p.EndZ > p.StartZ {
		p.fraction = (core.ClampF(z, p.StartZ, p.EndZ) - p.StartZ) / (p.EndZ - p.StartZ)
	}
}

// Score is the distance travelled, frozen at the level end.
func (p *Progress) Score() int { return int(p.score) }

// Distance is the unrounded score.
func (p *Progress) Distance() float64 { return p.score }

// Fraction is the share of the level covered, in [0, 1].
func (p *Progress) Fraction() float64 { return p.fraction }

// GameOver reports whether the player has been destroyed.
func (p *Progress) GameOver() bool { return p.gameOver }

// Text is the score readout: empty before the start line, "Game Over" once
// the player is gone.
func (p *Progress) Text() string {
	if p.gameOver {
		return "Game Over"
	}
	if !p.started {
		return ""
	}
	return strconv.Itoa(int(p.score + 0.5))
}
