// Package locomotion implements the gravity-flip player controller.
//
// The controller never integrates motion itself. It issues forces to a
// physics.Body and reads position and velocity back, on two cadences: a fixed
// physics tick (gravity, propulsion, lateral steering, bounds) and a variable
// input tick (flip trigger and flip animation).
package locomotion

import (
	"github.com/go-gl/mathgl/mgl64"
	opt "github.com/repeale/fp-go/option"

	"github.com/vovakirdan/split-horizon/internal/core"
	"github.com/vovakirdan/split-horizon/internal/physics"
)

// GameState is the end-of-run collaborator.
type GameState interface {
	IsLevelComplete() bool
	TriggerSlowMoAndEndGame()
}

// Config holds the controller tuning.
type Config struct {
	Gravity        float64 // acceleration magnitude
	FallMultiplier float64 // applied while moving with gravity
	ForwardForce   float64 // scaled by the fixed step, Force mode
	LateralForce   float64 // scaled by the fixed step, VelocityChange mode
	DetachForce    float64 // impulse along the new gravity direction on flip
	FlipDuration   float64 // seconds

	// LevelEndZ gates forward propulsion. Without it no propulsion is applied.
	LevelEndZ opt.Option[float64]
	// LateralEnabledZ is the travel coordinate past which steering works.
	LateralEnabledZ float64
	// InvertLateralWhenFlipped keeps screen-left consistent with the rolled camera.
	InvertLateralWhenFlipped bool

	YMin, YMax float64 // playable vertical band
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		Gravity:                  9.81,
		FallMultiplier:           2,
		ForwardForce:             2000,
		LateralForce:             25,
		DetachForce:              2,
		FlipDuration:             1,
		LevelEndZ:                opt.Some(1000.0),
		LateralEnabledZ:          -50,
		InvertLateralWhenFlipped: true,
		YMin:                     -2,
		YMax:                     24,
	}
}

// Controller is the gravity-flip state machine for one player body.
type Controller struct {
	cfg    Config
	player *physics.Handle
	game   GameState

	flipped     bool
	flip        Flip
	forwardOpen bool
	lateral     float64
	enabled     bool
	ended       bool
}

// New creates a controller bound to the player handle. game may be nil.
func New(cfg Config, player *physics.Handle, game GameState) *Controller {
	if player == nil {
		player = physics.EmptyHandle()
	}
	return &Controller{
		cfg:         cfg,
		player:      player,
		game:        game,
		forwardOpen: true,
		enabled:     true,
	}
}

// Start takes over gravity and rotation from the physics engine.
func (c *Controller) Start() {
	if b := c.player.Get(); opt.IsSome(b) {
		b.Value.SetUseGravity(false)
		b.Value.FreezeRotation(true)
	}
}

// GravityFlipped reports the current gravity polarity.
func (c *Controller) GravityFlipped() bool { return c.flipped }

// IsFlipping reports whether the roll animation is in progress.
func (c *Controller) IsFlipping() bool { return c.flip.Active }

// FlipProgress returns the current or most recent flip's progress in [0,1].
func (c *Controller) FlipProgress() float64 { return c.flip.Progress() }

// Lateral returns the steering axis latched on the last input tick.
func (c *Controller) Lateral() float64 { return c.lateral }

// GravityDir returns the unit gravity direction for the current polarity.
func (c *Controller) GravityDir() mgl64.Vec3 {
	if c.flipped {
		return mgl64.Vec3{0, 1, 0}
	}
	return mgl64.Vec3{0, -1, 0}
}

// Enabled reports whether the controller still drives the body.
func (c *Controller) Enabled() bool { return c.enabled }

// Disable stops input handling and physics work, e.g. after hitting an
// obstacle. A flip already under way still completes.
func (c *Controller) Disable() { c.enabled = false }

// Ended reports whether the controller has already signalled end of run.
func (c *Controller) Ended() bool { return c.ended }

// HandleInput runs the input tick. A flip already in progress is advanced by
// dt; a flip started on this tick begins at progress 0. Once disabled the
// controller reads no input, but a flip in progress still runs to its end.
func (c *Controller) HandleInput(in core.InputFrame, dt float64) {
	b := c.player.Get()
	if opt.IsNone(b) {
		return
	}
	body := b.Value

	wasFlipping := c.flip.Active
	if c.enabled {
		c.lateral = in.Lateral()
		if !wasFlipping && in.Has(core.ActionFlip) && body.Position().Z() > 0 {
			c.startFlip(body)
		}
	}
	if wasFlipping {
		body.SetRotation(c.flip.Advance(dt))
	}
}

func (c *Controller) startFlip(body physics.Body) {
	c.flipped = !c.flipped
	body.AddForce(c.GravityDir().Mul(c.cfg.DetachForce), physics.ForceModeImpulse)
	c.flip.Begin(body.Rotation(), c.cfg.FlipDuration)
}

// FixedStep runs the physics tick.
func (c *Controller) FixedStep(dt float64) {
	if !c.enabled {
		return
	}
	b := c.player.Get()
	if opt.IsNone(b) {
		return
	}
	body := b.Value

	c.applyGravity(body)
	c.applyForward(body, dt)
	c.applyLateral(body, dt)
	c.checkBounds(body)
}

func (c *Controller) applyGravity(body physics.Body) {
	dir := c.GravityDir()
	g := c.cfg.Gravity
	if body.Velocity().Dot(dir) > 0 {
		g *= c.cfg.FallMultiplier
	}
	body.AddForce(dir.Mul(g), physics.ForceModeAcceleration)
}

func (c *Controller) applyForward(body physics.Body, dt float64) {
	if !c.forwardOpen || opt.IsNone(c.cfg.LevelEndZ) {
		return
	}
	if body.Position().Z() >= c.cfg.LevelEndZ.Value {
		c.forwardOpen = false
		return
	}
	body.AddForce(mgl64.Vec3{0, 0, c.cfg.ForwardForce * dt}, physics.ForceModeForce)
}

func (c *Controller) applyLateral(body physics.Body, dt float64) {
	if c.lateral == 0 || body.Position().Z() <= c.cfg.LateralEnabledZ {
		return
	}
	dir := c.lateral
	if c.flipped && c.cfg.InvertLateralWhenFlipped {
		dir = -dir
	}
	body.AddForce(mgl64.Vec3{dir * c.cfg.LateralForce * dt, 0, 0}, physics.ForceModeVelocityChange)
}

func (c *Controller) checkBounds(body physics.Body) {
	if c.ended {
		return
	}
	if c.game != nil && c.game.IsLevelComplete() {
		return
	}
	y := body.Position().Y()
	if y >= c.cfg.YMin && y <= c.cfg.YMax {
		return
	}
	c.ended = true
	c.player.Destroy()
	if c.game != nil {
		c.game.TriggerSlowMoAndEndGame()
	}
}
