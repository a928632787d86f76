// Package camera computes the follow camera pose from the player transform and
// the locomotion controller's flip state. It owns no gameplay state.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	opt "github.com/repeale/fp-go/option"

	"github.com/vovakirdan/split-horizon/internal/core"
	"github.com/vovakirdan/split-horizon/internal/physics"
)

// FlipState is the read-only view of the locomotion controller the camera needs.
type FlipState interface {
	GravityFlipped() bool
	IsFlipping() bool
	FlipProgress() float64
	Lateral() float64
}

// Config holds camera tuning. Angles are in degrees.
type Config struct {
	Offset           mgl64.Vec3 // Y is used as a magnitude and flips with gravity
	FixedPitch       float64
	FixedYaw         float64
	RollSmoothSpeed  float64
	LateralTilt      float64 // extra roll per unit of lateral input
	SmoothPitch      bool
	PitchSmoothSpeed float64
}

// DefaultConfig returns the stock camera tuning.
func DefaultConfig() Config {
	return Config{
		Offset:           mgl64.Vec3{0, 2, -5},
		FixedPitch:       10,
		FixedYaw:         0,
		RollSmoothSpeed:  5,
		LateralTilt:      3,
		PitchSmoothSpeed: 5,
	}
}

// Pose is a camera position and orientation.
type Pose struct {
	Position mgl64.Vec3
	Pitch    float64
	Yaw      float64
	Roll     float64
}

// Rotation returns the pose orientation.
func (p Pose) Rotation() mgl64.Quat {
	return core.EulerQuat(mgl64.Vec3{p.Pitch, p.Yaw, p.Roll})
}

// ToView transforms a world point into camera space: +X right, +Y up, +Z forward.
func (p Pose) ToView(world mgl64.Vec3) mgl64.Vec3 {
	return p.Rotation().Inverse().Rotate(world.Sub(p.Position))
}

// FollowCamera smooths roll and pitch toward the player's orientation and
// re-bases its vertical offset across a flip.
type FollowCamera struct {
	cfg    Config
	player *physics.Handle
	state  FlipState

	roll     float64
	pitch    float64
	yOffset  float64
	startY   float64
	captured bool
	pose     Pose
}

// New creates a camera following the player handle.
func New(cfg Config, player *physics.Handle, state FlipState) *FollowCamera {
	if player == nil {
		player = physics.EmptyHandle()
	}
	c := &FollowCamera{
		cfg:     cfg,
		player:  player,
		state:   state,
		pitch:   cfg.FixedPitch,
		yOffset: math.Abs(cfg.Offset.Y()),
	}
	c.pose = Pose{Pitch: c.pitch, Yaw: cfg.FixedYaw}
	if b := player.Get(); opt.IsSome(b) {
		c.pose.Position = b.Value.Position().Add(mgl64.Vec3{cfg.Offset.X(), c.yOffset, cfg.Offset.Z()})
	}
	return c
}

// Pose returns the most recent pose.
func (c *FollowCamera) Pose() Pose { return c.pose }

// YOffset returns the vertical offset from the player used for the last pose.
func (c *FollowCamera) YOffset() float64 { return c.yOffset }

// LateUpdate computes this frame's pose. It must run after physics and
// locomotion. Without a player the last pose is held.
func (c *FollowCamera) LateUpdate(dt float64) Pose {
	b := c.player.Get()
	if opt.IsNone(b) || c.state == nil {
		return c.pose
	}
	body := b.Value

	base := math.Abs(c.cfg.Offset.Y())
	target := base
	if c.state.GravityFlipped() {
		target = -base
	}
	if c.state.IsFlipping() {
		if !c.captured {
			c.startY = c.yOffset
			c.captured = true
		}
		c.yOffset = core.Lerp(c.startY, target, c.state.FlipProgress())
	} else {
		c.captured = false
		c.yOffset = target
	}

	rollTarget := core.RollDegrees(body.Rotation()) + c.cfg.LateralTilt*c.state.Lateral()
	c.roll = core.LerpAngle(c.roll, rollTarget, c.cfg.RollSmoothSpeed*dt)

	if c.cfg.SmoothPitch {
		pitchTarget := c.cfg.FixedPitch
		if c.state.GravityFlipped() {
			pitchTarget = -pitchTarget
		}
		c.pitch = core.LerpAngle(c.pitch, pitchTarget, c.cfg.PitchSmoothSpeed*dt)
	} else {
		c.pitch = c.cfg.FixedPitch
	}

	pos := body.Position()
	c.pose = Pose{
		Position: mgl64.Vec3{pos.X() + c.cfg.Offset.X(), pos.Y() + c.yOffset, pos.Z() + c.cfg.Offset.Z()},
		Pitch:    c.pitch,
		Yaw:      c.cfg.FixedYaw,
		Roll:     core.WrapAngle(c.roll),
	}
	return c.pose
}
