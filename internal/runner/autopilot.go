package runner

import (
	"math"

	opt "github.com/repeale/fp-go/option"

	"github.com/vovakirdan/split-horizon/internal/core"
	"github.com/vovakirdan/split-horizon/internal/generator"
)

// Autopilot plays a level without a human: it flips on a fixed period and
// steers around obstacles on the surface it is running on.
type Autopilot struct {
	FlipEvery  float64 // seconds between flips; 0 never flips
	LookAhead  float64 // Z distance checked for obstacles
	LaneMargin float64 // extra lateral clearance

	elapsed float64
}

// NewAutopilot creates an autopilot with stock tuning.
func NewAutopilot() *Autopilot {
	return &Autopilot{FlipEvery: 6, LookAhead: 25, LaneMargin: 0.75}
}

// Next returns the input for the coming frame of g.
func (a *Autopilot) Next(g *Game) core.InputFrame {
	in := core.NewInputFrame()
	dt := g.runtime.FrameDelta()
	a.elapsed += dt

	b := g.player.Get()
	if opt.IsNone(b) {
		return in
	}
	pos := b.Value.Position()

	if g.manager.IsLevelComplete() {
		in.Set(core.ActionConfirm)
		return in
	}
	if a.FlipEvery > 0 && a.elapsed >= a.FlipEvery && pos.Z() > 0 && !g.controller.IsFlipping() {
		a.elapsed = 0
		in.Set(core.ActionFlip)
	}

	// Desired world-space direction: away from the nearest blocking obstacle,
	// otherwise back toward the lane center.
	want := 0.0
	surface := generator.SurfaceGround
	if g.controller.GravityFlipped() {
		surface = generator.SurfaceCeiling
	}
	half := g.body.HalfExtents().X() + a.LaneMargin
	nearest := math.Inf(1)
	for _, o := range g.store.Between(pos.Z(), pos.Z()+a.LookAhead) {
		if o.Surface != surface {
			continue
		}
		ob := o.Bounds()
		if pos.X()+half < ob.Min().X() || pos.X()-half > ob.Max().X() {
			continue
		}
		if d := o.Position.Z() - pos.Z(); d < nearest {
			nearest = d
			if pos.X() < o.Position.X() {
				want = -1
			} else {
				want = 1
			}
		}
	}
	if math.IsInf(nearest, 1) {
		switch {
		case pos.X() > 1:
			want = -1
		case pos.X() < -1:
			want = 1
		}
	}

	if g.controller.GravityFlipped() && g.cfg.Locomotion.InvertLateralWhenFlipped {
		want = -want
	}
	switch {
	case want > 0:
		in.Hold(core.ActionRight)
	case want < 0:
		in.Hold(core.ActionLeft)
	}
	return in
}

// Simulate runs g headless under the autopilot for up to the given seconds
// of frames, stopping early when the level is won or lost, and returns the
// stats at that point.
func Simulate(g *Game, pilot *Autopilot, seconds float64) Stats {
	frames := int(seconds / g.runtime.FrameDelta())
	for i := 0; i < frames; i++ {
		res := g.Step(pilot.Next(g))
		if res.State.LevelComplete || res.State.GameOver {
			break
		}
	}
	return g.Stats()
}
