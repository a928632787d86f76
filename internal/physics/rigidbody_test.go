package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/split-horizon/internal/core"
)

func TestRigidBodyGravity(t *testing.T) {
	b := NewRigidBody(BodyOptions{Mass: 1})
	b.Step(0.5)

	assert.InDelta(t, -9.81*0.5, b.Velocity().Y(), 1e-9)
	assert.InDelta(t, -9.81*0.25, b.Position().Y(), 1e-9)
}

func TestRigidBodyGravityDisabled(t *testing.T) {
	b := NewRigidBody(BodyOptions{})
	b.SetUseGravity(false)
	b.Step(1)

	assert.Equal(t, mgl64.Vec3{}, b.Velocity())
	assert.False(t, b.UsesGravity())
}

func TestRigidBodyForceModes(t *testing.T) {
	tests := []struct {
		name string
		mode ForceMode
		step bool
		want float64
	}{
		{"force scaled by mass and dt", ForceModeForce, true, 2 * 0.1 / 4},
		{"acceleration scaled by dt", ForceModeAcceleration, true, 2 * 0.1},
		{"impulse scaled by mass", ForceModeImpulse, false, 2.0 / 4},
		{"velocity change raw", ForceModeVelocityChange, false, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewRigidBody(BodyOptions{Mass: 4})
			b.SetUseGravity(false)
			b.AddForce(mgl64.Vec3{2, 0, 0}, tt.mode)
			if tt.step {
				assert.Zero(t, b.Velocity().X(), "continuous modes wait for Step")
				b.Step(0.1)
			}
			assert.InDelta(t, tt.want, b.Velocity().X(), 1e-9)
		})
	}
}

func TestRigidBodyForceClearedAfterStep(t *testing.T) {
	b := NewRigidBody(BodyOptions{})
	b.SetUseGravity(false)
	b.AddForce(mgl64.Vec3{0, 0, 10}, ForceModeForce)
	b.Step(0.1)
	v := b.Velocity()
	b.Step(0.1)

	assert.Equal(t, v, b.Velocity())
}

func TestRigidBodyDrag(t *testing.T) {
	b := NewRigidBody(BodyOptions{Drag: 1})
	b.SetUseGravity(false)
	b.SetVelocity(mgl64.Vec3{10, 0, 0})
	b.Step(0.1)

	assert.InDelta(t, 9, b.Velocity().X(), 1e-9)

	b.drag = 100
	b.Step(0.1)
	assert.Zero(t, b.Velocity().X(), "damping is clamped at zero")
}

func TestRigidBodyFreezeAll(t *testing.T) {
	b := NewRigidBody(BodyOptions{})
	b.SetVelocity(mgl64.Vec3{1, 2, 3})
	b.FreezeAll()
	b.AddForce(mgl64.Vec3{5, 0, 0}, ForceModeVelocityChange)
	b.Step(1)

	require.True(t, b.Frozen())
	assert.True(t, b.RotationFrozen())
	assert.Equal(t, mgl64.Vec3{}, b.Velocity())
	assert.Equal(t, mgl64.Vec3{}, b.Position())
}

func TestForceModeString(t *testing.T) {
	assert.Equal(t, "VelocityChange", ForceModeVelocityChange.String())
	assert.Equal(t, "Unknown", ForceMode(42).String())
}

func TestRigidBodyRestsOnStatic(t *testing.T) {
	b := NewRigidBody(BodyOptions{
		Position:    mgl64.Vec3{0, 0.6, 0},
		HalfExtents: mgl64.Vec3{0.5, 0.5, 0.5},
	})
	b.AddStatic(core.NewBox(mgl64.Vec3{0, -0.5, 0}, mgl64.Vec3{10, 0.5, 10}))

	for i := 0; i < 50; i++ {
		b.Step(0.02)
	}

	assert.InDelta(t, 0.5, b.Position().Y(), 1e-9)
	assert.Zero(t, b.Velocity().Y())
	assert.Equal(t, 1, b.Contacts())
}

func TestRigidBodyStaticCeiling(t *testing.T) {
	b := NewRigidBody(BodyOptions{Position: mgl64.Vec3{0, 9.4, 0}})
	b.SetUseGravity(false)
	b.AddStatic(core.NewBox(mgl64.Vec3{0, 10.5, 0}, mgl64.Vec3{10, 0.5, 10}))
	b.SetVelocity(mgl64.Vec3{0, 5, 0})
	b.Step(0.1)

	assert.InDelta(t, 9.5, b.Position().Y(), 1e-9)
	assert.Zero(t, b.Velocity().Y())
}
