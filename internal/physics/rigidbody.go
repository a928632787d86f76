package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/split-horizon/internal/core"
)

// DefaultGravity matches the engine default of 9.81 m/s² downward.
var DefaultGravity = mgl64.Vec3{0, -9.81, 0}

// RigidBody is a point-mass body integrated with semi-implicit Euler.
// It has no angular dynamics: rotation only changes through SetRotation.
type RigidBody struct {
	position mgl64.Vec3
	velocity mgl64.Vec3
	rotation mgl64.Quat
	half     mgl64.Vec3

	mass    float64
	drag    float64
	gravity mgl64.Vec3

	useGravity     bool
	rotationFrozen bool
	frozen         bool

	force mgl64.Vec3 // accumulated ForceModeForce input for the next step
	accel mgl64.Vec3 // accumulated ForceModeAcceleration input for the next step

	statics  []core.Box
	contacts int
}

// BodyOptions configures a RigidBody.
type BodyOptions struct {
	Position    mgl64.Vec3
	HalfExtents mgl64.Vec3
	Mass        float64
	Drag        float64
}

// NewRigidBody creates a body at rest with engine gravity enabled.
func NewRigidBody(opts BodyOptions) *RigidBody {
	mass := opts.Mass
	if mass <= 0 {
		mass = 1
	}
	half := opts.HalfExtents
	if half == (mgl64.Vec3{}) {
		half = mgl64.Vec3{0.5, 0.5, 0.5}
	}
	return &RigidBody{
		position:   opts.Position,
		rotation:   mgl64.QuatIdent(),
		half:       half,
		mass:       mass,
		drag:       opts.Drag,
		gravity:    DefaultGravity,
		useGravity: true,
	}
}

// Position returns the world position.
func (b *RigidBody) Position() mgl64.Vec3 { return b.position }

// Velocity returns the linear velocity.
func (b *RigidBody) Velocity() mgl64.Vec3 { return b.velocity }

// Rotation returns the orientation.
func (b *RigidBody) Rotation() mgl64.Quat { return b.rotation }

// HalfExtents returns the collision half extents.
func (b *RigidBody) HalfExtents() mgl64.Vec3 { return b.half }

// Mass returns the body mass.
func (b *RigidBody) Mass() float64 { return b.mass }

// SetRotation sets the orientation directly.
func (b *RigidBody) SetRotation(q mgl64.Quat) {
	b.rotation = q.Normalize()
}

// SetPosition teleports the body. Used by level setup and tests.
func (b *RigidBody) SetPosition(p mgl64.Vec3) {
	b.position = p
}

// SetVelocity overwrites the velocity. Used by level setup and tests.
func (b *RigidBody) SetVelocity(v mgl64.Vec3) {
	b.velocity = v
}

// SetUseGravity toggles the engine's own gravity.
func (b *RigidBody) SetUseGravity(enabled bool) {
	b.useGravity = enabled
}

// UsesGravity reports whether engine gravity is applied.
func (b *RigidBody) UsesGravity() bool { return b.useGravity }

// FreezeRotation stops the engine from changing orientation.
func (b *RigidBody) FreezeRotation(frozen bool) {
	b.rotationFrozen = frozen
}

// RotationFrozen reports whether rotation integration is disabled.
func (b *RigidBody) RotationFrozen() bool { return b.rotationFrozen }

// FreezeAll pins the body in place; further forces are ignored.
func (b *RigidBody) FreezeAll() {
	b.frozen = true
	b.rotationFrozen = true
	b.velocity = mgl64.Vec3{}
	b.force = mgl64.Vec3{}
	b.accel = mgl64.Vec3{}
}

// AddStatic registers an immovable box the body rests against (platforms).
func (b *RigidBody) AddStatic(box core.Box) {
	b.statics = append(b.statics, box)
}

// Contacts returns how many static boxes the body touched during the last Step.
func (b *RigidBody) Contacts() int { return b.contacts }

// Bounds returns the body's world AABB.
func (b *RigidBody) Bounds() core.Box {
	return core.NewBox(b.position, b.half)
}

// Frozen reports whether FreezeAll was applied.
func (b *RigidBody) Frozen() bool { return b.frozen }

// AddForce applies f according to mode. Continuous modes take effect on the
// next Step; instant modes change velocity immediately.
func (b *RigidBody) AddForce(f mgl64.Vec3, mode ForceMode) {
	if b.frozen {
		return
	}
	switch mode {
	case ForceModeForce:
		b.force = b.force.Add(f)
	case ForceModeAcceleration:
		b.accel = b.accel.Add(f)
	case ForceModeImpulse:
		b.velocity = b.velocity.Add(f.Mul(1 / b.mass))
	case ForceModeVelocityChange:
		b.velocity = b.velocity.Add(f)
	}
}

// Step integrates one fixed tick.
func (b *RigidBody) Step(dt float64) {
	if b.frozen || dt <= 0 {
		return
	}

	acc := b.force.Mul(1 / b.mass).Add(b.accel)
	if b.useGravity {
		acc = acc.Add(b.gravity)
	}
	b.velocity = b.velocity.Add(acc.Mul(dt))

	if b.drag > 0 {
		damp := 1 - b.drag*dt
		if damp < 0 {
			damp = 0
		}
		b.velocity = b.velocity.Mul(damp)
	}

	b.position = b.position.Add(b.velocity.Mul(dt))
	b.force = mgl64.Vec3{}
	b.accel = mgl64.Vec3{}

	b.resolveStatics()
}

// resolveStatics pushes the body out of every overlapping static box along the
// axis of least penetration and cancels velocity into that face.
func (b *RigidBody) resolveStatics() {
	b.contacts = 0
	for _, s := range b.statics {
		if !b.Bounds().Intersects(s) {
			continue
		}
		b.contacts++

		axis := -1
		depth := math.Inf(1)
		sign := 0.0
		for i := 0; i < 3; i++ {
			d := b.position[i] - s.Center[i]
			pen := b.half[i] + s.Half[i] - math.Abs(d)
			if pen < depth {
				depth = pen
				axis = i
				sign = 1
				if d < 0 {
					sign = -1
				}
			}
		}
		if axis < 0 {
			continue
		}
		b.position[axis] += sign * depth
		if b.velocity[axis]*sign < 0 {
			b.velocity[axis] = 0
		}
	}
}
