// Package physics defines the port the simulation uses to drive a rigid body,
// plus a small Euler integrator that satisfies it for headless and terminal play.
package physics

import (
	"github.com/go-gl/mathgl/mgl64"
)

// ForceMode selects how AddForce affects a body.
type ForceMode int

const (
	// ForceModeForce is a continuous force, divided by mass and scaled by the step.
	ForceModeForce ForceMode = iota
	// ForceModeAcceleration is a continuous acceleration that ignores mass.
	ForceModeAcceleration
	// ForceModeImpulse is an instant momentum change, divided by mass.
	ForceModeImpulse
	// ForceModeVelocityChange is an instant velocity change that ignores mass.
	ForceModeVelocityChange
)

// String returns the mode name.
func (m ForceMode) String() string {
	switch m {
	case ForceModeForce:
		return "Force"
	case ForceModeAcceleration:
		return "Acceleration"
	case ForceModeImpulse:
		return "Impulse"
	case ForceModeVelocityChange:
		return "VelocityChange"
	default:
		return "Unknown"
	}
}

// Body is what the simulation needs from a physics engine.
// The controller only issues forces and reads state back; integration belongs
// to the engine.
type Body interface {
	Position() mgl64.Vec3
	Velocity() mgl64.Vec3
	Rotation() mgl64.Quat
	SetRotation(q mgl64.Quat)
	AddForce(f mgl64.Vec3, mode ForceMode)
	SetUseGravity(enabled bool)
	FreezeRotation(frozen bool)
	FreezeAll()
	HalfExtents() mgl64.Vec3
}

// Integrator is a Body that can be stepped by the owner of the fixed tick.
type Integrator interface {
	Body
	Step(dt float64)
}
