package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Lerp interpolates between a and b by t clamped to [0, 1].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*Clamp01(t)
}

// Repeat wraps t into [0, length).
func Repeat(t, length float64) float64 {
	return ClampF(t-math.Floor(t/length)*length, 0, length)
}

// DeltaAngle returns the shortest signed difference between two angles in degrees.
func DeltaAngle(current, target float64) float64 {
	delta := Repeat(target-current, 360)
	if delta > 180 {
		delta -= 360
	}
	return delta
}

// LerpAngle interpolates between two angles in degrees along the shortest arc.
func LerpAngle(a, b, t float64) float64 {
	return a + DeltaAngle(a, b)*Clamp01(t)
}

// WrapAngle normalizes an angle in degrees to [0, 360).
func WrapAngle(deg float64) float64 {
	w := math.Mod(deg, 360)
	if w < 0 {
		w += 360
	}
	if w >= 360 {
		w = 0
	}
	return w
}

// RollDegrees extracts the rotation about the Z (travel) axis from q, in [0, 360).
func RollDegrees(q mgl64.Quat) float64 {
	q = q.Normalize()
	x, y, z := q.V[0], q.V[1], q.V[2]
	sinr := 2 * (q.W*z + x*y)
	cosr := 1 - 2*(y*y+z*z)
	return WrapAngle(mgl64.RadToDeg(math.Atan2(sinr, cosr)))
}

// EulerQuat builds a rotation from Euler angles in degrees, applied Z then X then Y.
func EulerQuat(euler mgl64.Vec3) mgl64.Quat {
	return mgl64.AnglesToQuat(
		mgl64.DegToRad(euler[1]),
		mgl64.DegToRad(euler[0]),
		mgl64.DegToRad(euler[2]),
		mgl64.YXZ,
	)
}
