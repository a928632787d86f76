// Package core provides fundamental types and utilities for the runner.
// It contains no platform dependencies (especially no Bubble Tea) to keep the
// simulation pure and testable.
package core

import "github.com/go-gl/mathgl/mgl64"

// Rect represents an axis-aligned screen rectangle in character cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Box is an axis-aligned bounding box in world space.
type Box struct {
	Center mgl64.Vec3
	Half   mgl64.Vec3 // Half extents along each axis
}

// NewBox creates a box from its center and half extents.
func NewBox(center, half mgl64.Vec3) Box {
	return Box{Center: center, Half: half}
}

// Min returns the minimum corner.
func (b Box) Min() mgl64.Vec3 {
	return b.Center.Sub(b.Half)
}

// Max returns the maximum corner.
func (b Box) Max() mgl64.Vec3 {
	return b.Center.Add(b.Half)
}

// Intersects returns true if the two boxes overlap.
// Touching faces do not count as an overlap.
func (b Box) Intersects(other Box) bool {
	for i := 0; i < 3; i++ {
		d := b.Center[i] - other.Center[i]
		if d < 0 {
			d = -d
		}
		if d >= b.Half[i]+other.Half[i] {
			return false
		}
	}
	return true
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Clamp01 restricts a float64 value to [0, 1].
func Clamp01(val float64) float64 {
	return ClampF(val, 0, 1)
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
