package generator

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/split-horizon/internal/core"
)

// Platform is a box-shaped ground or ceiling slab given by center and full size.
type Platform struct {
	Center mgl64.Vec3
	Size   mgl64.Vec3
}

// Box returns the platform's collision box.
func (p Platform) Box() core.Box {
	return core.NewBox(p.Center, p.Size.Mul(0.5))
}

// BoundsWindow is the static placement area of one platform.
type BoundsWindow struct {
	XMin, XMax float64
	ZMin, ZMax float64
	SurfaceY   float64 // ground top or ceiling bottom
}

// GroundBounds derives the window for a platform whose top face is the surface.
func GroundBounds(p Platform) BoundsWindow {
	w := planar(p)
	w.SurfaceY = p.Center.Y() + p.Size.Y()/2
	return w
}

// CeilingBounds derives the window for a platform whose bottom face is the surface.
func CeilingBounds(p Platform) BoundsWindow {
	w := planar(p)
	w.SurfaceY = p.Center.Y() - p.Size.Y()/2
	return w
}

func planar(p Platform) BoundsWindow {
	return BoundsWindow{
		XMin: p.Center.X() - p.Size.X()/2,
		XMax: p.Center.X() + p.Size.X()/2,
		ZMin: p.Center.Z() - p.Size.Z()/2,
		ZMax: p.Center.Z() + p.Size.Z()/2,
	}
}

// ClampZ restricts z to the window's travel extent.
func (b BoundsWindow) ClampZ(z float64) float64 {
	return core.ClampF(z, b.ZMin, b.ZMax)
}

// SurfaceKind tells which side of the corridor a surface is on.
type SurfaceKind int

const (
	SurfaceGround SurfaceKind = iota
	SurfaceCeiling
)

// String returns the surface name.
func (k SurfaceKind) String() string {
	if k == SurfaceCeiling {
		return "ceiling"
	}
	return "ground"
}

// Surface is a BoundsWindow plus the side it faces.
type Surface struct {
	Kind   SurfaceKind
	Bounds BoundsWindow
	// Adjust is subtracted from every flush Y on this surface.
	Adjust float64
}

// Ground builds a ground surface from a platform.
func Ground(p Platform) Surface {
	return Surface{Kind: SurfaceGround, Bounds: GroundBounds(p)}
}

// Ceiling builds a ceiling surface from a platform with the given vertical adjustment.
func Ceiling(p Platform, adjust float64) Surface {
	return Surface{Kind: SurfaceCeiling, Bounds: CeilingBounds(p), Adjust: adjust}
}

// Dir is +1 for ground (obstacles grow up) and -1 for ceiling (they hang down).
func (s Surface) Dir() float64 {
	if s.Kind == SurfaceCeiling {
		return -1
	}
	return 1
}

// FlushY returns the center Y of an obstacle of the given half-height that
// touches the surface, pushed away from it by offset.
func (s Surface) FlushY(halfHeight, offset float64) float64 {
	return s.Bounds.SurfaceY + s.Dir()*(halfHeight+offset) - s.Adjust
}
