package generator

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/split-horizon/internal/core"
)

// ObstacleSpec describes one obstacle archetype. It is loaded once per level.
type ObstacleSpec struct {
	Name        string
	HalfExtents mgl64.Vec3 // collision geometry
	Rotation    mgl64.Vec3 // Euler offset in degrees
	// BaseRotation is the archetype's authored orientation. The zero value means identity.
	BaseRotation mgl64.Quat
	YOffset      float64 // distance from the flush position, away from the surface
	Count        int     // placements per section
	// HeightRange makes the archetype floating: each placement is pushed a
	// further uniform [0, HeightRange) away from its surface.
	HeightRange float64
}

// HalfHeight returns the archetype's vertical half extent.
func (s ObstacleSpec) HalfHeight() float64 {
	return s.HalfExtents.Y()
}

// Floating reports whether placements get random vertical variance.
func (s ObstacleSpec) Floating() bool {
	return s.HeightRange > 0
}

// Orientation composes the Euler offset with the authored base rotation.
func (s ObstacleSpec) Orientation() mgl64.Quat {
	base := s.BaseRotation
	if base == (mgl64.Quat{}) {
		base = mgl64.QuatIdent()
	}
	return core.EulerQuat(s.Rotation).Mul(base).Normalize()
}

// Placement is one obstacle the generator asks to be instantiated.
type Placement struct {
	Archetype   string
	Surface     SurfaceKind
	Position    mgl64.Vec3
	Rotation    mgl64.Quat
	HalfExtents mgl64.Vec3
	// Pair is shared by mirrored twins and unique per (X,Z) sample.
	Pair    int
	Section int
	Rare    bool
}

// Bounds returns the placement's axis-aligned collision box.
func (p Placement) Bounds() core.Box {
	return core.NewBox(p.Position, p.HalfExtents)
}

// Spawner receives placements.
type Spawner interface {
	Spawn(p Placement)
}

// SpawnerFunc adapts a function to Spawner.
type SpawnerFunc func(p Placement)

// Spawn calls f(p).
func (f SpawnerFunc) Spawn(p Placement) { f(p) }

// DefaultSpecs returns the five stock archetypes: one floating cube and four
// flush blocks.
func DefaultSpecs() []ObstacleSpec {
	unit := mgl64.Vec3{0.5, 0.5, 0.5}
	return []ObstacleSpec{
		{Name: "cube", HalfExtents: unit, Count: 20, HeightRange: 7},
		{Name: "block", HalfExtents: unit, Count: 10},
		{Name: "slab", HalfExtents: mgl64.Vec3{1.5, 0.5, 0.5}, Rotation: mgl64.Vec3{0, 90, 0}, Count: 10},
		{Name: "pillar", HalfExtents: mgl64.Vec3{0.5, 1, 0.5}, YOffset: 1, Count: 10},
		{Name: "wedge", HalfExtents: mgl64.Vec3{0.75, 0.5, 0.75}, Rotation: mgl64.Vec3{0, 45, 0}, YOffset: 0.5, Count: 10},
	}
}

// DefaultRareSpecs returns the stock rare archetypes.
func DefaultRareSpecs() []ObstacleSpec {
	return []ObstacleSpec{
		{Name: "gate", HalfExtents: mgl64.Vec3{3, 2, 0.5}, YOffset: 0.1},
		{Name: "monolith", HalfExtents: mgl64.Vec3{1, 3, 1}, YOffset: 0.1},
	}
}

// rotatedExtents returns the half extents of the AABB enclosing a box of
// half extents h rotated by q.
func rotatedExtents(q mgl64.Quat, h mgl64.Vec3) mgl64.Vec3 {
	var out mgl64.Vec3
	axes := [3]mgl64.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	for j, axis := range axes {
		col := q.Rotate(axis).Mul(h[j])
		for i := 0; i < 3; i++ {
			out[i] += math.Abs(col[i])
		}
	}
	return out
}
