package runner

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/split-horizon/internal/generator"
	"github.com/vovakirdan/split-horizon/internal/physics"
)

// Fragment lifetime and outward speed.
const (
	fragmentLife  = 3.0
	fragmentSpeed = 6.0
)

// Fragment is one piece of a broken object.
type Fragment struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Life     float64
}

// Debris animates the pieces left by a fracture.
type Debris struct {
	rng       generator.RandomSource
	fragments []Fragment
}

// NewDebris creates an empty debris field.
func NewDebris(rng generator.RandomSource) *Debris {
	return &Debris{rng: rng}
}

// Burst breaks an object at center into n pieces flying outward.
func (d *Debris) Burst(center mgl64.Vec3, n int) {
	for i := 0; i < n; i++ {
		dir := mgl64.Vec3{
			generator.Range(d.rng, -1, 1),
			generator.Range(d.rng, -1, 1),
			generator.Range(d.rng, -1, 1),
		}
		if dir.Len() < 1e-6 {
			dir = mgl64.Vec3{0, 1, 0}
		}
		d.fragments = append(d.fragments, Fragment{
			Position: center,
			Velocity: dir.Normalize().Mul(fragmentSpeed),
			Life:     fragmentLife,
		})
	}
}

// Step integrates the fragments and drops expired ones.
func (d *Debris) Step(dt float64) {
	kept := d.fragments[:0]
	for _, f := range d.fragments {
		f.Life -= dt
		if f.Life <= 0 {
			continue
		}
		f.Velocity = f.Velocity.Add(physics.DefaultGravity.Mul(dt))
		f.Position = f.Position.Add(f.Velocity.Mul(dt))
		kept = append(kept, f)
	}
	d.fragments = kept
}

// Fragments returns the live pieces.
func (d *Debris) Fragments() []Fragment { return d.fragments }
