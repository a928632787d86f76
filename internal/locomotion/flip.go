package locomotion

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/split-horizon/internal/core"
)

// Flip is the timed roll from Start to End. It is advanced explicitly once per
// input tick by its owner.
type Flip struct {
	Start    mgl64.Quat
	End      mgl64.Quat
	Elapsed  float64
	Duration float64
	Active   bool
}

// flipEpsilon absorbs rounding in the summed frame deltas, so a flip lasting
// exactly N frames of dt ends on frame N.
const flipEpsilon = 1e-9

// HalfTurn is a 180° roll about the travel axis.
var HalfTurn = mgl64.QuatRotate(mgl64.DegToRad(180), mgl64.Vec3{0, 0, 1})

// Begin arms the timer from start to start rotated half a turn about Z.
func (f *Flip) Begin(start mgl64.Quat, duration float64) {
	f.Start = start
	f.End = start.Mul(HalfTurn).Normalize()
	f.Elapsed = 0
	f.Duration = duration
	f.Active = true
}

// Progress returns the normalized elapsed time, 1 when idle.
func (f Flip) Progress() float64 {
	if !f.Active {
		return 1
	}
	if f.Duration <= 0 {
		return 1
	}
	return core.Clamp01(f.Elapsed / f.Duration)
}

// Advance moves the timer forward by dt and returns the rotation for the new
// progress. On the tick the timer completes, the rotation is exactly End and
// the timer is no longer active.
func (f *Flip) Advance(dt float64) mgl64.Quat {
	if !f.Active {
		return f.End
	}
	f.Elapsed += dt
	if f.Duration <= 0 || f.Elapsed >= f.Duration-flipEpsilon {
		f.Elapsed = f.Duration
		f.Active = false
		return f.End
	}
	return mgl64.QuatSlerp(f.Start, f.End, f.Progress())
}
