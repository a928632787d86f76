package session

import (
	"fmt"

	"github.com/vovakirdan/split-horizon/internal/core"
)

// FadeDirection tells which way a fade is running.
type FadeDirection int

const (
	FadeNone FadeDirection = iota
	FadeIn                 // opaque to clear
	FadeOut                // clear to opaque
)

// Fade is a screen cover that fades in on level start and out before a load.
// It runs on real time.
type Fade struct {
	Duration float64
	Elapsed  float64
	Dir      FadeDirection
	Title    string

	alpha float64
	done  func()
}

// NewFade creates a fully transparent, idle fade.
func NewFade(duration float64) *Fade {
	return &Fade{Duration: duration}
}

// LevelTitle formats the banner shown while fading.
func LevelTitle(index int) string {
	return fmt.Sprintf("Level %d", index)
}

// In starts from opaque and clears over Duration.
func (f *Fade) In(title string) {
	f.Dir = FadeIn
	f.Elapsed = 0
	f.Title = title
	f.alpha = 1
	f.done = nil
}

// Out covers the screen over Duration and then calls done once.
func (f *Fade) Out(title string, done func()) {
	f.Dir = FadeOut
	f.Elapsed = 0
	f.Title = title
	f.alpha = 0
	f.done = done
}

// Active reports whether a fade is running.
func (f *Fade) Active() bool { return f.Dir != FadeNone }

// Alpha is the cover opacity in [0, 1].
func (f *Fade) Alpha() float64 { return f.alpha }

// Update advances the fade by dt real seconds.
func (f *Fade) Update(dt float64) {
	if f.Dir == FadeNone {
		return
	}
	f.Elapsed += dt
	t := 1.0
	if f.Duration > 0 {
		t = core.Clamp01(f.Elapsed / f.Duration)
	}
	if f.Dir == FadeIn {
		f.alpha = core.Lerp(1, 0, t)
	} else {
		f.alpha = core.Lerp(0, 1, t)
	}
	if t < 1 {
		return
	}

	dir := f.Dir
	f.Dir = FadeNone
	if dir == FadeIn {
		f.alpha = 0
		return
	}
	f.alpha = 1
	if done := f.done; done != nil {
		f.done = nil
		done()
	}
}
