package core

// RuntimeConfig contains configuration passed to levels at initialization.
// Levels use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second delivered by the platform (default 60)
	Seed     int64 // RNG seed for obstacle generation
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// FrameDelta returns the wall-clock duration of one platform frame in seconds.
func (c RuntimeConfig) FrameDelta() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// GameState represents the current state of a run.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score         int     // Distance travelled along the track
	Progress      float64 // Fraction of the level completed, 0..1
	GameOver      bool    // Whether the run has ended
	LevelComplete bool    // Whether the level end was reached
	Paused        bool    // Whether the run is paused
}

// StepResult is returned by Game.Step() after each frame.
type StepResult struct {
	State GameState
}
