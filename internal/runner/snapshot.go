package runner

import (
	opt "github.com/repeale/fp-go/option"

	"github.com/vovakirdan/split-horizon/internal/config"
	"github.com/vovakirdan/split-horizon/internal/core"
)

// RunStateType represents the current run state.
type RunStateType string

const (
	StatePlaying  RunStateType = "playing"
	StatePaused   RunStateType = "paused"
	StateComplete RunStateType = "level_complete"
	StateGameOver RunStateType = "game_over"
)

// Snapshot captures the complete run state for determinism testing and replay.
type Snapshot struct {
	Tick          uint64
	Frame         uint64
	Level         int    // 1-indexed campaign position
	LevelID       string // variant id
	Attempt       int
	LevelsPlayed  int
	State         RunStateType
	PlayerPresent bool
	X, Y, Z       float64
	VX, VY, VZ    float64
	Flipped       bool
	Flipping      bool
	FlipProgress  float64
	CameraRoll    float64
	Frontier      float64
	Sections      int
	Placements    int
	Rare          int
	Obstacles     int
	Despawned     int
	Score         int
	TimeScale     float64
	Invincible    bool
}

// Snapshot returns the current run snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.paused:
		state = StatePaused
	case g.manager.GameOver():
		state = StateGameOver
	case g.manager.IsLevelComplete():
		state = StateComplete
	}

	stats := g.gen.Stats()
	s := Snapshot{
		Tick:         g.tickCount,
		Frame:        g.frameCount,
		Level:        g.LevelNumber(),
		LevelID:      g.ID(),
		Attempt:      g.attempt,
		LevelsPlayed: g.levelsPlayed,
		State:        state,
		Flipped:      g.controller.GravityFlipped(),
		Flipping:     g.controller.IsFlipping(),
		FlipProgress: g.controller.FlipProgress(),
		CameraRoll:   g.cam.Pose().Roll,
		Frontier:     g.gen.Frontier(),
		Sections:     stats.Sections,
		Placements:   stats.Placements,
		Rare:         stats.Rare,
		Obstacles:    g.store.Len(),
		Despawned:    g.store.Despawned(),
		Score:        g.progress.Score(),
		TimeScale:    g.manager.TimeScale(),
		Invincible:   g.cheats.Invincible(),
	}
	if b := g.player.Get(); opt.IsSome(b) {
		p, v := b.Value.Position(), b.Value.Velocity()
		s.PlayerPresent = true
		s.X, s.Y, s.Z = p.X(), p.Y(), p.Z()
		s.VX, s.VY, s.VZ = v.X(), v.Y(), v.Z()
	}
	return s
}

// Stats is the generation summary printed by headless runs.
type Stats struct {
	Level      string
	SimTime    float64
	Distance   float64
	Sections   int
	Placements int
	Rare       int
	Live       int
	Despawned  int
	Flips      int
	Complete   bool
	GameOver   bool
}

// Stats returns the generation summary of the current level.
func (g *Game) Stats() Stats {
	st := g.gen.Stats()
	return Stats{
		Level:      g.ID(),
		SimTime:    g.simTime,
		Distance:   g.progress.Distance(),
		Sections:   st.Sections,
		Placements: st.Placements,
		Rare:       st.Rare,
		Live:       g.store.Len(),
		Despawned:  g.store.Despawned(),
		Flips:      g.flips,
		Complete:   g.manager.IsLevelComplete(),
		GameOver:   g.manager.GameOver(),
	}
}

// Runtime returns the runtime config passed to Reset.
func (g *Game) Runtime() core.RuntimeConfig { return g.runtime }

// Config returns the runner config the current run was built with.
func (g *Game) Config() config.RunnerConfig { return g.cfg }

// StartID returns the id of the level the run started on.
func (g *Game) StartID() string { return g.start.String() }
