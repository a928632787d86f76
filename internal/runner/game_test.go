package runner

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/split-horizon/internal/config"
	"github.com/vovakirdan/split-horizon/internal/core"
	"github.com/vovakirdan/split-horizon/internal/generator"
	"github.com/vovakirdan/split-horizon/internal/registry"
)

// testRuntime runs one physics tick per frame.
func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 50, Seed: seed}
}

// emptyTrack is the stock config without any obstacles.
func emptyTrack() config.RunnerConfig {
	cfg := config.DefaultRunnerConfig()
	cfg.Generator.Obstacles = nil
	cfg.Generator.Rare = nil
	return cfg
}

func newTestGame(t *testing.T, v Variant, cfg config.RunnerConfig) *Game {
	t.Helper()
	g := New(v, WithConfig(cfg))
	g.Reset(testRuntime(42))
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func stepN(g *Game, n int, in core.InputFrame) {
	for i := 0; i < n; i++ {
		g.Step(in)
	}
}

// runUntil steps idle frames until cond holds, failing after limit frames.
func runUntil(t *testing.T, g *Game, limit int, cond func(Snapshot) bool) {
	t.Helper()
	for i := 0; i < limit; i++ {
		if cond(g.Snapshot()) {
			return
		}
		g.Step(core.NewInputFrame())
	}
	require.True(t, cond(g.Snapshot()), "condition not reached in %d frames", limit)
}

func TestGameDeterminism(t *testing.T) {
	inputs := make([]core.InputFrame, 400)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		if i%120 == 100 {
			inputs[i].Set(core.ActionFlip)
		}
		if i%50 < 10 {
			inputs[i].Hold(core.ActionRight)
		}
	}

	run := func() Snapshot {
		g := New(VariantMirrored, WithConfig(config.DefaultRunnerConfig()))
		g.Reset(testRuntime(12345))
		for _, in := range inputs {
			g.Step(in)
		}
		return g.Snapshot()
	}

	assert.Equal(t, run(), run())
}

func TestResetPreRollsTrack(t *testing.T) {
	g := newTestGame(t, VariantGround, config.DefaultRunnerConfig())
	snap := g.Snapshot()

	// Lookahead from z=-20 is 500: ten sections of 50 up to z=480.
	assert.Equal(t, 10, snap.Sections)
	assert.InDelta(t, 480, snap.Frontier, 1e-9)
	assert.Positive(t, snap.Obstacles)
	assert.Equal(t, "ground", snap.LevelID)
	assert.Equal(t, 2, snap.Level)
	assert.True(t, snap.PlayerPresent)
	assert.Equal(t, StatePlaying, snap.State)
}

func TestClassicPopulatesWholePlatform(t *testing.T) {
	g := newTestGame(t, VariantClassic, config.DefaultRunnerConfig())
	snap := g.Snapshot()

	assert.Equal(t, 1, snap.Sections)
	assert.InDelta(t, 1040, snap.Frontier, 1e-9)
	assert.Equal(t, 1, snap.Level)
}

func TestCeilingLevelHangsObstacles(t *testing.T) {
	g := newTestGame(t, VariantCeiling, config.DefaultRunnerConfig())
	require.Positive(t, g.store.Len())
	for _, o := range g.store.Obstacles() {
		assert.Equal(t, generator.SurfaceCeiling, o.Surface)
		assert.Less(t, o.Position.Y(), 22.0)
	}
}

func TestMirroredLevelPairsObstacles(t *testing.T) {
	g := newTestGame(t, VariantMirrored, config.DefaultRunnerConfig())
	pairs := map[int]int{}
	for _, o := range g.store.Obstacles() {
		pairs[o.Pair]++
	}
	require.NotEmpty(t, pairs)
	for id, n := range pairs {
		assert.Equal(t, 2, n, "pair %d", id)
	}
}

func TestPlayerRunsForwardOnGround(t *testing.T) {
	g := newTestGame(t, VariantGround, emptyTrack())
	stepN(g, 100, core.NewInputFrame())

	snap := g.Snapshot()
	assert.True(t, snap.PlayerPresent)
	assert.Greater(t, snap.Z, -15.0)
	assert.InDelta(t, 0.5, snap.Y, 0.01)
	assert.Equal(t, uint64(100), snap.Tick)
}

func TestFlipCarriesPlayerToCeiling(t *testing.T) {
	g := newTestGame(t, VariantMirrored, emptyTrack())
	runUntil(t, g, 500, func(s Snapshot) bool { return s.Z > 1 })

	g.Step(frame(core.ActionFlip))
	snap := g.Snapshot()
	assert.True(t, snap.Flipped)
	assert.True(t, snap.Flipping)

	stepN(g, 300, core.NewInputFrame())
	snap = g.Snapshot()
	assert.True(t, snap.Flipped)
	assert.False(t, snap.Flipping)
	assert.InDelta(t, 1.0, snap.FlipProgress, 1e-9)
	assert.InDelta(t, 21.5, snap.Y, 0.01)
	assert.InDelta(t, 180, snap.CameraRoll, 1)
	assert.Equal(t, 1, g.Stats().Flips)
}

func TestOutOfBoundsReloadsLevel(t *testing.T) {
	cfg := emptyTrack()
	cfg.Locomotion.YMin = 1
	g := newTestGame(t, VariantGround, cfg)

	g.Step(core.NewInputFrame())
	snap := g.Snapshot()
	assert.False(t, snap.PlayerPresent)
	assert.Equal(t, StateGameOver, snap.State)
	assert.InDelta(t, 0.01, snap.TimeScale, 1e-12)

	// Two seconds of slow motion, then a one second fade before the reload.
	stepN(g, 200, core.NewInputFrame())
	snap = g.Snapshot()
	assert.Equal(t, 1, snap.Attempt)
	assert.Equal(t, "ground", snap.LevelID)
	assert.Equal(t, 0, snap.LevelsPlayed)
}

func TestObstacleHitFracturesPlayer(t *testing.T) {
	g := newTestGame(t, VariantGround, emptyTrack())
	g.store.Spawn(generator.Placement{
		Archetype:   "block",
		Surface:     generator.SurfaceGround,
		Position:    mgl64.Vec3{0, 0.5, -15},
		Rotation:    mgl64.QuatIdent(),
		HalfExtents: mgl64.Vec3{0.5, 0.5, 0.5},
	})

	runUntil(t, g, 300, func(s Snapshot) bool { return s.State == StateGameOver })
	assert.False(t, g.controller.Enabled())
	assert.True(t, g.player.Present(), "fracture waits for its delay")

	stepN(g, 10, core.NewInputFrame())
	assert.False(t, g.player.Present())
	assert.Equal(t, 0, g.store.Len())
	assert.Len(t, g.debris.Fragments(), 20)
}

func TestInvincibilityCheatIgnoresObstacles(t *testing.T) {
	g := newTestGame(t, VariantGround, emptyTrack())
	g.store.Spawn(generator.Placement{
		Archetype:   "block",
		Surface:     generator.SurfaceGround,
		Position:    mgl64.Vec3{0, 0.5, -15},
		Rotation:    mgl64.QuatIdent(),
		HalfExtents: mgl64.Vec3{0.5, 0.5, 0.5},
	})
	for _, a := range []core.Action{
		core.ActionArrowLeft, core.ActionArrowLeft, core.ActionArrowRight,
		core.ActionArrowLeft, core.ActionArrowLeft,
	} {
		g.Step(frame(a))
	}
	require.True(t, g.Snapshot().Invincible)

	stepN(g, 150, core.NewInputFrame())
	snap := g.Snapshot()
	assert.True(t, snap.PlayerPresent)
	assert.Equal(t, StatePlaying, snap.State)
	assert.Greater(t, snap.Z, -14.0)
}

func TestSkipLevelCheatAndContinue(t *testing.T) {
	g := newTestGame(t, VariantGround, emptyTrack())
	stepN(g, 20, core.NewInputFrame())
	for _, a := range []core.Action{
		core.ActionArrowUp, core.ActionArrowUp, core.ActionArrowUp,
		core.ActionArrowDown, core.ActionArrowDown,
	} {
		g.Step(frame(a))
	}

	snap := g.Snapshot()
	require.Equal(t, StateComplete, snap.State)
	assert.True(t, g.body.Frozen())
	frozenAt := snap.Z
	stepN(g, 10, core.NewInputFrame())
	assert.InDelta(t, frozenAt, g.Snapshot().Z, 1e-12)

	g.Step(frame(core.ActionConfirm))
	stepN(g, 60, core.NewInputFrame())

	snap = g.Snapshot()
	assert.Equal(t, "ceiling", snap.LevelID)
	assert.Equal(t, 3, snap.Level)
	assert.Equal(t, 1, snap.LevelsPlayed)
	assert.Equal(t, StatePlaying, snap.State)
}

func TestConfirmIgnoredBeforeLevelComplete(t *testing.T) {
	g := newTestGame(t, VariantGround, emptyTrack())
	g.Step(frame(core.ActionConfirm))
	stepN(g, 60, core.NewInputFrame())
	assert.Equal(t, "ground", g.Snapshot().LevelID)
}

func TestReachingLevelEndCompletes(t *testing.T) {
	cfg := emptyTrack()
	end := 5.0
	cfg.Locomotion.LevelEndZ = &end
	g := newTestGame(t, VariantGround, cfg)

	runUntil(t, g, 500, func(s Snapshot) bool { return s.State == StateComplete })
	g.Step(core.NewInputFrame())
	assert.Equal(t, 5, g.Snapshot().Score)
	assert.InDelta(t, 1.0, g.State().Progress, 1e-9)
	assert.True(t, g.State().LevelComplete)
}

func TestPauseFreezesSimulation(t *testing.T) {
	g := newTestGame(t, VariantGround, emptyTrack())
	stepN(g, 10, core.NewInputFrame())

	g.Step(frame(core.ActionPause))
	before := g.Snapshot()
	assert.Equal(t, StatePaused, before.State)
	stepN(g, 20, core.NewInputFrame())
	assert.Equal(t, before, g.Snapshot())

	g.Step(frame(core.ActionPause))
	assert.Equal(t, StatePlaying, g.Snapshot().State)
	assert.Greater(t, g.Snapshot().Frame, before.Frame)
}

func TestResetReturnsToStartingLevel(t *testing.T) {
	g := newTestGame(t, VariantGround, emptyTrack())
	g.loadLevel(4)
	require.Equal(t, "mirrored", g.ID())

	g.Reset(testRuntime(42))
	snap := g.Snapshot()
	assert.Equal(t, "ground", snap.LevelID)
	assert.Equal(t, 0, snap.LevelsPlayed)
	assert.Equal(t, uint64(0), snap.Tick)
}

func TestCampaignWrapsAround(t *testing.T) {
	g := newTestGame(t, VariantMirrored, emptyTrack())
	g.loadLevel(5)
	assert.Equal(t, "classic", g.ID())
	assert.Equal(t, 1, g.LevelNumber())
}

func TestRender(t *testing.T) {
	g := newTestGame(t, VariantGround, emptyTrack())
	stepN(g, 60, core.NewInputFrame())

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	content := screen.String()

	assert.Contains(t, content, "Level 2: Ground Run")
	assert.Contains(t, content, "GRAVITY DOWN")
	assert.Contains(t, content, string(RailChar))
	assert.True(t, g.playerVisible(80, 24))
}

func TestRenderShowsFadeTitle(t *testing.T) {
	g := newTestGame(t, VariantCeiling, emptyTrack())
	screen := core.NewScreen(80, 24)
	g.Render(screen)
	assert.Contains(t, screen.Row(12), "Level 3")
}

func TestRenderPaused(t *testing.T) {
	g := newTestGame(t, VariantGround, emptyTrack())
	stepN(g, 60, core.NewInputFrame())
	g.Step(frame(core.ActionPause))

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	assert.True(t, strings.Contains(screen.String(), "PAUSED"))
}

func TestRegistryCampaignOrder(t *testing.T) {
	var ids []string
	for _, info := range registry.List() {
		ids = append(ids, info.ID)
	}
	assert.Equal(t, []string{"classic", "ground", "ceiling", "mirrored"}, ids)

	l, err := registry.Create("mirrored")
	require.NoError(t, err)
	assert.Equal(t, "mirrored", l.ID())
	assert.Equal(t, "Split Horizon", l.Title())

	id, ok := registry.At(1)
	assert.True(t, ok)
	assert.Equal(t, "ground", id)
	assert.Equal(t, 3, registry.IndexOf("mirrored"))
}

func TestParseVariant(t *testing.T) {
	v, err := ParseVariant("ceiling")
	require.NoError(t, err)
	assert.Equal(t, VariantCeiling, v)

	_, err = ParseVariant("moon")
	assert.Error(t, err)

	_, err = Create("moon")
	assert.Error(t, err)
}

func TestSimulateWithAutopilot(t *testing.T) {
	g := newTestGame(t, VariantMirrored, emptyTrack())
	pilot := NewAutopilot()
	pilot.FlipEvery = 3

	stats := Simulate(g, pilot, 5)
	assert.Equal(t, "mirrored", stats.Level)
	assert.Positive(t, stats.Distance)
	assert.Positive(t, stats.Sections)
	assert.GreaterOrEqual(t, stats.Flips, 1)
	assert.InDelta(t, 5.0, stats.SimTime, 0.05)
	assert.False(t, stats.GameOver)
}

func TestDebrisBurstExpires(t *testing.T) {
	d := NewDebris(generator.NewSeededSource(7))
	d.Burst(mgl64.Vec3{0, 1, 0}, 5)
	require.Len(t, d.Fragments(), 5)
	for _, f := range d.Fragments() {
		assert.InDelta(t, fragmentSpeed, f.Velocity.Len(), 1e-9)
	}

	d.Step(1)
	assert.Len(t, d.Fragments(), 5)
	d.Step(fragmentLife)
	assert.Empty(t, d.Fragments())
}
