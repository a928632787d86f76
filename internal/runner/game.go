// Package runner implements the playable Split Horizon level: a player body
// driven by the gravity-flip controller along a track whose obstacles are
// streamed in ahead of it, seen through the follow camera.
package runner

import (
	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	opt "github.com/repeale/fp-go/option"

	"github.com/vovakirdan/split-horizon/internal/camera"
	"github.com/vovakirdan/split-horizon/internal/config"
	"github.com/vovakirdan/split-horizon/internal/core"
	"github.com/vovakirdan/split-horizon/internal/generator"
	"github.com/vovakirdan/split-horizon/internal/locomotion"
	"github.com/vovakirdan/split-horizon/internal/physics"
	"github.com/vovakirdan/split-horizon/internal/session"
	"github.com/vovakirdan/split-horizon/internal/world"
)

// maxTicksPerFrame bounds catch-up after a long frame.
const maxTicksPerFrame = 8

// Option configures a Game.
type Option func(*Game)

// WithConfig uses cfg instead of loading the config at Reset.
func WithConfig(cfg config.RunnerConfig) Option {
	return func(g *Game) {
		g.fixedCfg = opt.Some(cfg)
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// Game is one run through the campaign, starting at a level variant.
type Game struct {
	variant  Variant
	start    Variant
	fixedCfg opt.Option[config.RunnerConfig]
	logger   *log.Logger

	runtime core.RuntimeConfig
	cfg     config.RunnerConfig
	attempt int

	body       *physics.RigidBody
	player     *physics.Handle
	controller *locomotion.Controller
	gen        *generator.Generator
	cam        *camera.FollowCamera
	manager    *session.Manager
	cheats     *session.CheatCodes
	progress   *session.Progress
	store      *world.Store
	difficulty *config.DifficultyManager
	debris     *Debris
	view       *renderer

	accumulator  float64
	tickCount    uint64
	frameCount   uint64
	simTime      float64
	paused       bool
	fracture     opt.Option[fracture]
	pendingLoad  opt.Option[int]
	levelsPlayed int
	flips        int
}

// fracture is the pending break-up of the player after a fatal hit.
type fracture struct {
	obstacle world.Obstacle
	left     float64
}

// New creates a level of the given variant. The world is built by Reset.
func New(v Variant, opts ...Option) *Game {
	g := &Game{
		variant: v,
		start:   v,
		logger:  defaultLogger,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// ID returns the id of the level currently being played.
func (g *Game) ID() string {
	return g.variant.String()
}

// Title returns the display name of the current level.
func (g *Game) Title() string {
	return levels[g.variant].title
}

// Variant returns the variant currently being played.
func (g *Game) Variant() Variant { return g.variant }

// LevelNumber returns the 1-based campaign position of the current level.
func (g *Game) LevelNumber() int {
	for i, v := range campaign {
		if v == g.variant {
			return i + 1
		}
	}
	return 1
}

// Reset restarts the run from the level it was created with.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.variant = g.start
	g.levelsPlayed = 0
	if opt.IsSome(g.fixedCfg) {
		g.cfg = g.fixedCfg.Value
	} else {
		g.cfg = LoadConfig()
	}
	g.attempt = 0
	g.build()
}

// build wires a fresh world for the current variant.
func (g *Game) build() {
	cfg := g.cfg
	seed := g.runtime.Seed + int64(g.attempt)*7919 + int64(g.variant)

	g.accumulator = 0
	g.tickCount = 0
	g.frameCount = 0
	g.simTime = 0
	g.paused = false
	g.fracture = opt.None[fracture]()
	g.pendingLoad = opt.None[int]()
	g.flips = 0

	g.body = physics.NewRigidBody(cfg.BodySettings())
	ground := cfg.GroundPlatform()
	ceiling := cfg.CeilingPlatform()
	g.body.AddStatic(ground.Box())
	g.body.AddStatic(ceiling.Box())
	g.player = physics.NewHandle(g.body)

	g.manager = session.NewManager(cfg.SessionSettings(), g.LevelNumber(), session.LoaderFunc(g.requestLoad), g.logger)
	g.cheats = session.NewCheatCodes(cfg.CheatSettings(), g.logger)
	g.controller = locomotion.New(cfg.LocomotionSettings(), g.player, g.manager)
	g.cam = camera.New(cfg.CameraSettings(), g.player, g.controller)

	endZ := ground.Box().Max().Z()
	if cfg.Locomotion.LevelEndZ != nil {
		endZ = *cfg.Locomotion.LevelEndZ
	}
	g.progress = session.NewProgress(cfg.Physics.Start.Mgl().Z(), endZ)

	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.store = world.NewStore()
	g.debris = NewDebris(generator.NewSeededSource(seed + 1))

	gen, err := generator.New(
		cfg.GeneratorSettings(g.density),
		g.surfaces(),
		generator.NewSeededSource(seed),
		g.store,
		g.player,
		g.logger,
	)
	if err != nil {
		g.logger.Error("falling back to default generator", "err", err)
		fallback := generator.DefaultConfig()
		fallback.Density = g.density
		gen, _ = generator.New(fallback, g.surfaces(), generator.NewSeededSource(seed), g.store, g.player, g.logger)
	}
	g.gen = gen
	if g.variant == VariantClassic {
		g.gen.Populate()
	} else {
		g.gen.PreRoll()
	}

	g.view = newRenderer(seed, ground, ceiling)
	g.controller.Start()
	g.cam.LateUpdate(0)
	g.progress.Update(g.playerPosition())
	g.logger.Debug("level built",
		"level", g.variant,
		"seed", seed,
		"obstacles", g.store.Len(),
	)
}

// surfaces returns the generation surfaces for the current variant.
func (g *Game) surfaces() []generator.Surface {
	ground := generator.Ground(g.cfg.GroundPlatform())
	switch g.variant {
	case VariantCeiling:
		return []generator.Surface{generator.Ceiling(g.cfg.CeilingPlatform(), 0)}
	case VariantMirrored:
		return []generator.Surface{
			ground,
			generator.Ceiling(g.cfg.CeilingPlatform(), g.cfg.Platforms.CeilingAdjustment),
		}
	default:
		return []generator.Surface{ground}
	}
}

// density maps a section's start Z to the difficulty density multiplier.
func (g *Game) density(z float64) float64 {
	if z < 0 {
		z = 0
	}
	return g.difficulty.Density(z)
}

// requestLoad is the session loader. The load is applied at the end of the frame.
func (g *Game) requestLoad(level int) {
	g.pendingLoad = opt.Some(level)
}

// Step advances the level by one platform frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) && !g.manager.GameOver() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	realDt := g.runtime.FrameDelta()
	scale := g.manager.TimeScale()
	g.frameCount++

	g.handleInput(in, realDt*scale)

	g.accumulator += realDt
	fixed := g.cfg.Physics.FixedDT
	ticks := 0
	for g.accumulator >= fixed && ticks < maxTicksPerFrame {
		g.physicsTick(fixed * g.manager.TimeScale())
		g.accumulator -= fixed
		ticks++
	}
	if ticks == maxTicksPerFrame {
		g.accumulator = 0
	}

	g.updateFracture(realDt)
	g.cam.LateUpdate(realDt * scale)
	g.progress.Update(g.playerPosition())
	g.manager.Update(realDt)

	if opt.IsSome(g.pendingLoad) {
		g.loadLevel(g.pendingLoad.Value)
	}
	return core.StepResult{State: g.State()}
}

// handleInput runs the per-frame input work: cheats, continue and the flip trigger.
func (g *Game) handleInput(in core.InputFrame, dt float64) {
	switch g.cheats.HandleInput(in) {
	case session.CheatSkipLevel:
		g.body.FreezeAll()
		g.manager.CompleteLevel()
	case session.CheatInvincibility:
		g.logger.Debug("invincibility enabled")
	}
	if in.Has(core.ActionConfirm) && g.manager.IsLevelComplete() {
		g.manager.LoadNextLevel()
	}
	wasFlipping := g.controller.IsFlipping()
	g.controller.HandleInput(in, dt)
	if !wasFlipping && g.controller.IsFlipping() {
		g.flips++
	}
}

// physicsTick runs one fixed step: controller forces, integration,
// streaming, despawn, collision and the level end.
func (g *Game) physicsTick(dt float64) {
	g.tickCount++
	g.simTime += dt

	g.controller.FixedStep(dt)
	if g.player.Present() {
		g.body.Step(dt)
	}
	g.debris.Step(dt)

	p := g.playerPosition()
	if opt.IsNone(p) {
		return
	}
	z := p.Value.Z()

	g.gen.Advance(z)
	g.store.Despawn(z, g.cfg.Session.DespawnDistance)
	g.checkCollision()

	if end := g.cfg.Locomotion.LevelEndZ; end != nil && z >= *end {
		g.manager.CompleteLevel()
	}
}

// checkCollision ends the run when the player touches an obstacle.
func (g *Game) checkCollision() {
	if !g.controller.Enabled() || g.cheats.Invincible() || opt.IsSome(g.fracture) {
		return
	}
	hit := g.store.Collide(g.body.Bounds())
	if opt.IsNone(hit) {
		return
	}
	g.controller.Disable()
	g.manager.TriggerSlowMoAndEndGame()
	g.fracture = opt.Some(fracture{obstacle: hit.Value, left: g.cfg.Session.FractureDelay})
	g.logger.Debug("player hit obstacle",
		"archetype", hit.Value.Archetype,
		"z", g.body.Position().Z(),
	)
}

// updateFracture breaks the player and the obstacle apart once the real-time
// delay has passed.
func (g *Game) updateFracture(realDt float64) {
	if opt.IsNone(g.fracture) {
		return
	}
	f := g.fracture.Value
	f.left -= realDt
	if f.left > 0 {
		g.fracture = opt.Some(f)
		return
	}
	g.fracture = opt.None[fracture]()
	if b := g.player.Get(); opt.IsSome(b) {
		g.debris.Burst(b.Value.Position(), 12)
	}
	g.debris.Burst(f.obstacle.Position, 8)
	g.store.Remove(f.obstacle.ID)
	g.player.Destroy()
}

// loadLevel applies a level load requested by the session manager.
// The same number retries the level; a higher one moves through the campaign.
func (g *Game) loadLevel(number int) {
	g.pendingLoad = opt.None[int]()
	if number == g.LevelNumber() {
		g.attempt++
	} else {
		idx := (number - 1) % len(campaign)
		if idx < 0 {
			idx = 0
		}
		g.variant = campaign[idx]
		g.attempt = 0
		g.levelsPlayed++
	}
	g.logger.Info("loading level", "level", g.variant, "attempt", g.attempt)
	g.build()
}

// playerPosition returns the player's position, or None once destroyed.
func (g *Game) playerPosition() opt.Option[mgl64.Vec3] {
	b := g.player.Get()
	if opt.IsNone(b) {
		return opt.None[mgl64.Vec3]()
	}
	return opt.Some(b.Value.Position())
}

// State returns the current run state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:         g.progress.Score(),
		Progress:      g.progress.Fraction(),
		GameOver:      g.manager.GameOver(),
		LevelComplete: g.manager.IsLevelComplete(),
		Paused:        g.paused,
	}
}
