// Package generator streams obstacles ahead of the player in fixed-length
// sections along the travel axis, on a ground surface, a ceiling surface, or
// both at once as lane-aligned mirrored pairs.
package generator

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	opt "github.com/repeale/fp-go/option"

	"github.com/vovakirdan/split-horizon/internal/core"
	"github.com/vovakirdan/split-horizon/internal/physics"
)

// Config holds the generation tuning.
type Config struct {
	GenerationDistance float64 // lookahead past the player
	SectionLength      float64
	GenXDistance       float64 // lateral sampling half-width around the player
	SpawnYOffset       float64 // added to every regular archetype's flush offset
	Specs              []ObstacleSpec
	Rare               []ObstacleSpec
	RareChance         float64
	DensityExponent    float64 // Z bias for Populate; 1 is uniform
	// Density scales every archetype's count for a section starting at z.
	// Nil means 1.
	Density func(z float64) float64
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		GenerationDistance: 500,
		SectionLength:      50,
		GenXDistance:       500,
		SpawnYOffset:       0.01,
		Specs:              DefaultSpecs(),
		Rare:               DefaultRareSpecs(),
		RareChance:         0.1,
		DensityExponent:    0.5,
	}
}

// Section is a half-open travel-axis range that has been emitted.
type Section struct {
	Start, End float64
}

// Stats counts what the generator has produced.
type Stats struct {
	Sections   int
	Placements int
	Rare       int
}

// Generator owns the generation frontier. Only Advance, PreRoll and
// EmitSection ever move it, and only forward.
type Generator struct {
	cfg      Config
	surfaces []Surface
	rng      RandomSource
	spawner  Spawner
	player   *physics.Handle
	logger   *log.Logger

	frontier float64
	zMin     float64
	zMax     float64
	pair     int
	emitted  []Section
	stats    Stats
}

// New creates a generator. The first surface's Z extent bounds the frontier.
// With two surfaces every sample is placed on both.
func New(cfg Config, surfaces []Surface, rng RandomSource, spawner Spawner, player *physics.Handle, logger *log.Logger) (*Generator, error) {
	if len(surfaces) == 0 {
		return nil, errors.New("generator: no surfaces configured")
	}
	if cfg.SectionLength <= 0 {
		return nil, fmt.Errorf("generator: section length must be positive, got %v", cfg.SectionLength)
	}
	if rng == nil {
		rng = NewSource()
	}
	if spawner == nil {
		spawner = SpawnerFunc(func(Placement) {})
	}
	if player == nil {
		player = physics.EmptyHandle()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	b := surfaces[0].Bounds
	return &Generator{
		cfg:      cfg,
		surfaces: surfaces,
		rng:      rng,
		spawner:  spawner,
		player:   player,
		logger:   logger,
		frontier: b.ZMin,
		zMin:     b.ZMin,
		zMax:     b.ZMax,
	}, nil
}

// Frontier returns the Z up to which sections have been emitted.
func (g *Generator) Frontier() float64 { return g.frontier }

// Exhausted reports whether the frontier reached the end of the platform.
func (g *Generator) Exhausted() bool { return g.frontier >= g.zMax }

// Stats returns production counters.
func (g *Generator) Stats() Stats { return g.stats }

// Sections returns every emitted section in order.
func (g *Generator) Sections() []Section { return g.emitted }

// Surfaces returns the configured surfaces.
func (g *Generator) Surfaces() []Surface { return g.surfaces }

func (g *Generator) playerPos() opt.Option[mgl64.Vec3] {
	b := g.player.Get()
	if opt.IsNone(b) {
		return opt.None[mgl64.Vec3]()
	}
	return opt.Some(b.Value.Position())
}

// PreRoll places the frontier at the player's clamped Z and emits sections
// until the lookahead is covered. Does nothing without a player.
func (g *Generator) PreRoll() {
	p := g.playerPos()
	if opt.IsNone(p) {
		return
	}
	z := p.Value.Z()
	if z > g.frontier {
		g.frontier = core.ClampF(z, g.zMin, g.zMax)
	}
	limit := math.Min(g.zMax, z+g.cfg.GenerationDistance)
	for g.frontier < limit {
		g.emitNext(p.Value.X())
	}
}

// Advance emits at most one section when the lookahead from playerZ passes
// the frontier. It returns whether a section was emitted. It is a no-op
// without a player or once the frontier reached the end of the platform.
func (g *Generator) Advance(playerZ float64) bool {
	p := g.playerPos()
	if opt.IsNone(p) {
		return false
	}
	if playerZ+g.cfg.GenerationDistance <= g.frontier || g.frontier >= g.zMax {
		return false
	}
	g.emitNext(p.Value.X())
	return true
}

// Tick calls Advance with the player's current Z.
func (g *Generator) Tick() bool {
	p := g.playerPos()
	if opt.IsNone(p) {
		return false
	}
	return g.Advance(p.Value.Z())
}

func (g *Generator) emitNext(playerX float64) {
	start := g.frontier
	end := start + g.cfg.SectionLength
	g.EmitSection(start, end, playerX)
	g.frontier = math.Min(end, g.zMax)
}

// EmitSection places one batch of obstacles in [start, end), clamped to the
// platform. A degenerate range places everything at a single Z.
func (g *Generator) EmitSection(start, end, playerX float64) {
	start = core.ClampF(start, g.zMin, g.zMax)
	end = core.ClampF(end, g.zMin, g.zMax)
	xLo, xHi := g.xRange(playerX)
	section := g.stats.Sections
	before := g.stats.Placements

	for _, spec := range g.cfg.Specs {
		n := g.count(spec.Count, start)
		for i := 0; i < n; i++ {
			x := Range(g.rng, xLo, xHi)
			z := Range(g.rng, start, end)
			extra := 0.0
			if spec.Floating() {
				extra = Range(g.rng, 0, spec.HeightRange)
			}
			g.place(spec, x, z, g.cfg.SpawnYOffset+spec.YOffset+extra, section, false)
		}
	}

	if len(g.cfg.Rare) > 0 && Chance(g.rng, g.cfg.RareChance) {
		spec := g.cfg.Rare[Pick(g.rng, len(g.cfg.Rare))]
		x := Range(g.rng, xLo, xHi)
		z := Range(g.rng, start, end)
		g.place(spec, x, z, spec.YOffset, section, true)
		g.stats.Rare++
	}

	g.stats.Sections++
	g.emitted = append(g.emitted, Section{Start: start, End: end})
	g.logger.Debug("section emitted",
		"start", start,
		"end", end,
		"placements", g.stats.Placements-before,
	)
}

// count applies the density curve to an archetype's base count.
func (g *Generator) count(base int, z float64) int {
	if g.cfg.Density == nil {
		return base
	}
	d := g.cfg.Density(z)
	if d <= 0 {
		return 0
	}
	return int(math.Round(float64(base) * d))
}

// place emits one sample on every surface under a shared pair id.
func (g *Generator) place(spec ObstacleSpec, x, z, offset float64, section int, rare bool) {
	rot := spec.Orientation()
	half := rotatedExtents(rot, spec.HalfExtents)
	g.pair++
	for _, s := range g.surfaces {
		g.spawner.Spawn(Placement{
			Archetype:   spec.Name,
			Surface:     s.Kind,
			Position:    mgl64.Vec3{x, s.FlushY(spec.HalfHeight(), offset), z},
			Rotation:    rot,
			HalfExtents: half,
			Pair:        g.pair,
			Section:     section,
			Rare:        rare,
		})
		g.stats.Placements++
	}
}

// xRange intersects the surfaces' X extents with the band around the player.
// When the player is outside the platform the range collapses to the nearest edge.
func (g *Generator) xRange(playerX float64) (float64, float64) {
	pMin, pMax := math.Inf(-1), math.Inf(1)
	for _, s := range g.surfaces {
		pMin = math.Max(pMin, s.Bounds.XMin)
		pMax = math.Min(pMax, s.Bounds.XMax)
	}
	if pMin > pMax {
		pMax = pMin
	}
	lo := math.Max(pMin, playerX-g.cfg.GenXDistance)
	hi := math.Min(pMax, playerX+g.cfg.GenXDistance)
	if lo > hi {
		v := core.ClampF(playerX, pMin, pMax)
		return v, v
	}
	return lo, hi
}

// Populate fills the whole platform in one pass, without streaming. Z is
// biased by the density exponent: below 1 crowds the far end.
func (g *Generator) Populate() {
	b := g.surfaces[0].Bounds
	xLo, xHi := b.XMin, b.XMax
	for _, s := range g.surfaces[1:] {
		xLo = math.Max(xLo, s.Bounds.XMin)
		xHi = math.Min(xHi, s.Bounds.XMax)
	}
	if xLo > xHi {
		xHi = xLo
	}
	k := g.cfg.DensityExponent
	if k <= 0 {
		k = 1
	}
	before := g.stats.Placements
	for _, spec := range g.cfg.Specs {
		n := g.count(spec.Count, g.zMin)
		for i := 0; i < n; i++ {
			x := Range(g.rng, xLo, xHi)
			z := g.zMin + math.Pow(g.rng.Float64(), k)*(g.zMax-g.zMin)
			extra := 0.0
			if spec.Floating() {
				extra = Range(g.rng, 0, spec.HeightRange)
			}
			g.place(spec, x, z, g.cfg.SpawnYOffset+spec.YOffset+extra, 0, false)
		}
	}
	g.frontier = g.zMax
	g.stats.Sections++
	g.emitted = append(g.emitted, Section{Start: g.zMin, End: g.zMax})
	g.logger.Debug("platform populated", "placements", g.stats.Placements-before)
}
