package generator

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/split-horizon/internal/physics"
)

// collector records every placement it is handed.
type collector struct {
	placements []Placement
}

func (c *collector) Spawn(p Placement) { c.placements = append(c.placements, p) }

func groundPlatform(zMin, zMax float64) Platform {
	return Platform{
		Center: mgl64.Vec3{0, -0.5, (zMin + zMax) / 2},
		Size:   mgl64.Vec3{100, 1, zMax - zMin},
	}
}

func ceilingPlatform(zMin, zMax float64) Platform {
	return Platform{
		Center: mgl64.Vec3{0, 20.5, (zMin + zMax) / 2},
		Size:   mgl64.Vec3{100, 1, zMax - zMin},
	}
}

func newPlayer(pos mgl64.Vec3) (*physics.Handle, *physics.RigidBody) {
	b := physics.NewRigidBody(physics.BodyOptions{Position: pos})
	return physics.NewHandle(b), b
}

func smallConfig() Config {
	return Config{
		GenerationDistance: 40,
		SectionLength:      50,
		GenXDistance:       500,
		Specs: []ObstacleSpec{
			{Name: "cube", HalfExtents: mgl64.Vec3{0.5, 0.5, 0.5}, Count: 3, HeightRange: 7},
			{Name: "block", HalfExtents: mgl64.Vec3{0.5, 0.5, 0.5}, Count: 2},
		},
	}
}

func newGenerator(t *testing.T, cfg Config, surfaces []Surface, player *physics.Handle) (*Generator, *collector) {
	t.Helper()
	c := &collector{}
	g, err := New(cfg, surfaces, NewSeededSource(7), c, player, nil)
	require.NoError(t, err)
	return g, c
}

func TestPreRollAndAdvanceThreshold(t *testing.T) {
	player, body := newPlayer(mgl64.Vec3{0, 0.5, 0})
	g, _ := newGenerator(t, smallConfig(), []Surface{Ground(groundPlatform(0, 100))}, player)

	g.PreRoll()
	require.Equal(t, []Section{{0, 50}}, g.Sections())
	assert.Equal(t, 50.0, g.Frontier())

	body.SetPosition(mgl64.Vec3{0, 0.5, 10})
	assert.False(t, g.Advance(10), "10+40 does not pass the frontier at 50")
	assert.Len(t, g.Sections(), 1)

	assert.True(t, g.Advance(11))
	assert.Equal(t, []Section{{0, 50}, {50, 100}}, g.Sections())
	assert.Equal(t, 100.0, g.Frontier())

	assert.False(t, g.Advance(1000), "inert once the frontier reaches zMax")
	assert.True(t, g.Exhausted())
	assert.Len(t, g.Sections(), 2)
}

func TestPreRollCoversLookahead(t *testing.T) {
	player, _ := newPlayer(mgl64.Vec3{0, 0.5, 0})
	cfg := smallConfig()
	cfg.GenerationDistance = 200
	g, _ := newGenerator(t, cfg, []Surface{Ground(groundPlatform(0, 120))}, player)

	g.PreRoll()

	assert.Equal(t, []Section{{0, 50}, {50, 100}, {100, 120}}, g.Sections(), "last section clamped to zMax")
	assert.Equal(t, 120.0, g.Frontier())
}

func TestPreRollStartsAtClampedPlayerZ(t *testing.T) {
	player, _ := newPlayer(mgl64.Vec3{0, 0.5, 30})
	g, _ := newGenerator(t, smallConfig(), []Surface{Ground(groundPlatform(0, 500))}, player)
	g.PreRoll()

	require.NotEmpty(t, g.Sections())
	assert.Equal(t, 30.0, g.Sections()[0].Start)

	player, _ = newPlayer(mgl64.Vec3{0, 0.5, -80})
	g, _ = newGenerator(t, smallConfig(), []Surface{Ground(groundPlatform(0, 500))}, player)
	g.PreRoll()
	assert.Empty(t, g.Sections(), "lookahead from -80 ends before the platform")
	assert.Equal(t, 0.0, g.Frontier())
}

func TestAdvanceIsMonotonicAndContiguous(t *testing.T) {
	player, body := newPlayer(mgl64.Vec3{0, 0.5, 0})
	cfg := smallConfig()
	cfg.SectionLength = 37
	g, _ := newGenerator(t, cfg, []Surface{Ground(groundPlatform(0, 1000))}, player)
	g.PreRoll()

	rng := NewSeededSource(99)
	z, last := 0.0, g.Frontier()
	for i := 0; i < 2000; i++ {
		z += rng.Float64() * 3
		body.SetPosition(mgl64.Vec3{0, 0.5, z})
		g.Tick()
		require.GreaterOrEqual(t, g.Frontier(), last)
		last = g.Frontier()
	}

	secs := g.Sections()
	require.NotEmpty(t, secs)
	for i, s := range secs {
		assert.LessOrEqual(t, s.End, 1000.0)
		assert.LessOrEqual(t, s.Start, s.End)
		if i > 0 {
			assert.Equal(t, secs[i-1].End, s.Start, "sections must not overlap or leave gaps")
		}
	}
	assert.Equal(t, 1000.0, g.Frontier())
}

func TestAdvanceWithoutPlayer(t *testing.T) {
	player, _ := newPlayer(mgl64.Vec3{0, 0.5, 0})
	g, c := newGenerator(t, smallConfig(), []Surface{Ground(groundPlatform(0, 100))}, player)
	player.Destroy()

	assert.NotPanics(t, func() {
		g.PreRoll()
		assert.False(t, g.Advance(500))
		assert.False(t, g.Tick())
	})
	assert.Empty(t, c.placements)
	assert.Equal(t, 0.0, g.Frontier())
}

func TestMirroredPairsShareLane(t *testing.T) {
	player, _ := newPlayer(mgl64.Vec3{0, 0.5, 0})
	cfg := smallConfig()
	cfg.Rare = DefaultRareSpecs()
	cfg.RareChance = 1
	ground := Ground(groundPlatform(0, 200))
	ceiling := Ceiling(ceilingPlatform(0, 200), 1.5)
	g, c := newGenerator(t, cfg, []Surface{ground, ceiling}, player)
	g.PreRoll()

	byPair := map[int][]Placement{}
	for _, p := range c.placements {
		byPair[p.Pair] = append(byPair[p.Pair], p)
	}
	require.NotEmpty(t, byPair)

	sumY := ground.Bounds.SurfaceY + ceiling.Bounds.SurfaceY - ceiling.Adjust
	rare := 0
	for id, pair := range byPair {
		require.Len(t, pair, 2, "pair %d", id)
		gp, cp := pair[0], pair[1]
		assert.Equal(t, SurfaceGround, gp.Surface)
		assert.Equal(t, SurfaceCeiling, cp.Surface)
		assert.Equal(t, gp.Position.X(), cp.Position.X())
		assert.Equal(t, gp.Position.Z(), cp.Position.Z())
		assert.Equal(t, gp.Archetype, cp.Archetype)
		assert.InDelta(t, sumY, gp.Position.Y()+cp.Position.Y(), 1e-9)
		if gp.Rare {
			rare++
		}
	}
	assert.Equal(t, len(g.Sections()), rare, "one rare pair per section at chance 1")
	assert.Equal(t, rare, g.Stats().Rare)
}

func TestFlushPlacement(t *testing.T) {
	player, _ := newPlayer(mgl64.Vec3{0, 0.5, 0})
	cfg := smallConfig()
	cfg.SpawnYOffset = 0.01
	cfg.Specs = []ObstacleSpec{
		{Name: "block", HalfExtents: mgl64.Vec3{0.5, 0.5, 0.5}, Count: 5},
		{Name: "pillar", HalfExtents: mgl64.Vec3{0.5, 1, 0.5}, YOffset: 1, Count: 5},
		{Name: "cube", HalfExtents: mgl64.Vec3{0.5, 0.5, 0.5}, Count: 50, HeightRange: 7},
	}
	g, c := newGenerator(t, cfg, []Surface{Ground(groundPlatform(0, 50))}, player)
	g.PreRoll()

	for _, p := range c.placements {
		switch p.Archetype {
		case "block":
			assert.InDelta(t, 0.51, p.Position.Y(), 1e-9)
		case "pillar":
			assert.InDelta(t, 2.01, p.Position.Y(), 1e-9)
		case "cube":
			assert.GreaterOrEqual(t, p.Position.Y(), 0.51)
			assert.Less(t, p.Position.Y(), 7.51)
		}
	}
}

func TestCeilingOnlyHangsDown(t *testing.T) {
	player, _ := newPlayer(mgl64.Vec3{0, 19, 0})
	cfg := smallConfig()
	cfg.Specs = []ObstacleSpec{{Name: "block", HalfExtents: mgl64.Vec3{0.5, 0.5, 0.5}, Count: 4}}
	g, c := newGenerator(t, cfg, []Surface{Ceiling(ceilingPlatform(0, 50), 0)}, player)
	g.PreRoll()

	require.Len(t, c.placements, 4)
	for _, p := range c.placements {
		assert.Equal(t, SurfaceCeiling, p.Surface)
		assert.InDelta(t, 19.5, p.Position.Y(), 1e-9)
	}
}

func TestXRangeFollowsPlayer(t *testing.T) {
	player, _ := newPlayer(mgl64.Vec3{30, 0.5, 0})
	cfg := smallConfig()
	cfg.GenXDistance = 5
	g, c := newGenerator(t, cfg, []Surface{Ground(groundPlatform(0, 50))}, player)
	g.PreRoll()

	require.NotEmpty(t, c.placements)
	for _, p := range c.placements {
		assert.GreaterOrEqual(t, p.Position.X(), 25.0)
		assert.LessOrEqual(t, p.Position.X(), 35.0)
	}
}

func TestXRangeCollapsesOffPlatform(t *testing.T) {
	player, _ := newPlayer(mgl64.Vec3{400, 0.5, 0})
	cfg := smallConfig()
	cfg.GenXDistance = 5
	g, c := newGenerator(t, cfg, []Surface{Ground(groundPlatform(0, 50))}, player)
	g.PreRoll()

	require.NotEmpty(t, c.placements)
	for _, p := range c.placements {
		assert.Equal(t, 50.0, p.Position.X())
	}
}

func TestDegenerateSection(t *testing.T) {
	player, _ := newPlayer(mgl64.Vec3{0, 0.5, 0})
	g, c := newGenerator(t, smallConfig(), []Surface{Ground(groundPlatform(0, 100))}, player)

	assert.NotPanics(t, func() { g.EmitSection(100, 150, 0) })
	require.NotEmpty(t, c.placements)
	for _, p := range c.placements {
		assert.Equal(t, 100.0, p.Position.Z())
	}
}

func TestRareChanceZero(t *testing.T) {
	player, _ := newPlayer(mgl64.Vec3{0, 0.5, 0})
	cfg := smallConfig()
	cfg.Rare = DefaultRareSpecs()
	cfg.RareChance = 0
	cfg.GenerationDistance = 1000
	g, c := newGenerator(t, cfg, []Surface{Ground(groundPlatform(0, 1000))}, player)
	g.PreRoll()

	for _, p := range c.placements {
		assert.False(t, p.Rare)
	}
	assert.Zero(t, g.Stats().Rare)
	assert.Equal(t, 20, g.Stats().Sections)
}

func TestSeededGenerationIsReproducible(t *testing.T) {
	run := func() []Placement {
		player, _ := newPlayer(mgl64.Vec3{0, 0.5, 0})
		cfg := DefaultConfig()
		g, c := newGenerator(t, cfg, []Surface{Ground(groundPlatform(0, 300)), Ceiling(ceilingPlatform(0, 300), 0)}, player)
		g.PreRoll()
		return c.placements
	}
	assert.Equal(t, run(), run())
}

func TestRotatedExtents(t *testing.T) {
	spec := ObstacleSpec{Name: "slab", HalfExtents: mgl64.Vec3{1.5, 0.5, 0.5}, Rotation: mgl64.Vec3{0, 90, 0}}
	half := rotatedExtents(spec.Orientation(), spec.HalfExtents)

	assert.InDelta(t, 0.5, half.X(), 1e-9)
	assert.InDelta(t, 0.5, half.Y(), 1e-9)
	assert.InDelta(t, 1.5, half.Z(), 1e-9)
}

func TestOrientationComposesBaseRotation(t *testing.T) {
	base := mgl64.QuatRotate(mgl64.DegToRad(90), mgl64.Vec3{0, 1, 0})
	spec := ObstacleSpec{Rotation: mgl64.Vec3{0, 90, 0}, BaseRotation: base}

	got := spec.Orientation().Rotate(mgl64.Vec3{1, 0, 0})
	assert.InDelta(t, -1, got.X(), 1e-9)
	assert.InDelta(t, 0, got.Z(), 1e-9)

	assert.True(t, ObstacleSpec{}.Orientation().ApproxEqual(mgl64.QuatIdent()))
}

func TestPopulateBiasesTowardFarEnd(t *testing.T) {
	player, _ := newPlayer(mgl64.Vec3{0, 0.5, 0})
	cfg := smallConfig()
	cfg.DensityExponent = 0.5
	cfg.Specs = []ObstacleSpec{{Name: "block", HalfExtents: mgl64.Vec3{0.5, 0.5, 0.5}, Count: 2000}}
	g, c := newGenerator(t, cfg, []Surface{Ground(groundPlatform(0, 1000))}, player)
	g.Populate()

	sum := 0.0
	for _, p := range c.placements {
		sum += p.Position.Z()
	}
	mean := sum / float64(len(c.placements))
	// E[u^0.5] = 2/3
	assert.InDelta(t, 666, mean, 30)
	assert.True(t, g.Exhausted())
	assert.False(t, g.Advance(0))
}

func TestNewValidation(t *testing.T) {
	_, err := New(smallConfig(), nil, nil, nil, nil, nil)
	assert.Error(t, err)

	cfg := smallConfig()
	cfg.SectionLength = 0
	_, err = New(cfg, []Surface{Ground(groundPlatform(0, 10))}, nil, nil, nil, nil)
	assert.Error(t, err)
}

func TestBoundsFromPlatform(t *testing.T) {
	p := Platform{Center: mgl64.Vec3{10, 2, 100}, Size: mgl64.Vec3{20, 4, 200}}
	g := GroundBounds(p)
	c := CeilingBounds(p)

	assert.Equal(t, BoundsWindow{XMin: 0, XMax: 20, ZMin: 0, ZMax: 200, SurfaceY: 4}, g)
	assert.Equal(t, 0.0, c.SurfaceY)
	assert.Equal(t, 200.0, g.ClampZ(math.Inf(1)))
}

func TestRandomHelpers(t *testing.T) {
	r := NewSeededSource(1)
	for i := 0; i < 1000; i++ {
		v := Range(r, 2, 5)
		assert.GreaterOrEqual(t, v, 2.0)
		assert.Less(t, v, 5.0)
		n := Pick(r, 3)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 3)
	}
	assert.Equal(t, 4.0, Range(r, 4, 4))
	assert.False(t, Chance(r, 0))
	assert.True(t, Chance(r, 1))
}

func TestDensityScalesCounts(t *testing.T) {
	player, _ := newPlayer(mgl64.Vec3{0, 0.5, 0})
	cfg := smallConfig()
	cfg.GenerationDistance = 100
	cfg.Specs = []ObstacleSpec{{Name: "block", HalfExtents: mgl64.Vec3{0.5, 0.5, 0.5}, Count: 10}}
	cfg.Density = func(z float64) float64 {
		if z < 50 {
			return 0.5
		}
		return 2
	}
	g, c := newGenerator(t, cfg, []Surface{Ground(groundPlatform(0, 100))}, player)
	g.PreRoll()

	perSection := map[int]int{}
	for _, p := range c.placements {
		perSection[p.Section]++
	}
	assert.Equal(t, map[int]int{0: 5, 1: 20}, perSection)
}
