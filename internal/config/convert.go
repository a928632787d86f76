package config

import (
	opt "github.com/repeale/fp-go/option"

	"github.com/vovakirdan/split-horizon/internal/camera"
	"github.com/vovakirdan/split-horizon/internal/generator"
	"github.com/vovakirdan/split-horizon/internal/locomotion"
	"github.com/vovakirdan/split-horizon/internal/physics"
	"github.com/vovakirdan/split-horizon/internal/session"
)

// LocomotionSettings builds the controller tuning.
func (c RunnerConfig) LocomotionSettings() locomotion.Config {
	l := c.Locomotion
	end := opt.None[float64]()
	if l.LevelEndZ != nil {
		end = opt.Some(*l.LevelEndZ)
	}
	return locomotion.Config{
		Gravity:                  l.Gravity,
		FallMultiplier:           l.FallMultiplier,
		ForwardForce:             l.ForwardForce,
		LateralForce:             l.LateralForce,
		DetachForce:              l.DetachForce,
		FlipDuration:             l.FlipDuration,
		LevelEndZ:                end,
		LateralEnabledZ:          l.LateralEnabledZ,
		InvertLateralWhenFlipped: l.InvertLateralWhenFlipped,
		YMin:                     l.YMin,
		YMax:                     l.YMax,
	}
}

// BodySettings builds the player body options.
func (c RunnerConfig) BodySettings() physics.BodyOptions {
	return physics.BodyOptions{
		Position:    c.Physics.Start.Mgl(),
		HalfExtents: c.Physics.PlayerHalf.Mgl(),
		Mass:        c.Physics.Mass,
		Drag:        c.Physics.Drag,
	}
}

// GroundPlatform returns the ground slab.
func (c RunnerConfig) GroundPlatform() generator.Platform {
	return generator.Platform{Center: c.Platforms.Ground.Center.Mgl(), Size: c.Platforms.Ground.Size.Mgl()}
}

// CeilingPlatform returns the ceiling slab.
func (c RunnerConfig) CeilingPlatform() generator.Platform {
	return generator.Platform{Center: c.Platforms.Ceiling.Center.Mgl(), Size: c.Platforms.Ceiling.Size.Mgl()}
}

// GeneratorSettings builds the generator tuning. density may be nil.
func (c RunnerConfig) GeneratorSettings(density func(z float64) float64) generator.Config {
	g := c.Generator
	return generator.Config{
		GenerationDistance: g.GenerationDistance,
		SectionLength:      g.SectionLength,
		GenXDistance:       g.GenXDistance,
		SpawnYOffset:       g.SpawnYOffset,
		Specs:              obstacleSpecs(g.Obstacles),
		Rare:               obstacleSpecs(g.Rare),
		RareChance:         g.RareChance,
		DensityExponent:    g.DensityExponent,
		Density:            density,
	}
}

func obstacleSpecs(in []ObstacleConfig) []generator.ObstacleSpec {
	out := make([]generator.ObstacleSpec, 0, len(in))
	for _, o := range in {
		out = append(out, generator.ObstacleSpec{
			Name:        o.Name,
			HalfExtents: o.HalfExtents.Mgl(),
			Rotation:    o.Rotation.Mgl(),
			YOffset:     o.YOffset,
			Count:       o.Count,
			HeightRange: o.HeightRange,
		})
	}
	return out
}

// CameraSettings builds the follow camera tuning.
func (c RunnerConfig) CameraSettings() camera.Config {
	cam := c.Camera
	return camera.Config{
		Offset:           cam.Offset.Mgl(),
		FixedPitch:       cam.Pitch,
		FixedYaw:         cam.Yaw,
		RollSmoothSpeed:  cam.RollSmoothSpeed,
		LateralTilt:      cam.LateralTilt,
		SmoothPitch:      cam.SmoothPitch,
		PitchSmoothSpeed: cam.PitchSmoothSpeed,
	}
}

// SessionSettings builds the end-of-run timings.
func (c RunnerConfig) SessionSettings() session.Config {
	return session.Config{
		SlowMoScale:    c.Session.SlowMoScale,
		SlowMoDuration: c.Session.SlowMoDuration,
		FadeDuration:   c.Session.FadeDuration,
	}
}

// CheatSettings builds the cheat code table.
func (c RunnerConfig) CheatSettings() session.CheatConfig {
	return session.CheatConfig{
		SkipLevel:     c.Cheats.SkipLevel,
		Invincibility: c.Cheats.Invincibility,
	}
}
