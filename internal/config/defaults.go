package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the hardcoded runner configuration. It matches
// the embedded defaults/runner.yaml.
func DefaultRunnerConfig() RunnerConfig {
	levelEnd := 1000.0
	return RunnerConfig{
		Physics: PhysicsConfig{
			FixedDT:    0.02,
			Mass:       1,
			Drag:       2,
			PlayerHalf: Vec3{0.5, 0.5, 0.5},
			Start:      Vec3{0, 0.5, -20},
		},
		Locomotion: LocomotionConfig{
			Gravity:                  9.81,
			FallMultiplier:           2,
			ForwardForce:             2000,
			LateralForce:             25,
			LateralEnabledZ:          -50,
			DetachForce:              2,
			FlipDuration:             1,
			InvertLateralWhenFlipped: true,
			LevelEndZ:                &levelEnd,
			YMin:                     -2,
			YMax:                     24,
		},
		Platforms: PlatformsConfig{
			Ground:  PlatformConfig{Center: Vec3{0, -0.5, 500}, Size: Vec3{30, 1, 1080}},
			Ceiling: PlatformConfig{Center: Vec3{0, 22.5, 500}, Size: Vec3{30, 1, 1080}},
		},
		Generator: GeneratorConfig{
			GenerationDistance: 500,
			SectionLength:      50,
			GenXDistance:       500,
			SpawnYOffset:       0.01,
			RareChance:         0.1,
			DensityExponent:    0.5,
			Obstacles: []ObstacleConfig{
				{Name: "cube", HalfExtents: Vec3{0.5, 0.5, 0.5}, Count: 8, HeightRange: 7},
				{Name: "block", HalfExtents: Vec3{0.5, 0.5, 0.5}, Count: 4},
				{Name: "slab", HalfExtents: Vec3{1.5, 0.5, 0.5}, Rotation: Vec3{0, 90, 0}, Count: 3},
				{Name: "pillar", HalfExtents: Vec3{0.5, 1, 0.5}, YOffset: 1, Count: 3},
				{Name: "wedge", HalfExtents: Vec3{0.75, 0.5, 0.75}, Rotation: Vec3{0, 45, 0}, YOffset: 0.5, Count: 3},
			},
			Rare: []ObstacleConfig{
				{Name: "gate", HalfExtents: Vec3{3, 2, 0.5}, YOffset: 0.1},
				{Name: "monolith", HalfExtents: Vec3{1, 3, 1}, YOffset: 0.1},
			},
		},
		Camera: CameraConfig{
			Offset:           Vec3{0, 2, -5},
			Pitch:            10,
			RollSmoothSpeed:  5,
			LateralTilt:      3,
			PitchSmoothSpeed: 5,
		},
		Session: SessionConfig{
			SlowMoScale:     0.01,
			SlowMoDuration:  2,
			FadeDuration:    1,
			FractureDelay:   0.1,
			DespawnDistance: 20,
		},
		Cheats: CheatsConfig{
			SkipLevel:     "UUUDD",
			Invincibility: "LLRLL",
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "distance",
				MaxAt: 1000,
			},
			Scaling: ScalingConfig{
				MinDensity:        0.6,
				DensityMultiplier: 0.8,
			},
		},
	}
}
