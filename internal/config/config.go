// Package config provides YAML-based runner configuration loading,
// validation and difficulty management.
package config

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is a YAML-friendly three component vector: [x, y, z].
type Vec3 [3]float64

// Mgl converts to a math vector.
func (v Vec3) Mgl() mgl64.Vec3 { return mgl64.Vec3(v) }

// RunnerConfig contains all configuration for a runner level.
type RunnerConfig struct {
	Physics    PhysicsConfig    `yaml:"physics"`
	Locomotion LocomotionConfig `yaml:"locomotion"`
	Platforms  PlatformsConfig  `yaml:"platforms"`
	Generator  GeneratorConfig  `yaml:"generator"`
	Camera     CameraConfig     `yaml:"camera"`
	Session    SessionConfig    `yaml:"session"`
	Cheats     CheatsConfig     `yaml:"cheats"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PhysicsConfig defines the reference rigid body and the fixed step.
type PhysicsConfig struct {
	FixedDT    float64 `yaml:"fixed_dt"`
	Mass       float64 `yaml:"mass"`
	Drag       float64 `yaml:"drag"`
	PlayerHalf Vec3    `yaml:"player_half"`
	Start      Vec3    `yaml:"start"`
}

// LocomotionConfig defines the gravity-flip controller tuning.
type LocomotionConfig struct {
	Gravity                  float64  `yaml:"gravity"`
	FallMultiplier           float64  `yaml:"fall_multiplier"`
	ForwardForce             float64  `yaml:"forward_force"`
	LateralForce             float64  `yaml:"lateral_force"`
	LateralEnabledZ          float64  `yaml:"lateral_enabled_z"`
	DetachForce              float64  `yaml:"detach_force"`
	FlipDuration             float64  `yaml:"flip_duration"`
	InvertLateralWhenFlipped bool     `yaml:"invert_lateral_when_flipped"`
	LevelEndZ                *float64 `yaml:"level_end_z"` // nil disables forward propulsion
	YMin                     float64  `yaml:"y_min"`
	YMax                     float64  `yaml:"y_max"`
}

// PlatformConfig is a box slab given by center and full size.
type PlatformConfig struct {
	Center Vec3 `yaml:"center"`
	Size   Vec3 `yaml:"size"`
}

// PlatformsConfig holds the ground and ceiling slabs.
type PlatformsConfig struct {
	Ground            PlatformConfig `yaml:"ground"`
	Ceiling           PlatformConfig `yaml:"ceiling"`
	CeilingAdjustment float64        `yaml:"ceiling_adjustment"`
}

// ObstacleConfig describes one archetype.
type ObstacleConfig struct {
	Name        string  `yaml:"name"`
	HalfExtents Vec3    `yaml:"half_extents"`
	Rotation    Vec3    `yaml:"rotation"` // Euler degrees
	YOffset     float64 `yaml:"y_offset"`
	Count       int     `yaml:"count"`
	HeightRange float64 `yaml:"height_range"` // > 0 makes the archetype floating
}

// GeneratorConfig defines section streaming.
type GeneratorConfig struct {
	GenerationDistance float64          `yaml:"generation_distance"`
	SectionLength      float64          `yaml:"section_length"`
	GenXDistance       float64          `yaml:"gen_x_distance"`
	SpawnYOffset       float64          `yaml:"spawn_y_offset"`
	RareChance         float64          `yaml:"rare_chance"`
	DensityExponent    float64          `yaml:"density_exponent"`
	Obstacles          []ObstacleConfig `yaml:"obstacles"`
	Rare               []ObstacleConfig `yaml:"rare"`
}

// CameraConfig defines the follow camera.
type CameraConfig struct {
	Offset           Vec3    `yaml:"offset"`
	Pitch            float64 `yaml:"pitch"`
	Yaw              float64 `yaml:"yaw"`
	RollSmoothSpeed  float64 `yaml:"roll_smooth_speed"`
	LateralTilt      float64 `yaml:"lateral_tilt"`
	SmoothPitch      bool    `yaml:"smooth_pitch"`
	PitchSmoothSpeed float64 `yaml:"pitch_smooth_speed"`
}

// SessionConfig defines end-of-run timings and world upkeep.
type SessionConfig struct {
	SlowMoScale     float64 `yaml:"slow_mo_scale"`
	SlowMoDuration  float64 `yaml:"slow_mo_duration"`
	FadeDuration    float64 `yaml:"fade_duration"`
	FractureDelay   float64 `yaml:"fracture_delay"`
	DespawnDistance float64 `yaml:"despawn_distance"`
}

// CheatsConfig holds arrow sequences written with U, D, L and R.
type CheatsConfig struct {
	SkipLevel     string `yaml:"skip_level"`
	Invincibility string `yaml:"invincibility"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases along the run.
type ProgressionConfig struct {
	Type  string  `yaml:"type"`   // "distance" or "none"
	MaxAt float64 `yaml:"max_at"` // Distance at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	DensityMultiplier float64 `yaml:"density_multiplier"` // Extra obstacle density at max difficulty
	MinDensity        float64 `yaml:"min_density"`        // Density at level 0
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
	}
}
