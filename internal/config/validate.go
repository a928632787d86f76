package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...)
}

// Validate reports every invalid field at once.
func Validate(cfg RunnerConfig) error {
	var errs []error

	if cfg.Physics.FixedDT <= 0 {
		errs = append(errs, invalid("physics.fixed_dt must be positive, got %v", cfg.Physics.FixedDT))
	}
	if cfg.Physics.Mass <= 0 {
		errs = append(errs, invalid("physics.mass must be positive, got %v", cfg.Physics.Mass))
	}
	if cfg.Physics.Drag < 0 {
		errs = append(errs, invalid("physics.drag must not be negative, got %v", cfg.Physics.Drag))
	}

	loc := cfg.Locomotion
	if loc.FlipDuration <= 0 {
		errs = append(errs, invalid("locomotion.flip_duration must be positive, got %v", loc.FlipDuration))
	}
	if loc.YMin >= loc.YMax {
		errs = append(errs, invalid("locomotion.y_min (%v) must be below y_max (%v)", loc.YMin, loc.YMax))
	}
	if loc.FallMultiplier < 1 {
		errs = append(errs, invalid("locomotion.fall_multiplier must be at least 1, got %v", loc.FallMultiplier))
	}

	platforms := []struct {
		name string
		p    PlatformConfig
	}{{"ground", cfg.Platforms.Ground}, {"ceiling", cfg.Platforms.Ceiling}}
	for _, pl := range platforms {
		for i, axis := range []string{"x", "y", "z"} {
			if pl.p.Size[i] <= 0 {
				errs = append(errs, invalid("platforms.%s.size.%s must be positive, got %v", pl.name, axis, pl.p.Size[i]))
			}
		}
	}

	gen := cfg.Generator
	if gen.SectionLength <= 0 {
		errs = append(errs, invalid("generator.section_length must be positive, got %v", gen.SectionLength))
	}
	if gen.GenerationDistance < 0 {
		errs = append(errs, invalid("generator.generation_distance must not be negative, got %v", gen.GenerationDistance))
	}
	if gen.GenXDistance < 0 {
		errs = append(errs, invalid("generator.gen_x_distance must not be negative, got %v", gen.GenXDistance))
	}
	if gen.RareChance < 0 || gen.RareChance > 1 {
		errs = append(errs, invalid("generator.rare_chance must be in [0, 1], got %v", gen.RareChance))
	}
	if gen.DensityExponent <= 0 {
		errs = append(errs, invalid("generator.density_exponent must be positive, got %v", gen.DensityExponent))
	}
	errs = append(errs, validateObstacles("generator.obstacles", gen.Obstacles)...)
	errs = append(errs, validateObstacles("generator.rare", gen.Rare)...)

	if cfg.Session.SlowMoScale <= 0 || cfg.Session.SlowMoScale > 1 {
		errs = append(errs, invalid("session.slow_mo_scale must be in (0, 1], got %v", cfg.Session.SlowMoScale))
	}
	if cfg.Session.FadeDuration < 0 {
		errs = append(errs, invalid("session.fade_duration must not be negative, got %v", cfg.Session.FadeDuration))
	}
	if cfg.Session.DespawnDistance < 0 {
		errs = append(errs, invalid("session.despawn_distance must not be negative, got %v", cfg.Session.DespawnDistance))
	}

	if strings.Trim(cfg.Cheats.SkipLevel, "UDLR") != "" {
		errs = append(errs, invalid("cheats.skip_level may only use U, D, L and R, got %q", cfg.Cheats.SkipLevel))
	}
	if strings.Trim(cfg.Cheats.Invincibility, "UDLR") != "" {
		errs = append(errs, invalid("cheats.invincibility may only use U, D, L and R, got %q", cfg.Cheats.Invincibility))
	}

	switch cfg.Difficulty.Progression.Type {
	case "distance", "none", "":
	default:
		errs = append(errs, invalid("difficulty.progression.type must be distance or none, got %q", cfg.Difficulty.Progression.Type))
	}
	if cfg.Difficulty.InitialLevel < 0 || cfg.Difficulty.InitialLevel > 1 {
		errs = append(errs, invalid("difficulty.initial_level must be in [0, 1], got %v", cfg.Difficulty.InitialLevel))
	}

	return errors.Join(errs...)
}

func validateObstacles(path string, specs []ObstacleConfig) []error {
	var errs []error
	seen := make(map[string]bool, len(specs))
	for i, s := range specs {
		if s.Name == "" {
			errs = append(errs, invalid("%s[%d].name is required", path, i))
		} else if seen[s.Name] {
			errs = append(errs, invalid("%s[%d].name %q is duplicated", path, i, s.Name))
		}
		seen[s.Name] = true
		if s.Count < 0 {
			errs = append(errs, invalid("%s[%d].count must not be negative, got %d", path, i, s.Count))
		}
		if s.HeightRange < 0 {
			errs = append(errs, invalid("%s[%d].height_range must not be negative, got %v", path, i, s.HeightRange))
		}
		for a := 0; a < 3; a++ {
			if s.HalfExtents[a] <= 0 {
				errs = append(errs, invalid("%s[%d].half_extents must be positive", path, i))
				break
			}
		}
	}
	return errs
}
