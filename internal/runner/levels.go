package runner

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/split-horizon/internal/config"
	"github.com/vovakirdan/split-horizon/internal/registry"
)

// Variant selects which surfaces a level generates on.
type Variant int

const (
	VariantGround   Variant = iota // streaming, ground only
	VariantCeiling                 // streaming, ceiling only
	VariantMirrored                // streaming, ground and ceiling in pairs
	VariantClassic                 // whole ground populated up front
)

type levelInfo struct {
	id    string
	title string
}

var levels = map[Variant]levelInfo{
	VariantGround:   {"ground", "Ground Run"},
	VariantCeiling:  {"ceiling", "Upside Down"},
	VariantMirrored: {"mirrored", "Split Horizon"},
	VariantClassic:  {"classic", "Classic Track"},
}

// campaign is the level order used for "next level".
var campaign = []Variant{VariantClassic, VariantGround, VariantCeiling, VariantMirrored}

// String returns the level id of the variant.
func (v Variant) String() string {
	if l, ok := levels[v]; ok {
		return l.id
	}
	return "unknown"
}

// ParseVariant returns the variant registered under id.
func ParseVariant(id string) (Variant, error) {
	for v, l := range levels {
		if l.id == id {
			return v, nil
		}
	}
	return 0, fmt.Errorf("runner: unknown level %q", id)
}

// Package-level settings applied by every level created through the registry.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	defaultLogger    = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names keep the config default.
func SetDifficultyPreset(name string) {
	preset, ok := config.ParsePreset(name)
	if !ok || name == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = preset
}

// SetLogger sets the logger handed to levels created through the registry.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	defaultLogger = l
}

// LoadConfig resolves the runner config the way registry-created levels do.
func LoadConfig() config.RunnerConfig {
	cfg, err := config.LoadRunner(configPath)
	if err != nil {
		defaultLogger.Warn("falling back to default config", "err", err)
		cfg = config.DefaultRunnerConfig()
	}
	if difficultyPreset != "" {
		config.ApplyPreset(&cfg, difficultyPreset)
	}
	return cfg
}

// Create builds a level by id.
func Create(id string, opts ...Option) (*Game, error) {
	v, err := ParseVariant(id)
	if err != nil {
		return nil, err
	}
	return New(v, opts...), nil
}

func init() {
	for i, v := range campaign {
		v := v
		registry.Register(v.String(), i, func() registry.Level {
			return New(v)
		})
	}
}
