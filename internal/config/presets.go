package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/linkage/internal/dynamo"
)

// Presets build fresh configurations so callers can mutate what they get.
var Presets = map[string]func() *Config{
	"reference": DefaultConfig,
	"zero-g": func() *Config {
		cfg := DefaultConfig()
		cfg.Physics.Gravity = 0
		return cfg
	},
	"bouncy": func() *Config {
		cfg := DefaultConfig()
		cfg.Physics.Bounce = 1.0
		cfg.Physics.Friction = 1.0
		return cfg
	},
	"heavy": func() *Config {
		cfg := DefaultConfig()
		cfg.Physics.Gravity = 1.2
		cfg.Physics.Iterations = 10
		return cfg
	},
	"still": func() *Config {
		cfg := DefaultConfig()
		cfg.Scene.Perturb = 0
		return cfg
	},
}

func GetPreset(name string) (*Config, error) {
	fn, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", dynamo.ErrUnknownPreset, name, ListPresets())
	}
	return fn(), nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
