package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/nbody/internal/dynamo"
)

// Presets tweak DefaultConfig. Each call to GetPreset builds a fresh copy.
var Presets = map[string]func(*Config){
	"solar": func(c *Config) {
		c.Generation.NumBodies = 5
		c.Run.Duration = 30
	},
	"planar": func(c *Config) {
		c.Generation.NumBodies = 8
		c.Generation.MaxInclination = 0
		c.Run.Duration = 30
	},
	"crowded": func(c *Config) {
		c.Generation.NumBodies = 40
		c.Generation.MinOrbitRadius = 150
		c.Generation.MaxOrbitRadius = 600
		c.Generation.MinBodyRadius = 3
		c.Generation.MaxBodyRadius = 6
		c.Physics.Restitution = 0.8
		c.Run.Duration = 20
	},
	"binary": func(c *Config) {
		c.Generation.NumBodies = 1
		c.Generation.MinOrbitRadius = 300
		c.Generation.MaxOrbitRadius = 300
		c.Generation.MinBodyMass = 1000
		c.Generation.MaxBodyMass = 1000
		c.Generation.MinBodyRadius = 40
		c.Generation.MaxBodyRadius = 40
		c.Generation.MaxInclination = 0
		c.Run.Dt = 1.0 / 240
		c.Run.Duration = 30
	},
	"inclined": func(c *Config) {
		c.Generation.NumBodies = 6
		c.Generation.MaxInclination = 1.4
		c.Generation.ZJitter = 40
		c.Run.Duration = 30
	},
}

func GetPreset(name string) (*Config, error) {
	apply, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", dynamo.ErrUnknownPreset, name)
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
