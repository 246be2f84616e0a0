package config

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/nbody/internal/dynamo"
	"github.com/san-kum/nbody/internal/sim"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt          = 1.0 / 60
	DefaultDuration    = 10.0
	DefaultSampleEvery = 6
	DefaultSeed        = 1
	DefaultIntegrator  = "symplectic"
)

type Config struct {
	Physics    PhysicsConfig    `yaml:"physics"`
	Generation GenerationConfig `yaml:"generation"`
	Run        RunConfig        `yaml:"run"`
}

type PhysicsConfig struct {
	G           float64 `yaml:"gravitational_constant"`
	TimeScale   float64 `yaml:"time_scale"`
	Restitution float64 `yaml:"restitution"`
	Softening   float64 `yaml:"softening"`
}

type GenerationConfig struct {
	NumBodies         int        `yaml:"num_bodies"`
	CentralBodyMass   float64    `yaml:"central_body_mass"`
	CentralBodyRadius float64    `yaml:"central_body_radius"`
	CentralPosition   mgl64.Vec3 `yaml:"central_position"`
	MinOrbitRadius    float64    `yaml:"min_orbit_radius"`
	MaxOrbitRadius    float64    `yaml:"max_orbit_radius"`
	MinBodyMass       float64    `yaml:"min_body_mass"`
	MaxBodyMass       float64    `yaml:"max_body_mass"`
	MinBodyRadius     float64    `yaml:"min_body_radius"`
	MaxBodyRadius     float64    `yaml:"max_body_radius"`
	MaxInclination    float64    `yaml:"max_inclination"`
	ZJitter           float64    `yaml:"z_jitter"`
}

type RunConfig struct {
	Dt          float64 `yaml:"dt"`
	Duration    float64 `yaml:"duration"`
	Seed        int64   `yaml:"seed"`
	SampleEvery int     `yaml:"sample_every"`
	Integrator  string  `yaml:"integrator"`
	// Paused only affects the live view.
	Paused bool `yaml:"paused"`
}

func DefaultConfig() *Config {
	p := dynamo.DefaultParams()
	g := dynamo.DefaultGeneration()
	return &Config{
		Physics: PhysicsConfig{
			G:           p.G,
			TimeScale:   p.TimeScale,
			Restitution: p.Restitution,
			Softening:   p.Softening,
		},
		Generation: GenerationConfig{
			NumBodies:         g.NumBodies,
			CentralBodyMass:   g.CentralBodyMass,
			CentralBodyRadius: g.CentralBodyRadius,
			CentralPosition:   g.CentralPosition,
			MinOrbitRadius:    g.MinOrbitRadius,
			MaxOrbitRadius:    g.MaxOrbitRadius,
			MinBodyMass:       g.MinBodyMass,
			MaxBodyMass:       g.MaxBodyMass,
			MinBodyRadius:     g.MinBodyRadius,
			MaxBodyRadius:     g.MaxBodyRadius,
			MaxInclination:    g.MaxInclination,
			ZJitter:           g.ZJitter,
		},
		Run: RunConfig{
			Dt:          DefaultDt,
			Duration:    DefaultDuration,
			Seed:        DefaultSeed,
			SampleEvery: DefaultSampleEvery,
			Integrator:  DefaultIntegrator,
		},
	}
}

// Load reads a YAML file over the defaults, so omitted keys keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Params() dynamo.Params {
	return dynamo.Params{
		G:           c.Physics.G,
		TimeScale:   c.Physics.TimeScale,
		Restitution: c.Physics.Restitution,
		Softening:   c.Physics.Softening,
	}
}

func (c *Config) GenerationParams() dynamo.Generation {
	g := c.Generation
	return dynamo.Generation{
		NumBodies:         g.NumBodies,
		CentralBodyMass:   g.CentralBodyMass,
		CentralBodyRadius: g.CentralBodyRadius,
		CentralPosition:   g.CentralPosition,
		MinOrbitRadius:    g.MinOrbitRadius,
		MaxOrbitRadius:    g.MaxOrbitRadius,
		MinBodyMass:       g.MinBodyMass,
		MaxBodyMass:       g.MaxBodyMass,
		MinBodyRadius:     g.MinBodyRadius,
		MaxBodyRadius:     g.MaxBodyRadius,
		MaxInclination:    g.MaxInclination,
		ZJitter:           g.ZJitter,
	}
}

func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		Dt:            c.Run.Dt,
		Duration:      c.Run.Duration,
		Seed:          c.Run.Seed,
		SampleEvery:   c.Run.SampleEvery,
		ValidateState: true,
	}
}

// Validate checks every section at the configuration boundary. The
// kernel itself never validates.
func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("physics: %w", err)
	}
	if err := c.GenerationParams().Validate(); err != nil {
		return fmt.Errorf("generation: %w", err)
	}
	if !(c.Run.Dt > 0) {
		return fmt.Errorf("run: %w: dt must be positive, got %f", dynamo.ErrParameterBounds, c.Run.Dt)
	}
	if !(c.Run.Duration > 0) {
		return fmt.Errorf("run: %w: duration must be positive, got %f", dynamo.ErrParameterBounds, c.Run.Duration)
	}
	if c.Run.SampleEvery < 0 {
		return fmt.Errorf("run: %w: sample_every must be non-negative, got %d", dynamo.ErrParameterBounds, c.Run.SampleEvery)
	}
	return nil
}
