package automation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/charmbracelet/log"
	"github.com/san-kum/nbody/internal/config"
	"github.com/san-kum/nbody/internal/dynamo"
	"github.com/san-kum/nbody/internal/experiment"
	"github.com/san-kum/nbody/internal/optim"
	"github.com/san-kum/nbody/internal/sim"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted sequence of runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep starts from a preset (or the defaults) and applies its
// overrides. Params keys are the grid search field names.
type ScenarioStep struct {
	Preset     string             `yaml:"preset"`
	Integrator string             `yaml:"integrator"`
	Bodies     int                `yaml:"bodies"`
	Duration   float64            `yaml:"duration"`
	Dt         float64            `yaml:"dt"`
	Seed       int64              `yaml:"seed"`
	Params     map[string]float64 `yaml:"params"`
	SaveAs     string             `yaml:"save_as"`
}

// StepResult is one finished scenario step.
type StepResult struct {
	Name   string
	Config *config.Config
	Result *sim.Result
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}

	return &scenario, nil
}

// Config resolves the step into a validated config.
func (s ScenarioStep) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		p, err := config.GetPreset(s.Preset)
		if err != nil {
			return nil, err
		}
		cfg = p
	}

	if s.Integrator != "" {
		cfg.Run.Integrator = s.Integrator
	}
	if s.Bodies > 0 {
		cfg.Generation.NumBodies = s.Bodies
	}
	if s.Duration > 0 {
		cfg.Run.Duration = s.Duration
	}
	if s.Dt > 0 {
		cfg.Run.Dt = s.Dt
	}
	if s.Seed != 0 {
		cfg.Run.Seed = s.Seed
	}
	for k, v := range s.Params {
		set, ok := optim.Fields[k]
		if !ok {
			return nil, fmt.Errorf("unknown param %q", k)
		}
		set(cfg, v)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s ScenarioStep) name(i int) string {
	switch {
	case s.SaveAs != "":
		return s.SaveAs
	case s.Preset != "":
		return s.Preset
	}
	return fmt.Sprintf("step%d", i+1)
}

// RunScenario executes the steps in order. A diverged step is logged and
// kept; any other error stops the scenario and returns what finished.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, logger *log.Logger) ([]StepResult, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		name := step.name(i)
		logger.Info("scenario step", "step", fmt.Sprintf("%d/%d", i+1, len(scenario.Steps)), "name", name)

		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		exp, err := experiment.New(cfg, registry)
		if err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}
		exp.SetLogger(logger)

		result, err := exp.Run(ctx)
		if errors.Is(err, dynamo.ErrInvalidState) {
			logger.Warn("step diverged", "name", name, "err", err)
		} else if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, StepResult{Name: name, Config: cfg, Result: result})
	}

	return results, nil
}

// MonteCarloConfig perturbs satellite velocities by a random factor in
// [1-Perturbation, 1+Perturbation] per trial.
type MonteCarloConfig struct {
	Base         *config.Config
	Perturbation float64
	NumTrials    int
	Seed         int64
	// EscapeRadius is the distance from the centre of mass beyond which a
	// body counts as escaped. Zero means four times the outer orbit.
	EscapeRadius float64
}

type MonteCarloResult struct {
	TrialID int
	Scale   []float64
	Stable  bool
	Escaped int
}

// RunMonteCarlo runs every trial on the same generated system. A trial is
// stable when it neither diverges nor loses a body past the escape radius.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, registry *experiment.Registry) ([]MonteCarloResult, error) {
	if cfg.NumTrials <= 0 {
		return nil, fmt.Errorf("%w: trials must be positive, got %d", dynamo.ErrParameterBounds, cfg.NumTrials)
	}
	if cfg.Perturbation < 0 {
		return nil, fmt.Errorf("%w: perturbation must be non-negative, got %f", dynamo.ErrParameterBounds, cfg.Perturbation)
	}

	escape := cfg.EscapeRadius
	if escape <= 0 {
		escape = 4 * cfg.Base.Generation.MaxOrbitRadius
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	results := make([]MonteCarloResult, 0, cfg.NumTrials)

	for trial := 0; trial < cfg.NumTrials; trial++ {
		exp, err := experiment.New(cfg.Base, registry)
		if err != nil {
			return nil, err
		}

		bodies := exp.Bodies()
		scale := make([]float64, len(bodies)-1)
		for i := 1; i < len(bodies); i++ {
			scale[i-1] = 1 + (rng.Float64()-0.5)*2*cfg.Perturbation
			bodies[i].Velocity = bodies[i].Velocity.Mul(scale[i-1])
		}

		_, err = exp.Run(ctx)
		diverged := errors.Is(err, dynamo.ErrInvalidState)
		if err != nil && !diverged {
			return nil, err
		}

		escaped := 0
		if !diverged {
			com := bodies.CenterOfMass()
			for _, b := range bodies {
				if b.Position.Sub(com).Len() > escape {
					escaped++
				}
			}
		}

		results = append(results, MonteCarloResult{
			TrialID: trial,
			Scale:   scale,
			Stable:  !diverged && escaped == 0,
			Escaped: escaped,
		})
	}

	return results, nil
}

func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
