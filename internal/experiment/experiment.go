package experiment

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/san-kum/nbody/internal/config"
	"github.com/san-kum/nbody/internal/dynamo"
	"github.com/san-kum/nbody/internal/scenario"
	"github.com/san-kum/nbody/internal/sim"
)

// Experiment is one validated, seeded run built from a Config.
type Experiment struct {
	cfg    *config.Config
	runner *sim.Runner
	bodies dynamo.Bodies
}

func New(cfg *config.Config, reg *Registry) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	integrator, err := reg.GetIntegrator(cfg.Run.Integrator)
	if err != nil {
		return nil, err
	}

	params := cfg.Params()
	gen := cfg.GenerationParams()

	runner := sim.New(sim.NewStepper(params, integrator))
	for _, m := range reg.DefaultMetrics(params, gen) {
		runner.AddMetric(m)
	}

	return &Experiment{
		cfg:    cfg,
		runner: runner,
		bodies: scenario.Generate(gen, params, cfg.Run.Seed),
	}, nil
}

func (e *Experiment) SetLogger(l *log.Logger) { e.runner.SetLogger(l) }

// Bodies returns the generated collection. Run mutates it in place.
func (e *Experiment) Bodies() dynamo.Bodies { return e.bodies }

func (e *Experiment) Runner() *sim.Runner { return e.runner }

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.runner == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.runner.Run(ctx, e.bodies, e.cfg.SimConfig())
}
