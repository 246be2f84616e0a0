package sim

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/san-kum/nbody/internal/dynamo"
	"github.com/san-kum/nbody/internal/physics"
)

// Runner drives a Stepper for a fixed number of ticks and collects
// samples and metrics. It owns the body collection only for the duration
// of Run.
type Runner struct {
	stepper   *Stepper
	metrics   []dynamo.Metric
	observers []dynamo.Observer
	logger    *log.Logger
}

func New(stepper *Stepper) *Runner {
	return &Runner{
		stepper:   stepper,
		metrics:   make([]dynamo.Metric, 0),
		observers: make([]dynamo.Observer, 0),
		logger:    log.New(io.Discard),
	}
}

func (r *Runner) AddMetric(m dynamo.Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o dynamo.Observer) { r.observers = append(r.observers, o) }
func (r *Runner) SetLogger(l *log.Logger)       { r.logger = l }

func (r *Runner) Stepper() *Stepper { return r.stepper }

// Run steps bodies in place for cfg.Duration/cfg.Dt ticks. Cancellation is
// checked between ticks. A diverged state ends the run early with a
// *dynamo.SimulationError wrapping dynamo.ErrInvalidState; the partial
// result is still returned.
func (r *Runner) Run(ctx context.Context, bodies dynamo.Bodies, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	field := physics.NewForceField(r.stepper.Params())

	result := &Result{
		Seed:    cfg.Seed,
		Samples: make([]Sample, 0, sampleCapacity(steps, cfg.SampleEvery)),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
		m.Observe(bodies, 0)
	}

	t := 0.0
	initial := NewSample(bodies, t, field)
	result.Samples = append(result.Samples, initial)

	r.logger.Debug("run started", "bodies", len(bodies), "steps", steps, "dt", cfg.Dt, "integrator", r.stepper.Integrator().Name())

	var runErr error
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			runErr = fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, ctx.Err())
		default:
		}
		if runErr != nil {
			break
		}

		r.stepper.Step(bodies, cfg.Dt)
		t += cfg.Dt
		result.StepsTaken++

		if cfg.ValidateState && !bodies.IsValid() {
			runErr = &dynamo.SimulationError{Step: i, Time: t, Wrapped: dynamo.ErrInvalidState}
			r.logger.Warn("state diverged", "step", i, "t", t)
			break
		}

		for _, m := range r.metrics {
			m.Observe(bodies, t)
		}
		for _, obs := range r.observers {
			obs.OnStep(bodies, t)
		}

		if cfg.SampleEvery > 0 && (i+1)%cfg.SampleEvery == 0 {
			s := NewSample(bodies, t, field)
			result.Samples = append(result.Samples, s)
			r.logger.Debug("sample", "t", t, "energy", s.Energy)
		}
	}

	if initial.Energy != 0 && runErr == nil {
		final := field.Energy(bodies)
		result.EnergyDrift = math.Abs(final-initial.Energy) / math.Abs(initial.Energy)
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, runErr
}

func validateConfig(cfg Config) error {
	if !(cfg.Dt > 0) {
		return fmt.Errorf("%w: dt must be positive, got %f", dynamo.ErrParameterBounds, cfg.Dt)
	}
	if !(cfg.Duration > 0) {
		return fmt.Errorf("%w: duration must be positive, got %f", dynamo.ErrParameterBounds, cfg.Duration)
	}
	if cfg.SampleEvery < 0 {
		return fmt.Errorf("%w: sample interval must be non-negative, got %d", dynamo.ErrParameterBounds, cfg.SampleEvery)
	}
	return nil
}

func sampleCapacity(steps, every int) int {
	if every <= 0 {
		return 1
	}
	return steps/every + 1
}
