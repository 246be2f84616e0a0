package sim

import (
	"context"
	"runtime"

	"github.com/san-kum/nbody/internal/dynamo"
	"github.com/san-kum/nbody/internal/scenario"
	"golang.org/x/sync/errgroup"
)

// Ensemble runs independent simulations, one per seed. Every run
// generates its own body collection and stepper, so nothing is shared
// between goroutines.
type Ensemble struct {
	Params        dynamo.Params
	Generation    dynamo.Generation
	NewIntegrator func() dynamo.Integrator
	NewMetrics    func() []dynamo.Metric
	NumRuns       int
	SeedStart     int64
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.NumRuns)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := 0; i < e.NumRuns; i++ {
		idx := i
		g.Go(func() error {
			cfgCopy := cfg
			cfgCopy.Seed = e.SeedStart + int64(idx)

			bodies := scenario.Generate(e.Generation, e.Params, cfgCopy.Seed)
			r := New(NewStepper(e.Params, e.NewIntegrator()))
			if e.NewMetrics != nil {
				for _, m := range e.NewMetrics() {
					r.AddMetric(m)
				}
			}

			res, err := r.Run(ctx, bodies, cfgCopy)
			results[idx] = res
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
