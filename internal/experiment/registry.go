package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/nbody/internal/dynamo"
	"github.com/san-kum/nbody/internal/integrators"
	"github.com/san-kum/nbody/internal/metrics"
)

// boundFactor scales the outermost orbit radius into the escape radius
// used by the bound metric.
const boundFactor = 4.0

type Registry struct {
	integrators map[string]func() dynamo.Integrator
}

func NewRegistry() *Registry {
	r := &Registry{
		integrators: make(map[string]func() dynamo.Integrator),
	}

	r.integrators["symplectic"] = func() dynamo.Integrator { return integrators.NewSemiImplicitEuler() }
	r.integrators["euler"] = func() dynamo.Integrator { return integrators.NewEuler() }

	return r
}

func (r *Registry) GetIntegrator(name string) (dynamo.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

// IntegratorFactory returns a constructor, for callers that need a fresh
// integrator per run.
func (r *Registry) IntegratorFactory(name string) (func() dynamo.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn, nil
}

func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics(p dynamo.Params, gen dynamo.Generation) []dynamo.Metric {
	return []dynamo.Metric{
		metrics.NewEnergyDrift(p),
		metrics.NewMomentumDrift(),
		metrics.NewOrbitDeviation(),
		metrics.NewBound(boundFactor * gen.MaxOrbitRadius),
		metrics.NewMeanKinetic(),
	}
}
