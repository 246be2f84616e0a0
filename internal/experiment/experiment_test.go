package experiment

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/san-kum/nbody/internal/config"
	"github.com/san-kum/nbody/internal/dynamo"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	if diff := cmp.Diff([]string{"euler", "symplectic"}, r.ListIntegrators()); diff != "" {
		t.Errorf("integrators mismatch (-want +got):\n%s", diff)
	}

	for _, name := range r.ListIntegrators() {
		integ, err := r.GetIntegrator(name)
		if err != nil {
			t.Fatalf("get %s: %v", name, err)
		}
		if integ.Name() != name {
			t.Errorf("expected %s, got %s", name, integ.Name())
		}
	}

	if _, err := r.GetIntegrator("rk4"); err == nil {
		t.Error("expected error for unknown integrator")
	}
	if _, err := r.IntegratorFactory("rk4"); err == nil {
		t.Error("expected error for unknown integrator factory")
	}
}

func TestDefaultMetrics(t *testing.T) {
	ms := NewRegistry().DefaultMetrics(dynamo.DefaultParams(), dynamo.DefaultGeneration())

	seen := make(map[string]bool)
	for _, m := range ms {
		if seen[m.Name()] {
			t.Errorf("duplicate metric %s", m.Name())
		}
		seen[m.Name()] = true
	}
	for _, name := range []string{"energy_drift", "momentum_drift", "orbit_deviation", "bound"} {
		if !seen[name] {
			t.Errorf("missing metric %s", name)
		}
	}
}

func TestExperimentRun(t *testing.T) {
	cfg, err := config.GetPreset("solar")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Run.Duration = 1
	cfg.Run.Seed = 3

	e, err := New(cfg, NewRegistry())
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	if len(e.Bodies()) != cfg.Generation.NumBodies+1 {
		t.Errorf("expected %d bodies, got %d", cfg.Generation.NumBodies+1, len(e.Bodies()))
	}

	result, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Seed != 3 {
		t.Errorf("expected seed 3, got %d", result.Seed)
	}
	if result.StepsTaken == 0 {
		t.Error("expected steps to be taken")
	}
	if _, ok := result.Metrics["energy_drift"]; !ok {
		t.Errorf("energy drift metric missing: %v", result.Metrics)
	}
}

func TestExperimentInvalid(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Physics.Restitution = 2
	if _, err := New(cfg, NewRegistry()); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}

	cfg = config.DefaultConfig()
	cfg.Run.Integrator = "leapfrog"
	if _, err := New(cfg, NewRegistry()); err == nil {
		t.Error("expected error for unknown integrator")
	}
}
