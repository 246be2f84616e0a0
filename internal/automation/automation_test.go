package automation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/san-kum/nbody/internal/config"
	"github.com/san-kum/nbody/internal/dynamo"
	"github.com/san-kum/nbody/internal/experiment"
)

const scenarioYAML = `
name: smoke
description: two short runs
steps:
  - preset: planar
    bodies: 2
    duration: 0.5
    save_as: planar-short
  - integrator: euler
    duration: 0.5
    dt: 0.125
    seed: 7
    params:
      restitution: 0.5
      softening: 2
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}

	if sc.Name != "smoke" || len(sc.Steps) != 2 {
		t.Fatalf("unexpected scenario: %+v", sc)
	}
	want := map[string]float64{"restitution": 0.5, "softening": 2}
	if diff := cmp.Diff(want, sc.Steps[1].Params); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}

	if _, err := LoadScenario(writeScenario(t, "name: empty\n")); err == nil {
		t.Error("expected error for scenario without steps")
	}
	if _, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestStepConfig(t *testing.T) {
	step := ScenarioStep{
		Integrator: "euler",
		Duration:   0.25,
		Dt:         0.01,
		Seed:       7,
		Params:     map[string]float64{"restitution": 0.5},
	}
	cfg, err := step.Config()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Run.Integrator != "euler" || cfg.Run.Dt != 0.01 || cfg.Run.Seed != 7 || cfg.Physics.Restitution != 0.5 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Generation.NumBodies != config.DefaultConfig().Generation.NumBodies {
		t.Errorf("unset bodies should keep the default, got %d", cfg.Generation.NumBodies)
	}

	tests := []struct {
		name string
		step ScenarioStep
	}{
		{"unknown preset", ScenarioStep{Preset: "nope"}},
		{"unknown param", ScenarioStep{Params: map[string]float64{"mass": 1}}},
		{"out of bounds", ScenarioStep{Params: map[string]float64{"restitution": 3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.step.Config(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRunScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}

	results, err := RunScenario(context.Background(), sc, experiment.NewRegistry(), nil)
	if err != nil {
		t.Fatal(err)
	}

	names := []string{results[0].Name, results[1].Name}
	if diff := cmp.Diff([]string{"planar-short", "step2"}, names); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
	if results[1].Result.StepsTaken != 4 {
		t.Errorf("expected 4 steps, got %d", results[1].Result.StepsTaken)
	}
}

func TestRunScenarioStopsOnError(t *testing.T) {
	sc := &Scenario{Steps: []ScenarioStep{
		{Duration: 0.1},
		{Integrator: "rk4"},
	}}

	results, err := RunScenario(context.Background(), sc, experiment.NewRegistry(), nil)
	if err == nil {
		t.Fatal("expected error for unknown integrator")
	}
	if len(results) != 1 {
		t.Errorf("expected the first step to be kept, got %d results", len(results))
	}
}

func TestRunMonteCarlo(t *testing.T) {
	base := config.DefaultConfig()
	base.Generation.NumBodies = 2
	base.Generation.MaxInclination = 0
	base.Run.Duration = 0.5

	cfg := &MonteCarloConfig{Base: base, Perturbation: 0.05, NumTrials: 3, Seed: 42}
	results, err := RunMonteCarlo(context.Background(), cfg, experiment.NewRegistry())
	if err != nil {
		t.Fatal(err)
	}

	if len(results) != 3 {
		t.Fatalf("expected 3 trials, got %d", len(results))
	}
	for _, r := range results {
		if len(r.Scale) != 2 {
			t.Errorf("trial %d: expected 2 scale factors, got %d", r.TrialID, len(r.Scale))
		}
		for _, s := range r.Scale {
			if s < 0.95 || s > 1.05 {
				t.Errorf("trial %d: scale %v out of range", r.TrialID, s)
			}
		}
	}

	stable, unstable := MonteCarloStats(results)
	if stable != 3 || unstable != 0 {
		t.Errorf("near-circular orbits should stay bound: %d stable, %d unstable", stable, unstable)
	}

	again, err := RunMonteCarlo(context.Background(), cfg, experiment.NewRegistry())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(results, again); diff != "" {
		t.Errorf("same seed should reproduce trials (-first +second):\n%s", diff)
	}
}

func TestRunMonteCarloEscape(t *testing.T) {
	base := config.DefaultConfig()
	base.Run.Duration = 0.5

	cfg := &MonteCarloConfig{Base: base, NumTrials: 1, EscapeRadius: 1}
	results, err := RunMonteCarlo(context.Background(), cfg, experiment.NewRegistry())
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Stable || results[0].Escaped == 0 {
		t.Errorf("tiny escape radius should flag escapes: %+v", results[0])
	}
}

func TestRunMonteCarloBounds(t *testing.T) {
	reg := experiment.NewRegistry()
	for _, cfg := range []*MonteCarloConfig{
		{Base: config.DefaultConfig(), NumTrials: 0},
		{Base: config.DefaultConfig(), NumTrials: 1, Perturbation: -1},
	} {
		if _, err := RunMonteCarlo(context.Background(), cfg, reg); !errors.Is(err, dynamo.ErrParameterBounds) {
			t.Errorf("expected ErrParameterBounds, got %v", err)
		}
	}
}
