package sim

import (
	"github.com/san-kum/nbody/internal/dynamo"
	"github.com/san-kum/nbody/internal/physics"
)

// Config controls a headless run. Dt is the raw per-tick delta handed to
// the stepper, before time scaling.
type Config struct {
	Dt            float64
	Duration      float64
	Seed          int64
	SampleEvery   int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            1.0 / 60,
		Duration:      10.0,
		SampleEvery:   6,
		ValidateState: true,
	}
}

// Sample is a snapshot of run observables. Distances holds |p_i - p_0| for
// every satellite i >= 1.
type Sample struct {
	Time      float64   `json:"time"`
	Energy    float64   `json:"energy"`
	Momentum  float64   `json:"momentum"`
	Distances []float64 `json:"distances,omitempty"`
}

func NewSample(bodies dynamo.Bodies, t float64, field physics.ForceField) Sample {
	s := Sample{
		Time:     t,
		Energy:   field.Energy(bodies),
		Momentum: bodies.TotalMomentum().Len(),
	}
	if len(bodies) > 1 {
		s.Distances = make([]float64, len(bodies)-1)
		for i := 1; i < len(bodies); i++ {
			s.Distances[i-1] = bodies[i].Position.Sub(bodies[0].Position).Len()
		}
	}
	return s
}

type Result struct {
	Seed        int64
	Samples     []Sample
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
}
