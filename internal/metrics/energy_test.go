package metrics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/nbody/internal/dynamo"
	"github.com/san-kum/nbody/internal/physics"
)

func pair(sep float64) dynamo.Bodies {
	return dynamo.Bodies{
		{Position: mgl64.Vec3{0, 0, 0}, Velocity: mgl64.Vec3{0, 1, 0}, Radius: 1, Mass: 2},
		{Position: mgl64.Vec3{sep, 0, 0}, Velocity: mgl64.Vec3{0, -2, 0}, Radius: 1, Mass: 1},
	}
}

func TestEnergy(t *testing.T) {
	p := dynamo.DefaultParams()
	m := NewEnergy(p)

	bodies := pair(10)
	m.Observe(bodies, 0)

	// KE = 0.5*2*1 + 0.5*1*4 = 3, PE = -1000*2*1/10 = -200
	expected := -197.0
	if math.Abs(m.Value()-expected) > 1e-9 {
		t.Errorf("expected energy %f, got %f", expected, m.Value())
	}

	m.Observe(pair(20), 1)
	expected = (-197.0 + -97.0) / 2
	if math.Abs(m.Value()-expected) > 1e-9 {
		t.Errorf("expected mean energy %f, got %f", expected, m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestEnergyDrift(t *testing.T) {
	m := NewEnergyDrift(dynamo.DefaultParams())

	m.Observe(pair(10), 0)
	if m.Value() != 0 {
		t.Errorf("first observation should have no drift, got %f", m.Value())
	}

	// -197 -> -97
	m.Observe(pair(20), 1)
	expected := 100.0 / 197.0
	if math.Abs(m.Value()-expected) > 1e-9 {
		t.Errorf("expected drift %f, got %f", expected, m.Value())
	}

	m.Observe(pair(10), 2)
	if math.Abs(m.Value()-expected) > 1e-9 {
		t.Errorf("drift should keep its maximum, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero drift after reset")
	}
}

func TestEnergyDriftMatchesField(t *testing.T) {
	p := dynamo.DefaultParams()
	p.Softening = 0.5
	field := physics.NewForceField(p)
	m := NewEnergyDrift(p)

	a, b := pair(3), pair(4)
	m.Observe(a, 0)
	m.Observe(b, 1)

	e0, e1 := field.Energy(a), field.Energy(b)
	if want := math.Abs(e1-e0) / math.Abs(e0); m.Value() != want {
		t.Errorf("expected drift %f, got %f", want, m.Value())
	}
}

func TestMeanKinetic(t *testing.T) {
	m := NewMeanKinetic()
	if m.Value() != 0 {
		t.Error("expected zero before observations")
	}

	m.Observe(pair(10), 0)
	m.Observe(dynamo.Bodies{{Mass: 2, Radius: 1}}, 1)
	if math.Abs(m.Value()-1.5) > 1e-12 {
		t.Errorf("expected mean kinetic 1.5, got %f", m.Value())
	}
}
