package metrics

import (
	"math"

	"github.com/san-kum/nbody/internal/dynamo"
	"github.com/san-kum/nbody/internal/physics"
)

// Energy reports the mean total energy over all observations.
type Energy struct {
	name        string
	field       physics.ForceField
	samples     int
	totalEnergy float64
}

func NewEnergy(p dynamo.Params) *Energy {
	return &Energy{
		name:  "energy",
		field: physics.NewForceField(p),
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(bodies dynamo.Bodies, t float64) {
	e.totalEnergy += e.field.Energy(bodies)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift is the largest relative deviation from the first observed
// total energy.
type EnergyDrift struct {
	name          string
	field         physics.ForceField
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(p dynamo.Params) *EnergyDrift {
	return &EnergyDrift{
		name:  "energy_drift",
		field: physics.NewForceField(p),
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(bodies dynamo.Bodies, t float64) {
	energy := e.field.Energy(bodies)

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// MeanKinetic averages the total kinetic energy.
type MeanKinetic struct {
	name    string
	sum     float64
	samples int
}

func NewMeanKinetic() *MeanKinetic {
	return &MeanKinetic{name: "mean_kinetic"}
}

func (m *MeanKinetic) Name() string { return m.name }

func (m *MeanKinetic) Observe(bodies dynamo.Bodies, t float64) {
	m.sum += bodies.KineticEnergy()
	m.samples++
}

func (m *MeanKinetic) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanKinetic) Reset() {
	m.sum = 0
	m.samples = 0
}
