package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/nbody/internal/dynamo"
)

// ForceField computes the gravitational force table for a body collection.
type ForceField struct {
	G         float64
	Softening float64
}

func NewForceField(p dynamo.Params) ForceField {
	return ForceField{G: p.G, Softening: p.Softening}
}

// PairForce returns the force exerted on a by b. The force on b from a is
// the exact negation.
func (f ForceField) PairForce(a, b *dynamo.Body) mgl64.Vec3 {
	delta := b.Position.Sub(a.Position)
	r2 := delta.LenSqr() + f.Softening*f.Softening
	magnitude := f.G * (a.Mass * b.Mass) / r2
	return delta.Normalize().Mul(magnitude)
}

// Forces fills forces with the accumulated force on each body, reusing the
// slice when it already has the right length. Each unordered pair is
// evaluated once.
func (f ForceField) Forces(bodies dynamo.Bodies, forces []mgl64.Vec3) []mgl64.Vec3 {
	n := len(bodies)
	if len(forces) != n {
		forces = make([]mgl64.Vec3, n)
	} else {
		for i := range forces {
			forces[i] = mgl64.Vec3{}
		}
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			fij := f.PairForce(&bodies[i], &bodies[j])
			forces[i] = forces[i].Add(fij)
			forces[j] = forces[j].Sub(fij)
		}
	}

	return forces
}

func (f ForceField) PotentialEnergy(bodies dynamo.Bodies) float64 {
	eps2 := f.Softening * f.Softening
	pe := 0.0
	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			r := math.Sqrt(bodies[j].Position.Sub(bodies[i].Position).LenSqr() + eps2)
			pe -= f.G * bodies[i].Mass * bodies[j].Mass / r
		}
	}
	return pe
}

func (f ForceField) Energy(bodies dynamo.Bodies) float64 {
	return bodies.KineticEnergy() + f.PotentialEnergy(bodies)
}

// AngularMomentum is taken about the origin.
func AngularMomentum(bodies dynamo.Bodies) mgl64.Vec3 {
	var l mgl64.Vec3
	for i := range bodies {
		l = l.Add(bodies[i].Position.Cross(bodies[i].Momentum()))
	}
	return l
}
