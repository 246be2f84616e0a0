package integrators

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/nbody/internal/dynamo"
)

// SemiImplicitEuler updates velocity first and moves each body with the new
// velocity. This is the kernel's default integrator.
type SemiImplicitEuler struct{}

func NewSemiImplicitEuler() *SemiImplicitEuler {
	return &SemiImplicitEuler{}
}

func (s *SemiImplicitEuler) Name() string { return "symplectic" }

func (s *SemiImplicitEuler) Integrate(bodies dynamo.Bodies, forces []mgl64.Vec3, dt float64) {
	for i := range bodies {
		b := &bodies[i]
		acc := forces[i].Mul(1 / b.Mass)
		b.Velocity = b.Velocity.Add(acc.Mul(dt))
		b.Position = b.Position.Add(b.Velocity.Mul(dt))
	}
}

// Euler is the explicit variant: position advances with the velocity from
// the start of the step. It drifts outward on circular orbits and is kept
// for comparison runs.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "euler" }

func (e *Euler) Integrate(bodies dynamo.Bodies, forces []mgl64.Vec3, dt float64) {
	for i := range bodies {
		b := &bodies[i]
		acc := forces[i].Mul(1 / b.Mass)
		b.Position = b.Position.Add(b.Velocity.Mul(dt))
		b.Velocity = b.Velocity.Add(acc.Mul(dt))
	}
}
