package integrators

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/nbody/internal/dynamo"
)

func TestSemiImplicitEulerOrder(t *testing.T) {
	integ := NewSemiImplicitEuler()

	bodies := dynamo.Bodies{{Position: mgl64.Vec3{2, 3, 4}, Mass: 1, Radius: 1}}
	forces := []mgl64.Vec3{{1, 0, 0}}

	integ.Integrate(bodies, forces, 1)

	if bodies[0].Velocity != (mgl64.Vec3{1, 0, 0}) {
		t.Errorf("velocity = %v, want (1,0,0)", bodies[0].Velocity)
	}
	if bodies[0].Position != (mgl64.Vec3{3, 3, 4}) {
		t.Errorf("position = %v, want (3,3,4): position must use the updated velocity", bodies[0].Position)
	}
}

func TestExplicitEulerUsesOldVelocity(t *testing.T) {
	integ := NewEuler()

	bodies := dynamo.Bodies{{Mass: 1, Radius: 1}}
	forces := []mgl64.Vec3{{1, 0, 0}}

	integ.Integrate(bodies, forces, 1)

	if bodies[0].Position != (mgl64.Vec3{}) {
		t.Errorf("position = %v, want origin", bodies[0].Position)
	}
	if bodies[0].Velocity != (mgl64.Vec3{1, 0, 0}) {
		t.Errorf("velocity = %v, want (1,0,0)", bodies[0].Velocity)
	}
}

func TestIntegrateScalesByMass(t *testing.T) {
	tests := []struct {
		name string
		mass float64
		dt   float64
		want mgl64.Vec3
	}{
		{"unit mass", 1, 0.5, mgl64.Vec3{0, 1, 0}},
		{"heavy", 4, 0.5, mgl64.Vec3{0, 0.25, 0}},
		{"light", 0.5, 0.25, mgl64.Vec3{0, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bodies := dynamo.Bodies{{Mass: tt.mass, Radius: 1}}
			NewSemiImplicitEuler().Integrate(bodies, []mgl64.Vec3{{0, 2, 0}}, tt.dt)
			if !bodies[0].Velocity.ApproxEqual(tt.want) {
				t.Errorf("velocity = %v, want %v", bodies[0].Velocity, tt.want)
			}
		})
	}
}

func TestZeroMassPropagatesNonFinite(t *testing.T) {
	bodies := dynamo.Bodies{{Mass: 0, Radius: 1}}
	NewSemiImplicitEuler().Integrate(bodies, []mgl64.Vec3{{1, 0, 0}}, 0.1)

	if !math.IsInf(bodies[0].Velocity.X(), 1) {
		t.Errorf("expected +Inf velocity for zero mass, got %v", bodies[0].Velocity)
	}
	if bodies.IsValid() {
		t.Error("collection should be invalid after zero-mass integration")
	}
}

// Harmonic oscillator x'' = -x: semi-implicit Euler keeps the amplitude
// bounded where explicit Euler grows it.
func TestSymplecticBoundsEnergy(t *testing.T) {
	run := func(integ dynamo.Integrator) float64 {
		bodies := dynamo.Bodies{{Position: mgl64.Vec3{1, 0, 0}, Mass: 1, Radius: 1}}
		forces := make([]mgl64.Vec3, 1)
		dt := 0.05
		for i := 0; i < 2000; i++ {
			forces[0] = bodies[0].Position.Mul(-1)
			integ.Integrate(bodies, forces, dt)
		}
		return bodies[0].Position.LenSqr() + bodies[0].Velocity.LenSqr()
	}

	symplectic := run(NewSemiImplicitEuler())
	explicit := run(NewEuler())

	if math.Abs(symplectic-1) > 0.1 {
		t.Errorf("symplectic energy drifted to %.4f", symplectic)
	}
	if explicit < 2 {
		t.Errorf("explicit euler should gain energy, got %.4f", explicit)
	}
}
