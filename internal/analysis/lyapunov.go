package analysis

import (
	"math"

	"github.com/san-kum/nbody/internal/dynamo"
	"github.com/san-kum/nbody/internal/sim"
)

// LyapunovExponent estimates the largest Lyapunov exponent using the
// trajectory separation method. A positive value indicates chaos.
//
// Body 1's x position (body 0's when it is alone) is offset by
// perturbation in a shadow copy.
// Both copies are stepped together, the phase-space separation is
// measured every tick and the shadow is pulled back to the initial
// separation along the same direction.
func LyapunovExponent(
	params dynamo.Params,
	newIntegrator func() dynamo.Integrator,
	bodies dynamo.Bodies,
	dt, duration float64,
	perturbation float64,
) float64 {
	if len(bodies) == 0 || !(perturbation > 0) || !(dt > 0) {
		return 0
	}

	ref := bodies.Clone()
	shadow := perturbed(bodies, perturbation)

	refStepper := sim.NewStepper(params, newIntegrator())
	shadowStepper := sim.NewStepper(params, newIntegrator())

	d0 := perturbation
	steps := int(duration / dt)
	sumLog := 0.0
	t := 0.0

	for i := 0; i < steps; i++ {
		refStepper.Step(ref, dt)
		shadowStepper.Step(shadow, dt)
		t += dt

		sep := separation(ref, shadow)
		if !(sep > 0) || math.IsInf(sep, 0) {
			break
		}
		sumLog += math.Log(sep / d0)

		scale := d0 / sep
		for j := range shadow {
			shadow[j].Position = ref[j].Position.Add(shadow[j].Position.Sub(ref[j].Position).Mul(scale))
			shadow[j].Velocity = ref[j].Velocity.Add(shadow[j].Velocity.Sub(ref[j].Velocity).Mul(scale))
		}
	}

	if t == 0 {
		return 0
	}
	return sumLog / t
}

// perturbed returns a copy of bodies with the first satellite moved along x.
func perturbed(bodies dynamo.Bodies, perturbation float64) dynamo.Bodies {
	shadow := bodies.Clone()
	idx := 0
	if len(shadow) > 1 {
		idx = 1
	}
	shadow[idx].Position[0] += perturbation
	return shadow
}

func separation(a, b dynamo.Bodies) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i].Position.Sub(b[i].Position).LenSqr()
		sum += a[i].Velocity.Sub(b[i].Velocity).LenSqr()
	}
	return math.Sqrt(sum)
}
