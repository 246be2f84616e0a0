// Package analysis characterizes finished or running simulations.
//
//   - [PowerSpectrum], [DominantPeriod]: orbital period from sampled
//     distances
//   - [LyapunovExponent]: largest Lyapunov exponent via trajectory
//     separation
//
// # Chaos Detection
//
// A positive largest Lyapunov exponent indicates chaotic dynamics:
//
//	lambda := analysis.LyapunovExponent(params, integrators.NewSemiImplicitEuler, bodies, dt, duration, 1e-6)
//	if lambda > 0 {
//	    // System is chaotic
//	}
package analysis
