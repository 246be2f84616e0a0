// Package dynamo provides the core data types shared by the n-body kernel.
//
// The package defines the passive records and contracts the rest of the
// module is built on:
//
//   - [Body]: one point mass (position, velocity, colour tag, radius, mass)
//   - [Params]: per-tick physics tunables (G, time scale, restitution, softening)
//   - [Generation]: ranges used to (re)generate a body collection
//   - [Integrator]: advances velocities and positions from a force table
//   - [Metric], [Observer]: hooks driven by the run loop
//
// # Example
//
//	params := dynamo.DefaultParams()
//	bodies := scenario.Generate(dynamo.DefaultGeneration(), params, 42)
//	stepper := sim.NewStepper(params, integrators.NewSemiImplicitEuler())
//	stepper.Step(bodies, 1.0/60)
//
// # Preconditions
//
// The kernel trusts its input. Every body must have mass > 0 and radius > 0,
// and no two bodies may share a position. Violations propagate as NaN or Inf
// rather than as errors. [ValidateBodies], [Params.Validate] and
// [Generation.Validate] form an opt-in boundary for callers that want one.
//
// # Thread Safety
//
// A body collection is owned by one caller at a time. Nothing in the kernel
// retains a reference past the call that received it.
package dynamo
