// Package physics implements the n-body kernel operations.
//
//   - [ForceField]: brute-force pairwise gravity with Newtonian reciprocity
//   - [CollisionResolver]: sphere overlap correction and impulse exchange
//   - [OrbitInitializer]: circular (optionally inclined) orbit placement
//
// Every operation mutates or reads a [dynamo.Bodies] collection in place and
// trusts the caller's preconditions: coincident positions, zero masses and
// zero orbit radii produce NaN or Inf exactly as the formulas dictate.
//
// # Energy Conservation
//
// [ForceField.Energy] returns kinetic plus pairwise potential energy under
// the same force law, which makes it usable for drift monitoring:
//
//	field := physics.NewForceField(params)
//	e0 := field.Energy(bodies)
package physics
