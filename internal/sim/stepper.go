package sim

import (
	"github.com/san-kum/nbody/internal/dynamo"
	"github.com/san-kum/nbody/internal/physics"
)

// Stepper advances a body collection by one tick: forces, then
// integration, then collision resolution. Collisions see post-move
// positions, so bodies may overlap for up to one tick before correction.
//
// A Stepper is not safe for concurrent use. Pausing is the caller's job:
// skip Step for that tick.
type Stepper struct {
	params     dynamo.Params
	field      physics.ForceField
	collisions physics.CollisionResolver
	integrator dynamo.Integrator
	pool       *ForcePool
}

func NewStepper(params dynamo.Params, integrator dynamo.Integrator) *Stepper {
	s := &Stepper{
		integrator: integrator,
		pool:       NewForcePool(),
	}
	s.SetParams(params)
	return s
}

func (s *Stepper) Params() dynamo.Params { return s.params }

func (s *Stepper) Integrator() dynamo.Integrator { return s.integrator }

// SetParams replaces the tunables. Call it between ticks only.
func (s *Stepper) SetParams(p dynamo.Params) {
	s.params = p
	s.field = physics.NewForceField(p)
	s.collisions = physics.NewCollisionResolver(p)
}

// Step mutates bodies in place. rawDt is scaled by the configured time
// scale. An empty collection is a no-op.
func (s *Stepper) Step(bodies dynamo.Bodies, rawDt float64) {
	if len(bodies) == 0 {
		return
	}
	dt := rawDt * s.params.TimeScale

	forces := s.pool.Get(len(bodies))
	defer s.pool.Put(forces)

	forces = s.field.Forces(bodies, forces)
	s.integrator.Integrate(bodies, forces, dt)
	s.collisions.Resolve(bodies)
}
