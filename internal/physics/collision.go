package physics

import "github.com/san-kum/nbody/internal/dynamo"

// CollisionResolver separates overlapping spheres and exchanges an impulse
// along the contact normal. Restitution 1 is perfectly elastic.
type CollisionResolver struct {
	Restitution float64
}

func NewCollisionResolver(p dynamo.Params) CollisionResolver {
	return CollisionResolver{Restitution: p.Restitution}
}

// Resolve visits every unordered pair once, in index order, mutating bodies
// as it goes. A body displaced by an earlier pair is seen at its new
// position by later pairs.
func (c CollisionResolver) Resolve(bodies dynamo.Bodies) {
	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			c.ResolvePair(&bodies[i], &bodies[j])
		}
	}
}

// ResolvePair reports whether a and b were touching. Touching pairs are
// always pushed apart; the impulse is skipped when they already separate
// along the normal.
func (c CollisionResolver) ResolvePair(a, b *dynamo.Body) bool {
	delta := a.Position.Sub(b.Position)
	distance := delta.Len()
	reach := a.Radius + b.Radius
	if distance > reach {
		return false
	}

	// points from b to a
	normal := delta.Normalize()

	overlap := reach - distance
	totalMass := a.Mass + b.Mass
	a.Position = a.Position.Add(normal.Mul(overlap * b.Mass / totalMass))
	b.Position = b.Position.Sub(normal.Mul(overlap * a.Mass / totalMass))

	vn := a.Velocity.Sub(b.Velocity).Dot(normal)
	if vn > 0 {
		return true
	}

	impulse := -(1 + c.Restitution) * vn / (1/a.Mass + 1/b.Mass)
	j := normal.Mul(impulse)
	a.Velocity = a.Velocity.Add(j.Mul(1 / a.Mass))
	b.Velocity = b.Velocity.Sub(j.Mul(1 / b.Mass))
	return true
}
