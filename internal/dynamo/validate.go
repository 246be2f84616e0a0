package dynamo

import (
	"fmt"
	"math"
)

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Validate checks the tunables. The kernel never calls it.
func (p Params) Validate() error {
	if !finite(p.G) {
		return fmt.Errorf("%w: gravitational constant %v", ErrParameterBounds, p.G)
	}
	if !finite(p.TimeScale) {
		return fmt.Errorf("%w: time scale %v", ErrParameterBounds, p.TimeScale)
	}
	if !finite(p.Restitution) || p.Restitution < 0 || p.Restitution > 1 {
		return fmt.Errorf("%w: restitution %v not in [0, 1]", ErrParameterBounds, p.Restitution)
	}
	if !finite(p.Softening) || p.Softening < 0 {
		return fmt.Errorf("%w: softening %v", ErrParameterBounds, p.Softening)
	}
	return nil
}

// Validate checks the generation ranges against the preconditions of the
// orbit law: positive masses, radii and orbit radii with min <= max.
func (g Generation) Validate() error {
	if g.NumBodies < 0 {
		return fmt.Errorf("%w: num bodies %d", ErrParameterBounds, g.NumBodies)
	}
	if g.CentralBodyMass <= 0 || g.CentralBodyRadius <= 0 {
		return fmt.Errorf("%w: central body mass %v radius %v must be positive", ErrParameterBounds, g.CentralBodyMass, g.CentralBodyRadius)
	}
	ranges := []struct {
		name     string
		min, max float64
	}{
		{"orbit radius", g.MinOrbitRadius, g.MaxOrbitRadius},
		{"body mass", g.MinBodyMass, g.MaxBodyMass},
		{"body radius", g.MinBodyRadius, g.MaxBodyRadius},
	}
	for _, r := range ranges {
		if r.min <= 0 || !finite(r.max) {
			return fmt.Errorf("%w: %s range [%v, %v] must be positive", ErrParameterBounds, r.name, r.min, r.max)
		}
		if r.min > r.max {
			return fmt.Errorf("%w: %s min %v > max %v", ErrParameterBounds, r.name, r.min, r.max)
		}
	}
	if g.MaxInclination < 0 || g.ZJitter < 0 {
		return fmt.Errorf("%w: inclination %v and z jitter %v must be non-negative", ErrParameterBounds, g.MaxInclination, g.ZJitter)
	}
	return nil
}

// ValidateBodies returns a *BodyError for the first body that breaks the
// mass > 0, radius > 0 or finite-state preconditions.
func ValidateBodies(bodies Bodies) error {
	for i := range bodies {
		b := &bodies[i]
		switch {
		case !(b.Mass > 0):
			return &BodyError{Index: i, Reason: fmt.Sprintf("mass %v must be positive", b.Mass)}
		case !(b.Radius > 0):
			return &BodyError{Index: i, Reason: fmt.Sprintf("radius %v must be positive", b.Radius)}
		case !b.IsFinite():
			return &BodyError{Index: i, Reason: "non-finite position or velocity"}
		}
	}
	return nil
}
