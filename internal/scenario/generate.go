// Package scenario builds initial body collections: one central body and a
// ring of satellites placed on circular orbits.
package scenario

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/nbody/internal/dynamo"
	"github.com/san-kum/nbody/internal/physics"
)

var centralColor = mgl64.Vec3{1, 1, 0}

// Generate returns gen.NumBodies+1 bodies; index 0 is the central body. The
// same seed always yields the same collection.
func Generate(gen dynamo.Generation, params dynamo.Params, seed int64) dynamo.Bodies {
	rng := rand.New(rand.NewSource(seed))
	orbits := physics.NewOrbitInitializer(params)

	central := dynamo.NewBody(gen.CentralPosition, mgl64.Vec3{}, centralColor, gen.CentralBodyRadius, gen.CentralBodyMass)

	bodies := make(dynamo.Bodies, 0, gen.NumBodies+1)
	bodies = append(bodies, central)

	for i := 0; i < gen.NumBodies; i++ {
		orbit := physics.Orbit{
			Radius:      uniform(rng, gen.MinOrbitRadius, gen.MaxOrbitRadius),
			Angle:       uniform(rng, 0, 2*math.Pi),
			Inclination: uniform(rng, -gen.MaxInclination, gen.MaxInclination),
		}
		mass := uniform(rng, gen.MinBodyMass, gen.MaxBodyMass)
		radius := uniform(rng, gen.MinBodyRadius, gen.MaxBodyRadius)

		b := orbits.Satellite(central, orbit, Color(i), radius, mass)
		if gen.ZJitter > 0 {
			b.Position[2] += uniform(rng, -gen.ZJitter, gen.ZJitter)
		}
		bodies = append(bodies, b)
	}

	return bodies
}

// Color is the display tag for satellite i.
func Color(i int) mgl64.Vec3 {
	return mgl64.Vec3{math.Sin(float64(i)), math.Cos(float64(i)), 1}
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
