package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/nbody/internal/dynamo"
)

// polarThreshold switches the reference axis when the radius vector is
// nearly parallel to world up.
const polarThreshold = 0.99

var (
	worldUp  = mgl64.Vec3{0, 0, 1}
	fallback = mgl64.Vec3{0, 1, 0}
)

// Orbit describes a circular orbit around a central body. Angles are in
// radians; Inclination 0 keeps the satellite in the central body's z plane.
type Orbit struct {
	Radius      float64
	Angle       float64
	Inclination float64
}

// OrbitInitializer places satellites on circular orbits using the
// two-body speed sqrt(G*M/r). Radius must be > 0.
type OrbitInitializer struct {
	G float64
}

func NewOrbitInitializer(p dynamo.Params) OrbitInitializer {
	return OrbitInitializer{G: p.G}
}

func (o OrbitInitializer) Speed(centralMass, radius float64) float64 {
	return math.Sqrt(o.G * centralMass / radius)
}

// Place returns the position and velocity of a satellite on the orbit.
func (o OrbitInitializer) Place(central dynamo.Body, orbit Orbit) (mgl64.Vec3, mgl64.Vec3) {
	cosInc := math.Cos(orbit.Inclination)
	offset := mgl64.Vec3{
		math.Cos(orbit.Angle) * cosInc,
		math.Sin(orbit.Angle) * cosInc,
		math.Sin(orbit.Inclination),
	}.Mul(orbit.Radius)
	position := central.Position.Add(offset)

	radial := position.Sub(central.Position).Normalize()

	up := worldUp
	if math.Abs(radial.Dot(up)) > polarThreshold {
		up = fallback
	}

	direction := up.Cross(radial).Normalize()
	planeNormal := radial.Cross(direction).Normalize()
	direction = planeNormal.Cross(radial).Normalize()

	velocity := direction.Mul(o.Speed(central.Mass, orbit.Radius))
	return position, velocity
}

func (o OrbitInitializer) Satellite(central dynamo.Body, orbit Orbit, color mgl64.Vec3, radius, mass float64) dynamo.Body {
	pos, vel := o.Place(central, orbit)
	return dynamo.NewBody(pos, vel, color, radius, mass)
}
