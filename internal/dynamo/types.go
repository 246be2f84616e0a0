package dynamo

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultG           = 1000.0
	DefaultTimeScale   = 1.0
	DefaultRestitution = 1.0
)

// Body is a single point mass. Color is a display tag only.
type Body struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Color    mgl64.Vec3
	Radius   float64
	Mass     float64
}

// NewBody mirrors the field order used by the generator: position,
// velocity, colour, radius, mass.
func NewBody(position, velocity, color mgl64.Vec3, radius, mass float64) Body {
	return Body{
		Position: position,
		Velocity: velocity,
		Color:    color,
		Radius:   radius,
		Mass:     mass,
	}
}

func (b Body) Momentum() mgl64.Vec3 {
	return b.Velocity.Mul(b.Mass)
}

func (b Body) KineticEnergy() float64 {
	return 0.5 * b.Mass * b.Velocity.LenSqr()
}

func (b Body) IsFinite() bool {
	for _, v := range [...]mgl64.Vec3{b.Position, b.Velocity} {
		for _, c := range v {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return false
			}
		}
	}
	return true
}

// Bodies is the ordered collection a tick operates on. Identity is the
// index; the kernel never reorders or removes entries.
type Bodies []Body

func (bs Bodies) Clone() Bodies {
	c := make(Bodies, len(bs))
	copy(c, bs)
	return c
}

func (bs Bodies) IsValid() bool {
	for i := range bs {
		if !bs[i].IsFinite() {
			return false
		}
	}
	return true
}

func (bs Bodies) TotalMass() float64 {
	m := 0.0
	for i := range bs {
		m += bs[i].Mass
	}
	return m
}

func (bs Bodies) TotalMomentum() mgl64.Vec3 {
	var p mgl64.Vec3
	for i := range bs {
		p = p.Add(bs[i].Momentum())
	}
	return p
}

func (bs Bodies) KineticEnergy() float64 {
	ke := 0.0
	for i := range bs {
		ke += bs[i].KineticEnergy()
	}
	return ke
}

// CenterOfMass returns the zero vector for an empty collection.
func (bs Bodies) CenterOfMass() mgl64.Vec3 {
	total := bs.TotalMass()
	if total == 0 {
		return mgl64.Vec3{}
	}
	var c mgl64.Vec3
	for i := range bs {
		c = c.Add(bs[i].Position.Mul(bs[i].Mass))
	}
	return c.Mul(1 / total)
}

// Params is the immutable-per-tick parameter set handed to the kernel.
type Params struct {
	G           float64 `json:"g"`
	TimeScale   float64 `json:"time_scale"`
	Restitution float64 `json:"restitution"`
	// Softening > 0 replaces d² with d²+ε² in the force law.
	Softening float64 `json:"softening"`
}

func DefaultParams() Params {
	return Params{
		G:           DefaultG,
		TimeScale:   DefaultTimeScale,
		Restitution: DefaultRestitution,
	}
}

// Generation holds the ranges used to build a fresh body collection: one
// central body plus NumBodies satellites on circular orbits.
type Generation struct {
	NumBodies         int
	CentralBodyMass   float64
	CentralBodyRadius float64
	CentralPosition   mgl64.Vec3
	MinOrbitRadius    float64
	MaxOrbitRadius    float64
	MinBodyMass       float64
	MaxBodyMass       float64
	MinBodyRadius     float64
	MaxBodyRadius     float64
	// MaxInclination bounds the orbital-plane tilt in radians. Zero gives a
	// planar system.
	MaxInclination float64
	// ZJitter offsets each satellite along z after placement, which knocks
	// it off a perfectly circular orbit.
	ZJitter float64
}

func DefaultGeneration() Generation {
	return Generation{
		NumBodies:         1,
		CentralBodyMass:   10000,
		CentralBodyRadius: 100,
		MinOrbitRadius:    170,
		MaxOrbitRadius:    400,
		MinBodyMass:       1,
		MaxBodyMass:       10,
		MinBodyRadius:     15,
		MaxBodyRadius:     30,
		MaxInclination:    0.8,
	}
}

// Integrator advances velocity and position of every body from the
// per-body force table. forces[i] belongs to bodies[i].
type Integrator interface {
	Name() string
	Integrate(bodies Bodies, forces []mgl64.Vec3, dt float64)
}

type Metric interface {
	Name() string
	Observe(bodies Bodies, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(bodies Bodies, t float64)
}
