package metrics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/nbody/internal/dynamo"
)

// Bound is the fraction of observations in which every body stays within
// radius of the centre of mass. Escaped satellites pull it below 1.
type Bound struct {
	name       string
	radius     float64
	violations int
	samples    int
}

func NewBound(radius float64) *Bound {
	return &Bound{
		name:   "bound",
		radius: radius,
	}
}

func (b *Bound) Name() string {
	return b.name
}

func (b *Bound) Observe(bodies dynamo.Bodies, t float64) {
	b.samples++
	com := bodies.CenterOfMass()
	for i := range bodies {
		if bodies[i].Position.Sub(com).Len() > b.radius {
			b.violations++
			break
		}
	}
}

func (b *Bound) Value() float64 {
	if b.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(b.violations)/float64(b.samples)
}

func (b *Bound) Reset() {
	b.violations = 0
	b.samples = 0
}

// MomentumDrift is the largest |P(t) - P(0)| seen. It is absolute, since
// total momentum is often zero.
type MomentumDrift struct {
	name     string
	initial  mgl64.Vec3
	maxDrift float64
	samples  int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{name: "momentum_drift"}
}

func (m *MomentumDrift) Name() string { return m.name }

func (m *MomentumDrift) Observe(bodies dynamo.Bodies, t float64) {
	p := bodies.TotalMomentum()
	if m.samples == 0 {
		m.initial = p
	}
	m.samples++
	m.maxDrift = math.Max(m.maxDrift, p.Sub(m.initial).Len())
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.initial = mgl64.Vec3{}
	m.maxDrift = 0
	m.samples = 0
}

// OrbitDeviation tracks every satellite's distance to body 0 and reports
// the worst relative deviation from its first observed distance.
type OrbitDeviation struct {
	name         string
	initial      []float64
	maxDeviation float64
}

func NewOrbitDeviation() *OrbitDeviation {
	return &OrbitDeviation{name: "orbit_deviation"}
}

func (o *OrbitDeviation) Name() string { return o.name }

func (o *OrbitDeviation) Observe(bodies dynamo.Bodies, t float64) {
	if len(bodies) < 2 {
		return
	}
	if o.initial == nil {
		o.initial = make([]float64, len(bodies)-1)
		for i := 1; i < len(bodies); i++ {
			o.initial[i-1] = bodies[i].Position.Sub(bodies[0].Position).Len()
		}
		return
	}

	n := min(len(bodies)-1, len(o.initial))
	for i := 0; i < n; i++ {
		r0 := o.initial[i]
		if r0 == 0 {
			continue
		}
		r := bodies[i+1].Position.Sub(bodies[0].Position).Len()
		o.maxDeviation = math.Max(o.maxDeviation, math.Abs(r-r0)/r0)
	}
}

func (o *OrbitDeviation) Value() float64 { return o.maxDeviation }

func (o *OrbitDeviation) Reset() {
	o.initial = nil
	o.maxDeviation = 0
}
