package physics_test

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/nbody/internal/dynamo"
	"github.com/san-kum/nbody/internal/physics"
)

const tol = 1e-9

func expectVec(got, want mgl64.Vec3) {
	GinkgoHelper()
	for i := range want {
		Expect(got[i]).To(BeNumerically("~", want[i], tol), "component %d of %v", i, got)
	}
}

var _ = Describe("ForceField", func() {
	var field physics.ForceField

	BeforeEach(func() {
		field = physics.NewForceField(dynamo.DefaultParams())
	})

	It("uses G*m1*m2/d² along the line of centres", func() {
		a := dynamo.Body{Position: mgl64.Vec3{0, 0, 0}, Mass: 2}
		b := dynamo.Body{Position: mgl64.Vec3{0, 10, 0}, Mass: 5}

		expectVec(field.PairForce(&a, &b), mgl64.Vec3{0, 1000 * 2 * 5 / 100.0, 0})
	})

	It("is reciprocal for every pair", func() {
		bodies := dynamo.Bodies{
			{Position: mgl64.Vec3{0, 0, 0}, Mass: 3},
			{Position: mgl64.Vec3{1.5, -2, 0.25}, Mass: 7},
			{Position: mgl64.Vec3{-4, 1, 3}, Mass: 0.5},
		}
		for i := range bodies {
			for j := range bodies {
				if i == j {
					continue
				}
				fij := field.PairForce(&bodies[i], &bodies[j])
				fji := field.PairForce(&bodies[j], &bodies[i])
				Expect(fij).To(Equal(fji.Mul(-1)))
			}
		}
	})

	It("accumulates equal and opposite forces for two bodies", func() {
		bodies := dynamo.Bodies{
			{Position: mgl64.Vec3{1, 2, 3}, Mass: 4},
			{Position: mgl64.Vec3{-2, 0, 5}, Mass: 9},
		}
		forces := field.Forces(bodies, nil)

		Expect(forces).To(HaveLen(2))
		Expect(forces[0]).To(Equal(forces[1].Mul(-1)))
	})

	It("sums to zero net force", func() {
		bodies := dynamo.Bodies{
			{Position: mgl64.Vec3{0, 0, 0}, Mass: 10},
			{Position: mgl64.Vec3{5, 0, 0}, Mass: 1},
			{Position: mgl64.Vec3{0, 7, 1}, Mass: 2},
			{Position: mgl64.Vec3{-3, -3, -3}, Mass: 4},
		}
		var net mgl64.Vec3
		for _, f := range field.Forces(bodies, nil) {
			net = net.Add(f)
		}
		Expect(net.Len()).To(BeNumerically("<", 1e-9))
	})

	It("reuses and zeroes a correctly sized buffer", func() {
		bodies := dynamo.Bodies{
			{Position: mgl64.Vec3{0, 0, 0}, Mass: 1},
			{Position: mgl64.Vec3{1, 0, 0}, Mass: 1},
		}
		buf := []mgl64.Vec3{{99, 99, 99}, {99, 99, 99}}
		out := field.Forces(bodies, buf)

		Expect(&out[0]).To(BeIdenticalTo(&buf[0]))
		expectVec(out[0], mgl64.Vec3{1000, 0, 0})
	})

	It("returns an empty table for no bodies", func() {
		Expect(field.Forces(nil, nil)).To(BeEmpty())
	})

	It("diverges for coincident bodies without softening", func() {
		bodies := dynamo.Bodies{{Mass: 1}, {Mass: 1}}
		forces := field.Forces(bodies, nil)
		Expect(math.IsNaN(forces[0].X())).To(BeTrue())
	})

	It("stays finite at close range with softening", func() {
		field.Softening = 0.5
		a := dynamo.Body{Position: mgl64.Vec3{0, 0, 0}, Mass: 1}
		b := dynamo.Body{Position: mgl64.Vec3{1e-6, 0, 0}, Mass: 1}

		f := field.PairForce(&a, &b)
		Expect(f.X()).To(BeNumerically("~", 1000/(1e-12+0.25), 1e-6))
	})

	It("reports conserved-quantity observables", func() {
		bodies := dynamo.Bodies{
			{Position: mgl64.Vec3{0, 0, 0}, Velocity: mgl64.Vec3{0, 0, 0}, Mass: 1},
			{Position: mgl64.Vec3{2, 0, 0}, Velocity: mgl64.Vec3{0, 3, 0}, Mass: 2},
		}
		Expect(field.PotentialEnergy(bodies)).To(BeNumerically("~", -1000.0, tol))
		Expect(field.Energy(bodies)).To(BeNumerically("~", 9-1000.0, tol))
		expectVec(physics.AngularMomentum(bodies), mgl64.Vec3{0, 0, 12})
	})
})
