package physics_test

import (
	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/nbody/internal/dynamo"
	"github.com/san-kum/nbody/internal/physics"
)

var _ = Describe("CollisionResolver", func() {
	var resolver physics.CollisionResolver

	BeforeEach(func() {
		resolver = physics.NewCollisionResolver(dynamo.DefaultParams())
	})

	It("separates and reflects a head-on pair of equal spheres", func() {
		bodies := dynamo.Bodies{
			{Position: mgl64.Vec3{0, 0, 0}, Velocity: mgl64.Vec3{1, 0, 0}, Radius: 1, Mass: 1},
			{Position: mgl64.Vec3{1.5, 0, 0}, Velocity: mgl64.Vec3{-1, 0, 0}, Radius: 1, Mass: 1},
		}

		resolver.Resolve(bodies)

		expectVec(bodies[0].Position, mgl64.Vec3{-0.25, 0, 0})
		expectVec(bodies[1].Position, mgl64.Vec3{1.75, 0, 0})
		expectVec(bodies[0].Velocity, mgl64.Vec3{-1, 0, 0})
		expectVec(bodies[1].Velocity, mgl64.Vec3{1, 0, 0})
	})

	It("leaves non-overlapping pairs untouched", func() {
		bodies := dynamo.Bodies{
			{Position: mgl64.Vec3{0, 0, 0}, Velocity: mgl64.Vec3{1, 0, 0}, Radius: 1, Mass: 1},
			{Position: mgl64.Vec3{2.0001, 0, 0}, Velocity: mgl64.Vec3{-1, 0, 0}, Radius: 1, Mass: 1},
		}
		before := bodies.Clone()

		resolver.Resolve(bodies)

		Expect(bodies).To(Equal(before))
	})

	It("treats exactly touching spheres as colliding", func() {
		a := dynamo.Body{Position: mgl64.Vec3{0, 0, 0}, Velocity: mgl64.Vec3{1, 0, 0}, Radius: 1, Mass: 1}
		b := dynamo.Body{Position: mgl64.Vec3{2, 0, 0}, Velocity: mgl64.Vec3{0, 0, 0}, Radius: 1, Mass: 1}

		Expect(resolver.ResolvePair(&a, &b)).To(BeTrue())
		expectVec(a.Velocity, mgl64.Vec3{0, 0, 0})
		expectVec(b.Velocity, mgl64.Vec3{1, 0, 0})
	})

	It("corrects position but keeps velocities of a separating pair", func() {
		a := dynamo.Body{Position: mgl64.Vec3{0, 0, 0}, Velocity: mgl64.Vec3{-1, 0, 0}, Radius: 1, Mass: 1}
		b := dynamo.Body{Position: mgl64.Vec3{1, 0, 0}, Velocity: mgl64.Vec3{1, 0, 0}, Radius: 1, Mass: 1}

		Expect(resolver.ResolvePair(&a, &b)).To(BeTrue())
		expectVec(a.Velocity, mgl64.Vec3{-1, 0, 0})
		expectVec(b.Velocity, mgl64.Vec3{1, 0, 0})
		expectVec(a.Position, mgl64.Vec3{-0.5, 0, 0})
		expectVec(b.Position, mgl64.Vec3{1.5, 0, 0})
	})

	It("moves the heavier body less and keeps the centroid", func() {
		a := dynamo.Body{Position: mgl64.Vec3{0, 0, 0}, Radius: 1, Mass: 3}
		b := dynamo.Body{Position: mgl64.Vec3{0, 1, 0}, Radius: 1, Mass: 1}
		centroid := dynamo.Bodies{a, b}.CenterOfMass()

		resolver.ResolvePair(&a, &b)

		expectVec(a.Position, mgl64.Vec3{0, -0.25, 0})
		expectVec(b.Position, mgl64.Vec3{0, 1.75, 0})
		expectVec(dynamo.Bodies{a, b}.CenterOfMass(), centroid)
	})

	DescribeTable("conserves momentum and kinetic energy when elastic",
		func(va, vb mgl64.Vec3, ma, mb float64) {
			bodies := dynamo.Bodies{
				{Position: mgl64.Vec3{0, 0, 0}, Velocity: va, Radius: 1, Mass: ma},
				{Position: mgl64.Vec3{1.2, 0.6, -0.3}, Velocity: vb, Radius: 1, Mass: mb},
			}
			p0 := bodies.TotalMomentum()
			ke0 := bodies.KineticEnergy()

			resolver.Resolve(bodies)

			expectVec(bodies.TotalMomentum(), p0)
			Expect(bodies.KineticEnergy()).To(BeNumerically("~", ke0, 1e-9))
		},
		Entry("equal masses", mgl64.Vec3{2, 0, 0}, mgl64.Vec3{-1, 0.5, 0}, 1.0, 1.0),
		Entry("unequal masses", mgl64.Vec3{3, 1, 0}, mgl64.Vec3{0, 0, 0}, 1.0, 10.0),
		Entry("oblique", mgl64.Vec3{0.5, 2, -1}, mgl64.Vec3{-2, -1, 0.5}, 4.0, 0.25),
	)

	It("dissipates relative normal speed when inelastic", func() {
		resolver.Restitution = 0
		bodies := dynamo.Bodies{
			{Position: mgl64.Vec3{0, 0, 0}, Velocity: mgl64.Vec3{1, 0, 0}, Radius: 1, Mass: 1},
			{Position: mgl64.Vec3{1.5, 0, 0}, Velocity: mgl64.Vec3{-1, 0, 0}, Radius: 1, Mass: 1},
		}

		resolver.Resolve(bodies)

		expectVec(bodies[0].Velocity, mgl64.Vec3{0, 0, 0})
		expectVec(bodies[1].Velocity, mgl64.Vec3{0, 0, 0})
	})

	It("sees earlier corrections when visiting later pairs", func() {
		bodies := dynamo.Bodies{
			{Position: mgl64.Vec3{0, 0, 0}, Radius: 1, Mass: 1},
			{Position: mgl64.Vec3{1.9, 0, 0}, Radius: 1, Mass: 1},
			{Position: mgl64.Vec3{3.9, 0, 0}, Radius: 1, Mass: 1},
		}

		resolver.Resolve(bodies)

		// pair (0,1) pushes body 1 to 1.95, which then overlaps body 2
		expectVec(bodies[1].Position, mgl64.Vec3{1.925, 0, 0})
		expectVec(bodies[2].Position, mgl64.Vec3{3.925, 0, 0})
	})
})
