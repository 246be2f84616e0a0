package physics_test

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/nbody/internal/dynamo"
	"github.com/san-kum/nbody/internal/physics"
)

var _ = Describe("OrbitInitializer", func() {
	var (
		orbits  physics.OrbitInitializer
		central dynamo.Body
	)

	BeforeEach(func() {
		orbits = physics.NewOrbitInitializer(dynamo.DefaultParams())
		central = dynamo.Body{Position: mgl64.Vec3{990, 540, 0}, Mass: 10000, Radius: 100}
	})

	It("derives the circular speed from G*M/r", func() {
		Expect(orbits.Speed(10000, 250)).To(BeNumerically("~", 200.0, tol))
	})

	DescribeTable("places the satellite at the requested distance with a tangential velocity",
		func(orbit physics.Orbit) {
			pos, vel := orbits.Place(central, orbit)
			radial := pos.Sub(central.Position)

			Expect(radial.Len()).To(BeNumerically("~", orbit.Radius, 1e-9))
			Expect(vel.Len()).To(BeNumerically("~", orbits.Speed(central.Mass, orbit.Radius), 1e-9))
			Expect(radial.Normalize().Dot(vel.Normalize())).To(BeNumerically("~", 0.0, 1e-9))
		},
		Entry("planar", physics.Orbit{Radius: 200, Angle: 0.3}),
		Entry("planar opposite side", physics.Orbit{Radius: 170, Angle: math.Pi + 0.1}),
		Entry("inclined", physics.Orbit{Radius: 300, Angle: 1.2, Inclination: 0.6}),
		Entry("negative inclination", physics.Orbit{Radius: 400, Angle: 4.0, Inclination: -0.8}),
		Entry("over the pole", physics.Orbit{Radius: 250, Angle: 0.5, Inclination: math.Pi / 2}),
	)

	It("keeps planar orbits in the central body's plane", func() {
		pos, vel := orbits.Place(central, physics.Orbit{Radius: 200, Angle: math.Pi / 2})

		expectVec(pos, mgl64.Vec3{990, 740, 0})
		Expect(vel.Z()).To(BeNumerically("~", 0.0, tol))
		// counter-clockwise seen from +z
		Expect(vel.X()).To(BeNumerically("<", 0))
	})

	It("falls back to the y axis near the pole", func() {
		pos, vel := orbits.Place(central, physics.Orbit{Radius: 100, Angle: 0, Inclination: math.Pi / 2})

		expectVec(pos, central.Position.Add(mgl64.Vec3{0, 0, 100}))
		Expect(math.IsNaN(vel.X())).To(BeFalse())
		expectVec(vel.Normalize(), mgl64.Vec3{1, 0, 0})
	})

	It("produces non-finite speed for a zero orbit radius", func() {
		Expect(math.IsInf(orbits.Speed(10000, 0), 1)).To(BeTrue())
	})

	It("builds a satellite body carrying colour, radius and mass", func() {
		colour := mgl64.Vec3{0.1, 0.9, 1}
		sat := orbits.Satellite(central, physics.Orbit{Radius: 200}, colour, 20, 5)

		Expect(sat.Color).To(Equal(colour))
		Expect(sat.Radius).To(Equal(20.0))
		Expect(sat.Mass).To(Equal(5.0))
		expectVec(sat.Position, mgl64.Vec3{1190, 540, 0})
	})
})
