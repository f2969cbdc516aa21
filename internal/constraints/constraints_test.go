package constraints_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/linkage/internal/constraints"
	"github.com/san-kum/linkage/internal/dynamo"
)

func midpoint(a, b *dynamo.Point) (float64, float64) {
	return (a.X + b.X) / 2, (a.Y + b.Y) / 2
}

var _ = Describe("RelaxSticks", func() {
	var p0, p1 *dynamo.Point
	var stick *dynamo.Stick

	BeforeEach(func() {
		p0 = dynamo.NewPoint(10, 20)
		p1 = dynamo.NewPoint(130, 110)
		stick = &dynamo.Stick{P0: p0, P1: p1, Length: 100}
	})

	It("converges two free endpoints monotonically toward the rest length", func() {
		prev := math.Abs(dynamo.Distance(p0, p1) - stick.Length)
		for i := 0; i < 10; i++ {
			constraints.RelaxSticks([]*dynamo.Stick{stick}, constraints.DegenerateSkip)
			residual := math.Abs(dynamo.Distance(p0, p1) - stick.Length)
			Expect(residual).To(BeNumerically("<=", prev+1e-12))
			prev = residual
		}
		Expect(prev).To(BeNumerically("<", 1e-9))
	})

	It("keeps the midpoint fixed when both endpoints are free", func() {
		mx, my := midpoint(p0, p1)
		for i := 0; i < 5; i++ {
			constraints.RelaxSticks([]*dynamo.Stick{stick}, constraints.DegenerateSkip)
			nx, ny := midpoint(p0, p1)
			Expect(nx).To(BeNumerically("~", mx, 1e-9))
			Expect(ny).To(BeNumerically("~", my, 1e-9))
		}
	})

	It("applies only half the correction to the free end of a pinned stick", func() {
		anchor := dynamo.NewPoint(0, 0)
		anchor.Pinned = true
		free := dynamo.NewPoint(200, 0)
		s := &dynamo.Stick{P0: anchor, P1: free, Length: 100}

		constraints.RelaxSticks([]*dynamo.Stick{s}, constraints.DegenerateSkip)

		Expect(anchor.X).To(Equal(0.0))
		Expect(anchor.Y).To(Equal(0.0))
		Expect(free.X).To(BeNumerically("~", 150, 1e-12))
		Expect(free.Y).To(BeNumerically("~", 0, 1e-12))
	})

	It("never moves the engine endpoint", func() {
		engine := dynamo.NewEngine(450, 100, 100, 0, 0.05)
		free := dynamo.NewPoint(300, 100)
		s := &dynamo.Stick{P0: engine, P1: free, Length: 150}

		constraints.RelaxSticks([]*dynamo.Stick{s}, constraints.DegenerateSkip)

		Expect(engine.X).To(Equal(550.0))
		Expect(engine.Y).To(Equal(100.0))
		Expect(free.X).To(BeNumerically("~", 350, 1e-12))
	})

	Context("with coincident endpoints", func() {
		BeforeEach(func() {
			p1.X, p1.Y = p0.X, p0.Y
			p1.OldX, p1.OldY = p0.X, p0.Y
		})

		It("skips the stick under the skip policy", func() {
			constraints.RelaxSticks([]*dynamo.Stick{stick}, constraints.DegenerateSkip)
			Expect(p0.X).To(Equal(10.0))
			Expect(p1.X).To(Equal(10.0))
		})

		It("separates the endpoints along x under the epsilon policy", func() {
			constraints.RelaxSticks([]*dynamo.Stick{stick}, constraints.DegenerateEpsilon)
			Expect(math.IsNaN(p0.X) || math.IsNaN(p1.X)).To(BeFalse())
			Expect(p1.X - p0.X).To(BeNumerically("~", stick.Length, 1e-6))
			Expect(p0.Y).To(Equal(p1.Y))
		})
	})
})

var _ = Describe("ParseDegeneratePolicy", func() {
	DescribeTable("accepted names",
		func(in string, want constraints.DegeneratePolicy) {
			got, err := constraints.ParseDegeneratePolicy(in)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))
		},
		Entry("empty defaults to skip", "", constraints.DegenerateSkip),
		Entry("skip", "skip", constraints.DegenerateSkip),
		Entry("epsilon", "epsilon", constraints.DegenerateEpsilon),
	)

	It("rejects unknown names", func() {
		_, err := constraints.ParseDegeneratePolicy("ignore")
		Expect(err).To(MatchError(dynamo.ErrParameterBounds))
	})
})

var _ = Describe("Bounds", func() {
	bounds := constraints.Bounds{Width: 800, Height: 600, Bounce: 0.9, Friction: 0.999}

	It("clamps x past the right edge and reflects the damped velocity", func() {
		p := &dynamo.Point{X: 810, Y: 300, OldX: 805, OldY: 300}
		vx := (p.X - p.OldX) * bounds.Friction

		bounds.Constrain([]*dynamo.Point{p})

		Expect(p.X).To(Equal(800.0))
		Expect(p.OldX).To(BeNumerically("~", 800+vx*0.9, 1e-12))
		Expect(p.Y).To(Equal(300.0))
	})

	It("clamps below zero on both axes independently", func() {
		p := &dynamo.Point{X: -4, Y: -2, OldX: 1, OldY: 3}
		vx := (p.X - p.OldX) * bounds.Friction
		vy := (p.Y - p.OldY) * bounds.Friction

		bounds.Constrain([]*dynamo.Point{p})

		Expect(p.X).To(Equal(0.0))
		Expect(p.Y).To(Equal(0.0))
		Expect(p.OldX).To(BeNumerically("~", vx*0.9, 1e-12))
		Expect(p.OldY).To(BeNumerically("~", vy*0.9, 1e-12))
	})

	It("handles a corner hit as two clamps", func() {
		p := &dynamo.Point{X: 805, Y: 607, OldX: 800, OldY: 600}
		bounds.Constrain([]*dynamo.Point{p})
		Expect(p.X).To(Equal(800.0))
		Expect(p.Y).To(Equal(600.0))
		Expect(p.OldX).To(BeNumerically(">", 800))
		Expect(p.OldY).To(BeNumerically(">", 600))
	})

	It("leaves points inside the bounds untouched", func() {
		p := &dynamo.Point{X: 400, Y: 300, OldX: 390, OldY: 290}
		bounds.Constrain([]*dynamo.Point{p})
		Expect(*p).To(Equal(dynamo.Point{X: 400, Y: 300, OldX: 390, OldY: 290}))
	})

	It("leaves pinned points outside the bounds untouched", func() {
		p := &dynamo.Point{X: 900, Y: -50, OldX: 880, OldY: -40, Pinned: true}
		bounds.Constrain([]*dynamo.Point{p})
		Expect(*p).To(Equal(dynamo.Point{X: 900, Y: -50, OldX: 880, OldY: -40, Pinned: true}))
		Expect(bounds.Contains([]*dynamo.Point{p})).To(BeFalse())
	})
})

var _ = Describe("Solver", func() {
	It("falls back to the default pass count", func() {
		s := constraints.NewSolver(0, constraints.Bounds{}, constraints.DegenerateSkip)
		Expect(s.Iterations).To(Equal(constraints.DefaultIterations))
	})

	It("ends every solve with all free points inside the bounds", func() {
		a := dynamo.NewPoint(790, 590)
		b := dynamo.NewPoint(700, 590)
		st := &dynamo.State{
			Points: []*dynamo.Point{a, b},
			Sticks: []*dynamo.Stick{dynamo.NewStick(a, b)},
		}
		a.X, a.Y = 850, 640

		bounds := constraints.Bounds{Width: 800, Height: 600, Bounce: 0.9, Friction: 0.999}
		constraints.NewSolver(5, bounds, constraints.DegenerateSkip).Solve(st)

		Expect(bounds.Contains(st.Points)).To(BeTrue())
		Expect(st.MaxStrain()).To(BeNumerically("<", 50))
	})
})
