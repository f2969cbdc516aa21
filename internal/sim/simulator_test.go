package sim_test

import (
	"context"
	"errors"
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/linkage/internal/config"
	"github.com/san-kum/linkage/internal/dynamo"
	"github.com/san-kum/linkage/internal/experiment"
	"github.com/san-kum/linkage/internal/sim"
)

type callLog struct {
	calls []string
}

type loggingIntegrator struct {
	log   *callLog
	st    *dynamo.State
	angle float64
}

func (i *loggingIntegrator) Step(points []*dynamo.Point) {
	i.log.calls = append(i.log.calls, "integrate")
	i.angle = i.st.Engine.Angle
}

type loggingSolver struct{ log *callLog }

func (s *loggingSolver) Solve(*dynamo.State) { s.log.calls = append(s.log.calls, "solve") }

type loggingRenderer struct {
	log  *callLog
	tick uint64
}

func (r *loggingRenderer) Render(st *dynamo.State) {
	r.log.calls = append(r.log.calls, "render")
	r.tick = st.Tick
}

type poisoner struct{ after uint64 }

func (p *poisoner) Step(points []*dynamo.Point) {
	if p.after == 0 {
		points[0].X = math.NaN()
		return
	}
	p.after--
}

func reference(seed int64) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Run.Seed = seed
	return cfg
}

func newReference(seed int64) *sim.Simulator {
	exp, err := experiment.New(reference(seed), nil)
	Expect(err).NotTo(HaveOccurred())
	return exp.Simulator()
}

var _ = Describe("Simulator", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Describe("Tick", func() {
		It("advances the engine, integrates, solves and renders in that order", func() {
			st := &dynamo.State{Engine: dynamo.NewEngine(0, 0, 10, 0, 0.5)}
			log := &callLog{}
			integ := &loggingIntegrator{log: log, st: st}
			r := &loggingRenderer{log: log}

			s := sim.New(st, integ, &loggingSolver{log: log})
			s.SetRenderer(r)
			Expect(s.Tick()).To(Succeed())

			Expect(log.calls).To(Equal([]string{"integrate", "solve", "render"}))
			Expect(integ.angle).To(Equal(0.5))
			Expect(r.tick).To(Equal(uint64(1)))
			Expect(st.Engine.X).To(Equal(10.0))
		})

		It("stops with a simulation error on a non-finite state", func() {
			st := &dynamo.State{Points: []*dynamo.Point{dynamo.NewPoint(1, 1)}}
			log := &callLog{}
			r := &loggingRenderer{log: log}
			s := sim.New(st, &poisoner{after: 2}, &loggingSolver{log: log})
			s.SetRenderer(r)

			res, err := s.Run(ctx, &sim.ManualClock{}, 10)

			Expect(err).To(MatchError(dynamo.ErrInvalidState))
			var simErr *dynamo.SimulationError
			Expect(errors.As(err, &simErr)).To(BeTrue())
			Expect(simErr.Tick).To(Equal(uint64(3)))
			Expect(res.Ticks).To(Equal(uint64(3)))
			Expect(r.tick).To(Equal(uint64(2)), "the failing tick is not rendered")
		})
	})

	Describe("Run", func() {
		It("keeps the reference scene stable for 1000 ticks", func() {
			for _, seed := range []int64{1, 2, 3, 42, 1234} {
				s := newReference(seed)
				res, err := s.Run(ctx, &sim.ManualClock{}, 1000)
				Expect(err).NotTo(HaveOccurred())
				Expect(res.Ticks).To(Equal(uint64(1000)))

				st := s.State()
				Expect(st.IsValid()).To(BeTrue())
				for _, p := range st.Points {
					Expect(p.X).To(BeNumerically(">=", 0))
					Expect(p.X).To(BeNumerically("<=", config.DefaultWidth))
					Expect(p.Y).To(BeNumerically(">=", 0))
					Expect(p.Y).To(BeNumerically("<=", config.DefaultHeight))
				}
				Expect(st.MaxStrain()).To(BeNumerically("<=", 5), "seed %d", seed)
				Expect(res.Metrics["max_strain"]).To(BeNumerically("<=", 20), "seed %d", seed)
				Expect(res.Metrics["containment"]).To(Equal(1.0))
			}
		})

		It("never moves a pinned point", func() {
			cfg := reference(9)
			cfg.Scene.Points[3].Pinned = true
			exp, err := experiment.New(cfg, nil)
			Expect(err).NotTo(HaveOccurred())

			s := exp.Simulator()
			pinned := *s.State().Points[3]
			_, err = s.Run(ctx, &sim.ManualClock{}, 500)
			Expect(err).NotTo(HaveOccurred())

			Expect(*s.State().Points[3]).To(Equal(pinned))
		})

		It("is deterministic for a given seed", func() {
			a, err := newReference(7).Run(ctx, &sim.ManualClock{}, 300)
			Expect(err).NotTo(HaveOccurred())
			b, err := newReference(7).Run(ctx, &sim.ManualClock{}, 300)
			Expect(err).NotTo(HaveOccurred())
			c, err := newReference(8).Run(ctx, &sim.ManualClock{}, 300)
			Expect(err).NotTo(HaveOccurred())

			Expect(a.Checksum).To(Equal(b.Checksum))
			Expect(a.Checksum).NotTo(Equal(c.Checksum))
		})

		It("waits on the clock between ticks but not before the first", func() {
			clock := &sim.ManualClock{}
			_, err := newReference(1).Run(ctx, clock, 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(clock.Frames).To(Equal(4))
		})

		It("returns the context error when cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()

			s := newReference(1)
			res, err := s.Run(cctx, &sim.ManualClock{}, 0)
			Expect(err).To(MatchError(context.Canceled))
			Expect(res.Ticks).To(BeZero())
			Expect(s.Phase()).To(Equal(sim.Idle))
		})

		It("runs on a wall-clock ticker until the deadline", func() {
			clock := sim.NewTickerClock(500)
			defer clock.Stop()
			cctx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
			defer cancel()

			res, err := newReference(1).Run(cctx, clock, 0)
			Expect(err).To(MatchError(context.DeadlineExceeded))
			Expect(res.Ticks).To(BeNumerically(">=", 1))
		})
	})

	Describe("Reset", func() {
		It("replaces the state and clears recorders", func() {
			s := newReference(1)
			rec := sim.NewRecorder(1)
			s.AddObserver(rec)
			Expect(s.Tick()).To(Succeed())
			Expect(rec.Trajectory().Len()).To(Equal(1))

			fresh, err := experiment.BuildState(reference(1))
			Expect(err).NotTo(HaveOccurred())
			s.Reset(fresh)

			Expect(s.State()).To(BeIdenticalTo(fresh))
			Expect(rec.Trajectory().Len()).To(BeZero())
		})
	})
})

var _ = Describe("Recorder", func() {
	It("keeps every nth frame", func() {
		s := newReference(1)
		rec := sim.NewRecorder(10)
		s.AddObserver(rec)

		_, err := s.Run(context.Background(), &sim.ManualClock{}, 100)
		Expect(err).NotTo(HaveOccurred())

		traj := rec.Trajectory()
		Expect(traj.Len()).To(Equal(10))
		Expect(traj.Frames[0].Tick).To(Equal(uint64(10)))
		Expect(traj.Frames[9].Points).To(HaveLen(6))
		Expect(traj.Frames[9].Engine).NotTo(BeNil())
	})
})

var _ = Describe("Sweep", func() {
	It("matches sequential runs and preserves seed order", func() {
		seeds := []int64{5, 6, 7, 8}
		results, err := sim.Sweep(context.Background(), seeds, 2, 200, experiment.Factory(config.DefaultConfig(), nil))
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(len(seeds)))

		for i, r := range results {
			Expect(r.Seed).To(Equal(seeds[i]))
			Expect(r.Err).NotTo(HaveOccurred())

			solo, err := newReference(seeds[i]).Run(context.Background(), &sim.ManualClock{}, 200)
			Expect(err).NotTo(HaveOccurred())
			Expect(r.Checksum).To(Equal(solo.Checksum))
		}
	})

	It("aborts when a simulator cannot be built", func() {
		boom := errors.New("boom")
		_, err := sim.Sweep(context.Background(), []int64{1}, 1, 10, func(int64) (*sim.Simulator, error) {
			return nil, boom
		})
		Expect(err).To(MatchError(boom))
	})
})
