package sim

import (
	"context"
	"time"

	"github.com/san-kum/linkage/internal/dynamo"
	"github.com/san-kum/linkage/internal/logging"
	"github.com/san-kum/linkage/internal/metrics"
	"github.com/san-kum/linkage/internal/physics"
	"go.uber.org/zap"
)

// Simulator owns one state and steps it. It is not safe for concurrent use.
type Simulator struct {
	state      *dynamo.State
	integrator Integrator
	solver     Constrainer
	renderer   Renderer
	metrics    []Metric
	observers  []Observer
	logger     *zap.Logger
	logEvery   uint64
	phase      Phase
}

func New(st *dynamo.State, integrator Integrator, solver Constrainer) *Simulator {
	return &Simulator{
		state:      st,
		integrator: integrator,
		solver:     solver,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
		logger:     zap.NewNop(),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }
func (s *Simulator) SetRenderer(r Renderer) { s.renderer = r }

// SetLogger installs l and emits a debug progress line every logEvery ticks
// (0 disables it).
func (s *Simulator) SetLogger(l *zap.Logger, logEvery int) {
	s.logger = logging.OrNop(l)
	s.logEvery = uint64(max(logEvery, 0))
}

func (s *Simulator) State() *dynamo.State { return s.state }
func (s *Simulator) Phase() Phase         { return s.phase }
func (s *Simulator) Metrics() []Metric    { return s.metrics }

// Tick runs one frame: advance the engine, integrate, solve, then report to
// metrics and observers and render. A state that turns non-finite stops
// here with a *dynamo.SimulationError and is not rendered.
func (s *Simulator) Tick() error {
	st := s.state

	physics.Advance(st.Engine)
	s.integrator.Step(st.Points)
	s.solver.Solve(st)
	st.Tick++

	if !st.IsValid() {
		return &dynamo.SimulationError{Tick: st.Tick, Wrapped: dynamo.ErrInvalidState}
	}

	for _, m := range s.metrics {
		m.Observe(st)
	}
	for _, obs := range s.observers {
		obs.OnTick(st)
	}
	if s.renderer != nil {
		s.renderer.Render(st)
	}

	if s.logEvery > 0 && st.Tick%s.logEvery == 0 {
		s.logger.Debug("tick",
			zap.Uint64("tick", st.Tick),
			zap.Float64("max_strain", st.MaxStrain()),
			zap.Float64("kinetic", metrics.Kinetic(st)),
		)
	}
	return nil
}

// Run ticks until maxTicks frames have run (0 means no limit), ctx is
// cancelled, or a tick fails. The first tick runs immediately; each later
// one waits on clock. The partial result is returned alongside any error.
func (s *Simulator) Run(ctx context.Context, clock Clock, maxTicks int) (*Result, error) {
	for _, m := range s.metrics {
		m.Reset()
	}

	s.phase = Running
	defer func() { s.phase = Idle }()

	start := time.Now()
	startTick := s.state.Tick
	s.logger.Info("simulation started",
		zap.Int("points", len(s.state.Points)),
		zap.Int("sticks", len(s.state.Sticks)),
		zap.Int("max_ticks", maxTicks),
	)

	var err error
	for i := 0; maxTicks == 0 || i < maxTicks; i++ {
		if i > 0 {
			if err = clock.Wait(ctx); err != nil {
				break
			}
		} else if err = ctx.Err(); err != nil {
			break
		}
		if err = s.Tick(); err != nil {
			break
		}
	}

	result := s.result(startTick, time.Since(start))
	if err != nil {
		s.logger.Warn("simulation stopped", zap.Uint64("tick", s.state.Tick), zap.Error(err))
		return result, err
	}
	s.logger.Info("simulation finished",
		zap.Uint64("ticks", result.Ticks),
		zap.Duration("elapsed", result.Elapsed),
		zap.Uint64("checksum", result.Checksum),
	)
	return result, nil
}

// Reset swaps in a fresh state and clears metrics and resettable observers.
func (s *Simulator) Reset(st *dynamo.State) {
	s.state = st
	for _, m := range s.metrics {
		m.Reset()
	}
	for _, obs := range s.observers {
		if r, ok := obs.(interface{ Reset() }); ok {
			r.Reset()
		}
	}
}

func (s *Simulator) result(startTick uint64, elapsed time.Duration) *Result {
	r := &Result{
		Ticks:     s.state.Tick - startTick,
		FinalTick: s.state.Tick,
		Checksum:  s.state.Checksum(),
		Elapsed:   elapsed,
		Metrics:   make(map[string]float64, len(s.metrics)),
	}
	for _, m := range s.metrics {
		r.Metrics[m.Name()] = m.Value()
	}
	return r
}
