package experiment

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/san-kum/linkage/internal/config"
	"github.com/san-kum/linkage/internal/constraints"
	"github.com/san-kum/linkage/internal/dynamo"
	"github.com/san-kum/linkage/internal/integrators"
	"github.com/san-kum/linkage/internal/logging"
	"github.com/san-kum/linkage/internal/physics"
	"github.com/san-kum/linkage/internal/sim"
	"go.uber.org/zap"
)

// Experiment wires a configuration into a ready-to-run simulator.
type Experiment struct {
	cfg       *config.Config
	simulator *sim.Simulator
}

// New validates cfg, builds the scene with a source seeded from
// cfg.Run.Seed and attaches the named metrics (all registered ones when
// metricNames is empty).
func New(cfg *config.Config, logger *zap.Logger, metricNames ...string) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	st, err := BuildState(cfg)
	if err != nil {
		return nil, err
	}
	policy, err := constraints.ParseDegeneratePolicy(cfg.Physics.Degenerate)
	if err != nil {
		return nil, err
	}

	integ := integrators.NewVerlet(cfg.Physics.Gravity, cfg.Physics.Friction)
	solver := constraints.NewSolver(cfg.Physics.Iterations, constraints.Bounds{
		Width:    cfg.Surface.Width,
		Height:   cfg.Surface.Height,
		Bounce:   cfg.Physics.Bounce,
		Friction: cfg.Physics.Friction,
	}, policy)

	s := sim.New(st, integ, solver)
	s.SetLogger(logger, cfg.Run.LogEvery)

	reg := NewRegistry(cfg)
	if len(metricNames) == 0 {
		metricNames = reg.MetricNames()
	}
	for _, name := range metricNames {
		m, err := reg.GetMetric(name)
		if err != nil {
			return nil, err
		}
		s.AddMetric(m)
	}

	return &Experiment{cfg: cfg, simulator: s}, nil
}

// BuildState creates the initial state for cfg. Equal seeds give identical
// states.
func BuildState(cfg *config.Config) (*dynamo.State, error) {
	rng := rand.New(rand.NewSource(cfg.Run.Seed))
	st, err := physics.Build(cfg.Scene, rng)
	if err != nil {
		return nil, fmt.Errorf("build scene: %w", err)
	}
	return st, nil
}

// Run executes cfg.Run.Ticks frames without pacing.
func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not set up")
	}
	return e.simulator.Run(ctx, &sim.ManualClock{}, e.cfg.Run.Ticks)
}

// Reset rebuilds the initial state from the configured seed.
func (e *Experiment) Reset() error {
	st, err := BuildState(e.cfg)
	if err != nil {
		return err
	}
	e.simulator.Reset(st)
	return nil
}

// Simulator returns the underlying simulator for adding observers.
func (e *Experiment) Simulator() *sim.Simulator {
	return e.simulator
}

// Factory returns a sim.Factory that builds an independent experiment per
// seed from copies of cfg.
func Factory(cfg *config.Config, logger *zap.Logger) sim.Factory {
	return func(seed int64) (*sim.Simulator, error) {
		c := *cfg
		c.Run.Seed = seed
		exp, err := New(&c, logging.OrNop(logger).With(zap.Int64("seed", seed)))
		if err != nil {
			return nil, err
		}
		return exp.Simulator(), nil
	}
}
