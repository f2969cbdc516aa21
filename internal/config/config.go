package config

import (
	"fmt"
	"os"

	"github.com/san-kum/linkage/internal/constraints"
	"github.com/san-kum/linkage/internal/dynamo"
	"github.com/san-kum/linkage/internal/render"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth      = 800.0
	DefaultHeight     = 600.0
	DefaultGravity    = 0.5
	DefaultFriction   = 0.999
	DefaultBounce     = 0.9
	DefaultIterations = constraints.DefaultIterations
	DefaultTicks      = 1000
	DefaultFPS        = 60
	DefaultSeed       = 1
	DefaultPerturb    = 25.0
)

// EngineEndpoint is the stick endpoint index that refers to the engine.
const EngineEndpoint = -1

type Config struct {
	Physics PhysicsConfig `yaml:"physics"`
	Surface SurfaceConfig `yaml:"surface"`
	Run     RunConfig     `yaml:"run"`
	Scene   SceneConfig   `yaml:"scene"`
}

type PhysicsConfig struct {
	Gravity    float64 `yaml:"gravity"`
	Friction   float64 `yaml:"friction"`
	Bounce     float64 `yaml:"bounce"`
	Iterations int     `yaml:"iterations"`
	Degenerate string  `yaml:"degenerate"`
}

type SurfaceConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type RunConfig struct {
	Ticks    int   `yaml:"ticks"`
	FPS      int   `yaml:"fps"`
	Seed     int64 `yaml:"seed"`
	LogEvery int   `yaml:"log_every"`
}

type SceneConfig struct {
	Points []PointConfig `yaml:"points"`
	Sticks []StickConfig `yaml:"sticks"`
	Engine *EngineConfig `yaml:"engine"`

	// Perturb is the half-width of the random offset applied to the previous
	// position of PerturbPoint at build time. Zero disables it.
	Perturb      float64 `yaml:"perturb"`
	PerturbPoint int     `yaml:"perturb_point"`
}

type PointConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Pinned bool    `yaml:"pinned,omitempty"`
}

// StickConfig references points by index; EngineEndpoint selects the engine.
type StickConfig struct {
	P0     int     `yaml:"p0"`
	P1     int     `yaml:"p1"`
	Hidden bool    `yaml:"hidden,omitempty"`
	Color  string  `yaml:"color,omitempty"`
	Width  float64 `yaml:"width,omitempty"`
}

type EngineConfig struct {
	BaseX float64 `yaml:"base_x"`
	BaseY float64 `yaml:"base_y"`
	Range float64 `yaml:"range"`
	Angle float64 `yaml:"angle"`
	Speed float64 `yaml:"speed"`
}

func DefaultConfig() *Config {
	return &Config{
		Physics: PhysicsConfig{
			Gravity:    DefaultGravity,
			Friction:   DefaultFriction,
			Bounce:     DefaultBounce,
			Iterations: DefaultIterations,
			Degenerate: string(constraints.DegenerateSkip),
		},
		Surface: SurfaceConfig{Width: DefaultWidth, Height: DefaultHeight},
		Run: RunConfig{
			Ticks: DefaultTicks,
			FPS:   DefaultFPS,
			Seed:  DefaultSeed,
		},
		Scene: ReferenceScene(),
	}
}

// ReferenceScene is the six-point, eight-stick linkage: a braced square
// tied to an orbiting engine through a two-stick arm.
func ReferenceScene() SceneConfig {
	return SceneConfig{
		Points: []PointConfig{
			{X: 100, Y: 100},
			{X: 200, Y: 100},
			{X: 200, Y: 200},
			{X: 100, Y: 200},
			{X: 400, Y: 100},
			{X: 250, Y: 100},
		},
		Sticks: []StickConfig{
			{P0: 0, P1: 1},
			{P0: 1, P1: 2},
			{P0: 2, P1: 3},
			{P0: 3, P1: 0},
			{P0: 0, P1: 2, Hidden: true},
			{P0: EngineEndpoint, P1: 4},
			{P0: 4, P1: 5},
			{P0: 5, P1: 0},
		},
		Engine: &EngineConfig{
			BaseX: 450,
			BaseY: 100,
			Range: 100,
			Angle: 0,
			Speed: 0.05,
		},
		Perturb:      DefaultPerturb,
		PerturbPoint: 0,
	}
}

func Load(path string) (*Config, error) {
	return LoadOnto(path, DefaultConfig())
}

// LoadOnto reads path over base, so keys missing from the file keep base's
// values. base is modified and returned.
func LoadOnto(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, base); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := base.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return base, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks ranges and that every stick endpoint exists.
func (c *Config) Validate() error {
	if c.Surface.Width <= 0 || c.Surface.Height <= 0 {
		return fmt.Errorf("%w: surface %gx%g must be positive", dynamo.ErrParameterBounds, c.Surface.Width, c.Surface.Height)
	}
	if c.Physics.Friction < 0 {
		return fmt.Errorf("%w: friction %g must not be negative", dynamo.ErrParameterBounds, c.Physics.Friction)
	}
	if c.Physics.Bounce < 0 {
		return fmt.Errorf("%w: bounce %g must not be negative", dynamo.ErrParameterBounds, c.Physics.Bounce)
	}
	if c.Physics.Iterations < 1 {
		return fmt.Errorf("%w: iterations %d must be at least 1", dynamo.ErrParameterBounds, c.Physics.Iterations)
	}
	if _, err := constraints.ParseDegeneratePolicy(c.Physics.Degenerate); err != nil {
		return err
	}
	if c.Run.Ticks < 0 {
		return fmt.Errorf("%w: ticks %d must not be negative", dynamo.ErrParameterBounds, c.Run.Ticks)
	}
	if c.Run.FPS <= 0 {
		return fmt.Errorf("%w: fps %d must be positive", dynamo.ErrParameterBounds, c.Run.FPS)
	}
	return c.Scene.Validate()
}

func (s *SceneConfig) Validate() error {
	n := len(s.Points)
	for i, st := range s.Sticks {
		for _, idx := range []int{st.P0, st.P1} {
			if idx == EngineEndpoint {
				if s.Engine == nil {
					return fmt.Errorf("%w: stick %d references the engine but none is configured", dynamo.ErrDimensionMismatch, i)
				}
				continue
			}
			if idx < 0 || idx >= n {
				return fmt.Errorf("%w: stick %d endpoint %d (have %d points)", dynamo.ErrDimensionMismatch, i, idx, n)
			}
		}
		if st.P0 == st.P1 {
			return fmt.Errorf("%w: stick %d connects endpoint %d to itself", dynamo.ErrParameterBounds, i, st.P0)
		}
		if st.Width < 0 {
			return fmt.Errorf("%w: stick %d width %g", dynamo.ErrParameterBounds, i, st.Width)
		}
		if st.Color != "" {
			if _, err := render.ParseColor(st.Color); err != nil {
				return fmt.Errorf("%w: stick %d: %v", dynamo.ErrParameterBounds, i, err)
			}
		}
	}
	if s.Perturb < 0 {
		return fmt.Errorf("%w: perturb %g must not be negative", dynamo.ErrParameterBounds, s.Perturb)
	}
	if s.Perturb > 0 && (s.PerturbPoint < 0 || s.PerturbPoint >= n) {
		return fmt.Errorf("%w: perturb_point %d (have %d points)", dynamo.ErrDimensionMismatch, s.PerturbPoint, n)
	}
	return nil
}

// SetParam overrides one tunable value by name.
func (c *Config) SetParam(name string, v float64) error {
	switch name {
	case "gravity":
		c.Physics.Gravity = v
	case "friction":
		c.Physics.Friction = v
	case "bounce":
		c.Physics.Bounce = v
	case "iterations":
		c.Physics.Iterations = int(v)
	case "speed":
		if c.Scene.Engine == nil {
			return fmt.Errorf("%w: no engine to set speed on", dynamo.ErrParameterBounds)
		}
		e := *c.Scene.Engine
		e.Speed = v
		c.Scene.Engine = &e
	default:
		return fmt.Errorf("%w: unknown parameter %q", dynamo.ErrParameterBounds, name)
	}
	return nil
}
