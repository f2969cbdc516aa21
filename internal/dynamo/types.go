package dynamo

import "math"

// Positionable is anything a stick can attach to.
type Positionable interface {
	Position() (x, y float64)
	IsPinned() bool
	// Move displaces the endpoint. Pinned implementations ignore it.
	Move(dx, dy float64)
}

type Point struct {
	X, Y       float64
	OldX, OldY float64
	Pinned     bool
}

// NewPoint returns a point at rest at (x, y).
func NewPoint(x, y float64) *Point {
	return &Point{X: x, Y: y, OldX: x, OldY: y}
}

func (p *Point) Position() (float64, float64) { return p.X, p.Y }
func (p *Point) IsPinned() bool               { return p.Pinned }

func (p *Point) Move(dx, dy float64) {
	if p.Pinned {
		return
	}
	p.X += dx
	p.Y += dy
}

// Velocity returns the implicit per-tick velocity.
func (p *Point) Velocity() (float64, float64) {
	return p.X - p.OldX, p.Y - p.OldY
}

// Engine is a pinned anchor orbiting (BaseX, BaseY) at radius Range.
type Engine struct {
	X, Y         float64
	BaseX, BaseY float64
	Range        float64
	Angle        float64
	Speed        float64
}

// NewEngine places the engine on its orbit at the initial angle.
func NewEngine(baseX, baseY, rng, angle, speed float64) *Engine {
	return &Engine{
		X:     baseX + math.Cos(angle)*rng,
		Y:     baseY + math.Sin(angle)*rng,
		BaseX: baseX,
		BaseY: baseY,
		Range: rng,
		Angle: angle,
		Speed: speed,
	}
}

func (e *Engine) Position() (float64, float64) { return e.X, e.Y }
func (e *Engine) IsPinned() bool               { return true }
func (e *Engine) Move(dx, dy float64)          {}

type Stick struct {
	P0, P1 Positionable
	Length float64
	Hidden bool
	Color  string
	Width  float64
}

// NewStick captures the current endpoint separation as the rest length.
func NewStick(p0, p1 Positionable) *Stick {
	return &Stick{P0: p0, P1: p1, Length: Distance(p0, p1)}
}

// Strain is the signed deviation from rest length; positive when stretched.
func (s *Stick) Strain() float64 {
	return Distance(s.P0, s.P1) - s.Length
}

type State struct {
	Points []*Point
	Sticks []*Stick
	Engine *Engine
	Tick   uint64
}

func (s *State) IsValid() bool {
	for _, p := range s.Points {
		if !finite(p.X) || !finite(p.Y) || !finite(p.OldX) || !finite(p.OldY) {
			return false
		}
	}
	if s.Engine != nil && (!finite(s.Engine.X) || !finite(s.Engine.Y)) {
		return false
	}
	return true
}

// MaxStrain returns the largest absolute stick deviation.
func (s *State) MaxStrain() float64 {
	worst := 0.0
	for _, st := range s.Sticks {
		if d := math.Abs(st.Strain()); d > worst {
			worst = d
		}
	}
	return worst
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
