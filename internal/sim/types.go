package sim

import (
	"time"

	"github.com/san-kum/linkage/internal/dynamo"
)

// Integrator advances free points by one tick.
type Integrator interface {
	Step(points []*dynamo.Point)
}

// Constrainer enforces stick lengths and surface bounds on a state.
type Constrainer interface {
	Solve(st *dynamo.State)
}

// Renderer draws a state. It must not mutate it.
type Renderer interface {
	Render(st *dynamo.State)
}

type Metric interface {
	Name() string
	Observe(st *dynamo.State)
	Value() float64
	Reset()
}

type Observer interface {
	OnTick(st *dynamo.State)
}

type Phase int

const (
	Idle Phase = iota
	Running
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Running:
		return "running"
	default:
		return "unknown"
	}
}

type Result struct {
	Ticks     uint64
	FinalTick uint64
	Checksum  uint64
	Elapsed   time.Duration
	Metrics   map[string]float64
}
