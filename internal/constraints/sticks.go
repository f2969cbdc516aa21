package constraints

import (
	"fmt"
	"math"

	"github.com/san-kum/linkage/internal/dynamo"
)

// DegeneratePolicy decides what relaxation does with a stick whose endpoints
// coincide, where the correction direction is undefined.
type DegeneratePolicy string

const (
	// DegenerateSkip leaves the stick untouched for that pass.
	DegenerateSkip DegeneratePolicy = "skip"
	// DegenerateEpsilon clamps the divisor to Epsilon and separates the
	// endpoints along +x.
	DegenerateEpsilon DegeneratePolicy = "epsilon"
)

const Epsilon = 1e-9

func ParseDegeneratePolicy(s string) (DegeneratePolicy, error) {
	switch DegeneratePolicy(s) {
	case "", DegenerateSkip:
		return DegenerateSkip, nil
	case DegenerateEpsilon:
		return DegenerateEpsilon, nil
	}
	return "", fmt.Errorf("%w: degenerate policy %q (want skip or epsilon)", dynamo.ErrParameterBounds, s)
}

// RelaxSticks applies one Gauss-Seidel pass over all sticks. Each stick
// splits its correction evenly between free endpoints; a pinned endpoint
// leaves its half unapplied.
func RelaxSticks(sticks []*dynamo.Stick, policy DegeneratePolicy) {
	for _, s := range sticks {
		relax(s, policy)
	}
}

func relax(s *dynamo.Stick, policy DegeneratePolicy) {
	x0, y0 := s.P0.Position()
	x1, y1 := s.P1.Position()
	dx := x1 - x0
	dy := y1 - y0
	dist := math.Sqrt(dx*dx + dy*dy)

	if dist == 0 {
		if policy != DegenerateEpsilon {
			return
		}
		dx, dist = Epsilon, Epsilon
	}

	percent := (s.Length - dist) / dist / 2
	offsetX := dx * percent
	offsetY := dy * percent

	if !s.P0.IsPinned() {
		s.P0.Move(-offsetX, -offsetY)
	}
	if !s.P1.IsPinned() {
		s.P1.Move(offsetX, offsetY)
	}
}
