// Package constraints relaxes stick lengths and boundary containment.
//
// Neither constraint can be satisfied exactly while the other holds, so
// [Solver] alternates them for a fixed number of passes per tick and accepts
// a small residual.
package constraints

import "github.com/san-kum/linkage/internal/dynamo"

const DefaultIterations = 5

type Solver struct {
	Iterations int
	Bounds     Bounds
	Degenerate DegeneratePolicy
}

func NewSolver(iterations int, bounds Bounds, policy DegeneratePolicy) *Solver {
	if iterations < 1 {
		iterations = DefaultIterations
	}
	return &Solver{Iterations: iterations, Bounds: bounds, Degenerate: policy}
}

// Solve runs Iterations passes of {relax sticks, clamp to bounds}.
func (s *Solver) Solve(st *dynamo.State) {
	for i := 0; i < s.Iterations; i++ {
		RelaxSticks(st.Sticks, s.Degenerate)
		s.Bounds.Constrain(st.Points)
	}
}
