package analysis

import (
	"math"

	"github.com/san-kum/linkage/internal/dynamo"
)

// Separation returns, for each frame pair, the mean distance between
// corresponding points of a and b. It stops at the shorter trajectory.
func Separation(a, b *dynamo.Trajectory) []float64 {
	n := min(a.Len(), b.Len())
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		fa, fb := a.Frames[i], b.Frames[i]
		m := min(len(fa.Points), len(fb.Points))
		if m == 0 {
			continue
		}
		sum := 0.0
		for j := 0; j < m; j++ {
			sum += math.Hypot(fa.Points[j].X-fb.Points[j].X, fa.Points[j].Y-fb.Points[j].Y)
		}
		out[i] = sum / float64(m)
	}
	return out
}

// LyapunovEstimate fits ln(separation) against tick by least squares and
// returns the slope per tick. Frames are spaced every ticks apart. A
// positive value means nearby runs diverge exponentially. Non-positive
// separations are ignored.
func LyapunovEstimate(sep []float64, every int) float64 {
	if every < 1 {
		every = 1
	}
	var n, sx, sy, sxx, sxy float64
	for i, d := range sep {
		if d <= 0 {
			continue
		}
		x := float64(i * every)
		y := math.Log(d)
		n++
		sx += x
		sy += y
		sxx += x * x
		sxy += x * y
	}
	den := n*sxx - sx*sx
	if n < 2 || den == 0 {
		return 0
	}
	return (n*sxy - sx*sy) / den
}
