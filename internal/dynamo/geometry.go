package dynamo

import "math"

// Vec2 is a plain 2D coordinate, used in snapshots.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance between two positionables.
func Distance(a, b Positionable) float64 {
	ax, ay := a.Position()
	bx, by := b.Position()
	return math.Hypot(bx-ax, by-ay)
}
