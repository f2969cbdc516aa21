package constraints

import "github.com/san-kum/linkage/internal/dynamo"

// Bounds keeps free points inside [0, Width] x [0, Height]. A point that
// crosses an edge is clamped onto it and its previous position is rewritten
// so the next integration derives a reversed velocity scaled by Bounce.
type Bounds struct {
	Width, Height float64
	Bounce        float64
	Friction      float64
}

// Constrain clamps each axis independently; a corner hit is two clamps.
// Velocity is reconstructed from the current position on every call.
func (b Bounds) Constrain(points []*dynamo.Point) {
	for _, p := range points {
		if p.Pinned {
			continue
		}
		vx := (p.X - p.OldX) * b.Friction
		vy := (p.Y - p.OldY) * b.Friction

		if p.X > b.Width {
			p.X = b.Width
			p.OldX = p.X + vx*b.Bounce
		} else if p.X < 0 {
			p.X = 0
			p.OldX = p.X + vx*b.Bounce
		}

		if p.Y > b.Height {
			p.Y = b.Height
			p.OldY = p.Y + vy*b.Bounce
		} else if p.Y < 0 {
			p.Y = 0
			p.OldY = p.Y + vy*b.Bounce
		}
	}
}

// Contains reports whether every point lies inside the bounds.
func (b Bounds) Contains(points []*dynamo.Point) bool {
	for _, p := range points {
		if p.X < 0 || p.X > b.Width || p.Y < 0 || p.Y > b.Height {
			return false
		}
	}
	return true
}
