package integrators

import "github.com/san-kum/linkage/internal/dynamo"

// Verlet advances points by position Verlet: the previous position stands in
// for velocity, and gravity is added straight to the new position.
type Verlet struct {
	Gravity  float64
	Friction float64
}

func NewVerlet(gravity, friction float64) *Verlet {
	return &Verlet{Gravity: gravity, Friction: friction}
}

// Step integrates every free point once. Pinned points keep both their
// current and previous positions.
func (v *Verlet) Step(points []*dynamo.Point) {
	for _, p := range points {
		if p.Pinned {
			continue
		}
		vx := (p.X - p.OldX) * v.Friction
		vy := (p.Y - p.OldY) * v.Friction

		p.OldX = p.X
		p.OldY = p.Y
		p.X += vx
		p.Y += vy
		p.Y += v.Gravity
	}
}
