package metrics

import (
	"github.com/san-kum/linkage/internal/constraints"
	"github.com/san-kum/linkage/internal/dynamo"
)

// Containment is the fraction of observed ticks on which every point was
// inside the surface.
type Containment struct {
	name       string
	bounds     constraints.Bounds
	violations int
	samples    int
}

func NewContainment(width, height float64) *Containment {
	return &Containment{
		name:   "containment",
		bounds: constraints.Bounds{Width: width, Height: height},
	}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(st *dynamo.State) {
	c.samples++
	if !c.bounds.Contains(st.Points) {
		c.violations++
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}
