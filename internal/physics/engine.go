package physics

import (
	"math"

	"github.com/san-kum/linkage/internal/dynamo"
)

// Advance places the engine at its current angle on the orbit and then
// increments the angle by Speed. The angle grows without wraparound.
func Advance(e *dynamo.Engine) {
	if e == nil {
		return
	}
	e.X = e.BaseX + math.Cos(e.Angle)*e.Range
	e.Y = e.BaseY + math.Sin(e.Angle)*e.Range
	e.Angle += e.Speed
}

// Period returns the number of ticks for one full orbit, or 0 for a
// stationary engine.
func Period(e *dynamo.Engine) float64 {
	if e == nil || e.Speed == 0 {
		return 0
	}
	return 2 * math.Pi / math.Abs(e.Speed)
}
