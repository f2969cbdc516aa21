package viz

import "math"

// Viewport draws world coordinates onto a Canvas, scaling the world
// rectangle to fill the canvas. It implements render.Surface.
type Viewport struct {
	canvas      *Canvas
	worldW      float64
	worldH      float64
	scaleX      float64
	scaleY      float64
	radiusScale float64
}

func NewViewport(c *Canvas, worldW, worldH float64) *Viewport {
	v := &Viewport{canvas: c, worldW: worldW, worldH: worldH}
	v.scaleX = float64(c.PixelWidth()-1) / worldW
	v.scaleY = float64(c.PixelHeight()-1) / worldH
	v.radiusScale = math.Min(v.scaleX, v.scaleY)
	return v
}

func (v *Viewport) Canvas() *Canvas { return v.canvas }

// Project maps a world point to canvas sub-pixels.
func (v *Viewport) Project(x, y float64) (int, int) {
	return int(math.Round(x * v.scaleX)), int(math.Round(y * v.scaleY))
}

func (v *Viewport) radius(r float64) int {
	return int(math.Round(r * v.radiusScale))
}

func (v *Viewport) Clear() { v.canvas.Clear() }

// Line ignores color and width; braille cells are monochrome.
func (v *Viewport) Line(x0, y0, x1, y1 float64, _ string, _ float64) {
	px0, py0 := v.Project(x0, y0)
	px1, py1 := v.Project(x1, y1)
	v.canvas.DrawLine(px0, py0, px1, py1)
}

func (v *Viewport) FillCircle(x, y, r float64) {
	px, py := v.Project(x, y)
	v.canvas.FillCircle(px, py, v.radius(r))
}

func (v *Viewport) StrokeCircle(x, y, r float64) {
	px, py := v.Project(x, y)
	v.canvas.DrawCircle(px, py, v.radius(r))
}
