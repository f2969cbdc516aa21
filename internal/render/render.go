// Package render draws a simulation state onto an abstract drawing surface.
package render

import "github.com/san-kum/linkage/internal/dynamo"

const (
	DefaultColor  = "black"
	DefaultWidth  = 1.0
	DefaultRadius = 5.0
)

// Surface is a 2D drawing target in world coordinates with the y axis
// pointing down. Circles use the surface's foreground color.
type Surface interface {
	Clear()
	Line(x0, y0, x1, y1 float64, color string, width float64)
	FillCircle(x, y, r float64)
	StrokeCircle(x, y, r float64)
}

// Renderer reads a state and issues draw calls. It never mutates the state.
type Renderer struct {
	surface Surface
	Radius  float64
}

func New(s Surface) *Renderer {
	return &Renderer{surface: s, Radius: DefaultRadius}
}

func (r *Renderer) Surface() Surface { return r.surface }

// Render clears the surface and draws visible sticks, then points, then the
// engine orbit and the engine itself.
func (r *Renderer) Render(st *dynamo.State) {
	r.surface.Clear()

	for _, s := range st.Sticks {
		if s.Hidden {
			continue
		}
		color := s.Color
		if color == "" {
			color = DefaultColor
		}
		width := s.Width
		if width <= 0 {
			width = DefaultWidth
		}
		x0, y0 := s.P0.Position()
		x1, y1 := s.P1.Position()
		r.surface.Line(x0, y0, x1, y1, color, width)
	}

	for _, p := range st.Points {
		r.surface.FillCircle(p.X, p.Y, r.Radius)
	}

	if e := st.Engine; e != nil {
		r.surface.StrokeCircle(e.BaseX, e.BaseY, e.Range)
		r.surface.FillCircle(e.X, e.Y, r.Radius)
	}
}
