package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/linkage/internal/render"
)

// Surface draws onto the current raylib frame. Calls must happen between
// rl.BeginDrawing and rl.EndDrawing.
type Surface struct {
	Background rl.Color
	Foreground rl.Color
	colors     map[string]rl.Color
}

func NewSurface() *Surface {
	return &Surface{
		Background: ColBg,
		Foreground: ColAccent,
		colors:     make(map[string]rl.Color),
	}
}

func (s *Surface) Clear() { rl.ClearBackground(s.Background) }

func (s *Surface) Line(x0, y0, x1, y1 float64, color string, width float64) {
	rl.DrawLineEx(
		rl.NewVector2(float32(x0), float32(y0)),
		rl.NewVector2(float32(x1), float32(y1)),
		float32(width),
		s.color(color),
	)
}

func (s *Surface) FillCircle(x, y, r float64) {
	rl.DrawCircleV(rl.NewVector2(float32(x), float32(y)), float32(r), s.Foreground)
}

func (s *Surface) StrokeCircle(x, y, r float64) {
	rl.DrawCircleLines(int32(x), int32(y), float32(r), ColTextDim)
}

// color resolves stick colors once. Black would vanish on the dark
// background, so the default stick color maps to the foreground.
func (s *Surface) color(name string) rl.Color {
	if c, ok := s.colors[name]; ok {
		return c
	}
	c := s.Foreground
	if name != render.DefaultColor {
		fg := render.RGB{R: c.R, G: c.G, B: c.B}
		rgb := render.MustColor(name, fg)
		c = rl.NewColor(rgb.R, rgb.G, rgb.B, 255)
	}
	s.colors[name] = c
	return c
}
