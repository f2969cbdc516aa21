package export

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/san-kum/linkage/internal/render"
)

// SVG is a render.Surface that accumulates one frame as an SVG document.
type SVG struct {
	Width, Height float64
	Background    string
	Foreground    string

	body strings.Builder
}

func NewSVG(width, height float64) *SVG {
	return &SVG{
		Width:      width,
		Height:     height,
		Background: "#ffffff",
		Foreground: "black",
	}
}

func (s *SVG) Clear() { s.body.Reset() }

// Line writes colors in canonical hex form; anything ParseColor rejects is
// drawn in the foreground color.
func (s *SVG) Line(x0, y0, x1, y1 float64, color string, width float64) {
	stroke := attr(s.Foreground)
	if c, err := render.ParseColor(color); err == nil {
		stroke = c.Hex()
	}
	fmt.Fprintf(&s.body, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f"/>`+"\n",
		x0, y0, x1, y1, stroke, width)
}

func (s *SVG) FillCircle(x, y, r float64) {
	fmt.Fprintf(&s.body, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`+"\n", x, y, r, attr(s.Foreground))
}

func (s *SVG) StrokeCircle(x, y, r float64) {
	fmt.Fprintf(&s.body, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="none" stroke="%s"/>`+"\n", x, y, r, attr(s.Foreground))
}

// String returns the complete document for the last rendered frame.
func (s *SVG) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, s.Width, s.Height, s.Width, s.Height, attr(s.Background))
	sb.WriteString(s.body.String())
	sb.WriteString("</svg>\n")
	return sb.String()
}

func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

func attr(v string) string { return html.EscapeString(v) }
