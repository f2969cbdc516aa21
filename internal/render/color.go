package render

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

type RGB struct {
	R, G, B uint8
}

var named = map[string]RGB{
	"black":   {0, 0, 0},
	"white":   {255, 255, 255},
	"red":     {255, 0, 0},
	"green":   {0, 128, 0},
	"blue":    {0, 0, 255},
	"gray":    {128, 128, 128},
	"grey":    {128, 128, 128},
	"yellow":  {255, 255, 0},
	"orange":  {255, 165, 0},
	"purple":  {128, 0, 128},
	"cyan":    {0, 255, 255},
	"magenta": {255, 0, 255},
}

// ParseColor accepts a CSS color name from a small set, "#rgb" or "#rrggbb".
func ParseColor(s string) (RGB, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := named[s]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") || (len(s) != 4 && len(s) != 7) {
		return RGB{}, fmt.Errorf("unknown color %q", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("malformed color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// MustColor is ParseColor with a fallback for unparseable input.
func MustColor(s string, fallback RGB) RGB {
	c, err := ParseColor(s)
	if err != nil {
		return fallback
	}
	return c
}

func (c RGB) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}
