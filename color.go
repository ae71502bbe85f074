package canopy

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ErrInvalidColor is returned by ParseColor for strings that are not CSS
// colors.
var ErrInvalidColor = errors.New("canopy: invalid color")

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorBlack is the opaque black used as the default stroke color.
var ColorBlack = Color{0, 0, 0, 1}

// ParseColor parses a CSS color: a named color, "transparent", #rgb, #rgba,
// #rrggbb, #rrggbbaa, rgb(), rgba(), hsl() or hsla().
func ParseColor(s string) (Color, error) {
	str := strings.ToLower(strings.TrimSpace(s))
	switch {
	case str == "":
		return Color{}, fmt.Errorf("%w: empty string", ErrInvalidColor)
	case str == "transparent":
		return Color{}, nil
	case strings.HasPrefix(str, "#"):
		return parseHexColor(str)
	case strings.HasPrefix(str, "rgb"):
		return parseFuncColor(str, "rgb")
	case strings.HasPrefix(str, "hsl"):
		return parseFuncColor(str, "hsl")
	}
	if c, ok := colornames.Map[str]; ok {
		return Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255, A: float64(c.A) / 255}, nil
	}
	return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

func parseHexColor(s string) (Color, error) {
	alpha := 1.0
	switch len(s) {
	case 4, 7:
	case 5:
		a, err := strconv.ParseUint(s[4:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		alpha = float64(a) / 15
		s = s[:4]
	case 9:
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		alpha = float64(a) / 255
		s = s[:7]
	default:
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: alpha}, nil
}

// parseFuncColor parses rgb(), rgba(), hsl() and hsla() notation.
func parseFuncColor(s, fn string) (Color, error) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	name := s[:open]
	if name != fn && name != fn+"a" {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	parts := strings.Split(s[open+1:len(s)-1], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	vals := make([]float64, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		pct := strings.HasSuffix(p, "%")
		f, err := strconv.ParseFloat(strings.TrimSuffix(p, "%"), 64)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		switch {
		case i == 3:
			if pct {
				f /= 100
			}
		case fn == "rgb":
			if pct {
				f /= 100
			} else {
				f /= 255
			}
		case i > 0: // hsl saturation and lightness
			f /= 100
		}
		vals[i] = f
	}
	alpha := 1.0
	if len(vals) == 4 {
		alpha = clamp01(vals[3])
	}
	if fn == "rgb" {
		return Color{R: clamp01(vals[0]), G: clamp01(vals[1]), B: clamp01(vals[2]), A: alpha}, nil
	}
	c := colorful.Hsl(vals[0], clamp01(vals[1]), clamp01(vals[2])).Clamped()
	return Color{R: c.R, G: c.G, B: c.B, A: alpha}, nil
}

// Hex returns the color as #rrggbb, or #rrggbbaa when not fully opaque.
func (c Color) Hex() string {
	h := colorful.Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B)}.Hex()
	if c.A >= 1 {
		return h
	}
	return fmt.Sprintf("%s%02x", h, uint8(clamp01(c.A)*255+0.5))
}

// WithAlpha returns c with its alpha multiplied by a.
func (c Color) WithAlpha(a float64) Color {
	c.A = clamp01(c.A * a)
	return c
}

// RGBA implements color.Color with premultiplied components.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(clamp01(c.R*c.A)*255) * 0x101
	g = uint32(clamp01(c.G*c.A)*255) * 0x101
	b = uint32(clamp01(c.B*c.A)*255) * 0x101
	a = uint32(clamp01(c.A)*255) * 0x101
	return
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
