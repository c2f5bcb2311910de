package css

import (
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Color is a resolved CSS color. OK is false when the value was missing or could
// not be parsed; Raw keeps the declared text either way.
type Color struct {
	Raw  string
	RGBA color.RGBA
	OK   bool
}

// Concrete reports whether the color paints anything.
func (c Color) Concrete() bool {
	return c.OK && c.RGBA.A > 0
}

// Or returns c when it resolved, otherwise fallback.
func (c Color) Or(fallback color.RGBA) color.RGBA {
	if c.OK {
		return c.RGBA
	}
	return fallback
}

var (
	Black = color.RGBA{A: 0xff}
	White = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// ParseColor resolves named colors (the SVG set plus "transparent") and #rgb,
// #rgba, #rrggbb and #rrggbbaa hex notation.
func ParseColor(s string) Color {
	raw := s
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "transparent" {
		return Color{Raw: raw, OK: true}
	}
	if c, ok := colornames.Map[s]; ok {
		return Color{Raw: raw, RGBA: c, OK: true}
	}
	if strings.HasPrefix(s, "#") {
		if c, ok := parseHex(s[1:]); ok {
			return Color{Raw: raw, RGBA: c, OK: true}
		}
	}
	return Color{Raw: raw}
}

func parseHex(h string) (color.RGBA, bool) {
	switch len(h) {
	case 3, 4:
		var expanded strings.Builder
		for _, c := range h {
			expanded.WriteRune(c)
			expanded.WriteRune(c)
		}
		h = expanded.String()
	case 6, 8:
	default:
		return color.RGBA{}, false
	}
	if len(h) == 6 {
		h += "ff"
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	nc := color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
	return color.RGBAModel.Convert(nc).(color.RGBA), true
}
