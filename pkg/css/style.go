package css

import (
	"image/color"
	"strconv"
	"strings"
)

type FontWeight int

const (
	WeightNormal FontWeight = iota
	WeightBold
)

type FontStyle int

const (
	StyleNormal FontStyle = iota
	StyleItalic
)

const (
	DefaultFontSize   = 16.0
	DefaultFontFamily = "Times"

	// used when a font-size cannot be parsed
	fallbackFontSize = 12.0
)

// Style is the computed style of a node. Only the properties the layout and
// paint stages read are kept.
type Style struct {
	Color           Color
	BackgroundColor Color
	FontSize        float64 // px
	FontWeight      FontWeight
	FontStyle       FontStyle
	FontFamily      string
}

// DefaultStyle is the style of a node no rule applies to.
func DefaultStyle() *Style {
	return &Style{
		Color:      ParseColor("black"),
		FontSize:   DefaultFontSize,
		FontFamily: DefaultFontFamily,
	}
}

func (s *Style) Bold() bool   { return s.FontWeight == WeightBold }
func (s *Style) Italic() bool { return s.FontStyle == StyleItalic }

// TextColor is the color text is drawn in; unresolved colors draw black.
func (s *Style) TextColor() color.RGBA {
	return s.Color.Or(Black)
}

// ParseLength parses a length value (e.g., "100px" or "100")
func ParseLength(val string) (float64, bool) {
	val = strings.TrimSpace(val)
	val = strings.TrimSuffix(val, "px")
	num, err := strconv.ParseFloat(val, 64)
	if err != nil || num < 0 {
		return 0, false
	}
	return num, true
}

// parseFontSize resolves px and percentage sizes. Percentages are relative to parentPx.
func parseFontSize(val string, parentPx float64) float64 {
	val = strings.ToLower(strings.TrimSpace(val))
	if strings.HasSuffix(val, "%") {
		pct, err := strconv.ParseFloat(strings.TrimSuffix(val, "%"), 64)
		if err != nil || pct < 0 {
			return fallbackFontSize
		}
		return pct / 100 * parentPx
	}
	if px, ok := ParseLength(val); ok {
		return px
	}
	return fallbackFontSize
}

func parseFontWeight(val string) FontWeight {
	val = strings.ToLower(strings.TrimSpace(val))
	switch val {
	case "bold", "bolder":
		return WeightBold
	}
	if n, err := strconv.Atoi(val); err == nil && n >= 600 {
		return WeightBold
	}
	return WeightNormal
}

func parseFontStyle(val string) FontStyle {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "italic", "oblique":
		return StyleItalic
	}
	return StyleNormal
}

func formatPx(px float64) string {
	return strconv.FormatFloat(px, 'f', -1, 64) + "px"
}
