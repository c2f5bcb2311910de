package text

import (
	"strings"
	"unicode/utf8"
)

// FontSpec selects a font. Size is in pixels.
type FontSpec struct {
	Size   float64
	Bold   bool
	Italic bool
	Family string
}

// Mono reports whether the family asks for a fixed-pitch font.
func (f FontSpec) Mono() bool {
	fam := strings.ToLower(f.Family)
	return strings.Contains(fam, "mono") || strings.Contains(fam, "courier")
}

// Metrics measures text. All values are in pixels.
type Metrics interface {
	Measure(s string, f FontSpec) float64
	Ascent(f FontSpec) float64
	Descent(f FontSpec) float64
	Linespace(f FontSpec) float64
}

// Approx estimates metrics from the font size alone. It is deterministic and
// needs no font files, which makes it the metrics of choice for tests.
type Approx struct{}

func (Approx) Measure(s string, f FontSpec) float64 {
	return float64(utf8.RuneCountInString(s)) * f.Size * 0.6
}

func (Approx) Ascent(f FontSpec) float64    { return f.Size * 0.8 }
func (Approx) Descent(f FontSpec) float64   { return f.Size * 0.2 }
func (Approx) Linespace(f FontSpec) float64 { return f.Size * 1.2 }
