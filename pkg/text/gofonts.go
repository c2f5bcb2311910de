package text

import (
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

type variant int

const (
	regular variant = iota
	bold
	italic
	boldItalic
	mono
	monoBold
)

type faceKey struct {
	v    variant
	size float64
}

// GoFonts measures with the Go font family bundled in x/image. Faces are created
// lazily and cached per variant and size. It is safe for concurrent use.
type GoFonts struct {
	mu    sync.Mutex
	fonts map[variant]*opentype.Font
	faces map[faceKey]font.Face
}

// NewGoFonts parses the bundled fonts.
func NewGoFonts() (*GoFonts, error) {
	sources := map[variant][]byte{
		regular:    goregular.TTF,
		bold:       gobold.TTF,
		italic:     goitalic.TTF,
		boldItalic: gobolditalic.TTF,
		mono:       gomono.TTF,
		monoBold:   gomonobold.TTF,
	}
	g := &GoFonts{
		fonts: make(map[variant]*opentype.Font, len(sources)),
		faces: make(map[faceKey]font.Face),
	}
	for v, ttf := range sources {
		f, err := opentype.Parse(ttf)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing go font variant %d", v)
		}
		g.fonts[v] = f
	}
	return g, nil
}

func pickVariant(f FontSpec) variant {
	switch {
	case f.Mono() && f.Bold:
		return monoBold
	case f.Mono():
		return mono
	case f.Bold && f.Italic:
		return boldItalic
	case f.Bold:
		return bold
	case f.Italic:
		return italic
	}
	return regular
}

// Face returns the face for f. Faces are not safe for concurrent use; callers
// drawing from several goroutines must serialize.
func (g *GoFonts) Face(f FontSpec) font.Face {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.face(f)
}

func (g *GoFonts) face(f FontSpec) font.Face {
	key := faceKey{v: pickVariant(f), size: f.Size}
	if face, ok := g.faces[key]; ok {
		return face
	}
	face, err := opentype.NewFace(g.fonts[key.v], &opentype.FaceOptions{
		Size:    f.Size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		// only fails for invalid sizes
		face, _ = opentype.NewFace(g.fonts[key.v], &opentype.FaceOptions{Size: 1, DPI: 72})
	}
	g.faces[key] = face
	return face
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func (g *GoFonts) Measure(s string, f FontSpec) float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return toFloat(font.MeasureString(g.face(f), s))
}

func (g *GoFonts) Ascent(f FontSpec) float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return toFloat(g.face(f).Metrics().Ascent)
}

func (g *GoFonts) Descent(f FontSpec) float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return toFloat(g.face(f).Metrics().Descent)
}

func (g *GoFonts) Linespace(f FontSpec) float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return toFloat(g.face(f).Metrics().Height)
}

// Default returns GoFonts, or Approx if the bundled fonts cannot be parsed.
func Default() Metrics {
	g, err := NewGoFonts()
	if err != nil {
		return Approx{}
	}
	return g
}
