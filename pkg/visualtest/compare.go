package visualtest

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/pkg/errors"
)

// Result describes how two images differ.
type Result struct {
	Match           bool
	DifferentPixels int
	TotalPixels     int
	MaxDifference   int // largest per-channel difference, 0-255
	Diff            *image.RGBA
}

// Options tunes a comparison.
type Options struct {
	// Tolerance is the largest per-channel difference (0-255) still counted as equal.
	Tolerance int
	// FuzzyRadius lets a pixel match any pixel of the other image within this radius.
	FuzzyRadius int
	// MaxDifferentPercent accepts images whose share of different pixels is at most this.
	MaxDifferentPercent float64
	// KeepDiff fills Result.Diff: equal pixels in gray, different ones in red.
	KeepDiff bool
}

// Exact compares pixel for pixel.
func Exact() Options {
	return Options{}
}

func channelDiff(a, b color.Color) int {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	d := 0
	for _, pair := range [][2]uint32{{ar, br}, {ag, bg}, {ab, bb}, {aa, ba}} {
		x, y := int(pair[0]>>8), int(pair[1]>>8)
		if x-y > d {
			d = x - y
		}
		if y-x > d {
			d = y - x
		}
	}
	return d
}

// Compare compares actual against expected. Images of different size are an error.
func Compare(actual, expected image.Image, opts Options) (*Result, error) {
	bounds := actual.Bounds()
	if bounds != expected.Bounds() {
		return &Result{}, errors.Errorf("image bounds differ: actual=%v expected=%v", bounds, expected.Bounds())
	}
	res := &Result{Match: true, TotalPixels: bounds.Dx() * bounds.Dy()}
	if opts.KeepDiff {
		res.Diff = image.NewRGBA(bounds)
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			d := channelDiff(actual.At(x, y), expected.At(x, y))
			if d > res.MaxDifference {
				res.MaxDifference = d
			}
			same := d <= opts.Tolerance ||
				(opts.FuzzyRadius > 0 && matchesNearby(actual, expected, x, y, opts))
			if !same {
				res.Match = false
				res.DifferentPixels++
			}
			if res.Diff != nil {
				if same {
					g := color.GrayModel.Convert(actual.At(x, y)).(color.Gray).Y
					res.Diff.Set(x, y, color.RGBA{R: g, G: g, B: g, A: 0xff})
				} else {
					res.Diff.Set(x, y, color.RGBA{R: 0xff, A: 0xff})
				}
			}
		}
	}

	if !res.Match && opts.MaxDifferentPercent > 0 {
		pct := float64(res.DifferentPixels) / float64(res.TotalPixels) * 100
		res.Match = pct <= opts.MaxDifferentPercent
	}
	return res, nil
}

func matchesNearby(actual, expected image.Image, x, y int, opts Options) bool {
	bounds := actual.Bounds()
	c := actual.At(x, y)
	for dy := -opts.FuzzyRadius; dy <= opts.FuzzyRadius; dy++ {
		for dx := -opts.FuzzyRadius; dx <= opts.FuzzyRadius; dx++ {
			p := image.Pt(x+dx, y+dy)
			if !p.In(bounds) {
				continue
			}
			if channelDiff(c, expected.At(p.X, p.Y)) <= opts.Tolerance {
				return true
			}
		}
	}
	return false
}

// LoadPNG decodes the PNG file at path.
func LoadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening image")
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}
	return img, nil
}

// SavePNG writes img to path.
func SavePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating image")
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return errors.Wrapf(err, "encoding %s", path)
	}
	return f.Close()
}

// CompareFiles compares two PNG files.
func CompareFiles(actualPath, expectedPath string, opts Options) (*Result, error) {
	actual, err := LoadPNG(actualPath)
	if err != nil {
		return nil, err
	}
	expected, err := LoadPNG(expectedPath)
	if err != nil {
		return nil, err
	}
	return Compare(actual, expected, opts)
}
