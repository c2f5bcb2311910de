package layout

import (
	"image/color"

	"webdoc/pkg/css"
	"webdoc/pkg/html"
	"webdoc/pkg/text"
)

// Box is a rectangle in document coordinates.
type Box struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func (b Box) Bounds() Box { return b }

// Contains reports whether (x, y) lies inside b. The right and bottom edges are exclusive.
func (b Box) Contains(x, y float64) bool {
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}

// Node is any element of the layout tree.
type Node interface {
	Bounds() Box
	DOM() *html.Node
	Kids() []Node
}

// Run is a leaf placed on a line: a word or a form control.
type Run interface {
	Node
	Font() text.FontSpec
	ascentDescent() (float64, float64)
	place(x, y float64)
}

// DocumentLayout is the root. It holds the page margins and a single block for the root element.
type DocumentLayout struct {
	Box
	Node  *html.Node
	Child *BlockLayout
}

func (d *DocumentLayout) DOM() *html.Node { return d.Node }

func (d *DocumentLayout) Kids() []Node {
	if d.Child == nil {
		return nil
	}
	return []Node{d.Child}
}

// BlockLayout mirrors one DOM node. Its children are either BlockLayouts or LineLayouts.
type BlockLayout struct {
	Box
	Node       *html.Node
	Previous   *BlockLayout
	Children   []Node
	Background css.Color

	cursorX float64
}

func (b *BlockLayout) DOM() *html.Node { return b.Node }
func (b *BlockLayout) Kids() []Node    { return b.Children }

// Atomic reports whether the block wraps a form control that paints itself.
func (b *BlockLayout) Atomic() bool {
	return isFormControl(b.Node)
}

// LineLayout is one line of inline content.
type LineLayout struct {
	Box
	Node       *html.Node
	Previous   *LineLayout
	Runs       []Run
	Background css.Color
}

func (l *LineLayout) DOM() *html.Node { return l.Node }

func (l *LineLayout) Kids() []Node {
	kids := make([]Node, len(l.Runs))
	for i, r := range l.Runs {
		kids[i] = r
	}
	return kids
}

// Atomic reports whether the line belongs to a form control block.
func (l *LineLayout) Atomic() bool {
	return isFormControl(l.Node)
}

// TextLayout is a single word.
type TextLayout struct {
	Box
	Node     *html.Node
	Word     string
	Spec     text.FontSpec
	Color    color.RGBA
	Previous Run

	ascent, descent float64
}

func (t *TextLayout) DOM() *html.Node                   { return t.Node }
func (t *TextLayout) Kids() []Node                      { return nil }
func (t *TextLayout) Font() text.FontSpec               { return t.Spec }
func (t *TextLayout) ascentDescent() (float64, float64) { return t.ascent, t.descent }
func (t *TextLayout) place(x, y float64)                { t.X, t.Y = x, y }

// Ascent is the distance from the top of the run to its baseline.
func (t *TextLayout) Ascent() float64 { return t.ascent }

// InputLayout is a fixed-width input or button.
type InputLayout struct {
	Box
	Node       *html.Node
	Text       string
	Spec       text.FontSpec
	Color      color.RGBA
	Background css.Color
	Focused    bool
	TextWidth  float64
	Previous   Run

	ascent, descent float64
}

func (in *InputLayout) DOM() *html.Node                   { return in.Node }
func (in *InputLayout) Kids() []Node                      { return nil }
func (in *InputLayout) Font() text.FontSpec               { return in.Spec }
func (in *InputLayout) ascentDescent() (float64, float64) { return in.ascent, in.descent }
func (in *InputLayout) place(x, y float64)                { in.X, in.Y = x, y }

// Ascent is the distance from the top of the run to its baseline.
func (in *InputLayout) Ascent() float64 { return in.ascent }

// Walk visits n and its descendants in pre-order.
func Walk(n Node, fn func(Node)) {
	fn(n)
	for _, k := range n.Kids() {
		Walk(k, fn)
	}
}
