package layout

import (
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html/atom"

	"webdoc/pkg/css"
	"webdoc/pkg/html"
	"webdoc/pkg/text"
)

// Config holds the page geometry.
type Config struct {
	Width      float64 // viewport width
	HStep      float64 // left/right page margin
	VStep      float64 // top page margin
	InputWidth float64
}

func DefaultConfig() Config {
	return Config{Width: 800, HStep: 13, VStep: 18, InputWidth: 200}
}

var blockElements = map[atom.Atom]bool{
	atom.Html: true, atom.Body: true, atom.Article: true, atom.Section: true, atom.Nav: true,
	atom.Aside: true, atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true,
	atom.H6: true, atom.Hgroup: true, atom.Header: true, atom.Footer: true, atom.Address: true,
	atom.P: true, atom.Hr: true, atom.Pre: true, atom.Blockquote: true, atom.Ol: true, atom.Ul: true,
	atom.Menu: true, atom.Li: true, atom.Dl: true, atom.Dt: true, atom.Dd: true, atom.Figure: true,
	atom.Figcaption: true, atom.Main: true, atom.Div: true, atom.Table: true, atom.Form: true,
	atom.Fieldset: true, atom.Legend: true, atom.Details: true, atom.Summary: true,
}

// hidden elements take part in block stacking but contribute no inline content
var hiddenElements = map[atom.Atom]bool{
	atom.Head: true, atom.Title: true, atom.Script: true, atom.Style: true,
}

func tagAtom(n *html.Node) atom.Atom {
	if n == nil || n.Type != html.ElementNode {
		return 0
	}
	return atom.Lookup([]byte(n.TagName))
}

func isFormControl(n *html.Node) bool {
	a := tagAtom(n)
	return a == atom.Input || a == atom.Button
}

type layoutMode int

const (
	blockMode layoutMode = iota
	inlineMode
)

func modeOf(n *html.Node) layoutMode {
	if n.Type == html.TextNode {
		return inlineMode
	}
	for _, c := range n.Children {
		if blockElements[tagAtom(c)] {
			return blockMode
		}
	}
	if len(n.Children) > 0 || tagAtom(n) == atom.Input {
		return inlineMode
	}
	return blockMode
}

type LayoutEngine struct {
	cfg     Config
	metrics text.Metrics
	styles  css.StyleMap
	focus   *html.Node
	log     logrus.FieldLogger

	blocks, lines int
}

func NewLayoutEngine(cfg Config, metrics text.Metrics) *LayoutEngine {
	return &LayoutEngine{cfg: cfg, metrics: metrics, log: logrus.StandardLogger()}
}

func (le *LayoutEngine) SetLogger(log logrus.FieldLogger) {
	le.log = log
}

// SetFocus marks the input or button that draws a caret.
func (le *LayoutEngine) SetFocus(n *html.Node) {
	le.focus = n
}

// SetWidth changes the viewport width used by the next Layout call.
func (le *LayoutEngine) SetWidth(w float64) {
	le.cfg.Width = w
}

func (le *LayoutEngine) Config() Config {
	return le.cfg
}

// Layout builds a fresh layout tree for root.
func (le *LayoutEngine) Layout(root *html.Node, styles css.StyleMap) *DocumentLayout {
	le.styles = styles
	le.blocks, le.lines = 0, 0

	doc := &DocumentLayout{Node: root}
	doc.X = le.cfg.HStep
	doc.Y = le.cfg.VStep
	doc.Width = le.cfg.Width - 2*le.cfg.HStep

	doc.Child = &BlockLayout{Node: root}
	le.layoutBlock(doc.Child, doc.Box)
	doc.Height = doc.Child.Height

	le.log.WithFields(logrus.Fields{
		"blocks": le.blocks,
		"lines":  le.lines,
		"height": doc.Height,
	}).Debug("layout complete")
	return doc
}

func (le *LayoutEngine) fontFor(n *html.Node) (text.FontSpec, *css.Style) {
	s := le.styles.Of(n)
	return text.FontSpec{Size: s.FontSize, Bold: s.Bold(), Italic: s.Italic(), Family: s.FontFamily}, s
}

func (le *LayoutEngine) layoutBlock(b *BlockLayout, parent Box) {
	le.blocks++
	b.X = parent.X
	b.Width = parent.Width
	if b.Previous != nil {
		b.Y = b.Previous.Y + b.Previous.Height
	} else {
		b.Y = parent.Y
	}
	if b.Node.Type == html.ElementNode {
		b.Background = le.styles.Of(b.Node).BackgroundColor
	}

	if modeOf(b.Node) == blockMode {
		var previous *BlockLayout
		for _, c := range b.Node.Children {
			child := &BlockLayout{Node: c, Previous: previous}
			le.layoutBlock(child, b.Box)
			b.Children = append(b.Children, child)
			previous = child
		}
	} else {
		b.cursorX = 0
		le.newLine(b)
		le.recurse(b, b.Node)
		for _, c := range b.Children {
			le.layoutLine(c.(*LineLayout), b)
		}
	}

	b.Height = 0
	for _, c := range b.Children {
		b.Height += c.Bounds().Height
	}
}

func (le *LayoutEngine) recurse(b *BlockLayout, n *html.Node) {
	if n.Type == html.TextNode {
		for _, word := range strings.Fields(n.Text) {
			le.word(b, n, word)
		}
		return
	}
	a := tagAtom(n)
	switch {
	case hiddenElements[a]:
		return
	case a == atom.Br:
		le.newLine(b)
	case a == atom.Input || a == atom.Button:
		le.input(b, n)
		return
	}
	for _, c := range n.Children {
		le.recurse(b, c)
	}
}

func (le *LayoutEngine) newLine(b *BlockLayout) {
	le.lines++
	b.cursorX = 0
	line := &LineLayout{Node: b.Node, Background: b.Background}
	if n := len(b.Children); n > 0 {
		line.Previous = b.Children[n-1].(*LineLayout)
	}
	b.Children = append(b.Children, line)
}

// currentLine returns the line a run of width w goes on, starting a new one when
// w does not fit. A run that is wider than the block sits alone on its line.
func (le *LayoutEngine) currentLine(b *BlockLayout, w float64) *LineLayout {
	line := b.Children[len(b.Children)-1].(*LineLayout)
	if b.cursorX+w > b.Width && len(line.Runs) > 0 {
		le.newLine(b)
		line = b.Children[len(b.Children)-1].(*LineLayout)
	}
	return line
}

func lastRun(line *LineLayout) Run {
	if len(line.Runs) == 0 {
		return nil
	}
	return line.Runs[len(line.Runs)-1]
}

func (le *LayoutEngine) word(b *BlockLayout, n *html.Node, word string) {
	font, style := le.fontFor(n)
	w := le.metrics.Measure(word, font)
	line := le.currentLine(b, w)
	run := &TextLayout{
		Node:     n,
		Word:     word,
		Spec:     font,
		Color:    style.TextColor(),
		Previous: lastRun(line),
		ascent:   le.metrics.Ascent(font),
		descent:  le.metrics.Descent(font),
	}
	run.Width = w
	run.Height = le.metrics.Linespace(font)
	line.Runs = append(line.Runs, run)
	b.cursorX += w + le.metrics.Measure(" ", font)
}

func (le *LayoutEngine) input(b *BlockLayout, n *html.Node) {
	font, style := le.fontFor(n)
	w := le.cfg.InputWidth
	line := le.currentLine(b, w)
	run := &InputLayout{
		Node:       n,
		Text:       controlText(n),
		Spec:       font,
		Color:      style.TextColor(),
		Background: style.BackgroundColor,
		Focused:    n == le.focus,
		Previous:   lastRun(line),
		ascent:     le.metrics.Ascent(font),
		descent:    le.metrics.Descent(font),
	}
	run.Width = w
	run.Height = le.metrics.Linespace(font)
	run.TextWidth = le.metrics.Measure(run.Text, font)
	line.Runs = append(line.Runs, run)
	b.cursorX += w + le.metrics.Measure(" ", font)
}

// controlText is the value of an input, or the text of a button whose only child is text.
func controlText(n *html.Node) string {
	if tagAtom(n) == atom.Input {
		v, _ := n.GetAttribute("value")
		return v
	}
	if len(n.Children) == 1 && n.Children[0].Type == html.TextNode {
		return n.Children[0].Text
	}
	return ""
}

// layoutLine places the runs of a line horizontally, then aligns them on a shared baseline.
func (le *LayoutEngine) layoutLine(line *LineLayout, b *BlockLayout) {
	line.X = b.X
	line.Width = b.Width
	if line.Previous != nil {
		line.Y = line.Previous.Y + line.Previous.Height
	} else {
		line.Y = b.Y
	}
	if len(line.Runs) == 0 {
		line.Height = 0
		return
	}

	var maxAscent, maxDescent float64
	for i, r := range line.Runs {
		x := line.X
		if i > 0 {
			prev := line.Runs[i-1]
			x = prev.Bounds().X + prev.Bounds().Width + le.metrics.Measure(" ", prev.Font())
		}
		r.place(x, 0)
		a, d := r.ascentDescent()
		if a > maxAscent {
			maxAscent = a
		}
		if d > maxDescent {
			maxDescent = d
		}
	}

	baseline := line.Y + 1.25*maxAscent
	for _, r := range line.Runs {
		a, _ := r.ascentDescent()
		r.place(r.Bounds().X, baseline-a)
	}
	line.Height = 1.25 * (maxAscent + maxDescent)
}
