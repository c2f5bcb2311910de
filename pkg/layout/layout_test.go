package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webdoc/pkg/css"
	"webdoc/pkg/html"
	"webdoc/pkg/text"
)

const eps = 1e-6

func layoutMarkup(t *testing.T, cfg Config, markup, sheet string) (*DocumentLayout, *html.Document) {
	t.Helper()
	doc := html.Parse(markup)
	styles := css.ApplyStylesToDocument(doc, css.ParseStylesheet(sheet).Rules)
	engine := NewLayoutEngine(cfg, text.Approx{})
	return engine.Layout(doc.Root, styles), doc
}

func lines(root Node) []*LineLayout {
	var out []*LineLayout
	Walk(root, func(n Node) {
		if l, ok := n.(*LineLayout); ok && len(l.Runs) > 0 {
			out = append(out, l)
		}
	})
	return out
}

func words(l *LineLayout) []string {
	var out []string
	for _, r := range l.Runs {
		if t, ok := r.(*TextLayout); ok {
			out = append(out, t.Word)
		}
	}
	return out
}

func findElement(root *html.Node, tag string) *html.Node {
	var found *html.Node
	root.Walk(func(n *html.Node) {
		if found == nil && n.IsElement(tag) {
			found = n
		}
	})
	return found
}

func TestLayout_DocumentGeometry(t *testing.T) {
	doc, _ := layoutMarkup(t, DefaultConfig(), "<p>hello world</p>", "")
	assert.Equal(t, 13.0, doc.X)
	assert.Equal(t, 18.0, doc.Y)
	assert.Equal(t, 774.0, doc.Width)
	require.NotNil(t, doc.Child)
	assert.Equal(t, doc.Width, doc.Child.Width)
	assert.InDelta(t, 20.0, doc.Height, eps)
}

func TestLayout_WordPositions(t *testing.T) {
	doc, _ := layoutMarkup(t, DefaultConfig(), "<p>hello world</p>", "")
	ls := lines(doc)
	require.Len(t, ls, 1)
	require.Len(t, ls[0].Runs, 2)

	hello := ls[0].Runs[0].(*TextLayout)
	world := ls[0].Runs[1].(*TextLayout)
	assert.Equal(t, "hello", hello.Word)
	assert.InDelta(t, 13.0, hello.X, eps)
	assert.InDelta(t, 48.0, hello.Width, eps)
	// previous x + previous width + one space
	assert.InDelta(t, 13.0+48.0+9.6, world.X, eps)
	assert.Equal(t, Run(hello), world.Previous)
	assert.Nil(t, hello.Previous)

	// baseline sits 1.25 ascents below the line top
	assert.InDelta(t, 18.0+16.0-12.8, hello.Y, eps)
	assert.InDelta(t, 20.0, ls[0].Height, eps)
}

func TestLayout_LineBreaking(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 126 // 100px of content

	tests := []struct {
		name   string
		markup string
		want   [][]string
	}{
		{"fits", "<p>aaaa aaaa</p>", [][]string{{"aaaa", "aaaa"}}},
		{"wraps", "<p>aaaa aaaa aaaa</p>", [][]string{{"aaaa", "aaaa"}, {"aaaa"}}},
		{"over-wide word alone", "<p>aaaaaaaaaaaaaaaaaaaa</p>", [][]string{{"aaaaaaaaaaaaaaaaaaaa"}}},
		{"over-wide word after text", "<p>x aaaaaaaaaaaaaaaaaaaa y</p>",
			[][]string{{"x"}, {"aaaaaaaaaaaaaaaaaaaa"}, {"y"}}},
		{"whitespace collapses", "<p>  a \n\t b  </p>", [][]string{{"a", "b"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, _ := layoutMarkup(t, cfg, tt.markup, "")
			var got [][]string
			for _, l := range lines(doc) {
				got = append(got, words(l))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLayout_WrappedLinesStack(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 126
	doc, _ := layoutMarkup(t, cfg, "<p>aaaa aaaa aaaa</p>", "")
	ls := lines(doc)
	require.Len(t, ls, 2)
	assert.InDelta(t, 18.0, ls[0].Y, eps)
	assert.InDelta(t, 38.0, ls[1].Y, eps)
	assert.Equal(t, ls[0], ls[1].Previous)
	assert.InDelta(t, 13.0, ls[1].Runs[0].Bounds().X, eps)
	assert.InDelta(t, 40.0, doc.Height, eps)
}

func TestLayout_Br(t *testing.T) {
	doc, _ := layoutMarkup(t, DefaultConfig(), "<p>one<br>two</p>", "")
	ls := lines(doc)
	require.Len(t, ls, 2)
	assert.Equal(t, []string{"one"}, words(ls[0]))
	assert.Equal(t, []string{"two"}, words(ls[1]))
}

func TestLayout_SharedBaseline(t *testing.T) {
	doc, _ := layoutMarkup(t, DefaultConfig(), "<p>a <b>B</b></p>", "b { font-size: 32px; }")
	ls := lines(doc)
	require.Len(t, ls, 1)
	small := ls[0].Runs[0].(*TextLayout)
	big := ls[0].Runs[1].(*TextLayout)

	assert.True(t, big.Spec.Bold)
	assert.Equal(t, 32.0, big.Spec.Size)

	baseline := 18.0 + 1.25*25.6
	assert.InDelta(t, baseline-12.8, small.Y, eps)
	assert.InDelta(t, baseline-25.6, big.Y, eps)
	assert.InDelta(t, small.Y+small.Ascent(), big.Y+big.Ascent(), eps)
	assert.InDelta(t, 1.25*(25.6+6.4), ls[0].Height, eps)
}

func TestLayout_BlocksStack(t *testing.T) {
	doc, dom := layoutMarkup(t, DefaultConfig(), "<div><p>one</p><p>two</p></div><div></div>", "")

	var blocks []*BlockLayout
	Walk(doc, func(n Node) {
		if b, ok := n.(*BlockLayout); ok && b.Node.IsElement("p") {
			blocks = append(blocks, b)
		}
	})
	require.Len(t, blocks, 2)
	assert.InDelta(t, 18.0, blocks[0].Y, eps)
	assert.InDelta(t, 38.0, blocks[1].Y, eps)
	assert.Equal(t, blocks[0], blocks[1].Previous)
	assert.InDelta(t, 40.0, doc.Height, eps)

	var divs []*BlockLayout
	Walk(doc, func(n Node) {
		if b, ok := n.(*BlockLayout); ok && b.Node.IsElement("div") {
			divs = append(divs, b)
		}
	})
	require.Len(t, divs, 2)
	assert.Equal(t, findElement(dom.Root, "div"), divs[0].Node)
	assert.InDelta(t, 58.0, divs[1].Y, eps)
	assert.Zero(t, divs[1].Height)
}

func TestLayout_HiddenElements(t *testing.T) {
	markup := "<html><head><title>Title</title><style>p { color: red; }</style></head><body><p>shown</p></body></html>"
	doc, _ := layoutMarkup(t, DefaultConfig(), markup, "")
	var got []string
	for _, l := range lines(doc) {
		got = append(got, words(l)...)
	}
	assert.Equal(t, []string{"shown"}, got)
}

func TestLayout_TextColorAndBackground(t *testing.T) {
	doc, _ := layoutMarkup(t, DefaultConfig(), `<pre>code</pre><p><a href="/x">link</a></p>`, "")
	var pre *BlockLayout
	var link *TextLayout
	Walk(doc, func(n Node) {
		switch v := n.(type) {
		case *BlockLayout:
			if v.Node.IsElement("pre") {
				pre = v
			}
		case *TextLayout:
			if v.Word == "link" {
				link = v
			}
		}
	})
	require.NotNil(t, pre)
	require.NotNil(t, link)
	assert.True(t, pre.Background.Concrete())
	assert.Equal(t, css.ParseColor("blue").RGBA, link.Color)
}

func TestLayout_FormControls(t *testing.T) {
	cfg := DefaultConfig()
	dom := html.Parse(`<form><input name="q" value="hi"><button>Go <b>now</b></button></form>`)
	styles := css.ApplyStylesToDocument(dom, nil)
	engine := NewLayoutEngine(cfg, text.Approx{})
	input := findElement(dom.Root, "input")
	engine.SetFocus(input)
	doc := engine.Layout(dom.Root, styles)

	ls := lines(doc)
	require.Len(t, ls, 1)
	require.Len(t, ls[0].Runs, 2)

	in := ls[0].Runs[0].(*InputLayout)
	btn := ls[0].Runs[1].(*InputLayout)
	assert.Equal(t, "hi", in.Text)
	assert.True(t, in.Focused)
	assert.Equal(t, 200.0, in.Width)
	assert.InDelta(t, 2*9.6, in.TextWidth, eps)
	assert.True(t, in.Background.Concrete())

	// a button with mixed content shows no text
	assert.Equal(t, "", btn.Text)
	assert.False(t, btn.Focused)
	assert.InDelta(t, 13.0+200.0+9.6, btn.X, eps)

	// children of a button are not laid out as words
	assert.Empty(t, words(ls[0]))
}

func TestLayout_ButtonText(t *testing.T) {
	doc, _ := layoutMarkup(t, DefaultConfig(), `<form><button>Submit</button></form>`, "")
	ls := lines(doc)
	require.Len(t, ls, 1)
	assert.Equal(t, "Submit", ls[0].Runs[0].(*InputLayout).Text)
}

func TestLayout_InputsWrap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 300
	doc, _ := layoutMarkup(t, cfg, `<form><input><input></form>`, "")
	ls := lines(doc)
	require.Len(t, ls, 2)
	assert.InDelta(t, 13.0, ls[1].Runs[0].Bounds().X, eps)
}

func TestHitTest(t *testing.T) {
	doc, dom := layoutMarkup(t, DefaultConfig(), `<p>hello <a href="/next">world</a></p>`, "")
	ls := lines(doc)
	require.Len(t, ls, 1)
	world := ls[0].Runs[1].(*TextLayout)

	hit := HitTest(doc, world.X+1, world.Y+1)
	require.NotNil(t, hit)
	assert.Equal(t, world, hit)
	assert.Equal(t, findElement(dom.Root, "a"), hit.DOM().Closest("a"))

	// between the words only the line is hit
	gap := HitTest(doc, world.X-2, world.Y+1)
	assert.Equal(t, ls[0], gap)

	assert.Nil(t, HitTest(doc, 1, 1))

	run := HitRun(doc, world.X+1, world.Y+1)
	assert.Equal(t, Run(world), run)
	assert.Nil(t, HitRun(doc, world.X-2, world.Y+1))
}

func TestDump(t *testing.T) {
	doc, _ := layoutMarkup(t, DefaultConfig(), "<p>hi</p>", "")
	out := Dump(doc)
	assert.Contains(t, out, "DocumentLayout x=13.0 y=18.0 w=774.0")
	assert.Contains(t, out, "BlockLayout[<p>]")
	assert.Contains(t, out, `TextLayout "hi"`)
	assert.Equal(t, 1, strings.Count(out, "TextLayout"))
}

func TestFlatten(t *testing.T) {
	doc, _ := layoutMarkup(t, DefaultConfig(), "<p>a b</p>", "")
	nodes := Flatten(doc)
	// document, html, body, p, line, two words
	require.Len(t, nodes, 7)
	assert.Equal(t, Node(doc), nodes[0])
	assert.IsType(t, &TextLayout{}, nodes[6])
}
