package paint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webdoc/pkg/css"
	"webdoc/pkg/html"
	"webdoc/pkg/layout"
	"webdoc/pkg/text"
)

func build(t *testing.T, markup string, focus string) []Command {
	t.Helper()
	doc := html.Parse(markup)
	styles := css.ApplyStylesToDocument(doc, nil)
	engine := layout.NewLayoutEngine(layout.DefaultConfig(), text.Approx{})
	if focus != "" {
		doc.Root.Walk(func(n *html.Node) {
			if n.IsElement(focus) {
				engine.SetFocus(n)
			}
		})
	}
	return Build(engine.Layout(doc.Root, styles))
}

func ofType[T Command](cmds []Command) []T {
	var out []T
	for _, c := range cmds {
		if v, ok := c.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func TestRect(t *testing.T) {
	r := Rect{Left: 10, Top: 10, Right: 20, Bottom: 30}
	assert.True(t, r.ContainsPoint(10, 10))
	assert.True(t, r.ContainsPoint(19.9, 29.9))
	assert.False(t, r.ContainsPoint(20, 15))
	assert.False(t, r.ContainsPoint(15, 30))
	assert.Equal(t, 10.0, r.Width())
	assert.Equal(t, 20.0, r.Height())

	assert.True(t, r.Intersects(Rect{Left: 15, Top: 0, Right: 40, Bottom: 12}))
	assert.False(t, r.Intersects(Rect{Left: 20, Top: 10, Right: 30, Bottom: 30}))
	assert.Equal(t, Rect{Left: 15, Top: 5, Right: 25, Bottom: 25}, r.Offset(5, -5))
}

func TestBuild_Text(t *testing.T) {
	cmds := build(t, "<p>hello world</p>", "")
	require.Len(t, cmds, 2)
	first := cmds[0].(DrawText)
	assert.Equal(t, "hello", first.Text)
	assert.InDelta(t, 13.0, first.Rect.Left, 1e-9)
	assert.InDelta(t, 48.0, first.Rect.Width(), 1e-9)
	assert.Equal(t, css.Black, first.Color)
	assert.Equal(t, 16.0, first.Font.Size)
	assert.Equal(t, "world", cmds[1].(DrawText).Text)
}

func TestBuild_BackgroundBeforeContent(t *testing.T) {
	cmds := build(t, "<pre>code</pre>", "")
	require.NotEmpty(t, cmds)
	rects := ofType[DrawRect](cmds)
	require.NotEmpty(t, rects)
	assert.IsType(t, DrawRect{}, cmds[0])
	assert.IsType(t, DrawText{}, cmds[len(cmds)-1])
	assert.Equal(t, css.ParseColor("gray").RGBA, rects[0].Color)
}

func TestBuild_TransparentBackground(t *testing.T) {
	doc := html.Parse("<div>x</div>")
	styles := css.ApplyStylesToDocument(doc, css.ParseStylesheet("div { background-color: transparent; }").Rules)
	engine := layout.NewLayoutEngine(layout.DefaultConfig(), text.Approx{})
	cmds := Build(engine.Layout(doc.Root, styles))
	assert.Empty(t, ofType[DrawRect](cmds))
	assert.Len(t, ofType[DrawText](cmds), 1)
}

func TestBuild_FocusedInput(t *testing.T) {
	cmds := build(t, `<form><input name="q" value="hi"></form>`, "input")
	require.Len(t, cmds, 3)

	bg := cmds[0].(DrawRect)
	assert.Equal(t, css.ParseColor("lightblue").RGBA, bg.Color)
	assert.Equal(t, 200.0, bg.Rect.Width())

	label := cmds[1].(DrawText)
	assert.Equal(t, "hi", label.Text)

	caret := cmds[2].(DrawLine)
	assert.Equal(t, label.Rect.Right, caret.Rect.Left)
	assert.Equal(t, caret.Rect.Left, caret.Rect.Right)
	assert.Equal(t, bg.Rect.Top, caret.Rect.Top)
	assert.Equal(t, bg.Rect.Bottom, caret.Rect.Bottom)
}

func TestBuild_UnfocusedEmptyInput(t *testing.T) {
	cmds := build(t, `<form><input name="q"></form>`, "")
	require.Len(t, cmds, 1)
	assert.IsType(t, DrawRect{}, cmds[0])
}

func TestBuild_AtomicBlocksDoNotRepaint(t *testing.T) {
	// the input gets a block of its own next to the paragraph
	cmds := build(t, `<div><p>x</p><input value="v"></div>`, "")
	var blue int
	for _, r := range ofType[DrawRect](cmds) {
		if r.Color == css.ParseColor("lightblue").RGBA {
			blue++
		}
	}
	assert.Equal(t, 1, blue)
	assert.Len(t, ofType[DrawText](cmds), 2)
}

func TestVisible(t *testing.T) {
	cmds := []Command{
		DrawRect{Rect: Rect{Top: 0, Bottom: 10}},
		DrawRect{Rect: Rect{Top: 100, Bottom: 120}},
		DrawRect{Rect: Rect{Top: 700, Bottom: 720}},
	}
	got := Visible(cmds, 50, 600)
	require.Len(t, got, 1)
	assert.Equal(t, cmds[1], got[0])

	assert.Len(t, Visible(cmds, 0, 1000), 3)
}
