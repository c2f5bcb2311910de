package resource

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"webdoc/pkg/css"
	"webdoc/pkg/html"
	"webdoc/pkg/layout"
	"webdoc/pkg/paint"
	"webdoc/pkg/text"
	stdnet "webdoc/std/net"
)

// TabConfig holds the geometry of a tab's viewport.
type TabConfig struct {
	Layout     layout.Config
	Height     float64 // visible height of the page area
	ScrollStep float64
}

func DefaultTabConfig() TabConfig {
	return TabConfig{Layout: layout.DefaultConfig(), Height: 600, ScrollStep: 100}
}

// Tab shows one page at a time and keeps its history.
type Tab struct {
	cfg     TabConfig
	fetcher Fetcher
	engine  *layout.LayoutEngine
	log     logrus.FieldLogger

	url     *stdnet.URL
	history []*stdnet.URL
	dom     *html.Document
	styles  css.StyleMap
	focus   *html.Node

	document    *layout.DocumentLayout
	displayList []paint.Command
	scroll      float64
}

func NewTab(f Fetcher, metrics text.Metrics, cfg TabConfig) *Tab {
	t := &Tab{
		cfg:     cfg,
		fetcher: f,
		engine:  layout.NewLayoutEngine(cfg.Layout, metrics),
		log:     logrus.StandardLogger(),
	}
	return t
}

func (t *Tab) SetLogger(log logrus.FieldLogger) {
	t.log = log
	t.engine.SetLogger(log)
}

func (t *Tab) URL() *stdnet.URL                 { return t.url }
func (t *Tab) DOM() *html.Document              { return t.dom }
func (t *Tab) Document() *layout.DocumentLayout { return t.document }
func (t *Tab) DisplayList() []paint.Command     { return t.displayList }
func (t *Tab) Scroll() float64                  { return t.scroll }
func (t *Tab) Height() float64                  { return t.cfg.Height }
func (t *Tab) Focus() *html.Node                { return t.focus }
func (t *Tab) History() []*stdnet.URL           { return append([]*stdnet.URL(nil), t.history...) }

// Title returns the text of the page's <title>, or its URL.
func (t *Tab) Title() string {
	if t.dom != nil {
		if title := findFirst(t.dom.Root, "title"); title != nil {
			if s := strings.TrimSpace(title.TextContent()); s != "" {
				return s
			}
		}
	}
	if t.url == nil {
		return ""
	}
	return t.url.String()
}

// Load fetches u and shows it. On failure the current page stays as it was.
func (t *Tab) Load(u *stdnet.URL) error {
	t.log.WithField("url", u.String()).Info("loading")
	resp, err := t.fetcher.Fetch(u)
	if err != nil {
		return errors.Wrapf(err, "loading %s", u)
	}
	t.show(u, resp)
	return nil
}

// show parses resp, styles and lays it out, and makes it the current page.
func (t *Tab) show(u *stdnet.URL, resp *stdnet.Response) {
	var doc *html.Document
	var linked []css.Rule
	if u.ViewSource() {
		doc = sourceDocument(resp.Text())
	} else {
		doc = html.Parse(html.DecodeEntities(resp.Text()))
		linked = fetchStylesheets(t.fetcher, u, doc.Root, t.log)
	}

	t.url = u
	t.history = append(t.history, u)
	t.dom = doc
	t.styles = css.ApplyStylesToDocument(doc, linked)
	t.focus = nil
	t.scroll = 0
	t.render()
}

// sourceDocument presents raw markup as preformatted text.
func sourceDocument(source string) *html.Document {
	root := html.NewElement("html", nil)
	body := html.NewElement("body", nil)
	pre := html.NewElement("pre", nil)
	root.AddChild(body)
	body.AddChild(pre)
	pre.AddChild(html.NewText(source))
	return &html.Document{Root: root}
}

func (t *Tab) render() {
	if t.dom == nil {
		return
	}
	t.engine.SetFocus(t.focus)
	t.document = t.engine.Layout(t.dom.Root, t.styles)
	t.displayList = paint.Build(t.document)
	t.scroll = t.clampScroll(t.scroll)
}

// GoBack returns to the previous page. It does nothing without history.
func (t *Tab) GoBack() error {
	if len(t.history) < 2 {
		return nil
	}
	saved := t.history
	back := t.history[len(t.history)-2]
	t.history = t.history[:len(t.history)-2]
	if err := t.Load(back); err != nil {
		t.history = saved
		return err
	}
	return nil
}

func (t *Tab) maxScroll() float64 {
	if t.document == nil {
		return 0
	}
	m := t.document.Height + 2*t.cfg.Layout.VStep - t.cfg.Height
	if m < 0 {
		return 0
	}
	return m
}

func (t *Tab) clampScroll(s float64) float64 {
	if s > t.maxScroll() {
		s = t.maxScroll()
	}
	if s < 0 {
		s = 0
	}
	return s
}

func (t *Tab) ScrollDown() { t.scroll = t.clampScroll(t.scroll + t.cfg.ScrollStep) }
func (t *Tab) ScrollUp()   { t.scroll = t.clampScroll(t.scroll - t.cfg.ScrollStep) }

// Resize changes the viewport and lays the page out again.
func (t *Tab) Resize(width, height float64) {
	t.cfg.Layout.Width = width
	t.cfg.Height = height
	t.engine.SetWidth(width)
	t.render()
}

// Visible returns the part of the display list inside the viewport.
func (t *Tab) Visible() []paint.Command {
	return paint.Visible(t.displayList, t.scroll, t.cfg.Height)
}

// Click handles a click at viewport coordinates. Links are followed, inputs take
// focus and buttons submit their form.
func (t *Tab) Click(x, y float64) error {
	if t.document == nil {
		return nil
	}
	y += t.scroll
	t.focus = nil
	hit := layout.HitRun(t.document, x, y)
	if hit == nil {
		t.render()
		return nil
	}
	for elt := hit.DOM(); elt != nil; elt = elt.Parent {
		switch {
		case elt.IsElement("a"):
			href, ok := elt.GetAttribute("href")
			if !ok {
				continue
			}
			u, err := t.url.Resolve(href)
			if err != nil {
				return errors.Wrapf(err, "following link %q", href)
			}
			return t.Load(u)
		case elt.IsElement("input"):
			t.focus = elt
			elt.SetAttribute("value", "")
			t.render()
			return nil
		case elt.IsElement("button"):
			return t.submitForm(elt)
		}
	}
	t.render()
	return nil
}

// Keypress appends ch to the focused input. It reports whether the key was used.
func (t *Tab) Keypress(ch rune) bool {
	if t.focus == nil || !t.focus.IsElement("input") {
		return false
	}
	v, _ := t.focus.GetAttribute("value")
	t.focus.SetAttribute("value", v+string(ch))
	t.render()
	return true
}

// Backspace deletes the last character of the focused input.
func (t *Tab) Backspace() bool {
	if t.focus == nil || !t.focus.IsElement("input") {
		return false
	}
	v, _ := t.focus.GetAttribute("value")
	if v != "" {
		_, size := utf8.DecodeLastRuneInString(v)
		t.focus.SetAttribute("value", v[:len(v)-size])
		t.render()
	}
	return true
}

// Enter submits the form of the focused input.
func (t *Tab) Enter() error {
	if t.focus == nil {
		return nil
	}
	return t.submitForm(t.focus)
}

// formBody url-encodes the named inputs of form in document order.
func formBody(form *html.Node) string {
	var parts []string
	form.Walk(func(n *html.Node) {
		if !n.IsElement("input") {
			return
		}
		name, ok := n.GetAttribute("name")
		if !ok {
			return
		}
		value, _ := n.GetAttribute("value")
		parts = append(parts, url.QueryEscape(name)+"="+url.QueryEscape(value))
	})
	return strings.Join(parts, "&")
}

func (t *Tab) submitForm(elt *html.Node) error {
	form := elt.Closest("form")
	if form == nil {
		return nil
	}
	action, _ := form.GetAttribute("action")
	u, err := t.url.Resolve(action)
	if err != nil {
		return errors.Wrapf(err, "resolving form action %q", action)
	}
	body := formBody(form)
	t.log.WithFields(logrus.Fields{"url": u.String(), "bytes": len(body)}).Info("submitting form")
	resp, err := t.fetcher.Post(u, body)
	if err != nil {
		return errors.Wrapf(err, "submitting form to %s", u)
	}
	t.show(u, resp)
	return nil
}

func findFirst(root *html.Node, tag string) *html.Node {
	var found *html.Node
	root.Walk(func(n *html.Node) {
		if found == nil && n.IsElement(tag) {
			found = n
		}
	})
	return found
}
