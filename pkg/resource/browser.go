package resource

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"webdoc/pkg/paint"
	"webdoc/pkg/render"
	"webdoc/pkg/text"
	stdnet "webdoc/std/net"
)

// Browser owns the tabs of one window and routes input events to the chrome or the
// active tab. Window coordinates have the chrome on top and the page below it.
type Browser struct {
	fetcher Fetcher
	metrics text.Metrics
	cfg     TabConfig
	policy  stdnet.FilePathPolicy
	log     logrus.FieldLogger

	tabs   []*Tab
	active *Tab
	chrome *Chrome
	height float64
}

// NewBrowser creates a browser for a window of cfg.Layout.Width by cfg.Height pixels.
func NewBrowser(f Fetcher, metrics text.Metrics, cfg TabConfig) *Browser {
	b := &Browser{
		fetcher: f,
		metrics: metrics,
		cfg:     cfg,
		log:     logrus.StandardLogger(),
		height:  cfg.Height,
	}
	b.chrome = newChrome(b, metrics, cfg.Layout.Width)
	return b
}

func (b *Browser) SetLogger(log logrus.FieldLogger) {
	b.log = log
	for _, t := range b.tabs {
		t.SetLogger(log)
	}
}

func (b *Browser) SetFilePathPolicy(p stdnet.FilePathPolicy) {
	b.policy = p
}

func (b *Browser) Tabs() []*Tab    { return b.tabs }
func (b *Browser) Active() *Tab    { return b.active }
func (b *Browser) Chrome() *Chrome { return b.chrome }

func (b *Browser) tabConfig() TabConfig {
	cfg := b.cfg
	cfg.Height = b.height - b.chrome.Bottom()
	return cfg
}

// NewTab opens a tab, makes it active and loads u in it. The tab is kept even if the
// load fails.
func (b *Browser) NewTab(u *stdnet.URL) error {
	t := NewTab(b.fetcher, b.metrics, b.tabConfig())
	t.SetLogger(b.log)
	b.tabs = append(b.tabs, t)
	b.active = t
	return t.Load(u)
}

// NewTabURL parses raw and opens it in a new tab.
func (b *Browser) NewTabURL(raw string) error {
	u, err := stdnet.ParseURLWithPolicy(raw, b.policy)
	if err != nil {
		return err
	}
	return b.NewTab(u)
}

func (b *Browser) loadActive(raw string) error {
	u, err := stdnet.ParseURLWithPolicy(raw, b.policy)
	if err != nil {
		return errors.Wrapf(err, "address %q", raw)
	}
	if b.active == nil {
		return b.NewTab(u)
	}
	return b.active.Load(u)
}

// HandleClick dispatches a click in window coordinates.
func (b *Browser) HandleClick(x, y float64) error {
	if y < b.chrome.Bottom() {
		return b.chrome.click(x, y)
	}
	if b.active == nil {
		return nil
	}
	return b.active.Click(x, y-b.chrome.Bottom())
}

// HandleKey types a printable ASCII character into the focused field.
func (b *Browser) HandleKey(ch rune) {
	if ch < 0x20 || ch >= 0x7f {
		return
	}
	if b.chrome.keypress(ch) {
		return
	}
	if b.active != nil {
		b.active.Keypress(ch)
	}
}

func (b *Browser) HandleBackspace() {
	if b.chrome.backspace() {
		return
	}
	if b.active != nil {
		b.active.Backspace()
	}
}

func (b *Browser) HandleEnter() error {
	if handled, err := b.chrome.enter(); handled {
		return err
	}
	if b.active != nil {
		return b.active.Enter()
	}
	return nil
}

func (b *Browser) ScrollDown() {
	if b.active != nil {
		b.active.ScrollDown()
	}
}

func (b *Browser) ScrollUp() {
	if b.active != nil {
		b.active.ScrollUp()
	}
}

// Resize adapts the chrome and every tab to a new window size.
func (b *Browser) Resize(width, height float64) {
	b.cfg.Layout.Width = width
	b.height = height
	b.chrome.resize(width)
	for _, t := range b.tabs {
		t.Resize(width, height-b.chrome.Bottom())
	}
}

// DisplayList returns everything visible in the window, in window coordinates: the
// active page shifted below the chrome, then the chrome itself.
func (b *Browser) DisplayList() []paint.Command {
	var cmds []paint.Command
	if t := b.active; t != nil {
		dy := b.chrome.Bottom() - t.Scroll()
		for _, c := range t.Visible() {
			cmds = append(cmds, offset(c, dy))
		}
	}
	return append(cmds, b.chrome.Paint()...)
}

func offset(c paint.Command, dy float64) paint.Command {
	switch v := c.(type) {
	case paint.DrawText:
		v.Rect = v.Rect.Offset(0, dy)
		return v
	case paint.DrawRect:
		v.Rect = v.Rect.Offset(0, dy)
		return v
	case paint.DrawLine:
		v.Rect = v.Rect.Offset(0, dy)
		return v
	case paint.DrawOutline:
		v.Rect = v.Rect.Offset(0, dy)
		return v
	}
	return c
}

// Draw paints the window onto r.
func (b *Browser) Draw(r *render.Renderer) {
	r.Clear()
	if t := b.active; t != nil {
		r.Draw(t.Visible(), b.chrome.Bottom()-t.Scroll())
		if doc := t.Document(); doc != nil {
			r.DrawScrollbar(t.Scroll(), doc.Height+2*b.cfg.Layout.VStep, b.chrome.Bottom(), t.Height())
		}
	}
	r.Draw(b.chrome.Paint(), 0)
}
