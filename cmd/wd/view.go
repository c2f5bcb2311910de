package main

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"webdoc/pkg/render"
	"webdoc/pkg/resource"
	"webdoc/pkg/text"
)

// pageView shows the browser's window image and forwards input events to it.
type pageView struct {
	widget.BaseWidget

	window  fyne.Window
	browser *resource.Browser
	fonts   *text.GoFonts
	status  *widget.Label
	img     *canvas.Image

	width, height int
}

var (
	_ fyne.Tappable   = (*pageView)(nil)
	_ fyne.Focusable  = (*pageView)(nil)
	_ fyne.Scrollable = (*pageView)(nil)
)

func newPageView(w fyne.Window, b *resource.Browser, fonts *text.GoFonts, status *widget.Label, width, height int) *pageView {
	v := &pageView{window: w, browser: b, fonts: fonts, status: status, width: width, height: height}
	v.img = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, width, height)))
	v.img.FillMode = canvas.ImageFillOriginal
	v.ExtendBaseWidget(v)
	return v
}

func (v *pageView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.img)
}

func (v *pageView) MinSize() fyne.Size {
	return fyne.NewSize(200, 150)
}

func (v *pageView) Resize(size fyne.Size) {
	v.BaseWidget.Resize(size)
	w, h := int(size.Width), int(size.Height)
	if w <= 0 || h <= 0 || (w == v.width && h == v.height) {
		return
	}
	v.width, v.height = w, h
	v.browser.Resize(float64(w), float64(h))
	v.redraw()
}

func (v *pageView) redraw() {
	r := render.NewRenderer(v.width, v.height, v.fonts)
	v.browser.Draw(r)
	v.img.Image = r.Image()
	v.img.Refresh()
	if t := v.browser.Active(); t != nil {
		v.window.SetTitle("webdoc - " + t.Title())
	}
}

func (v *pageView) report(err error) {
	if err != nil {
		v.status.SetText("Error: " + err.Error())
		return
	}
	if t := v.browser.Active(); t != nil && t.URL() != nil {
		v.status.SetText(t.URL().String())
	}
}

func (v *pageView) Tapped(e *fyne.PointEvent) {
	v.window.Canvas().Focus(v)
	v.report(v.browser.HandleClick(float64(e.Position.X), float64(e.Position.Y)))
	v.redraw()
}

func (v *pageView) FocusGained() {}
func (v *pageView) FocusLost()   {}

func (v *pageView) TypedRune(r rune) {
	v.browser.HandleKey(r)
	v.redraw()
}

func (v *pageView) TypedKey(e *fyne.KeyEvent) {
	switch e.Name {
	case fyne.KeyDown:
		v.browser.ScrollDown()
	case fyne.KeyUp:
		v.browser.ScrollUp()
	case fyne.KeyReturn, fyne.KeyEnter:
		v.report(v.browser.HandleEnter())
	case fyne.KeyBackspace:
		v.browser.HandleBackspace()
	default:
		return
	}
	v.redraw()
}

func (v *pageView) Scrolled(e *fyne.ScrollEvent) {
	switch {
	case e.Scrolled.DY > 0:
		v.browser.ScrollUp()
	case e.Scrolled.DY < 0:
		v.browser.ScrollDown()
	default:
		return
	}
	v.redraw()
}
