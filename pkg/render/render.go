package render

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"webdoc/pkg/paint"
	"webdoc/pkg/text"
)

// Faces supplies font faces for DrawText commands. *text.GoFonts implements it.
type Faces interface {
	Face(f text.FontSpec) font.Face
	Ascent(f text.FontSpec) float64
}

// Renderer rasterizes display lists with gg.
type Renderer struct {
	context *gg.Context
	faces   Faces
}

func NewRenderer(width, height int, faces Faces) *Renderer {
	return &Renderer{context: gg.NewContext(width, height), faces: faces}
}

// NewRendererForImage draws directly into target.
func NewRendererForImage(target *image.RGBA, faces Faces) *Renderer {
	return &Renderer{context: gg.NewContextForRGBA(target), faces: faces}
}

func (r *Renderer) Width() int  { return r.context.Width() }
func (r *Renderer) Height() int { return r.context.Height() }

// Clear fills the whole surface with white.
func (r *Renderer) Clear() {
	r.context.SetColor(color.White)
	r.context.Clear()
}

// Draw executes cmds in order. Document coordinates are shifted by dy before drawing,
// so a tab scrolled by s below chrome of height h draws with dy = h - s.
func (r *Renderer) Draw(cmds []paint.Command, dy float64) {
	for _, cmd := range cmds {
		r.execute(cmd, dy)
	}
}

func (r *Renderer) execute(cmd paint.Command, dy float64) {
	switch c := cmd.(type) {
	case paint.DrawRect:
		rect := c.Rect.Offset(0, dy)
		r.context.SetColor(c.Color)
		r.context.DrawRectangle(rect.Left, rect.Top, rect.Width(), rect.Height())
		r.context.Fill()
	case paint.DrawOutline:
		rect := c.Rect.Offset(0, dy)
		r.context.SetColor(c.Color)
		r.context.SetLineWidth(c.Thickness)
		r.context.DrawRectangle(rect.Left, rect.Top, rect.Width(), rect.Height())
		r.context.Stroke()
	case paint.DrawLine:
		rect := c.Rect.Offset(0, dy)
		r.context.SetColor(c.Color)
		r.context.SetLineWidth(c.Thickness)
		r.context.DrawLine(rect.Left, rect.Top, rect.Right, rect.Bottom)
		r.context.Stroke()
	case paint.DrawText:
		if r.faces == nil || c.Text == "" {
			return
		}
		rect := c.Rect.Offset(0, dy)
		r.context.SetFontFace(r.faces.Face(c.Font))
		r.context.SetColor(c.Color)
		// gg draws at the baseline, commands carry the top edge
		r.context.DrawString(c.Text, rect.Left, rect.Top+r.faces.Ascent(c.Font))
	}
}

// DrawScrollbar paints a thumb on the right edge when the document is taller than the
// viewport band [top, top+viewHeight).
func (r *Renderer) DrawScrollbar(scroll, docHeight, top, viewHeight float64) {
	if docHeight <= viewHeight || viewHeight <= 0 {
		return
	}
	const width = 8.0
	thumb := viewHeight * viewHeight / docHeight
	y := top + (viewHeight-thumb)*scroll/(docHeight-viewHeight)
	if y > top+viewHeight-thumb {
		y = top + viewHeight - thumb
	}
	r.context.SetRGB(0.2, 0.4, 0.9)
	r.context.DrawRectangle(float64(r.Width())-width, y, width, thumb)
	r.context.Fill()
}

func (r *Renderer) Image() image.Image {
	return r.context.Image()
}

func (r *Renderer) SavePNG(filename string) error {
	return r.context.SavePNG(filename)
}
