package paint

import (
	"fmt"
	"image/color"

	"webdoc/pkg/text"
)

// Rect is an axis-aligned rectangle in document coordinates.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// ContainsPoint reports whether (x, y) lies inside r. Right and bottom are exclusive.
func (r Rect) ContainsPoint(x, y float64) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

// Intersects reports whether r and o overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.Left < o.Right && o.Left < r.Right && r.Top < o.Bottom && o.Top < r.Bottom
}

// Offset returns r moved by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

func (r Rect) Width() float64  { return r.Right - r.Left }
func (r Rect) Height() float64 { return r.Bottom - r.Top }

func (r Rect) String() string {
	return fmt.Sprintf("(%.1f,%.1f)-(%.1f,%.1f)", r.Left, r.Top, r.Right, r.Bottom)
}

// Command is one entry of a display list.
type Command interface {
	Bounds() Rect
}

// DrawText draws Text with its top-left corner at the rect's origin.
type DrawText struct {
	Rect  Rect
	Text  string
	Font  text.FontSpec
	Color color.RGBA
}

// DrawRect fills Rect.
type DrawRect struct {
	Rect  Rect
	Color color.RGBA
}

// DrawLine draws a line from the rect's top-left corner to its bottom-right corner.
type DrawLine struct {
	Rect      Rect
	Color     color.RGBA
	Thickness float64
}

// DrawOutline strokes the border of Rect.
type DrawOutline struct {
	Rect      Rect
	Color     color.RGBA
	Thickness float64
}

func (c DrawText) Bounds() Rect    { return c.Rect }
func (c DrawRect) Bounds() Rect    { return c.Rect }
func (c DrawLine) Bounds() Rect    { return c.Rect }
func (c DrawOutline) Bounds() Rect { return c.Rect }
