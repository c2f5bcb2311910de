package paint

import (
	"webdoc/pkg/css"
	"webdoc/pkg/layout"
)

func boxRect(b layout.Box) Rect {
	return Rect{Left: b.X, Top: b.Y, Right: b.X + b.Width, Bottom: b.Y + b.Height}
}

// Build walks the layout tree in pre-order and returns its display list. A node's
// commands always precede those of its descendants.
func Build(root layout.Node) []Command {
	var cmds []Command
	layout.Walk(root, func(n layout.Node) {
		cmds = append(cmds, commandsFor(n)...)
	})
	return cmds
}

func background(b layout.Box, c css.Color) []Command {
	if !c.Concrete() {
		return nil
	}
	return []Command{DrawRect{Rect: boxRect(b), Color: c.RGBA}}
}

func commandsFor(n layout.Node) []Command {
	switch v := n.(type) {
	case *layout.BlockLayout:
		if v.Atomic() {
			return nil
		}
		return background(v.Box, v.Background)
	case *layout.LineLayout:
		if v.Atomic() {
			return nil
		}
		return background(v.Box, v.Background)
	case *layout.TextLayout:
		return []Command{DrawText{Rect: boxRect(v.Box), Text: v.Word, Font: v.Spec, Color: v.Color}}
	case *layout.InputLayout:
		return inputCommands(v)
	}
	return nil
}

func inputCommands(in *layout.InputLayout) []Command {
	cmds := background(in.Box, in.Background)
	if in.Text != "" {
		r := Rect{Left: in.X, Top: in.Y, Right: in.X + in.TextWidth, Bottom: in.Y + in.Height}
		cmds = append(cmds, DrawText{Rect: r, Text: in.Text, Font: in.Spec, Color: in.Color})
	}
	if in.Focused {
		cx := in.X + in.TextWidth
		cmds = append(cmds, DrawLine{
			Rect:      Rect{Left: cx, Top: in.Y, Right: cx, Bottom: in.Y + in.Height},
			Color:     in.Color,
			Thickness: 1,
		})
	}
	return cmds
}

// Visible returns the commands that intersect the vertical band [top, top+height).
func Visible(cmds []Command, top, height float64) []Command {
	var out []Command
	for _, c := range cmds {
		b := c.Bounds()
		if b.Top > top+height || b.Bottom < top {
			continue
		}
		out = append(out, c)
	}
	return out
}
