package resource

import (
	"fmt"
	"image/color"

	"webdoc/pkg/css"
	"webdoc/pkg/paint"
	"webdoc/pkg/text"
)

const chromePadding = 5.0

var chromeRed = color.RGBA{R: 0xff, A: 0xff}

// Chrome is the tab strip and address bar drawn above the page.
type Chrome struct {
	browser *Browser
	metrics text.Metrics
	font    text.FontSpec
	width   float64

	focused    bool
	addressBar string

	fontHeight   float64
	tabbarBottom float64
	newtabRect   paint.Rect
	backRect     paint.Rect
	addressRect  paint.Rect
	bottom       float64
}

func newChrome(b *Browser, metrics text.Metrics, width float64) *Chrome {
	c := &Chrome{browser: b, metrics: metrics, font: text.FontSpec{Size: 20}}
	c.resize(width)
	return c
}

func (c *Chrome) resize(width float64) {
	c.width = width
	c.fontHeight = c.metrics.Linespace(c.font)
	c.tabbarBottom = c.fontHeight + 2*chromePadding

	plus := c.metrics.Measure("+", c.font) + 2*chromePadding
	c.newtabRect = paint.Rect{
		Left: chromePadding, Top: chromePadding,
		Right: chromePadding + plus, Bottom: chromePadding + c.fontHeight,
	}

	urlbarTop := c.tabbarBottom
	urlbarBottom := urlbarTop + c.fontHeight + 2*chromePadding
	back := c.metrics.Measure("<", c.font) + 2*chromePadding
	c.backRect = paint.Rect{
		Left: chromePadding, Top: urlbarTop + chromePadding,
		Right: chromePadding + back, Bottom: urlbarBottom - chromePadding,
	}
	c.addressRect = paint.Rect{
		Left: c.backRect.Right + chromePadding, Top: urlbarTop + chromePadding,
		Right: width - chromePadding, Bottom: urlbarBottom - chromePadding,
	}
	c.bottom = urlbarBottom
}

// Bottom is the height of the chrome. The page is drawn below it.
func (c *Chrome) Bottom() float64 { return c.bottom }

func (c *Chrome) tabRect(i int) paint.Rect {
	start := c.newtabRect.Right + chromePadding
	w := c.metrics.Measure("Tab X", c.font) + 2*chromePadding
	return paint.Rect{
		Left: start + w*float64(i), Top: 0,
		Right: start + w*float64(i+1), Bottom: c.tabbarBottom,
	}
}

func (c *Chrome) label(x, y float64, s string, col color.RGBA) paint.DrawText {
	return paint.DrawText{
		Rect: paint.Rect{Left: x, Top: y, Right: x + c.metrics.Measure(s, c.font), Bottom: y + c.fontHeight},
		Text: s, Font: c.font, Color: col,
	}
}

func line(x1, y1, x2, y2 float64, col color.RGBA) paint.DrawLine {
	return paint.DrawLine{Rect: paint.Rect{Left: x1, Top: y1, Right: x2, Bottom: y2}, Color: col, Thickness: 1}
}

// Paint returns the chrome's display list in window coordinates.
func (c *Chrome) Paint() []paint.Command {
	black := css.Black
	cmds := []paint.Command{
		paint.DrawRect{Rect: paint.Rect{Right: c.width, Bottom: c.bottom}, Color: css.White},
		line(0, c.bottom, c.width, c.bottom, black),
		paint.DrawOutline{Rect: c.newtabRect, Color: black, Thickness: 1},
		c.label(c.newtabRect.Left+chromePadding, c.newtabRect.Top, "+", black),
	}

	for i, tab := range c.browser.tabs {
		r := c.tabRect(i)
		cmds = append(cmds,
			line(r.Left, 0, r.Left, r.Bottom, black),
			line(r.Right, 0, r.Right, r.Bottom, black),
			c.label(r.Left+chromePadding, r.Top+chromePadding, fmt.Sprintf("Tab %d", i), black),
		)
		if tab == c.browser.active {
			cmds = append(cmds,
				line(0, r.Bottom, r.Left, r.Bottom, black),
				line(r.Right, r.Bottom, c.width, r.Bottom, black),
			)
		}
	}

	cmds = append(cmds,
		paint.DrawOutline{Rect: c.backRect, Color: black, Thickness: 1},
		c.label(c.backRect.Left+chromePadding, c.backRect.Top, "<", black),
		paint.DrawOutline{Rect: c.addressRect, Color: black, Thickness: 1},
	)
	x := c.addressRect.Left + chromePadding
	if c.focused {
		cmds = append(cmds, c.label(x, c.addressRect.Top, c.addressBar, black))
		w := c.metrics.Measure(c.addressBar, c.font)
		cmds = append(cmds, line(x+w, c.addressRect.Top, x+w, c.addressRect.Bottom, chromeRed))
	} else if tab := c.browser.active; tab != nil && tab.URL() != nil {
		cmds = append(cmds, c.label(x, c.addressRect.Top, tab.URL().String(), black))
	}
	return cmds
}

// click handles a click inside the chrome.
func (c *Chrome) click(x, y float64) error {
	c.focused = false
	switch {
	case c.newtabRect.ContainsPoint(x, y):
		return c.browser.NewTabURL("about:blank")
	case c.backRect.ContainsPoint(x, y):
		if c.browser.active != nil {
			return c.browser.active.GoBack()
		}
	case c.addressRect.ContainsPoint(x, y):
		c.focused = true
		c.addressBar = ""
	default:
		for i, tab := range c.browser.tabs {
			if c.tabRect(i).ContainsPoint(x, y) {
				c.browser.active = tab
				break
			}
		}
	}
	return nil
}

func (c *Chrome) keypress(ch rune) bool {
	if !c.focused {
		return false
	}
	c.addressBar += string(ch)
	return true
}

func (c *Chrome) backspace() bool {
	if !c.focused {
		return false
	}
	if r := []rune(c.addressBar); len(r) > 0 {
		c.addressBar = string(r[:len(r)-1])
	}
	return true
}

// enter loads the typed address in the active tab.
func (c *Chrome) enter() (bool, error) {
	if !c.focused {
		return false, nil
	}
	c.focused = false
	return true, c.browser.loadActive(c.addressBar)
}
