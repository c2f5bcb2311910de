// Package visualtest renders pages through the full pipeline and compares the results.
package visualtest

import (
	"image"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"webdoc/pkg/render"
	"webdoc/pkg/resource"
	"webdoc/pkg/text"
	stdnet "webdoc/std/net"
)

var fonts *text.GoFonts

func goFonts() (*text.GoFonts, error) {
	if fonts != nil {
		return fonts, nil
	}
	f, err := text.NewGoFonts()
	if err != nil {
		return nil, err
	}
	fonts = f
	return f, nil
}

// RenderURL loads u in a fresh tab of the given size and returns the first screen.
func RenderURL(u *stdnet.URL, width, height int) (image.Image, error) {
	f, err := goFonts()
	if err != nil {
		return nil, err
	}
	log := logrus.New()
	log.SetOutput(io.Discard)

	session := stdnet.NewSession(stdnet.DefaultConfig(), stdnet.WithLogger(log))
	defer session.Close()

	cfg := resource.DefaultTabConfig()
	cfg.Layout.Width = float64(width)
	cfg.Height = float64(height)
	tab := resource.NewTab(session, f, cfg)
	tab.SetLogger(log)
	if err := tab.Load(u); err != nil {
		return nil, errors.Wrap(err, "rendering")
	}

	r := render.NewRenderer(width, height, f)
	r.Clear()
	r.Draw(tab.Visible(), 0)
	return r.Image(), nil
}

// RenderFile renders the HTML file at path.
func RenderFile(path string, width, height int) (image.Image, error) {
	u, err := stdnet.ParseURLOrFile(path, stdnet.PosixPaths)
	if err != nil {
		return nil, err
	}
	return RenderURL(u, width, height)
}
