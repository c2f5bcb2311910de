package main

import (
	"flag"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"webdoc/pkg/config"
	"webdoc/pkg/resource"
	"webdoc/pkg/text"
	stdnet "webdoc/std/net"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: wd [flags] [url]\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadFile(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	log := cfg.Logger()

	fonts, err := text.NewGoFonts()
	if err != nil {
		log.WithError(err).Fatal("loading fonts")
	}

	session := stdnet.NewSession(cfg.Session(), stdnet.WithLogger(log))
	defer session.Close()

	browser := resource.NewBrowser(session, fonts, cfg.Tab())
	browser.SetLogger(log)
	browser.SetFilePathPolicy(cfg.FilePathPolicy())

	a := app.New()
	w := a.NewWindow("webdoc")
	w.Resize(fyne.NewSize(float32(cfg.Viewport.Width), float32(cfg.Viewport.Height)))

	status := widget.NewLabel("")
	view := newPageView(w, browser, fonts, status, int(cfg.Viewport.Width), int(cfg.Viewport.Height))

	start := "about:blank"
	if flag.NArg() > 0 {
		start = flag.Arg(0)
	}
	u, err := stdnet.ParseURLOrFile(start, cfg.FilePathPolicy())
	if err == nil {
		err = browser.NewTab(u)
	}
	view.report(err)
	view.redraw()

	w.SetContent(container.NewBorder(nil, status, nil, nil, view))
	w.Canvas().Focus(view)
	w.ShowAndRun()
}
