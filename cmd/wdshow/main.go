package main

import (
	"flag"
	"fmt"
	"os"

	"webdoc/pkg/config"
	"webdoc/pkg/html"
	"webdoc/pkg/layout"
	"webdoc/pkg/render"
	"webdoc/pkg/resource"
	"webdoc/pkg/text"
	stdnet "webdoc/std/net"
)

func main() {
	width := flag.Int("w", 0, "viewport width in pixels (default from config)")
	height := flag.Int("h", 0, "viewport height in pixels (default from config)")
	output := flag.String("o", "output.png", "output PNG file path")
	configPath := flag.String("config", "", "YAML configuration file")
	full := flag.Bool("full", false, "render the whole page instead of the first screen")
	dump := flag.Bool("dump", false, "print the DOM and layout trees to stderr")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: wdshow [flags] <url|file>\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadFile(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if *width > 0 {
		cfg.Viewport.Width = float64(*width)
	}
	if *height > 0 {
		cfg.Viewport.Height = float64(*height)
	}
	log := cfg.Logger()

	u, err := stdnet.ParseURLOrFile(flag.Arg(0), cfg.FilePathPolicy())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fonts, err := text.NewGoFonts()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading fonts: %v\n", err)
		os.Exit(1)
	}

	session := stdnet.NewSession(cfg.Session(), stdnet.WithLogger(log))
	defer session.Close()

	tab := resource.NewTab(session, fonts, cfg.Tab())
	tab.SetLogger(log)

	fmt.Fprintf(os.Stderr, "Loading %s...\n", u)
	if err := tab.Load(u); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading: %v\n", err)
		os.Exit(1)
	}

	if *dump {
		fmt.Fprintln(os.Stderr, html.Dump(tab.DOM().Root))
		fmt.Fprintln(os.Stderr, layout.Dump(tab.Document()))
	}

	w, h := int(cfg.Viewport.Width), int(cfg.Viewport.Height)
	cmds := tab.Visible()
	if *full {
		h = int(tab.Document().Height + 2*cfg.Viewport.VStep)
		cmds = tab.DisplayList()
	}

	fmt.Fprintf(os.Stderr, "Rendering %dx%d...\n", w, h)
	r := render.NewRenderer(w, h, fonts)
	r.Clear()
	r.Draw(cmds, 0)

	if err := r.SavePNG(*output); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving PNG: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Saved to %s\n", *output)
}
