// Command wdfetch prints the text of the pages at the given URLs or paths. Without
// arguments it reads one URL per line from stdin, reusing connections between requests.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"webdoc/pkg/config"
	"webdoc/pkg/html"
	stdnet "webdoc/std/net"
)

type options struct {
	headers bool
	dom     bool
	policy  stdnet.FilePathPolicy
}

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	headers := flag.Bool("i", false, "print the status line and headers")
	dom := flag.Bool("dom", false, "print the parsed document tree instead of its text")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: wdfetch [flags] [url|file ...]\n\nFlags:\n")
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
	log.SetOutput(os.Stderr)

	session := stdnet.NewSession(cfg.Session(), stdnet.WithLogger(log))
	defer session.Close()

	opts := options{headers: *headers, dom: *dom, policy: cfg.FilePathPolicy()}
	args := joinDataArgs(flag.Args())
	if len(args) == 0 {
		interactive(session, os.Stdin, os.Stdout, opts, log)
		return
	}
	failed := false
	for _, raw := range args {
		if err := fetchAndPrint(session, raw, os.Stdout, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

// joinDataArgs rejoins a data: URL that the shell split on spaces.
func joinDataArgs(args []string) []string {
	for _, a := range args {
		if strings.HasPrefix(a, "data:") {
			return []string{strings.Join(args, " ")}
		}
	}
	return args
}

func interactive(f fetcher, in io.Reader, out io.Writer, opts options, log logrus.FieldLogger) {
	scanner := bufio.NewScanner(in)
	n := 0
	for {
		fmt.Fprintf(out, "URL [%d]: ", n+1)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return
		}
		raw := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(raw) {
		case "":
			continue
		case "quit", "exit", "q":
			return
		}
		n++
		if err := fetchAndPrint(f, raw, out, opts); err != nil {
			log.WithError(err).WithField("url", raw).Error("request failed")
		}
	}
}

type fetcher interface {
	Fetch(u *stdnet.URL) (*stdnet.Response, error)
}

func fetchAndPrint(f fetcher, raw string, out io.Writer, opts options) error {
	u, err := stdnet.ParseURLOrFile(raw, opts.policy)
	if err != nil {
		return err
	}
	resp, err := f.Fetch(u)
	if err != nil {
		return err
	}
	if opts.headers {
		writeHeaders(out, resp)
	}
	switch {
	case u.ViewSource():
		fmt.Fprintln(out, resp.Text())
	case opts.dom:
		fmt.Fprintln(out, html.Dump(html.Parse(html.DecodeEntities(resp.Text())).Root))
	default:
		fmt.Fprintln(out, pageText(resp.Text()))
	}
	return nil
}

func writeHeaders(out io.Writer, resp *stdnet.Response) {
	fmt.Fprintf(out, "%s %d %s\n", resp.Version, resp.Status, resp.Reason)
	keys := make([]string, 0, len(resp.Header))
	for k := range resp.Header {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "%s: %s\n", k, resp.Header[k])
	}
	fmt.Fprintln(out)
}

// pageText returns the visible text of a page: markup, scripts and styles removed.
func pageText(body string) string {
	doc := html.Parse(html.DecodeEntities(body))
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			sb.WriteString(n.Text)
		case n.IsElement("script"), n.IsElement("style"), n.IsElement("title"):
			return
		default:
			for _, c := range n.Children {
				walk(c)
			}
		}
	}
	walk(doc.Root)
	return sb.String()
}
