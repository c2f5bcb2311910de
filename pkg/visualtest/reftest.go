package visualtest

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"webdoc/pkg/html"
)

// Reftest pairs a test page with the reference page it must look identical to.
type Reftest struct {
	Test      string
	Reference string
}

// matchLink returns the href of the first <link rel="match"> in markup.
func matchLink(markup string) string {
	var href string
	html.Parse(markup).Root.Walk(func(n *html.Node) {
		if href != "" || !n.IsElement("link") {
			return
		}
		if rel, _ := n.GetAttribute("rel"); strings.EqualFold(rel, "match") {
			href, _ = n.GetAttribute("href")
		}
	})
	return href
}

// FindReftests collects the .html files in dir that name a reference page.
func FindReftests(dir string) ([]Reftest, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "reading reftest dir")
	}
	var tests []Reftest
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".html") || strings.HasSuffix(name, "-ref.html") {
			continue
		}
		path := filepath.Join(dir, name)
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", name)
		}
		if ref := matchLink(string(content)); ref != "" {
			tests = append(tests, Reftest{Test: path, Reference: filepath.Join(dir, filepath.FromSlash(ref))})
		}
	}
	return tests, nil
}

// Run renders both pages and compares them.
func (rt Reftest) Run(width, height int, opts Options) (*Result, error) {
	got, err := RenderFile(rt.Test, width, height)
	if err != nil {
		return nil, err
	}
	want, err := RenderFile(rt.Reference, width, height)
	if err != nil {
		return nil, err
	}
	return Compare(got, want, opts)
}
