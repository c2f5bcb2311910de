package resource

import (
	"strings"

	"github.com/sirupsen/logrus"

	"webdoc/pkg/css"
	"webdoc/pkg/html"
	stdnet "webdoc/std/net"
)

// Fetcher retrieves resources. *stdnet.Session implements it.
type Fetcher interface {
	Fetch(u *stdnet.URL) (*stdnet.Response, error)
	Post(u *stdnet.URL, payload string) (*stdnet.Response, error)
}

// stylesheetLinks returns the href of every <link rel="stylesheet"> in document order.
func stylesheetLinks(root *html.Node) []string {
	var hrefs []string
	root.Walk(func(n *html.Node) {
		if !n.IsElement("link") {
			return
		}
		rel, _ := n.GetAttribute("rel")
		href, ok := n.GetAttribute("href")
		if ok && strings.EqualFold(strings.TrimSpace(rel), "stylesheet") {
			hrefs = append(hrefs, href)
		}
	})
	return hrefs
}

// fetchStylesheets fetches and parses the linked style sheets of root. Sheets that
// fail to resolve or fetch are logged and skipped.
func fetchStylesheets(f Fetcher, base *stdnet.URL, root *html.Node, log logrus.FieldLogger) []css.Rule {
	var rules []css.Rule
	for _, href := range stylesheetLinks(root) {
		u, err := base.Resolve(href)
		if err != nil {
			log.WithError(err).WithField("href", href).Warn("skipping stylesheet")
			continue
		}
		resp, err := f.Fetch(u)
		if err != nil {
			log.WithError(err).WithField("url", u.String()).Warn("skipping stylesheet")
			continue
		}
		sheet := css.ParseStylesheet(resp.Text())
		log.WithFields(logrus.Fields{"url": u.String(), "rules": len(sheet.Rules)}).Debug("stylesheet loaded")
		rules = append(rules, sheet.Rules...)
	}
	return rules
}
