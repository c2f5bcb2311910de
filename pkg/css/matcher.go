package css

import (
	"webdoc/pkg/html"
)

// Selector decides which nodes a rule applies to. Rules with a higher Priority
// are applied later and win.
type Selector interface {
	Matches(node *html.Node) bool
	Priority() int
	String() string
}

// TagSelector matches elements by tag name.
type TagSelector struct {
	Tag string
}

func (s TagSelector) Matches(node *html.Node) bool {
	return node != nil && node.Type == html.ElementNode && node.TagName == s.Tag
}

func (s TagSelector) Priority() int { return 1 }

func (s TagSelector) String() string { return s.Tag }

// DescendantSelector matches nodes matched by Descendant that have a strict
// ancestor matched by Ancestor.
type DescendantSelector struct {
	Ancestor   Selector
	Descendant TagSelector
}

func (s DescendantSelector) Matches(node *html.Node) bool {
	if !s.Descendant.Matches(node) {
		return false
	}
	for p := node.Parent; p != nil; p = p.Parent {
		if s.Ancestor.Matches(p) {
			return true
		}
	}
	return false
}

func (s DescendantSelector) Priority() int {
	return s.Ancestor.Priority() + s.Descendant.Priority()
}

func (s DescendantSelector) String() string {
	return s.Ancestor.String() + " " + s.Descendant.String()
}
