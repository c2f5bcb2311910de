package html

import (
	"fmt"
	"strings"
)

type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
)

// Attribute is a single key/value pair. Keys are lower-cased by the tokenizer.
type Attribute struct {
	Key   string
	Value string
}

type Node struct {
	Type       NodeType
	TagName    string
	Attributes []Attribute // source order; a repeated key keeps its first position and last value
	Text       string
	Children   []*Node
	Parent     *Node
}

// Document is the result of parsing. Stylesheets holds the contents of <style>
// elements in document order.
type Document struct {
	Root        *Node
	Stylesheets []string
}

func NewElement(tag string, attrs []Attribute) *Node {
	return &Node{Type: ElementNode, TagName: tag, Attributes: attrs}
}

func NewText(text string) *Node {
	return &Node{Type: TextNode, Text: text}
}

func (n *Node) GetAttribute(name string) (string, bool) {
	for _, a := range n.Attributes {
		if a.Key == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttribute replaces the value of an existing attribute in place or appends a new one.
func (n *Node) SetAttribute(name, value string) {
	n.Attributes = setAttribute(n.Attributes, name, value)
}

func setAttribute(attrs []Attribute, name, value string) []Attribute {
	for i := range attrs {
		if attrs[i].Key == name {
			attrs[i].Value = value
			return attrs
		}
	}
	return append(attrs, Attribute{Key: name, Value: value})
}

// IsElement reports whether n is an element with the given tag.
func (n *Node) IsElement(tag string) bool {
	return n != nil && n.Type == ElementNode && n.TagName == tag
}

// AddChild adds a child node and sets up the parent relationship
func (n *Node) AddChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// AppendText creates a text node and adds it as a child
func (n *Node) AppendText(text string) {
	if text == "" {
		return
	}
	n.AddChild(NewText(text))
}

// Walk visits n and its descendants in pre-order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Nodes flattens the tree rooted at n in pre-order.
func (n *Node) Nodes() []*Node {
	var out []*Node
	n.Walk(func(c *Node) { out = append(out, c) })
	return out
}

// Ancestors returns the strict ancestors of n, nearest first.
func (n *Node) Ancestors() []*Node {
	var out []*Node
	for p := n.Parent; p != nil; p = p.Parent {
		out = append(out, p)
	}
	return out
}

// Closest returns n or its nearest ancestor with the given tag, or nil.
func (n *Node) Closest(tag string) *Node {
	for c := n; c != nil; c = c.Parent {
		if c.IsElement(tag) {
			return c
		}
	}
	return nil
}

// TextContent concatenates all descendant text.
func (n *Node) TextContent() string {
	var sb strings.Builder
	n.Walk(func(c *Node) {
		if c.Type == TextNode {
			sb.WriteString(c.Text)
		}
	})
	return sb.String()
}

func (n *Node) String() string {
	if n.Type == TextNode {
		return fmt.Sprintf("%q", n.Text)
	}
	var sb strings.Builder
	sb.WriteByte('<')
	sb.WriteString(n.TagName)
	for _, a := range n.Attributes {
		fmt.Fprintf(&sb, " %s=%q", a.Key, a.Value)
	}
	sb.WriteByte('>')
	return sb.String()
}

func isVoidElement(tag string) bool {
	switch tag {
	case "br", "hr", "img", "input", "meta", "link", "area", "base",
		"col", "embed", "param", "source", "track", "wbr":
		return true
	}
	return false
}

func isRawTextElement(tag string) bool {
	return tag == "script" || tag == "style"
}
