package html

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func makeTree() *Node {
	// <div id="parent"><span>hello</span><p>world</p></div>
	parent := NewElement("div", []Attribute{{"id", "parent"}})
	span := NewElement("span", nil)
	span.AppendText("hello")
	parent.AddChild(span)

	p := NewElement("p", nil)
	p.AppendText("world")
	parent.AddChild(p)
	return parent
}

func TestSetAttribute(t *testing.T) {
	n := NewElement("input", []Attribute{{"name", "q"}, {"value", "a"}})
	n.SetAttribute("value", "ab")
	n.SetAttribute("type", "text")
	assert.Equal(t, []Attribute{{"name", "q"}, {"value", "ab"}, {"type", "text"}}, n.Attributes)
}

func TestWalkAndNodes(t *testing.T) {
	tree := makeTree()
	var names []string
	for _, n := range tree.Nodes() {
		if n.Type == TextNode {
			names = append(names, n.Text)
		} else {
			names = append(names, n.TagName)
		}
	}
	assert.Equal(t, []string{"div", "span", "hello", "p", "world"}, names)
}

func TestAncestorsAndClosest(t *testing.T) {
	tree := makeTree()
	text := tree.Children[1].Children[0]
	assert.Equal(t, []*Node{tree.Children[1], tree}, text.Ancestors())
	assert.Same(t, tree, text.Closest("div"))
	assert.Nil(t, text.Closest("form"))
	assert.Equal(t, "helloworld", tree.TextContent())
}
