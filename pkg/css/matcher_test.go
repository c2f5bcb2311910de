package css

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"webdoc/pkg/html"
)

func TestTagSelector(t *testing.T) {
	div := html.NewElement("div", nil)
	div.AppendText("x")

	assert.True(t, TagSelector{Tag: "div"}.Matches(div))
	assert.False(t, TagSelector{Tag: "p"}.Matches(div))
	assert.False(t, TagSelector{Tag: "div"}.Matches(div.Children[0]), "text nodes never match")
}

func TestDescendantSelector(t *testing.T) {
	doc := html.Parse(`<div><section><p>deep</p></section></div><p>top</p>`)
	body := doc.Root.Children[0]
	deep := body.Children[0].Children[0].Children[0]
	top := body.Children[1]

	sel := DescendantSelector{Ancestor: TagSelector{Tag: "div"}, Descendant: TagSelector{Tag: "p"}}
	assert.True(t, sel.Matches(deep))
	assert.False(t, sel.Matches(top))

	nested := DescendantSelector{Ancestor: DescendantSelector{Ancestor: TagSelector{Tag: "body"}, Descendant: TagSelector{Tag: "div"}}, Descendant: TagSelector{Tag: "p"}}
	assert.True(t, nested.Matches(deep))
	assert.Equal(t, 3, nested.Priority())
	assert.Equal(t, "body div p", nested.String())

	self := DescendantSelector{Ancestor: TagSelector{Tag: "p"}, Descendant: TagSelector{Tag: "p"}}
	assert.False(t, self.Matches(deep), "ancestor must be strict")
}
