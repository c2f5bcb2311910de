package html

import (
	"strings"

	nethtml "golang.org/x/net/html"
)

// Parser builds a tree from markup. It never fails: broken input yields the best
// tree it can.
type Parser struct {
	tokenizer  *Tokenizer
	doc        *Document
	unfinished []*Node // open elements, root first
}

func NewParser(html string) *Parser {
	return &Parser{
		tokenizer: NewTokenizer(html),
		doc:       &Document{},
	}
}

func (p *Parser) Parse() *Document {
	for {
		token := p.tokenizer.NextToken()
		switch token.Type {
		case TokenEOF:
			p.doc.Root = p.finish()
			return p.doc

		case TokenText:
			p.addText(token.Text)

		case TokenStartTag:
			p.addStartTag(token)
			if isRawTextElement(token.TagName) {
				raw := p.tokenizer.ReadRawUntil(token.TagName)
				p.addText(raw)
				if token.TagName == "style" && strings.TrimSpace(raw) != "" {
					p.doc.Stylesheets = append(p.doc.Stylesheets, raw)
				}
				p.addEndTag(token.TagName)
			}

		case TokenEndTag:
			p.addEndTag(token.TagName)
		}
	}
}

func (p *Parser) top() *Node {
	return p.unfinished[len(p.unfinished)-1]
}

func (p *Parser) addText(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	p.implicitTags("")
	p.top().AppendText(text)
}

func (p *Parser) addStartTag(token Token) {
	p.implicitTags(token.TagName)
	node := NewElement(token.TagName, token.Attributes)
	if len(p.unfinished) == 0 {
		p.unfinished = append(p.unfinished, node)
		return
	}
	parent := p.top()
	if isVoidElement(token.TagName) {
		parent.AddChild(node)
		return
	}
	// attached to its parent when closed
	node.Parent = parent
	p.unfinished = append(p.unfinished, node)
}

// addEndTag closes the nearest open element with the given name. Elements opened
// after it are folded underneath it. The root is never closed.
func (p *Parser) addEndTag(tag string) {
	p.implicitTags("/" + tag)
	for i := len(p.unfinished) - 1; i >= 1; i-- {
		if p.unfinished[i].TagName != tag {
			continue
		}
		for j := len(p.unfinished) - 1; j > i; j-- {
			p.unfinished[j-1].AddChild(p.unfinished[j])
		}
		p.unfinished[i-1].AddChild(p.unfinished[i])
		p.unfinished = p.unfinished[:i]
		return
	}
}

// implicitTags opens <html> and <body> when the document omits them. An explicit
// html, head or body start tag (and </html>) is let through so that it does not end up
// nested inside an implied element of the same kind.
func (p *Parser) implicitTags(tag string) {
	for {
		switch {
		case len(p.unfinished) == 0:
			if tag == "html" {
				return
			}
			p.unfinished = append(p.unfinished, NewElement("html", nil))
		case len(p.unfinished) == 1 && p.unfinished[0].TagName == "html":
			if tag == "body" || tag == "head" || tag == "/html" {
				return
			}
			body := NewElement("body", nil)
			body.Parent = p.unfinished[0]
			p.unfinished = append(p.unfinished, body)
		default:
			return
		}
	}
}

func (p *Parser) finish() *Node {
	if len(p.unfinished) == 0 {
		p.implicitTags("")
	}
	for len(p.unfinished) > 1 {
		node := p.unfinished[len(p.unfinished)-1]
		p.unfinished = p.unfinished[:len(p.unfinished)-1]
		p.top().AddChild(node)
	}
	root := p.unfinished[0]
	p.unfinished = nil
	return root
}

// Parse parses markup into a document tree.
func Parse(html string) *Document {
	return NewParser(html).Parse()
}

// DecodeEntities replaces character references such as &lt;, &amp; and &shy;.
func DecodeEntities(s string) string {
	return nethtml.UnescapeString(s)
}
