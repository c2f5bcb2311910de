package html

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func collect(input string) []Token {
	tok := NewTokenizer(input)
	var out []Token
	for {
		t := tok.NextToken()
		if t.Type == TokenEOF {
			return out
		}
		out = append(out, t)
	}
}

func TestTokenizer_Basic(t *testing.T) {
	tokens := collect(`<p class="x">hi</p>`)
	assert.Equal(t, []Token{
		{Type: TokenStartTag, TagName: "p", Attributes: []Attribute{{"class", "x"}}},
		{Type: TokenText, Text: "hi"},
		{Type: TokenEndTag, TagName: "p"},
	}, tokens)
}

func TestTokenizer_SkipsCommentsAndDeclarations(t *testing.T) {
	tokens := collect(`<!DOCTYPE html><?xml version="1.0"?>a<!-- <b>hidden</b> -->b`)
	assert.Equal(t, []Token{
		{Type: TokenText, Text: "a"},
		{Type: TokenText, Text: "b"},
	}, tokens)
}

func TestTokenizer_UnterminatedComment(t *testing.T) {
	tokens := collect(`a<!-- never closed <p>x</p>`)
	assert.Equal(t, []Token{{Type: TokenText, Text: "a"}}, tokens)
}

func TestTokenizer_MissingCloseBracket(t *testing.T) {
	tokens := collect(`text<p class="x"`)
	assert.Equal(t, []Token{{Type: TokenText, Text: "text"}}, tokens)
}

func TestTokenizer_SelfClosingSlash(t *testing.T) {
	tokens := collect(`<br/><hr />`)
	assert.Equal(t, "br", tokens[0].TagName)
	assert.Equal(t, "hr", tokens[1].TagName)
	assert.Empty(t, tokens[1].Attributes)
}

func TestParseTagText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		tag   string
		attrs []Attribute
	}{
		{"bare", "DIV", "div", nil},
		{"unquoted", "a href=/x.html", "a", []Attribute{{"href", "/x.html"}}},
		{"double quoted", `a title="two words"`, "a", []Attribute{{"title", "two words"}}},
		{"single quoted", `a title='it "is"'`, "a", []Attribute{{"title", `it "is"`}}},
		{"no value", "input disabled name=q", "input", []Attribute{{"disabled", ""}, {"name", "q"}}},
		{"spaces around equals", `a  href = "x"`, "a", []Attribute{{"href", "x"}}},
		{"keys lower cased", `p ID=main`, "p", []Attribute{{"id", "main"}}},
		{"garbage skipped", `p "oops" @@ id=1`, "p", []Attribute{{"oops", ""}, {"id", "1"}}},
		{"duplicate keeps position", `p a=1 b=2 a=3`, "p", []Attribute{{"a", "3"}, {"b", "2"}}},
		{"end tag", "/div", "/div", nil},
		{"unterminated quote", `a title="open`, "a", []Attribute{{"title", "open"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag, attrs := parseTagText(tt.input)
			assert.Equal(t, tt.tag, tag)
			assert.Equal(t, tt.attrs, attrs)
		})
	}
}

func TestReadRawUntil(t *testing.T) {
	tok := NewTokenizer(`if (a < b) { x = "</p>"; }</SCRIPT>after`)
	assert.Equal(t, `if (a < b) { x = "</p>"; }`, tok.ReadRawUntil("script"))
	assert.Equal(t, Token{Type: TokenText, Text: "after"}, tok.NextToken())

	tok = NewTokenizer(`body { color: red }`)
	assert.Equal(t, `body { color: red }`, tok.ReadRawUntil("style"))
	assert.Equal(t, TokenEOF, tok.NextToken().Type)
}

func TestReadRawUntil_NonASCII(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"grows when lower-cased", "ȺȺȺȺȺȺȺȺȺȺ</script><p>after</p>", "ȺȺȺȺȺȺȺȺȺȺ"},
		{"shrinks when lower-cased", "İİİİİİİİİİ</script><p>after</p>", "İİİİİİİİİİ"},
		{"mixed case close tag", "ß und Ω</ScRiPt><p>after</p>", "ß und Ω"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := NewTokenizer(tt.input)
			assert.Equal(t, tt.want, tok.ReadRawUntil("script"))
			assert.Equal(t, Token{Type: TokenStartTag, TagName: "p"}, tok.NextToken())
		})
	}
}
