package html

import (
	"strings"
	"unicode"
)

type TokenType int

const (
	TokenStartTag TokenType = iota
	TokenEndTag
	TokenText
	TokenEOF
)

type Token struct {
	Type       TokenType
	TagName    string
	Attributes []Attribute
	Text       string
}

type Tokenizer struct {
	input string
	pos   int
}

func NewTokenizer(html string) *Tokenizer {
	return &Tokenizer{input: html, pos: 0}
}

// NextToken returns the next tag or text run. Comments, <!...> declarations and
// <?...?> instructions are skipped. An unterminated comment or a tag missing its
// closing '>' ends the input.
func (t *Tokenizer) NextToken() Token {
	for t.pos < len(t.input) {
		if t.input[t.pos] != '<' {
			return t.readText()
		}

		if strings.HasPrefix(t.input[t.pos:], "<!--") {
			end := strings.Index(t.input[t.pos+4:], "-->")
			if end < 0 {
				t.pos = len(t.input)
				break
			}
			t.pos += 4 + end + 3
			continue
		}

		end := strings.IndexByte(t.input[t.pos:], '>')
		if end < 0 {
			t.pos = len(t.input)
			break
		}
		text := t.input[t.pos+1 : t.pos+end]
		t.pos += end + 1

		if strings.HasPrefix(text, "!") || strings.HasPrefix(text, "?") {
			continue
		}
		tag, attrs := parseTagText(text)
		if strings.HasPrefix(tag, "/") {
			if name := strings.TrimPrefix(tag, "/"); name != "" {
				return Token{Type: TokenEndTag, TagName: name}
			}
			continue
		}
		if tag == "" {
			continue
		}
		return Token{Type: TokenStartTag, TagName: tag, Attributes: attrs}
	}
	return Token{Type: TokenEOF}
}

func (t *Tokenizer) readText() Token {
	start := t.pos
	if i := strings.IndexByte(t.input[start:], '<'); i >= 0 {
		t.pos = start + i
	} else {
		t.pos = len(t.input)
	}
	return Token{Type: TokenText, Text: t.input[start:t.pos]}
}

// ReadRawUntil reads raw content until the closing end tag is found (e.g., </script>).
// This is used for raw text elements like <script> and <style> where '<' does not
// start a new tag. Without a closing tag the rest of the input is returned.
func (t *Tokenizer) ReadRawUntil(endTag string) string {
	needle := "</" + strings.ToLower(endTag) + ">"
	start := t.pos
	for i := start; i+len(needle) <= len(t.input); i++ {
		if t.input[i] == '<' && asciiEqualFold(t.input[i:i+len(needle)], needle) {
			t.pos = i + len(needle)
			return t.input[start:i]
		}
	}
	t.pos = len(t.input)
	return t.input[start:]
}

// asciiEqualFold compares s with the lower-case ASCII needle, folding only A-Z so that
// byte offsets in s stay valid.
func asciiEqualFold(s, needle string) bool {
	for i := 0; i < len(needle); i++ {
		c := s[i]
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c != needle[i] {
			return false
		}
	}
	return true
}

// parseTagText splits the text between '<' and '>' into a lower-cased tag name and its
// attributes. End tags keep their leading '/'.
func parseTagText(text string) (string, []Attribute) {
	s := strings.TrimLeftFunc(text, unicode.IsSpace)
	tag, rest := s, ""
	if i := strings.IndexFunc(s, unicode.IsSpace); i >= 0 {
		tag, rest = s[:i], s[i:]
	}
	tag = strings.ToLower(tag)
	if len(tag) > 1 {
		tag = strings.TrimSuffix(tag, "/")
	}

	var attrs []Attribute
	r := []rune(rest)
	n := len(r)
	i := 0
	skipSpace := func() {
		for i < n && unicode.IsSpace(r[i]) {
			i++
		}
	}
	for {
		skipSpace()
		if i >= n {
			break
		}
		if !isKeyRune(r[i]) {
			i++
			continue
		}
		start := i
		for i < n && isKeyRune(r[i]) {
			i++
		}
		key := strings.ToLower(string(r[start:i]))
		skipSpace()

		value := ""
		if i < n && r[i] == '=' {
			i++
			skipSpace()
			if i < n && (r[i] == '"' || r[i] == '\'') {
				quote := r[i]
				i++
				start := i
				for i < n && r[i] != quote {
					i++
				}
				value = string(r[start:i])
				if i < n {
					i++
				}
			} else {
				start := i
				for i < n && !unicode.IsSpace(r[i]) && r[i] != '>' {
					i++
				}
				value = string(r[start:i])
			}
		}
		attrs = setAttribute(attrs, key, value)
	}
	return tag, attrs
}

func isKeyRune(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '-' || c == '_' || c == ':'
}
