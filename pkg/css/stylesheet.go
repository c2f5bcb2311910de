package css

import (
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// Declaration is a single property: value pair. Properties are lower-cased.
type Declaration struct {
	Property string
	Value    string
}

// Rule represents a CSS rule (selector + declarations)
type Rule struct {
	Selector     Selector
	Declarations []Declaration // source order, a repeated property keeps its first position
}

// Stylesheet represents a parsed CSS stylesheet
type Stylesheet struct {
	Rules []Rule
}

// ParseStylesheet parses CSS text. Malformed rules and declarations are skipped;
// parsing never fails.
func ParseStylesheet(css string) *Stylesheet {
	return &Stylesheet{Rules: newParser(css).parse()}
}

// ParseDeclarations parses the body of a rule without braces, as found in a
// style attribute.
func ParseDeclarations(s string) []Declaration {
	return newParser(s).body()
}

func setDeclaration(decls []Declaration, prop, value string) []Declaration {
	for i := range decls {
		if decls[i].Property == prop {
			decls[i].Value = value
			return decls
		}
	}
	return append(decls, Declaration{Property: prop, Value: value})
}

// parser is a recursive descent parser over a rune slice. Each production
// returns an error instead of panicking; callers recover by skipping ahead.
type parser struct {
	s []rune
	i int
}

func newParser(s string) *parser {
	return &parser{s: []rune(s)}
}

func (p *parser) eof() bool {
	return p.i >= len(p.s)
}

// whitespace skips whitespace and /* */ comments.
func (p *parser) whitespace() {
	for !p.eof() {
		if unicode.IsSpace(p.s[p.i]) {
			p.i++
			continue
		}
		if p.i+1 < len(p.s) && p.s[p.i] == '/' && p.s[p.i+1] == '*' {
			j := p.i + 2
			for j+1 < len(p.s) && !(p.s[j] == '*' && p.s[j+1] == '/') {
				j++
			}
			if j+1 >= len(p.s) {
				p.i = len(p.s)
				return
			}
			p.i = j + 2
			continue
		}
		return
	}
}

func isWordRune(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || strings.ContainsRune("#-.%", c)
}

func (p *parser) word() (string, error) {
	start := p.i
	for !p.eof() && isWordRune(p.s[p.i]) {
		p.i++
	}
	if p.i == start {
		return "", errors.Errorf("expected word at offset %d", p.i)
	}
	return string(p.s[start:p.i]), nil
}

func (p *parser) literal(c rune) error {
	if p.eof() || p.s[p.i] != c {
		return errors.Errorf("expected %q at offset %d", c, p.i)
	}
	p.i++
	return nil
}

// ignoreUntil advances to the next rune in chars and returns it, or 0 at the end of input.
func (p *parser) ignoreUntil(chars string) rune {
	for !p.eof() {
		if strings.ContainsRune(chars, p.s[p.i]) {
			return p.s[p.i]
		}
		p.i++
	}
	return 0
}

func (p *parser) pair() (string, string, error) {
	prop, err := p.word()
	if err != nil {
		return "", "", err
	}
	p.whitespace()
	if err := p.literal(':'); err != nil {
		return "", "", err
	}
	p.whitespace()
	val, err := p.word()
	if err != nil {
		return "", "", err
	}
	return strings.ToLower(prop), val, nil
}

// body parses declarations up to the closing brace. A pair is kept even when the
// following ';' is missing.
func (p *parser) body() []Declaration {
	var decls []Declaration
	p.whitespace()
	for !p.eof() && p.s[p.i] != '}' {
		err := func() error {
			prop, val, err := p.pair()
			if err != nil {
				return err
			}
			decls = setDeclaration(decls, prop, val)
			p.whitespace()
			if err := p.literal(';'); err != nil {
				return err
			}
			p.whitespace()
			return nil
		}()
		if err == nil {
			continue
		}
		if p.ignoreUntil(";}") != ';' {
			break
		}
		p.i++
		p.whitespace()
	}
	return decls
}

func (p *parser) selector() (Selector, error) {
	tag, err := p.word()
	if err != nil {
		return nil, err
	}
	var out Selector = TagSelector{Tag: strings.ToLower(tag)}
	p.whitespace()
	for !p.eof() && p.s[p.i] != '{' {
		tag, err := p.word()
		if err != nil {
			return nil, err
		}
		out = DescendantSelector{Ancestor: out, Descendant: TagSelector{Tag: strings.ToLower(tag)}}
		p.whitespace()
	}
	return out, nil
}

func (p *parser) rule() (Rule, error) {
	p.whitespace()
	sel, err := p.selector()
	if err != nil {
		return Rule{}, err
	}
	if err := p.literal('{'); err != nil {
		return Rule{}, err
	}
	decls := p.body()
	if err := p.literal('}'); err != nil {
		return Rule{}, err
	}
	return Rule{Selector: sel, Declarations: decls}, nil
}

func (p *parser) parse() []Rule {
	var rules []Rule
	for !p.eof() {
		rule, err := p.rule()
		if err == nil {
			rules = append(rules, rule)
			p.whitespace()
			continue
		}
		if p.ignoreUntil("}") != '}' {
			break
		}
		p.i++
		p.whitespace()
	}
	return rules
}
