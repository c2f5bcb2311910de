package css

// DefaultStyleSheet is applied before any author style sheet.
const DefaultStyleSheet = `
pre { background-color: gray; }
a { color: blue; }
i { font-style: italic; }
b { font-weight: bold; }
small { font-size: 90%; }
big { font-size: 110%; }
input { background-color: lightblue; }
button { background-color: orange; }
`

var defaultRules = ParseStylesheet(DefaultStyleSheet).Rules

// DefaultRules returns a fresh copy of the default style sheet's rules.
func DefaultRules() []Rule {
	return append([]Rule(nil), defaultRules...)
}
