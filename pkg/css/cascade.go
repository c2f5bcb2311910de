package css

import (
	"sort"

	"webdoc/pkg/html"
)

// inheritedProperties are copied from parent to child before rules apply, with
// their root values.
var inheritedProperties = []Declaration{
	{Property: "font-size", Value: "16px"},
	{Property: "font-style", Value: "normal"},
	{Property: "font-weight", Value: "normal"},
	{Property: "color", Value: "black"},
	{Property: "font-family", Value: DefaultFontFamily},
}

// StyleMap holds the computed style of every node in a tree.
type StyleMap map[*html.Node]*Style

// Of returns the style of n, or the default style for nodes that were not styled.
func (m StyleMap) Of(n *html.Node) *Style {
	if s, ok := m[n]; ok {
		return s
	}
	return DefaultStyle()
}

// SortRules returns rules ordered by ascending priority. Rules of equal priority
// keep their source order, so later rules win.
func SortRules(rules []Rule) []Rule {
	sorted := append([]Rule(nil), rules...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Selector.Priority() < sorted[j].Selector.Priority()
	})
	return sorted
}

// ApplyStyles computes the style of root and all of its descendants, text nodes included.
func ApplyStyles(root *html.Node, rules []Rule) StyleMap {
	styles := make(StyleMap)
	applyStylesToNode(root, nil, DefaultFontSize, SortRules(rules), styles)
	return styles
}

// ApplyStylesToDocument styles doc with the default sheet, then linked, then the
// document's own <style> sheets.
func ApplyStylesToDocument(doc *html.Document, linked []Rule) StyleMap {
	rules := DefaultRules()
	rules = append(rules, linked...)
	for _, text := range doc.Stylesheets {
		rules = append(rules, ParseStylesheet(text).Rules...)
	}
	return ApplyStyles(doc.Root, rules)
}

// ComputeStyle resolves the style of one node. inherited holds the parent's computed
// values (nil at the root) and parentFontSize its resolved font size. The returned map
// is what the node's children inherit from.
func ComputeStyle(node *html.Node, sorted []Rule, inherited map[string]string, parentFontSize float64) (*Style, map[string]string) {
	computed := make(map[string]string, len(inheritedProperties)+1)
	for _, p := range inheritedProperties {
		if inherited != nil {
			computed[p.Property] = inherited[p.Property]
		} else {
			computed[p.Property] = p.Value
		}
	}

	for _, rule := range sorted {
		if !rule.Selector.Matches(node) {
			continue
		}
		for _, d := range rule.Declarations {
			computed[d.Property] = d.Value
		}
	}

	// Inline styles win over every rule
	if node.Type == html.ElementNode {
		if attr, ok := node.GetAttribute("style"); ok {
			for _, d := range ParseDeclarations(attr) {
				computed[d.Property] = d.Value
			}
		}
	}

	style := &Style{
		Color:      ParseColor(computed["color"]),
		FontSize:   parseFontSize(computed["font-size"], parentFontSize),
		FontWeight: parseFontWeight(computed["font-weight"]),
		FontStyle:  parseFontStyle(computed["font-style"]),
		FontFamily: computed["font-family"],
	}
	if bg, ok := computed["background-color"]; ok {
		style.BackgroundColor = ParseColor(bg)
	}
	computed["font-size"] = formatPx(style.FontSize)
	return style, computed
}

func applyStylesToNode(node *html.Node, inherited map[string]string, parentFontSize float64, sorted []Rule, styles StyleMap) {
	style, computed := ComputeStyle(node, sorted, inherited, parentFontSize)
	styles[node] = style
	for _, child := range node.Children {
		applyStylesToNode(child, computed, style.FontSize, sorted, styles)
	}
}
