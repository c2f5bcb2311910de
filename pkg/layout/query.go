package layout

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// Flatten returns root and every descendant in pre-order.
func Flatten(root Node) []Node {
	var out []Node
	Walk(root, func(n Node) { out = append(out, n) })
	return out
}

// HitTest returns the last node in pre-order whose box contains (x, y), which is the
// innermost one. It returns nil when nothing is hit.
func HitTest(root Node, x, y float64) Node {
	var hit Node
	Walk(root, func(n Node) {
		if n.Bounds().Contains(x, y) {
			hit = n
		}
	})
	return hit
}

// HitRun is HitTest restricted to words and form controls.
func HitRun(root Node, x, y float64) Run {
	var hit Run
	Walk(root, func(n Node) {
		if r, ok := n.(Run); ok && r.Bounds().Contains(x, y) {
			hit = r
		}
	})
	return hit
}

func describe(n Node) string {
	b := n.Bounds()
	geom := fmt.Sprintf("x=%.1f y=%.1f w=%.1f h=%.1f", b.X, b.Y, b.Width, b.Height)
	switch v := n.(type) {
	case *DocumentLayout:
		return "DocumentLayout " + geom
	case *BlockLayout:
		return fmt.Sprintf("BlockLayout[%s] %s", v.Node, geom)
	case *LineLayout:
		return "LineLayout " + geom
	case *TextLayout:
		return fmt.Sprintf("TextLayout %q %s", v.Word, geom)
	case *InputLayout:
		return fmt.Sprintf("InputLayout %q %s", v.Text, geom)
	}
	return geom
}

// Dump renders the layout tree with positions, one node per line.
func Dump(root Node) string {
	tree := treeprint.New()
	dumpNode(tree, root)
	return tree.String()
}

func dumpNode(tree treeprint.Tree, n Node) {
	kids := n.Kids()
	if len(kids) == 0 {
		tree.AddNode(describe(n))
		return
	}
	branch := tree.AddBranch(describe(n))
	for _, k := range kids {
		dumpNode(branch, k)
	}
}
