package html

import (
	"github.com/xlab/treeprint"
)

// Dump renders the tree rooted at n, one node per line.
func Dump(n *Node) string {
	tree := treeprint.New()
	dumpNode(tree, n)
	return tree.String()
}

func dumpNode(tree treeprint.Tree, n *Node) {
	if len(n.Children) == 0 {
		tree.AddNode(n.String())
		return
	}
	branch := tree.AddBranch(n.String())
	for _, c := range n.Children {
		dumpNode(branch, c)
	}
}
