package region_tree

import (
	"strconv"
	"strings"
)

// Renders the tree as indented text, one line per node
func (tree *RegionTree) String() string {
	return tree.rootNode.String()
}

func (n *RegionNode) String() string {
	var sb strings.Builder
	n.render(&sb)
	return sb.String()
}

func (n *RegionNode) render(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("  ", n.depth-1))
	sb.WriteString("node ")
	sb.WriteString(n.nodeNID)
	sb.WriteString(" ")
	sb.WriteString(n.boundingBox.String())

	if n.IsLeaf() {
		sb.WriteString(" leaf points:")
		sb.WriteString(strconv.Itoa(len(n.points)))
		for _, p := range n.points {
			sb.WriteString(" ")
			sb.WriteString(p.String())
		}
		sb.WriteString("\n")
		return
	}

	sb.WriteString(" total:")
	sb.WriteString(strconv.FormatInt(n.CountPoints(), 10))
	sb.WriteString("\n")
	for _, child := range n.children {
		child.render(sb)
	}
}
