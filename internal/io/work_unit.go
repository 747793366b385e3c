package io

import (
	"github.com/ecopia-map/quadtree_indexer/internal/quadtree"
)

// Contains the minimal data needed to export a single node, i.e. a points.json file and, for the root
// and internal nodes, a node.json file
type WorkUnit struct {
	Node     quadtree.INode
	BasePath string
}
