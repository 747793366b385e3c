package region_tree

import (
	"github.com/golang/glog"

	"github.com/ecopia-map/quadtree_indexer/internal/data"
	"github.com/ecopia-map/quadtree_indexer/internal/quadtree"
)

const rootNodeNID = "0"

// Represents a region quadtree of points. The tree owns a single root node spanning the configured
// bound; every query is a top-down traversal from it.
//
// RegionTree is not safe for concurrent use: insertions mutate nodes in place.
type RegionTree struct {
	rootNode *RegionNode
	options  *quadtree.TreeOptions
	observer quadtree.TreeObserver
}

// Builds an empty RegionTree. A nil options value builds the default [0,100]x[0,100] tree.
func NewRegionTree(opts *quadtree.TreeOptions) (*RegionTree, error) {
	if opts == nil {
		opts = &quadtree.TreeOptions{}
	}

	box, err := opts.BoundingBox()
	if err != nil {
		return nil, err
	}

	tree := &RegionTree{
		options:  opts.Copy(),
		observer: opts.Observer,
	}
	tree.rootNode = NewRegionNode(rootNodeNID, tree, box, 1, opts.Capacity(), true)

	glog.V(1).Infof("new region tree. bound:%s capacity:%d", box, opts.Capacity())

	return tree, nil
}

func (tree *RegionTree) GetRootNode() quadtree.INode {
	return tree.rootNode
}

func (tree *RegionTree) Root() *RegionNode {
	return tree.rootNode
}

func (tree *RegionTree) Options() *quadtree.TreeOptions {
	return tree.options
}

// Adds a point to the tree. Fails with ErrOutOfBounds if the point is outside the root bound.
func (tree *RegionTree) AddPoint(point data.Point) error {
	_, err := tree.rootNode.Insert(point)
	return err
}

// Adds the point with the given coordinates. Fails with data.ErrInvalidArity unless exactly two
// coordinates are given.
func (tree *RegionTree) Add(coords ...float64) error {
	point, err := data.NewPointFromCoordinates(coords...)
	if err != nil {
		return err
	}
	return tree.AddPoint(point)
}

func (tree *RegionTree) CollectPoints() []data.Point {
	return tree.rootNode.CollectPoints()
}

func (tree *RegionTree) CountPoints() int64 {
	return tree.rootNode.CountPoints()
}

// Returns the depth of the node storing the point, the root being at depth 1.
// A point that is not stored in the tree has depth 0; this is not an error.
func (tree *RegionTree) PointDepth(coords ...float64) (int, error) {
	point, err := data.NewPointFromCoordinates(coords...)
	if err != nil {
		return 0, err
	}

	return pointDepth(point, 1, tree.rootNode), nil
}

func pointDepth(point data.Point, depth int, node *RegionNode) int {
	if node.Contains(point) {
		return depth
	}
	if node.IsLeaf() || !node.boundingBox.Contains(point.X, point.Y) {
		return 0
	}
	return pointDepth(point, depth+1, node.childFor(point))
}

// Returns the points adjacent to the given one. Two points are adjacent when they are stored in
// the same leaf. If the node storing the point is internal, every point of its subtree is adjacent.
// The point itself is never part of the result. A point that is not stored in the tree has no
// neighbors; this is not an error.
func (tree *RegionTree) FindNeighbors(coords ...float64) ([]data.Point, error) {
	point, err := data.NewPointFromCoordinates(coords...)
	if err != nil {
		return nil, err
	}

	return findNeighbors(point, tree.rootNode), nil
}

func findNeighbors(point data.Point, node *RegionNode) []data.Point {
	if node.Contains(point) {
		var candidates []data.Point
		switch node.state {
		case leafState:
			candidates = node.points
		case internalState:
			candidates = node.CollectPoints()
		}
		return withoutPoint(candidates, point)
	}

	if node.IsLeaf() || !node.boundingBox.Contains(point.X, point.Y) {
		return []data.Point{}
	}
	return findNeighbors(point, node.childFor(point))
}

func withoutPoint(points []data.Point, excluded data.Point) []data.Point {
	result := make([]data.Point, 0, len(points))
	for _, p := range points {
		if p != excluded {
			result = append(result, p)
		}
	}
	return result
}

// Returns the maximum depth reached by the tree
func (tree *RegionTree) Height() int {
	return height(tree.rootNode)
}

func height(node *RegionNode) int {
	if node.IsLeaf() {
		return node.depth
	}
	max := node.depth
	for _, child := range node.children {
		if h := height(child); h > max {
			max = h
		}
	}
	return max
}

// Returns the node storing the point, or nil
func (tree *RegionTree) FindNode(point data.Point) *RegionNode {
	node := tree.rootNode
	for {
		if node.Contains(point) {
			return node
		}
		if node.IsLeaf() || !node.boundingBox.Contains(point.X, point.Y) {
			return nil
		}
		node = node.childFor(point)
	}
}

var _ quadtree.ITree = (*RegionTree)(nil)
var _ quadtree.INode = (*RegionNode)(nil)
