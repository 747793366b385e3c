package region_tree

import (
	"errors"
	"fmt"

	"github.com/ecopia-map/quadtree_indexer/internal/data"
	"github.com/ecopia-map/quadtree_indexer/internal/geometry"
	"github.com/ecopia-map/quadtree_indexer/internal/quadtree"
)

// Returned when inserting a point that lies outside the bounding box of the node
var ErrOutOfBounds = errors.New("point out of bounds")

type nodeState uint8

const (
	// the node stores points directly and has no children
	leafState nodeState = iota
	// the node has exactly four children and stores no points of its own
	internalState
)

// Models a node of the quadtree, which can either be a leaf (a node without children nodes) or an
// internal node owning exactly four children, one per quadrant of its bounding box.
// A leaf stores up to capacity points; the insertion that finds it full subdivides it and moves
// all its points, the new one included, to the children.
type RegionNode struct {
	nodeNID     string
	root        bool
	depth       int
	capacity    int
	boundingBox *geometry.BoundingBox
	state       nodeState
	points      []data.Point
	children    [4]*RegionNode
	extend      *RegionNodeExtend
}

type RegionNodeExtend struct {
	tree *RegionTree
}

// Instantiates a new empty leaf RegionNode
func NewRegionNode(
	nodeNID string,
	tree *RegionTree,
	boundingBox *geometry.BoundingBox,
	depth int,
	capacity int,
	root bool,
) *RegionNode {
	if capacity <= 0 {
		capacity = quadtree.DefaultNodeCapacity
	}

	return &RegionNode{
		nodeNID:     nodeNID,
		root:        root,
		depth:       depth,
		capacity:    capacity,
		boundingBox: boundingBox,
		state:       leafState,
		points:      make([]data.Point, 0, capacity),
		extend: &RegionNodeExtend{
			tree: tree,
		},
	}
}

// Adds a Point to the subtree rooted at this node, subdividing full leaves on the way.
// Fails with ErrOutOfBounds, leaving the node untouched, if the point is outside the node bounding box.
// Returns the node itself.
func (n *RegionNode) Insert(point data.Point) (*RegionNode, error) {
	if !n.boundingBox.Contains(point.X, point.Y) {
		n.notifyInsertRejected()
		return n, fmt.Errorf("%w: %s outside %s", ErrOutOfBounds, point, n.boundingBox)
	}

	n.insert(point)
	return n, nil
}

// point is known to be inside the bounding box
func (n *RegionNode) insert(point data.Point) {
	switch n.state {
	case leafState:
		if len(n.points) < n.capacity {
			n.addPoint(point)
			return
		}
		n.subdivide()
		n.childFor(point).addPoint(point)
	case internalState:
		n.childFor(point).insert(point)
	default:
		panic(fmt.Sprintf("region node %s in unknown state %d", n.nodeNID, n.state))
	}
}

func (n *RegionNode) addPoint(point data.Point) {
	n.points = append(n.points, point)
	if observer := n.observer(); observer != nil {
		observer.PointInserted(n.depth)
	}
}

// splits the node into four quadrants and moves the stored points to them.
// The children receive the points without checking their own capacity.
func (n *RegionNode) subdivide() {
	if n.state == internalState {
		return
	}

	for _, quadrant := range geometry.Quadrants {
		n.children[quadrant] = NewRegionNode(
			fmt.Sprintf("%s-%d", n.nodeNID, quadrant),
			n.extend.tree,
			geometry.NewBoundingBoxFromParent(n.boundingBox, quadrant),
			n.depth+1,
			n.capacity,
			false,
		)
	}

	for _, point := range n.points {
		child := n.childFor(point)
		child.points = append(child.points, point)
	}

	n.points = nil
	n.state = internalState

	if observer := n.observer(); observer != nil {
		observer.NodeSubdivided(n.depth)
	}
}

// returns the child whose quadrant contains the point
func (n *RegionNode) childFor(point data.Point) *RegionNode {
	return n.children[geometry.QuadrantOf(n.boundingBox, point.X, point.Y)]
}

func (n *RegionNode) NodeID() string {
	return n.nodeNID
}

func (n *RegionNode) Depth() int {
	return n.depth
}

func (n *RegionNode) IsRoot() bool {
	return n.root
}

func (n *RegionNode) IsLeaf() bool {
	return n.state == leafState
}

func (n *RegionNode) Capacity() int {
	return n.capacity
}

// Returns true if the point is stored directly in this node. Children are not searched.
func (n *RegionNode) Contains(point data.Point) bool {
	for _, p := range n.points {
		if p == point {
			return true
		}
	}
	return false
}

func (n *RegionNode) GetBoundingBox() *geometry.BoundingBox {
	return n.boundingBox
}

func (n *RegionNode) GetChildren() [4]quadtree.INode {
	var children [4]quadtree.INode
	if n.state == leafState {
		return children
	}
	for i, child := range n.children {
		children[i] = child
	}
	return children
}

func (n *RegionNode) GetPoints() []data.Point {
	return n.points
}

// Number of points stored in this node, children excluded
func (n *RegionNode) NumberOfPoints() int {
	return len(n.points)
}

// Returns every point stored in the subtree: the points of this node first, then the points of
// each child in quadrant order
func (n *RegionNode) CollectPoints() []data.Point {
	points := make([]data.Point, 0, n.CountPoints())
	return n.collectPoints(points)
}

func (n *RegionNode) collectPoints(points []data.Point) []data.Point {
	points = append(points, n.points...)
	if n.state == internalState {
		for _, child := range n.children {
			points = child.collectPoints(points)
		}
	}
	return points
}

// Total number of points stored in this node and its children
func (n *RegionNode) CountPoints() int64 {
	total := int64(len(n.points))
	if n.state == internalState {
		for _, child := range n.children {
			total += child.CountPoints()
		}
	}
	return total
}

func (n *RegionNode) observer() quadtree.TreeObserver {
	if n.extend == nil || n.extend.tree == nil {
		return nil
	}
	return n.extend.tree.observer
}

func (n *RegionNode) notifyInsertRejected() {
	if observer := n.observer(); observer != nil {
		observer.InsertRejected()
	}
}
