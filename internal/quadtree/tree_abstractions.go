package quadtree

import (
	"math/rand"

	"github.com/ecopia-map/quadtree_indexer/internal/data"
	"github.com/ecopia-map/quadtree_indexer/internal/geometry"
)

type ITree interface {
	GetRootNode() INode
	// Adds a Point to the Tree
	AddPoint(point data.Point) error
	Add(coords ...float64) error
	RandomPoint(rnd *rand.Rand) (data.Point, error)
	RandomPoints(rnd *rand.Rand, count int, visit func(data.Point) bool) ([]data.Point, error)
	PointDepth(coords ...float64) (int, error)
	FindNeighbors(coords ...float64) ([]data.Point, error)
	CollectPoints() []data.Point
	CountPoints() int64
	String() string
}

type INode interface {
	NodeID() string
	Depth() int
	IsRoot() bool
	IsLeaf() bool
	Contains(point data.Point) bool
	GetBoundingBox() *geometry.BoundingBox
	// Children in quadrant order. All entries are nil while the node is a leaf.
	GetChildren() [4]INode
	GetPoints() []data.Point
	CollectPoints() []data.Point
	CountPoints() int64
	NumberOfPoints() int
}

// Receives notifications about structural changes of a tree
type TreeObserver interface {
	PointInserted(depth int)
	NodeSubdivided(depth int)
	InsertRejected()
}
