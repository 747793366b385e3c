package region_tree

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/ecopia-map/quadtree_indexer/internal/data"
	"github.com/ecopia-map/quadtree_indexer/internal/quadtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTree(t *testing.T, opts *quadtree.TreeOptions) *RegionTree {
	tree, err := NewRegionTree(opts)
	require.NoError(t, err)
	return tree
}

func TestNewRegionTreeDefaultBound(t *testing.T) {
	tree := newTestTree(t, nil)
	box := tree.GetRootNode().GetBoundingBox()
	require.Equal(t, 0.0, box.Xmin)
	require.Equal(t, 100.0, box.Xmax)
	require.Equal(t, 0.0, box.Ymin)
	require.Equal(t, 100.0, box.Ymax)
	require.True(t, tree.GetRootNode().IsRoot())
	require.Equal(t, quadtree.DefaultNodeCapacity, tree.Root().Capacity())
}

func TestNewRegionTreeInvalidBound(t *testing.T) {
	_, err := NewRegionTree(&quadtree.TreeOptions{X: quadtree.Float64(50), XMax: quadtree.Float64(10)})
	require.True(t, errors.Is(err, quadtree.ErrInvalidBound))
}

func TestTreeScenarioThirdInsertSubdividesRoot(t *testing.T) {
	tree := newTestTree(t, &quadtree.TreeOptions{NodeCapacity: 2})

	require.NoError(t, tree.Add(1, 1))
	require.NoError(t, tree.Add(2, 2))
	require.True(t, tree.GetRootNode().IsLeaf())

	require.NoError(t, tree.Add(3, 3))
	require.False(t, tree.GetRootNode().IsLeaf())

	depth, err := tree.PointDepth(1, 1)
	require.NoError(t, err)
	require.Equal(t, 2, depth)

	neighbors, err := tree.FindNeighbors(3, 3)
	require.NoError(t, err)
	require.ElementsMatch(t, []data.Point{{X: 1, Y: 1}, {X: 2, Y: 2}}, neighbors)
}

func TestTreePointDepthNotFound(t *testing.T) {
	tree := newTestTree(t, nil)
	depth, err := tree.PointDepth(99, 99)
	require.NoError(t, err)
	require.Equal(t, 0, depth)

	require.NoError(t, tree.Add(10, 10))
	depth, err = tree.PointDepth(10, 11)
	require.NoError(t, err)
	require.Equal(t, 0, depth)

	// outside the root bound is also just "not found"
	depth, err = tree.PointDepth(500, 500)
	require.NoError(t, err)
	require.Equal(t, 0, depth)
}

func TestTreeInvalidArity(t *testing.T) {
	tree := newTestTree(t, nil)

	_, err := tree.FindNeighbors(5, 5, 5)
	require.True(t, errors.Is(err, data.ErrInvalidArity))

	_, err = tree.PointDepth(5)
	require.True(t, errors.Is(err, data.ErrInvalidArity))

	_, err = tree.PointDepth()
	require.True(t, errors.Is(err, data.ErrInvalidArity))

	err = tree.Add(1, 2, 3)
	require.True(t, errors.Is(err, data.ErrInvalidArity))
	require.Equal(t, int64(0), tree.CountPoints())
}

func TestTreeAddOutOfBounds(t *testing.T) {
	tree := newTestTree(t, nil)
	err := tree.Add(100.5, 3)
	require.True(t, errors.Is(err, ErrOutOfBounds))
	require.Equal(t, int64(0), tree.CountPoints())

	require.NoError(t, tree.Add(100, 100))
	require.NoError(t, tree.Add(0, 0))
}

func TestTreeNeighborsNeverIncludeSelf(t *testing.T) {
	tree := newTestTree(t, &quadtree.TreeOptions{NodeCapacity: 3})
	require.NoError(t, tree.Add(1, 1))

	neighbors, err := tree.FindNeighbors(1, 1)
	require.NoError(t, err)
	require.Empty(t, neighbors)

	neighbors, err = tree.FindNeighbors(42, 42)
	require.NoError(t, err)
	require.NotNil(t, neighbors)
	require.Empty(t, neighbors)
}

func TestTreeNeighborsAreLeafLocal(t *testing.T) {
	tree := newTestTree(t, &quadtree.TreeOptions{NodeCapacity: 2})
	for _, p := range []data.Point{{X: 10, Y: 10}, {X: 90, Y: 90}, {X: 20, Y: 20}, {X: 80, Y: 80}} {
		require.NoError(t, tree.AddPoint(p))
	}

	neighbors, err := tree.FindNeighbors(10, 10)
	require.NoError(t, err)
	require.Equal(t, []data.Point{{X: 20, Y: 20}}, neighbors)

	neighbors, err = tree.FindNeighbors(80, 80)
	require.NoError(t, err)
	require.Equal(t, []data.Point{{X: 90, Y: 90}}, neighbors)
}

func TestTreeNeighborsOfInternalNode(t *testing.T) {
	tree := newTestTree(t, &quadtree.TreeOptions{NodeCapacity: 1})
	require.NoError(t, tree.Add(10, 10))
	require.NoError(t, tree.Add(90, 90))

	// a point kept by an internal node sees its whole subtree
	root := tree.Root()
	root.points = append(root.points, data.NewPoint(50, 50))

	neighbors, err := tree.FindNeighbors(50, 50)
	require.NoError(t, err)
	require.ElementsMatch(t, []data.Point{{X: 10, Y: 10}, {X: 90, Y: 90}}, neighbors)

	depth, err := tree.PointDepth(50, 50)
	require.NoError(t, err)
	require.Equal(t, 1, depth)
}

func TestTreeRoundTripProperties(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	tree := newTestTree(t, &quadtree.TreeOptions{NodeCapacity: 4})

	points, err := tree.RandomPoints(rnd, 500, nil)
	require.NoError(t, err)
	for _, p := range points {
		require.NoError(t, tree.AddPoint(p))
	}
	require.Equal(t, int64(500), tree.CountPoints())
	require.Len(t, tree.CollectPoints(), 500)

	for _, p := range points {
		depth, err := tree.PointDepth(p.X, p.Y)
		require.NoError(t, err)
		require.GreaterOrEqual(t, depth, 1)

		node := tree.FindNode(p)
		require.NotNil(t, node)
		require.Equal(t, node.Depth(), depth)
		require.True(t, node.GetBoundingBox().Contains(p.X, p.Y))

		neighbors, err := tree.FindNeighbors(p.X, p.Y)
		require.NoError(t, err)
		require.NotContains(t, neighbors, p)
		for _, other := range neighbors {
			otherNeighbors, err := tree.FindNeighbors(other.X, other.Y)
			require.NoError(t, err)
			require.Contains(t, otherNeighbors, p)
		}
	}

	checkNodeInvariants(t, tree.Root())
	require.GreaterOrEqual(t, tree.Height(), 2)
}

func TestTreeRender(t *testing.T) {
	tree := newTestTree(t, &quadtree.TreeOptions{NodeCapacity: 1})
	require.NoError(t, tree.Add(1, 1))
	require.NoError(t, tree.Add(99, 99))

	out := tree.String()
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "node 0 [0, 100]x[0, 100] total:2", lines[0])
	assert.Equal(t, "  node 0-1 [50, 100]x[50, 100] leaf points:1 (99, 99)", lines[2])
	assert.Equal(t, "  node 0-2 [0, 50]x[0, 50] leaf points:1 (1, 1)", lines[3])
}

type countingObserver struct {
	inserted    int
	subdivided  int
	rejected    int
	deepestSeen int
}

func (o *countingObserver) PointInserted(depth int) {
	o.inserted++
	if depth > o.deepestSeen {
		o.deepestSeen = depth
	}
}

func (o *countingObserver) NodeSubdivided(depth int) {
	o.subdivided++
}

func (o *countingObserver) InsertRejected() {
	o.rejected++
}

func TestTreeObserver(t *testing.T) {
	observer := &countingObserver{}
	tree := newTestTree(t, &quadtree.TreeOptions{NodeCapacity: 2, Observer: observer})

	require.NoError(t, tree.Add(1, 1))
	require.NoError(t, tree.Add(2, 2))
	require.NoError(t, tree.Add(3, 3))
	require.Error(t, tree.Add(-1, 3))

	require.Equal(t, 3, observer.inserted)
	require.Equal(t, 1, observer.subdivided)
	require.Equal(t, 1, observer.rejected)
	require.Equal(t, 2, observer.deepestSeen)
}
