package pkg

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecopia-map/quadtree_indexer/internal/data"
	"github.com/ecopia-map/quadtree_indexer/internal/indexer"
	"github.com/ecopia-map/quadtree_indexer/internal/io"
	"github.com/ecopia-map/quadtree_indexer/internal/quadtree"
	"github.com/ecopia-map/quadtree_indexer/pkg/algorithm_manager/std_algorithm_manager"
	"github.com/ecopia-map/quadtree_indexer/tools"
)

func writePointFile(t *testing.T, dir string, name string, content string) string {
	filePath := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	return filePath
}

func newTestIndexer(opts *indexer.IndexerOptions) *Indexer {
	return NewIndexer(tools.NewStandardFileFinder(), std_algorithm_manager.NewAlgorithmManager(opts))
}

func testOptions(t *testing.T, command string) *indexer.IndexerOptions {
	dir := t.TempDir()
	input := writePointFile(t, dir, "points.csv", "# x,y\n1,1\n2,2\n3,3\n150,150\n")
	return &indexer.IndexerOptions{
		Input:   input,
		Command: command,
		Tree:    quadtree.TreeOptions{NodeCapacity: 2},
	}
}

func TestBuildTreeLoadsPoints(t *testing.T) {
	tools.DisableLogger()
	opts := testOptions(t, indexer.CommandIndex)

	tree, result, err := newTestIndexer(opts).BuildTree(opts)
	require.NoError(t, err)
	assert.Equal(t, int64(5), result.Lines)
	assert.Equal(t, int64(3), result.Loaded)
	assert.Equal(t, int64(1), result.Rejected)
	assert.Equal(t, int64(3), tree.CountPoints())
	assert.False(t, tree.Root().IsLeaf())
}

func TestBuildTreeLoadsFolder(t *testing.T) {
	tools.DisableLogger()
	dir := t.TempDir()
	writePointFile(t, dir, "a.csv", "1,1\n2,2\n")
	writePointFile(t, dir, "b.txt", "90 90\n-5 3\n")
	writePointFile(t, dir, "notes.md", "50,50\n")
	opts := &indexer.IndexerOptions{
		Input:            dir,
		FolderProcessing: true,
		Command:          indexer.CommandIndex,
	}

	tree, result, err := newTestIndexer(opts).BuildTree(opts)
	require.NoError(t, err)
	assert.Equal(t, int64(4), result.Lines)
	assert.Equal(t, int64(3), result.Loaded)
	assert.Equal(t, int64(1), result.Rejected)
	assert.Equal(t, int64(3), tree.CountPoints())
}

func TestBuildTreeStrictFails(t *testing.T) {
	tools.DisableLogger()
	opts := testOptions(t, indexer.CommandIndex)
	opts.Strict = true

	_, result, err := newTestIndexer(opts).BuildTree(opts)
	require.Error(t, err)
	assert.Equal(t, int64(3), result.Loaded)
}

func TestBuildTreeWithoutInput(t *testing.T) {
	opts := &indexer.IndexerOptions{Command: indexer.CommandSample}

	tree, result, err := newTestIndexer(opts).BuildTree(opts)
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.Loaded)
	assert.Equal(t, int64(0), tree.CountPoints())
}

func TestRunIndexExportsTree(t *testing.T) {
	tools.DisableLogger()
	opts := testOptions(t, indexer.CommandIndex)
	out := t.TempDir()
	metricsFile := filepath.Join(t.TempDir(), "quadtree.prom")
	opts.IndexOptions = &indexer.IndexOptions{
		Output:      out,
		MetricsFile: metricsFile,
	}

	require.NoError(t, newTestIndexer(opts).RunIndex(context.Background(), opts))

	assert.FileExists(t, filepath.Join(out, io.ManifestFileName))
	content, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "quadtree_inserted_points_total 3")
	assert.Contains(t, string(content), "quadtree_rejected_points_total 1")
}

func TestRunDepthAndNeighbors(t *testing.T) {
	tools.DisableLogger()
	opts := testOptions(t, indexer.CommandDepth)
	opts.QueryOptions = &indexer.QueryOptions{Point: []float64{1, 1}}

	depth, err := newTestIndexer(opts).RunDepth(opts)
	require.NoError(t, err)
	assert.Equal(t, 2, depth)

	opts.QueryOptions.Point = []float64{3, 3}
	neighbors, err := newTestIndexer(opts).RunNeighbors(opts)
	require.NoError(t, err)
	assert.Equal(t, []data.Point{{X: 1, Y: 1}, {X: 2, Y: 2}}, neighbors)

	opts.QueryOptions.Point = []float64{5, 5, 5}
	_, err = newTestIndexer(opts).RunNeighbors(opts)
	require.ErrorIs(t, err, data.ErrInvalidArity)
}

func TestRunSampleIsReproducible(t *testing.T) {
	opts := &indexer.IndexerOptions{
		Command: indexer.CommandSample,
		Tree: quadtree.TreeOptions{
			XMax: quadtree.Float64(10),
			YMax: quadtree.Float64(10),
		},
		QueryOptions: &indexer.QueryOptions{Count: 20, Seed: 42},
	}

	var visited []data.Point
	first, err := newTestIndexer(opts).RunSample(opts, func(p data.Point) bool {
		visited = append(visited, p)
		return true
	})
	require.NoError(t, err)
	require.Len(t, first, 20)
	assert.Equal(t, first, visited)

	second, err := newTestIndexer(opts).RunSample(opts, nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
