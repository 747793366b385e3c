package indexer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ecopia-map/quadtree_indexer/internal/quadtree"
)

func writeConfig(t *testing.T, content string) string {
	filePath := filepath.Join(t.TempDir(), "quadtree.yaml")
	require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	return filePath
}

func TestLoadConfigFile(t *testing.T) {
	filePath := writeConfig(t, `
tree:
  x: -10
  x_max: 10
  node_capacity: 8
srid: 4326
tree_srid: 3857
strict: true
`)

	config, err := LoadConfigFile(filePath)
	require.NoError(t, err)
	require.Equal(t, -10.0, *config.Tree.X)
	require.Equal(t, 10.0, *config.Tree.XMax)
	require.Nil(t, config.Tree.Y)
	require.Nil(t, config.Tree.YMax)
	require.Equal(t, 8, config.Tree.NodeCapacity)

	opts := &IndexerOptions{Tree: quadtree.TreeOptions{YMax: quadtree.Float64(50)}}
	opts.ApplyConfigFile(config)
	require.Equal(t, 4326, opts.Srid)
	require.Equal(t, 3857, opts.TreeSrid)
	require.True(t, opts.Strict)

	bbox, err := opts.Tree.BoundingBox()
	require.NoError(t, err)
	require.Equal(t, -10.0, bbox.Xmin)
	require.Equal(t, 10.0, bbox.Xmax)
	require.Equal(t, 0.0, bbox.Ymin)
	require.Equal(t, 50.0, bbox.Ymax)
	require.Equal(t, 8, opts.Tree.Capacity())
}

func TestLoadConfigFileRejectsUnknownKeys(t *testing.T) {
	_, err := LoadConfigFile(writeConfig(t, "tree:\n  depth: 3\n"))
	require.Error(t, err)

	_, err = LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestIndexerOptionsCopy(t *testing.T) {
	opts := &IndexerOptions{
		Tree:         quadtree.TreeOptions{NodeCapacity: 3},
		QueryOptions: &QueryOptions{Point: []float64{1, 2}},
	}
	copied := opts.Copy()
	copied.QueryOptions.Point[0] = 9
	copied.Tree.NodeCapacity = 5

	require.Equal(t, 1.0, opts.QueryOptions.Point[0])
	require.Equal(t, 3, opts.Tree.NodeCapacity)
	require.Nil(t, copied.IndexOptions)
}
