package tools

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ecopia-map/quadtree_indexer/internal/indexer"
)

func TestGetPointFilesToProcess(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "nested")
	require.NoError(t, os.MkdirAll(nested, 0755))
	for _, name := range []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "b.CSV"),
		filepath.Join(dir, "notes.md"),
		filepath.Join(nested, "c.xy"),
	} {
		require.NoError(t, os.WriteFile(name, []byte("1,1\n"), 0644))
	}

	finder := NewStandardFileFinder()

	files, err := finder.GetPointFilesToProcess(&indexer.IndexerOptions{Input: dir, FolderProcessing: true})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.CSV")}, files)

	files, err = finder.GetPointFilesToProcess(&indexer.IndexerOptions{Input: dir, FolderProcessing: true, Recursive: true})
	require.NoError(t, err)
	require.Len(t, files, 3)

	files, err = finder.GetPointFilesToProcess(&indexer.IndexerOptions{Input: "single.txt"})
	require.NoError(t, err)
	require.Equal(t, []string{"single.txt"}, files)
}
