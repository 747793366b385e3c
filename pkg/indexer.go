package pkg

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/ecopia-map/quadtree_indexer/internal/data"
	"github.com/ecopia-map/quadtree_indexer/internal/indexer"
	"github.com/ecopia-map/quadtree_indexer/internal/io"
	"github.com/ecopia-map/quadtree_indexer/internal/point_loader"
	"github.com/ecopia-map/quadtree_indexer/internal/quadtree/region_tree"
	"github.com/ecopia-map/quadtree_indexer/pkg/algorithm_manager"
	"github.com/ecopia-map/quadtree_indexer/tools"
)

type Indexer struct {
	fileFinder       tools.FileFinder
	algorithmManager algorithm_manager.AlgorithmManager
}

func NewIndexer(fileFinder tools.FileFinder, algorithmManager algorithm_manager.AlgorithmManager) *Indexer {
	return &Indexer{
		fileFinder:       fileFinder,
		algorithmManager: algorithmManager,
	}
}

// Builds the tree and loads into it the points of the input files. An empty input builds an empty tree.
func (ix *Indexer) BuildTree(opts *indexer.IndexerOptions) (*region_tree.RegionTree, *point_loader.LoadResult, error) {
	tree, err := ix.algorithmManager.GetTreeAlgorithm()
	if err != nil {
		return nil, nil, err
	}
	if opts.Input == "" {
		return tree, &point_loader.LoadResult{}, nil
	}

	glog.Infoln("Preparing list of files to process...")
	pointFiles, err := ix.fileFinder.GetPointFilesToProcess(opts)
	if err != nil {
		return nil, nil, errors.Wrap(err, "list point files")
	}
	for i, filePath := range pointFiles {
		glog.Infof("point_file path %d [%s]", i+1, filePath)
	}

	converter := ix.algorithmManager.GetCoordinateConverterAlgorithm()
	defer converter.Cleanup()

	loader := point_loader.NewPointFileLoader(
		tree,
		converter,
		ix.algorithmManager.GetCoordinateTranslatorAlgorithm(),
		point_loader.LoaderOptions{
			Srid:      opts.Srid,
			TreeSrid:  opts.TreeSrid,
			Strict:    opts.Strict,
			MaxPoints: opts.MaxPoints,
		},
	)

	total, err := loader.LoadFiles(pointFiles)
	if err != nil {
		return nil, total, err
	}

	return tree, total, nil
}

// Builds the tree, prints its summary and eventually exports it and its metrics
func (ix *Indexer) RunIndex(ctx context.Context, opts *indexer.IndexerOptions) error {
	tree, result, err := ix.BuildTree(opts)
	if err != nil {
		return err
	}

	tools.LogOutput(Summary(tree, result))

	indexOpts := opts.IndexOptions
	if indexOpts == nil {
		return nil
	}

	if indexOpts.Print {
		fmt.Print(tree.String())
	}

	if indexOpts.Output != "" {
		tools.LogOutput("> exporting data...")
		manifest, err := io.NewExporter(0).Export(ctx, tree, tree.Options().Capacity(), indexOpts.Output)
		if err != nil {
			return errors.Wrap(err, "export tree")
		}
		tools.LogOutput(fmt.Sprintf("> exported %s nodes, run_id %s", humanize.Comma(manifest.Nodes), manifest.RunID))
	}

	if indexOpts.MetricsFile != "" {
		if err := ix.algorithmManager.GetTreeMetrics().WriteToTextfile(indexOpts.MetricsFile); err != nil {
			return errors.Wrap(err, "write metrics textfile")
		}
	}

	return nil
}

func (ix *Indexer) RunDepth(opts *indexer.IndexerOptions) (int, error) {
	tree, _, err := ix.BuildTree(opts)
	if err != nil {
		return 0, err
	}
	return tree.PointDepth(opts.QueryOptions.Point...)
}

func (ix *Indexer) RunNeighbors(opts *indexer.IndexerOptions) ([]data.Point, error) {
	tree, _, err := ix.BuildTree(opts)
	if err != nil {
		return nil, err
	}
	return tree.FindNeighbors(opts.QueryOptions.Point...)
}

// Draws distinct random points from the tree bound, calling visit on each one as it is drawn.
// The draw stops early when visit returns false.
func (ix *Indexer) RunSample(opts *indexer.IndexerOptions, visit func(data.Point) bool) ([]data.Point, error) {
	tree, _, err := ix.BuildTree(opts)
	if err != nil {
		return nil, err
	}

	seed := opts.QueryOptions.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	glog.V(1).Infof("sampling %d points with seed %d", opts.QueryOptions.Count, seed)

	return tree.RandomPoints(rand.New(rand.NewSource(seed)), opts.QueryOptions.Count, visit)
}

// One line summary of a loaded tree
func Summary(tree *region_tree.RegionTree, result *point_loader.LoadResult) string {
	return fmt.Sprintf(
		"> %s points indexed (%s lines read, %s rejected), height %d, bound %s",
		humanize.Comma(tree.CountPoints()),
		humanize.Comma(result.Lines),
		humanize.Comma(result.Rejected),
		tree.Height(),
		tree.Root().GetBoundingBox(),
	)
}
