package std_algorithm_manager

import (
	"github.com/ecopia-map/quadtree_indexer/internal/converters"
	"github.com/ecopia-map/quadtree_indexer/internal/converters/offset_translator"
	"github.com/ecopia-map/quadtree_indexer/internal/converters/proj4_coordinate_converter"
	"github.com/ecopia-map/quadtree_indexer/internal/indexer"
	"github.com/ecopia-map/quadtree_indexer/internal/metrics"
	"github.com/ecopia-map/quadtree_indexer/internal/quadtree/region_tree"
	"github.com/ecopia-map/quadtree_indexer/pkg/algorithm_manager"
)

type StandardAlgorithmManager struct {
	options             *indexer.IndexerOptions
	coordinateConverter converters.CoordinateConverter
	translator          converters.CoordinateTranslator
	treeMetrics         *metrics.TreeMetrics
}

func NewAlgorithmManager(opts *indexer.IndexerOptions) algorithm_manager.AlgorithmManager {
	var converter converters.CoordinateConverter
	if opts.Srid != 0 && opts.Srid != opts.TreeSrid {
		converter = proj4_coordinate_converter.NewProj4CoordinateConverter()
	} else {
		converter = converters.NewIdentityConverter()
	}

	return &StandardAlgorithmManager{
		options:             opts,
		coordinateConverter: converter,
		translator:          offset_translator.NewOffsetTranslator(opts.OffsetX, opts.OffsetY),
		treeMetrics:         metrics.NewTreeMetrics(),
	}
}

// Builds a new empty tree observed by the manager metrics
func (m *StandardAlgorithmManager) GetTreeAlgorithm() (*region_tree.RegionTree, error) {
	treeOpts := m.options.Tree.Copy()
	treeOpts.Observer = m.treeMetrics
	return region_tree.NewRegionTree(treeOpts)
}

func (m *StandardAlgorithmManager) GetCoordinateConverterAlgorithm() converters.CoordinateConverter {
	return m.coordinateConverter
}

func (m *StandardAlgorithmManager) GetCoordinateTranslatorAlgorithm() converters.CoordinateTranslator {
	return m.translator
}

func (m *StandardAlgorithmManager) GetTreeMetrics() *metrics.TreeMetrics {
	return m.treeMetrics
}
