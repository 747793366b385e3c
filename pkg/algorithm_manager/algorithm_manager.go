package algorithm_manager

import (
	"github.com/ecopia-map/quadtree_indexer/internal/converters"
	"github.com/ecopia-map/quadtree_indexer/internal/metrics"
	"github.com/ecopia-map/quadtree_indexer/internal/quadtree/region_tree"
)

type AlgorithmManager interface {
	GetTreeAlgorithm() (*region_tree.RegionTree, error)
	GetCoordinateConverterAlgorithm() converters.CoordinateConverter
	GetCoordinateTranslatorAlgorithm() converters.CoordinateTranslator
	GetTreeMetrics() *metrics.TreeMetrics
}
