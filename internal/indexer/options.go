package indexer

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/ecopia-map/quadtree_indexer/internal/quadtree"
)

const (
	CommandIndex     = "index"
	CommandDepth     = "depth"
	CommandNeighbors = "neighbors"
	CommandSample    = "sample"
)

// Contains the options needed to build and query a tree from point files
type IndexerOptions struct {
	Input            string               // Input point file/folder
	FolderProcessing bool                 // Enables the processing of all point files in folder
	Recursive        bool                 // Recursive lookup of point files in subfolders
	Srid             int                  // EPSG code of input points, 0 if already in the tree frame
	TreeSrid         int                  // EPSG code of the tree frame
	OffsetX          float64              // X offset applied to points once in the tree frame
	OffsetY          float64              // Y offset applied to points once in the tree frame
	Strict           bool                 // Fails on points outside the tree bound instead of skipping them
	MaxPoints        int64                // Maximum number of points loaded per file, 0 for no limit
	Tree             quadtree.TreeOptions // Bound and node capacity of the tree

	Command      string
	IndexOptions *IndexOptions
	QueryOptions *QueryOptions
}

type IndexOptions struct {
	Output      string // Output folder of the exported tree, empty to skip the export
	MetricsFile string // Prometheus textfile to write, empty to skip
	Print       bool   // Prints the tree structure
}

type QueryOptions struct {
	Point []float64 // Coordinates of the queried point
	Count int       // Number of random points to draw
	Seed  int64     // Seed of the random source
}

// Settings that can be provided with a YAML file instead of flags
type ConfigFile struct {
	Tree      quadtree.TreeOptions `yaml:"tree"`
	Srid      int                  `yaml:"srid"`
	TreeSrid  int                  `yaml:"tree_srid"`
	OffsetX   float64              `yaml:"offset_x"`
	OffsetY   float64              `yaml:"offset_y"`
	Strict    bool                 `yaml:"strict"`
	MaxPoints int64                `yaml:"max_points"`
}

func LoadConfigFile(filePath string) (*ConfigFile, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrap(err, "read config file")
	}

	config := &ConfigFile{}
	if err := yaml.UnmarshalStrict(content, config); err != nil {
		return nil, errors.Wrapf(err, "parse config file %s", filePath)
	}

	return config, nil
}

// Overrides the options with the values set in the config file
func (opt *IndexerOptions) ApplyConfigFile(config *ConfigFile) {
	if config.Tree.X != nil {
		opt.Tree.X = config.Tree.X
	}
	if config.Tree.Y != nil {
		opt.Tree.Y = config.Tree.Y
	}
	if config.Tree.XMax != nil {
		opt.Tree.XMax = config.Tree.XMax
	}
	if config.Tree.YMax != nil {
		opt.Tree.YMax = config.Tree.YMax
	}
	if config.Tree.NodeCapacity > 0 {
		opt.Tree.NodeCapacity = config.Tree.NodeCapacity
	}
	if config.Srid != 0 {
		opt.Srid = config.Srid
	}
	if config.TreeSrid != 0 {
		opt.TreeSrid = config.TreeSrid
	}
	if config.OffsetX != 0 {
		opt.OffsetX = config.OffsetX
	}
	if config.OffsetY != 0 {
		opt.OffsetY = config.OffsetY
	}
	if config.Strict {
		opt.Strict = true
	}
	if config.MaxPoints > 0 {
		opt.MaxPoints = config.MaxPoints
	}
}

func (opt *IndexerOptions) Copy() *IndexerOptions {
	newOpt := *opt
	newOpt.Tree = *opt.Tree.Copy()

	if opt.IndexOptions != nil {
		indexOpt := *opt.IndexOptions
		newOpt.IndexOptions = &indexOpt
	}

	if opt.QueryOptions != nil {
		queryOpt := *opt.QueryOptions
		queryOpt.Point = append([]float64(nil), opt.QueryOptions.Point...)
		newOpt.QueryOptions = &queryOpt
	}

	return &newOpt
}
