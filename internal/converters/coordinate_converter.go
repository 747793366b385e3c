package converters

import (
	"github.com/ecopia-map/quadtree_indexer/internal/geometry"
)

type CoordinateConverter interface {
	ConvertCoordinateSrid(sourceSrid int, targetSrid int, coord geometry.Coordinate) (geometry.Coordinate, error)
	Cleanup()
}

// Shifts coordinates once they are expressed in the tree reference system
type CoordinateTranslator interface {
	Translate(coord geometry.Coordinate) geometry.Coordinate
}

// Leaves coordinates untouched. Used when the input points are already expressed in the tree frame.
type IdentityConverter struct{}

func NewIdentityConverter() CoordinateConverter {
	return &IdentityConverter{}
}

func (c *IdentityConverter) ConvertCoordinateSrid(sourceSrid int, targetSrid int, coord geometry.Coordinate) (geometry.Coordinate, error) {
	return coord, nil
}

func (c *IdentityConverter) Cleanup() {}
