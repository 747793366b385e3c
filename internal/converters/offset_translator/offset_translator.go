package offset_translator

import (
	"github.com/ecopia-map/quadtree_indexer/internal/converters"
	"github.com/ecopia-map/quadtree_indexer/internal/geometry"
)

type OffsetTranslator struct {
	OffsetX float64
	OffsetY float64
}

func NewOffsetTranslator(offsetX, offsetY float64) converters.CoordinateTranslator {
	return &OffsetTranslator{
		OffsetX: offsetX,
		OffsetY: offsetY,
	}
}

func (c *OffsetTranslator) Translate(coord geometry.Coordinate) geometry.Coordinate {
	return geometry.Coordinate{
		X: coord.X + c.OffsetX,
		Y: coord.Y + c.OffsetY,
	}
}
