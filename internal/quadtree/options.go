package quadtree

import (
	"errors"
	"fmt"
	"math"

	"github.com/ecopia-map/quadtree_indexer/internal/geometry"
)

const (
	DefaultXmin = 0.0
	DefaultYmin = 0.0
	DefaultXmax = 100.0
	DefaultYmax = 100.0

	// Number of points a leaf holds before the next insertion subdivides it
	DefaultNodeCapacity = 4
)

var ErrInvalidBound = errors.New("invalid tree bound")

// Contains the options needed to build a tree. Bound fields left nil take their default value.
type TreeOptions struct {
	X            *float64     `yaml:"x" json:"x,omitempty"`
	Y            *float64     `yaml:"y" json:"y,omitempty"`
	XMax         *float64     `yaml:"x_max" json:"x_max,omitempty"`
	YMax         *float64     `yaml:"y_max" json:"y_max,omitempty"`
	NodeCapacity int          `yaml:"node_capacity" json:"node_capacity,omitempty"`
	Observer     TreeObserver `yaml:"-" json:"-"`
}

func Float64(v float64) *float64 {
	return &v
}

// Returns the root bounding box described by the options, filling the defaults
func (opt *TreeOptions) BoundingBox() (*geometry.BoundingBox, error) {
	xMin, yMin, xMax, yMax := DefaultXmin, DefaultYmin, DefaultXmax, DefaultYmax
	if opt != nil {
		xMin = valueOr(opt.X, xMin)
		yMin = valueOr(opt.Y, yMin)
		xMax = valueOr(opt.XMax, xMax)
		yMax = valueOr(opt.YMax, yMax)
	}

	for _, v := range []float64{xMin, yMin, xMax, yMax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: non finite coordinate", ErrInvalidBound)
		}
	}
	if xMin > xMax || yMin > yMax {
		return nil, fmt.Errorf("%w: [%g, %g]x[%g, %g]", ErrInvalidBound, xMin, xMax, yMin, yMax)
	}

	return geometry.NewBoundingBox(xMin, xMax, yMin, yMax), nil
}

// Returns the configured node capacity, or DefaultNodeCapacity when unset
func (opt *TreeOptions) Capacity() int {
	if opt == nil || opt.NodeCapacity <= 0 {
		return DefaultNodeCapacity
	}
	return opt.NodeCapacity
}

func (opt *TreeOptions) Copy() *TreeOptions {
	newOpt := *opt
	return &newOpt
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}
