package quadtree

import (
	"errors"
	"math"
	"testing"

	"github.com/ecopia-map/quadtree_indexer/internal/geometry"
	"github.com/stretchr/testify/require"
)

func TestTreeOptionsDefaults(t *testing.T) {
	var nilOpts *TreeOptions
	bbox, err := nilOpts.BoundingBox()
	require.NoError(t, err)
	require.Equal(t, geometry.NewBoundingBox(0, 100, 0, 100), bbox)
	require.Equal(t, DefaultNodeCapacity, nilOpts.Capacity())

	bbox, err = (&TreeOptions{XMax: Float64(10)}).BoundingBox()
	require.NoError(t, err)
	require.Equal(t, geometry.NewBoundingBox(0, 10, 0, 100), bbox)
}

func TestTreeOptionsExplicitZero(t *testing.T) {
	opts := &TreeOptions{X: Float64(-5), XMax: Float64(0), Y: Float64(0), YMax: Float64(0), NodeCapacity: 2}
	bbox, err := opts.BoundingBox()
	require.NoError(t, err)
	require.Equal(t, geometry.NewBoundingBox(-5, 0, 0, 0), bbox)
	require.Equal(t, 2, opts.Capacity())
}

func TestTreeOptionsInvalidBound(t *testing.T) {
	_, err := (&TreeOptions{X: Float64(10), XMax: Float64(5)}).BoundingBox()
	require.True(t, errors.Is(err, ErrInvalidBound))

	_, err = (&TreeOptions{YMax: Float64(math.NaN())}).BoundingBox()
	require.True(t, errors.Is(err, ErrInvalidBound))
}
