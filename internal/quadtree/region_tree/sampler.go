package region_tree

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/ecopia-map/quadtree_indexer/internal/data"
)

// Largest number of integer positions allowed along one axis of the sampled bound
const maxLatticeExtent = int64(1) << 31

// Upper bound of the space reserved before drawing; larger draws grow as they go
const maxSampleReserve = int64(1) << 16

var (
	ErrEmptyLattice    = errors.New("bound contains no integer point")
	ErrLatticeTooLarge = errors.New("bound too large to sample")
	ErrNilRandSource   = errors.New("nil random source")
)

// integer points of the root bound, edges included
type lattice struct {
	xMin, yMin int64
	nx, ny     int64
}

func (tree *RegionTree) lattice() (*lattice, error) {
	box := tree.rootNode.boundingBox
	xMin, xMax := math.Ceil(box.Xmin), math.Floor(box.Xmax)
	yMin, yMax := math.Ceil(box.Ymin), math.Floor(box.Ymax)

	if xMin > xMax || yMin > yMax {
		return nil, fmt.Errorf("%w: %s", ErrEmptyLattice, box)
	}
	if xMax-xMin+1 > float64(maxLatticeExtent) || yMax-yMin+1 > float64(maxLatticeExtent) {
		return nil, fmt.Errorf("%w: %s", ErrLatticeTooLarge, box)
	}

	return &lattice{
		xMin: int64(xMin),
		yMin: int64(yMin),
		nx:   int64(xMax-xMin) + 1,
		ny:   int64(yMax-yMin) + 1,
	}, nil
}

func (l *lattice) size() int64 {
	return l.nx * l.ny
}

func (l *lattice) point(index int64) data.Point {
	return data.NewPoint(float64(l.xMin+index%l.nx), float64(l.yMin+index/l.nx))
}

// Draws a single random integer point from the root bound
func (tree *RegionTree) RandomPoint(rnd *rand.Rand) (data.Point, error) {
	points, err := tree.RandomPoints(rnd, 1, nil)
	if err != nil {
		return data.Point{}, err
	}
	if len(points) == 0 {
		return data.Point{}, ErrEmptyLattice
	}
	return points[0], nil
}

// Draws count distinct integer points uniformly from the root bound, edges included, whether or
// not they are stored in the tree. When count exceeds the number of integer points of the bound,
// all of them are returned. visit, if not nil, is called with each point in draw order; returning
// false stops the draw, and the points drawn so far are returned.
func (tree *RegionTree) RandomPoints(rnd *rand.Rand, count int, visit func(data.Point) bool) ([]data.Point, error) {
	if rnd == nil {
		return nil, ErrNilRandSource
	}
	if count <= 0 {
		return []data.Point{}, nil
	}

	l, err := tree.lattice()
	if err != nil {
		return nil, err
	}

	total := l.size()
	n := int64(count)
	if n > total {
		n = total
	}

	reserve := n
	if reserve > maxSampleReserve {
		reserve = maxSampleReserve
	}

	// partial Fisher-Yates shuffle over the lattice indexes; swapped holds the displaced slots only
	swapped := make(map[int64]int64, reserve)
	points := make([]data.Point, 0, reserve)
	for i := int64(0); i < n; i++ {
		j := i + rnd.Int63n(total-i)

		picked, ok := swapped[j]
		if !ok {
			picked = j
		}
		current, ok := swapped[i]
		if !ok {
			current = i
		}
		swapped[j] = current
		delete(swapped, i)

		point := l.point(picked)
		points = append(points, point)
		if visit != nil && !visit(point) {
			break
		}
	}

	return points, nil
}
