package data

import (
	"errors"
	"fmt"
	"strconv"
)

// Returned when a point is built from anything other than exactly two coordinates
var ErrInvalidArity = errors.New("a point needs exactly 2 coordinates")

// A 2D point stored in the quadtree. Points are plain values: two points are the same point when
// both coordinates are equal.
type Point struct {
	X float64
	Y float64
}

// Builds a new Point from the given coordinates
func NewPoint(X, Y float64) Point {
	return Point{X: X, Y: Y}
}

// Builds a new Point from a coordinate list, rejecting lists that don't hold exactly two values
func NewPointFromCoordinates(coords ...float64) (Point, error) {
	if len(coords) != 2 {
		return Point{}, fmt.Errorf("%w: got %d", ErrInvalidArity, len(coords))
	}
	return Point{X: coords[0], Y: coords[1]}, nil
}

func (p Point) String() string {
	return "(" + strconv.FormatFloat(p.X, 'f', -1, 64) + ", " + strconv.FormatFloat(p.Y, 'f', -1, 64) + ")"
}
