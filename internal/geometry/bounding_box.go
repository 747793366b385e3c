package geometry

import "fmt"

// Contains data needed to represent a 2D axis-aligned rectangle. Edges are inclusive: two sibling
// quadrants share their dividing line.
type BoundingBox struct {
	Xmin float64
	Xmax float64
	Ymin float64
	Ymax float64
	Xmid float64
	Ymid float64
}

// Builds a new bounding box from the given extremes, precomputing the midpoints
func NewBoundingBox(Xmin, Xmax, Ymin, Ymax float64) *BoundingBox {
	return &BoundingBox{
		Xmin: Xmin,
		Xmax: Xmax,
		Ymin: Ymin,
		Ymax: Ymax,
		Xmid: (Xmin + Xmax) / 2,
		Ymid: (Ymin + Ymax) / 2,
	}
}

// Builds the bounding box of the given quadrant of the parent box
func NewBoundingBoxFromParent(parent *BoundingBox, quadrant Quadrant) *BoundingBox {
	var xMin, xMax, yMin, yMax float64

	if quadrant.IsLeft() {
		xMin, xMax = parent.Xmin, parent.Xmid
	} else {
		xMin, xMax = parent.Xmid, parent.Xmax
	}

	if quadrant.IsTop() {
		yMin, yMax = parent.Ymid, parent.Ymax
	} else {
		yMin, yMax = parent.Ymin, parent.Ymid
	}

	return NewBoundingBox(xMin, xMax, yMin, yMax)
}

// Returns true if the given coordinates lie inside the box or on its edges
func (b *BoundingBox) Contains(x, y float64) bool {
	return x >= b.Xmin && x <= b.Xmax &&
		y >= b.Ymin && y <= b.Ymax
}

func (b *BoundingBox) String() string {
	return fmt.Sprintf("[%g, %g]x[%g, %g]", b.Xmin, b.Xmax, b.Ymin, b.Ymax)
}
