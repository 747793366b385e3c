package geometry

// Identifies one of the four children of a subdivided region.
// The numeric order is also the order used to traverse children.
type Quadrant uint8

const (
	TopLeft Quadrant = iota
	TopRight
	BottomLeft
	BottomRight
)

// All quadrants in traversal order
var Quadrants = [4]Quadrant{TopLeft, TopRight, BottomLeft, BottomRight}

func (q Quadrant) IsLeft() bool {
	return q == TopLeft || q == BottomLeft
}

func (q Quadrant) IsTop() bool {
	return q == TopLeft || q == TopRight
}

func (q Quadrant) String() string {
	switch q {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomLeft:
		return "bottom-left"
	case BottomRight:
		return "bottom-right"
	}
	return ""
}

// Returns the quadrant of bbox the given coordinates fall into.
// Points lying on a dividing line go to the right and/or upper quadrant.
func QuadrantOf(bbox *BoundingBox, x, y float64) Quadrant {
	left := x < bbox.Xmid
	top := y >= bbox.Ymid

	switch {
	case left && top:
		return TopLeft
	case top:
		return TopRight
	case left:
		return BottomLeft
	default:
		return BottomRight
	}
}
