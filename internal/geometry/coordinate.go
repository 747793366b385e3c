package geometry

// A planar coordinate expressed in some spatial reference system
type Coordinate struct {
	X float64
	Y float64
}
