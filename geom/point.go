package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Coord is a length or coordinate in micrometres.
type Coord = int64

// Point is a 2D point or vector on the integer micrometre grid.
type Point struct {
	X, Y Coord
}

// Pt is a convenience function to create a Point.
func Pt(x, y Coord) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Vec converts the point to a float vector.
func (p Point) Vec() r2.Vec {
	return r2.Vec{X: float64(p.X), Y: float64(p.Y)}
}

// FromVec rounds a float vector to the nearest grid point.
func FromVec(v r2.Vec) Point {
	return Point{X: Coord(math.Round(v.X)), Y: Coord(math.Round(v.Y))}
}

// Length returns the length of the vector.
func (p Point) Length() float64 {
	return r2.Norm(p.Vec())
}

// Distance returns the distance between two points.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}

// Normal returns p rescaled to the given length. A vector shorter than one
// micrometre has no usable direction and yields (length, 0).
func Normal(p Point, length Coord) Point {
	n := p.Length()
	if n < 1 {
		return Point{X: length, Y: 0}
	}
	return FromVec(r2.Scale(float64(length)/n, p.Vec()))
}
