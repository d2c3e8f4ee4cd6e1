package geom

import (
	"math"
	"slices"
)

// Polygon is a closed contour. The last vertex connects back to the first.
type Polygon []Point

// Shape is a set of polygons. For toolpaths every polygon is printed as a
// closed loop; for areas counter-clockwise polygons are outlines and
// clockwise polygons are holes.
type Shape []Polygon

// Length returns the perimeter of the closed polygon.
func (p Polygon) Length() float64 {
	if len(p) < 2 {
		return 0
	}
	var total float64
	prev := p[len(p)-1]
	for _, pt := range p {
		total += prev.Distance(pt)
		prev = pt
	}
	return total
}

// Area returns the signed area. Counter-clockwise polygons are positive.
func (p Polygon) Area() float64 {
	if len(p) < 3 {
		return 0
	}
	var sum float64
	prev := p[len(p)-1]
	for _, pt := range p {
		sum += float64(prev.X)*float64(pt.Y) - float64(pt.X)*float64(prev.Y)
		prev = pt
	}
	return sum / 2
}

// Inside reports whether pt lies inside the polygon (even-odd rule).
// Points exactly on the boundary may report either way.
func (p Polygon) Inside(pt Point) bool {
	inside := false
	j := len(p) - 1
	for i := range p {
		a, b := p[i], p[j]
		if (a.Y > pt.Y) != (b.Y > pt.Y) {
			x := float64(b.X-a.X)*float64(pt.Y-a.Y)/float64(b.Y-a.Y) + float64(a.X)
			if float64(pt.X) < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// Length returns the summed perimeter of all polygons.
func (s Shape) Length() float64 {
	var total float64
	for _, p := range s {
		total += p.Length()
	}
	return total
}

// Inside reports whether pt lies inside the area described by the shape.
func (s Shape) Inside(pt Point) bool {
	inside := false
	for _, p := range s {
		if p.Inside(pt) {
			inside = !inside
		}
	}
	return inside
}

// OutsidePolygons returns the outline polygons of the shape, dropping holes.
func (s Shape) OutsidePolygons() Shape {
	out := make(Shape, 0, len(s))
	for _, p := range s {
		if p.Area() >= 0 {
			out = append(out, p)
		}
	}
	return out
}

// Clone returns a copy of the polygon list. Polygons themselves are shared.
func (s Shape) Clone() Shape {
	return slices.Clone(s)
}

// MaxRadius returns the largest distance from center to any vertex.
func (s Shape) MaxRadius(center Point) Coord {
	var r float64
	for _, p := range s {
		for _, pt := range p {
			r = math.Max(r, pt.Distance(center))
		}
	}
	return Coord(math.Round(r))
}
