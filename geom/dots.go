package geom

import "gonum.org/v1/gonum/spatial/r2"

// ClosestPoint is a location on a polygon's boundary together with the
// index of the segment it lies on. The segment runs from Poly[PointIdx] to
// the following vertex.
type ClosestPoint struct {
	Location Point
	PointIdx int
	Poly     Polygon
}

// SpreadDots places n points along the closed polygon with uniform
// arc-length spacing, the first one on vertex 0.
func SpreadDots(poly Polygon, n int) []ClosestPoint {
	if n <= 0 || len(poly) < 2 {
		return nil
	}
	spacing := poly.Length() / float64(n)
	dots := make([]ClosestPoint, 0, n)

	next, walked := 0.0, 0.0
	for i := range poly {
		a, b := poly[i], poly[(i+1)%len(poly)]
		seg := a.Distance(b)
		for len(dots) < n && next < walked+seg {
			t := (next - walked) / seg
			loc := r2.Add(a.Vec(), r2.Scale(t, r2.Sub(b.Vec(), a.Vec())))
			dots = append(dots, ClosestPoint{Location: FromVec(loc), PointIdx: i, Poly: poly})
			next += spacing
		}
		walked += seg
	}
	return dots
}

// MoveInsideDiagonally moves a boundary point inset micrometres into the
// polygon. On a vertex the move follows the bisector of both adjacent edge
// normals, otherwise the normal of the segment the point lies on.
func MoveInsideDiagonally(cp ClosestPoint, inset Coord) Point {
	poly := cp.Poly
	n := len(poly)
	if n < 2 {
		return cp.Location
	}
	ccw := poly.Area() >= 0
	inward := func(a, b Point) r2.Vec {
		d := r2.Sub(b.Vec(), a.Vec())
		if r2.Norm(d) == 0 {
			return r2.Vec{}
		}
		v := r2.Unit(r2.Vec{X: -d.Y, Y: d.X})
		if !ccw {
			v = r2.Scale(-1, v)
		}
		return v
	}

	idx := cp.PointIdx % n
	p0, p1 := poly[idx], poly[(idx+1)%n]
	dir := inward(p0, p1)
	switch cp.Location {
	case p0:
		dir = r2.Add(inward(poly[(idx-1+n)%n], p0), dir)
	case p1:
		dir = r2.Add(dir, inward(p1, poly[(idx+2)%n]))
	}
	if r2.Norm(dir) == 0 {
		return cp.Location
	}
	return cp.Location.Add(FromVec(r2.Scale(float64(inset), r2.Unit(dir))))
}
