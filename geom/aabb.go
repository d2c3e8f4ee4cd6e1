package geom

import jgeom "github.com/jbeda/geom"

// AABB is an axis-aligned bounding box. The zero value is empty.
type AABB struct {
	jgeom.Rect
	valid bool
}

// NewAABB returns the bounding box of every vertex in the shape.
func NewAABB(s Shape) AABB {
	var box AABB
	for _, p := range s {
		for _, pt := range p {
			box.Include(pt)
		}
	}
	return box
}

// Include grows the box to contain pt.
func (b *AABB) Include(pt Point) {
	c := jgeom.Coord{X: float64(pt.X), Y: float64(pt.Y)}
	if !b.valid {
		b.Rect = jgeom.Rect{Min: c, Max: c}
		b.valid = true
		return
	}
	b.ExpandToContainCoord(c)
}

// Empty reports whether the box contains no points at all.
func (b AABB) Empty() bool {
	return !b.valid
}

// Contains reports whether pt lies inside or on the box.
func (b AABB) Contains(pt Point) bool {
	x, y := float64(pt.X), float64(pt.Y)
	return b.valid && x >= b.Min.X && x <= b.Max.X && y >= b.Min.Y && y <= b.Max.Y
}

// Intersects reports whether the two boxes overlap.
func (b AABB) Intersects(o AABB) bool {
	if !b.valid || !o.valid {
		return false
	}
	return b.Min.X <= o.Max.X && o.Min.X <= b.Max.X &&
		b.Min.Y <= o.Max.Y && o.Min.Y <= b.Max.Y
}
