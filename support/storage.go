// Package support holds per-layer support infill areas and lets other
// structures carve their footprint out of them.
package support

import (
	"github.com/gogpu/primetower/geom"
	"github.com/gogpu/primetower/layer"
)

// Exclusion records one area removed from a support layer.
type Exclusion struct {
	Area geom.Shape
	Box  geom.AABB
}

// Layer is the support of one layer.
type Layer struct {
	// InfillAreas are the support infill polygons, one closed outline each.
	InfillAreas geom.Shape
	Excluded    []Exclusion
}

// ExcludeAreasFromSupportInfillAreas removes area from the infill of the
// layer. Without a polygon clipper, an infill polygon is dropped when it
// lies completely inside area; partially covered polygons are kept and the
// exclusion is recorded so the path planner can avoid it.
func (l *Layer) ExcludeAreasFromSupportInfillAreas(area geom.Shape, box geom.AABB) {
	l.Excluded = append(l.Excluded, Exclusion{Area: area, Box: box})

	kept := l.InfillAreas[:0]
	for _, poly := range l.InfillAreas {
		if covered(poly, area, box) {
			continue
		}
		kept = append(kept, poly)
	}
	l.InfillAreas = kept
}

func covered(poly geom.Polygon, area geom.Shape, box geom.AABB) bool {
	if len(poly) == 0 || !geom.NewAABB(geom.Shape{poly}).Intersects(box) {
		return false
	}
	for _, pt := range poly {
		if !box.Contains(pt) || !area.Inside(pt) {
			return false
		}
	}
	return true
}

// Storage is the support of a whole job plus the extruder heights the prime
// tower needs.
type Storage struct {
	Layers []Layer
	// MaxPrintHeightSecondToLast is the last layer the second-to-last
	// finishing extruder prints on.
	MaxPrintHeightSecondToLast layer.Index
}

// NewStorage returns a storage with layerCount empty support layers.
func NewStorage(layerCount int, maxHeightSecondToLast layer.Index) *Storage {
	return &Storage{
		Layers:                     make([]Layer, layerCount),
		MaxPrintHeightSecondToLast: maxHeightSecondToLast,
	}
}

// MaxPrintHeightSecondToLastExtruder returns the stored height.
func (s *Storage) MaxPrintHeightSecondToLastExtruder() layer.Index {
	return s.MaxPrintHeightSecondToLast
}

// SupportLayerCount returns the number of support layers.
func (s *Storage) SupportLayerCount() int {
	return len(s.Layers)
}

// ExcludeFromSupport removes area from support layer nr. Out of range
// layers are ignored.
func (s *Storage) ExcludeFromSupport(nr int, area geom.Shape, box geom.AABB) {
	if nr < 0 || nr >= len(s.Layers) {
		return
	}
	s.Layers[nr].ExcludeAreasFromSupportInfillAreas(area, box)
}
