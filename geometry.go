package primetower

import (
	"math"

	"github.com/gogpu/primetower/geom"
	"github.com/gogpu/primetower/layer"
)

const (
	// circleDefinition is the number of vertices of every tower circle.
	circleDefinition = 32
	// arcDefinition is the number of segments of each arc of a wheel.
	arcDefinition = 4
	// defaultStartLocations is the number of wipe anchors around the tower.
	defaultStartLocations = 21
)

// OccupiedOutline is the footprint of the tower base on one layer.
type OccupiedOutline struct {
	Outline     geom.Shape
	OuterRadius geom.Coord
}

// Geometry is the layer-independent shape of a tower: where it stands, its
// silhouette, the wipe anchors on that silhouette and the flared base.
// It is computed once per job and never changes afterwards.
type Geometry struct {
	Center        geom.Point
	Radius        geom.Coord
	LayerHeight   geom.Coord
	Outer         geom.Shape
	PostWipePoint geom.Point
	// StartLocations are evenly spaced anchors on Outer used to pick where
	// priming starts.
	StartLocations []geom.ClosestPoint
	// BaseOccupied is the base footprint per layer, starting at the lowest
	// layer. Empty when the base is disabled.
	BaseOccupied *layer.Vector[OccupiedOutline]
}

// NewGeometry computes the tower geometry from the mesh-group settings.
// The base profile starts at firstLayer (the bottom raft layer when a raft
// is printed) and narrows upward following
// (1 - z/base_height)^curve_magnitude.
func NewGeometry(s Settings, firstLayer layer.Index, startLocations int) *Geometry {
	radius := s.Length(KeySize) / 2
	x := s.Length(KeyPositionX)
	y := s.Length(KeyPositionY)

	g := &Geometry{
		Center:       geom.Pt(x-radius, y+radius),
		Radius:       radius,
		LayerHeight:  s.Length(KeyLayerHeight),
		BaseOccupied: layer.NewVector[OccupiedOutline](),
	}
	g.PostWipePoint = g.Center
	g.Outer = geom.Shape{geom.MakeCircle(g.Center, radius, circleDefinition)}
	g.StartLocations = geom.SpreadDots(g.Outer[0], startLocations)

	baseExtra := s.Length(KeyBaseSize)
	baseHeight := s.Length(KeyBaseHeight)
	if !s.Bool(KeyBaseEnable) || baseExtra <= 0 || baseHeight <= 0 || g.LayerHeight <= 0 {
		return g
	}
	curve := s.Float(KeyBaseCurveMagnitude)
	nr := firstLayer
	for z := geom.Coord(0); z < baseHeight; z += g.LayerHeight {
		factor := math.Pow(1.0-float64(z)/float64(baseHeight), curve)
		extra := geom.Coord(math.Round(float64(baseExtra) * factor))
		total := radius + extra
		g.BaseOccupied.Set(nr, OccupiedOutline{
			Outline:     geom.Shape{geom.MakeCircle(g.Center, total, circleDefinition)},
			OuterRadius: total,
		})
		nr++
	}
	return g
}

// HasBase reports whether a base flare was generated.
func (g *Geometry) HasBase() bool {
	return g.BaseOccupied.Len() > 0
}
