package primetower

import (
	"math"

	"github.com/gogpu/primetower/geom"
	"github.com/gogpu/primetower/internal/cache"
)

// patternCacheSize bounds the number of memoized ring sets and meshes.
const patternCacheSize = 256

type primeKey struct {
	extruder int
	outer    geom.Coord
}

type primeResult struct {
	rings geom.Shape
	inner geom.Coord
}

type meshKey struct {
	extruder     int
	outer, inner geom.Coord
}

// Rings generates the per-extruder ring toolpaths of a tower. It only reads
// settings and is safe for concurrent use. Results are memoized, since the
// same pattern is printed on many layers; callers get their own polygon
// list and must not modify the polygons themselves.
type Rings struct {
	scene       Scene
	center      geom.Point
	radius      geom.Coord
	layerHeight geom.Coord

	primes *cache.Cache[primeKey, primeResult]
	meshes *cache.Cache[meshKey, geom.Shape]
}

func newRings(scene Scene, g *Geometry) *Rings {
	return &Rings{
		scene:       scene,
		center:      g.Center,
		radius:      g.Radius,
		layerHeight: g.LayerHeight,
		primes:      cache.New[primeKey, primeResult](patternCacheSize),
		meshes:      cache.New[meshKey, geom.Shape](patternCacheSize),
	}
}

// cacheStats returns the number of memoized patterns that were reused and
// built.
func (r *Rings) cacheStats() (hits, misses uint64) {
	p, m := r.primes.Stats(), r.meshes.Stats()
	return p.Hits + m.Hits, p.Misses + m.Misses
}

// TowerRadius returns the radius of the tower silhouette.
func (r *Rings) TowerRadius() geom.Coord {
	return r.radius
}

// Scene returns the scene the rings read their settings from.
func (r *Rings) Scene() Scene {
	return r.scene
}

// Prime emits concentric rings inward from outerRadius until the extruder's
// minimum priming volume is reached or the centre is hit. It returns the
// rings and the radius just inside the last ring, which is outerRadius when
// nothing was printed.
func (r *Rings) Prime(extruder int, outerRadius geom.Coord) (geom.Shape, geom.Coord) {
	key := primeKey{extruder, outerRadius}
	res, ok := r.primes.Get(key)
	if !ok {
		res.rings, res.inner = r.prime(extruder, outerRadius)
		r.primes.Set(key, res)
	}
	return res.rings.Clone(), res.inner
}

func (r *Rings) prime(extruder int, outerRadius geom.Coord) (geom.Shape, geom.Coord) {
	s := r.scene.Extruder(extruder)
	lineWidth := s.Length(KeyLineWidth)
	if lineWidth <= 0 {
		return nil, outerRadius
	}
	required := s.Float(KeyMinVolume) * 1e9 // mm³ to µm³
	flow := s.Ratio(KeyFlow)
	semi := lineWidth / 2

	var (
		rings  geom.Shape
		volume float64
	)
	radius := outerRadius - semi
	for volume < required && radius >= semi && radius > 0 {
		circle := geom.MakeCircle(r.center, radius, circleDefinition)
		rings = append(rings, circle)
		volume += circle.Length() * float64(lineWidth) * float64(r.layerHeight) * flow
		radius -= lineWidth
	}
	return rings, radius + semi
}

// SupportMesh fills the annulus between innerRadius and outerRadius with
// spoked wheels so that no line bridges further than the extruder's maximum
// bridging distance. The annulus is split into equal sub-annuli at most one
// bridging distance wide; each gets enough spokes that the arc between two
// spokes on its outer edge stays within that distance.
func (r *Rings) SupportMesh(extruder int, outerRadius, innerRadius geom.Coord) geom.Shape {
	key := meshKey{extruder, outerRadius, innerRadius}
	mesh, ok := r.meshes.Get(key)
	if !ok {
		mesh = r.supportMesh(extruder, outerRadius, innerRadius)
		r.meshes.Set(key, mesh)
	}
	return mesh.Clone()
}

func (r *Rings) supportMesh(extruder int, outerRadius, innerRadius geom.Coord) geom.Shape {
	s := r.scene.Extruder(extruder)
	maxBridging := float64(s.Length(KeyMaxBridgingDistance))
	semi := s.Length(KeyLineWidth) / 2
	delta := outerRadius - innerRadius
	if delta <= 0 || maxBridging <= 0 {
		return nil
	}

	count := geom.Coord(math.Ceil(float64(delta) / maxBridging))
	step := delta / count
	mesh := make(geom.Shape, 0, count)
	for i := range count {
		inner := innerRadius + i*step + semi
		outer := innerRadius + (i+1)*step - semi
		if outer <= inner {
			// Narrower than a line: a single circle covers it.
			mid := innerRadius + i*step + step/2
			if mid > 0 {
				mesh = append(mesh, geom.MakeCircle(r.center, mid, circleDefinition))
			}
			continue
		}
		spokes := int(math.Ceil(math.Pi * float64(outer) / maxBridging))
		mesh = append(mesh, geom.MakeWheel(r.center, inner, outer, spokes, arcDefinition))
	}
	return mesh
}
