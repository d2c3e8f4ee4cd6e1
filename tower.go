package primetower

import (
	"github.com/gogpu/primetower/geom"
	"github.com/gogpu/primetower/layer"
)

// Tower is the prime tower of one print job. Its geometry is fixed at
// construction; toolpaths are added by ProcessExtrudersUse and are
// read-only afterwards.
type Tower struct {
	*Geometry

	scene    Scene
	storage  Storage
	raft     int
	rings    *Rings
	strategy Strategy
	polisher Polisher

	toolpaths            ToolPathStore
	baseExtrusionOutline *layer.Vector[geom.Shape]
}

// NewTower builds the tower geometry without applying the construction gate
// and without touching support. Most callers want CreatePrimeTower.
func NewTower(scene Scene, storage Storage, raft RaftLayers, opts ...TowerOption) *Tower {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	extra := raft.TotalExtraLayers()
	g := NewGeometry(scene.Settings(), layer.Index(-extra), o.startLocations)
	t := &Tower{
		Geometry:             g,
		scene:                scene,
		storage:              storage,
		raft:                 extra,
		rings:                newRings(scene, g),
		strategy:             o.strategy,
		polisher:             o.polisher,
		toolpaths:            layer.NewVector[[]ExtruderToolPaths](),
		baseExtrusionOutline: layer.NewVector[geom.Shape](),
	}
	if t.strategy == nil {
		t.strategy = NewStrategy(ParseMode(scene.Settings().Enum(KeyMode)), scene, o.workers)
	}
	if t.polisher == nil {
		if p, ok := t.strategy.(Polisher); ok {
			t.polisher = p
		}
	}
	return t
}

// Bounds returns the layer range in which the tower is needed.
func (t *Tower) Bounds() PlanBounds {
	return PlanBounds{
		FirstLayer:      layer.Index(-t.raft),
		LastNeededLayer: t.storage.MaxPrintHeightSecondToLastExtruder(),
	}
}

// ProcessExtrudersUse polishes the plan, lays out the rings of every layer
// and stitches the base. The plan is modified in place by polishing.
// The base outset runs before the first-layer inset so the inset sees the
// final rings of the first layer.
func (t *Tower) ProcessExtrudersUse(plan UsagePlan, startExtruder int) {
	if t.polisher != nil {
		t.polisher.PolishExtrudersUses(plan, startExtruder, t.Bounds())
	}
	t.toolpaths = t.strategy.GenerateToolPaths(t.rings, plan)
	t.generateBase()
	t.generateFirstLayerInset()
	hits, misses := t.rings.cacheStats()
	Logger().Info("primetower: toolpaths generated",
		"layers", t.toolpaths.Len(), "base_layers", t.baseExtrusionOutline.Len(),
		"patterns_built", misses, "patterns_reused", hits)
}

// Rings returns the ring generator of the tower.
func (t *Tower) Rings() *Rings {
	return t.rings
}

// Layers returns the generated toolpaths. Callers must not modify them.
func (t *Tower) Layers() ToolPathStore {
	return t.toolpaths
}

// ToolPaths returns what extruder prints on the tower on layer nr.
func (t *Tower) ToolPaths(nr layer.Index, extruder int) (geom.Shape, bool) {
	paths, ok := t.toolpaths.Get(nr)
	if !ok {
		return nil, false
	}
	for _, p := range paths {
		if p.Extruder == extruder {
			return p.ToolPaths, true
		}
	}
	return nil, false
}

// OccupiedOutline returns the area the tower covers on layer nr: the base
// footprint inside the base height, the silhouette above it.
func (t *Tower) OccupiedOutline(nr layer.Index) geom.Shape {
	if base, ok := t.BaseOccupied.Get(nr); ok {
		return base.Outline
	}
	return t.Outer
}

// OccupiedGroundOutline returns the outline the tower prints on the build
// plate.
func (t *Tower) OccupiedGroundOutline() geom.Shape {
	if _, outline, ok := t.baseExtrusionOutline.First(); ok {
		return outline
	}
	return t.Outer
}

// ExtrusionOutline returns the outline actually extruded on layer nr.
func (t *Tower) ExtrusionOutline(nr layer.Index) geom.Shape {
	return t.baseExtrusionOutline.Lookup(nr, t.Outer)
}
