package primetower

import (
	"slices"

	"github.com/gogpu/primetower/geom"
	"github.com/gogpu/primetower/layer"
)

// PathConfig is the print configuration used for tower toolpaths of one
// extruder.
type PathConfig struct {
	Feature   string
	Extruder  int
	LineWidth geom.Coord
	Flow      float64
}

// LayerPlan is the instruction planner of the layer currently being emitted.
// The "planned" flags live on the layer plan, so they reset naturally with
// every new layer.
type LayerPlan interface {
	LayerNr() layer.Index
	PrimeTowerIsPlanned(extruder int) bool
	SetPrimeTowerIsPlanned(extruder int)
	AddTravel(p geom.Point)
	AddPolygonsByOptimizer(paths geom.Shape, config PathConfig)
	PrimeTowerConfig(extruder int) PathConfig
}

// AddToGcode emits the tower for a switch from prevExtruder to newExtruder
// on the current layer. It prints at most once per extruder and layer, only
// for extruders listed in required, and only up to one layer above the last
// use of the second-to-last extruder. When the previous extruder wipes on
// the tower, a travel to the post-wipe point follows, corrected for the
// nozzle offset between both extruders.
//
// AddToGcode must not be called concurrently for the same layer plan.
func (t *Tower) AddToGcode(lp LayerPlan, required []ExtruderUse, prevExtruder, newExtruder int) {
	if lp.PrimeTowerIsPlanned(newExtruder) {
		return
	}
	nr := lp.LayerNr()
	if nr > t.storage.MaxPrintHeightSecondToLastExtruder()+1 {
		return
	}

	// The first layer is printed solid for adhesion and is never wiped on.
	postWipe := t.scene.Extruder(prevExtruder).Bool(KeyWipeEnabled) &&
		prevExtruder != newExtruder && nr != 0

	if !slices.ContainsFunc(required, func(u ExtruderUse) bool { return u.Extruder == newExtruder }) {
		return
	}

	if paths, ok := t.ToolPaths(nr, newExtruder); ok && len(paths) > 0 {
		t.gotoStartLocation(lp, newExtruder)
		lp.AddPolygonsByOptimizer(paths, lp.PrimeTowerConfig(newExtruder))
	}
	lp.SetPrimeTowerIsPlanned(newExtruder)

	if postWipe {
		prevOffset := nozzleOffset(t.scene.Extruder(prevExtruder))
		newOffset := nozzleOffset(t.scene.Extruder(newExtruder))
		lp.AddTravel(t.PostWipePoint.Sub(prevOffset).Add(newOffset))
	}
}

// startLocationIndex picks the wipe anchor for a layer and extruder. The
// choice rotates with the layer so ooze marks spread around the tower.
// Negative (raft) layers wrap around.
func startLocationIndex(nr layer.Index, extruder, anchors int) int {
	n := layer.Index(anchors)
	for nr < 0 {
		nr += n
	}
	return int((layer.Index(extruder+1) * nr) % n)
}

// gotoStartLocation travels to just outside the tower rim so priming
// starts from the outside in. Skipped on the lowest layer.
func (t *Tower) gotoStartLocation(lp LayerPlan, extruder int) {
	nr := lp.LayerNr()
	if nr == layer.Index(-t.raft) || len(t.StartLocations) == 0 {
		return
	}
	anchor := t.StartLocations[startLocationIndex(nr, extruder, len(t.StartLocations))]

	nozzle := t.scene.Extruder(extruder).Length(KeyNozzleSize)
	primeEnd := geom.MoveInsideDiagonally(anchor, nozzle*3/2)
	outward := anchor.Location.Sub(primeEnd)
	primeStart := anchor.Location.Add(geom.Normal(outward, nozzle*2))

	Logger().Debug("primetower: start location", "layer", nr, "extruder", extruder, "x", primeStart.X, "y", primeStart.Y)
	lp.AddTravel(primeStart)
}
