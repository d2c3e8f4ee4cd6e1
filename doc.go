// Package primetower generates the toolpaths of a prime tower for
// multi-extruder printing.
//
// # Overview
//
// A prime tower is a sacrificial column printed next to the model. Every
// time the printer switches to another extruder, that extruder first
// discharges a minimum volume of material on the tower so the first lines on
// the model are not under-extruded.
//
// The engine runs in three phases:
//
//	// 1. Decide whether a tower is needed and build its geometry.
//	tower := primetower.CreatePrimeTower(scene, storage, primetower.RaftLayerCount(raft))
//	if tower == nil {
//	    return // no tower, a normal outcome
//	}
//
//	// 2. Turn the per-layer extruder timetable into ring toolpaths.
//	tower.ProcessExtrudersUse(plan, startExtruder)
//
//	// 3. While planning each layer, emit the tower at every extruder switch.
//	tower.AddToGcode(layerPlan, requiredUses, prevExtruder, newExtruder)
//
// # Ring layout
//
// Each extruder primes by printing concentric rings inward from an outer
// radius until its configured volume is reached. How the rings of several
// extruders share the tower is decided by a [Strategy]: [Normal] gives each
// extruder a fixed annulus, [Interleaved] lets extruders take turns from the
// outside in and fills the gaps with spoked wheels.
//
// # Units
//
// Coordinates are integer micrometres (see package geom). Volumes are cubic
// micrometres. Layer numbers are signed; raft layers are negative.
//
// # Dependencies
//
// Settings, the per-layer planner and the support solver are injected through
// the [Scene], [LayerPlan] and [Storage] interfaces. Nothing is read from
// global state apart from the logger.
package primetower
