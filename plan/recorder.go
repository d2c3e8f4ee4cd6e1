package plan

import (
	"github.com/gogpu/primetower"
	"github.com/gogpu/primetower/geom"
	"github.com/gogpu/primetower/layer"
)

// Recorder is a LayerPlan that records every call as a command.
// A Recorder belongs to one layer and is not safe for concurrent use.
type Recorder struct {
	nr       layer.Index
	scene    primetower.Scene
	planned  map[int]bool
	commands []Command
	position geom.Point
}

// NewRecorder returns a recorder for layer nr.
func NewRecorder(nr layer.Index, scene primetower.Scene) *Recorder {
	return &Recorder{
		nr:       nr,
		scene:    scene,
		planned:  make(map[int]bool),
		commands: make([]Command, 0, 16),
	}
}

// LayerNr implements primetower.LayerPlan.
func (r *Recorder) LayerNr() layer.Index {
	return r.nr
}

// PrimeTowerIsPlanned implements primetower.LayerPlan.
func (r *Recorder) PrimeTowerIsPlanned(extruder int) bool {
	return r.planned[extruder]
}

// SetPrimeTowerIsPlanned implements primetower.LayerPlan.
func (r *Recorder) SetPrimeTowerIsPlanned(extruder int) {
	r.planned[extruder] = true
	r.commands = append(r.commands, MarkCommand{Extruder: extruder})
}

// AddTravel implements primetower.LayerPlan.
func (r *Recorder) AddTravel(p geom.Point) {
	r.commands = append(r.commands, TravelCommand{To: p})
	r.position = p
}

// AddPolygonsByOptimizer implements primetower.LayerPlan. Polygons are
// visited nearest first, each one starting at the vertex closest to where
// the previous one ended.
func (r *Recorder) AddPolygonsByOptimizer(paths geom.Shape, config primetower.PathConfig) {
	ordered := make(geom.Shape, 0, len(paths))
	done := make([]bool, len(paths))
	for range paths {
		best, bestVertex := -1, 0
		bestDist := 0.0
		for i, poly := range paths {
			if done[i] || len(poly) == 0 {
				continue
			}
			for k, pt := range poly {
				if d := pt.Distance(r.position); best < 0 || d < bestDist {
					best, bestVertex, bestDist = i, k, d
				}
			}
		}
		if best < 0 {
			break
		}
		done[best] = true
		poly := paths[best]
		rotated := append(append(geom.Polygon{}, poly[bestVertex:]...), poly[:bestVertex]...)
		ordered = append(ordered, rotated)
		r.position = rotated[0]
	}
	r.commands = append(r.commands, PrintCommand{Paths: ordered, Config: config})
}

// PrimeTowerConfig implements primetower.LayerPlan.
func (r *Recorder) PrimeTowerConfig(extruder int) primetower.PathConfig {
	s := r.scene.Extruder(extruder)
	return primetower.PathConfig{
		Feature:   "prime_tower",
		Extruder:  extruder,
		LineWidth: s.Length(primetower.KeyLineWidth),
		Flow:      s.Ratio(primetower.KeyFlow),
	}
}

// FinishRecording returns an immutable Recording of all commands.
// After calling FinishRecording, the Recorder should not be used again.
func (r *Recorder) FinishRecording() *Recording {
	return &Recording{nr: r.nr, commands: r.commands}
}

var _ primetower.LayerPlan = (*Recorder)(nil)
