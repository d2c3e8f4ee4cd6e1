package primetower

import (
	"github.com/gogpu/primetower/geom"
	"github.com/gogpu/primetower/layer"
)

// generateBase widens every base layer out to the base footprint. The
// outset is printed by the first (outermost) extruder of the layer.
func (t *Tower) generateBase() {
	t.baseExtrusionOutline = layer.NewVector[geom.Shape]()
	if !t.HasBase() {
		return
	}
	for nr, paths := range t.toolpaths.All() {
		base, ok := t.BaseOccupied.Get(nr)
		if !ok || len(paths) == 0 {
			continue
		}
		first := &paths[0]
		lineWidth := t.scene.Extruder(first.Extruder).Length(KeyLineWidth)
		outset, radius := geom.GenerateCircularOutset(t.Center, first.OuterRadius, base.OuterRadius, lineWidth, circleDefinition)
		first.ToolPaths = append(first.ToolPaths, outset...)
		t.baseExtrusionOutline.Set(nr, geom.Shape{geom.MakeCircle(t.Center, radius, circleDefinition)})
	}
}

// generateFirstLayerInset fills the centre of the first layer, printed by
// the last extruder so the tower sticks to the plate.
func (t *Tower) generateFirstLayerInset() {
	_, paths, ok := t.toolpaths.First()
	if !ok || len(paths) == 0 {
		return
	}
	last := &paths[len(paths)-1]
	lineWidth := t.scene.Extruder(last.Extruder).Length(KeyLineWidth)
	last.ToolPaths = append(last.ToolPaths, geom.GenerateCircularInset(t.Center, last.InnerRadius, lineWidth, circleDefinition)...)
}
