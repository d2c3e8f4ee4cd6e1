package primetower

import (
	"github.com/gogpu/primetower/geom"
	"github.com/gogpu/primetower/layer"
)

// Below these values (in micrometres, or mm³ scaled like a length) a tower
// would print nothing useful.
const (
	minVolumeThreshold = 10
	minSizeThreshold   = 10
)

// Storage is the slice data the tower interacts with.
type Storage interface {
	// MaxPrintHeightSecondToLastExtruder is the last layer on which the
	// second-to-last finishing extruder prints, -1 when there is none.
	MaxPrintHeightSecondToLastExtruder() layer.Index
	SupportLayerCount() int
	// ExcludeFromSupport removes area from the support infill of layer nr.
	// box bounds area and may be used to skip far-away support parts.
	ExcludeFromSupport(nr int, area geom.Shape, box geom.AABB)
}

// RaftLayers reports how many extra layers a raft adds below layer 0.
type RaftLayers interface {
	TotalExtraLayers() int
}

// RaftLayerCount is a fixed number of raft layers.
type RaftLayerCount int

// TotalExtraLayers implements RaftLayers.
func (c RaftLayerCount) TotalExtraLayers() int { return int(c) }

// CreatePrimeTower returns the tower for a job, or nil when no tower is
// needed: a single extruder, the feature disabled, a negligible volume or
// size, or no extruder switch above the raft. A nil result is a normal
// outcome. A created tower has already removed its footprint from support.
func CreatePrimeTower(scene Scene, storage Storage, raft RaftLayers, opts ...TowerOption) *Tower {
	s := scene.Settings()
	extra := raft.TotalExtraLayers()
	maxHeight := storage.MaxPrintHeightSecondToLastExtruder()

	if scene.ExtruderCount() <= 1 ||
		!s.Bool(KeyEnable) ||
		s.Length(KeyMinVolume) <= minVolumeThreshold ||
		s.Length(KeySize) <= minSizeThreshold ||
		maxHeight < layer.Index(-extra) {
		Logger().Info("primetower: no tower needed",
			"extruders", scene.ExtruderCount(), "enabled", s.Bool(KeyEnable), "max_height", maxHeight)
		return nil
	}

	t := NewTower(scene, storage, raft, opts...)
	Logger().Info("primetower: tower created",
		"mode", ParseMode(s.Enum(KeyMode)), "radius", t.Radius, "base_layers", t.BaseOccupied.Len())
	t.subtractFromSupport()
	return t
}

// subtractFromSupport keeps support from growing into the tower on every
// layer the tower is printed.
func (t *Tower) subtractFromSupport() {
	limit := t.storage.MaxPrintHeightSecondToLastExtruder() + 1
	count := t.storage.SupportLayerCount()
	for nr := 0; layer.Index(nr) <= limit && nr < count; nr++ {
		outside := t.OccupiedOutline(layer.Index(nr)).OutsidePolygons()
		t.storage.ExcludeFromSupport(nr, outside, geom.NewAABB(outside))
	}
}
