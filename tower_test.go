package primetower

import (
	"testing"

	"github.com/gogpu/primetower/geom"
	"github.com/gogpu/primetower/layer"
)

// newBaseTower returns a processed two-extruder tower on layers 0..3 whose
// base flares out by 1 mm over the two lowest layers.
func newBaseTower(t *testing.T) *Tower {
	t.Helper()
	scene := newTestScene(2, map[string]any{
		KeyBaseEnable:         true,
		KeyBaseSize:           1.0,
		KeyBaseHeight:         0.4,
		KeyBaseCurveMagnitude: 1.0,
	})
	storage := &testStorage{maxHeight: 3, supportCount: 10}
	tower := NewTower(scene, storage, RaftLayerCount(0), WithWorkers(2))
	tower.ProcessExtrudersUse(usagePlan(0, []int{0, 1}, []int{0, 1}, []int{0, 1}, []int{0, 1}), 0)
	return tower
}

func TestNewTowerStrategyFromMode(t *testing.T) {
	tests := []struct {
		mode string
		want Mode
	}{
		{"normal", ModeNormal},
		{"interleaved", ModeInterleaved},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			scene := newTestScene(2, map[string]any{KeyMode: tt.mode})
			tower := NewTower(scene, &testStorage{}, RaftLayerCount(0))

			var got Mode
			switch tower.strategy.(type) {
			case *Normal:
				got = ModeNormal
			case *Interleaved:
				got = ModeInterleaved
			default:
				t.Fatalf("strategy %T", tower.strategy)
			}
			if got != tt.want {
				t.Errorf("mode %q gave %v", tt.mode, got)
			}
			if tower.polisher != tower.strategy.(Polisher) {
				t.Error("strategy is not used as polisher")
			}
		})
	}
}

func TestTowerToolPaths(t *testing.T) {
	tower := newBaseTower(t)

	tests := []struct {
		nr       layer.Index
		extruder int
		want     int
	}{
		{0, 0, 2 + 2},  // rings + base outset
		{0, 1, 2 + 21}, // rings + first layer inset down to the centre
		{1, 0, 2 + 1},
		{1, 1, 2},
		{2, 0, 2},
		{3, 1, 2},
	}
	for _, tt := range tests {
		paths, ok := tower.ToolPaths(tt.nr, tt.extruder)
		if !ok || len(paths) != tt.want {
			t.Errorf("ToolPaths(%d, %d) = %d polygons, want %d", tt.nr, tt.extruder, len(paths), tt.want)
		}
	}
	if _, ok := tower.ToolPaths(4, 0); ok {
		t.Error("toolpaths above the plan")
	}
	if _, ok := tower.ToolPaths(0, 5); ok {
		t.Error("toolpaths for an unknown extruder")
	}
	if tower.Layers().Len() != 4 {
		t.Errorf("Layers().Len() = %d, want 4", tower.Layers().Len())
	}
}

func TestTowerOutlines(t *testing.T) {
	tower := newBaseTower(t)
	radius := func(s geom.Shape) geom.Coord { return s.MaxRadius(tower.Center) }

	if got := radius(tower.OccupiedOutline(0)); got < 10999 || got > 11001 {
		t.Errorf("OccupiedOutline(0) radius %d, want 11000", got)
	}
	if got := radius(tower.OccupiedOutline(1)); got < 10499 || got > 10501 {
		t.Errorf("OccupiedOutline(1) radius %d, want 10500", got)
	}
	if got := radius(tower.OccupiedOutline(2)); got < 9999 || got > 10001 {
		t.Errorf("OccupiedOutline(2) radius %d, want the silhouette", got)
	}

	// The extruded outline snaps to whole lines: 10000 + 2 lines.
	if got := radius(tower.OccupiedGroundOutline()); got < 10799 || got > 10801 {
		t.Errorf("OccupiedGroundOutline radius %d, want 10800", got)
	}
	if got := radius(tower.ExtrusionOutline(1)); got < 10399 || got > 10401 {
		t.Errorf("ExtrusionOutline(1) radius %d, want 10400", got)
	}
	if got := radius(tower.ExtrusionOutline(3)); got < 9999 || got > 10001 {
		t.Errorf("ExtrusionOutline(3) radius %d, want the silhouette", got)
	}
}

func TestTowerWithoutBase(t *testing.T) {
	scene := newTestScene(2, nil)
	tower := NewTower(scene, &testStorage{maxHeight: 1}, RaftLayerCount(0))
	tower.ProcessExtrudersUse(usagePlan(0, []int{0, 1}, []int{1, 0}), 1)

	if tower.HasBase() {
		t.Fatal("HasBase() = true")
	}
	if got := tower.OccupiedGroundOutline(); len(got) != 1 || &got[0] != &tower.Outer[0] {
		t.Error("OccupiedGroundOutline is not the silhouette")
	}
	if paths, _ := tower.ToolPaths(1, 0); len(paths) != 2 {
		t.Errorf("layer 1 extruder 0 = %d polygons, want 2", len(paths))
	}
}

type recordingPolisher struct {
	calls  int
	bounds PlanBounds
	start  int
}

func (p *recordingPolisher) PolishExtrudersUses(_ UsagePlan, start int, bounds PlanBounds) {
	p.calls++
	p.start = start
	p.bounds = bounds
}

func TestProcessExtrudersUseBounds(t *testing.T) {
	polisher := &recordingPolisher{}
	tower := NewTower(newTestScene(2, nil), &testStorage{maxHeight: 7}, RaftLayerCount(3), WithPolisher(polisher))
	tower.ProcessExtrudersUse(usagePlan(-3, []int{0}), 1)

	if polisher.calls != 1 || polisher.start != 1 {
		t.Errorf("polisher called %d times with start %d", polisher.calls, polisher.start)
	}
	if want := (PlanBounds{FirstLayer: -3, LastNeededLayer: 7}); polisher.bounds != want {
		t.Errorf("bounds = %+v, want %+v", polisher.bounds, want)
	}
}
