package primetower

import (
	"testing"

	"github.com/gogpu/primetower/geom"
	"github.com/gogpu/primetower/layer"
)

func TestStartLocationIndex(t *testing.T) {
	tests := []struct {
		nr       layer.Index
		extruder int
		want     int
	}{
		{0, 0, 0},
		{5, 1, 10},
		{11, 1, 1},
		{-1, 0, 20},
		{-1, 2, 18},
		{-22, 0, 20},
	}
	for _, tt := range tests {
		if got := startLocationIndex(tt.nr, tt.extruder, 21); got != tt.want {
			t.Errorf("startLocationIndex(%d, %d) = %d, want %d", tt.nr, tt.extruder, got, tt.want)
		}
	}
}

func TestStartLocationIndexPeriodic(t *testing.T) {
	for _, n := range []int{1, 7, 21} {
		for extruder := range 4 {
			for nr := layer.Index(-40); nr <= 40; nr++ {
				a := startLocationIndex(nr, extruder, n)
				b := startLocationIndex(nr+layer.Index(n), extruder, n)
				if a != b || a < 0 || a >= n {
					t.Fatalf("N=%d extruder %d layer %d: %d vs %d", n, extruder, nr, a, b)
				}
			}
		}
	}
}

// newGcodeTower returns a tower for two extruders printing on layers 0..3.
// Extruder 1 sits 18 mm to the right of extruder 0.
func newGcodeTower(t *testing.T, raft int) (*Tower, UsagePlan) {
	t.Helper()
	scene := newTestScene(2, nil)
	scene.setExtruder(1, KeyNozzleOffsetX, 18.0)
	tower := NewTower(scene, &testStorage{maxHeight: 3}, RaftLayerCount(raft))
	plan := usagePlan(layer.Index(-raft), make([][]int, raft+4)...)
	for nr := range plan.All() {
		plan.Set(nr, []ExtruderUse{{0, PrimePrime}, {1, PrimePrime}})
	}
	tower.ProcessExtrudersUse(plan, 0)
	return tower, plan
}

func TestAddToGcode(t *testing.T) {
	tower, plan := newGcodeTower(t, 0)
	required := usesOf(plan, 2)

	lp := newTestLayerPlan(2)
	tower.AddToGcode(lp, required, 0, 1)

	if !lp.planned[1] {
		t.Fatal("extruder 1 not marked as planned")
	}
	if len(lp.printed) != 1 || len(lp.printed[0]) != 2 {
		t.Fatalf("printed %v", lp.printed)
	}
	if lp.configs[0].Extruder != 1 {
		t.Errorf("printed with config of extruder %d", lp.configs[0].Extruder)
	}
	if len(lp.travels) != 2 {
		t.Fatalf("travels = %v, want start location and post-wipe", lp.travels)
	}

	// Priming starts just outside the rim at the anchor picked for this layer.
	start := lp.travels[0]
	anchor := tower.StartLocations[startLocationIndex(2, 1, len(tower.StartLocations))].Location
	if d := start.Distance(tower.Center); d < 10700 || d > 10900 {
		t.Errorf("start %v at radius %v, want about 10800", start, d)
	}
	if d := start.Distance(anchor); d < 798 || d > 802 {
		t.Errorf("start %v is %v from anchor %v, want 800", start, d, anchor)
	}

	if want := tower.PostWipePoint.Add(geom.Pt(18000, 0)); lp.travels[1] != want {
		t.Errorf("post-wipe travel = %v, want %v", lp.travels[1], want)
	}
}

func TestAddToGcodeIdempotent(t *testing.T) {
	tower, plan := newGcodeTower(t, 0)
	lp := newTestLayerPlan(1)

	tower.AddToGcode(lp, usesOf(plan, 1), 0, 1)
	printed, travels := len(lp.printed), len(lp.travels)
	tower.AddToGcode(lp, usesOf(plan, 1), 0, 1)
	tower.AddToGcode(lp, usesOf(plan, 1), 1, 1)

	if len(lp.printed) != printed || len(lp.travels) != travels {
		t.Errorf("second call emitted again: %d prints, %d travels", len(lp.printed), len(lp.travels))
	}
}

func TestAddToGcodeSkips(t *testing.T) {
	tests := []struct {
		name        string
		nr          layer.Index
		required    []ExtruderUse
		prev, next  int
		wantPlanned bool
		wantPrinted int
		wantTravels int
	}{
		{
			name:     "above the last needed layer",
			nr:       5,
			required: []ExtruderUse{{1, PrimePrime}},
			prev:     0, next: 1,
		},
		{
			name:     "not required",
			nr:       2,
			required: []ExtruderUse{{0, PrimePrime}},
			prev:     0, next: 1,
		},
		{
			// Nothing stored above the plan, but the wipe still happens.
			name:     "one above the last needed layer",
			nr:       4,
			required: []ExtruderUse{{1, PrimePrime}},
			prev:     0, next: 1,
			wantPlanned: true, wantTravels: 1,
		},
		{
			name:     "first layer is not wiped on",
			nr:       0,
			required: []ExtruderUse{{0, PrimePrime}, {1, PrimePrime}},
			prev:     0, next: 1,
			wantPlanned: true, wantPrinted: 1,
		},
		{
			name:     "same extruder",
			nr:       2,
			required: []ExtruderUse{{0, PrimePrime}, {1, PrimePrime}},
			prev:     1, next: 1,
			wantPlanned: true, wantPrinted: 1, wantTravels: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tower, _ := newGcodeTower(t, 0)
			lp := newTestLayerPlan(tt.nr)
			tower.AddToGcode(lp, tt.required, tt.prev, tt.next)

			if lp.planned[tt.next] != tt.wantPlanned || len(lp.printed) != tt.wantPrinted || len(lp.travels) != tt.wantTravels {
				t.Errorf("planned %v, %d prints, %d travels; want %v, %d, %d",
					lp.planned[tt.next], len(lp.printed), len(lp.travels),
					tt.wantPlanned, tt.wantPrinted, tt.wantTravels)
			}
		})
	}
}

func TestAddToGcodeWipeDisabled(t *testing.T) {
	tower, plan := newGcodeTower(t, 0)
	tower.scene.(*testScene).setExtruder(0, KeyWipeEnabled, false)

	lp := newTestLayerPlan(2)
	tower.AddToGcode(lp, usesOf(plan, 2), 0, 1)
	if len(lp.travels) != 1 {
		t.Errorf("travels = %v, want only the start location", lp.travels)
	}
}

func TestAddToGcodeRaft(t *testing.T) {
	tower, plan := newGcodeTower(t, 2)

	// The bottom raft layer has no start location travel.
	bottom := newTestLayerPlan(-2)
	tower.AddToGcode(bottom, usesOf(plan, -2), 1, 0)
	if len(bottom.printed) != 1 || len(bottom.travels) != 1 {
		t.Errorf("layer -2: %d prints, %d travels; want 1 print and the post-wipe", len(bottom.printed), len(bottom.travels))
	}

	above := newTestLayerPlan(-1)
	tower.AddToGcode(above, usesOf(plan, -1), 1, 0)
	if len(above.printed) != 1 || len(above.travels) != 2 {
		t.Errorf("layer -1: %d prints, %d travels; want 1 print, start and post-wipe", len(above.printed), len(above.travels))
	}
	if want := tower.PostWipePoint.Sub(geom.Pt(18000, 0)); above.travels[1] != want {
		t.Errorf("post-wipe = %v, want %v", above.travels[1], want)
	}
}
