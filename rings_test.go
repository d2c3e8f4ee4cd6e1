package primetower

import (
	"testing"

	"github.com/gogpu/primetower/geom"
)

func testRings(scene *testScene) *Rings {
	return newRings(scene, NewGeometry(scene.Settings(), 0, defaultStartLocations))
}

func TestRingsPrimeVolume(t *testing.T) {
	tests := []struct {
		name      string
		minVolume float64
		wantRings int
		wantInner geom.Coord
	}{
		{"three rings", 6, 3, 3800},
		{"one ring", 0.5, 1, 4600},
		{"centre reached", 100, 12, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene := newTestScene(2, map[string]any{KeySize: 10.0, KeyMinVolume: tt.minVolume})
			r := testRings(scene)

			rings, inner := r.Prime(1, r.TowerRadius())
			if len(rings) != tt.wantRings || inner != tt.wantInner {
				t.Fatalf("Prime() = %d rings, inner %d; want %d, %d", len(rings), inner, tt.wantRings, tt.wantInner)
			}

			volume := 0.0
			for _, ring := range rings {
				volume += ring.Length() * 400 * 200
			}
			if exhausted := inner <= 200; volume < tt.minVolume*1e9 && !exhausted {
				t.Errorf("volume %v below minimum %v", volume, tt.minVolume*1e9)
			}
		})
	}
}

// Two extruders, tower radius 5 mm, 100 mm³: the rings run out of room but
// at least one is printed.
func TestRingsPrimeScenario(t *testing.T) {
	scene := newTestScene(2, map[string]any{
		KeySize:        10.0,
		KeyMinVolume:   100.0,
		KeyLineWidth:   0.4,
		KeyFlow:        100.0,
		KeyLayerHeight: 0.2,
	})
	r := testRings(scene)
	outer := r.TowerRadius()
	if outer != 5000 {
		t.Fatalf("TowerRadius = %d, want 5000", outer)
	}

	rings, inner := r.Prime(1, outer)
	if len(rings) == 0 {
		t.Fatal("no rings")
	}
	if inner > outer-200 {
		t.Errorf("inner radius %d, want <= %d", inner, outer-200)
	}
}

func TestRingsPrimeFlow(t *testing.T) {
	scene := newTestScene(2, map[string]any{KeySize: 10.0, KeyMinVolume: 6.0})
	scene.setExtruder(0, KeyFlow, 200.0)
	r := testRings(scene)

	full, _ := r.Prime(1, r.TowerRadius())
	doubled, _ := r.Prime(0, r.TowerRadius())
	if len(doubled) >= len(full) {
		t.Errorf("flow 200%% printed %d rings, 100%% printed %d", len(doubled), len(full))
	}
}

func TestRingsPrimeNoLineWidth(t *testing.T) {
	scene := newTestScene(2, nil)
	scene.setExtruder(0, KeyLineWidth, 0.0)
	r := testRings(scene)

	rings, inner := r.Prime(0, 7000)
	if rings != nil || inner != 7000 {
		t.Errorf("Prime() = %d rings, %d; want none, 7000", len(rings), inner)
	}
}

func TestRingsSupportMesh(t *testing.T) {
	r := testRings(newTestScene(2, nil))

	tests := []struct {
		name         string
		outer, inner geom.Coord
		wantLens     []int
	}{
		// Two sub-annuli of 4 mm: 2200..5800 with 4 semi-spokes and
		// 6200..9800 with 7 semi-spokes, 5 vertices per spoke.
		{"two wheels", 10000, 2000, []int{40, 70}},
		{"narrower than a line", 2300, 2000, []int{circleDefinition}},
		{"empty", 5000, 5000, nil},
		{"inverted", 4000, 5000, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mesh := r.SupportMesh(0, tt.outer, tt.inner)
			if len(mesh) != len(tt.wantLens) {
				t.Fatalf("got %d polygons, want %d", len(mesh), len(tt.wantLens))
			}
			for i, want := range tt.wantLens {
				if len(mesh[i]) != want {
					t.Errorf("polygon %d has %d vertices, want %d", i, len(mesh[i]), want)
				}
			}
		})
	}
}

func TestRingsSupportMeshStaysInAnnulus(t *testing.T) {
	r := testRings(newTestScene(2, nil))
	center := r.center
	for _, poly := range r.SupportMesh(0, 9000, 1000) {
		for _, pt := range poly {
			if d := pt.Distance(center); d < 1000-1 || d > 9000+1 {
				t.Fatalf("vertex %v at radius %v outside 1000..9000", pt, d)
			}
		}
	}
}

func TestRingsMemoized(t *testing.T) {
	r := testRings(newTestScene(2, nil))

	a, innerA := r.Prime(0, 10000)
	b, innerB := r.Prime(0, 10000)
	if innerA != innerB || len(a) != len(b) || &a[0][0] != &b[0][0] {
		t.Error("second Prime() did not reuse the rings")
	}
	// Every caller owns its polygon list.
	a = append(a[:1], geom.Polygon{geom.Pt(1, 1)})
	if c, _ := r.Prime(0, 10000); len(c) != len(b) || c[1][0] == a[1][0] {
		t.Error("appending to a returned list changed the memoized rings")
	}

	r.SupportMesh(1, 10000, 2000)
	r.SupportMesh(1, 10000, 2000)
	r.SupportMesh(1, 10000, 3000)
	if hits, misses := r.cacheStats(); hits != 3 || misses != 3 {
		t.Errorf("cacheStats() = %d hits, %d misses; want 3, 3", hits, misses)
	}
}
