// Command towerdemo plans a prime tower for a YAML job and writes one PNG
// preview per layer together with a short report.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	uuid "github.com/satori/go.uuid"

	"github.com/gogpu/primetower"
	"github.com/gogpu/primetower/config"
	"github.com/gogpu/primetower/geom"
	"github.com/gogpu/primetower/layer"
	"github.com/gogpu/primetower/plan"
	"github.com/gogpu/primetower/preview"
	"github.com/gogpu/primetower/support"
)

func main() {
	var (
		configPath = flag.String("config", "job.yaml", "job description")
		outDir     = flag.String("out", "", "directory for layer previews (empty: no images)")
		maxLayers  = flag.Int("layers", 0, "only plan the lowest N layers (0: all)")
		workers    = flag.Int("workers", 0, "layer generation goroutines (0: GOMAXPROCS)")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	jobID := uuid.NewV4().String()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})).With("job", jobID)
	primetower.SetLogger(logger)

	scene, err := config.LoadFile(*configPath)
	if err != nil {
		log.Fatalf("Failed to load job: %v", err)
	}

	usage := scene.UsagePlan()
	storage := support.NewStorage(scene.SupportLayers, primetower.SecondToLastExtruderHeight(usage))
	tower := primetower.CreatePrimeTower(scene, storage, primetower.RaftLayerCount(scene.RaftLayers),
		primetower.WithWorkers(*workers))
	if tower == nil {
		logger.Info("no prime tower for this job")
		return
	}
	tower.ProcessExtrudersUse(usage, firstExtruder(usage))

	recordings := planLayers(tower, scene, usage, *maxLayers)

	if *outDir != "" {
		if err := writePreviews(*outDir, tower, recordings); err != nil {
			log.Fatalf("Failed to write previews: %v", err)
		}
	}

	out, err := renderReport(jobID, tower, recordings)
	if err != nil {
		log.Fatalf("Failed to render report: %v", err)
	}
	fmt.Print(out)
}

func firstExtruder(usage primetower.UsagePlan) int {
	if _, uses, ok := usage.First(); ok && len(uses) > 0 {
		return uses[0].Extruder
	}
	return 0
}

// planLayers walks the layers like a layer planner would: every extruder
// switch gives the tower a chance to print.
func planLayers(tower *primetower.Tower, scene primetower.Scene, usage primetower.UsagePlan, limit int) []*plan.Recording {
	var recordings []*plan.Recording
	current := firstExtruder(usage)
	for nr, uses := range usage.All() {
		if limit > 0 && len(recordings) >= limit {
			break
		}
		rec := plan.NewRecorder(nr, scene)
		order := slices.Clone(uses)
		// The extruder loaded from below goes first, it needs no switch.
		slices.SortStableFunc(order, func(a, b primetower.ExtruderUse) int {
			switch {
			case a.Extruder == current && b.Extruder != current:
				return -1
			case b.Extruder == current && a.Extruder != current:
				return 1
			}
			return 0
		})
		for _, use := range order {
			tower.AddToGcode(rec, uses, current, use.Extruder)
			current = use.Extruder
		}
		recordings = append(recordings, rec.FinishRecording())
	}
	return recordings
}

func writePreviews(dir string, tower *primetower.Tower, recordings []*plan.Recording) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	ground := tower.OccupiedGroundOutline()
	bounds := geom.NewAABB(ground)
	for _, r := range recordings {
		canvas := preview.NewCanvas(bounds, preview.DefaultOptions())
		if err := r.Playback(canvas); err != nil {
			return err
		}
		name := filepath.Join(dir, layerFileName(r.Layer()))
		if err := preview.SavePNG(name, canvas.Image()); err != nil {
			return err
		}
	}
	return nil
}

func layerFileName(nr layer.Index) string {
	if nr < 0 {
		return fmt.Sprintf("raft-%03d.png", -nr)
	}
	return fmt.Sprintf("layer-%04d.png", nr)
}
