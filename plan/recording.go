package plan

import (
	"github.com/gogpu/primetower"
	"github.com/gogpu/primetower/geom"
	"github.com/gogpu/primetower/layer"
)

// Backend receives the commands of a recording.
type Backend interface {
	// Begin starts a layer. Returns an error if the backend cannot render.
	Begin(nr layer.Index) error
	Travel(to geom.Point)
	Print(paths geom.Shape, config primetower.PathConfig)
	// End finishes the layer.
	End() error
}

// Recording is an immutable list of the commands planned for one layer.
type Recording struct {
	nr       layer.Index
	commands []Command
}

// Layer returns the layer number the recording belongs to.
func (r *Recording) Layer() layer.Index {
	return r.nr
}

// Commands returns the recorded commands.
func (r *Recording) Commands() []Command {
	return r.commands
}

// Stats summarises a recording.
type Stats struct {
	Travels  int
	Polygons int
	// PrintedLength is the summed length of all printed polygons in
	// micrometres.
	PrintedLength float64
	Extruders     []int
}

// Stats counts travels, printed polygons and planned extruders.
func (r *Recording) Stats() Stats {
	var s Stats
	for _, cmd := range r.commands {
		switch c := cmd.(type) {
		case TravelCommand:
			s.Travels++
		case PrintCommand:
			s.Polygons += len(c.Paths)
			s.PrintedLength += c.Paths.Length()
		case MarkCommand:
			s.Extruders = append(s.Extruders, c.Extruder)
		}
	}
	return s
}

// Playback replays the recording to the given backend.
func (r *Recording) Playback(backend Backend) error {
	if err := backend.Begin(r.nr); err != nil {
		return err
	}
	for _, cmd := range r.commands {
		switch c := cmd.(type) {
		case TravelCommand:
			backend.Travel(c.To)
		case PrintCommand:
			backend.Print(c.Paths, c.Config)
		case MarkCommand:
			// Bookkeeping only.
		}
	}
	return backend.End()
}
