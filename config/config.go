// Package config loads prime tower jobs from YAML.
//
// A job file looks like this:
//
//	raft_layers: 2
//	support_layers: 40
//	settings:
//	  prime_tower_enable: true
//	  prime_tower_size: 20        # mm
//	  prime_tower_mode: interleaved
//	extruders:
//	  - {}
//	  - prime_tower_min_volume: 10
//	    machine_nozzle_offset_x: 18
//	layers:                       # extruders used per layer, from the lowest layer up
//	  - [0, 1]
//	  - [1, 0]
//
// Lengths are millimetres, ratios percent and volumes mm³, as in a slicer
// profile.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/primetower"
	"github.com/gogpu/primetower/layer"
)

// ErrInvalidValue is returned for setting values that are not scalars.
var ErrInvalidValue = errors.New("config: invalid setting value")

// ErrNoExtruders is returned when a job declares no extruder.
var ErrNoExtruders = errors.New("config: no extruders")

type document struct {
	RaftLayers    int              `yaml:"raft_layers"`
	SupportLayers int              `yaml:"support_layers"`
	Settings      map[string]any   `yaml:"settings"`
	Extruders     []map[string]any `yaml:"extruders"`
	Layers        [][]int          `yaml:"layers"`
}

// Scene is a loaded job. It implements primetower.Scene.
type Scene struct {
	global    *Settings
	extruders []*Settings

	// RaftLayers is the number of raft layers below layer 0.
	RaftLayers int
	// SupportLayers is the number of layers that carry support.
	SupportLayers int
	// Layers lists the extruders used per layer, starting at -RaftLayers.
	Layers [][]int
}

// Default returns a scene with built-in settings and n extruders.
func Default(n int) *Scene {
	global := NewSettings(nil, nil)
	s := &Scene{global: global}
	for range n {
		s.extruders = append(s.extruders, NewSettings(nil, global))
	}
	return s
}

// Load reads a job from r.
func Load(r io.Reader) (*Scene, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if len(doc.Extruders) == 0 {
		return nil, ErrNoExtruders
	}
	if err := validate("settings", doc.Settings); err != nil {
		return nil, err
	}

	s := &Scene{
		global:        NewSettings(doc.Settings, nil),
		RaftLayers:    doc.RaftLayers,
		SupportLayers: doc.SupportLayers,
		Layers:        doc.Layers,
	}
	for i, values := range doc.Extruders {
		if err := validate(fmt.Sprintf("extruders[%d]", i), values); err != nil {
			return nil, err
		}
		s.extruders = append(s.extruders, NewSettings(values, s.global))
	}
	for i, uses := range doc.Layers {
		for _, nr := range uses {
			if nr < 0 || nr >= len(s.extruders) {
				return nil, fmt.Errorf("config: layers[%d]: extruder %d out of range: %w", i, nr, ErrInvalidValue)
			}
		}
	}
	return s, nil
}

// Parse reads a job from YAML bytes.
func Parse(data []byte) (*Scene, error) {
	return Load(bytes.NewReader(data))
}

// LoadFile reads a job from a YAML file.
func LoadFile(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func validate(scope string, values map[string]any) error {
	for key, v := range values {
		switch v.(type) {
		case bool, int, int64, uint64, float64, string:
		default:
			return fmt.Errorf("%s.%s: %T: %w", scope, key, v, ErrInvalidValue)
		}
	}
	return nil
}

// Settings implements primetower.Scene.
func (s *Scene) Settings() primetower.Settings {
	return s.global
}

// ExtruderCount implements primetower.Scene.
func (s *Scene) ExtruderCount() int {
	return len(s.extruders)
}

// Extruder implements primetower.Scene. Unknown extruders read the
// mesh-group scope.
func (s *Scene) Extruder(nr int) primetower.Settings {
	if nr < 0 || nr >= len(s.extruders) {
		return s.global
	}
	return s.extruders[nr]
}

// Global returns the mesh-group scope for modification.
func (s *Scene) Global() *Settings {
	return s.global
}

// ExtruderSettings returns the scope of extruder nr for modification, or
// nil when it does not exist.
func (s *Scene) ExtruderSettings(nr int) *Settings {
	if nr < 0 || nr >= len(s.extruders) {
		return nil
	}
	return s.extruders[nr]
}

// UsagePlan converts Layers into a usage plan. Every listed extruder is
// marked for priming; the tower's polishing step adds sparse uses.
func (s *Scene) UsagePlan() primetower.UsagePlan {
	plan := layer.NewVector[[]primetower.ExtruderUse]()
	for i, extruders := range s.Layers {
		uses := make([]primetower.ExtruderUse, 0, len(extruders))
		for _, nr := range extruders {
			uses = append(uses, primetower.ExtruderUse{Extruder: nr, Prime: primetower.PrimePrime})
		}
		plan.Set(layer.Index(i-s.RaftLayers), uses)
	}
	return plan
}

var _ primetower.Scene = (*Scene)(nil)
