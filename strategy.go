package primetower

import (
	"fmt"
	"strings"

	"github.com/gogpu/primetower/geom"
	"github.com/gogpu/primetower/layer"
)

// ExtruderToolPaths holds what one extruder prints on the tower on one
// layer. Radii are measured from the tower centre.
type ExtruderToolPaths struct {
	Extruder    int
	ToolPaths   geom.Shape
	OuterRadius geom.Coord
	InnerRadius geom.Coord
}

// ToolPathStore maps layers to the toolpaths of each extruder on that
// layer, in processing order (outermost first).
type ToolPathStore = *layer.Vector[[]ExtruderToolPaths]

// Strategy lays out the rings of all extruders on every layer.
type Strategy interface {
	GenerateToolPaths(rings *Rings, plan UsagePlan) ToolPathStore
}

// Mode selects a built-in Strategy.
type Mode uint8

const (
	// ModeNormal gives every extruder its own annulus on every layer.
	ModeNormal Mode = iota
	// ModeInterleaved lets extruders share the tower radius layer by layer.
	ModeInterleaved
)

// String returns the setting value for the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeInterleaved:
		return "interleaved"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// ParseMode converts a prime_tower_mode setting value. Unknown values fall
// back to ModeNormal.
func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), "interleaved") {
		return ModeInterleaved
	}
	return ModeNormal
}

// NewStrategy returns the built-in strategy for mode.
func NewStrategy(mode Mode, scene Scene, workers int) Strategy {
	if mode == ModeInterleaved {
		return NewInterleaved()
	}
	return NewNormal(scene, workers)
}

var (
	_ Strategy = (*Normal)(nil)
	_ Polisher = (*Normal)(nil)
	_ Strategy = (*Interleaved)(nil)
	_ Polisher = (*Interleaved)(nil)
)
