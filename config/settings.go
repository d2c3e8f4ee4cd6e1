package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/primetower"
	"github.com/gogpu/primetower/geom"
)

// defaults are the engine's built-in setting values. Lengths are in
// millimetres, ratios in percent, volumes in mm³.
var defaults = map[string]any{
	primetower.KeyEnable:              false,
	primetower.KeySize:                20.0,
	primetower.KeyPositionX:           200.0,
	primetower.KeyPositionY:           200.0,
	primetower.KeyMinVolume:           6.0,
	primetower.KeyFlow:                100.0,
	primetower.KeyLineWidth:           0.4,
	primetower.KeyMaxBridgingDistance: 5.0,
	primetower.KeyWipeEnabled:         true,
	primetower.KeyBaseEnable:          true,
	primetower.KeyBaseSize:            8.0,
	primetower.KeyBaseHeight:          0.0,
	primetower.KeyBaseCurveMagnitude:  4.0,
	primetower.KeyMode:                "normal",
	primetower.KeyAdhesionTendency:    0.0,
	primetower.KeyLayerHeight:         0.2,
	primetower.KeyNozzleSize:          0.4,
	primetower.KeyNozzleOffsetX:       0.0,
	primetower.KeyNozzleOffsetY:       0.0,
}

// Settings is one scope of values. Lookups that miss fall through to the
// parent scope and finally to the built-in defaults.
type Settings struct {
	values map[string]any
	parent *Settings
}

// NewSettings returns a scope holding values on top of parent, which may be
// nil.
func NewSettings(values map[string]any, parent *Settings) *Settings {
	if values == nil {
		values = map[string]any{}
	}
	return &Settings{values: values, parent: parent}
}

// Set overrides one value in this scope.
func (s *Settings) Set(key string, value any) {
	s.values[key] = value
}

func (s *Settings) raw(key string) (any, bool) {
	for scope := s; scope != nil; scope = scope.parent {
		if v, ok := scope.values[key]; ok {
			return v, true
		}
	}
	v, ok := defaults[key]
	return v, ok
}

func (s *Settings) number(key string) float64 {
	v, ok := s.raw(key)
	if !ok {
		return 0
	}
	f, _ := toFloat(v)
	return f
}

// Length implements primetower.Settings. Values are stored in millimetres.
func (s *Settings) Length(key string) geom.Coord {
	return geom.Coord(math.Round(s.number(key) * 1000))
}

// Bool implements primetower.Settings.
func (s *Settings) Bool(key string) bool {
	v, ok := s.raw(key)
	if !ok {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, _ := strconv.ParseBool(strings.TrimSpace(b))
		return parsed
	}
	f, _ := toFloat(v)
	return f != 0
}

// Float implements primetower.Settings.
func (s *Settings) Float(key string) float64 {
	return s.number(key)
}

// Ratio implements primetower.Settings. Values are stored in percent.
func (s *Settings) Ratio(key string) float64 {
	return s.number(key) / 100
}

// Enum implements primetower.Settings.
func (s *Settings) Enum(key string) string {
	v, ok := s.raw(key)
	if !ok {
		return ""
	}
	return fmt.Sprint(v)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

var _ primetower.Settings = (*Settings)(nil)
