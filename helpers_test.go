package primetower

import (
	"math"

	"github.com/gogpu/primetower/geom"
	"github.com/gogpu/primetower/layer"
)

// testSettings reads lengths in millimetres and ratios in percent, like a
// slicer profile.
type testSettings struct {
	values map[string]any
	parent *testSettings
}

func (s *testSettings) get(key string) (any, bool) {
	for scope := s; scope != nil; scope = scope.parent {
		if v, ok := scope.values[key]; ok {
			return v, true
		}
	}
	return nil, false
}

func (s *testSettings) Float(key string) float64 {
	v, _ := s.get(key)
	switch x := v.(type) {
	case float64:
		return x
	case int:
		return float64(x)
	}
	return 0
}

func (s *testSettings) Length(key string) geom.Coord {
	return geom.Coord(math.Round(s.Float(key) * 1000))
}

func (s *testSettings) Ratio(key string) float64 { return s.Float(key) / 100 }

func (s *testSettings) Bool(key string) bool {
	v, _ := s.get(key)
	b, _ := v.(bool)
	return b
}

func (s *testSettings) Enum(key string) string {
	v, _ := s.get(key)
	e, _ := v.(string)
	return e
}

type testScene struct {
	global    *testSettings
	extruders []*testSettings
}

func (s *testScene) Settings() Settings { return s.global }
func (s *testScene) ExtruderCount() int { return len(s.extruders) }
func (s *testScene) Extruder(nr int) Settings {
	if nr < 0 || nr >= len(s.extruders) {
		return s.global
	}
	return s.extruders[nr]
}

// newTestScene returns a scene with n extruders and a 20 mm tower at
// (200, 200) mm. overrides replace mesh-group values.
func newTestScene(n int, overrides map[string]any) *testScene {
	values := map[string]any{
		KeyEnable:              true,
		KeySize:                20.0,
		KeyPositionX:           200.0,
		KeyPositionY:           200.0,
		KeyMinVolume:           6.0,
		KeyFlow:                100.0,
		KeyLineWidth:           0.4,
		KeyMaxBridgingDistance: 5.0,
		KeyWipeEnabled:         true,
		KeyBaseEnable:          false,
		KeyBaseSize:            8.0,
		KeyBaseHeight:          0.0,
		KeyBaseCurveMagnitude:  4.0,
		KeyMode:                "normal",
		KeyLayerHeight:         0.2,
		KeyNozzleSize:          0.4,
	}
	for k, v := range overrides {
		values[k] = v
	}
	global := &testSettings{values: values}
	s := &testScene{global: global}
	for range n {
		s.extruders = append(s.extruders, &testSettings{values: map[string]any{}, parent: global})
	}
	return s
}

func (s *testScene) setExtruder(nr int, key string, value any) {
	s.extruders[nr].values[key] = value
}

type exclusion struct {
	nr   int
	area geom.Shape
	box  geom.AABB
}

type testStorage struct {
	maxHeight    layer.Index
	supportCount int
	excluded     []exclusion
}

func (s *testStorage) MaxPrintHeightSecondToLastExtruder() layer.Index { return s.maxHeight }
func (s *testStorage) SupportLayerCount() int                          { return s.supportCount }
func (s *testStorage) ExcludeFromSupport(nr int, area geom.Shape, box geom.AABB) {
	s.excluded = append(s.excluded, exclusion{nr: nr, area: area, box: box})
}

// testLayerPlan records the calls the tower makes.
type testLayerPlan struct {
	nr      layer.Index
	planned map[int]bool
	travels []geom.Point
	printed []geom.Shape
	configs []PathConfig
}

func newTestLayerPlan(nr layer.Index) *testLayerPlan {
	return &testLayerPlan{nr: nr, planned: map[int]bool{}}
}

func (p *testLayerPlan) LayerNr() layer.Index                  { return p.nr }
func (p *testLayerPlan) PrimeTowerIsPlanned(extruder int) bool { return p.planned[extruder] }
func (p *testLayerPlan) SetPrimeTowerIsPlanned(extruder int)   { p.planned[extruder] = true }
func (p *testLayerPlan) AddTravel(pt geom.Point)               { p.travels = append(p.travels, pt) }
func (p *testLayerPlan) AddPolygonsByOptimizer(paths geom.Shape, config PathConfig) {
	p.printed = append(p.printed, paths)
	p.configs = append(p.configs, config)
}
func (p *testLayerPlan) PrimeTowerConfig(extruder int) PathConfig {
	return PathConfig{Feature: "prime_tower", Extruder: extruder}
}

// usagePlan builds a plan from per-layer extruder lists starting at first.
// Every listed extruder primes.
func usagePlan(first layer.Index, layers ...[]int) UsagePlan {
	plan := layer.NewVector[[]ExtruderUse]()
	for i, extruders := range layers {
		uses := make([]ExtruderUse, 0, len(extruders))
		for _, e := range extruders {
			uses = append(uses, ExtruderUse{Extruder: e, Prime: PrimePrime})
		}
		plan.Set(first+layer.Index(i), uses)
	}
	return plan
}
