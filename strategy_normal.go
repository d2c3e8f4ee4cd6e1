package primetower

import (
	"slices"

	"github.com/gogpu/primetower/geom"
	"github.com/gogpu/primetower/internal/parallel"
	"github.com/gogpu/primetower/layer"
)

// Normal gives every used extruder a fixed annulus of the tower. Extruders
// are ordered by ascending material adhesion tendency, the first one taking
// the outermost annulus. On every layer an extruder either prints its full
// priming rings or, when it only needs to keep the rings above supported, a
// sparse wheel over the same annulus.
//
// Layers are independent of each other and are generated in parallel.
type Normal struct {
	scene   Scene
	workers int
}

// NewNormal returns the normal strategy. workers <= 0 uses GOMAXPROCS.
func NewNormal(scene Scene, workers int) *Normal {
	return &Normal{scene: scene, workers: workers}
}

// extruderOrder returns all extruders sorted from outermost to innermost.
func (n *Normal) extruderOrder() []int {
	order := make([]int, n.scene.ExtruderCount())
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		ta := n.scene.Extruder(a).Ratio(KeyAdhesionTendency)
		tb := n.scene.Extruder(b).Ratio(KeyAdhesionTendency)
		switch {
		case ta < tb:
			return -1
		case ta > tb:
			return 1
		}
		return 0
	})
	return order
}

func usedExtruders(plan UsagePlan) map[int]bool {
	used := map[int]bool{}
	for _, uses := range plan.All() {
		for _, use := range uses {
			if use.Prime != PrimeNone {
				used[use.Extruder] = true
			}
		}
	}
	return used
}

// PolishExtrudersUses makes sure every used extruder prints at least a
// sparse wheel on each layer up to bounds.LastNeededLayer, so no annulus
// is left hanging over empty space.
func (n *Normal) PolishExtrudersUses(plan UsagePlan, _ int, bounds PlanBounds) {
	used := usedExtruders(plan)
	order := n.extruderOrder()
	for nr := bounds.FirstLayer; nr <= bounds.LastNeededLayer; nr++ {
		uses, _ := plan.Get(nr)
		uses = dedupeUses(uses)
		for _, extruder := range order {
			if !used[extruder] {
				continue
			}
			i := slices.IndexFunc(uses, func(u ExtruderUse) bool { return u.Extruder == extruder })
			switch {
			case i < 0:
				uses = append(uses, ExtruderUse{Extruder: extruder, Prime: PrimeSparse})
			case uses[i].Prime == PrimeNone:
				uses[i].Prime = PrimeSparse
			}
		}
		plan.Set(nr, uses)
	}
}

type annulus struct {
	rings        geom.Shape
	outer, inner geom.Coord
}

// GenerateToolPaths implements Strategy.
func (n *Normal) GenerateToolPaths(rings *Rings, plan UsagePlan) ToolPathStore {
	used := usedExtruders(plan)
	var order []int
	for _, extruder := range n.extruderOrder() {
		if used[extruder] {
			order = append(order, extruder)
		}
	}

	annuli := make(map[int]annulus, len(order))
	outer := rings.TowerRadius()
	for _, extruder := range order {
		paths, inner := rings.Prime(extruder, outer)
		annuli[extruder] = annulus{rings: paths, outer: outer, inner: inner}
		outer = inner
	}

	first, _, ok := plan.First()
	if !ok {
		return layer.NewVector[[]ExtruderToolPaths]()
	}
	last, _, _ := plan.Last()
	store := layer.NewVectorRange[[]ExtruderToolPaths](first, last)

	var work []func()
	for nr, uses := range plan.All() {
		work = append(work, func() {
			if paths := n.generateLayer(rings, annuli, order, uses); len(paths) > 0 {
				store.Set(nr, paths)
				Logger().Debug("primetower: layer generated", "layer", nr, "extruders", len(paths))
			}
		})
	}

	pool := parallel.NewWorkerPool(n.workers)
	defer pool.Close()
	pool.ExecuteAll(work)
	return store
}

func (n *Normal) generateLayer(rings *Rings, annuli map[int]annulus, order []int, uses []ExtruderUse) []ExtruderToolPaths {
	var out []ExtruderToolPaths
	for _, extruder := range order {
		i := slices.IndexFunc(uses, func(u ExtruderUse) bool { return u.Extruder == extruder })
		if i < 0 {
			continue
		}
		a := annuli[extruder]
		var paths geom.Shape
		switch uses[i].Prime {
		case PrimePrime:
			paths = a.rings.Clone()
		case PrimeSparse:
			paths = rings.SupportMesh(extruder, a.outer, a.inner)
		default:
			continue
		}
		out = append(out, ExtruderToolPaths{
			Extruder:    extruder,
			ToolPaths:   paths,
			OuterRadius: a.outer,
			InnerRadius: a.inner,
		})
	}
	return out
}
