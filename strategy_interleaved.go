package primetower

import "github.com/gogpu/primetower/layer"

// Interleaved lets the extruders of a layer share the tower in the order
// they are used: each primes inward from where the previous one stopped.
// Because the innermost radius changes from layer to layer, layers are
// generated from the top down and every layer fills the area the layer
// above printed on, using sparse wheels where it did not prime itself.
type Interleaved struct{}

// NewInterleaved returns the interleaved strategy.
func NewInterleaved() *Interleaved {
	return &Interleaved{}
}

// PolishExtrudersUses merges repeated uses of one extruder on a layer and
// gives every layer up to bounds.LastNeededLayer+1 at least one use: a layer
// without any gets a sparse use of the extruder still loaded from below.
func (*Interleaved) PolishExtrudersUses(plan UsagePlan, startExtruder int, bounds PlanBounds) {
	lastUsed := startExtruder
	for nr := bounds.FirstLayer; nr <= bounds.LastNeededLayer+1; nr++ {
		uses, _ := plan.Get(nr)
		uses = dedupeUses(uses)

		printing := false
		for _, use := range uses {
			printing = printing || use.Prime != PrimeNone
		}
		switch {
		case len(uses) == 0:
			uses = append(uses, ExtruderUse{Extruder: lastUsed, Prime: PrimeSparse})
		case !printing:
			uses[len(uses)-1].Prime = PrimeSparse
		}
		plan.Set(nr, uses)
		lastUsed = uses[len(uses)-1].Extruder
	}
}

// GenerateToolPaths implements Strategy.
func (*Interleaved) GenerateToolPaths(rings *Rings, plan UsagePlan) ToolPathStore {
	first, _, _ := plan.First()
	last, _, _ := plan.Last()
	store := layer.NewVectorRange[[]ExtruderToolPaths](first, last)
	towerRadius := rings.TowerRadius()
	supportRadius := towerRadius

	for nr, uses := range plan.Backward() {
		var paths []ExtruderToolPaths
		seen := map[int]bool{}
		outer := towerRadius
		for _, use := range uses {
			if seen[use.Extruder] {
				continue
			}
			seen[use.Extruder] = true

			switch use.Prime {
			case PrimePrime:
				rs, inner := rings.Prime(use.Extruder, outer)
				paths = append(paths, ExtruderToolPaths{
					Extruder:    use.Extruder,
					ToolPaths:   rs,
					OuterRadius: outer,
					InnerRadius: inner,
				})
				outer = inner
			case PrimeSparse:
				inner := min(outer, supportRadius)
				paths = append(paths, ExtruderToolPaths{
					Extruder:    use.Extruder,
					ToolPaths:   rings.SupportMesh(use.Extruder, outer, inner),
					OuterRadius: outer,
					InnerRadius: inner,
				})
				outer = inner
			}
		}
		if len(paths) == 0 {
			continue
		}

		// The layer above reaches further in than this one primed.
		if outer > supportRadius {
			last := &paths[len(paths)-1]
			last.ToolPaths = append(last.ToolPaths, rings.SupportMesh(last.Extruder, outer, supportRadius)...)
			last.InnerRadius = supportRadius
			outer = supportRadius
		}
		store.Set(nr, paths)
		supportRadius = outer
		Logger().Debug("primetower: layer generated", "layer", nr, "extruders", len(paths), "inner", outer)
	}
	return store
}
