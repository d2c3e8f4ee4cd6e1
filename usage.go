package primetower

import (
	"maps"
	"slices"

	"github.com/gogpu/primetower/layer"
)

// PrimeKind says what an extruder has to print on the tower on one layer.
type PrimeKind uint8

const (
	// PrimeNone means the extruder prints nothing on the tower.
	PrimeNone PrimeKind = iota
	// PrimeSparse means the extruder only prints a sparse wheel so the rings
	// of upper layers stay supported.
	PrimeSparse
	// PrimePrime means the extruder discharges its full priming volume.
	PrimePrime
)

var primeKindNames = [...]string{
	PrimeNone:   "none",
	PrimeSparse: "sparse",
	PrimePrime:  "prime",
}

// String returns the string representation of a PrimeKind.
func (k PrimeKind) String() string {
	if int(k) < len(primeKindNames) {
		return primeKindNames[k]
	}
	return "unknown"
}

// ExtruderUse is one entry of a layer's extruder timetable.
type ExtruderUse struct {
	Extruder int
	Prime    PrimeKind
}

// UsagePlan holds, per layer, the ordered list of extruder uses.
type UsagePlan = *layer.Vector[[]ExtruderUse]

// PlanBounds limits how far up the tower is needed.
type PlanBounds struct {
	// FirstLayer is the lowest layer, the bottom raft layer when a raft is used.
	FirstLayer layer.Index
	// LastNeededLayer is the last layer on which the second-to-last extruder
	// prints. Above it at most one extruder remains and no priming is needed.
	LastNeededLayer layer.Index
}

// Polisher rewrites a usage plan before toolpaths are generated, for
// example to add sparse uses that keep upper rings supported. The built-in
// strategies implement it; WithPolisher replaces it.
type Polisher interface {
	PolishExtrudersUses(plan UsagePlan, startExtruder int, bounds PlanBounds)
}

// ExtruderRequiresPrime reports whether extruder nr must prime on a layer:
// it is used there and it is not the extruder still loaded from the layer
// below.
func ExtruderRequiresPrime(usedOnLayer []bool, nr, lastExtruder int) bool {
	return nr >= 0 && nr < len(usedOnLayer) && usedOnLayer[nr] && nr != lastExtruder
}

// SecondToLastExtruderHeight returns the highest layer on which the
// second-to-last finishing extruder is still used, or -1 when fewer than two
// extruders appear in the plan.
func SecondToLastExtruderHeight(plan UsagePlan) layer.Index {
	last := map[int]layer.Index{}
	for nr, uses := range plan.All() {
		for _, use := range uses {
			if use.Prime != PrimeNone {
				last[use.Extruder] = nr
			}
		}
	}
	if len(last) < 2 {
		return -1
	}
	heights := slices.Collect(maps.Values(last))
	slices.Sort(heights)
	return heights[len(heights)-2]
}

// dedupeUses merges repeated entries of the same extruder into the first
// occurrence. The strongest PrimeKind wins.
func dedupeUses(uses []ExtruderUse) []ExtruderUse {
	out := make([]ExtruderUse, 0, len(uses))
	index := map[int]int{}
	for _, use := range uses {
		if i, ok := index[use.Extruder]; ok {
			out[i].Prime = max(out[i].Prime, use.Prime)
			continue
		}
		index[use.Extruder] = len(out)
		out = append(out, use)
	}
	return out
}
