// Package layer provides storage indexed by signed layer number.
//
// Raft layers sit below the model and have negative numbers, so a plain
// slice cannot be indexed directly. Vector keeps a contiguous backing array
// together with the layer number stored at position zero.
package layer

import "iter"

// Index is a signed layer number. Negative values are raft layers.
type Index int

// Vector maps layer numbers to values. Only layers that were Set are
// present; iteration visits present layers in increasing order.
//
// Set on distinct layers inside the reserved range may run concurrently.
// Any Set outside the range grows the backing array and must not race with
// other access.
type Vector[T any] struct {
	offset  Index
	items   []T
	present []bool
}

// NewVector returns an empty vector.
func NewVector[T any]() *Vector[T] {
	return &Vector[T]{}
}

// NewVectorRange returns an empty vector with storage reserved for layers
// first..last inclusive.
func NewVectorRange[T any](first, last Index) *Vector[T] {
	v := &Vector[T]{offset: first}
	if last >= first {
		n := int(last-first) + 1
		v.items = make([]T, n)
		v.present = make([]bool, n)
	}
	return v
}

// Set stores value at layer i.
func (v *Vector[T]) Set(i Index, value T) {
	v.grow(i)
	k := int(i - v.offset)
	v.present[k] = true
	v.items[k] = value
}

func (v *Vector[T]) grow(i Index) {
	if len(v.items) == 0 {
		v.offset = i
		v.items = make([]T, 1)
		v.present = make([]bool, 1)
		return
	}
	if i < v.offset {
		shift := int(v.offset - i)
		v.items = append(make([]T, shift), v.items...)
		v.present = append(make([]bool, shift), v.present...)
		v.offset = i
		return
	}
	if k := int(i - v.offset); k >= len(v.items) {
		extra := k - len(v.items) + 1
		v.items = append(v.items, make([]T, extra)...)
		v.present = append(v.present, make([]bool, extra)...)
	}
}

// Get returns the value stored at layer i.
func (v *Vector[T]) Get(i Index) (T, bool) {
	k := int(i - v.offset)
	if k < 0 || k >= len(v.items) || !v.present[k] {
		var zero T
		return zero, false
	}
	return v.items[k], true
}

// Lookup returns the value stored at layer i, or fallback when the layer is
// not present.
func (v *Vector[T]) Lookup(i Index, fallback T) T {
	if value, ok := v.Get(i); ok {
		return value
	}
	return fallback
}

// Floor returns the nearest present layer at or below i.
func (v *Vector[T]) Floor(i Index) (Index, T, bool) {
	k := int(i - v.offset)
	if k >= len(v.items) {
		k = len(v.items) - 1
	}
	for ; k >= 0; k-- {
		if v.present[k] {
			return v.offset + Index(k), v.items[k], true
		}
	}
	var zero T
	return 0, zero, false
}

// Len returns the number of present layers.
func (v *Vector[T]) Len() int {
	n := 0
	for _, ok := range v.present {
		if ok {
			n++
		}
	}
	return n
}

// First returns the lowest present layer.
func (v *Vector[T]) First() (Index, T, bool) {
	for k := range v.items {
		if v.present[k] {
			return v.offset + Index(k), v.items[k], true
		}
	}
	var zero T
	return 0, zero, false
}

// Last returns the highest present layer.
func (v *Vector[T]) Last() (Index, T, bool) {
	return v.Floor(v.offset + Index(len(v.items)))
}

// All iterates over present layers from bottom to top.
func (v *Vector[T]) All() iter.Seq2[Index, T] {
	return func(yield func(Index, T) bool) {
		for k := range v.items {
			if v.present[k] && !yield(v.offset+Index(k), v.items[k]) {
				return
			}
		}
	}
}

// Backward iterates over present layers from top to bottom.
func (v *Vector[T]) Backward() iter.Seq2[Index, T] {
	return func(yield func(Index, T) bool) {
		for k := len(v.items) - 1; k >= 0; k-- {
			if v.present[k] && !yield(v.offset+Index(k), v.items[k]) {
				return
			}
		}
	}
}
