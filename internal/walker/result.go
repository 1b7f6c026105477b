package walker

import (
	"maps"
	"slices"

	"kinview/internal/model"
)

// Result holds the reachable handles per kind.
type Result struct {
	sets  map[model.Kind]map[model.Handle]bool
	order map[model.Kind][]model.Handle
}

func newResult() *Result {
	return &Result{
		sets:  make(map[model.Kind]map[model.Handle]bool),
		order: make(map[model.Kind][]model.Handle),
	}
}

func (r *Result) add(kind model.Kind, h model.Handle) {
	set := r.sets[kind]
	if set == nil {
		set = make(map[model.Handle]bool)
		r.sets[kind] = set
	}
	if set[h] {
		return
	}
	set[h] = true
	r.order[kind] = append(r.order[kind], h)
}

func (r *Result) clone() *Result {
	out := newResult()
	for kind, set := range r.sets {
		out.sets[kind] = maps.Clone(set)
		out.order[kind] = slices.Clone(r.order[kind])
	}
	return out
}

func (r *Result) Contains(kind model.Kind, h model.Handle) bool {
	return r.sets[kind][h]
}

// Handles lists kind's reachable handles in discovery order.
func (r *Result) Handles(kind model.Kind) []model.Handle {
	return slices.Clone(r.order[kind])
}

func (r *Result) Len(kind model.Kind) int {
	return len(r.order[kind])
}
