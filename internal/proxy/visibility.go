package proxy

import (
	"slices"

	"kinview/internal/model"
	"kinview/internal/store"
)

// VisibilityMap is the set of handles a proxy acknowledges for one kind,
// with the summary each was admitted under. It is never changed after the
// proxy is built.
type VisibilityMap struct {
	order []model.Handle
	index map[model.Handle]store.Summary
}

func NewVisibilityMap(sums []store.Summary) *VisibilityMap {
	m := &VisibilityMap{index: make(map[model.Handle]store.Summary, len(sums))}
	for _, s := range sums {
		if _, dup := m.index[s.Handle]; dup {
			continue
		}
		m.index[s.Handle] = s
		m.order = append(m.order, s.Handle)
	}
	return m
}

func (m *VisibilityMap) Contains(h model.Handle) bool {
	_, ok := m.index[h]
	return ok
}

func (m *VisibilityMap) Summary(h model.Handle) (store.Summary, bool) {
	s, ok := m.index[h]
	return s, ok
}

// Handles lists the map's handles in insertion order.
func (m *VisibilityMap) Handles() []model.Handle {
	return slices.Clone(m.order)
}

func (m *VisibilityMap) Summaries() []store.Summary {
	out := make([]store.Summary, 0, len(m.order))
	for _, h := range m.order {
		out = append(out, m.index[h])
	}
	return out
}

func (m *VisibilityMap) Len() int {
	return len(m.order)
}

// DefaultMap admits every object of kind in r.
func DefaultMap(r store.Reader, kind model.Kind) (*VisibilityMap, error) {
	sums, err := r.Summaries(kind)
	if err != nil {
		return nil, err
	}
	return NewVisibilityMap(sums), nil
}

// FilterMap admits the objects of kind in r for which keep returns true.
func FilterMap(r store.Reader, kind model.Kind, keep func(store.Summary) (bool, error)) (*VisibilityMap, error) {
	sums, err := r.Summaries(kind)
	if err != nil {
		return nil, err
	}
	kept := make([]store.Summary, 0, len(sums))
	for _, s := range sums {
		ok, err := keep(s)
		if err != nil {
			return nil, err
		}
		if ok {
			kept = append(kept, s)
		}
	}
	return NewVisibilityMap(kept), nil
}

// HandleMap admits the objects of kind in r whose handles are listed.
func HandleMap(r store.Reader, kind model.Kind, handles []model.Handle) (*VisibilityMap, error) {
	set := make(map[model.Handle]bool, len(handles))
	for _, h := range handles {
		set[h] = true
	}
	return FilterMap(r, kind, func(s store.Summary) (bool, error) {
		return set[s.Handle], nil
	})
}
