package proxy

import (
	"fmt"

	"kinview/internal/model"
	"kinview/internal/store"
	"kinview/internal/walker"
)

// Referenced shows only the objects reachable from the people of the
// wrapped reader. With allPeople set every person seeds the walk;
// otherwise only people connected through families are kept, and the
// closure is taken from them.
type Referenced struct {
	*Base
	result *walker.Result
}

func NewReferenced(inner store.Reader, allPeople bool, opts ...Option) (*Referenced, error) {
	o := buildOptions("referenced", opts)

	walk := walker.ConnectedPeople
	if allPeople {
		walk = walker.AllPeople
	}
	result, err := walk(inner, walker.WithLogger(o.logger))
	if err != nil {
		return nil, fmt.Errorf("walking %s references: %w", o.name, err)
	}

	hooks := Hooks{Maps: make(map[model.Kind]MapFunc, len(model.Kinds))}
	for _, kind := range model.Kinds {
		hooks.Maps[kind] = func(b *Base) (*VisibilityMap, error) {
			return FilterMap(b.inner, kind, func(s store.Summary) (bool, error) {
				return result.Contains(kind, s.Handle), nil
			})
		}
	}

	base, err := newBase(inner, hooks, o)
	if err != nil {
		return nil, err
	}
	return &Referenced{Base: base, result: result}, nil
}

// Unreferenced counts the objects of kind the walk did not reach.
func (r *Referenced) Unreferenced(kind model.Kind) (int, error) {
	total, err := r.inner.Count(kind)
	if err != nil {
		return 0, err
	}
	return total - r.Map(kind).Len(), nil
}
