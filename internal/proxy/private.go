package proxy

import (
	"kinview/internal/model"
	"kinview/internal/sanitize"
	"kinview/internal/store"
)

// Private hides every object marked private and redacts the rest.
type Private struct {
	*Base
	sanitizer *sanitize.Sanitizer
}

func NewPrivate(inner store.Reader, opts ...Option) (*Private, error) {
	o := buildOptions("private", opts)
	san := sanitize.New(inner, sanitize.WithLanguage(o.language), sanitize.WithLogger(o.logger))

	hooks := Hooks{
		Maps:       make(map[model.Kind]MapFunc, len(model.Kinds)),
		Transforms: make(map[model.Kind]TransformFunc, len(model.Kinds)),
	}
	for _, kind := range model.Kinds {
		hooks.Maps[kind] = func(b *Base) (*VisibilityMap, error) {
			return FilterMap(b.inner, kind, func(s store.Summary) (bool, error) {
				return !s.Private, nil
			})
		}
		hooks.Transforms[kind] = func(obj model.Object) (model.Object, error) {
			return san.Object(obj), nil
		}
	}

	base, err := newBase(inner, hooks, o)
	if err != nil {
		return nil, err
	}
	if err := base.resummarize(model.Kinds...); err != nil {
		return nil, err
	}
	return &Private{Base: base, sanitizer: san}, nil
}
