// Package proxy provides read-only views over a store.Reader.
//
// A proxy decides once, at construction, which handles of each kind it
// acknowledges. Every query consults those visibility maps before reading
// the wrapped reader, and every object read is passed through the proxy's
// transform and memoized. Proxies satisfy store.Reader themselves, so they
// stack.
package proxy

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"kinview/internal/metrics"
	"kinview/internal/model"
	"kinview/internal/parser"
	"kinview/internal/store"
)

// MapFunc builds the visibility map for one kind. It receives the proxy
// under construction; maps for kinds earlier in model.Kinds are already
// in place.
type MapFunc func(b *Base) (*VisibilityMap, error)

// TransformFunc rewrites an object read from the wrapped reader.
type TransformFunc func(obj model.Object) (model.Object, error)

type Hooks struct {
	Maps       map[model.Kind]MapFunc
	Transforms map[model.Kind]TransformFunc
}

type Base struct {
	inner      store.Reader
	maps       map[model.Kind]*VisibilityMap
	transforms map[model.Kind]TransformFunc
	bookmarks  []model.Handle
	cache      objectCache

	name    string
	logger  *logrus.Logger
	metrics *metrics.Metrics
}

var (
	_ store.Reader = (*Base)(nil)
	_ store.Sorter = (*Base)(nil)
)

// NewBase builds the visibility maps in model.Kinds order and filters the
// wrapped reader's bookmarks. Any read failure aborts construction.
func NewBase(inner store.Reader, hooks Hooks, opts ...Option) (*Base, error) {
	o := buildOptions("base", opts)
	return newBase(inner, hooks, o)
}

func newBase(inner store.Reader, hooks Hooks, o options) (*Base, error) {
	cache, err := newObjectCache(o.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating %s cache: %w", o.name, err)
	}
	b := &Base{
		inner:      inner,
		maps:       make(map[model.Kind]*VisibilityMap, len(model.Kinds)),
		transforms: hooks.Transforms,
		cache:      cache,
		name:       o.name,
		logger:     o.logger,
		metrics:    o.metrics,
	}

	start := time.Now()
	for _, kind := range model.Kinds {
		var m *VisibilityMap
		if build := hooks.Maps[kind]; build != nil {
			m, err = build(b)
		} else {
			m, err = DefaultMap(inner, kind)
		}
		if err != nil {
			return nil, fmt.Errorf("building %s %s map: %w", o.name, kind, err)
		}
		b.maps[kind] = m
		b.metrics.SetVisible(o.name, string(kind), m.Len())
	}

	bookmarks, err := inner.Bookmarks()
	if err != nil {
		return nil, fmt.Errorf("reading %s bookmarks: %w", o.name, err)
	}
	for _, h := range bookmarks {
		if b.maps[model.KindPerson].Contains(h) {
			b.bookmarks = append(b.bookmarks, h)
		}
	}

	elapsed := time.Since(start)
	b.metrics.ObserveBuild(o.name, elapsed)
	b.logger.WithFields(logrus.Fields{
		"proxy":    o.name,
		"people":   b.maps[model.KindPerson].Len(),
		"families": b.maps[model.KindFamily].Len(),
		"elapsed":  elapsed,
	}).Debug("proxy built")
	return b, nil
}

// Inner returns the wrapped reader.
func (b *Base) Inner() store.Reader {
	return b.inner
}

func (b *Base) Name() string {
	return b.name
}

// Map returns the visibility map for kind.
func (b *Base) Map(kind model.Kind) *VisibilityMap {
	return b.maps[kind]
}

// Visible reports whether h is in kind's visibility map.
func (b *Base) Visible(kind model.Kind, h model.Handle) bool {
	m := b.maps[kind]
	return m != nil && m.Contains(h)
}

// keep returns the handles of hs that are in kind's visibility map.
func (b *Base) keep(kind model.Kind, hs []model.Handle) []model.Handle {
	var out []model.Handle
	for _, h := range hs {
		if b.Visible(kind, h) {
			out = append(out, h)
		}
	}
	return out
}

func (b *Base) visibleAnywhere(h model.Handle) bool {
	for _, m := range b.maps {
		if m.Contains(h) {
			return true
		}
	}
	return false
}

func (b *Base) object(kind model.Kind, h model.Handle) (model.Object, error) {
	m, ok := b.maps[kind]
	if !ok {
		return nil, fmt.Errorf("unknown kind %q", kind)
	}
	if !m.Contains(h) {
		return nil, store.NotFound(kind, string(h))
	}

	key := cacheKey{kind: kind, handle: h}
	if obj, ok := b.cache.get(key); ok {
		b.metrics.CacheHit(b.name, string(kind))
		return model.CloneObject(obj), nil
	}
	b.metrics.CacheMiss(b.name, string(kind))

	obj, err := b.load(kind, h)
	if err != nil {
		return nil, err
	}
	b.cache.put(key, obj)
	return model.CloneObject(obj), nil
}

// load reads h from the wrapped reader and applies kind's transform.
func (b *Base) load(kind model.Kind, h model.Handle) (model.Object, error) {
	obj, err := store.Get(b.inner, kind, h)
	if err != nil {
		return nil, err
	}
	if transform := b.transforms[kind]; transform != nil {
		obj, err = transform(obj)
		if err != nil {
			return nil, fmt.Errorf("transforming %s %s: %w", kind, h, err)
		}
	}
	return obj, nil
}

// resummarize replaces the admitted summaries of kinds with summaries of
// the transformed objects, so sort keys carry no redacted text. It must
// run once the proxy is fully built.
func (b *Base) resummarize(kinds ...model.Kind) error {
	for _, kind := range kinds {
		m, ok := b.maps[kind]
		if !ok {
			return fmt.Errorf("unknown kind %q", kind)
		}
		for _, h := range m.order {
			obj, err := b.load(kind, h)
			if err != nil {
				return fmt.Errorf("summarizing %s %s %s: %w", b.name, kind, h, err)
			}
			b.cache.put(cacheKey{kind: kind, handle: h}, obj)
			m.index[h] = store.Summarize(obj)
		}
	}
	return nil
}

func (b *Base) objectByGrampsID(kind model.Kind, id string) (model.Object, error) {
	obj, err := store.GetByGrampsID(b.inner, kind, id)
	if err != nil {
		return nil, err
	}
	h := obj.ObjectHandle()
	if !b.Visible(kind, h) {
		return nil, store.NotFound(kind, id)
	}
	return b.object(kind, h)
}

func (b *Base) Handles(kind model.Kind) ([]model.Handle, error) {
	m, ok := b.maps[kind]
	if !ok {
		return nil, fmt.Errorf("unknown kind %q", kind)
	}
	return m.Handles(), nil
}

func (b *Base) Summaries(kind model.Kind) ([]store.Summary, error) {
	m, ok := b.maps[kind]
	if !ok {
		return nil, fmt.Errorf("unknown kind %q", kind)
	}
	return m.Summaries(), nil
}

func (b *Base) Count(kind model.Kind) (int, error) {
	m, ok := b.maps[kind]
	if !ok {
		return 0, fmt.Errorf("unknown kind %q", kind)
	}
	return m.Len(), nil
}

func (b *Base) People() ([]*model.Person, error) {
	out := make([]*model.Person, 0, b.maps[model.KindPerson].Len())
	for _, h := range b.maps[model.KindPerson].Handles() {
		p, err := b.PersonFromHandle(h)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (b *Base) Families() ([]*model.Family, error) {
	out := make([]*model.Family, 0, b.maps[model.KindFamily].Len())
	for _, h := range b.maps[model.KindFamily].Handles() {
		f, err := b.FamilyFromHandle(h)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// FindBacklinkHandles returns the visible objects that, as this proxy
// presents them, still reference h. A hidden h has no back-links.
func (b *Base) FindBacklinkHandles(h model.Handle, include ...model.Kind) ([]store.Backlink, error) {
	if !b.visibleAnywhere(h) {
		return nil, nil
	}
	links, err := b.inner.FindBacklinkHandles(h, include...)
	if err != nil {
		return nil, err
	}
	var out []store.Backlink
	for _, bl := range links {
		if !b.Visible(bl.Kind, bl.Handle) {
			continue
		}
		obj, err := b.object(bl.Kind, bl.Handle)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if references(obj, h) {
			out = append(out, bl)
		}
	}
	return out, nil
}

func references(obj model.Object, h model.Handle) bool {
	if slices.ContainsFunc(obj.References(), func(r model.Ref) bool { return r.Handle == h }) {
		return true
	}
	if note, ok := obj.(*model.Note); ok {
		links, _ := parser.NoteLinks(note)
		return slices.ContainsFunc(links, func(r model.Ref) bool { return r.Handle == h })
	}
	return false
}

func (b *Base) Bookmarks() ([]model.Handle, error) {
	return slices.Clone(b.bookmarks), nil
}

func (b *Base) DefaultPersonHandle() (model.Handle, error) {
	h, err := b.inner.DefaultPersonHandle()
	if err != nil {
		return "", err
	}
	if !b.Visible(model.KindPerson, h) {
		return "", nil
	}
	return h, nil
}

func (b *Base) Researcher() (*model.Researcher, error) {
	return b.inner.Researcher()
}
