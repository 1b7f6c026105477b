// Package walker computes reference closures over a store.
//
// A walk drains a queue of (kind, handle, forward) entries. Each object is
// processed at most once: its structured references, the object links in
// its note text and the objects pointing back at it are all queued as
// forward entries. Forward entries land in the referenced set, which is
// the walk's result. A restriction set, when present for a kind, stops
// the walk from entering handles outside it.
package walker

import (
	"errors"
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"

	"kinview/internal/model"
	"kinview/internal/parser"
	"kinview/internal/store"
)

type entry struct {
	kind    model.Kind
	handle  model.Handle
	forward bool
}

type Walker struct {
	r      store.Reader
	logger *logrus.Logger

	queue      []entry
	processed  map[model.Kind]map[model.Handle]bool
	missing    map[model.Kind]map[model.Handle]bool
	referenced *Result
	restrict   map[model.Kind]map[model.Handle]bool
}

type Option func(*Walker)

func WithLogger(l *logrus.Logger) Option {
	return func(w *Walker) {
		w.logger = l
	}
}

func New(r store.Reader, opts ...Option) *Walker {
	w := &Walker{
		r:        r,
		logger:   logrus.New(),
		restrict: make(map[model.Kind]map[model.Handle]bool),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.Reset()
	return w
}

// Reset clears the queue and every processed and referenced set. The
// restriction sets survive.
func (w *Walker) Reset() {
	w.queue = nil
	w.processed = make(map[model.Kind]map[model.Handle]bool, len(model.Kinds))
	w.missing = make(map[model.Kind]map[model.Handle]bool, len(model.Kinds))
	for _, kind := range model.Kinds {
		w.processed[kind] = make(map[model.Handle]bool)
		w.missing[kind] = make(map[model.Handle]bool)
	}
	w.referenced = newResult()
}

// Restrict limits the walk to handles for kind.
func (w *Walker) Restrict(kind model.Kind, handles []model.Handle) {
	set := make(map[model.Handle]bool, len(handles))
	for _, h := range handles {
		set[h] = true
	}
	w.restrict[kind] = set
}

// Enqueue adds one entry without running the walk.
func (w *Walker) Enqueue(kind model.Kind, h model.Handle, forward bool) {
	w.queue = append(w.queue, entry{kind: kind, handle: h, forward: forward})
}

// Walk seeds the queue with forward entries and drains it.
func (w *Walker) Walk(seeds ...model.Ref) error {
	for _, s := range seeds {
		w.Enqueue(s.Kind, s.Handle, true)
	}
	return w.Run()
}

// Run drains the queue. Dangling references and malformed note links are
// skipped; any other read failure stops the walk.
func (w *Walker) Run() error {
	for len(w.queue) > 0 {
		e := w.queue[0]
		w.queue = w.queue[1:]

		if set, ok := w.restrict[e.kind]; ok && !set[e.handle] {
			continue
		}
		if !w.processed[e.kind][e.handle] {
			w.processed[e.kind][e.handle] = true
			found, err := w.process(e.kind, e.handle)
			if err != nil {
				return err
			}
			if !found {
				w.missing[e.kind][e.handle] = true
			}
		}
		if e.forward && !w.missing[e.kind][e.handle] {
			w.referenced.add(e.kind, e.handle)
		}
	}
	return nil
}

func (w *Walker) process(kind model.Kind, h model.Handle) (bool, error) {
	obj, err := store.Get(w.r, kind, h)
	if errors.Is(err, store.ErrNotFound) {
		w.logger.WithFields(logrus.Fields{"kind": kind, "handle": h}).Debug("skipping dangling reference")
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading %s %s: %w", kind, h, err)
	}

	for _, ref := range obj.References() {
		w.Enqueue(ref.Kind, ref.Handle, true)
	}
	if note, ok := obj.(*model.Note); ok {
		refs, errs := parser.NoteLinks(note)
		for _, ref := range refs {
			w.Enqueue(ref.Kind, ref.Handle, true)
		}
		for _, err := range errs {
			w.logger.WithField("note", h).WithError(err).Debug("skipping note link")
		}
	}

	// Tags label unrelated records; walking back from a tag would join them.
	if kind == model.KindTag {
		return true, nil
	}
	backlinks, err := w.r.FindBacklinkHandles(h)
	if err != nil {
		return false, fmt.Errorf("finding backlinks of %s %s: %w", kind, h, err)
	}
	for _, bl := range backlinks {
		w.Enqueue(bl.Kind, bl.Handle, true)
	}
	return true, nil
}

// Referenced lists the referenced handles of kind in discovery order.
func (w *Walker) Referenced(kind model.Kind) []model.Handle {
	return slices.Clone(w.referenced.order[kind])
}

// Result returns a copy of the referenced sets.
func (w *Walker) Result() *Result {
	return w.referenced.clone()
}

// AllPeople walks out from every person.
func AllPeople(r store.Reader, opts ...Option) (*Result, error) {
	people, err := r.Handles(model.KindPerson)
	if err != nil {
		return nil, fmt.Errorf("listing people: %w", err)
	}
	w := New(r, opts...)
	for _, h := range people {
		w.Enqueue(model.KindPerson, h, true)
	}
	if err := w.Run(); err != nil {
		return nil, err
	}
	return w.Result(), nil
}

// ConnectedPeople walks out from every person that is connected to
// anything. A first pass seeds every person without marking it, so a
// person only counts when some other record leads back to them. Those
// people become the restriction set for a second, marking pass.
func ConnectedPeople(r store.Reader, opts ...Option) (*Result, error) {
	people, err := r.Handles(model.KindPerson)
	if err != nil {
		return nil, fmt.Errorf("listing people: %w", err)
	}
	w := New(r, opts...)
	for _, h := range people {
		w.Enqueue(model.KindPerson, h, false)
	}
	if err := w.Run(); err != nil {
		return nil, fmt.Errorf("discovering connected people: %w", err)
	}

	connected := w.Referenced(model.KindPerson)
	w.Reset()
	w.Restrict(model.KindPerson, connected)
	for _, h := range connected {
		w.Enqueue(model.KindPerson, h, true)
	}
	if err := w.Run(); err != nil {
		return nil, err
	}
	return w.Result(), nil
}
