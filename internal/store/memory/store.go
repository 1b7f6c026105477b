// Package memory provides a store.Reader backed by an in-memory snapshot.
// Every lookup returns a deep clone, so callers own what they receive.
package memory

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"kinview/internal/model"
	"kinview/internal/store"
)

type Store struct {
	order      map[model.Kind][]model.Handle
	objects    map[model.Kind]map[model.Handle]model.Object
	byGrampsID map[model.Kind]map[string]model.Handle
	tagsByName map[string]model.Handle
	backlinks  map[model.Handle][]model.Ref

	bookmarks     []model.Handle
	defaultPerson model.Handle
	researcher    *model.Researcher
}

var _ store.Reader = (*Store)(nil)

// NewHandle returns a fresh handle for objects created outside a database.
func NewHandle() model.Handle {
	return model.Handle(strings.ReplaceAll(uuid.NewString(), "-", ""))
}

// New indexes snap. The snapshot's objects are cloned, so later changes to
// snap do not leak into the store.
func New(snap *store.Snapshot) (*Store, error) {
	s := &Store{
		order:      make(map[model.Kind][]model.Handle, len(model.Kinds)),
		objects:    make(map[model.Kind]map[model.Handle]model.Object, len(model.Kinds)),
		byGrampsID: make(map[model.Kind]map[string]model.Handle, len(model.Kinds)),
		tagsByName: make(map[string]model.Handle),
		backlinks:  make(map[model.Handle][]model.Ref),
	}
	if snap == nil {
		snap = &store.Snapshot{}
	}
	for _, kind := range model.Kinds {
		s.objects[kind] = make(map[model.Handle]model.Object)
		s.byGrampsID[kind] = make(map[string]model.Handle)
		for _, obj := range snap.Objects(kind) {
			if err := s.insert(kind, obj); err != nil {
				return nil, err
			}
		}
	}
	for _, kind := range model.Kinds {
		for _, h := range s.order[kind] {
			s.indexBacklinks(model.Ref{Kind: kind, Handle: h}, s.objects[kind][h].References())
		}
	}
	s.bookmarks = slices.Clone(snap.Bookmarks)
	s.defaultPerson = snap.DefaultPerson
	if snap.Researcher != nil {
		r := *snap.Researcher
		s.researcher = &r
	}
	return s, nil
}

func (s *Store) insert(kind model.Kind, obj model.Object) error {
	if obj == nil {
		return fmt.Errorf("nil %s in snapshot", kind)
	}
	h := obj.ObjectHandle()
	if h == "" {
		return fmt.Errorf("%s without handle in snapshot", kind)
	}
	if _, dup := s.objects[kind][h]; dup {
		return fmt.Errorf("duplicate %s handle %q", kind, h)
	}
	obj = model.CloneObject(obj)
	s.objects[kind][h] = obj
	s.order[kind] = append(s.order[kind], h)
	if kind == model.KindTag {
		s.tagsByName[obj.(*model.Tag).Name] = h
		return nil
	}
	if id := store.GrampsID(obj); id != "" {
		if _, taken := s.byGrampsID[kind][id]; !taken {
			s.byGrampsID[kind][id] = h
		}
	}
	return nil
}

func (s *Store) indexBacklinks(from model.Ref, refs []model.Ref) {
	seen := make(map[model.Handle]bool, len(refs))
	for _, ref := range refs {
		if seen[ref.Handle] {
			continue
		}
		seen[ref.Handle] = true
		s.backlinks[ref.Handle] = append(s.backlinks[ref.Handle], from)
	}
}

type cloner[T any] interface {
	model.Object
	Clone() T
}

func fetch[T cloner[T]](s *Store, kind model.Kind, h model.Handle) (T, error) {
	var zero T
	obj, ok := s.objects[kind][h]
	if !ok {
		return zero, store.NotFound(kind, string(h))
	}
	return obj.(T).Clone(), nil
}

func fetchByID[T cloner[T]](s *Store, kind model.Kind, id string) (T, error) {
	var zero T
	h, ok := s.byGrampsID[kind][id]
	if !ok {
		return zero, store.NotFound(kind, id)
	}
	return fetch[T](s, kind, h)
}
