package proxy

import (
	"errors"
	"fmt"
	"slices"

	"kinview/internal/model"
	"kinview/internal/store"
)

// Filter selects a subset of handles from a reader.
type Filter interface {
	Apply(r store.Reader, handles []model.Handle) ([]model.Handle, error)
}

// FilterFunc adapts a per-handle predicate to a Filter.
type FilterFunc func(r store.Reader, h model.Handle) (bool, error)

func (f FilterFunc) Apply(r store.Reader, handles []model.Handle) ([]model.Handle, error) {
	var out []model.Handle
	for _, h := range handles {
		ok, err := f(r, h)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, h)
		}
	}
	return out, nil
}

// HandleFilter keeps the listed handles.
type HandleFilter []model.Handle

func (f HandleFilter) Apply(_ store.Reader, handles []model.Handle) ([]model.Handle, error) {
	var out []model.Handle
	for _, h := range handles {
		if slices.Contains(f, h) {
			out = append(out, h)
		}
	}
	return out, nil
}

// GrampsIDFilter keeps the objects of kind whose gramps ids are listed.
// Unknown ids are ignored.
func GrampsIDFilter(kind model.Kind, ids ...string) Filter {
	return grampsIDFilter{kind: kind, ids: ids}
}

type grampsIDFilter struct {
	kind model.Kind
	ids  []string
}

func (f grampsIDFilter) Apply(r store.Reader, handles []model.Handle) ([]model.Handle, error) {
	var wanted HandleFilter
	for _, id := range f.ids {
		obj, err := store.GetByGrampsID(r, f.kind, id)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("resolving %s %s: %w", f.kind, id, err)
		}
		wanted = append(wanted, obj.ObjectHandle())
	}
	return wanted.Apply(r, handles)
}

// FilterOptions names the filter applied to each filterable kind. A nil
// filter leaves that kind unrestricted.
type FilterOptions struct {
	Person Filter
	Event  Filter
	Note   Filter
}

// Filtered shows the people, events and notes selected by its filters,
// the families those people belong to, and trims every reference to
// anything that was filtered out.
type Filtered struct {
	*Base
	opts FilterOptions
}

func NewFilter(inner store.Reader, fo FilterOptions, opts ...Option) (*Filtered, error) {
	o := buildOptions("filter", opts)
	f := &Filtered{opts: fo}

	hooks := Hooks{
		Maps: map[model.Kind]MapFunc{
			model.KindPerson: filterMap(model.KindPerson, fo.Person),
			model.KindEvent:  filterMap(model.KindEvent, fo.Event),
			model.KindNote:   filterMap(model.KindNote, fo.Note),
		},
		Transforms: map[model.Kind]TransformFunc{
			model.KindPerson:     f.person,
			model.KindFamily:     f.family,
			model.KindEvent:      f.event,
			model.KindPlace:      f.place,
			model.KindSource:     f.source,
			model.KindCitation:   f.citation,
			model.KindRepository: f.repository,
			model.KindMedia:      f.media,
		},
	}
	if fo.Person != nil {
		hooks.Maps[model.KindFamily] = familiesOfVisiblePeople
	}

	base, err := newBase(inner, hooks, o)
	if err != nil {
		return nil, err
	}
	f.Base = base
	return f, nil
}

func filterMap(kind model.Kind, filter Filter) MapFunc {
	if filter == nil {
		return nil
	}
	return func(b *Base) (*VisibilityMap, error) {
		handles, err := b.inner.Handles(kind)
		if err != nil {
			return nil, fmt.Errorf("listing %s handles: %w", kind, err)
		}
		kept, err := filter.Apply(b.inner, handles)
		if err != nil {
			return nil, fmt.Errorf("applying %s filter: %w", kind, err)
		}
		return HandleMap(b.inner, kind, kept)
	}
}

func familiesOfVisiblePeople(b *Base) (*VisibilityMap, error) {
	var families []model.Handle
	for _, h := range b.maps[model.KindPerson].Handles() {
		p, err := b.inner.PersonFromHandle(h)
		if err != nil {
			return nil, fmt.Errorf("reading person %s: %w", h, err)
		}
		families = append(families, p.Families...)
		families = append(families, p.ParentFamilies...)
	}
	return HandleMap(b.inner, model.KindFamily, families)
}

func (f *Filtered) notes(hs []model.Handle) []model.Handle {
	return f.keep(model.KindNote, hs)
}

func (f *Filtered) name(n *model.Name) {
	n.Notes = f.notes(n.Notes)
}

func (f *Filtered) attributes(as []model.Attribute) {
	for i := range as {
		as[i].Notes = f.notes(as[i].Notes)
	}
}

func (f *Filtered) mediaRefs(ms []model.MediaRef) {
	for i := range ms {
		ms[i].Notes = f.notes(ms[i].Notes)
	}
}

func (f *Filtered) addresses(as []model.Address) {
	for i := range as {
		as[i].Notes = f.notes(as[i].Notes)
	}
}

func (f *Filtered) ldsOrds(ls []model.LdsOrd) {
	for i := range ls {
		ls[i].Notes = f.notes(ls[i].Notes)
		if ls[i].Family != "" && !f.Visible(model.KindFamily, ls[i].Family) {
			ls[i].Family = ""
		}
	}
}

func (f *Filtered) eventRefs(refs []model.EventRef) []model.EventRef {
	var out []model.EventRef
	for _, ref := range refs {
		if !f.Visible(model.KindEvent, ref.Ref) {
			continue
		}
		ref.Notes = f.notes(ref.Notes)
		f.attributes(ref.Attributes)
		out = append(out, ref)
	}
	return out
}

func (f *Filtered) person(obj model.Object) (model.Object, error) {
	p := obj.(*model.Person)
	f.name(&p.PrimaryName)
	for i := range p.AlternateNames {
		f.name(&p.AlternateNames[i])
	}

	p.EventRefs = f.eventRefs(p.EventRefs)
	if _, ok := p.BirthEventRef(); !ok {
		p.BirthRef = ""
	}
	if _, ok := p.DeathEventRef(); !ok {
		p.DeathRef = ""
	}
	p.Families = f.keep(model.KindFamily, p.Families)
	p.ParentFamilies = f.keep(model.KindFamily, p.ParentFamilies)

	var assoc []model.PersonRef
	for _, ref := range p.Associations {
		if f.Visible(model.KindPerson, ref.Ref) {
			ref.Notes = f.notes(ref.Notes)
			assoc = append(assoc, ref)
		}
	}
	p.Associations = assoc

	f.addresses(p.Addresses)
	f.attributes(p.Attributes)
	f.mediaRefs(p.Media)
	f.ldsOrds(p.LdsOrds)
	p.Notes = f.notes(p.Notes)
	return p, nil
}

func (f *Filtered) family(obj model.Object) (model.Object, error) {
	fam := obj.(*model.Family)
	if !f.Visible(model.KindPerson, fam.Father) {
		fam.Father = ""
	}
	if !f.Visible(model.KindPerson, fam.Mother) {
		fam.Mother = ""
	}
	var children []model.ChildRef
	for _, c := range fam.Children {
		if f.Visible(model.KindPerson, c.Ref) {
			c.Notes = f.notes(c.Notes)
			children = append(children, c)
		}
	}
	fam.Children = children
	fam.EventRefs = f.eventRefs(fam.EventRefs)
	f.attributes(fam.Attributes)
	f.mediaRefs(fam.Media)
	f.ldsOrds(fam.LdsOrds)
	fam.Notes = f.notes(fam.Notes)
	return fam, nil
}

func (f *Filtered) event(obj model.Object) (model.Object, error) {
	e := obj.(*model.Event)
	f.attributes(e.Attributes)
	f.mediaRefs(e.Media)
	e.Notes = f.notes(e.Notes)
	return e, nil
}

func (f *Filtered) place(obj model.Object) (model.Object, error) {
	p := obj.(*model.Place)
	f.mediaRefs(p.Media)
	p.Notes = f.notes(p.Notes)
	return p, nil
}

func (f *Filtered) source(obj model.Object) (model.Object, error) {
	s := obj.(*model.Source)
	f.mediaRefs(s.Media)
	for i := range s.RepoRefs {
		s.RepoRefs[i].Notes = f.notes(s.RepoRefs[i].Notes)
	}
	s.Notes = f.notes(s.Notes)
	return s, nil
}

func (f *Filtered) citation(obj model.Object) (model.Object, error) {
	c := obj.(*model.Citation)
	f.mediaRefs(c.Media)
	c.Notes = f.notes(c.Notes)
	return c, nil
}

func (f *Filtered) repository(obj model.Object) (model.Object, error) {
	r := obj.(*model.Repository)
	f.addresses(r.Addresses)
	r.Notes = f.notes(r.Notes)
	return r, nil
}

func (f *Filtered) media(obj model.Object) (model.Object, error) {
	m := obj.(*model.Media)
	f.attributes(m.Attributes)
	m.Notes = f.notes(m.Notes)
	return m, nil
}
