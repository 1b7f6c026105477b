package model

import "slices"

func cloneEach[T any](in []T, fn func(T) T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = fn(v)
	}
	return out
}

func (b Base) clone() Base {
	b.Tags = slices.Clone(b.Tags)
	return b
}

func (n Name) Clone() Name {
	n.Surnames = slices.Clone(n.Surnames)
	n.Citations = slices.Clone(n.Citations)
	n.Notes = slices.Clone(n.Notes)
	return n
}

func (a Attribute) Clone() Attribute {
	a.Citations = slices.Clone(a.Citations)
	a.Notes = slices.Clone(a.Notes)
	return a
}

func (m MediaRef) Clone() MediaRef {
	m.Attributes = cloneEach(m.Attributes, Attribute.Clone)
	m.Citations = slices.Clone(m.Citations)
	m.Notes = slices.Clone(m.Notes)
	return m
}

func (e EventRef) Clone() EventRef {
	e.Attributes = cloneEach(e.Attributes, Attribute.Clone)
	e.Citations = slices.Clone(e.Citations)
	e.Notes = slices.Clone(e.Notes)
	return e
}

func (c ChildRef) Clone() ChildRef {
	c.Citations = slices.Clone(c.Citations)
	c.Notes = slices.Clone(c.Notes)
	return c
}

func (p PersonRef) Clone() PersonRef {
	p.Citations = slices.Clone(p.Citations)
	p.Notes = slices.Clone(p.Notes)
	return p
}

func (r RepoRef) Clone() RepoRef {
	r.Notes = slices.Clone(r.Notes)
	return r
}

func (a Address) Clone() Address {
	a.Citations = slices.Clone(a.Citations)
	a.Notes = slices.Clone(a.Notes)
	return a
}

func (l LdsOrd) Clone() LdsOrd {
	l.Citations = slices.Clone(l.Citations)
	l.Notes = slices.Clone(l.Notes)
	return l
}

func (t StyledTextTag) Clone() StyledTextTag {
	t.Ranges = slices.Clone(t.Ranges)
	return t
}

func (p *Person) Clone() *Person {
	out := *p
	out.Base = p.Base.clone()
	out.PrimaryName = p.PrimaryName.Clone()
	out.AlternateNames = cloneEach(p.AlternateNames, Name.Clone)
	out.EventRefs = cloneEach(p.EventRefs, EventRef.Clone)
	out.Families = slices.Clone(p.Families)
	out.ParentFamilies = slices.Clone(p.ParentFamilies)
	out.Addresses = cloneEach(p.Addresses, Address.Clone)
	out.Attributes = cloneEach(p.Attributes, Attribute.Clone)
	out.URLs = slices.Clone(p.URLs)
	out.Media = cloneEach(p.Media, MediaRef.Clone)
	out.LdsOrds = cloneEach(p.LdsOrds, LdsOrd.Clone)
	out.Citations = slices.Clone(p.Citations)
	out.Notes = slices.Clone(p.Notes)
	out.Associations = cloneEach(p.Associations, PersonRef.Clone)
	return &out
}

func (f *Family) Clone() *Family {
	out := *f
	out.Base = f.Base.clone()
	out.Children = cloneEach(f.Children, ChildRef.Clone)
	out.EventRefs = cloneEach(f.EventRefs, EventRef.Clone)
	out.LdsOrds = cloneEach(f.LdsOrds, LdsOrd.Clone)
	out.Media = cloneEach(f.Media, MediaRef.Clone)
	out.Attributes = cloneEach(f.Attributes, Attribute.Clone)
	out.Citations = slices.Clone(f.Citations)
	out.Notes = slices.Clone(f.Notes)
	return &out
}

func (e *Event) Clone() *Event {
	out := *e
	out.Base = e.Base.clone()
	out.Citations = slices.Clone(e.Citations)
	out.Notes = slices.Clone(e.Notes)
	out.Media = cloneEach(e.Media, MediaRef.Clone)
	out.Attributes = cloneEach(e.Attributes, Attribute.Clone)
	return &out
}

func (p *Place) Clone() *Place {
	out := *p
	out.Base = p.Base.clone()
	out.AltNames = slices.Clone(p.AltNames)
	out.Enclosed = slices.Clone(p.Enclosed)
	out.URLs = slices.Clone(p.URLs)
	out.Media = cloneEach(p.Media, MediaRef.Clone)
	out.Citations = slices.Clone(p.Citations)
	out.Notes = slices.Clone(p.Notes)
	return &out
}

func (s *Source) Clone() *Source {
	out := *s
	out.Base = s.Base.clone()
	out.RepoRefs = cloneEach(s.RepoRefs, RepoRef.Clone)
	out.Attributes = slices.Clone(s.Attributes)
	out.Media = cloneEach(s.Media, MediaRef.Clone)
	out.Notes = slices.Clone(s.Notes)
	return &out
}

func (c *Citation) Clone() *Citation {
	out := *c
	out.Base = c.Base.clone()
	out.Attributes = slices.Clone(c.Attributes)
	out.Media = cloneEach(c.Media, MediaRef.Clone)
	out.Notes = slices.Clone(c.Notes)
	return &out
}

func (r *Repository) Clone() *Repository {
	out := *r
	out.Base = r.Base.clone()
	out.Addresses = cloneEach(r.Addresses, Address.Clone)
	out.URLs = slices.Clone(r.URLs)
	out.Notes = slices.Clone(r.Notes)
	return &out
}

func (m *Media) Clone() *Media {
	out := *m
	out.Base = m.Base.clone()
	out.Attributes = cloneEach(m.Attributes, Attribute.Clone)
	out.Citations = slices.Clone(m.Citations)
	out.Notes = slices.Clone(m.Notes)
	return &out
}

func (n *Note) Clone() *Note {
	out := *n
	out.Base = n.Base.clone()
	out.Text.Tags = cloneEach(n.Text.Tags, StyledTextTag.Clone)
	return &out
}

func (t *Tag) Clone() *Tag {
	out := *t
	return &out
}

// CloneObject deep-copies any primary object.
func CloneObject(obj Object) Object {
	switch o := obj.(type) {
	case *Person:
		return o.Clone()
	case *Family:
		return o.Clone()
	case *Event:
		return o.Clone()
	case *Place:
		return o.Clone()
	case *Source:
		return o.Clone()
	case *Citation:
		return o.Clone()
	case *Repository:
		return o.Clone()
	case *Media:
		return o.Clone()
	case *Note:
		return o.Clone()
	case *Tag:
		return o.Clone()
	}
	return obj
}
