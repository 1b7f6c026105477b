package model

type refs []Ref

func (r *refs) add(kind Kind, handles ...Handle) {
	for _, h := range handles {
		if h != "" {
			*r = append(*r, Ref{Kind: kind, Handle: h})
		}
	}
}

func (r *refs) sourced(citations, notes []Handle) {
	r.add(KindCitation, citations...)
	r.add(KindNote, notes...)
}

func (r *refs) base(b Base) {
	r.add(KindTag, b.Tags...)
}

func (r *refs) name(n Name) {
	r.sourced(n.Citations, n.Notes)
}

func (r *refs) attributes(attrs []Attribute) {
	for _, a := range attrs {
		r.sourced(a.Citations, a.Notes)
	}
}

func (r *refs) media(media []MediaRef) {
	for _, m := range media {
		r.add(KindMedia, m.Ref)
		r.attributes(m.Attributes)
		r.sourced(m.Citations, m.Notes)
	}
}

func (r *refs) eventRefs(events []EventRef) {
	for _, e := range events {
		r.add(KindEvent, e.Ref)
		r.attributes(e.Attributes)
		r.sourced(e.Citations, e.Notes)
	}
}

func (r *refs) addresses(addrs []Address) {
	for _, a := range addrs {
		r.sourced(a.Citations, a.Notes)
	}
}

func (r *refs) ldsOrds(ords []LdsOrd) {
	for _, o := range ords {
		r.add(KindFamily, o.Family)
		r.add(KindPlace, o.Place)
		r.sourced(o.Citations, o.Notes)
	}
}

func (p *Person) References() []Ref {
	var r refs
	r.base(p.Base)
	r.name(p.PrimaryName)
	for _, n := range p.AlternateNames {
		r.name(n)
	}
	r.eventRefs(p.EventRefs)
	r.add(KindFamily, p.Families...)
	r.add(KindFamily, p.ParentFamilies...)
	r.addresses(p.Addresses)
	r.attributes(p.Attributes)
	r.media(p.Media)
	r.ldsOrds(p.LdsOrds)
	r.sourced(p.Citations, p.Notes)
	for _, a := range p.Associations {
		r.add(KindPerson, a.Ref)
		r.sourced(a.Citations, a.Notes)
	}
	return r
}

func (f *Family) References() []Ref {
	var r refs
	r.base(f.Base)
	r.add(KindPerson, f.Father, f.Mother)
	for _, c := range f.Children {
		r.add(KindPerson, c.Ref)
		r.sourced(c.Citations, c.Notes)
	}
	r.eventRefs(f.EventRefs)
	r.ldsOrds(f.LdsOrds)
	r.media(f.Media)
	r.attributes(f.Attributes)
	r.sourced(f.Citations, f.Notes)
	return r
}

func (e *Event) References() []Ref {
	var r refs
	r.base(e.Base)
	r.add(KindPlace, e.Place)
	r.sourced(e.Citations, e.Notes)
	r.media(e.Media)
	r.attributes(e.Attributes)
	return r
}

func (p *Place) References() []Ref {
	var r refs
	r.base(p.Base)
	for _, enc := range p.Enclosed {
		r.add(KindPlace, enc.Ref)
	}
	r.media(p.Media)
	r.sourced(p.Citations, p.Notes)
	return r
}

func (s *Source) References() []Ref {
	var r refs
	r.base(s.Base)
	for _, rr := range s.RepoRefs {
		r.add(KindRepository, rr.Ref)
		r.add(KindNote, rr.Notes...)
	}
	r.media(s.Media)
	r.add(KindNote, s.Notes...)
	return r
}

func (c *Citation) References() []Ref {
	var r refs
	r.base(c.Base)
	r.add(KindSource, c.Source)
	r.media(c.Media)
	r.add(KindNote, c.Notes...)
	return r
}

func (rp *Repository) References() []Ref {
	var r refs
	r.base(rp.Base)
	r.addresses(rp.Addresses)
	r.add(KindNote, rp.Notes...)
	return r
}

func (m *Media) References() []Ref {
	var r refs
	r.base(m.Base)
	r.attributes(m.Attributes)
	r.sourced(m.Citations, m.Notes)
	return r
}

// References on a Note covers only its tags; inline links inside the text
// are parsed separately.
func (n *Note) References() []Ref {
	var r refs
	r.base(n.Base)
	return r
}
