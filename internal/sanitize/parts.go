package sanitize

import (
	"slices"

	"kinview/internal/model"
)

func (s *Sanitizer) name(n model.Name) model.Name {
	out := n.Clone()
	out.Private = false
	out.Citations = s.citations(n.Citations)
	out.Notes = s.notes(n.Notes)
	return out
}

// placeholderName stands in for a private primary name.
func (s *Sanitizer) placeholderName() model.Name {
	return model.Name{
		Surnames: []model.Surname{{Surname: s.privateText, Primary: true}},
	}
}

func (s *Sanitizer) names(in []model.Name) []model.Name {
	var out []model.Name
	for _, n := range in {
		if !n.Private {
			out = append(out, s.name(n))
		}
	}
	return out
}

func (s *Sanitizer) attributes(in []model.Attribute) []model.Attribute {
	var out []model.Attribute
	for _, a := range in {
		if a.Private {
			continue
		}
		out = append(out, model.Attribute{
			Type:      a.Type,
			Value:     a.Value,
			Citations: s.citations(a.Citations),
			Notes:     s.notes(a.Notes),
		})
	}
	return out
}

func (s *Sanitizer) srcAttributes(in []model.SrcAttribute) []model.SrcAttribute {
	var out []model.SrcAttribute
	for _, a := range in {
		if !a.Private {
			out = append(out, a)
		}
	}
	return out
}

func (s *Sanitizer) mediaRefs(in []model.MediaRef) []model.MediaRef {
	var out []model.MediaRef
	for _, m := range in {
		if m.Private || !s.visible(model.KindMedia, m.Ref) {
			continue
		}
		out = append(out, model.MediaRef{
			Ref:        m.Ref,
			Rect:       m.Rect,
			Attributes: s.attributes(m.Attributes),
			Citations:  s.citations(m.Citations),
			Notes:      s.notes(m.Notes),
		})
	}
	return out
}

func (s *Sanitizer) eventRefs(in []model.EventRef) []model.EventRef {
	var out []model.EventRef
	for _, e := range in {
		if e.Private || !s.visible(model.KindEvent, e.Ref) {
			continue
		}
		out = append(out, model.EventRef{
			Ref:        e.Ref,
			Role:       e.Role,
			Attributes: s.attributes(e.Attributes),
			Citations:  s.citations(e.Citations),
			Notes:      s.notes(e.Notes),
		})
	}
	return out
}

func (s *Sanitizer) childRefs(in []model.ChildRef) []model.ChildRef {
	var out []model.ChildRef
	for _, c := range in {
		if c.Private || !s.visible(model.KindPerson, c.Ref) {
			continue
		}
		out = append(out, model.ChildRef{
			Ref:            c.Ref,
			FatherRelation: c.FatherRelation,
			MotherRelation: c.MotherRelation,
			Citations:      s.citations(c.Citations),
			Notes:          s.notes(c.Notes),
		})
	}
	return out
}

func (s *Sanitizer) associations(in []model.PersonRef) []model.PersonRef {
	var out []model.PersonRef
	for _, a := range in {
		if a.Private || !s.visible(model.KindPerson, a.Ref) {
			continue
		}
		out = append(out, model.PersonRef{
			Ref:       a.Ref,
			Relation:  a.Relation,
			Citations: s.citations(a.Citations),
			Notes:     s.notes(a.Notes),
		})
	}
	return out
}

func (s *Sanitizer) repoRefs(in []model.RepoRef) []model.RepoRef {
	var out []model.RepoRef
	for _, r := range in {
		if r.Private || !s.visible(model.KindRepository, r.Ref) {
			continue
		}
		out = append(out, model.RepoRef{
			Ref:        r.Ref,
			CallNumber: r.CallNumber,
			MediaType:  r.MediaType,
			Notes:      s.notes(r.Notes),
		})
	}
	return out
}

func (s *Sanitizer) placeRefs(in []model.PlaceRef) []model.PlaceRef {
	var out []model.PlaceRef
	for _, p := range in {
		if s.visible(model.KindPlace, p.Ref) {
			out = append(out, p)
		}
	}
	return out
}

func (s *Sanitizer) addresses(in []model.Address) []model.Address {
	var out []model.Address
	for _, a := range in {
		if a.Private {
			continue
		}
		a = a.Clone()
		a.Citations = s.citations(a.Citations)
		a.Notes = s.notes(a.Notes)
		out = append(out, a)
	}
	return out
}

func (s *Sanitizer) urls(in []model.URL) []model.URL {
	var out []model.URL
	for _, u := range in {
		if !u.Private {
			out = append(out, u)
		}
	}
	return out
}

func (s *Sanitizer) ldsOrds(in []model.LdsOrd) []model.LdsOrd {
	var out []model.LdsOrd
	for _, o := range in {
		if o.Private {
			continue
		}
		out = append(out, model.LdsOrd{
			Type:      o.Type,
			Status:    o.Status,
			Temple:    o.Temple,
			Date:      o.Date,
			Family:    s.handle(model.KindFamily, o.Family),
			Place:     s.handle(model.KindPlace, o.Place),
			Citations: s.citations(o.Citations),
			Notes:     s.notes(o.Notes),
		})
	}
	return out
}

// keepRef returns h if it still appears among refs.
func keepRef(h model.Handle, refs []model.EventRef) model.Handle {
	if h == "" {
		return ""
	}
	if slices.ContainsFunc(refs, func(r model.EventRef) bool { return r.Ref == h }) {
		return h
	}
	return ""
}
