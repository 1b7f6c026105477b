package sanitize

import (
	"slices"

	"kinview/internal/model"
)

// Person redacts p. A private person or a private primary name gets a
// placeholder name. Birth and death are resolved after the event list so
// they only point at surviving references.
func (s *Sanitizer) Person(p *model.Person) *model.Person {
	out := &model.Person{
		Base:           s.base(p.Base),
		Gender:         p.Gender,
		AlternateNames: s.names(p.AlternateNames),
		EventRefs:      s.eventRefs(p.EventRefs),
		Families:       s.handles(model.KindFamily, p.Families),
		ParentFamilies: s.parentFamilies(p),
		Addresses:      s.addresses(p.Addresses),
		Attributes:     s.attributes(p.Attributes),
		URLs:           s.urls(p.URLs),
		Media:          s.mediaRefs(p.Media),
		LdsOrds:        s.ldsOrds(p.LdsOrds),
		Citations:      s.citations(p.Citations),
		Notes:          s.notes(p.Notes),
		Associations:   s.associations(p.Associations),
	}
	if p.Private || p.PrimaryName.Private {
		out.PrimaryName = s.placeholderName()
	} else {
		out.PrimaryName = s.name(p.PrimaryName)
	}
	out.BirthRef = keepRef(p.BirthRef, out.EventRefs)
	out.DeathRef = keepRef(p.DeathRef, out.EventRefs)
	return out
}

// parentFamilies keeps a parent family only when the family is public and
// the child reference naming p is public too.
func (s *Sanitizer) parentFamilies(p *model.Person) []model.Handle {
	var out []model.Handle
	for _, h := range p.ParentFamilies {
		f, err := s.r.FamilyFromHandle(h)
		if err != nil || f.Private {
			continue
		}
		idx := slices.IndexFunc(f.Children, func(c model.ChildRef) bool { return c.Ref == p.Handle })
		if idx >= 0 && f.Children[idx].Private {
			continue
		}
		out = append(out, h)
	}
	return out
}

func (s *Sanitizer) Family(f *model.Family) *model.Family {
	return &model.Family{
		Base:         s.base(f.Base),
		Father:       s.handle(model.KindPerson, f.Father),
		Mother:       s.handle(model.KindPerson, f.Mother),
		Children:     s.childRefs(f.Children),
		Relationship: f.Relationship,
		EventRefs:    s.eventRefs(f.EventRefs),
		LdsOrds:      s.ldsOrds(f.LdsOrds),
		Media:        s.mediaRefs(f.Media),
		Attributes:   s.attributes(f.Attributes),
		Citations:    s.citations(f.Citations),
		Notes:        s.notes(f.Notes),
	}
}

func (s *Sanitizer) Event(e *model.Event) *model.Event {
	return &model.Event{
		Base:        s.base(e.Base),
		Type:        e.Type,
		Description: e.Description,
		Date:        e.Date,
		Place:       s.handle(model.KindPlace, e.Place),
		Citations:   s.citations(e.Citations),
		Notes:       s.notes(e.Notes),
		Media:       s.mediaRefs(e.Media),
		Attributes:  s.attributes(e.Attributes),
	}
}

func (s *Sanitizer) Place(p *model.Place) *model.Place {
	return &model.Place{
		Base:      s.base(p.Base),
		Title:     p.Title,
		Name:      p.Name,
		AltNames:  slices.Clone(p.AltNames),
		Type:      p.Type,
		Code:      p.Code,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		Enclosed:  s.placeRefs(p.Enclosed),
		URLs:      s.urls(p.URLs),
		Media:     s.mediaRefs(p.Media),
		Citations: s.citations(p.Citations),
		Notes:     s.notes(p.Notes),
	}
}

func (s *Sanitizer) Source(src *model.Source) *model.Source {
	return &model.Source{
		Base:         s.base(src.Base),
		Title:        src.Title,
		Author:       src.Author,
		PubInfo:      src.PubInfo,
		Abbreviation: src.Abbreviation,
		RepoRefs:     s.repoRefs(src.RepoRefs),
		Attributes:   s.srcAttributes(src.Attributes),
		Media:        s.mediaRefs(src.Media),
		Notes:        s.notes(src.Notes),
	}
}

func (s *Sanitizer) Citation(c *model.Citation) *model.Citation {
	return &model.Citation{
		Base:       s.base(c.Base),
		Source:     s.handle(model.KindSource, c.Source),
		Page:       c.Page,
		Confidence: c.Confidence,
		Date:       c.Date,
		Attributes: s.srcAttributes(c.Attributes),
		Media:      s.mediaRefs(c.Media),
		Notes:      s.notes(c.Notes),
	}
}

func (s *Sanitizer) Repository(r *model.Repository) *model.Repository {
	return &model.Repository{
		Base:      s.base(r.Base),
		Type:      r.Type,
		Name:      r.Name,
		Addresses: s.addresses(r.Addresses),
		URLs:      s.urls(r.URLs),
		Notes:     s.notes(r.Notes),
	}
}

func (s *Sanitizer) Media(m *model.Media) *model.Media {
	return &model.Media{
		Base:        s.base(m.Base),
		Path:        m.Path,
		MIME:        m.MIME,
		Description: m.Description,
		Checksum:    m.Checksum,
		Date:        m.Date,
		Attributes:  s.attributes(m.Attributes),
		Citations:   s.citations(m.Citations),
		Notes:       s.notes(m.Notes),
	}
}

// Note is copied whole; notes carry no private sub-structure.
func (s *Sanitizer) Note(n *model.Note) *model.Note {
	out := n.Clone()
	out.Base = s.base(n.Base)
	return out
}

func (s *Sanitizer) Tag(t *model.Tag) *model.Tag {
	return t.Clone()
}
