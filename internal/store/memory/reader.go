package memory

import (
	"fmt"
	"slices"

	"kinview/internal/model"
	"kinview/internal/store"
)

func (s *Store) PersonFromHandle(h model.Handle) (*model.Person, error) {
	return fetch[*model.Person](s, model.KindPerson, h)
}

func (s *Store) FamilyFromHandle(h model.Handle) (*model.Family, error) {
	return fetch[*model.Family](s, model.KindFamily, h)
}

func (s *Store) EventFromHandle(h model.Handle) (*model.Event, error) {
	return fetch[*model.Event](s, model.KindEvent, h)
}

func (s *Store) PlaceFromHandle(h model.Handle) (*model.Place, error) {
	return fetch[*model.Place](s, model.KindPlace, h)
}

func (s *Store) SourceFromHandle(h model.Handle) (*model.Source, error) {
	return fetch[*model.Source](s, model.KindSource, h)
}

func (s *Store) CitationFromHandle(h model.Handle) (*model.Citation, error) {
	return fetch[*model.Citation](s, model.KindCitation, h)
}

func (s *Store) RepositoryFromHandle(h model.Handle) (*model.Repository, error) {
	return fetch[*model.Repository](s, model.KindRepository, h)
}

func (s *Store) MediaFromHandle(h model.Handle) (*model.Media, error) {
	return fetch[*model.Media](s, model.KindMedia, h)
}

func (s *Store) NoteFromHandle(h model.Handle) (*model.Note, error) {
	return fetch[*model.Note](s, model.KindNote, h)
}

func (s *Store) TagFromHandle(h model.Handle) (*model.Tag, error) {
	return fetch[*model.Tag](s, model.KindTag, h)
}

func (s *Store) PersonFromGrampsID(id string) (*model.Person, error) {
	return fetchByID[*model.Person](s, model.KindPerson, id)
}

func (s *Store) FamilyFromGrampsID(id string) (*model.Family, error) {
	return fetchByID[*model.Family](s, model.KindFamily, id)
}

func (s *Store) EventFromGrampsID(id string) (*model.Event, error) {
	return fetchByID[*model.Event](s, model.KindEvent, id)
}

func (s *Store) PlaceFromGrampsID(id string) (*model.Place, error) {
	return fetchByID[*model.Place](s, model.KindPlace, id)
}

func (s *Store) SourceFromGrampsID(id string) (*model.Source, error) {
	return fetchByID[*model.Source](s, model.KindSource, id)
}

func (s *Store) CitationFromGrampsID(id string) (*model.Citation, error) {
	return fetchByID[*model.Citation](s, model.KindCitation, id)
}

func (s *Store) RepositoryFromGrampsID(id string) (*model.Repository, error) {
	return fetchByID[*model.Repository](s, model.KindRepository, id)
}

func (s *Store) MediaFromGrampsID(id string) (*model.Media, error) {
	return fetchByID[*model.Media](s, model.KindMedia, id)
}

func (s *Store) NoteFromGrampsID(id string) (*model.Note, error) {
	return fetchByID[*model.Note](s, model.KindNote, id)
}

func (s *Store) TagFromName(name string) (*model.Tag, error) {
	h, ok := s.tagsByName[name]
	if !ok {
		return nil, store.NotFound(model.KindTag, name)
	}
	return s.TagFromHandle(h)
}

func (s *Store) Handles(kind model.Kind) ([]model.Handle, error) {
	if _, ok := s.objects[kind]; !ok {
		return nil, fmt.Errorf("unknown kind %q", kind)
	}
	return slices.Clone(s.order[kind]), nil
}

func (s *Store) People() ([]*model.Person, error) {
	out := make([]*model.Person, 0, len(s.order[model.KindPerson]))
	for _, h := range s.order[model.KindPerson] {
		p, err := s.PersonFromHandle(h)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *Store) Families() ([]*model.Family, error) {
	out := make([]*model.Family, 0, len(s.order[model.KindFamily]))
	for _, h := range s.order[model.KindFamily] {
		f, err := s.FamilyFromHandle(h)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// FindBacklinkHandles lists the objects referencing h, optionally limited
// to the given kinds.
func (s *Store) FindBacklinkHandles(h model.Handle, include ...model.Kind) ([]store.Backlink, error) {
	var out []store.Backlink
	for _, ref := range s.backlinks[h] {
		if len(include) > 0 && !slices.Contains(include, ref.Kind) {
			continue
		}
		out = append(out, ref)
	}
	return out, nil
}

func (s *Store) Bookmarks() ([]model.Handle, error) {
	return slices.Clone(s.bookmarks), nil
}

func (s *Store) Summaries(kind model.Kind) ([]store.Summary, error) {
	objs, ok := s.objects[kind]
	if !ok {
		return nil, fmt.Errorf("unknown kind %q", kind)
	}
	out := make([]store.Summary, 0, len(s.order[kind]))
	for _, h := range s.order[kind] {
		out = append(out, store.Summarize(objs[h]))
	}
	return out, nil
}

func (s *Store) Count(kind model.Kind) (int, error) {
	if _, ok := s.objects[kind]; !ok {
		return 0, fmt.Errorf("unknown kind %q", kind)
	}
	return len(s.order[kind]), nil
}

func (s *Store) DefaultPersonHandle() (model.Handle, error) {
	return s.defaultPerson, nil
}

func (s *Store) Researcher() (*model.Researcher, error) {
	if s.researcher == nil {
		return &model.Researcher{}, nil
	}
	r := *s.researcher
	return &r, nil
}
