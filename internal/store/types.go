package store

import (
	"fmt"

	"kinview/internal/model"
)

// Backlink names an object that references some other object.
type Backlink = model.Ref

// Summary is the lightweight per-object record proxies build their
// visibility maps from.
type Summary struct {
	Handle  model.Handle `json:"handle"`
	SortKey string       `json:"sort_key,omitempty"`
	Private bool         `json:"private,omitempty"`
}

func Summarize(obj model.Object) Summary {
	return Summary{
		Handle:  obj.ObjectHandle(),
		SortKey: obj.SortKey(),
		Private: obj.IsPrivate(),
	}
}

// Snapshot is a complete tree held in memory: every primary object in
// insertion order plus the database-level records.
type Snapshot struct {
	People        []*model.Person     `json:"people,omitempty"`
	Families      []*model.Family     `json:"families,omitempty"`
	Events        []*model.Event      `json:"events,omitempty"`
	Places        []*model.Place      `json:"places,omitempty"`
	Sources       []*model.Source     `json:"sources,omitempty"`
	Citations     []*model.Citation   `json:"citations,omitempty"`
	Repositories  []*model.Repository `json:"repositories,omitempty"`
	Media         []*model.Media      `json:"media,omitempty"`
	Notes         []*model.Note       `json:"notes,omitempty"`
	Tags          []*model.Tag        `json:"tags,omitempty"`
	Bookmarks     []model.Handle      `json:"bookmarks,omitempty"`
	DefaultPerson model.Handle        `json:"default_person,omitempty"`
	Researcher    *model.Researcher   `json:"researcher,omitempty"`
}

// Objects returns the snapshot's objects of one kind.
func (s *Snapshot) Objects(kind model.Kind) []model.Object {
	switch kind {
	case model.KindPerson:
		return objects(s.People)
	case model.KindFamily:
		return objects(s.Families)
	case model.KindEvent:
		return objects(s.Events)
	case model.KindPlace:
		return objects(s.Places)
	case model.KindSource:
		return objects(s.Sources)
	case model.KindCitation:
		return objects(s.Citations)
	case model.KindRepository:
		return objects(s.Repositories)
	case model.KindMedia:
		return objects(s.Media)
	case model.KindNote:
		return objects(s.Notes)
	case model.KindTag:
		return objects(s.Tags)
	}
	return nil
}

func objects[T model.Object](in []T) []model.Object {
	var zero T
	out := make([]model.Object, 0, len(in))
	for _, obj := range in {
		if any(obj) == any(zero) {
			continue
		}
		out = append(out, obj)
	}
	return out
}

// Add appends obj to the list for its kind.
func (s *Snapshot) Add(obj model.Object) error {
	switch o := obj.(type) {
	case *model.Person:
		s.People = append(s.People, o)
	case *model.Family:
		s.Families = append(s.Families, o)
	case *model.Event:
		s.Events = append(s.Events, o)
	case *model.Place:
		s.Places = append(s.Places, o)
	case *model.Source:
		s.Sources = append(s.Sources, o)
	case *model.Citation:
		s.Citations = append(s.Citations, o)
	case *model.Repository:
		s.Repositories = append(s.Repositories, o)
	case *model.Media:
		s.Media = append(s.Media, o)
	case *model.Note:
		s.Notes = append(s.Notes, o)
	case *model.Tag:
		s.Tags = append(s.Tags, o)
	default:
		return fmt.Errorf("unsupported object type %T", obj)
	}
	return nil
}

// Len counts every primary object in the snapshot.
func (s *Snapshot) Len() int {
	n := 0
	for _, kind := range model.Kinds {
		n += len(s.Objects(kind))
	}
	return n
}
