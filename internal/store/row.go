package store

import (
	"encoding/json"
	"fmt"

	"kinview/internal/model"
)

// Row is one primary object as the SQL stores keep it.
type Row struct {
	Kind     model.Kind
	Handle   model.Handle
	GrampsID string
	SortKey  string
	Private  bool
	Data     []byte
}

// SearchHit is a full-text match on an object's gramps id or sort key.
type SearchHit struct {
	Kind     model.Kind   `json:"kind"`
	Handle   model.Handle `json:"handle"`
	GrampsID string       `json:"gramps_id,omitempty"`
	SortKey  string       `json:"sort_key,omitempty"`
	Score    float64      `json:"score"`
}

// Rows flattens a snapshot in model.Kinds order.
func Rows(snap *Snapshot) ([]Row, error) {
	rows := make([]Row, 0, snap.Len())
	for _, kind := range model.Kinds {
		for _, obj := range snap.Objects(kind) {
			data, err := json.Marshal(obj)
			if err != nil {
				return nil, fmt.Errorf("encoding %s %s: %w", kind, obj.ObjectHandle(), err)
			}
			rows = append(rows, Row{
				Kind:     kind,
				Handle:   obj.ObjectHandle(),
				GrampsID: GrampsID(obj),
				SortKey:  obj.SortKey(),
				Private:  obj.IsPrivate(),
				Data:     data,
			})
		}
	}
	return rows, nil
}

// Decode rebuilds the object stored in r and appends it to snap.
func (r Row) Decode(snap *Snapshot) error {
	obj, err := newObject(r.Kind)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(r.Data, obj); err != nil {
		return fmt.Errorf("decoding %s %s: %w", r.Kind, r.Handle, err)
	}
	return snap.Add(obj)
}

func newObject(kind model.Kind) (model.Object, error) {
	switch kind {
	case model.KindPerson:
		return new(model.Person), nil
	case model.KindFamily:
		return new(model.Family), nil
	case model.KindEvent:
		return new(model.Event), nil
	case model.KindPlace:
		return new(model.Place), nil
	case model.KindSource:
		return new(model.Source), nil
	case model.KindCitation:
		return new(model.Citation), nil
	case model.KindRepository:
		return new(model.Repository), nil
	case model.KindMedia:
		return new(model.Media), nil
	case model.KindNote:
		return new(model.Note), nil
	case model.KindTag:
		return new(model.Tag), nil
	}
	return nil, fmt.Errorf("unknown kind %q", kind)
}

// GrampsID returns obj's gramps id, or a tag's name.
func GrampsID(obj model.Object) string {
	switch o := obj.(type) {
	case *model.Person:
		return o.GrampsID
	case *model.Family:
		return o.GrampsID
	case *model.Event:
		return o.GrampsID
	case *model.Place:
		return o.GrampsID
	case *model.Source:
		return o.GrampsID
	case *model.Citation:
		return o.GrampsID
	case *model.Repository:
		return o.GrampsID
	case *model.Media:
		return o.GrampsID
	case *model.Note:
		return o.GrampsID
	case *model.Tag:
		return o.Name
	}
	return ""
}
