package proxy

import (
	"kinview/internal/model"
)

func typed[T model.Object](obj model.Object, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	return obj.(T), nil
}

func (b *Base) PersonFromHandle(h model.Handle) (*model.Person, error) {
	return typed[*model.Person](b.object(model.KindPerson, h))
}

func (b *Base) FamilyFromHandle(h model.Handle) (*model.Family, error) {
	return typed[*model.Family](b.object(model.KindFamily, h))
}

func (b *Base) EventFromHandle(h model.Handle) (*model.Event, error) {
	return typed[*model.Event](b.object(model.KindEvent, h))
}

func (b *Base) PlaceFromHandle(h model.Handle) (*model.Place, error) {
	return typed[*model.Place](b.object(model.KindPlace, h))
}

func (b *Base) SourceFromHandle(h model.Handle) (*model.Source, error) {
	return typed[*model.Source](b.object(model.KindSource, h))
}

func (b *Base) CitationFromHandle(h model.Handle) (*model.Citation, error) {
	return typed[*model.Citation](b.object(model.KindCitation, h))
}

func (b *Base) RepositoryFromHandle(h model.Handle) (*model.Repository, error) {
	return typed[*model.Repository](b.object(model.KindRepository, h))
}

func (b *Base) MediaFromHandle(h model.Handle) (*model.Media, error) {
	return typed[*model.Media](b.object(model.KindMedia, h))
}

func (b *Base) NoteFromHandle(h model.Handle) (*model.Note, error) {
	return typed[*model.Note](b.object(model.KindNote, h))
}

func (b *Base) TagFromHandle(h model.Handle) (*model.Tag, error) {
	return typed[*model.Tag](b.object(model.KindTag, h))
}

func (b *Base) PersonFromGrampsID(id string) (*model.Person, error) {
	return typed[*model.Person](b.objectByGrampsID(model.KindPerson, id))
}

func (b *Base) FamilyFromGrampsID(id string) (*model.Family, error) {
	return typed[*model.Family](b.objectByGrampsID(model.KindFamily, id))
}

func (b *Base) EventFromGrampsID(id string) (*model.Event, error) {
	return typed[*model.Event](b.objectByGrampsID(model.KindEvent, id))
}

func (b *Base) PlaceFromGrampsID(id string) (*model.Place, error) {
	return typed[*model.Place](b.objectByGrampsID(model.KindPlace, id))
}

func (b *Base) SourceFromGrampsID(id string) (*model.Source, error) {
	return typed[*model.Source](b.objectByGrampsID(model.KindSource, id))
}

func (b *Base) CitationFromGrampsID(id string) (*model.Citation, error) {
	return typed[*model.Citation](b.objectByGrampsID(model.KindCitation, id))
}

func (b *Base) RepositoryFromGrampsID(id string) (*model.Repository, error) {
	return typed[*model.Repository](b.objectByGrampsID(model.KindRepository, id))
}

func (b *Base) MediaFromGrampsID(id string) (*model.Media, error) {
	return typed[*model.Media](b.objectByGrampsID(model.KindMedia, id))
}

func (b *Base) NoteFromGrampsID(id string) (*model.Note, error) {
	return typed[*model.Note](b.objectByGrampsID(model.KindNote, id))
}

// TagFromName resolves a tag by name through the wrapped reader.
func (b *Base) TagFromName(name string) (*model.Tag, error) {
	return typed[*model.Tag](b.objectByGrampsID(model.KindTag, name))
}
