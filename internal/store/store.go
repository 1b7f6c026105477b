package store

import (
	"context"
	"errors"
	"fmt"

	"kinview/internal/model"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrNoSnapshot is returned when a database has never been loaded.
	ErrNoSnapshot = errors.New("no snapshot stored")
)

// NotFound builds the error returned for a missing or hidden object. Stores
// and proxies share it so callers cannot tell the two apart.
func NotFound(kind model.Kind, key string) error {
	return fmt.Errorf("%s %q: %w", kind, key, ErrNotFound)
}

// Reader is the read contract shared by stores and proxies.
type Reader interface {
	PersonFromHandle(h model.Handle) (*model.Person, error)
	FamilyFromHandle(h model.Handle) (*model.Family, error)
	EventFromHandle(h model.Handle) (*model.Event, error)
	PlaceFromHandle(h model.Handle) (*model.Place, error)
	SourceFromHandle(h model.Handle) (*model.Source, error)
	CitationFromHandle(h model.Handle) (*model.Citation, error)
	RepositoryFromHandle(h model.Handle) (*model.Repository, error)
	MediaFromHandle(h model.Handle) (*model.Media, error)
	NoteFromHandle(h model.Handle) (*model.Note, error)
	TagFromHandle(h model.Handle) (*model.Tag, error)

	PersonFromGrampsID(id string) (*model.Person, error)
	FamilyFromGrampsID(id string) (*model.Family, error)
	EventFromGrampsID(id string) (*model.Event, error)
	PlaceFromGrampsID(id string) (*model.Place, error)
	SourceFromGrampsID(id string) (*model.Source, error)
	CitationFromGrampsID(id string) (*model.Citation, error)
	RepositoryFromGrampsID(id string) (*model.Repository, error)
	MediaFromGrampsID(id string) (*model.Media, error)
	NoteFromGrampsID(id string) (*model.Note, error)
	TagFromName(name string) (*model.Tag, error)

	Handles(kind model.Kind) ([]model.Handle, error)
	People() ([]*model.Person, error)
	Families() ([]*model.Family, error)
	FindBacklinkHandles(h model.Handle, include ...model.Kind) ([]Backlink, error)
	Bookmarks() ([]model.Handle, error)
	Summaries(kind model.Kind) ([]Summary, error)
	Count(kind model.Kind) (int, error)
	DefaultPersonHandle() (model.Handle, error)
	Researcher() (*model.Researcher, error)
}

// Sorter is implemented by readers that can order handles by a
// locale-aware comparison of their sort keys.
type Sorter interface {
	LocaleSort(kind model.Kind, collation string) ([]model.Handle, error)
}

// SnapshotStore persists whole snapshots in a database.
type SnapshotStore interface {
	Close(ctx context.Context) error
	EnsureSchema(ctx context.Context) error
	SaveSnapshot(ctx context.Context, snap *Snapshot, sourceHash string) error
	LoadSnapshot(ctx context.Context) (*Snapshot, error)
	SourceHash(ctx context.Context) (string, error)
	Search(ctx context.Context, query string, kind model.Kind) ([]SearchHit, error)
}

// Get fetches any primary object by kind and handle.
func Get(r Reader, kind model.Kind, h model.Handle) (model.Object, error) {
	var (
		obj model.Object
		err error
	)
	switch kind {
	case model.KindPerson:
		obj, err = wrap(r.PersonFromHandle(h))
	case model.KindFamily:
		obj, err = wrap(r.FamilyFromHandle(h))
	case model.KindEvent:
		obj, err = wrap(r.EventFromHandle(h))
	case model.KindPlace:
		obj, err = wrap(r.PlaceFromHandle(h))
	case model.KindSource:
		obj, err = wrap(r.SourceFromHandle(h))
	case model.KindCitation:
		obj, err = wrap(r.CitationFromHandle(h))
	case model.KindRepository:
		obj, err = wrap(r.RepositoryFromHandle(h))
	case model.KindMedia:
		obj, err = wrap(r.MediaFromHandle(h))
	case model.KindNote:
		obj, err = wrap(r.NoteFromHandle(h))
	case model.KindTag:
		obj, err = wrap(r.TagFromHandle(h))
	default:
		return nil, fmt.Errorf("unknown kind %q", kind)
	}
	return obj, err
}

// GetByGrampsID fetches any primary object by kind and gramps id. Tags are
// looked up by name.
func GetByGrampsID(r Reader, kind model.Kind, id string) (model.Object, error) {
	switch kind {
	case model.KindPerson:
		return wrap(r.PersonFromGrampsID(id))
	case model.KindFamily:
		return wrap(r.FamilyFromGrampsID(id))
	case model.KindEvent:
		return wrap(r.EventFromGrampsID(id))
	case model.KindPlace:
		return wrap(r.PlaceFromGrampsID(id))
	case model.KindSource:
		return wrap(r.SourceFromGrampsID(id))
	case model.KindCitation:
		return wrap(r.CitationFromGrampsID(id))
	case model.KindRepository:
		return wrap(r.RepositoryFromGrampsID(id))
	case model.KindMedia:
		return wrap(r.MediaFromGrampsID(id))
	case model.KindNote:
		return wrap(r.NoteFromGrampsID(id))
	case model.KindTag:
		return wrap(r.TagFromName(id))
	}
	return nil, fmt.Errorf("unknown kind %q", kind)
}

// wrap keeps a nil typed pointer from turning into a non-nil interface.
func wrap[T model.Object](obj T, err error) (model.Object, error) {
	if err != nil {
		return nil, err
	}
	return obj, nil
}

// Exists reports whether h resolves in r. Errors other than ErrNotFound
// are returned.
func Exists(r Reader, kind model.Kind, h model.Handle) (bool, error) {
	_, err := Get(r, kind, h)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
