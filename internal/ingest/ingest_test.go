package ingest

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/sirupsen/logrus"

	"kinview/internal/model"
	"kinview/internal/store"
	"kinview/internal/validate"
)

type mockStore struct {
	ensureCalled bool
	saved        *store.Snapshot
	saveCalls    int
	hash         string
	failSave     bool
}

func (m *mockStore) Close(ctx context.Context) error { return nil }

func (m *mockStore) EnsureSchema(ctx context.Context) error {
	m.ensureCalled = true
	return nil
}

func (m *mockStore) SaveSnapshot(ctx context.Context, snap *store.Snapshot, sourceHash string) error {
	if m.failSave {
		return errors.New("forced error")
	}
	m.saveCalls++
	m.saved = snap
	m.hash = sourceHash
	return nil
}

func (m *mockStore) LoadSnapshot(ctx context.Context) (*store.Snapshot, error) {
	if m.saved == nil {
		return nil, store.ErrNoSnapshot
	}
	return m.saved, nil
}

func (m *mockStore) SourceHash(ctx context.Context) (string, error) {
	return m.hash, nil
}

func (m *mockStore) Search(ctx context.Context, query string, kind model.Kind) ([]store.SearchHit, error) {
	return nil, nil
}

func quietOptions() Options {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return Options{Logger: logger}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// testTree writes a tree split over a YAML and a JSON file, plus a draft
// directory that is excluded.
func testTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "people.yaml"), `people:
  - handle: P1
    gramps_id: I0001
    primary_name: {first_name: Ada, surnames: [{surname: King, primary: true}]}
    event_refs: [{ref: E1}]
    birth_ref: E1
    families: [F1]
  - handle: P2
    gramps_id: I0002
    primary_name: {first_name: William}
    families: [F1]
families:
  - handle: F1
    gramps_id: F0001
    father: P2
    mother: P1
bookmarks: [P1]
default_person: P1
`)
	writeFile(t, filepath.Join(dir, "events", "events.json"), `{"events": [{"handle": "E1", "gramps_id": "E0001", "type": "Birth", "date": {"year": 1815}}]}`)
	writeFile(t, filepath.Join(dir, "drafts", "broken.yaml"), "people: [\n")
	writeFile(t, filepath.Join(dir, "README.md"), "# not a tree file\n")
	return dir
}

func TestRun_BasicImport(t *testing.T) {
	dir := testTree(t)
	db := &mockStore{}
	options := quietOptions()
	options.Exclude = []string{filepath.Join(dir, "drafts")}

	result, err := Run(context.Background(), []string{dir}, db, options)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !db.ensureCalled {
		t.Fatalf("expected EnsureSchema to be called")
	}
	if result.Files != 2 {
		t.Fatalf("expected 2 files, got %d", result.Files)
	}
	if result.Skipped {
		t.Fatalf("expected import, got skip")
	}
	want := map[model.Kind]int{
		model.KindPerson: 2, model.KindFamily: 1, model.KindEvent: 1,
		model.KindPlace: 0, model.KindSource: 0, model.KindCitation: 0,
		model.KindRepository: 0, model.KindMedia: 0, model.KindNote: 0, model.KindTag: 0,
	}
	if !reflect.DeepEqual(result.Objects, want) {
		t.Fatalf("unexpected counts: %v", result.Objects)
	}
	if db.saved.DefaultPerson != "P1" || len(db.saved.Bookmarks) != 1 {
		t.Fatalf("database records not merged: %#v", db.saved)
	}
	if db.hash != result.SourceHash || len(db.hash) != 64 {
		t.Fatalf("expected stored hash %q, got %q", result.SourceHash, db.hash)
	}
	if result.Report.HasErrors() {
		t.Fatalf("expected clean report, got %#v", result.Report.Issues)
	}
}

func TestRun_SkipsUnchangedTree(t *testing.T) {
	dir := testTree(t)
	db := &mockStore{}
	options := quietOptions()
	options.Exclude = []string{filepath.Join(dir, "drafts")}

	if _, err := Run(context.Background(), []string{dir}, db, options); err != nil {
		t.Fatalf("first import: %v", err)
	}
	result, err := Run(context.Background(), []string{dir}, db, options)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if !result.Skipped || db.saveCalls != 1 {
		t.Fatalf("expected skip, got skipped=%v saves=%d", result.Skipped, db.saveCalls)
	}

	options.Full = true
	result, err = Run(context.Background(), []string{dir}, db, options)
	if err != nil {
		t.Fatalf("full import: %v", err)
	}
	if result.Skipped || db.saveCalls != 2 {
		t.Fatalf("expected full import, got skipped=%v saves=%d", result.Skipped, db.saveCalls)
	}

	writeFile(t, filepath.Join(dir, "notes.json"), `{"notes": [{"handle": "N1", "text": {"text": "hello"}}]}`)
	options.Full = false
	result, err = Run(context.Background(), []string{dir}, db, options)
	if err != nil {
		t.Fatalf("changed import: %v", err)
	}
	if result.Skipped || result.Objects[model.KindNote] != 1 {
		t.Fatalf("expected changed tree to import, got %#v", result)
	}
}

func TestRun_ReportsIssues(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "tree.yaml"), "people:\n  - handle: P1\n    event_refs: [{ref: E-missing}]\n")
	db := &mockStore{}

	result, err := Run(context.Background(), []string{dir}, db, quietOptions())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Report.Count(validate.SeverityError) != 1 {
		t.Fatalf("expected one error, got %#v", result.Report.Issues)
	}
	if db.saved == nil {
		t.Fatalf("expected snapshot to be stored despite issues")
	}
}

func TestRun_Failures(t *testing.T) {
	t.Run("no files", func(t *testing.T) {
		_, err := Run(context.Background(), []string{t.TempDir()}, &mockStore{}, quietOptions())
		if !errors.Is(err, ErrNoFiles) {
			t.Fatalf("expected ErrNoFiles, got %v", err)
		}
	})

	t.Run("parse error", func(t *testing.T) {
		dir := testTree(t)
		_, err := Run(context.Background(), []string{dir}, &mockStore{}, quietOptions())
		if err == nil {
			t.Fatalf("expected error for broken draft")
		}
	})

	t.Run("duplicate handle across files", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "a.json"), `{"people": [{"handle": "P1"}]}`)
		writeFile(t, filepath.Join(dir, "b.json"), `{"people": [{"handle": "P1"}]}`)
		if _, err := Run(context.Background(), []string{dir}, &mockStore{}, quietOptions()); err == nil {
			t.Fatalf("expected duplicate handle error")
		}
	})

	t.Run("conflicting default person", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "a.json"), `{"people": [{"handle": "P1"}], "default_person": "P1"}`)
		writeFile(t, filepath.Join(dir, "b.json"), `{"people": [{"handle": "P2"}], "default_person": "P2"}`)
		if _, err := Run(context.Background(), []string{dir}, &mockStore{}, quietOptions()); err == nil {
			t.Fatalf("expected conflict error")
		}
	})

	t.Run("save error", func(t *testing.T) {
		dir := testTree(t)
		options := quietOptions()
		options.Exclude = []string{filepath.Join(dir, "drafts")}
		if _, err := Run(context.Background(), []string{dir}, &mockStore{failSave: true}, options); err == nil {
			t.Fatalf("expected save error")
		}
	})
}

func TestHashFilesIsOrderIndependent(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.json")
	b := filepath.Join(dir, "b.json")
	writeFile(t, a, `{}`)
	writeFile(t, b, `{"tags": []}`)

	first, err := hashFiles([]string{a, b})
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := hashFiles([]string{b, a})
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first != second {
		t.Fatalf("expected equal hashes, got %s and %s", first, second)
	}
}
