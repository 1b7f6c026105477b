package mcp

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"kinview/internal/config"
	"kinview/internal/model"
	"kinview/internal/store"
	"kinview/internal/store/memory"
	"kinview/internal/testtree"
	"kinview/internal/view"
)

type mockSearcher struct {
	result []store.SearchHit
	err    error

	lastQuery string
	lastKind  model.Kind
}

func (m *mockSearcher) Search(ctx context.Context, query string, kind model.Kind) ([]store.SearchHit, error) {
	m.lastQuery = query
	m.lastKind = kind
	return m.result, m.err
}

func newServer(t *testing.T, searcher Searcher) *Server {
	t.Helper()
	tree, err := memory.New(testtree.Snapshot())
	if err != nil {
		t.Fatalf("building tree: %v", err)
	}
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	v, err := view.Build(tree, config.ViewConfig{Private: true}, view.Options{Logger: logger})
	if err != nil {
		t.Fatalf("building view: %v", err)
	}
	return NewServer(v, searcher, logger, "test")
}

func TestGetObject(t *testing.T) {
	server := newServer(t, nil)

	_, output, err := server.handleGetObject(context.Background(), nil, GetObjectInput{Kind: "Person", Handle: string(testtree.Alice)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.GrampsID != "I0001" || output.Object["gramps_id"] != "I0001" {
		t.Fatalf("unexpected object output: %+v", output)
	}

	_, output, err = server.handleGetObject(context.Background(), nil, GetObjectInput{Kind: "Person", GrampsID: "I0002"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Handle != string(testtree.Bob) {
		t.Fatalf("expected Bob, got %+v", output)
	}
}

func TestGetObject_Errors(t *testing.T) {
	server := newServer(t, nil)

	tests := []struct {
		name  string
		input GetObjectInput
	}{
		{"private person", GetObjectInput{Kind: "Person", Handle: string(testtree.Carol)}},
		{"unknown kind", GetObjectInput{Kind: "Widget", Handle: "W1"}},
		{"no key", GetObjectInput{Kind: "Person"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := server.handleGetObject(context.Background(), nil, tt.input); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestListObjects(t *testing.T) {
	server := newServer(t, nil)

	_, output, err := server.handleListObjects(context.Background(), nil, ListObjectsInput{Kind: "Person", Limit: 2, Offset: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Total != 4 || len(output.Objects) != 2 {
		t.Fatalf("unexpected list output: %+v", output)
	}

	_, output, err = server.handleListObjects(context.Background(), nil, ListObjectsInput{Kind: "Person", Offset: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Total != 4 || len(output.Objects) != 0 {
		t.Fatalf("expected empty page, got %+v", output)
	}
}

func TestFindBacklinks(t *testing.T) {
	server := newServer(t, nil)

	_, output, err := server.handleFindBacklinks(context.Background(), nil, FindBacklinksInput{Handle: string(testtree.Smiths)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := map[string]bool{}
	for _, link := range output.Backlinks {
		got[link.Handle] = true
	}
	if len(got) != 2 || !got[string(testtree.Alice)] || !got[string(testtree.Bob)] {
		t.Fatalf("unexpected backlinks: %+v", output.Backlinks)
	}

	_, output, err = server.handleFindBacklinks(context.Background(), nil, FindBacklinksInput{Handle: string(testtree.Smiths), Kinds: []string{"Family"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Backlinks) != 0 {
		t.Fatalf("expected no family backlinks, got %+v", output.Backlinks)
	}

	if _, _, err := server.handleFindBacklinks(context.Background(), nil, FindBacklinksInput{}); err == nil {
		t.Fatalf("expected error for missing handle")
	}
}

func TestCountObjects(t *testing.T) {
	server := newServer(t, nil)

	_, output, err := server.handleCountObjects(context.Background(), nil, CountObjectsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Counts["Person"] != 4 || output.Counts["Event"] != 6 {
		t.Fatalf("unexpected counts: %v", output.Counts)
	}
	if len(output.Layers) != 1 || output.Layers[0] != "private" {
		t.Fatalf("unexpected layers: %v", output.Layers)
	}
}

func TestSearchTree(t *testing.T) {
	searcher := &mockSearcher{
		result: []store.SearchHit{
			{Kind: model.KindPerson, Handle: testtree.Alice, GrampsID: "I0001", SortKey: "Smith", Score: 2},
			{Kind: model.KindPerson, Handle: testtree.Carol, GrampsID: "I0003", SortKey: "Jones", Score: 1},
		},
	}
	server := newServer(t, searcher)

	_, output, err := server.handleSearchTree(context.Background(), nil, SearchTreeInput{Query: "smith", Kind: "Person"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Results) != 1 || output.Results[0].Handle != string(testtree.Alice) {
		t.Fatalf("unexpected search output: %+v", output)
	}
	if searcher.lastQuery != "smith" || searcher.lastKind != model.KindPerson {
		t.Fatalf("unexpected search params")
	}

	if _, _, err := server.handleSearchTree(context.Background(), nil, SearchTreeInput{}); err == nil {
		t.Fatalf("expected error for empty query")
	}
}

func TestSearchTree_RedactedNames(t *testing.T) {
	searcher := &mockSearcher{
		result: []store.SearchHit{
			{Kind: model.KindPerson, Handle: testtree.Dan, GrampsID: "I0004", SortKey: "Smith", Score: 1},
		},
	}
	server := newServer(t, searcher)

	_, output, err := server.handleSearchTree(context.Background(), nil, SearchTreeInput{Query: "smith"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Results) != 0 {
		t.Fatalf("redacted name matched: %+v", output.Results)
	}

	_, output, err = server.handleSearchTree(context.Background(), nil, SearchTreeInput{Query: "I0004"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Results) != 1 || output.Results[0].SortKey != "Private" {
		t.Fatalf("unexpected search output: %+v", output.Results)
	}
}

func TestSearchTree_Unavailable(t *testing.T) {
	server := newServer(t, nil)
	if _, _, err := server.handleSearchTree(context.Background(), nil, SearchTreeInput{Query: "smith"}); err == nil {
		t.Fatalf("expected error without searcher")
	}
}

func TestCheckTree(t *testing.T) {
	server := newServer(t, nil)

	_, output, err := server.handleCheckTree(context.Background(), nil, CheckTreeInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Errors+output.Warnings != len(output.Issues) {
		t.Fatalf("counts do not add up: %+v", output)
	}
}
