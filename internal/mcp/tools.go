package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"kinview/internal/model"
	"kinview/internal/store"
	"kinview/internal/validate"
)

const defaultListLimit = 100

type GetObjectInput struct {
	Kind     string `json:"kind" jsonschema:"object kind, e.g. Person or Family"`
	Handle   string `json:"handle,omitempty" jsonschema:"object handle"`
	GrampsID string `json:"gramps_id,omitempty" jsonschema:"gramps id, or tag name for tags"`
}

type ListObjectsInput struct {
	Kind   string `json:"kind" jsonschema:"object kind"`
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum number of results"`
	Offset int    `json:"offset,omitempty" jsonschema:"results to skip"`
}

type FindBacklinksInput struct {
	Handle string   `json:"handle" jsonschema:"handle of the referenced object"`
	Kinds  []string `json:"kinds,omitempty" jsonschema:"only report referrers of these kinds"`
}

type CountObjectsInput struct{}

type SearchTreeInput struct {
	Query string `json:"query" jsonschema:"search terms"`
	Kind  string `json:"kind,omitempty" jsonschema:"restrict to one object kind"`
}

type CheckTreeInput struct{}

type ObjectOutput struct {
	Kind     string         `json:"kind"`
	Handle   string         `json:"handle"`
	GrampsID string         `json:"gramps_id,omitempty"`
	Object   map[string]any `json:"object"`
}

type ObjectSummaryOutput struct {
	Kind     string `json:"kind"`
	Handle   string `json:"handle"`
	GrampsID string `json:"gramps_id,omitempty"`
	SortKey  string `json:"sort_key,omitempty"`
}

type ListObjectsOutput struct {
	Total   int                   `json:"total"`
	Objects []ObjectSummaryOutput `json:"objects"`
}

type FindBacklinksOutput struct {
	Backlinks []ObjectSummaryOutput `json:"backlinks"`
}

type CountObjectsOutput struct {
	Counts map[string]int `json:"counts"`
	Layers []string       `json:"layers"`
}

type SearchResultOutput struct {
	Kind     string  `json:"kind"`
	Handle   string  `json:"handle"`
	GrampsID string  `json:"gramps_id,omitempty"`
	SortKey  string  `json:"sort_key,omitempty"`
	Score    float64 `json:"score"`
}

type SearchTreeOutput struct {
	Results []SearchResultOutput `json:"results"`
}

type IssueOutput struct {
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Kind     string `json:"kind,omitempty"`
	Handle   string `json:"handle,omitempty"`
	GrampsID string `json:"gramps_id,omitempty"`
}

type CheckTreeOutput struct {
	Errors   int           `json:"errors"`
	Warnings int           `json:"warnings"`
	Issues   []IssueOutput `json:"issues"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_object",
		Description: "Retrieve one object of the tree by handle or gramps id",
	}, s.handleGetObject)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_objects",
		Description: "List the visible objects of one kind in sort order",
	}, s.handleListObjects)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "find_backlinks",
		Description: "List the visible objects that reference a handle",
	}, s.handleFindBacklinks)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "count_objects",
		Description: "Count visible objects of every kind",
	}, s.handleCountObjects)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "search_tree",
		Description: "Full-text search over gramps ids and names",
	}, s.handleSearchTree)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "check_tree",
		Description: "Report broken references and unreachable objects in the view",
	}, s.handleCheckTree)
}

func (s *Server) handleGetObject(ctx context.Context, req *sdk.CallToolRequest, input GetObjectInput) (*sdk.CallToolResult, ObjectOutput, error) {
	kind, err := parseKind(input.Kind)
	if err != nil {
		return nil, ObjectOutput{}, err
	}

	var obj model.Object
	switch {
	case input.Handle != "":
		obj, err = store.Get(s.view, kind, model.Handle(input.Handle))
	case input.GrampsID != "":
		obj, err = store.GetByGrampsID(s.view, kind, input.GrampsID)
	default:
		return nil, ObjectOutput{}, fmt.Errorf("handle or gramps_id is required")
	}
	if errors.Is(err, store.ErrNotFound) {
		return nil, ObjectOutput{}, fmt.Errorf("%s not found", kind)
	}
	if err != nil {
		return nil, ObjectOutput{}, err
	}

	fields, err := objectFields(obj)
	if err != nil {
		return nil, ObjectOutput{}, err
	}
	return nil, ObjectOutput{
		Kind:     string(kind),
		Handle:   string(obj.ObjectHandle()),
		GrampsID: store.GrampsID(obj),
		Object:   fields,
	}, nil
}

func (s *Server) handleListObjects(ctx context.Context, req *sdk.CallToolRequest, input ListObjectsInput) (*sdk.CallToolResult, ListObjectsOutput, error) {
	kind, err := parseKind(input.Kind)
	if err != nil {
		return nil, ListObjectsOutput{}, err
	}
	handles, err := s.view.Sorted(kind)
	if err != nil {
		return nil, ListObjectsOutput{}, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	start := min(max(input.Offset, 0), len(handles))
	end := min(start+limit, len(handles))

	output := make([]ObjectSummaryOutput, 0, end-start)
	for _, h := range handles[start:end] {
		summary, err := s.summary(kind, h)
		if err != nil {
			return nil, ListObjectsOutput{}, err
		}
		output = append(output, summary)
	}
	return nil, ListObjectsOutput{Total: len(handles), Objects: output}, nil
}

func (s *Server) handleFindBacklinks(ctx context.Context, req *sdk.CallToolRequest, input FindBacklinksInput) (*sdk.CallToolResult, FindBacklinksOutput, error) {
	if input.Handle == "" {
		return nil, FindBacklinksOutput{}, fmt.Errorf("handle is required")
	}
	kinds := make([]model.Kind, 0, len(input.Kinds))
	for _, name := range input.Kinds {
		kind, err := parseKind(name)
		if err != nil {
			return nil, FindBacklinksOutput{}, err
		}
		kinds = append(kinds, kind)
	}

	links, err := s.view.FindBacklinkHandles(model.Handle(input.Handle), kinds...)
	if err != nil {
		return nil, FindBacklinksOutput{}, err
	}
	output := make([]ObjectSummaryOutput, 0, len(links))
	for _, link := range links {
		summary, err := s.summary(link.Kind, link.Handle)
		if err != nil {
			return nil, FindBacklinksOutput{}, err
		}
		output = append(output, summary)
	}
	return nil, FindBacklinksOutput{Backlinks: output}, nil
}

func (s *Server) handleCountObjects(ctx context.Context, req *sdk.CallToolRequest, input CountObjectsInput) (*sdk.CallToolResult, CountObjectsOutput, error) {
	counts := make(map[string]int, len(model.Kinds))
	for _, kind := range model.Kinds {
		n, err := s.view.Count(kind)
		if err != nil {
			return nil, CountObjectsOutput{}, err
		}
		counts[string(kind)] = n
	}
	layers := append([]string{}, s.view.Layers...)
	return nil, CountObjectsOutput{Counts: counts, Layers: layers}, nil
}

func (s *Server) handleSearchTree(ctx context.Context, req *sdk.CallToolRequest, input SearchTreeInput) (*sdk.CallToolResult, SearchTreeOutput, error) {
	if input.Query == "" {
		return nil, SearchTreeOutput{}, fmt.Errorf("query is required")
	}
	if s.searcher == nil {
		return nil, SearchTreeOutput{}, fmt.Errorf("search is not available")
	}
	var kind model.Kind
	if input.Kind != "" {
		var err error
		if kind, err = parseKind(input.Kind); err != nil {
			return nil, SearchTreeOutput{}, err
		}
	}

	hits, err := s.searcher.Search(ctx, input.Query, kind)
	if err != nil {
		return nil, SearchTreeOutput{}, err
	}
	visible, err := s.view.Visible(input.Query, hits)
	if err != nil {
		return nil, SearchTreeOutput{}, err
	}
	if dropped := len(hits) - len(visible); dropped > 0 {
		s.logger.WithField("dropped", dropped).Debug("search hits hidden by view")
	}

	output := make([]SearchResultOutput, 0, len(visible))
	for _, hit := range visible {
		output = append(output, SearchResultOutput{
			Kind:     string(hit.Kind),
			Handle:   string(hit.Handle),
			GrampsID: hit.GrampsID,
			SortKey:  hit.SortKey,
			Score:    hit.Score,
		})
	}
	return nil, SearchTreeOutput{Results: output}, nil
}

func (s *Server) handleCheckTree(ctx context.Context, req *sdk.CallToolRequest, input CheckTreeInput) (*sdk.CallToolResult, CheckTreeOutput, error) {
	report, err := validate.Run(s.view, s.logger)
	if err != nil {
		return nil, CheckTreeOutput{}, err
	}
	output := CheckTreeOutput{
		Errors:   report.Count(validate.SeverityError),
		Warnings: report.Count(validate.SeverityWarn),
		Issues:   make([]IssueOutput, 0, len(report.Issues)),
	}
	for _, issue := range report.Issues {
		output.Issues = append(output.Issues, IssueOutput{
			Severity: string(issue.Severity),
			Code:     issue.Code,
			Message:  issue.Message,
			Kind:     string(issue.Kind),
			Handle:   string(issue.Handle),
			GrampsID: issue.GrampsID,
		})
	}
	return nil, output, nil
}

func (s *Server) summary(kind model.Kind, h model.Handle) (ObjectSummaryOutput, error) {
	obj, err := store.Get(s.view, kind, h)
	if err != nil {
		return ObjectSummaryOutput{}, err
	}
	return ObjectSummaryOutput{
		Kind:     string(kind),
		Handle:   string(h),
		GrampsID: store.GrampsID(obj),
		SortKey:  obj.SortKey(),
	}, nil
}

func objectFields(obj model.Object) (map[string]any, error) {
	data, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", obj.ObjectKind(), err)
	}
	fields := map[string]any{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", obj.ObjectKind(), err)
	}
	return fields, nil
}

func parseKind(name string) (model.Kind, error) {
	kind, ok := model.ParseKind(name)
	if !ok {
		return "", fmt.Errorf("unknown object kind %q", name)
	}
	return kind, nil
}
