package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"kinview/internal/model"
	"kinview/internal/store"
	"kinview/internal/view"
)

// Searcher runs full-text queries against the stored tree. Hits are
// filtered through the view before they are returned.
type Searcher interface {
	Search(ctx context.Context, query string, kind model.Kind) ([]store.SearchHit, error)
}

type Server struct {
	view     *view.View
	searcher Searcher
	logger   *logrus.Logger
	mcp      *sdk.Server
}

func NewServer(v *view.View, searcher Searcher, logger *logrus.Logger, version string) *Server {
	if logger == nil {
		logger = logrus.New()
	}
	s := &Server{
		view:     v,
		searcher: searcher,
		logger:   logger,
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "kinview",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}
