// Package mcp exposes the checker over the Model Context Protocol so
// grading agents can run checks and browse tasks and recorded runs.
package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"ursulacheck/internal/checker"
	"ursulacheck/internal/store"
)

type Server struct {
	chk *checker.Checker
	db  store.Store
	mcp *sdk.Server
}

// NewServer wraps a loaded checker. db may be nil when no run-history
// store is configured.
func NewServer(chk *checker.Checker, db store.Store, version string) *Server {
	s := &Server{
		chk: chk,
		db:  db,
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "ursulacheck",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}
