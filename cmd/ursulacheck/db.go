package main

import (
	"context"
	"fmt"
	"strings"

	"ursulacheck/internal/config"
	"ursulacheck/internal/store"
	"ursulacheck/internal/store/postgres"
	"ursulacheck/internal/store/sqlite"
)

func openStore(ctx context.Context, cfg *config.ToolConfig) (store.Store, error) {
	dsn := cfg.Database.DSN
	switch {
	case strings.HasPrefix(dsn, "sqlite://"):
		return sqlite.New(ctx, dsn)
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return postgres.New(ctx, dsn)
	default:
		return nil, fmt.Errorf("unsupported database DSN %q", dsn)
	}
}
