package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ursulacheck/internal/checker"
	"ursulacheck/internal/config"
	"ursulacheck/internal/mcp"
	"ursulacheck/internal/store"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server over stdio",
		RunE:  runServe,
	}
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		return err
	}

	chk, err := checker.New(cfg.Manifest)
	if err != nil {
		return err
	}

	var db store.Store
	if cfg.Database.DSN != "" {
		db, err = openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close(ctx)
		if err := db.EnsureSchema(ctx); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(os.Stderr, "No database configured; run history tools are disabled.")
	}

	server := mcp.NewServer(chk, db, version)
	return server.Run(ctx, &sdk.StdioTransport{})
}
