package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ursulacheck/internal/config"
)

func historyCmd() *cobra.Command {
	var taskName string
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded check runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(taskName, limit)
		},
	}
	cmd.Flags().StringVar(&taskName, "task", "", "Task to filter")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of runs")
	return cmd
}

func runHistory(taskName string, limit int) error {
	ctx := context.Background()

	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		return err
	}
	if cfg.Database.DSN == "" {
		return fmt.Errorf("no database configured in %s", config.DefaultPath)
	}

	db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	if err := db.EnsureSchema(ctx); err != nil {
		return err
	}

	runs, err := db.ListRuns(ctx, taskName, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(os.Stdout, "No runs recorded.")
		return nil
	}

	for _, run := range runs {
		fmt.Fprintf(os.Stdout, "%s  %-12s salt=%-11d result=%-3d %s\n",
			run.CreatedAt.Format("2006-01-02 15:04:05"), run.Task, run.Salt, run.Result, run.LogFile)
	}
	return nil
}
