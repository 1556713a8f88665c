package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"ursulacheck/internal/store"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	ddl := `
	CREATE TABLE IF NOT EXISTS runs (
		id         UUID PRIMARY KEY,
		task       TEXT NOT NULL,
		salt       INTEGER NOT NULL,
		result     INTEGER NOT NULL,
		signature  TEXT NOT NULL,
		log_file   TEXT DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE INDEX IF NOT EXISTS idx_runs_task ON runs (task);
	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs (created_at);
	`
	if _, err := c.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("executing DDL: %w", err)
	}
	return nil
}

func (c *Client) RecordRun(ctx context.Context, run store.RunInput) (string, error) {
	id := uuid.NewString()

	query := `
	INSERT INTO runs (id, task, salt, result, signature, log_file)
	VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := c.pool.Exec(ctx, query, id, run.Task, run.Salt, run.Result, run.Signature, run.LogFile)
	if err != nil {
		return "", fmt.Errorf("recording run: %w", err)
	}
	return id, nil
}

func (c *Client) ListRuns(ctx context.Context, taskName string, limit int) ([]store.Run, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
	SELECT id, task, salt, result, signature, log_file, created_at
	FROM runs
	WHERE ($1 = '' OR task = $1)
	ORDER BY created_at DESC
	LIMIT $2
	`
	rows, err := c.pool.Query(ctx, query, taskName, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []store.Run
	for rows.Next() {
		var run store.Run
		if err := rows.Scan(&run.ID, &run.Task, &run.Salt, &run.Result,
			&run.Signature, &run.LogFile, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating run rows: %w", err)
	}
	return runs, nil
}

func (c *Client) GetRun(ctx context.Context, id string) (*store.Run, error) {
	query := `
	SELECT id, task, salt, result, signature, log_file, created_at
	FROM runs
	WHERE id = $1
	`
	var run store.Run
	err := c.pool.QueryRow(ctx, query, id).Scan(&run.ID, &run.Task, &run.Salt,
		&run.Result, &run.Signature, &run.LogFile, &run.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting run: %w", err)
	}
	return &run, nil
}
