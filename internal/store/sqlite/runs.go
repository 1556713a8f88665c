package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ursulacheck/internal/store"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	ddl := `
	CREATE TABLE IF NOT EXISTS runs (
		id         TEXT PRIMARY KEY,
		task       TEXT NOT NULL,
		salt       INTEGER NOT NULL,
		result     INTEGER NOT NULL,
		signature  TEXT NOT NULL,
		log_file   TEXT DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_task ON runs (task);
	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs (created_at);
	`
	if _, err := c.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("executing DDL: %w", err)
	}
	return nil
}

func (c *Client) RecordRun(ctx context.Context, run store.RunInput) (string, error) {
	id := uuid.NewString()

	query := `
	INSERT INTO runs (id, task, salt, result, signature, log_file, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := c.db.ExecContext(ctx, query,
		id,
		run.Task,
		run.Salt,
		run.Result,
		run.Signature,
		run.LogFile,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
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
	WHERE (? = '' OR task = ?)
	ORDER BY created_at DESC
	LIMIT ?
	`
	rows, err := c.db.QueryContext(ctx, query, taskName, taskName, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []store.Run
	for rows.Next() {
		run, err := scanRun(rows.Scan)
		if err != nil {
			return nil, err
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
	WHERE id = ?
	`
	row := c.db.QueryRowContext(ctx, query, id)
	run, err := scanRun(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func scanRun(scan func(dest ...any) error) (store.Run, error) {
	var run store.Run
	var created string
	if err := scan(&run.ID, &run.Task, &run.Salt, &run.Result, &run.Signature, &run.LogFile, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Run{}, err
		}
		return store.Run{}, fmt.Errorf("scanning run: %w", err)
	}
	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return store.Run{}, fmt.Errorf("parsing run timestamp %q: %w", created, err)
	}
	run.CreatedAt = t
	return run, nil
}
