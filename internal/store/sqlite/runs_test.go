package sqlite

import (
	"context"
	"testing"

	"ursulacheck/internal/store"
)

func openTestStore(t *testing.T) *Client {
	t.Helper()
	ctx := context.Background()
	c, err := New(ctx, "sqlite://:memory:")
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { c.Close(ctx) })
	if err := c.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensuring schema: %v", err)
	}
	return c
}

func TestRuns_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c := openTestStore(t)

	id, err := c.RecordRun(ctx, store.RunInput{
		Task:      "T1",
		Salt:      42,
		Result:    3,
		Signature: "abc123",
		LogFile:   "session.log",
	})
	if err != nil {
		t.Fatalf("recording run: %v", err)
	}
	if id == "" {
		t.Fatalf("expected a run id")
	}
	if _, err := c.RecordRun(ctx, store.RunInput{Task: "T2", Salt: 1, Result: 0, Signature: "def456"}); err != nil {
		t.Fatalf("recording second run: %v", err)
	}

	all, err := c.ListRuns(ctx, "", 0)
	if err != nil {
		t.Fatalf("listing runs: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(all))
	}

	only, err := c.ListRuns(ctx, "T1", 10)
	if err != nil {
		t.Fatalf("listing filtered runs: %v", err)
	}
	if len(only) != 1 || only[0].Task != "T1" || only[0].Salt != 42 || only[0].Result != 3 {
		t.Fatalf("unexpected filtered runs: %+v", only)
	}
	if only[0].CreatedAt.IsZero() {
		t.Fatalf("expected a recorded timestamp")
	}

	run, err := c.GetRun(ctx, id)
	if err != nil {
		t.Fatalf("getting run: %v", err)
	}
	if run == nil || run.Signature != "abc123" || run.LogFile != "session.log" {
		t.Fatalf("unexpected run: %+v", run)
	}

	missing, err := c.GetRun(ctx, "no-such-id")
	if err != nil {
		t.Fatalf("getting missing run: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for a missing run, got %+v", missing)
	}
}
