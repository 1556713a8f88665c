package task

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"ursulacheck/internal/status"
)

const minimalTask = "1:win:::::0\n"

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "default.cfg")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing manifest: %v", err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	taskPath := filepath.Join(dir, "t1.csv")
	if err := os.WriteFile(taskPath, []byte(minimalTask), 0o600); err != nil {
		t.Fatalf("writing task file: %v", err)
	}
	taskPath2 := filepath.Join(dir, "t2.csv")
	if err := os.WriteFile(taskPath2, []byte(minimalTask), 0o600); err != nil {
		t.Fatalf("writing task file: %v", err)
	}

	content := fmt.Sprintf("secret:topsecret\n\nnot a key value line\nempty:\nT1:%s\nT2:%s\n", taskPath, taskPath2)
	set, err := LoadManifest(writeManifest(t, dir, content))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if set.Secret != "topsecret" {
		t.Fatalf("secret = %q", set.Secret)
	}
	if len(set.Tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(set.Tasks))
	}
	if set.Tasks[0].Name != "T1" || set.Tasks[1].Name != "T2" {
		t.Fatalf("unexpected task order: %q, %q", set.Tasks[0].Name, set.Tasks[1].Name)
	}

	if set.Find("T2") == nil {
		t.Fatalf("expected to find T2")
	}
	if set.Find("T3") != nil {
		t.Fatalf("expected T3 to be absent")
	}
}

func TestLoadManifest_DuplicateSecret(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadManifest(writeManifest(t, dir, "secret:a\nsecret:b\n"))
	if !errors.Is(err, status.ErrBadParameters) {
		t.Fatalf("expected bad parameters, got %v", err)
	}
}

func TestLoadManifest_MissingTaskFile(t *testing.T) {
	dir := t.TempDir()
	content := fmt.Sprintf("T1:%s\n", filepath.Join(dir, "absent.csv"))
	_, err := LoadManifest(writeManifest(t, dir, content))
	if !errors.Is(err, status.ErrBadParameters) {
		t.Fatalf("expected bad parameters, got %v", err)
	}
}

func TestLoadManifest_Missing(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), "absent.cfg"))
	if !errors.Is(err, status.ErrBadParameters) {
		t.Fatalf("expected bad parameters, got %v", err)
	}
}
