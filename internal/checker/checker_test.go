package checker

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"ursulacheck/internal/status"
)

// writeFixture lays out a manifest plus one task file and returns the
// manifest path.
func writeFixture(t *testing.T, secret, taskName, taskCSV string) string {
	t.Helper()
	dir := t.TempDir()

	taskPath := filepath.Join(dir, "task.csv")
	if err := os.WriteFile(taskPath, []byte(taskCSV), 0o600); err != nil {
		t.Fatalf("writing task file: %v", err)
	}

	manifest := fmt.Sprintf("secret:%s\n%s:%s\n", secret, taskName, taskPath)
	manifestPath := filepath.Join(dir, "default.cfg")
	if err := os.WriteFile(manifestPath, []byte(manifest), 0o600); err != nil {
		t.Fatalf("writing manifest: %v", err)
	}
	return manifestPath
}

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.log")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing log: %v", err)
	}
	return path
}

const zombieTask = "base:mob:zombie:5,5:0:0:\n" +
	"req:mob:zombie:1:3::\n" +
	"1:proxy:player::mob:zombie:2.0\n"

const zombieScene = "Player Start Position (4,5)\n" +
	"ID | Name | Object ID | Type | Position | HP | Damage\n" +
	"zombie_1 | zombie | 17 | mob | (5,5) | 10 | 1\n" +
	"---\n"

func TestCheck_Proximity(t *testing.T) {
	cfg := writeFixture(t, "topsecret", "T1", zombieTask)
	log := writeLog(t, zombieScene+
		"[0] Player position: (4,5); zombie_1 position: (5,5)\n"+
		"[1] Session ended\n")

	chk, err := New(cfg)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	report, err := chk.Check("T1", 7, log)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if report.Result != 1 {
		t.Fatalf("result = %d, want 1", report.Result)
	}
	if !chk.Verify("T1", 7, report.Result, report.Code) {
		t.Fatalf("signature does not verify")
	}
	if report.Result&0x80 != 0 {
		t.Fatalf("reserved high bit set in result %#x", report.Result)
	}
}

func TestCheck_OrderedPrecedence(t *testing.T) {
	taskCSV := zombieTask + "2:destroy:mob:zombie::::\n"
	cfg := writeFixture(t, "topsecret", "T1", taskCSV)
	log := writeLog(t, zombieScene+
		"[0] Player position: (4,5); zombie_1 position: (5,5)\n"+
		"[1] zombie_1 died\n"+
		"[2] Session ended\n")

	chk, err := New(cfg)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	report, err := chk.Check("T1", 1, log)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if report.Result != 3 {
		t.Fatalf("result = %d, want 3", report.Result)
	}
}

func TestCheck_AndNesting(t *testing.T) {
	taskCSV := "base:mob:zombie:5,5:0:0:\n" +
		"req:mob:zombie:1:3::\n" +
		"1:approach:player::mob:zombie:0\n" +
		"1:proxy:player::mob:zombie:3\n"
	cfg := writeFixture(t, "topsecret", "T1", taskCSV)
	log := writeLog(t, "Player Start Position (10,10)\n"+
		"ID | Name | Object ID | Type | Position | HP | Damage\n"+
		"zombie_1 | zombie | 17 | mob | (5,5) | 10 | 1\n"+
		"---\n"+
		"[0] Player position: (10,10); zombie_1 position: (5,5)\n"+
		"[1] Player position: (7,5)\n"+
		"[2] Session ended\n")

	chk, err := New(cfg)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	report, err := chk.Check("T1", 1, log)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if report.Result != 1 {
		t.Fatalf("result = %d, want 1", report.Result)
	}
}

func TestCheck_Win(t *testing.T) {
	taskCSV := "base:mob:zombie:5,5:0:0:\n" +
		"req:mob:zombie:1:3::\n" +
		"1:win::::::0\n"
	cfg := writeFixture(t, "topsecret", "T1", taskCSV)
	log := writeLog(t, zombieScene+
		"[100] Game Over: Win\n"+
		"[101] Session ended\n")

	chk, err := New(cfg)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	report, err := chk.Check("T1", 1, log)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if report.Result != 1 {
		t.Fatalf("result = %d, want 1", report.Result)
	}
}

func TestCheck_SignatureStability(t *testing.T) {
	taskCSV := zombieTask + "2:destroy:mob:zombie::::\n"
	cfg := writeFixture(t, "s", "T", taskCSV)
	log := writeLog(t, zombieScene+
		"[0] Player position: (4,5); zombie_1 position: (5,5)\n"+
		"[1] zombie_1 died\n"+
		"[2] Session ended\n")

	chk, err := New(cfg)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	report, err := chk.Check("T", 42, log)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if report.Result != 3 {
		t.Fatalf("result = %d, want 3", report.Result)
	}

	// sha256("s:T:42:3")
	want := "7f178b5f785858cd025af55e100aa5f1563199fbf2ff1347bc1c4782248f7fcf"
	if report.Code != want {
		t.Fatalf("code = %s, want %s", report.Code, want)
	}
}

func TestCheck_BadLog(t *testing.T) {
	cfg := writeFixture(t, "topsecret", "T1", zombieTask)
	log := writeLog(t, zombieScene+
		"[0] Player position: (1,)\n")

	chk, err := New(cfg)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	_, err = chk.Check("T1", 1, log)
	if !errors.Is(err, status.ErrFormat) {
		t.Fatalf("expected format error, got %v", err)
	}
}

func TestCheck_MissingSessionEnd(t *testing.T) {
	cfg := writeFixture(t, "topsecret", "T1", zombieTask)
	log := writeLog(t, zombieScene+
		"[0] Player position: (4,5); zombie_1 position: (5,5)\n")

	chk, err := New(cfg)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	report, err := chk.Check("T1", 1, log)
	if err != nil {
		t.Fatalf("expected no error on missing session end, got %v", err)
	}
	if report.Result != 1 {
		t.Fatalf("result = %d, want 1", report.Result)
	}
}

func TestCheck_NothingSatisfied(t *testing.T) {
	cfg := writeFixture(t, "topsecret", "T1", zombieTask)
	log := writeLog(t, zombieScene+
		"[0] Session ended\n")

	chk, err := New(cfg)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	report, err := chk.Check("T1", 1, log)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if report.Result != 0 {
		t.Fatalf("result = %d, want 0", report.Result)
	}
	if report.Code == "" {
		t.Fatalf("expected a signature for the valid zero result")
	}
}

func TestCheck_UnknownTask(t *testing.T) {
	cfg := writeFixture(t, "topsecret", "T1", zombieTask)
	log := writeLog(t, zombieScene)

	chk, err := New(cfg)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	_, err = chk.Check("T9", 1, log)
	if !errors.Is(err, status.ErrBadParameters) {
		t.Fatalf("expected bad parameters, got %v", err)
	}
}

func TestCheck_SceneValidationFailure(t *testing.T) {
	taskCSV := "base:mob:ghoul:::0:\n" + // wrong class for the logged scene
		"1:win:::::0\n"
	cfg := writeFixture(t, "topsecret", "T1", taskCSV)
	log := writeLog(t, zombieScene+"[0] Session ended\n")

	chk, err := New(cfg)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	_, err = chk.Check("T1", 1, log)
	if !errors.Is(err, status.ErrBadParameters) {
		t.Fatalf("expected bad parameters, got %v", err)
	}
}

func TestCheck_Idempotent(t *testing.T) {
	cfg := writeFixture(t, "topsecret", "T1", zombieTask)
	log := writeLog(t, zombieScene+
		"[0] Player position: (4,5); zombie_1 position: (5,5)\n"+
		"[1] Session ended\n")

	chk, err := New(cfg)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	first, err := chk.Check("T1", 7, log)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second, err := chk.Check("T1", 7, log)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if first.Result != second.Result || first.Code != second.Code {
		t.Fatalf("re-running the check changed the outcome: %+v vs %+v", first, second)
	}
}

func TestNew_EmptyPath(t *testing.T) {
	_, err := New("")
	if !errors.Is(err, status.ErrBadParameters) {
		t.Fatalf("expected bad parameters, got %v", err)
	}
}
