package textio

import (
	"strings"
	"testing"
)

func TestNewScanner_SplitsLines(t *testing.T) {
	sc := NewScanner(strings.NewReader("one\ntwo\nthree"))
	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(lines) != 3 || lines[2] != "three" {
		t.Fatalf("unexpected lines: %#v", lines)
	}
}

func TestNewScanner_LongLine(t *testing.T) {
	sc := NewScanner(strings.NewReader(strings.Repeat("x", MaxLineLen+1)))
	for sc.Scan() {
	}
	if sc.Err() == nil {
		t.Fatalf("expected an error for an overlong line")
	}
}

func TestClip(t *testing.T) {
	if got := Clip("short"); got != "short" {
		t.Fatalf("Clip changed a short string: %q", got)
	}
	long := strings.Repeat("y", MaxLineLen*2)
	if got := Clip(long); len(got) != MaxLineLen-1 {
		t.Fatalf("Clip length = %d, want %d", len(got), MaxLineLen-1)
	}
}
