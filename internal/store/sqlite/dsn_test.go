package sqlite

import "testing"

func TestParseDSN(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "memory", input: "sqlite://:memory:", want: ":memory:"},
		{name: "absolute", input: "sqlite:///var/lib/runs.db", want: "/var/lib/runs.db"},
		{name: "explicit relative", input: "sqlite://./runs.db", want: "./runs.db"},
		{name: "bare relative", input: "sqlite://runs.db", want: "./runs.db"},
		{name: "with query", input: "sqlite://runs.db?mode=ro", want: "./runs.db?mode=ro"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDSN(tt.input)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got != tt.want {
				t.Fatalf("parseDSN(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDSN_WrongScheme(t *testing.T) {
	if _, err := parseDSN("postgres://localhost/runs"); err == nil {
		t.Fatalf("expected an error for a non-sqlite scheme")
	}
}
