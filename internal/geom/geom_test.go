package geom

import (
	"errors"
	"math"
	"testing"

	"ursulacheck/internal/status"
)

func TestParsePoint(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Point
	}{
		{name: "bare pair", input: "4,5", want: Point{X: 4, Y: 5}},
		{name: "parenthesized", input: "(4,5)", want: Point{X: 4, Y: 5}},
		{name: "spaces inside", input: "( 4.5 , -2.25 )", want: Point{X: 4.5, Y: -2.25}},
		{name: "leading whitespace", input: "   (10,10)", want: Point{X: 10, Y: 10}},
		{name: "trailing whitespace", input: "(7,5)  ", want: Point{X: 7, Y: 5}},
		{name: "fractional", input: "0.001,0.002", want: Point{X: 0.001, Y: 0.002}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePoint(tt.input)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got != tt.want {
				t.Fatalf("ParsePoint(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParsePoint_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "no comma", input: "(45)"},
		{name: "empty y", input: "(1,)"},
		{name: "empty x", input: "(,1)"},
		{name: "garbage x", input: "(a,1)"},
		{name: "garbage y", input: "(1,b)"},
		{name: "empty string", input: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePoint(tt.input)
			if !errors.Is(err, status.ErrFormat) {
				t.Fatalf("expected format error, got %v", err)
			}
		})
	}
}

func TestDist(t *testing.T) {
	got := Dist(Point{X: 10, Y: 10}, Point{X: 5, Y: 5})
	want := math.Sqrt(50)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("Dist = %v, want %v", got, want)
	}
}

func TestNear(t *testing.T) {
	a := Point{X: 5, Y: 5}
	if !Near(a, Point{X: 5.0005, Y: 5}) {
		t.Fatalf("expected points within delta to be near")
	}
	if Near(a, Point{X: 5.01, Y: 5}) {
		t.Fatalf("expected points beyond delta not to be near")
	}
}
