// Package geom holds the planar geometry shared by the task model and the
// log reader: points, distances and the engine's coordinate syntax.
package geom

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"ursulacheck/internal/status"
)

// Delta is the tolerance used when comparing logged positions against
// positions predefined in a task configuration.
const Delta = 0.001

type Point struct {
	X, Y float64
}

// Dist returns the Euclidean distance between two points.
func Dist(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Near reports whether two points coincide within Delta.
func Near(a, b Point) bool {
	return Dist(a, b) <= Delta
}

// ParsePoint parses the engine's coordinate syntax: an optional leading
// "(" and trailing ")" around two comma-separated floats, with
// surrounding whitespace ignored. Both halves must parse.
func ParsePoint(s string) (Point, error) {
	s = strings.TrimLeft(s, " \t(")
	s = strings.TrimRight(s, " \t)")

	x, y, ok := strings.Cut(s, ",")
	if !ok {
		return Point{}, fmt.Errorf("coordinates %q: missing comma: %w", s, status.ErrFormat)
	}

	px, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
	if err != nil {
		return Point{}, fmt.Errorf("coordinates %q: bad x: %w", s, status.ErrFormat)
	}
	py, err := strconv.ParseFloat(strings.TrimSpace(y), 64)
	if err != nil {
		return Point{}, fmt.Errorf("coordinates %q: bad y: %w", s, status.ErrFormat)
	}

	return Point{X: px, Y: py}, nil
}
