// Package scene holds the runtime object set materialized from a gameplay
// log and its validation against a task's scene expectations.
package scene

import (
	"fmt"

	"ursulacheck/internal/geom"
	"ursulacheck/internal/status"
	"ursulacheck/internal/task"
)

// Object is one scene member. Position events move Pos while keeping the
// previous value in PrevPos. The synthesized Player has empty ID and
// Class and both positions at the logged start position.
type Object struct {
	Type    task.ObjectType
	Class   string
	ID      string
	Pos     geom.Point
	PrevPos geom.Point
	HP      float64
	Damage  float64
}

// Matches reports whether the object satisfies a (type, class) selector.
// The Player carries no class and matches on type alone.
func (o *Object) Matches(typ task.ObjectType, class string) bool {
	if o.Type != typ {
		return false
	}
	return o.Type == task.Player || o.Class == class
}

// Validate checks the materialized scene against the task's base objects
// and requirements. Matching state is kept in local scratch so a task can
// drive any number of checks.
//
// Base objects match greedily: scanning objects in scene order, every
// still-unvalidated base whose constraints the object meets is marked
// validated. Requirements count exact (type, class) occurrences.
func Validate(objects []Object, t *task.Task) error {
	validated := make([]bool, len(t.BaseObjects))
	found := make([]int, len(t.Requirements))

	for i := range objects {
		obj := &objects[i]
		for j := range t.BaseObjects {
			if !validated[j] && baseMatches(&t.BaseObjects[j], obj) {
				validated[j] = true
			}
		}
		for j := range t.Requirements {
			req := &t.Requirements[j]
			if req.Type == obj.Type && req.Class == obj.Class {
				found[j]++
			}
		}
	}

	for j, ok := range validated {
		if !ok {
			base := &t.BaseObjects[j]
			return fmt.Errorf("scene is missing base object type %s class %s: %w",
				base.Type, base.Class, status.ErrBadParameters)
		}
	}
	for j, n := range found {
		req := &t.Requirements[j]
		if n < int(req.Minimum) || n > int(req.Limit) {
			return fmt.Errorf("scene has %d objects of type %s class %s, want %d..%d: %w",
				n, req.Type, req.Class, req.Minimum, req.Limit, status.ErrBadParameters)
		}
	}

	return nil
}

func baseMatches(base *task.BaseObject, obj *Object) bool {
	if base.Type != obj.Type {
		return false
	}
	if base.Class != "" && (obj.Class == "" || base.Class != obj.Class) {
		return false
	}
	if base.HasPos && !geom.Near(obj.Pos, base.Pos) {
		return false
	}
	if base.HP != 0 && base.HP != obj.HP {
		return false
	}
	if base.Damage != 0 && base.Damage != obj.Damage {
		return false
	}
	return true
}
