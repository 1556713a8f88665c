// Package evaluate tests task conditions against scene state and log
// events and aggregates satisfactions into the condition × object matrix
// that yields the result byte.
package evaluate

import (
	"ursulacheck/internal/gamelog"
	"ursulacheck/internal/geom"
	"ursulacheck/internal/scene"
	"ursulacheck/internal/task"
)

// worldOnly is the event an AND branch is evaluated against: conditions in
// second position read the current world state, never the event payload.
var worldOnly = gamelog.Event{Kind: gamelog.Tick, Primary: -1, Secondary: -1}

// Test evaluates one condition. It returns whether the condition matched
// and the index of the object credited with it. When an AND branch is
// present both predicates must hold and the branch supplies the credited
// actor, since only world-state scans can match in second position.
func Test(cond *task.Condition, objects []scene.Object, ev gamelog.Event) (bool, int) {
	ok, actor := testOne(cond, objects, ev)
	if !ok {
		return false, 0
	}
	if cond.Second != nil {
		ok, actor = testOne(cond.Second, objects, worldOnly)
		if !ok {
			return false, 0
		}
	}
	return true, actor
}

func testOne(cond *task.Condition, objects []scene.Object, ev gamelog.Event) (bool, int) {
	switch cond.Kind {
	case task.Proximity:
		return scanPairs(cond, objects, func(a, b *scene.Object) bool {
			return geom.Dist(a.Pos, b.Pos) <= cond.Arg
		})

	case task.Approaching:
		return scanPairs(cond, objects, func(a, b *scene.Object) bool {
			return geom.Dist(a.Pos, b.Pos) < geom.Dist(a.PrevPos, b.PrevPos)
		})

	case task.Retiring:
		return scanPairs(cond, objects, func(a, b *scene.Object) bool {
			return geom.Dist(a.Pos, b.Pos) > geom.Dist(a.PrevPos, b.PrevPos)
		})

	case task.Moving:
		for i := range objects {
			obj := &objects[i]
			if obj.Matches(cond.PrimaryType, cond.PrimaryClass) && geom.Dist(obj.Pos, obj.PrevPos) > 0 {
				return true, i
			}
		}
		return false, 0

	case task.Attacked:
		if ev.Primary < 0 || ev.Secondary < 0 {
			return false, 0
		}
		if objects[ev.Primary].Matches(cond.PrimaryType, cond.PrimaryClass) &&
			objects[ev.Secondary].Matches(cond.SecondaryType, cond.SecondaryClass) &&
			cond.Arg >= ev.Damage {
			return true, ev.Primary
		}
		return false, 0

	case task.Damaged:
		if ev.Primary < 0 {
			return false, 0
		}
		if objects[ev.Primary].Matches(cond.PrimaryType, cond.PrimaryClass) && cond.Arg >= ev.Damage {
			return true, ev.Primary
		}
		return false, 0

	case task.Destroyed:
		if ev.Primary < 0 {
			return false, 0
		}
		if objects[ev.Primary].Matches(cond.PrimaryType, cond.PrimaryClass) {
			return true, ev.Primary
		}
		return false, 0

	case task.GameWon:
		return ev.Kind == gamelog.Won, 0

	default:
		return false, 0
	}
}

// scanPairs searches ordered pairs of distinct objects where the first
// matches the condition's primary selector and the second its secondary
// selector; the first is credited.
func scanPairs(cond *task.Condition, objects []scene.Object, rel func(a, b *scene.Object) bool) (bool, int) {
	for i := range objects {
		a := &objects[i]
		if !a.Matches(cond.PrimaryType, cond.PrimaryClass) {
			continue
		}
		for j := range objects {
			if i == j {
				continue
			}
			b := &objects[j]
			if b.Matches(cond.SecondaryType, cond.SecondaryClass) && rel(a, b) {
				return true, i
			}
		}
	}
	return false, 0
}

// Matrix is the condition × object satisfaction grid. Cells only ever
// transition from unset to set.
type Matrix struct {
	conds []task.Condition
	cells [][]bool
}

// NewMatrix sizes the grid for a task's conditions over a scene.
func NewMatrix(conds []task.Condition, objectCount int) *Matrix {
	cells := make([][]bool, len(conds))
	for i := range cells {
		cells[i] = make([]bool, objectCount)
	}
	return &Matrix{conds: conds, cells: cells}
}

// Record evaluates every condition against the event, in ordinal order,
// and credits matches under the later-conditions-dominate rule: a cell is
// written only while no higher-numbered condition is already credited to
// the same object. A game-won match credits every object, each under the
// same rule.
func (m *Matrix) Record(ev gamelog.Event, objects []scene.Object) {
	for i := range m.conds {
		cond := &m.conds[i]
		ok, actor := Test(cond, objects, ev)
		if !ok {
			continue
		}
		if cond.Kind == task.GameWon {
			for k := range objects {
				if !m.laterSatisfied(i, k) {
					m.cells[i][k] = true
				}
			}
		} else if !m.laterSatisfied(i, actor) {
			m.cells[i][actor] = true
		}
	}
}

func (m *Matrix) laterSatisfied(i, k int) bool {
	for j := i + 1; j < len(m.cells); j++ {
		if m.cells[j][k] {
			return true
		}
	}
	return false
}

// Result folds the matrix into the result byte: bit i is the OR of row i.
// The high bit is reserved and stays clear, since a loaded task carries at
// most task.MaxConditions (7) condition rows.
func (m *Matrix) Result() byte {
	var res byte
	for i, row := range m.cells {
		for _, set := range row {
			if set {
				res |= 1 << i
				break
			}
		}
	}
	return res
}

// Cell reports one satisfaction cell; the matrix dump uses it.
func (m *Matrix) Cell(i, k int) bool {
	return m.cells[i][k]
}

// Rows returns the number of condition rows.
func (m *Matrix) Rows() int { return len(m.cells) }
