// Package task holds the checker's task model and the loaders for the
// top-level manifest and the per-task CSV files.
package task

import (
	"fmt"

	"ursulacheck/internal/geom"
	"ursulacheck/internal/status"
)

// MaxConditions bounds the number of distinct condition ordinals per task;
// the result byte carries one bit per condition with the high bit reserved.
const MaxConditions = 7

// ObjectType classifies scene objects. The zero value is Player, which is
// also what an omitted type field in a condition row resolves to.
type ObjectType int

const (
	Player ObjectType = iota
	Mob
	IntObject
	Static
)

var objectTypeNames = map[ObjectType]string{
	Player:    "player",
	Mob:       "mob",
	IntObject: "intobj",
	Static:    "static",
}

func (t ObjectType) String() string {
	if name, ok := objectTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("objecttype(%d)", int(t))
}

// ParseObjectType maps the configuration tokens player|mob|intobj|static.
func ParseObjectType(s string) (ObjectType, error) {
	switch s {
	case "player":
		return Player, nil
	case "mob":
		return Mob, nil
	case "intobj":
		return IntObject, nil
	case "static":
		return Static, nil
	}
	return 0, fmt.Errorf("unknown object type %q: %w", s, status.ErrBadParameters)
}

// ConditionKind enumerates the behavioral predicates a task can demand.
type ConditionKind int

const (
	Proximity ConditionKind = iota
	Approaching
	Retiring
	Moving
	GameWon
	Attacked
	Damaged
	Destroyed
)

var conditionKindNames = map[ConditionKind]string{
	Proximity:   "proxy",
	Approaching: "approach",
	Retiring:    "retire",
	Moving:      "move",
	GameWon:     "win",
	Attacked:    "attack",
	Damaged:     "damage",
	Destroyed:   "destroy",
}

func (k ConditionKind) String() string {
	if name, ok := conditionKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("conditionkind(%d)", int(k))
}

// ParseConditionKind maps the configuration tokens of the closed kind set.
func ParseConditionKind(s string) (ConditionKind, error) {
	switch s {
	case "proxy":
		return Proximity, nil
	case "approach":
		return Approaching, nil
	case "retire":
		return Retiring, nil
	case "move":
		return Moving, nil
	case "win":
		return GameWon, nil
	case "attack":
		return Attacked, nil
	case "damage":
		return Damaged, nil
	case "destroy":
		return Destroyed, nil
	}
	return 0, fmt.Errorf("unknown condition kind %q: %w", s, status.ErrBadParameters)
}

// BaseObject is an object that must exist in the scene with the stated
// partial attributes. An empty class, an unset position, or a zero hp or
// damage leaves that attribute unconstrained.
type BaseObject struct {
	Type   ObjectType
	Class  string
	Pos    geom.Point
	HasPos bool
	HP     float64
	Damage float64
}

// Requirement is a cardinality constraint on scene objects of one
// (type, class) pair: Minimum <= count <= Limit.
type Requirement struct {
	Type    ObjectType
	Class   string
	Minimum uint8
	Limit   uint8
}

// Condition is one behavioral predicate. Second, when present, is an
// AND-combined predicate evaluated against world state only; it never
// nests further.
type Condition struct {
	N              uint8
	Kind           ConditionKind
	PrimaryType    ObjectType
	PrimaryClass   string
	SecondaryType  ObjectType
	SecondaryClass string
	Arg            float64
	Second         *Condition
}

// Task is a named bundle of scene expectations and conditions.
type Task struct {
	Name         string
	BaseObjects  []BaseObject
	Requirements []Requirement
	Conditions   []Condition
}

// Set is the loaded checker configuration: the signing secret plus every
// task from the manifest, in encounter order. Immutable after load.
type Set struct {
	Secret string
	Tasks  []*Task
}

// Find returns the task with the given name, or nil. Lookup is linear;
// manifests hold a handful of tasks.
func (s *Set) Find(name string) *Task {
	for _, t := range s.Tasks {
		if t.Name == name {
			return t
		}
	}
	return nil
}
