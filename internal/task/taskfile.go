package task

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"ursulacheck/internal/geom"
	"ursulacheck/internal/status"
	"ursulacheck/internal/textio"
)

// Row discriminators and header prefixes of the task CSV format.
const (
	baseRowTag = "base"
	reqRowTag  = "req"

	headerIDPrefix  = "id"
	headerObjPrefix = "obj"
)

// taskFieldCount is the fixed column count of every data row.
const taskFieldCount = 7

// LoadTaskFile reads one task CSV. Rows are 7 colon-separated fields; the
// first field discriminates between base objects, object requirements and
// conditions. Header lines (prefix "id" or "obj") and blank lines are
// skipped. A task must declare between 1 and MaxConditions conditions.
func LoadTaskFile(path, name string) (*Task, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening task file %s: %w", path, status.ErrBadParameters)
	}
	defer f.Close()

	t := &Task{Name: name}
	lineNo := 0
	sc := textio.NewScanner(f)
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if strings.TrimSpace(line) == "" ||
			strings.HasPrefix(line, headerIDPrefix) ||
			strings.HasPrefix(line, headerObjPrefix) {
			continue
		}

		// Rows may pad unused trailing columns with extra colons; the
		// surplus collapses into the seventh field.
		fields := strings.SplitN(line, ":", taskFieldCount)
		if len(fields) != taskFieldCount {
			return nil, fmt.Errorf("%s:%d: expected %d fields, got %d: %w",
				path, lineNo, taskFieldCount, len(fields), status.ErrBadParameters)
		}

		switch fields[0] {
		case baseRowTag:
			if err := t.addBaseObject(fields); err != nil {
				return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
			}
		case reqRowTag:
			if err := t.addRequirement(fields); err != nil {
				return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
			}
		default:
			if err := t.addCondition(fields); err != nil {
				return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading task file %s: %w", path, status.ErrBadParameters)
	}

	if len(t.Conditions) == 0 {
		return nil, fmt.Errorf("task file %s: no conditions: %w", path, status.ErrBadParameters)
	}
	if len(t.Conditions) > MaxConditions {
		return nil, fmt.Errorf("task file %s: %d conditions exceed the maximum of %d: %w",
			path, len(t.Conditions), MaxConditions, status.ErrBadParameters)
	}

	return t, nil
}

// base:type:class:x,y-or-empty:hp:dmg: — the trailing field is an empty
// sentinel and is not inspected.
func (t *Task) addBaseObject(fields []string) error {
	typ, err := ParseObjectType(fields[1])
	if err != nil {
		return err
	}

	obj := BaseObject{Type: typ, Class: textio.Clip(fields[2])}
	if fields[3] != "" {
		pos, err := geom.ParsePoint(fields[3])
		if err != nil {
			return fmt.Errorf("base object position: %w", status.ErrBadParameters)
		}
		obj.Pos = pos
		obj.HasPos = true
	}
	if obj.HP, err = optionalFloat(fields[4]); err != nil {
		return fmt.Errorf("base object hp %q: %w", fields[4], status.ErrBadParameters)
	}
	if obj.Damage, err = optionalFloat(fields[5]); err != nil {
		return fmt.Errorf("base object damage %q: %w", fields[5], status.ErrBadParameters)
	}

	t.BaseObjects = append(t.BaseObjects, obj)
	return nil
}

// req:type:class:minimum:limit:: — the last two fields must be empty.
func (t *Task) addRequirement(fields []string) error {
	typ, err := ParseObjectType(fields[1])
	if err != nil {
		return err
	}
	minimum, err := parseCount(fields[3])
	if err != nil {
		return fmt.Errorf("requirement minimum %q: %w", fields[3], status.ErrBadParameters)
	}
	limit, err := parseCount(fields[4])
	if err != nil {
		return fmt.Errorf("requirement limit %q: %w", fields[4], status.ErrBadParameters)
	}
	if limit < minimum {
		return fmt.Errorf("requirement limit %d below minimum %d: %w", limit, minimum, status.ErrBadParameters)
	}
	if fields[5] != "" || fields[6] != "" {
		return fmt.Errorf("requirement row has trailing fields: %w", status.ErrBadParameters)
	}

	t.Requirements = append(t.Requirements, Requirement{
		Type:    typ,
		Class:   textio.Clip(fields[2]),
		Minimum: minimum,
		Limit:   limit,
	})
	return nil
}

// n:kind:prim_type:prim_class:sec_type:sec_class:arg — a row repeating the
// previous ordinal becomes that condition's AND branch; otherwise ordinals
// must strictly increase.
func (t *Task) addCondition(fields []string) error {
	n, err := strconv.Atoi(fields[0])
	if err != nil || n <= 0 || n > 255 {
		return fmt.Errorf("bad condition number %q: %w", fields[0], status.ErrBadParameters)
	}

	cond := Condition{N: uint8(n)}
	if cond.Kind, err = ParseConditionKind(fields[1]); err != nil {
		return err
	}
	if fields[2] != "" {
		if cond.PrimaryType, err = ParseObjectType(fields[2]); err != nil {
			return err
		}
	}
	cond.PrimaryClass = textio.Clip(fields[3])
	if fields[4] != "" {
		if cond.SecondaryType, err = ParseObjectType(fields[4]); err != nil {
			return err
		}
	}
	cond.SecondaryClass = textio.Clip(fields[5])
	if cond.Arg, err = optionalFloat(strings.Trim(fields[6], ":")); err != nil {
		return fmt.Errorf("bad condition argument %q: %w", fields[6], status.ErrBadParameters)
	}

	if len(t.Conditions) > 0 {
		prev := &t.Conditions[len(t.Conditions)-1]
		if cond.N == prev.N {
			if prev.Second != nil {
				return fmt.Errorf("condition %d repeated more than twice: %w", n, status.ErrBadParameters)
			}
			prev.Second = &cond
			return nil
		}
		if cond.N < prev.N {
			return fmt.Errorf("condition numbers must increase: %d after %d: %w", n, prev.N, status.ErrBadParameters)
		}
	}

	t.Conditions = append(t.Conditions, cond)
	return nil
}

func optionalFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func parseCount(s string) (uint8, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 || n > 255 {
		return 0, fmt.Errorf("count %d out of range", n)
	}
	return uint8(n), nil
}
