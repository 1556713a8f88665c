package task

import (
	"fmt"
	"strings"
)

// Describe renders a condition in the arrow notation used by the tasks
// listing, e.g. "obj.proximity: (player, )-[2.00]-(mob, zombie)".
func (c *Condition) Describe() string {
	switch c.Kind {
	case Proximity:
		return fmt.Sprintf("obj.proximity: (%s, %s)-[%.2f]-(%s, %s)",
			c.PrimaryType, c.PrimaryClass, c.Arg, c.SecondaryType, c.SecondaryClass)
	case Approaching:
		return fmt.Sprintf("obj.approaching: (%s, %s)->(%s, %s)",
			c.PrimaryType, c.PrimaryClass, c.SecondaryType, c.SecondaryClass)
	case Retiring:
		return fmt.Sprintf("obj.retiring: (%s, %s)->(%s, %s)",
			c.PrimaryType, c.PrimaryClass, c.SecondaryType, c.SecondaryClass)
	case Moving:
		return fmt.Sprintf("obj.moving: (%s, %s)", c.PrimaryType, c.PrimaryClass)
	case GameWon:
		return "game won"
	case Attacked:
		return fmt.Sprintf("obj.attacked: (%s, %s)-{%.2f}->(%s, %s)",
			c.PrimaryType, c.PrimaryClass, c.Arg, c.SecondaryType, c.SecondaryClass)
	case Damaged:
		return fmt.Sprintf("obj.damaged: -{%.2f}->(%s, %s)", c.Arg, c.PrimaryType, c.PrimaryClass)
	case Destroyed:
		return fmt.Sprintf("obj.destroyed: (%s, %s)", c.PrimaryType, c.PrimaryClass)
	default:
		return fmt.Sprintf("unknown condition kind %d", int(c.Kind))
	}
}

// Describe renders the full task definition, one element per line.
func (t *Task) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Task %s:\n", t.Name)

	if len(t.BaseObjects) > 0 {
		b.WriteString("  Base objects:\n")
		for i, obj := range t.BaseObjects {
			pos := "n/d"
			if obj.HasPos {
				pos = fmt.Sprintf("(%.2f, %.2f)", obj.Pos.X, obj.Pos.Y)
			}
			fmt.Fprintf(&b, "    %d. type: %s, class: %s, pos: %s, hp: %.2f, dmg: %.2f\n",
				i+1, obj.Type, obj.Class, pos, obj.HP, obj.Damage)
		}
	}

	if len(t.Requirements) > 0 {
		b.WriteString("  Object requirements:\n")
		for _, req := range t.Requirements {
			fmt.Fprintf(&b, "    type: %s, class: %s, minimum: %d, limit: %d\n",
				req.Type, req.Class, req.Minimum, req.Limit)
		}
	}

	b.WriteString("  Conditions:\n")
	for i := range t.Conditions {
		cond := &t.Conditions[i]
		fmt.Fprintf(&b, "    %d. %s\n", cond.N, cond.Describe())
		if cond.Second != nil {
			fmt.Fprintf(&b, "       AND: %s\n", cond.Second.Describe())
		}
	}

	return b.String()
}
