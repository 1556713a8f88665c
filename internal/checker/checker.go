// Package checker is the library entry point: it loads a checker
// configuration once and evaluates gameplay logs against its tasks.
package checker

import (
	"fmt"
	"os"
	"strings"

	"ursulacheck/internal/evaluate"
	"ursulacheck/internal/gamelog"
	"ursulacheck/internal/scene"
	"ursulacheck/internal/signature"
	"ursulacheck/internal/status"
	"ursulacheck/internal/task"
)

// Checker holds the loaded configuration. It is immutable after New; all
// per-check state lives in the invocation, so one Checker can serve any
// number of sequential or concurrent checks.
type Checker struct {
	set *task.Set
}

// Report is the outcome of a successful check.
type Report struct {
	Task   string
	Salt   int
	Result byte
	Code   string
	Matrix string
}

// New loads the manifest at configPath and every task file it references.
func New(configPath string) (*Checker, error) {
	if configPath == "" {
		return nil, fmt.Errorf("config path is empty: %w", status.ErrBadParameters)
	}
	set, err := task.LoadManifest(configPath)
	if err != nil {
		return nil, err
	}
	return &Checker{set: set}, nil
}

// Tasks returns the loaded tasks in manifest order.
func (c *Checker) Tasks() []*task.Task {
	return c.set.Tasks
}

// Check replays the log at logPath against the named task and returns the
// result byte together with its signature code. On error the result is
// the zero sentinel and no code is produced.
func (c *Checker) Check(taskID string, salt int, logPath string) (*Report, error) {
	t := c.set.Find(taskID)
	if t == nil {
		return nil, fmt.Errorf("unknown task %q: %w", taskID, status.ErrBadParameters)
	}

	f, err := os.Open(logPath)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", logPath, status.ErrBadParameters)
	}
	defer f.Close()

	run := &runState{task: t}
	if err := gamelog.Replay(f, run); err != nil {
		return nil, fmt.Errorf("log %s: %w", logPath, err)
	}

	// A log that never produced a validated scene yields the empty result.
	var result byte
	if run.matrix != nil {
		result = run.matrix.Result()
	}

	return &Report{
		Task:   taskID,
		Salt:   salt,
		Result: result,
		Code:   signature.Code(c.set.Secret, taskID, salt, result),
		Matrix: run.renderMatrix(),
	}, nil
}

// Verify recomputes the signature for a claimed result and compares.
func (c *Checker) Verify(taskID string, salt int, result byte, code string) bool {
	return signature.Code(c.set.Secret, taskID, salt, result) == code
}

// runState is the per-invocation scratch driving one replay: the
// validated scene and the satisfaction matrix.
type runState struct {
	task    *task.Task
	objects []scene.Object
	matrix  *evaluate.Matrix
}

func (r *runState) SceneReady(objects []scene.Object) error {
	if err := scene.Validate(objects, r.task); err != nil {
		return err
	}
	r.objects = objects
	r.matrix = evaluate.NewMatrix(r.task.Conditions, len(objects))
	return nil
}

func (r *runState) Event(ev gamelog.Event, objects []scene.Object) error {
	r.matrix.Record(ev, objects)
	return nil
}

// renderMatrix formats the satisfaction grid with one column per scene
// object and one row per condition.
func (r *runState) renderMatrix() string {
	if r.matrix == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("     ")
	for i := range r.objects {
		label := r.objects[i].ID
		if r.objects[i].Type == task.Player {
			label = "PL"
		}
		fmt.Fprintf(&b, " %-10s", label)
	}
	b.WriteByte('\n')

	for i := 0; i < r.matrix.Rows(); i++ {
		fmt.Fprintf(&b, "  %d: ", r.task.Conditions[i].N)
		for k := range r.objects {
			mark := "0"
			if r.matrix.Cell(i, k) {
				mark = "1"
			}
			fmt.Fprintf(&b, " %-10s", mark)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
