package mcp

import (
	"context"
	"fmt"
	"time"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"ursulacheck/internal/store"
	"ursulacheck/internal/task"
)

type CheckLogInput struct {
	Task    string `json:"task" jsonschema:"task identifier from the checker config"`
	Salt    int    `json:"salt" jsonschema:"caller-chosen salt bound into the signature"`
	LogPath string `json:"log_path" jsonschema:"path of the gameplay log to check"`
}

type CheckLogOutput struct {
	Result    int    `json:"result"`
	Signature string `json:"signature"`
}

type ListTasksInput struct{}

type TaskSummaryOutput struct {
	Name         string `json:"name"`
	BaseObjects  int    `json:"base_objects"`
	Requirements int    `json:"requirements"`
	Conditions   int    `json:"conditions"`
}

type ListTasksOutput struct {
	Tasks []TaskSummaryOutput `json:"tasks"`
}

type GetTaskInput struct {
	Name string `json:"name" jsonschema:"task identifier"`
}

type GetTaskOutput struct {
	Name       string   `json:"name"`
	Conditions []string `json:"conditions"`
	Definition string   `json:"definition"`
}

type ListRunsInput struct {
	Task  string `json:"task,omitempty" jsonschema:"restrict to one task"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of runs"`
}

type RunOutput struct {
	ID        string `json:"id"`
	Task      string `json:"task"`
	Salt      int    `json:"salt"`
	Result    int    `json:"result"`
	Signature string `json:"signature"`
	LogFile   string `json:"log_file"`
	CreatedAt string `json:"created_at"`
}

type ListRunsOutput struct {
	Runs []RunOutput `json:"runs"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "check_log",
		Description: "Evaluate a gameplay log against a task and return the signed result",
	}, s.handleCheckLog)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_tasks",
		Description: "List the tasks loaded from the checker config",
	}, s.handleListTasks)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_task",
		Description: "Return one task's scene expectations and conditions",
	}, s.handleGetTask)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_runs",
		Description: "List recorded check runs",
	}, s.handleListRuns)
}

func (s *Server) handleCheckLog(ctx context.Context, req *sdk.CallToolRequest, input CheckLogInput) (*sdk.CallToolResult, CheckLogOutput, error) {
	if input.Task == "" {
		return nil, CheckLogOutput{}, fmt.Errorf("task is required")
	}
	if input.LogPath == "" {
		return nil, CheckLogOutput{}, fmt.Errorf("log_path is required")
	}

	report, err := s.chk.Check(input.Task, input.Salt, input.LogPath)
	if err != nil {
		return nil, CheckLogOutput{}, err
	}

	if s.db != nil {
		if _, err := s.db.RecordRun(ctx, store.RunInput{
			Task:      report.Task,
			Salt:      report.Salt,
			Result:    int(report.Result),
			Signature: report.Code,
			LogFile:   input.LogPath,
		}); err != nil {
			return nil, CheckLogOutput{}, fmt.Errorf("recording run: %w", err)
		}
	}

	return nil, CheckLogOutput{Result: int(report.Result), Signature: report.Code}, nil
}

func (s *Server) handleListTasks(ctx context.Context, req *sdk.CallToolRequest, input ListTasksInput) (*sdk.CallToolResult, ListTasksOutput, error) {
	tasks := s.chk.Tasks()
	output := make([]TaskSummaryOutput, 0, len(tasks))
	for _, t := range tasks {
		output = append(output, taskSummaryOutput(t))
	}
	return nil, ListTasksOutput{Tasks: output}, nil
}

func (s *Server) handleGetTask(ctx context.Context, req *sdk.CallToolRequest, input GetTaskInput) (*sdk.CallToolResult, GetTaskOutput, error) {
	if input.Name == "" {
		return nil, GetTaskOutput{}, fmt.Errorf("name is required")
	}
	for _, t := range s.chk.Tasks() {
		if t.Name != input.Name {
			continue
		}
		conditions := make([]string, 0, len(t.Conditions))
		for i := range t.Conditions {
			conditions = append(conditions, t.Conditions[i].Describe())
		}
		return nil, GetTaskOutput{
			Name:       t.Name,
			Conditions: conditions,
			Definition: t.Describe(),
		}, nil
	}
	return nil, GetTaskOutput{}, fmt.Errorf("task not found")
}

func (s *Server) handleListRuns(ctx context.Context, req *sdk.CallToolRequest, input ListRunsInput) (*sdk.CallToolResult, ListRunsOutput, error) {
	if s.db == nil {
		return nil, ListRunsOutput{}, fmt.Errorf("no run-history store configured")
	}
	runs, err := s.db.ListRuns(ctx, input.Task, input.Limit)
	if err != nil {
		return nil, ListRunsOutput{}, err
	}

	output := make([]RunOutput, 0, len(runs))
	for _, run := range runs {
		output = append(output, runOutput(run))
	}
	return nil, ListRunsOutput{Runs: output}, nil
}

func taskSummaryOutput(t *task.Task) TaskSummaryOutput {
	return TaskSummaryOutput{
		Name:         t.Name,
		BaseObjects:  len(t.BaseObjects),
		Requirements: len(t.Requirements),
		Conditions:   len(t.Conditions),
	}
}

func runOutput(run store.Run) RunOutput {
	return RunOutput{
		ID:        run.ID,
		Task:      run.Task,
		Salt:      run.Salt,
		Result:    run.Result,
		Signature: run.Signature,
		LogFile:   run.LogFile,
		CreatedAt: run.CreatedAt.Format(time.RFC3339),
	}
}
