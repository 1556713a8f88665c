package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ursulacheck/internal/checker"
)

func tasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks <config-file>",
		Short: "Print the tasks defined in a checker config",
		Args:  cobra.ExactArgs(1),
		RunE:  runTasks,
	}
	return cmd
}

func runTasks(cmd *cobra.Command, args []string) error {
	chk, err := checker.New(args[0])
	if err != nil {
		return err
	}

	tasks := chk.Tasks()
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stdout, "No tasks found.")
		return nil
	}

	for _, t := range tasks {
		fmt.Fprint(os.Stdout, t.Describe())
	}
	return nil
}
