package main

import (
	"os"

	"github.com/spf13/cobra"

	"ursulacheck/internal/status"
)

func main() {
	root := &cobra.Command{
		Use:   "ursulacheck <config-file> <task-id> <salt> <log-file>",
		Short: "Ursula game engine log checker",
		Args:  cobra.ArbitraryArgs,
		RunE:  runCheck,
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.SilenceUsage = true
	root.Flags().BoolVar(&checkVerbose, "verbose", false, "Dump the condition matrix to stderr")
	root.AddCommand(tasksCmd())
	root.AddCommand(batchCmd())
	root.AddCommand(historyCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(initCmd())
	root.AddCommand(versionCmd())
	if err := root.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error chain to the process exit code: 99 for a wrong
// argument count on the root command, otherwise the checker status code.
func exitCode(err error) int {
	if err == errUsage {
		return 99
	}
	return int(status.Of(err))
}
