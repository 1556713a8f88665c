package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"ursulacheck/internal/checker"
	"ursulacheck/internal/config"
	"ursulacheck/internal/status"
	"ursulacheck/internal/store"
)

var checkVerbose bool

// errUsage marks a wrong positional argument count on the root command.
var errUsage = errors.New("usage: ursulacheck <config-file> <task-id> <salt> <log-file>")

func runCheck(cmd *cobra.Command, args []string) error {
	if len(args) != 4 {
		return errUsage
	}
	configFile, taskID, saltArg, logFile := args[0], args[1], args[2], args[3]

	salt, err := strconv.Atoi(saltArg)
	if err != nil {
		return fmt.Errorf("bad salt %q: %w", saltArg, status.ErrBadParameters)
	}

	chk, err := checker.New(configFile)
	if err != nil {
		return fmt.Errorf("cannot initialize the log checker: %w", err)
	}

	report, err := chk.Check(taskID, salt, logFile)
	if err != nil {
		fmt.Fprintf(os.Stdout, "Program checking error: %d\n", status.Of(err))
		fmt.Fprintln(os.Stdout, "Result code: 0")
		return err
	}

	fmt.Fprintln(os.Stdout, "Checking completed!")
	fmt.Fprintf(os.Stdout, "Result code: %d\n", report.Result)
	fmt.Fprintf(os.Stdout, "Code string: %s\n", report.Code)

	if checkVerbose && report.Matrix != "" {
		fmt.Fprintln(os.Stderr, "Condition matrix:")
		fmt.Fprint(os.Stderr, report.Matrix)
	}

	recordRun(report, logFile)
	return nil
}

// recordRun stores the completed check when ursulacheck.yaml configures a
// run-history store. Absence of the file disables recording; a failing
// store is a warning, never a check failure.
func recordRun(report *checker.Report, logFile string) {
	if _, err := os.Stat(config.DefaultPath); err != nil {
		return
	}
	cfg, err := config.Load(config.DefaultPath)
	if err != nil || cfg.Database.DSN == "" {
		return
	}

	ctx := context.Background()
	db, err := openStore(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open run history store: %v\n", err)
		return
	}
	defer db.Close(ctx)

	if err := db.EnsureSchema(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot prepare run history store: %v\n", err)
		return
	}
	if _, err := db.RecordRun(ctx, store.RunInput{
		Task:      report.Task,
		Salt:      report.Salt,
		Result:    int(report.Result),
		Signature: report.Code,
		LogFile:   logFile,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot record run: %v\n", err)
	}
}
