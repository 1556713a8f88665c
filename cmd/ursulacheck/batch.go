package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"ursulacheck/internal/checker"
	"ursulacheck/internal/textio"
)

func batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <config-file> <tests-csv>",
		Short: "Run a suite of expected-result checks from a CSV file",
		Long: `Runs every row of a colon-separated suite file of the form
task-id:expected-result:log-file against the given config, each with a
fresh random salt, and verifies both the result and its signature.`,
		Args: cobra.ExactArgs(2),
		RunE: runBatch,
	}
	return cmd
}

type batchRow struct {
	task     string
	expected int
	logFile  string
}

func runBatch(cmd *cobra.Command, args []string) error {
	chk, err := checker.New(args[0])
	if err != nil {
		return err
	}

	rows, err := readBatchFile(args[1])
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Testing (total %d):\n", len(rows))
	for _, row := range rows {
		salt := rand.Intn(2147483647) + 1
		fmt.Fprintf(os.Stdout, "Running checker %s %s with salt %d... ", row.task, row.logFile, salt)

		report, err := chk.Check(row.task, salt, row.logFile)
		if err != nil {
			if row.expected == 0 {
				fmt.Fprintln(os.Stdout, "OK")
				continue
			}
			fmt.Fprintln(os.Stdout, "FAILED")
			return fmt.Errorf("log %s: %w", row.logFile, err)
		}

		if int(report.Result) != row.expected {
			fmt.Fprintln(os.Stdout, "FAILED")
			return fmt.Errorf("log %s: result %d, expected %d", row.logFile, report.Result, row.expected)
		}
		if !chk.Verify(row.task, salt, report.Result, report.Code) {
			fmt.Fprintln(os.Stdout, "FAILED")
			return fmt.Errorf("log %s: signature mismatch", row.logFile)
		}
		fmt.Fprintln(os.Stdout, "OK")
	}
	fmt.Fprintln(os.Stdout, "Done!")
	return nil
}

// readBatchFile parses the suite: task:expected:logfile per line, other
// lines skipped.
func readBatchFile(path string) ([]batchRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening suite file: %w", err)
	}
	defer f.Close()

	var rows []batchRow
	sc := textio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Split(sc.Text(), ":")
		if len(fields) != 3 {
			continue
		}
		expected, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil {
			continue
		}
		rows = append(rows, batchRow{
			task:     fields[0],
			expected: expected,
			logFile:  strings.TrimSpace(fields[2]),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading suite file: %w", err)
	}
	return rows, nil
}
