package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a checker config and tool configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit()
		},
	}
	return cmd
}

func runInit() error {
	files := map[string]string{
		"ursulacheck.yaml": "version: 1\nmanifest: default.cfg\n\ndatabase:\n  dsn: sqlite://ursulacheck.db\n",
		"default.cfg":      "secret:changeme\nT1:task1.csv\n",
		"task1.csv": "id:cond.type:pri obj type:pri obj class:sec obj type:sec obj class:arg\n" +
			"obj:type:class:position:hp:dmg:\n" +
			"base:mob:zombie:5,5:0:0:\n" +
			"req:mob:zombie:1:3::\n" +
			"1:proxy:player::mob:zombie:2.0\n",
	}

	for path := range files {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}
	for path, contents := range files {
		if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}

	fmt.Fprintln(os.Stdout, "Scaffolded ursulacheck.yaml, default.cfg and task1.csv.")
	return nil
}
