// SPDX-License-Identifier: MIT

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/bassgraph/controller"
)

var setSave bool

var setCmd = &cobra.Command{
	Use:   "set NAME=VALUE[ UNIT]...",
	Short: "Edit parameters and print what changed",
	Long: `Apply one or more edits, recompute the graph and print the edited
parameters followed by every parameter derived from them.

A bare number is taken in the parameter's current unit:

  bassgraph set Sd=150 "Xmax=0.5 cm"

With --save the result is written back to the defaults table.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)
	setCmd.Flags().BoolVar(&setSave, "save", false, "write the result back to the defaults table")
}

func runSet(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}

	var edited []string
	seen := make(map[string]bool)
	var affected []string
	for _, arg := range args {
		name, literal, err := controller.ParseAssignment(arg)
		if err != nil {
			return err
		}
		deps, err := s.Set(name, literal)
		if err != nil {
			return err
		}
		edited = append(edited, name)
		seen[name] = true
		affected = append(affected, deps...)
	}
	if err := s.Refresh(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, name := range edited {
		if err := printParam(s, out, name); err != nil {
			return err
		}
	}
	if len(affected) > 0 {
		fmt.Fprintln(out, "--")
	}
	for _, name := range affected {
		if seen[name] {
			continue
		}
		seen[name] = true
		if err := printParam(s, out, name); err != nil {
			return err
		}
	}

	if setSave {
		if cfg.DefaultsFile == "" {
			return errors.New("--save needs a defaults table (--defaults or defaults_file)")
		}
		return s.SaveDefaults(cfg.DefaultsFile)
	}

	return nil
}
