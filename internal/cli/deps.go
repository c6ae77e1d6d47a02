// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	depsDepth int
	depsTo    string
)

var depsCmd = &cobra.Command{
	Use:   "deps NAME",
	Short: "Print the parameters downstream of NAME",
	Long: `List every parameter that goes stale when NAME is edited, one line per
distance in formulas. With --to, print one shortest chain from NAME to
that parameter instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runDeps,
}

func init() {
	rootCmd.AddCommand(depsCmd)
	depsCmd.Flags().IntVar(&depsDepth, "depth", 0, "stop after this many formulas (0: no limit)")
	depsCmd.Flags().StringVar(&depsTo, "to", "", "print the chain from NAME to this parameter")
}

func runDeps(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if depsTo != "" {
		path, err := s.Path(args[0], depsTo)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, strings.Join(path, " -> "))

		return nil
	}

	layers, err := s.Layers(args[0], depsDepth)
	if err != nil {
		return err
	}
	for d, layer := range layers[1:] {
		fmt.Fprintf(out, "%d: %s\n", d+1, strings.Join(layer, " "))
	}
	if len(layers) == 1 {
		fmt.Fprintln(out, "no dependents")
	}

	return nil
}
