// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/bassgraph/dfs"
)

var cyclesOrder bool

var cyclesCmd = &cobra.Command{
	Use:   "cycles",
	Short: "Print dependency cycles",
	Long: `List every simple dependency cycle among the parameters. With --order,
also print the order in which a full refresh visits them.`,
	Args: cobra.NoArgs,
	RunE: runCycles,
}

func init() {
	rootCmd.AddCommand(cyclesCmd)
	cyclesCmd.Flags().BoolVar(&cyclesOrder, "order", false, "print the refresh order")
}

func runCycles(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	has, cycles, err := dfs.DetectCycles(s.Graph())
	if err != nil {
		return err
	}
	if !has {
		fmt.Fprintln(out, "no cycles")
	}
	for _, c := range cycles {
		fmt.Fprintln(out, strings.Join(c, " -> "))
	}

	if cyclesOrder {
		order, _, err := dfs.EvaluationOrder(s.Graph(), dfs.WithCancelContext(cmd.Context()))
		if err != nil {
			return err
		}
		fmt.Fprintln(out, strings.Join(order, " "))
	}

	return nil
}
