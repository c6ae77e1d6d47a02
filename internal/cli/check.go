// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/bassgraph/controller"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report stale and out-of-range parameters",
	Long: `Refresh the graph, then list every parameter that is still invalid or
lies outside its bounds. Exits 1 when anything is reported.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	invalid := s.Invalid()
	for _, name := range invalid {
		fmt.Fprintf(out, "invalid: %s\n", name)
	}
	outside := s.OutOfRange()
	for _, p := range outside {
		fmt.Fprintf(out, "out of range: %s not in [%g, %g] %s\n", p, p.Min(), p.Max(), p.Units())
	}

	if len(invalid)+len(outside) > 0 {
		return &exitCodeError{code: 1}
	}
	fmt.Fprintf(out, "ok: %d parameters\n", len(s.Params()))

	return nil
}

// printParam writes "Name: value unit" for name.
func printParam(s *controller.Session, w io.Writer, name string) error {
	p, err := s.Param(name)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, p)

	return err
}
