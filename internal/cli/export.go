// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/bassgraph/controller"
)

const formatCSV = "csv"

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Write the current parameters to a file",
	Long: `Write every parameter to FILE. The default csv format is a defaults
table that --defaults can load back; yaml and json write snapshots with
state and range information.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", formatCSV, "csv, yaml or json")
}

func runExport(cmd *cobra.Command, args []string) (err error) {
	s, err := openSession()
	if err != nil {
		return err
	}
	path := args[0]

	if exportFormat == formatCSV {
		return s.SaveDefaults(path)
	}
	if exportFormat != controller.FormatYAML && exportFormat != controller.FormatJSON {
		return fmt.Errorf("%w: %q", controller.ErrUnknownFormat, exportFormat)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return controller.Encode(f, exportFormat, s.Snapshot())
}
