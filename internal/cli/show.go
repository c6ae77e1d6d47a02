// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/bassgraph/controller"
)

const formatTable = "table"

var (
	showGroup  string
	showOutput string

	headerStyle = lipgloss.NewStyle().Bold(true)
	staleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // yellow
	rangeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print parameters",
	Long: `Print every parameter with its value, unit, bounds and state.

Stale parameters are highlighted in yellow, out-of-range ones in red.`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().StringVar(&showGroup, "group", "", "only show one group")
	showCmd.Flags().StringVarP(&showOutput, "output", "o", formatTable, "table, yaml or json")
}

func runShow(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	group := showGroup
	if group == "" {
		group = cfg.Display.Group
	}
	params, err := selectParams(s, group)
	if err != nil {
		return err
	}

	if showOutput == formatTable {
		return writeTable(cmd.OutOrStdout(), params)
	}
	snaps := make([]controller.ParamSnapshot, len(params))
	for i, p := range params {
		snaps[i] = p.Snapshot()
	}

	return controller.Encode(cmd.OutOrStdout(), showOutput, snaps)
}

// selectParams returns the parameters of group, or all when group is "".
func selectParams(s *controller.Session, group string) ([]*controller.Param, error) {
	if group == "" {
		return s.Params(), nil
	}
	grp, ok := s.Group(group)
	if !ok {
		var titles []string
		for _, g := range s.Groups() {
			titles = append(titles, g.Title)
		}
		return nil, fmt.Errorf("unknown group %q (have %s)", group, strings.Join(titles, ", "))
	}

	return grp.Params, nil
}

// writeTable prints params as aligned columns.
func writeTable(w io.Writer, params []*controller.Param) error {
	header := []string{"NAME", "VALUE", "UNIT", "MIN", "MAX", "STATE"}
	rows := make([][]string, 0, len(params))
	styles := make([]lipgloss.Style, 0, len(params))
	for _, p := range params {
		rows = append(rows, tableRow(p))
		styles = append(styles, rowStyle(p))
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, r := range rows {
		for i, c := range r {
			widths[i] = max(widths[i], lipgloss.Width(c))
		}
	}

	if _, err := fmt.Fprintln(w, headerStyle.Render(joinPadded(header, widths))); err != nil {
		return err
	}
	for i, r := range rows {
		if _, err := fmt.Fprintln(w, styles[i].Render(joinPadded(r, widths))); err != nil {
			return err
		}
	}

	return nil
}

func tableRow(p *controller.Param) []string {
	format := func(x float64) string { return strconv.FormatFloat(x, 'g', p.Precision(), 64) }
	lo, hi := "", ""
	if _, ok := p.Quantity().Min(); ok {
		lo = format(p.Min())
	}
	if _, ok := p.Quantity().Max(); ok {
		hi = format(p.Max())
	}
	state := p.State().String()
	if !p.InRange() {
		state += " (out of range)"
	}

	return []string{p.Name(), format(p.Value()), p.Units(), lo, hi, state}
}

func rowStyle(p *controller.Param) lipgloss.Style {
	switch {
	case !p.InRange():
		return rangeStyle
	case !p.Valid():
		return staleStyle
	default:
		return lipgloss.NewStyle()
	}
}

// joinPadded left-aligns cells to widths, two spaces apart, without
// trailing blanks.
func joinPadded(cells []string, widths []int) string {
	var b strings.Builder
	for i, c := range cells {
		b.WriteString(c)
		if i < len(cells)-1 {
			b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(c)+2))
		}
	}

	return strings.TrimRight(b.String(), " ")
}
