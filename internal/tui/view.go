// SPDX-License-Identifier: MIT

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/katalvlaran/bassgraph/controller"
)

// barWidth is the slider width in cells.
const barWidth = 20

// Styles for the tuning screen
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	groupStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("15"))

	staleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")) // yellow

	rangeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")) // red

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")) // gray

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")) // green

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

// renderView renders the entire view.
func (m Model) renderView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Enclosure parameters"))
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString("No parameters.\n")
	}

	labelWidth := 0
	for _, p := range m.rows {
		labelWidth = max(labelWidth, lipgloss.Width(p.Label()))
	}

	row := 0
	for _, grp := range m.groups {
		b.WriteString(groupStyle.Render(grp.Title))
		b.WriteString("\n")
		for _, p := range grp.Params {
			line := renderRow(p, labelWidth)
			if row == m.cursor {
				line = selectedStyle.Render("▸ " + line)
			} else {
				line = "  " + styleFor(p).Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
			row++
		}
		b.WriteString("\n")
	}

	if m.editing {
		b.WriteString(m.Selected().Label())
		b.WriteString(" ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	case m.status != "":
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.showHelp {
		b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	} else {
		b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	}

	return b.String()
}

// renderRow renders "Label  value  [bar] marker" for one parameter.
func renderRow(p *controller.Param, labelWidth int) string {
	label := p.Label() + strings.Repeat(" ", labelWidth-lipgloss.Width(p.Label()))

	return fmt.Sprintf("%s  %-18s %s %s", label, p.Display(), renderBar(p), marker(p))
}

// renderBar draws the slider position, blank when there is no range.
func renderBar(p *controller.Param) string {
	pct, err := p.Percent()
	if err != nil {
		return strings.Repeat(" ", barWidth+2)
	}
	filled := int(pct / 100 * barWidth)
	filled = max(0, min(barWidth, filled))

	return barStyle.Render("[" + strings.Repeat("=", filled) + strings.Repeat(" ", barWidth-filled) + "]")
}

func marker(p *controller.Param) string {
	switch {
	case !p.InRange():
		return "out of range"
	case !p.Valid():
		return p.State().String()
	default:
		return ""
	}
}

func styleFor(p *controller.Param) lipgloss.Style {
	switch {
	case !p.InRange():
		return rangeStyle
	case !p.Valid():
		return staleStyle
	default:
		return lipgloss.NewStyle()
	}
}
