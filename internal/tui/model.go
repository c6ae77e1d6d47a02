// SPDX-License-Identifier: MIT
// Package tui is the interactive tuning screen: a grouped parameter list
// with slider steps, inline value edits and live reload of the defaults
// table.
package tui

import (
	"fmt"
	"math"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/katalvlaran/bassgraph/controller"
)

// StepPercent is the slider step of Decrease/Increase, in percent of range.
const StepPercent = 1.0

// ReloadMsg asks the model to reload the defaults table, typically sent by
// a file watcher through tea.Program.Send.
type ReloadMsg struct{}

// Option configures a Model.
type Option func(*Model)

// WithDefaultsPath sets the table used by Save and ReloadMsg.
func WithDefaultsPath(path string) Option {
	return func(m *Model) { m.defaultsPath = path }
}

// WithGroup restricts the list to one group.
func WithGroup(title string) Option {
	return func(m *Model) { m.group = title }
}

// Model is the bubbletea model for the tuning screen.
type Model struct {
	session      *controller.Session
	groups       []*controller.Group
	rows         []*controller.Param
	cursor       int
	defaultsPath string
	group        string

	editing bool
	input   textinput.Model
	status  string
	err     error

	// UI state
	keys     KeyMap
	help     help.Model
	showHelp bool
	width    int
	height   int
}

// New creates a tuning model over s.
func New(s *controller.Session, opts ...Option) Model {
	in := textinput.New()
	in.Prompt = "= "
	in.CharLimit = 64

	m := Model{
		session: s,
		input:   in,
		keys:    DefaultKeyMap(),
		help:    help.New(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	for _, grp := range s.Groups() {
		if m.group != "" && grp.Title != m.group {
			continue
		}
		m.groups = append(m.groups, grp)
		m.rows = append(m.rows, grp.Params...)
	}

	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Selected returns the parameter under the cursor, nil for an empty list.
func (m Model) Selected() *controller.Param {
	if len(m.rows) == 0 {
		return nil
	}

	return m.rows[m.cursor]
}

// Status returns the last status line.
func (m Model) Status() string { return m.status }

// Err returns the last error, nil if the last action succeeded.
func (m Model) Err() error { return m.err }

// Editing reports whether the value editor is open.
func (m Model) Editing() bool { return m.editing }

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case ReloadMsg:
		m.reload()
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditor(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, m.keys.Top):
			m.cursor = 0
			return m, nil

		case key.Matches(msg, m.keys.Bottom):
			if len(m.rows) > 0 {
				m.cursor = len(m.rows) - 1
			}
			return m, nil

		case key.Matches(msg, m.keys.Decrease):
			m.step(-StepPercent)
			return m, nil

		case key.Matches(msg, m.keys.Increase):
			m.step(StepPercent)
			return m, nil

		case key.Matches(msg, m.keys.Edit):
			return m.openEditor()

		case key.Matches(msg, m.keys.Refresh):
			m.setResult("recomputed", m.session.RefreshAll())
			return m, nil

		case key.Matches(msg, m.keys.Save):
			m.save()
			return m, nil
		}
	}

	return m, nil
}

// updateEditor routes keys to the value editor.
func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closeEditor()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		p := m.Selected()
		literal := m.input.Value()
		m.closeEditor()
		affected, err := m.session.Set(p.Name(), literal)
		if err != nil {
			m.setResult("", err)
			return m, nil
		}
		m.setResult(fmt.Sprintf("%s = %s, %d dependents", p.Name(), literal, len(affected)), m.session.Refresh())
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m Model) openEditor() (tea.Model, tea.Cmd) {
	p := m.Selected()
	if p == nil {
		return m, nil
	}
	m.editing = true
	m.input.SetValue(p.Display())
	m.input.CursorEnd()

	return m, m.input.Focus()
}

func (m *Model) closeEditor() {
	m.editing = false
	m.input.Blur()
	m.input.Reset()
}

// step moves the selected slider by delta percent, clamped to [0,100].
func (m *Model) step(delta float64) {
	p := m.Selected()
	if p == nil {
		return
	}
	pct, err := p.Percent()
	if err != nil {
		m.setResult("", err)
		return
	}
	pct = math.Max(0, math.Min(100, pct+delta))
	if _, err := m.session.SetPercent(p.Name(), pct); err != nil {
		m.setResult("", err)
		return
	}
	m.setResult(fmt.Sprintf("%s %s", p.Label(), p.Display()), m.session.Refresh())
}

func (m *Model) reload() {
	if m.defaultsPath == "" {
		return
	}
	rep, err := m.session.LoadDefaults(m.defaultsPath)
	m.setResult(fmt.Sprintf("reloaded %s: %d applied, %d warnings", m.defaultsPath, len(rep.Applied), len(rep.Warnings)), err)
}

func (m *Model) save() {
	if m.defaultsPath == "" {
		m.setResult("no defaults file", nil)
		return
	}
	m.setResult("saved "+m.defaultsPath, m.session.SaveDefaults(m.defaultsPath))
}

func (m *Model) setResult(status string, err error) {
	m.status, m.err = status, err
}

// View renders the model.
func (m Model) View() string {
	return m.renderView()
}
