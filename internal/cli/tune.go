// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/katalvlaran/bassgraph/defaults"
	"github.com/katalvlaran/bassgraph/internal/tui"
)

var tuneGroup string

var tuneCmd = &cobra.Command{
	Use:   "tune",
	Short: "Tune parameters interactively",
	Long: `Open the interactive tuning screen.

Move with ↑/↓, nudge a parameter with ←/→ (one percent of its range),
press enter to type a value, s to save the defaults table and q to quit.
When watch is enabled, edits made to the defaults table by other programs
are reloaded live.`,
	Args: cobra.NoArgs,
	RunE: runTune,
}

func init() {
	rootCmd.AddCommand(tuneCmd)
	tuneCmd.Flags().StringVar(&tuneGroup, "group", "", "only show one group")
}

func runTune(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("tune needs an interactive terminal")
	}
	// The alt screen owns the terminal; log lines would tear it.
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	s, err := openSession()
	if err != nil {
		return err
	}
	group := tuneGroup
	if group == "" {
		group = cfg.Display.Group
	}
	if _, err := selectParams(s, group); err != nil {
		return err
	}

	m := tui.New(s, tui.WithDefaultsPath(cfg.DefaultsFile), tui.WithGroup(group))
	p := tea.NewProgram(m, tea.WithAltScreen())

	if cfg.Watch && cfg.DefaultsFile != "" {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		go func() {
			err := defaults.Watch(ctx, cfg.DefaultsFile, func() { p.Send(tui.ReloadMsg{}) },
				defaults.WithWatchLogger(logger))
			if err != nil {
				logger.Warn("defaults watch stopped", "path", cfg.DefaultsFile, "err", err)
			}
		}()
	}

	_, err = p.Run()

	return err
}
