// SPDX-License-Identifier: MIT
// Package cli implements the bassgraph command line.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/katalvlaran/bassgraph/config"
	"github.com/katalvlaran/bassgraph/controller"
	"github.com/katalvlaran/bassgraph/core"
	"github.com/katalvlaran/bassgraph/enclosure"
)

// DefaultConfigFile is read when --config is not given; it may be absent.
const DefaultConfigFile = "bassgraph.toml"

// --- Global flags and state ---
var (
	configPath   string
	defaultsPath string
	logLevel     string
	metricsAddr  string

	cfg    *config.Config
	logger = slog.Default()

	rootCmd = &cobra.Command{
		Use:   "bassgraph",
		Short: "Loudspeaker enclosure parameter calculator",
		Long: `bassgraph keeps a set of loudspeaker and enclosure parameters consistent:
edit a driver or box parameter and every quantity derived from it is
recomputed in dependency order.

Parameters start from built-in values and may be overridden by a defaults
table (name, default, min, max[, unit[, precision]]).`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  setup,
		PersistentPostRunE: teardown,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", DefaultConfigFile, "TOML configuration file")
	rootCmd.PersistentFlags().StringVar(&defaultsPath, "defaults", "", "defaults table to load (overrides defaults_file)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides log_level)")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (overrides metrics_addr)")
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		if code, ok := isExitCode(err); ok {
			return code
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

// setup loads the configuration, applies flag overrides, installs the
// logger and starts the metrics endpoint.
func setup(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(configPath, !cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}
	if defaultsPath != "" {
		cfg.DefaultsFile = defaultsPath
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if metricsAddr != "" {
		cfg.MetricsAddr = metricsAddr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)

	if !shouldUseColor() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	if cfg.MetricsAddr != "" {
		startMetrics(cfg.MetricsAddr)
	}

	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	return stopMetrics()
}

// shouldUseColor reports whether stdout is a terminal and NO_COLOR is unset.
func shouldUseColor() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}

	return term.IsTerminal(int(os.Stdout.Fd()))
}

// openSession builds the built-in graph, applies the configured defaults
// table and refreshes everything.
func openSession() (*controller.Session, error) {
	g, err := enclosure.Build(
		core.WithInputInvalidation(cfg.InputInvalidation),
		core.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	s := controller.New(g, enclosure.Groups(), controller.WithLogger(logger))

	if cfg.DefaultsFile != "" {
		rep, err := s.LoadDefaults(cfg.DefaultsFile)
		if err != nil {
			return nil, err
		}
		for _, w := range rep.Warnings {
			logger.Debug("defaults warning", "warning", w.Error())
		}
	} else if err := s.RefreshAll(); err != nil {
		return nil, err
	}

	if cfg.Display.Precision > 0 {
		for _, q := range g.Quantities() {
			q.SetPrecision(cfg.Display.Precision)
		}
	}

	return s, nil
}

// exitCodeError ends the process with code without printing anything.
type exitCodeError struct {
	code int
}

func (e *exitCodeError) Error() string {
	return fmt.Sprintf("exit %d", e.code)
}

func isExitCode(err error) (int, bool) {
	var ec *exitCodeError
	if errors.As(err, &ec) {
		return ec.code, true
	}

	return 0, false
}
