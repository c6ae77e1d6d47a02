// SPDX-License-Identifier: MIT

package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bassgraph/config"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bassgraph.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	return path
}

func TestLoad_FullFile(t *testing.T) {
	path := writeFile(t, `
defaults_file      = "speaker.csv"
input_invalidation = true
log_level          = "debug"
metrics_addr       = ":9100"
watch              = false

[display]
precision = 4
group     = "driver"
`)
	cfg, err := config.Load(path, false)
	require.NoError(t, err)
	assert.Equal(t, &config.Config{
		DefaultsFile:      "speaker.csv",
		InputInvalidation: true,
		LogLevel:          "debug",
		MetricsAddr:       ":9100",
		Watch:             false,
		Display:           config.Display{Precision: 4, Group: "driver"},
	}, cfg)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	cfg, err := config.Load(writeFile(t, `log_level = "WARN"`), false)
	require.NoError(t, err)
	assert.True(t, cfg.Watch)
	assert.Equal(t, slog.LevelWarn, cfg.Level())
	assert.Empty(t, cfg.DefaultsFile)
}

func TestLoad_Missing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.toml")

	cfg, err := config.Load(missing, true)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	_, err = config.Load(missing, false)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown key", `defaults = "x.csv"`},
		{"bad level", `log_level = "loud"`},
		{"negative precision", "[display]\nprecision = -1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.Load(writeFile(t, tc.body), false)
			require.ErrorIs(t, err, config.ErrInvalid)
		})
	}

	_, err := config.Load(writeFile(t, `watch = `), false)
	require.Error(t, err, "syntax error")
}
