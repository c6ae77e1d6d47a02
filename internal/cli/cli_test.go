// SPDX-License-Identifier: MIT

package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bassgraph/bfs"
	"github.com/katalvlaran/bassgraph/config"
	"github.com/katalvlaran/bassgraph/controller"
)

// resetFlags restores every flag of cmd and its children to its default so
// package-level flag variables do not leak between runs.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// run executes the root command with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()

	return out.String(), err
}

func writeTemp(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	return path
}

func TestShow_Table(t *testing.T) {
	out, err := run(t, "show", "--group", "driver")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 15)
	assert.Equal(t, []string{"NAME", "VALUE", "UNIT", "MIN", "MAX", "STATE"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"Sd", "136", "cm**2", "0", "1e+03", "Valid"}, strings.Fields(lines[3]))
}

func TestShow_JSON(t *testing.T) {
	out, err := run(t, "show", "--group", "driver", "-o", "json")
	require.NoError(t, err)

	var snaps []controller.ParamSnapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snaps))
	require.Len(t, snaps, 14)
	assert.Equal(t, "Xmax", snaps[0].Name)
	assert.Equal(t, "mm", snaps[0].Unit)
}

func TestShow_UnknownGroup(t *testing.T) {
	_, err := run(t, "show", "--group", "tweeter")
	require.ErrorContains(t, err, `unknown group "tweeter"`)
}

func TestSet_PrintsEditedThenDependents(t *testing.T) {
	out, err := run(t, "set", "Sd=200")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 18)
	assert.Equal(t, "Sd: 200 cm**2", lines[0])
	assert.Equal(t, "--", lines[1])
	assert.Contains(t, lines, "Vd: 0.12 liter")
}

func TestSet_Errors(t *testing.T) {
	_, err := run(t, "set", "Sd=3 kg")
	require.ErrorIs(t, err, controller.ErrUnitMismatch)

	_, err = run(t, "set", "Sd")
	require.Error(t, err)

	_, err = run(t, "set", "--save", "Sd=100")
	require.ErrorContains(t, err, "--save needs a defaults table")
}

func TestSet_SaveRoundTrip(t *testing.T) {
	path := writeTemp(t, "params.csv", "Sd, 150, 0, 1000, cm**2\n")

	_, err := run(t, "--defaults", path, "set", "--save", "Xmax=8")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\nXmax,8,0,100,mm,3\n")
	assert.Contains(t, string(data), "\nSd,150,0,1000,cm**2,3\n")

	out, err := run(t, "--defaults", path, "show", "-o", "json")
	require.NoError(t, err)
	var snaps []controller.ParamSnapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snaps))
	for _, s := range snaps {
		if s.Name == "Vd" {
			assert.InDelta(t, 0.12, s.Value, 1e-9)
		}
	}
}

func TestCheck(t *testing.T) {
	out, err := run(t, "check")
	require.NoError(t, err)
	assert.Equal(t, "ok: 46 parameters\n", out)

	path := writeTemp(t, "params.csv", "Xmax, 150, 0, 100, mm\n")
	out, err = run(t, "--defaults", path, "check")
	code, ok := isExitCode(err)
	require.True(t, ok, "%v", err)
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "out of range: Xmax: 150 mm not in [0, 100] mm")
}

func TestCycles(t *testing.T) {
	out, err := run(t, "cycles", "--order")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "no cycles", lines[0])
	order := strings.Fields(lines[1])
	assert.Len(t, order, 46)
	assert.Less(t, indexOf(order, "Sd"), indexOf(order, "Vd"))
	assert.Less(t, indexOf(order, "Fs"), indexOf(order, "y"))
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}

	return -1
}

func TestDeps(t *testing.T) {
	out, err := run(t, "deps", "Cms")
	require.NoError(t, err)
	assert.Equal(t, "1: Cas\n2: Fs Qms Vas α\n3: Qts y η0 ωs\n4: Qes Qs Ts\n", out)

	out, err = run(t, "deps", "Cms", "--depth", "1")
	require.NoError(t, err)
	assert.Equal(t, "1: Cas\n", out)

	out, err = run(t, "deps", "Cms", "--to", "Ts")
	require.NoError(t, err)
	assert.Equal(t, "Cms -> Cas -> Fs -> ωs -> Ts\n", out)

	out, err = run(t, "deps", "Rg")
	require.NoError(t, err)
	assert.Equal(t, "no dependents\n", out)

	_, err = run(t, "deps", "Ts", "--to", "Cms")
	assert.ErrorIs(t, err, bfs.ErrNoPath)
}

func TestExport(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "out.csv")
	_, err := run(t, "export", csvPath)
	require.NoError(t, err)
	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# name, default, min, max, unit, precision\n"))

	yamlPath := filepath.Join(dir, "out.yaml")
	_, err = run(t, "export", "-f", "yaml", yamlPath)
	require.NoError(t, err)
	f, err := os.Open(yamlPath)
	require.NoError(t, err)
	defer f.Close()
	snaps, err := controller.DecodeYAML(f)
	require.NoError(t, err)
	assert.Len(t, snaps, 46)

	_, err = run(t, "export", "-f", "xml", filepath.Join(dir, "out.xml"))
	require.ErrorIs(t, err, controller.ErrUnknownFormat)
}

func TestConfig(t *testing.T) {
	path := writeTemp(t, "bassgraph.toml", "[display]\nprecision = 5\ngroup = \"constants\"\n")
	out, err := run(t, "--config", path, "show")
	require.NoError(t, err)
	assert.Contains(t, out, "1.1839")
	assert.NotContains(t, out, "Xmax")

	bad := writeTemp(t, "bad.toml", `log_level = "loud"`)
	_, err = run(t, "--config", bad, "show")
	require.ErrorIs(t, err, config.ErrInvalid)

	_, err = run(t, "--log-level", "loud", "show")
	require.ErrorIs(t, err, config.ErrInvalid)

	_, err = run(t, "--config", filepath.Join(t.TempDir(), "missing.toml"), "show")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestMetricsEndpoint(t *testing.T) {
	_, err := run(t, "--metrics-addr", "127.0.0.1:0", "check")
	require.NoError(t, err)
	assert.Nil(t, metricsServer, "server is shut down after the command")
}

func TestTune_NeedsTerminal(t *testing.T) {
	_, err := run(t, "tune")
	require.ErrorContains(t, err, "interactive terminal")
}
