package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomoblock/internal/core/blocklist"
	"pomoblock/internal/core/model"
)

// executeCommand runs root with args and returns the combined output.
func executeCommand(root *cobra.Command, args ...string) (output string, err error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	_, err = root.ExecuteC()
	return buf.String(), err
}

// isolate points the config lookup at an empty temp dir and restores flag
// defaults left over from earlier runs.
func isolate(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	t.Setenv("HOME", tmp)
	t.Setenv("APPDATA", tmp)

	reset := func(flag *pflag.Flag) {
		_ = flag.Value.Set(flag.DefValue)
		flag.Changed = false
	}
	var walk func(cmd *cobra.Command)
	walk = func(cmd *cobra.Command) {
		cmd.PersistentFlags().VisitAll(reset)
		cmd.Flags().VisitAll(reset)
		for _, child := range cmd.Commands() {
			walk(child)
		}
	}
	walk(rootCmd)
	return tmp
}

func TestBlocklistCommand(t *testing.T) {
	isolate(t)
	out, err := executeCommand(rootCmd, "blocklist")
	require.NoError(t, err)

	lines := strings.Fields(out)
	assert.Equal(t, blocklist.Default().Names(), lines)
	assert.Contains(t, lines, "steam")
	assert.Len(t, lines, len(blocklist.Catalog))
}

func TestScanDefaultsToDryRun(t *testing.T) {
	isolate(t)
	out, err := executeCommand(rootCmd, "scan")
	require.NoError(t, err)
	assert.Contains(t, out, "scanned")
	assert.NotContains(t, out, "terminated")
}

func TestInvalidDurationFlagIsRejected(t *testing.T) {
	isolate(t)
	_, err := executeCommand(rootCmd, "blocklist", "--work", "0")
	require.Error(t, err)

	var rangeErr *model.RangeError
	assert.True(t, errors.As(err, &rangeErr), "got %v", err)
}

func TestDurationFlagsOverrideConfig(t *testing.T) {
	tmp := isolate(t)
	path := filepath.Join(tmp, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("work_minutes: 40\nbreak_minutes: 8\n"), 0o644))

	_, err := executeCommand(rootCmd, "blocklist", "--config", path, "--break", "3")
	require.NoError(t, err)
	assert.Equal(t, model.Durations{WorkMinutes: 40, BreakMinutes: 3}, cfg.Durations)
}

func TestBrokenConfigFallsBackToDefaults(t *testing.T) {
	tmp := isolate(t)
	path := filepath.Join(tmp, "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("work_minutes: [oops"), 0o644))

	_, err := executeCommand(rootCmd, "blocklist", "--config", path)
	require.NoError(t, err)
	assert.Error(t, configErr)
	assert.Equal(t, model.DefaultDurations(), cfg.Durations)
}

func TestAutostartEnableDisable(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("autostart entry location is only predictable on linux")
	}
	tmp := isolate(t)
	entryPath := filepath.Join(tmp, "autostart", "pomodoroblocker.desktop")

	out, err := executeCommand(rootCmd, "autostart", "enable")
	require.NoError(t, err)
	assert.Contains(t, out, entryPath)
	assert.FileExists(t, entryPath)

	_, err = executeCommand(rootCmd, "autostart", "disable")
	require.NoError(t, err)
	assert.NoFileExists(t, entryPath)
}
