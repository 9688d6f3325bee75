//go:build windows

package platform

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

const registryRunKey = `HKCU\Software\Microsoft\Windows\CurrentVersion\Run`

// Enable adds a value under the per-user Run registry key.
func (autostart *Autostart) Enable(entry AutostartEntry) error {
	if err := entry.validate(); err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}

	output, err := exec.Command(
		"reg", "add", registryRunKey,
		"/v", entry.Name,
		"/t", "REG_SZ",
		"/d", commandLine(entry),
		"/f",
	).CombinedOutput()
	if err != nil {
		return fmt.Errorf("enable autostart: reg add failed: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

// Disable deletes the Run registry value.
func (autostart *Autostart) Disable(entry AutostartEntry) error {
	if strings.TrimSpace(entry.Name) == "" {
		return fmt.Errorf("disable autostart: %w", ErrEmptyEntry)
	}

	output, err := exec.Command("reg", "delete", registryRunKey, "/v", entry.Name, "/f").CombinedOutput()
	if err != nil {
		return fmt.Errorf("disable autostart: reg delete failed: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

// Path returns the registry value holding the login entry.
func (autostart *Autostart) Path(entry AutostartEntry) (string, error) {
	return registryRunKey + `\` + entry.Name, nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "AppData", "Roaming")
}

func commandLine(entry AutostartEntry) string {
	parts := []string{quoteWindowsArg(entry.ExecPath)}
	for _, arg := range entry.Args {
		parts = append(parts, quoteWindowsArg(arg))
	}
	return strings.Join(parts, " ")
}

func quoteWindowsArg(arg string) string {
	trimmed := strings.Trim(arg, `"`)
	if trimmed == arg && !strings.ContainsAny(arg, " \t") {
		return arg
	}
	return `"` + trimmed + `"`
}
