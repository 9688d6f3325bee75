//go:build linux

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Enable writes an XDG autostart desktop entry.
func (autostart *Autostart) Enable(entry AutostartEntry) error {
	if err := entry.validate(); err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}

	path, err := autostart.desktopFilePath(entry)
	if err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("enable autostart: create autostart dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(buildDesktopEntry(entry)), 0o644); err != nil {
		return fmt.Errorf("enable autostart: write desktop entry: %w", err)
	}
	return nil
}

// Disable removes the desktop entry. A missing entry is not an error.
func (autostart *Autostart) Disable(entry AutostartEntry) error {
	path, err := autostart.desktopFilePath(entry)
	if err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("disable autostart: remove desktop entry: %w", err)
	}
	return nil
}

// Path returns the location of the login entry.
func (autostart *Autostart) Path(entry AutostartEntry) (string, error) {
	return autostart.desktopFilePath(entry)
}

func (autostart *Autostart) desktopFilePath(entry AutostartEntry) (string, error) {
	configDir, err := autostart.configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "autostart", entry.slug()+".desktop"), nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config")
}

func buildDesktopEntry(entry AutostartEntry) string {
	parts := []string{quoteExecArg(entry.ExecPath)}
	for _, arg := range entry.Args {
		parts = append(parts, quoteExecArg(arg))
	}

	return fmt.Sprintf(
		`[Desktop Entry]
Type=Application
Name=%s
Comment=Pomodoro timer that blocks distracting apps during work
Exec=%s
X-GNOME-Autostart-enabled=true
Terminal=false
`,
		entry.Name,
		strings.Join(parts, " "),
	)
}

func quoteExecArg(arg string) string {
	if !strings.ContainsAny(arg, " \t\"") {
		return arg
	}
	escaped := strings.ReplaceAll(arg, `"`, `\"`)
	return `"` + escaped + `"`
}
