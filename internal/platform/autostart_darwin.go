//go:build darwin

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Enable writes a LaunchAgent plist with RunAtLoad.
func (autostart *Autostart) Enable(entry AutostartEntry) error {
	if err := entry.validate(); err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}

	path, err := autostart.plistPath(entry)
	if err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("enable autostart: create LaunchAgents dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(buildLaunchAgentPlist(entry)), 0o644); err != nil {
		return fmt.Errorf("enable autostart: write plist: %w", err)
	}
	return nil
}

// Disable removes the LaunchAgent plist. A missing plist is not an error.
func (autostart *Autostart) Disable(entry AutostartEntry) error {
	path, err := autostart.plistPath(entry)
	if err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("disable autostart: remove plist: %w", err)
	}
	return nil
}

// Path returns the location of the login entry.
func (autostart *Autostart) Path(entry AutostartEntry) (string, error) {
	return autostart.plistPath(entry)
}

func (autostart *Autostart) plistPath(entry AutostartEntry) (string, error) {
	homeDir, err := autostart.homeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, "Library", "LaunchAgents", launchAgentLabel(entry)+".plist"), nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "Library", "Application Support")
}

func launchAgentLabel(entry AutostartEntry) string {
	return "com.pomoblock." + entry.slug()
}

func buildLaunchAgentPlist(entry AutostartEntry) string {
	var arguments strings.Builder
	for _, arg := range append([]string{entry.ExecPath}, entry.Args...) {
		fmt.Fprintf(&arguments, "\t\t<string>%s</string>\n", xmlEscape(arg))
	}

	return fmt.Sprintf(
		`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>%s</string>
	<key>ProgramArguments</key>
	<array>
%s	</array>
	<key>RunAtLoad</key>
	<true/>
</dict>
</plist>
`,
		xmlEscape(launchAgentLabel(entry)),
		arguments.String(),
	)
}

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func xmlEscape(value string) string {
	return xmlReplacer.Replace(value)
}
