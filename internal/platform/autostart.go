package platform

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrEmptyEntry is returned when an autostart entry lacks a name or command.
var ErrEmptyEntry = errors.New("autostart entry needs a name and an executable")

// AutostartEntry describes the command launched at login.
type AutostartEntry struct {
	Name     string
	ExecPath string
	Args     []string
}

func (entry AutostartEntry) validate() error {
	if strings.TrimSpace(entry.Name) == "" || strings.TrimSpace(entry.ExecPath) == "" {
		return ErrEmptyEntry
	}
	return nil
}

// slug turns an app name into a lowercase, dash separated identifier.
func (entry AutostartEntry) slug() string {
	name := strings.ToLower(strings.TrimSpace(entry.Name))
	if name == "" {
		name = "pomoblock"
	}
	return strings.ReplaceAll(name, " ", "-")
}

// Autostart manages the login entry for the current user.
type Autostart struct {
	configDir func() (string, error)
	homeDir   func() (string, error)
}

// NewAutostart returns an Autostart rooted at the user's directories.
func NewAutostart() *Autostart {
	return &Autostart{
		configDir: ConfigDir,
		homeDir:   os.UserHomeDir,
	}
}

// ConfigDir returns the OS-standard configuration directory.
func ConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return fallbackConfigDir(homeDir), nil
}
