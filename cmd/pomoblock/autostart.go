package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pomoblock/internal/app"
	"pomoblock/internal/platform"
)

var autostartCmd = &cobra.Command{
	Use:   "autostart",
	Short: "Manage starting at login",
}

var autostartEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Start the desktop timer at login",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entry, err := autostartEntry()
		if err != nil {
			return err
		}
		autostart := platform.NewAutostart()
		if err := autostart.Enable(entry); err != nil {
			return err
		}
		path, _ := autostart.Path(entry)
		fmt.Fprintf(cmd.OutOrStdout(), "autostart enabled: %s\n", path)
		return nil
	},
}

var autostartDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Stop starting at login",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entry, err := autostartEntry()
		if err != nil {
			return err
		}
		if err := platform.NewAutostart().Disable(entry); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "autostart disabled")
		return nil
	},
}

func autostartEntry() (platform.AutostartEntry, error) {
	execPath, err := os.Executable()
	if err != nil {
		return platform.AutostartEntry{}, fmt.Errorf("resolve executable: %w", err)
	}
	entry := platform.AutostartEntry{Name: app.Name, ExecPath: execPath}
	if configPath != "" {
		entry.Args = []string{"--config", configPath}
	}
	return entry, nil
}

func init() {
	autostartCmd.AddCommand(autostartEnableCmd, autostartDisableCmd)
	rootCmd.AddCommand(autostartCmd)
}
