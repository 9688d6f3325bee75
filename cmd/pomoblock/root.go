package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"pomoblock/internal/app"
	"pomoblock/internal/config"
	"pomoblock/internal/core/model"
)

var (
	configPath   string
	workMinutes  int
	breakMinutes int
)

// cfg holds the startup configuration, populated in PersistentPreRunE.
var cfg config.Config

// configErr is a non-fatal problem with the config file. Defaults are used
// and each shell reports it in its own way.
var configErr error

var rootCmd = &cobra.Command{
	Use:   "pomoblock",
	Short: "Pomodoro timer that closes distracting apps while you work",
	Long: `pomoblock alternates work and break countdowns. While a work phase is
running it closes games, launchers and browsers from a built-in list.

Run without a subcommand to open the desktop window.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGUI(cmd)
	},
}

func loadConfig(cmd *cobra.Command) error {
	var err error
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadDefault(app.Name)
	}
	configErr = nil
	if err != nil {
		var parseErr *config.ParseError
		if !errors.As(err, &parseErr) && configPath != "" {
			return err
		}
		log.Printf("config: %v (using defaults)", err)
		cfg = config.Default()
		configErr = err
	}

	flags := cmd.Flags()
	if flags.Changed("work") {
		cfg.Durations.WorkMinutes = workMinutes
	}
	if flags.Changed("break") {
		cfg.Durations.BreakMinutes = breakMinutes
	}
	if err := cfg.Durations.Validate(); err != nil {
		return fmt.Errorf("invalid durations: %w", err)
	}
	return nil
}

// Execute runs the root command. Exits with code 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (.yaml or .toml)")
	flags.IntVar(&workMinutes, "work", model.DefaultWorkMinutes,
		fmt.Sprintf("work minutes (%d-%d)", model.MinWorkMinutes, model.MaxWorkMinutes))
	flags.IntVar(&breakMinutes, "break", model.DefaultBreakMinutes,
		fmt.Sprintf("break minutes (%d-%d)", model.MinBreakMinutes, model.MaxBreakMinutes))
}
