package main

import (
	"errors"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"pomoblock/internal/app"
	"pomoblock/internal/platform"
	"pomoblock/internal/ui/terminal"
)

var logFile string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run the timer in the terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(os.Stdin.Fd()) || !term.IsTerminal(os.Stdout.Fd()) {
			return errors.New("tui needs an interactive terminal")
		}

		// Log output would corrupt the alt screen.
		if logFile != "" {
			file, err := tea.LogToFile(logFile, app.Name)
			if err != nil {
				return err
			}
			defer file.Close()
		} else {
			log.SetOutput(io.Discard)
		}
		if configErr != nil {
			log.Printf("config: %v", configErr)
		}

		lock, err := platform.AcquireInstanceLock(app.Name)
		if err != nil {
			return err
		}
		defer func() {
			_ = lock.Release()
		}()

		runtime := app.New(cfg, platform.NewProcessTable())
		runtime.Start(cmd.Context())
		defer runtime.Stop()

		return terminal.Run(runtime)
	},
}

func init() {
	tuiCmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file")
	rootCmd.AddCommand(tuiCmd)
}
