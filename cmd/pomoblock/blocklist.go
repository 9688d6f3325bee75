package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pomoblock/internal/core/blocklist"
)

var blocklistCmd = &cobra.Command{
	Use:   "blocklist",
	Short: "Print the process names closed during work",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range blocklist.Default().Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(blocklistCmd)
}
