package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"pomoblock/internal/core/blocklist"
	"pomoblock/internal/core/enforcer"
	"pomoblock/internal/platform"
)

var killMatches bool

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan running processes against the block list",
	Long: `Scan lists running processes and reports the ones on the block list.
Nothing is closed unless --kill is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine := enforcer.New(platform.NewProcessTable(), enforcer.Options{
			KillTimeout: cfg.KillTimeout,
			DryRun:      !killMatches,
		})

		report := engine.EnforceOnce(true, blocklist.Default())
		printReport(cmd.OutOrStdout(), report)
		if report.Err != nil {
			return report.Err
		}
		if failed := report.Failed(); len(failed) > 0 {
			return fmt.Errorf("%d blocked processes could not be closed", len(failed))
		}
		return nil
	},
}

func printReport(out io.Writer, report enforcer.Report) {
	matched := report.Matched()
	fmt.Fprintf(out, "scanned %d processes at %s\n", len(report.Entries), report.ScannedAt.Format("15:04:05"))
	if len(matched) == 0 {
		fmt.Fprintln(out, "no blocked processes running")
		return
	}
	for _, entry := range matched {
		line := fmt.Sprintf("  %-8d %-24s %s", entry.PID, entry.ProcessName, entry.Outcome)
		if entry.Reason != "" {
			line += " (" + entry.Reason + ")"
		}
		fmt.Fprintln(out, line)
	}
}

func init() {
	scanCmd.Flags().BoolVar(&killMatches, "kill", false, "close matching processes instead of a dry run")
	rootCmd.AddCommand(scanCmd)
}
