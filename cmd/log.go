package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/carebell/carebell/internal/export"
	"github.com/carebell/carebell/internal/model"
)

var (
	flagLogLimit  int
	flagLogOutput string
)

// logCmd represents the log command.
var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the activity log",
	Long: `Show or export the activity log. Every completed block is recorded
with a timestamp so family members can see how the day went.

Examples:
  carebell log
  carebell log show --limit 20
  carebell log export --output week.xlsx`,
	RunE: runLogShow,
}

// logShowCmd shows recent activity entries.
var logShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show recent activity entries",
	RunE:  runLogShow,
}

// logExportCmd exports the activity log to an Excel workbook.
var logExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the activity log to an Excel workbook",
	RunE:  runLogExport,
}

func init() {
	logShowCmd.Flags().IntVar(&flagLogLimit, "limit", 0, "show only the most recent N entries")
	logExportCmd.Flags().StringVarP(&flagLogOutput, "output", "o", "carebell-activity.xlsx", "path of the workbook to write")

	logCmd.AddCommand(logShowCmd)
	logCmd.AddCommand(logExportCmd)
	rootCmd.AddCommand(logCmd)
}

func runLogShow(cmd *cobra.Command, args []string) error {
	entries, err := ctx.DoneRepo.Activity(cmd.Context())
	if err != nil {
		return err
	}
	entries = limitEntries(entries, flagLogLimit)

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintActivity(entries)
	}

	ctx.CLIFormatter().PrintActivity(entries)
	return nil
}

func runLogExport(cmd *cobra.Command, args []string) error {
	entries, err := ctx.DoneRepo.Activity(cmd.Context())
	if err != nil {
		return err
	}

	out, err := os.Create(flagLogOutput)
	if err != nil {
		return fmt.Errorf("create %s: %w", flagLogOutput, err)
	}
	if err := export.WriteActivity(out, entries); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintOK(fmt.Sprintf("exported %d entries to %s", len(entries), flagLogOutput))
	}

	ctx.CLIFormatter().Success(fmt.Sprintf("Exported %d entries to %s", len(entries), flagLogOutput))
	return nil
}

// limitEntries keeps the most recent n entries. The activity log is
// newest first, so that is the head of the list.
func limitEntries(entries []model.ActivityEntry, n int) []model.ActivityEntry {
	if n <= 0 || len(entries) <= n {
		return entries
	}
	return entries[:n]
}
