package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/carebell/carebell/internal/output"
)

// doneCmd represents the done command.
var doneCmd = &cobra.Command{
	Use:   "done",
	Short: "Manage today's done marks",
	Long: `List, set, or clear done marks for today's blocks. Indexes are
zero-based and match the display API; 'carebell done list' shows them.

Done marks reset at midnight with the rest of the day view.

Examples:
  carebell done list
  carebell done mark 0
  carebell done unmark 0`,
	RunE: runDoneList,
}

// doneListCmd lists today's blocks with their done state.
var doneListCmd = &cobra.Command{
	Use:   "list",
	Short: "List today's blocks with their done state",
	RunE:  runDoneList,
}

// doneMarkCmd marks a block done.
var doneMarkCmd = &cobra.Command{
	Use:   "mark <index>",
	Short: "Mark a block done",
	Args:  cobra.ExactArgs(1),
	RunE:  runDoneMark,
}

// doneUnmarkCmd clears a done mark.
var doneUnmarkCmd = &cobra.Command{
	Use:   "unmark <index>",
	Short: "Clear a done mark",
	Args:  cobra.ExactArgs(1),
	RunE:  runDoneUnmark,
}

func init() {
	doneCmd.AddCommand(doneListCmd)
	doneCmd.AddCommand(doneMarkCmd)
	doneCmd.AddCommand(doneUnmarkCmd)
	rootCmd.AddCommand(doneCmd)
}

func runDoneList(cmd *cobra.Command, args []string) error {
	eng, err := localEngine(cmd)
	if err != nil {
		return err
	}
	snap := eng.Snapshot()

	items := make([]output.DoneItem, 0, len(snap.Blocks))
	for i, block := range snap.Blocks {
		items = append(items, output.DoneItem{
			Index: i,
			Start: block.Start,
			End:   block.End,
			Label: block.Label,
			Done:  snap.Done[i],
		})
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintDone(snap.DateKey, items)
	}

	ctx.CLIFormatter().PrintDone(snap.DateKey, items)
	return nil
}

func runDoneMark(cmd *cobra.Command, args []string) error {
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}

	eng, err := localEngine(cmd)
	if err != nil {
		return err
	}
	if err := eng.MarkDone(cmd.Context(), index); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintOK(fmt.Sprintf("block %d marked done", index))
	}

	ctx.CLIFormatter().Success(fmt.Sprintf("Block %d marked done", index))
	return nil
}

func runDoneUnmark(cmd *cobra.Command, args []string) error {
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}

	eng, err := localEngine(cmd)
	if err != nil {
		return err
	}
	if err := eng.UnmarkDone(cmd.Context(), index); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintOK(fmt.Sprintf("block %d mark cleared", index))
	}

	ctx.CLIFormatter().Success(fmt.Sprintf("Block %d mark cleared", index))
	return nil
}

func parseIndex(arg string) (int, error) {
	index, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("index must be a number, got %q", arg)
	}
	return index, nil
}
