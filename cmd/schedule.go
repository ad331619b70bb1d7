package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/carebell/carebell/internal/engine"
	"github.com/carebell/carebell/internal/model"
	"github.com/carebell/carebell/internal/schedule"
)

var (
	flagScheduleSetFile   string
	flagScheduleCheckFile string
)

// scheduleCmd represents the schedule command.
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Manage the daily schedule",
	Long: `Show, replace, or check the elder's daily schedule.

The schedule is a whole document: set always replaces every block. Blocks
are given inline as start-end=label pairs or as the same JSON document the
HTTP API accepts.

Examples:
  carebell schedule show
  carebell schedule set "06:30-09:00=Morning routine" "09:00-12:00=Morning walk"
  carebell schedule set --file day.json
  carebell schedule check --file day.json`,
	RunE: runScheduleShow,
}

// scheduleShowCmd shows today's schedule.
var scheduleShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show today's schedule",
	RunE:  runScheduleShow,
}

// scheduleSetCmd replaces the schedule.
var scheduleSetCmd = &cobra.Command{
	Use:   "set [start-end=label ...]",
	Short: "Replace the daily schedule",
	RunE:  runScheduleSet,
}

// scheduleCheckCmd validates a schedule without saving it.
var scheduleCheckCmd = &cobra.Command{
	Use:   "check [start-end=label ...]",
	Short: "Validate a schedule without saving it",
	Long: `Validate the given blocks, or the stored schedule when no blocks are
given, and report the first problem found.`,
	RunE: runScheduleCheck,
}

func init() {
	scheduleSetCmd.Flags().StringVar(&flagScheduleSetFile, "file", "",
		`Read blocks from a JSON file ("-" for stdin)`)
	scheduleCheckCmd.Flags().StringVar(&flagScheduleCheckFile, "file", "",
		`Read blocks from a JSON file ("-" for stdin)`)

	scheduleCmd.AddCommand(scheduleShowCmd)
	scheduleCmd.AddCommand(scheduleSetCmd)
	scheduleCmd.AddCommand(scheduleCheckCmd)
	rootCmd.AddCommand(scheduleCmd)
}

// localEngine builds an engine over the CLI store and computes the day
// view once, without starting the tick jobs.
func localEngine(cmd *cobra.Command) (*engine.Engine, error) {
	eng := engine.New(ctx.Store, nil, ctx.Config.Alerts.DefaultCount)
	if err := eng.Refresh(cmd.Context()); err != nil {
		return nil, err
	}
	return eng, nil
}

func runScheduleShow(cmd *cobra.Command, args []string) error {
	if ctx.IsJSON() {
		blocks, err := ctx.ScheduleRepo.Get(cmd.Context())
		if err != nil {
			return err
		}
		return ctx.JSONFormatter().PrintSchedule(blocks)
	}

	eng, err := localEngine(cmd)
	if err != nil {
		return err
	}
	snap := eng.Snapshot()

	cli := ctx.CLIFormatter()
	cli.PrintDayProgress(snap.Clock, snap.Progress)
	cli.Println("")
	cli.PrintSchedule(snap.Blocks, snap.CurrentIndex, snap.Done)
	return nil
}

func runScheduleSet(cmd *cobra.Command, args []string) error {
	blocks, err := readScheduleBlocks(flagScheduleSetFile, args)
	if err != nil {
		return err
	}
	if err := schedule.Validate(blocks); err != nil {
		return err
	}
	if err := ctx.ScheduleRepo.Set(cmd.Context(), blocks); err != nil {
		return err
	}

	// Echo the document as stored: cleaned and sorted.
	sorted := schedule.Sorted(schedule.Clean(blocks))
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintSchedule(sorted)
	}

	cli := ctx.CLIFormatter()
	cli.Success(fmt.Sprintf("Schedule saved (%d blocks)", len(sorted)))
	cli.Muted("The display picks it up on its next reload.")
	return nil
}

func runScheduleCheck(cmd *cobra.Command, args []string) error {
	var blocks []model.TimeBlock
	var err error

	if flagScheduleCheckFile == "" && len(args) == 0 {
		blocks, err = ctx.ScheduleRepo.Get(cmd.Context())
	} else {
		blocks, err = readScheduleBlocks(flagScheduleCheckFile, args)
	}
	if err != nil {
		return err
	}

	checkErr := schedule.Validate(blocks)

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintCheck(checkErr, len(blocks))
	}
	if checkErr != nil {
		return checkErr
	}

	ctx.CLIFormatter().Success(fmt.Sprintf("Schedule is valid (%d blocks)", len(blocks)))
	return nil
}

// readScheduleBlocks reads blocks from a JSON document (the same shape
// the HTTP API accepts) or from inline start-end=label arguments.
func readScheduleBlocks(file string, args []string) ([]model.TimeBlock, error) {
	if file != "" {
		var data []byte
		var err error
		if file == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(file)
		}
		if err != nil {
			return nil, err
		}

		var doc struct {
			Blocks []model.TimeBlock `json:"blocks"`
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("invalid schedule file: %w", err)
		}
		return doc.Blocks, nil
	}

	blocks := make([]model.TimeBlock, 0, len(args))
	for _, arg := range args {
		block, err := parseBlockArg(arg)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}

// parseBlockArg parses one "06:30-09:00=Morning routine" argument.
func parseBlockArg(arg string) (model.TimeBlock, error) {
	times, label, ok := strings.Cut(arg, "=")
	if !ok {
		return model.TimeBlock{}, fmt.Errorf("invalid block %q (use start-end=label)", arg)
	}
	start, end, ok := strings.Cut(times, "-")
	if !ok {
		return model.TimeBlock{}, fmt.Errorf("invalid block %q (use start-end=label)", arg)
	}

	return model.TimeBlock{
		Start: strings.TrimSpace(start),
		End:   strings.TrimSpace(end),
		Label: model.StringList{strings.TrimSpace(label)},
	}, nil
}
