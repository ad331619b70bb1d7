package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/carebell/carebell/internal/calendar"
	errs "github.com/carebell/carebell/internal/errors"
	"github.com/carebell/carebell/internal/ics"
	"github.com/carebell/carebell/internal/model"
	"github.com/carebell/carebell/internal/timeutil"
)

var (
	flagEventDate   string
	flagEventUntil  string
	flagEventStart  string
	flagEventEnd    string
	flagEventAllDay bool
	flagEventRepeat string
	flagEventOn     string
	flagEventOutput string
)

// eventCmd represents the event command.
var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Manage calendar events",
	Long: `Add, list, or remove calendar events. Events override the regular
schedule on the display while they are active.

Dates accept natural language: "tomorrow", "next tuesday", "2026-03-14".

Examples:
  carebell event add "Doctor visit" --date "next tuesday" --start 14:00 --end 15:00
  carebell event add "Spring fair" --date saturday --all-day
  carebell event add "Water the plants" --date today --start 10:00 --end 10:30 --repeat daily
  carebell event list --on tomorrow
  carebell event remove <id>
  carebell event export --output family.ics`,
	RunE: runEventList,
}

// eventAddCmd adds an event.
var eventAddCmd = &cobra.Command{
	Use:   "add <label>",
	Short: "Add a calendar event",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventAdd,
}

// eventListCmd lists events.
var eventListCmd = &cobra.Command{
	Use:   "list",
	Short: "List calendar events, including birthdays from the profile",
	RunE:  runEventList,
}

// eventRemoveCmd removes an event.
var eventRemoveCmd = &cobra.Command{
	Use:               "remove <id>",
	Short:             "Remove a calendar event",
	Args:              cobra.ExactArgs(1),
	RunE:              runEventRemove,
	ValidArgsFunction: completeEventIDs,
}

// eventExportCmd writes the events as an ICS calendar.
var eventExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export events as an ICS calendar",
	Long: `Export all events, birthdays included, as an ICS calendar that family
calendar apps can subscribe to. Writes to stdout unless --output is given.`,
	RunE: runEventExport,
}

func init() {
	eventAddCmd.Flags().StringVar(&flagEventDate, "date", "",
		"Event date (natural language, default today)")
	eventAddCmd.Flags().StringVar(&flagEventUntil, "until", "",
		"Last date for multi-day or recurring events")
	eventAddCmd.Flags().StringVar(&flagEventStart, "start", "",
		"Start time hh:mm")
	eventAddCmd.Flags().StringVar(&flagEventEnd, "end", "",
		"End time hh:mm")
	eventAddCmd.Flags().BoolVar(&flagEventAllDay, "all-day", false,
		"All-day event")
	eventAddCmd.Flags().StringVar(&flagEventRepeat, "repeat", "",
		"Recurrence: none, daily, weekly, yearly")

	eventListCmd.Flags().StringVar(&flagEventOn, "on", "",
		"Only events occurring on this date (natural language)")

	eventExportCmd.Flags().StringVarP(&flagEventOutput, "output", "o", "",
		"Write the calendar to this file instead of stdout")

	eventCmd.AddCommand(eventAddCmd)
	eventCmd.AddCommand(eventListCmd)
	eventCmd.AddCommand(eventRemoveCmd)
	eventCmd.AddCommand(eventExportCmd)
	rootCmd.AddCommand(eventCmd)
}

func runEventAdd(cmd *cobra.Command, args []string) error {
	day, err := timeutil.ParseNaturalDate(flagEventDate)
	if err != nil {
		return fmt.Errorf("could not understand date %q: %w", flagEventDate, err)
	}

	ev := model.Event{
		StartDate: timeutil.DateKey(day),
		Start:     flagEventStart,
		End:       flagEventEnd,
		Label:     args[0],
		AllDay:    flagEventAllDay,
		Repeat:    model.Repeat(flagEventRepeat),
	}
	if flagEventUntil != "" {
		until, err := timeutil.ParseNaturalDate(flagEventUntil)
		if err != nil {
			return fmt.Errorf("could not understand date %q: %w", flagEventUntil, err)
		}
		ev.EndDate = timeutil.DateKey(until)
	}

	created, err := ctx.EventRepo.Add(cmd.Context(), ev)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintEvents([]model.Event{created})
	}

	cli := ctx.CLIFormatter()
	cli.Success(fmt.Sprintf("Added %q on %s", created.Label, created.StartDate))
	cli.Muted("ID: " + created.ID)
	return nil
}

func runEventList(cmd *cobra.Command, args []string) error {
	events, err := mergedEvents(cmd)
	if err != nil {
		return err
	}

	if flagEventOn != "" {
		day, err := timeutil.ParseNaturalDate(flagEventOn)
		if err != nil {
			return fmt.Errorf("could not understand date %q: %w", flagEventOn, err)
		}
		events = calendar.OccurringOn(events, timeutil.DateKey(day))
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintEvents(events)
	}

	ctx.CLIFormatter().PrintEvents(events)
	return nil
}

func runEventRemove(cmd *cobra.Command, args []string) error {
	id := args[0]

	system, err := isSystemEventID(cmd, id)
	if err != nil {
		return err
	}
	if system {
		return errs.ErrSystemEvent
	}

	if err := ctx.EventRepo.Remove(cmd.Context(), id); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintOK("event removed")
	}

	ctx.CLIFormatter().Success("Event removed")
	return nil
}

func runEventExport(cmd *cobra.Command, args []string) error {
	events, err := mergedEvents(cmd)
	if err != nil {
		return err
	}
	feed := ics.Generate(events)

	if flagEventOutput == "" {
		_, err := os.Stdout.WriteString(feed)
		return err
	}
	if err := os.WriteFile(flagEventOutput, []byte(feed), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", flagEventOutput, err)
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintOK(fmt.Sprintf("exported %d events to %s", len(events), flagEventOutput))
	}

	ctx.CLIFormatter().Success(fmt.Sprintf("Exported %d events to %s", len(events), flagEventOutput))
	return nil
}

// mergedEvents returns stored events plus the profile-derived ones.
func mergedEvents(cmd *cobra.Command) ([]model.Event, error) {
	stored, err := ctx.EventRepo.List(cmd.Context())
	if err != nil {
		return nil, err
	}
	profile, err := ctx.ProfileRepo.Get(cmd.Context())
	if err != nil {
		return nil, err
	}
	return calendar.Merged(stored, profile), nil
}

// isSystemEventID reports whether id names a profile-derived event,
// which cannot be removed through the event store.
func isSystemEventID(cmd *cobra.Command, id string) (bool, error) {
	profile, err := ctx.ProfileRepo.Get(cmd.Context())
	if err != nil {
		return false, err
	}
	for _, ev := range calendar.SystemEvents(profile) {
		if ev.ID == id {
			return true, nil
		}
	}
	return false, nil
}

// completeEventIDs offers stored event IDs for shell completion.
func completeEventIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if ctx == nil {
		return nil, cobra.ShellCompDirectiveError
	}

	stored, err := ctx.EventRepo.List(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	ids := make([]string, 0, len(stored))
	for _, ev := range stored {
		ids = append(ids, fmt.Sprintf("%s\t%s on %s", ev.ID, ev.Label, ev.StartDate))
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}
