package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/carebell/carebell/internal/alert"
)

// settingsCmd represents the settings command.
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change display settings",
	Long: `Show or change display settings. Settings are stored on the device
and survive restarts; the display applies changes on its next reload.

Examples:
  carebell settings
  carebell settings audio off
  carebell settings alerts 3
  carebell settings alerts default`,
	RunE: runSettingsShow,
}

// settingsShowCmd shows the current settings.
var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current settings",
	RunE:  runSettingsShow,
}

// settingsAudioCmd turns audio cues on or off.
var settingsAudioCmd = &cobra.Command{
	Use:   "audio <on|off>",
	Short: "Turn audio cues on or off",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsAudio,
}

// settingsAlertsCmd sets how many alerts fire before each block boundary.
var settingsAlertsCmd = &cobra.Command{
	Use:   "alerts <count|default>",
	Short: "Set how many alerts fire per block",
	Long: fmt.Sprintf(`Set how many alerts fire before each block boundary, from %d to %d.
Blocks can still override this with their own alert minutes. Pass
'default' to fall back to the configured default.`, alert.MinCount, alert.MaxCount),
	Args: cobra.ExactArgs(1),
	RunE: runSettingsAlerts,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsAudioCmd)
	settingsCmd.AddCommand(settingsAlertsCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	settings, err := ctx.SettingsRepo.Get(cmd.Context())
	if err != nil {
		return err
	}

	count := settings.AlertCount
	if count == 0 {
		count = ctx.Config.Alerts.DefaultCount
	}
	minutes := alert.Preset(count)

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintSettings(settings, minutes)
	}

	ctx.CLIFormatter().PrintSettings(settings, minutes)
	return nil
}

func runSettingsAudio(cmd *cobra.Command, args []string) error {
	var enabled bool
	switch strings.ToLower(args[0]) {
	case "on", "true", "yes":
		enabled = true
	case "off", "false", "no":
		enabled = false
	default:
		return fmt.Errorf("audio takes on or off, got %q", args[0])
	}

	if err := ctx.SettingsRepo.SetAudio(cmd.Context(), enabled); err != nil {
		return err
	}

	state := "off"
	if enabled {
		state = "on"
	}
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintOK("audio " + state)
	}

	ctx.CLIFormatter().Success("Audio cues " + state)
	return nil
}

func runSettingsAlerts(cmd *cobra.Command, args []string) error {
	if strings.EqualFold(args[0], "default") {
		if err := ctx.SettingsRepo.SetAlertCount(cmd.Context(), 0); err != nil {
			return err
		}
		if ctx.IsJSON() {
			return ctx.JSONFormatter().PrintOK("alert count reset to default")
		}
		ctx.CLIFormatter().Success(fmt.Sprintf("Alert count reset to the default (%d)", ctx.Config.Alerts.DefaultCount))
		return nil
	}

	count, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("alert count must be a number or 'default', got %q", args[0])
	}
	if count < alert.MinCount || count > alert.MaxCount {
		return fmt.Errorf("alert count must be between %d and %d", alert.MinCount, alert.MaxCount)
	}

	if err := ctx.SettingsRepo.SetAlertCount(cmd.Context(), count); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintOK(fmt.Sprintf("alert count set to %d", count))
	}

	ctx.CLIFormatter().Success(fmt.Sprintf("Alert count set to %d (%v minutes before each boundary)", count, alert.Preset(count)))
	return nil
}
