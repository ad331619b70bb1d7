package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/carebell/carebell/internal/notify"
)

const notifyTestTimeout = 30 * time.Second

// notifyCmd represents the notify command.
var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Verify family notification sinks",
	Long: `Verify the notification sinks configured for the family. Webhooks
and Telegram are set up in the config file; 'notify test' sends a
test message through every one of them.

Examples:
  carebell notify test`,
	RunE: runNotifyTest,
}

// notifyTestCmd sends a test notification.
var notifyTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Send a test notification to every configured sink",
	RunE:  runNotifyTest,
}

func init() {
	notifyCmd.AddCommand(notifyTestCmd)
	rootCmd.AddCommand(notifyCmd)
}

// notifyTestResult is the JSON shape of one sink's test outcome.
type notifyTestResult struct {
	Sink       string `json:"sink"`
	Success    bool   `json:"success"`
	DurationMs int64  `json:"durationMs"`
	Error      string `json:"error,omitempty"`
}

func runNotifyTest(cmd *cobra.Command, args []string) error {
	dispatcher, err := notify.FromConfig(ctx.Config.Notify)
	if err != nil {
		return err
	}
	if !dispatcher.HasSinks() {
		return fmt.Errorf("no notification sinks configured; add webhooks or telegram to the config file")
	}

	c, cancel := context.WithTimeout(cmd.Context(), notifyTestTimeout)
	defer cancel()
	results := dispatcher.Dispatch(c, notify.TestNotification())

	if ctx.IsJSON() {
		out := make([]notifyTestResult, 0, len(results))
		for _, result := range results {
			item := notifyTestResult{
				Sink:       result.Sink,
				Success:    result.Success,
				DurationMs: result.Duration.Milliseconds(),
			}
			if result.Error != nil {
				item.Error = result.Error.Error()
			}
			out = append(out, item)
		}
		return ctx.JSONFormatter().JSON(map[string]interface{}{"results": out})
	}

	cli := ctx.CLIFormatter()
	failed := 0
	for _, result := range results {
		if result.Success {
			cli.Success(fmt.Sprintf("%s: delivered (%dms)", result.Sink, result.Duration.Milliseconds()))
		} else {
			failed++
			cli.Error(fmt.Sprintf("%s: %v", result.Sink, result.Error))
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d sinks failed", failed, len(results))
	}
	return nil
}
