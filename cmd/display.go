package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/carebell/carebell/internal/bus"
	"github.com/carebell/carebell/internal/engine"
	"github.com/carebell/carebell/internal/tui"
)

// Minimum terminal size for the display to stay readable.
const (
	minDisplayWidth  = 60
	minDisplayHeight = 20
)

// displayCmd represents the display command.
var displayCmd = &cobra.Command{
	Use:   "display",
	Short: "Run the elder-facing terminal display",
	Long: `Run the full-screen schedule display. The engine runs in-process, so
this works standalone on the display device without a serve instance.

Keys: d marks the current block done, u undoes it, r reloads, q quits.`,
	RunE: runDisplay,
}

func init() {
	rootCmd.AddCommand(displayCmd)
}

func runDisplay(cmd *cobra.Command, args []string) error {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		if w < minDisplayWidth || h < minDisplayHeight {
			return fmt.Errorf("terminal is %dx%d; the display needs at least %dx%d",
				w, h, minDisplayWidth, minDisplayHeight)
		}
	}

	eventBus := bus.New()
	eng := engine.New(ctx.Store, eventBus, ctx.Config.Alerts.DefaultCount)
	if err := eng.Start(); err != nil {
		return err
	}
	defer eng.Stop()

	return tui.Run(tui.DisplayConfig{Engine: eng, Bus: eventBus})
}
