// Package tui provides the terminal display for CareBell.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette for the display.
var (
	ColorPrimary = lipgloss.Color("#7C3AED") // Purple
	ColorMuted   = lipgloss.Color("#6B7280") // Gray
	ColorWarning = lipgloss.Color("#F59E0B") // Yellow
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorSuccess = lipgloss.Color("#10B981") // Green
	ColorActive  = lipgloss.Color("#3B82F6") // Blue
	ColorBorder  = lipgloss.Color("#4B5563") // Dark gray
)

// Base styles for the display.
var (
	// StyleClock is used for the large clock in the header.
	StyleClock = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// StyleDate is used for the weekday/date line next to the clock.
	StyleDate = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleTitle is used for section titles.
	StyleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	// StyleSubtitle is used for secondary information.
	StyleSubtitle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleNow is used for the NOW marker on the current block.
	StyleNow = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSuccess)

	// StyleUpcoming is used when the highlighted block has not started yet.
	StyleUpcoming = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorActive)

	// StyleBlockLabel is used for the current block's activity text.
	StyleBlockLabel = lipgloss.NewStyle().
			Bold(true)

	// StyleDone is used for completed blocks.
	StyleDone = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// StyleCurrent is used for the current row in the schedule list.
	StyleCurrent = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorActive)

	// StyleWarning is used for warning messages.
	StyleWarning = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// StyleError is used for error messages.
	StyleError = lipgloss.NewStyle().
			Foreground(ColorError)

	// StyleAlertText is used for the reminder flash text.
	StyleAlertText = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWarning)

	// StyleHelp is used for help text at the bottom.
	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1)

	// StyleHelpKey is used for keyboard shortcut keys.
	StyleHelpKey = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSuccess)

	// StyleHelpDesc is used for keyboard shortcut descriptions.
	StyleHelpDesc = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// Box styles for the display sections.
var (
	// StyleNowBox frames the current-activity section.
	StyleNowBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSuccess).
			Padding(1, 2).
			MarginBottom(1)

	// StyleIdleBox frames the current-activity section when nothing is
	// scheduled.
	StyleIdleBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2).
			MarginBottom(1)

	// StyleEventBox frames the event banner.
	StyleEventBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorWarning).
			Padding(1, 2).
			MarginBottom(1)

	// StyleAlertBox frames the reminder flash.
	StyleAlertBox = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(ColorWarning).
			Padding(0, 2).
			MarginBottom(1)

	// StyleScheduleBox frames the day plan list.
	StyleScheduleBox = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorder).
				Padding(1, 2).
				MarginBottom(1)
)

// ProgressBar creates a progress bar string.
func ProgressBar(percentage float64, width int) string {
	if percentage > 100 {
		percentage = 100
	}
	if percentage < 0 {
		percentage = 0
	}

	filled := int(float64(width) * percentage / 100)
	empty := width - filled

	filledStyle := lipgloss.NewStyle().Foreground(ColorSuccess)
	emptyStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	bar := ""
	for i := 0; i < filled; i++ {
		bar += filledStyle.Render("█") // Full block
	}
	for i := 0; i < empty; i++ {
		bar += emptyStyle.Render("░") // Light shade
	}

	return bar
}
