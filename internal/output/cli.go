package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/carebell/carebell/internal/model"
)

// Styles for CLI output.
var (
	// Colors
	colorPrimary = lipgloss.Color("#7C3AED") // Purple
	colorMuted   = lipgloss.Color("#6B7280") // Gray
	colorWarning = lipgloss.Color("#F59E0B") // Yellow
	colorError   = lipgloss.Color("#EF4444") // Red
	colorSuccess = lipgloss.Color("#10B981") // Green

	// Styles
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleBold = lipgloss.NewStyle().
			Bold(true)

	styleCurrent = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleDone = lipgloss.NewStyle().
			Foreground(colorSuccess)
)

// CLIFormatter provides CLI-specific formatting.
type CLIFormatter struct {
	*Formatter
}

// NewCLIFormatter creates a new CLI formatter.
func NewCLIFormatter(f *Formatter) *CLIFormatter {
	return &CLIFormatter{Formatter: f}
}

// Title prints a title.
func (c *CLIFormatter) Title(text string) {
	if c.IsColorEnabled() {
		c.Println(styleTitle.Render(text))
	} else {
		c.Println(text)
	}
}

// Success prints a success message.
func (c *CLIFormatter) Success(text string) {
	if c.IsColorEnabled() {
		c.Println(styleSuccess.Render("✓ " + text))
	} else {
		c.Println("✓ " + text)
	}
}

// Warning prints a warning message.
func (c *CLIFormatter) Warning(text string) {
	if c.IsColorEnabled() {
		c.Println(styleWarning.Render("⚠ " + text))
	} else {
		c.Println("⚠ " + text)
	}
}

// Error prints an error message.
func (c *CLIFormatter) Error(text string) {
	if c.IsColorEnabled() {
		c.Println(styleError.Render("✗ " + text))
	} else {
		c.Println("✗ " + text)
	}
}

// Muted prints muted text.
func (c *CLIFormatter) Muted(text string) {
	if c.IsColorEnabled() {
		c.Println(styleMuted.Render(text))
	} else {
		c.Println(text)
	}
}

// PrintDayProgress prints the clock with a bar showing how far through
// the day it is.
func (c *CLIFormatter) PrintDayProgress(clock string, progress float64) {
	bar := ProgressBar(progress, 24)
	line := fmt.Sprintf("%s  %s  %3.0f%%", clock, bar, progress)
	if c.IsColorEnabled() {
		c.Println(styleBold.Render(clock) + "  " + bar + fmt.Sprintf("  %3.0f%%", progress))
		return
	}
	c.Println(line)
}

// PrintSchedule prints the built day schedule. The current block gets a
// marker, completed blocks a check mark.
func (c *CLIFormatter) PrintSchedule(blocks []model.BuiltBlock, currentIndex int, done map[int]bool) {
	if len(blocks) == 0 {
		c.Muted("No schedule for today.")
		c.Muted("Use 'carebell schedule set' to create one.")
		return
	}

	for i, b := range blocks {
		marker := "  "
		if i == currentIndex {
			marker = "→ "
		}
		line := fmt.Sprintf("%s%s-%s  %s", marker, b.Start, b.End, b.Label)
		if done[i] {
			line += " ✓"
		}

		switch {
		case !c.IsColorEnabled():
			c.Println(line)
		case i == currentIndex:
			c.Println(styleCurrent.Render(line))
		case done[i]:
			c.Println(styleDone.Render(line))
		default:
			c.Println(line)
		}
	}
}

// PrintEvents prints the event list, derived system events included.
func (c *CLIFormatter) PrintEvents(events []model.Event) {
	if len(events) == 0 {
		c.Muted("No events.")
		return
	}

	rows := make([]TableRow, 0, len(events))
	for _, ev := range events {
		clock := ev.Start + "-" + ev.End
		if ev.AllDay {
			clock = "all day"
		}
		date := ev.StartDate
		if ev.EndDate != ev.StartDate {
			date += ".." + ev.EndDate
		}
		rows = append(rows, TableRow{Columns: []string{
			ev.ID, date, clock, ev.Label, string(ev.Repeat), string(ev.Source),
		}})
	}
	c.PrintTable([]string{"ID", "DATE", "TIME", "LABEL", "REPEAT", "SOURCE"}, rows)
}

// PrintDone prints today's done state per block.
func (c *CLIFormatter) PrintDone(dateKey string, items []DoneItem) {
	c.Title("Done marks for " + dateKey)
	if len(items) == 0 {
		c.Muted("No schedule for today.")
		return
	}

	rows := make([]TableRow, 0, len(items))
	for _, item := range items {
		mark := ""
		if item.Done {
			mark = "✓"
		}
		rows = append(rows, TableRow{Columns: []string{
			fmt.Sprintf("%d", item.Index), item.Start + "-" + item.End, item.Label, mark,
		}})
	}
	c.PrintTable([]string{"#", "TIME", "BLOCK", "DONE"}, rows)
}

// PrintActivity prints the done-activity log.
func (c *CLIFormatter) PrintActivity(entries []model.ActivityEntry) {
	if len(entries) == 0 {
		c.Muted("No activity recorded yet.")
		return
	}

	rows := make([]TableRow, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, TableRow{Columns: []string{
			entry.DateKey, FormatTimeOnly(entry.CompletedAt), entry.Title,
		}})
	}
	c.PrintTable([]string{"DATE", "TIME", "BLOCK"}, rows)
}

// PrintSettings prints the display settings. minutes is the alert
// preset resolved to its offsets.
func (c *CLIFormatter) PrintSettings(settings model.Settings, minutes []int) {
	audio := "off"
	if settings.AudioEnabled {
		audio = "on"
	}
	c.Printf("Audio cues:   %s\n", audio)

	offsets := make([]string, len(minutes))
	for i, m := range minutes {
		offsets[i] = fmt.Sprintf("%d", m)
	}
	preset := fmt.Sprintf("%d", settings.AlertCount)
	if settings.AlertCount == 0 {
		preset = "default"
	}
	c.Printf("Alert preset: %s (%s minutes before)\n", preset, strings.Join(offsets, ", "))
}

// ProgressBar creates a simple progress bar.
func ProgressBar(percentage float64, width int) string {
	if percentage > 100 {
		percentage = 100
	}
	if percentage < 0 {
		percentage = 0
	}

	filled := int(float64(width) * percentage / 100)
	empty := width - filled

	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)
	return bar
}

// Table helpers for CLI output.
type TableRow struct {
	Columns []string
}

// PrintTable prints a simple table.
func (c *CLIFormatter) PrintTable(headers []string, rows []TableRow) {
	if len(rows) == 0 {
		return
	}

	// Calculate column widths
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, col := range row.Columns {
			if i < len(widths) && len(col) > widths[i] {
				widths[i] = len(col)
			}
		}
	}

	// Print headers
	var headerLine strings.Builder
	for i, h := range headers {
		headerLine.WriteString(fmt.Sprintf("%-*s  ", widths[i], h))
	}
	if c.IsColorEnabled() {
		c.Println(styleBold.Render(headerLine.String()))
	} else {
		c.Println(headerLine.String())
	}

	// Print separator
	var sep strings.Builder
	for _, w := range widths {
		sep.WriteString(strings.Repeat("─", w) + "  ")
	}
	c.Println(sep.String())

	// Print rows
	for _, row := range rows {
		var rowLine strings.Builder
		for i, col := range row.Columns {
			if i < len(widths) {
				rowLine.WriteString(fmt.Sprintf("%-*s  ", widths[i], col))
			}
		}
		c.Println(rowLine.String())
	}
}
