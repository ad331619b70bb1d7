package output

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carebell/carebell/internal/model"
)

// =============================================================================
// Formatter Tests
// =============================================================================

func TestNewFormatter(t *testing.T) {
	f := NewFormatter()
	assert.NotNil(t, f)
	assert.Equal(t, FormatCLI, f.Format)
	assert.Equal(t, ColorAuto, f.ColorMode)
}

func TestFormatterIsColorEnabled(t *testing.T) {
	t.Run("color_always", func(t *testing.T) {
		f := &Formatter{ColorMode: ColorAlways}
		assert.True(t, f.IsColorEnabled())
	})

	t.Run("color_never", func(t *testing.T) {
		f := &Formatter{ColorMode: ColorNever}
		assert.False(t, f.IsColorEnabled())
	})

	t.Run("color_auto_non_terminal", func(t *testing.T) {
		var buf bytes.Buffer
		f := &Formatter{
			Writer:    &buf,
			ColorMode: ColorAuto,
		}
		// Buffer is not a terminal
		assert.False(t, f.IsColorEnabled())
	})
}

func TestFormatterPrint(t *testing.T) {
	var buf bytes.Buffer
	f := &Formatter{Writer: &buf}

	f.Print("hello")
	assert.Equal(t, "hello", buf.String())
}

func TestFormatterPrintln(t *testing.T) {
	var buf bytes.Buffer
	f := &Formatter{Writer: &buf}

	f.Println("hello")
	assert.Equal(t, "hello\n", buf.String())
}

func TestFormatterPrintf(t *testing.T) {
	var buf bytes.Buffer
	f := &Formatter{Writer: &buf}

	f.Printf("hello %s", "world")
	assert.Equal(t, "hello world", buf.String())
}

func TestFormatterJSON(t *testing.T) {
	var buf bytes.Buffer
	f := &Formatter{Writer: &buf}

	data := map[string]string{"key": "value"}
	err := f.JSON(data)
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), `"key": "value"`)
}

// =============================================================================
// Format and ColorMode Constants Tests
// =============================================================================

func TestFormatConstants(t *testing.T) {
	assert.Equal(t, Format("cli"), FormatCLI)
	assert.Equal(t, Format("json"), FormatJSON)
	assert.Equal(t, Format("plain"), FormatPlain)
}

func TestColorModeConstants(t *testing.T) {
	assert.Equal(t, ColorMode("auto"), ColorAuto)
	assert.Equal(t, ColorMode("always"), ColorAlways)
	assert.Equal(t, ColorMode("never"), ColorNever)
}

// =============================================================================
// Duration and Time Formatting Tests
// =============================================================================

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		duration time.Duration
		expected string
	}{
		{0, "0s"},
		{30 * time.Second, "30s"},
		{60 * time.Second, "1m"},
		{90 * time.Second, "1m 30s"},
		{5 * time.Minute, "5m"},
		{59 * time.Minute, "59m"},
		{60 * time.Minute, "1h"},
		{90 * time.Minute, "1h 30m"},
		{2*time.Hour + 15*time.Minute, "2h 15m"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDuration(tt.duration))
		})
	}
}

func TestFormatTime(t *testing.T) {
	tm := time.Date(2026, 3, 10, 14, 30, 45, 0, time.Local)
	result := FormatTime(tm)
	assert.Contains(t, result, "2026-03-10")
	assert.Contains(t, result, "14:30:45")
}

func TestFormatDate(t *testing.T) {
	tm := time.Date(2026, 3, 10, 14, 30, 45, 0, time.Local)
	assert.Equal(t, "2026-03-10", FormatDate(tm))
}

func TestFormatTimeOnly(t *testing.T) {
	tm := time.Date(2026, 3, 10, 14, 30, 45, 0, time.Local)
	assert.Equal(t, "14:30", FormatTimeOnly(tm))
}

// =============================================================================
// CLIFormatter Tests
// =============================================================================

func newTestCLI() (*CLIFormatter, *bytes.Buffer) {
	var buf bytes.Buffer
	f := &Formatter{Writer: &buf, ColorMode: ColorNever}
	return NewCLIFormatter(f), &buf
}

func TestCLIMessages(t *testing.T) {
	c, buf := newTestCLI()

	c.Success("saved")
	c.Warning("careful")
	c.Error("broken")
	c.Muted("aside")

	out := buf.String()
	assert.Contains(t, out, "✓ saved")
	assert.Contains(t, out, "⚠ careful")
	assert.Contains(t, out, "✗ broken")
	assert.Contains(t, out, "aside")
}

func TestCLIPrintSchedule(t *testing.T) {
	c, buf := newTestCLI()

	blocks := []model.BuiltBlock{
		{Start: "06:30", End: "09:00", StartMin: 390, EndMin: 540, Label: "Morning routine"},
		{Start: "09:00", End: "12:00", StartMin: 540, EndMin: 720, Label: "Morning walk"},
	}
	c.PrintSchedule(blocks, 1, map[int]bool{0: true})

	out := buf.String()
	assert.Contains(t, out, "  06:30-09:00  Morning routine ✓")
	assert.Contains(t, out, "→ 09:00-12:00  Morning walk")
}

func TestCLIPrintScheduleEmpty(t *testing.T) {
	c, buf := newTestCLI()
	c.PrintSchedule(nil, 0, nil)
	assert.Contains(t, buf.String(), "No schedule for today.")
}

func TestCLIPrintEvents(t *testing.T) {
	c, buf := newTestCLI()

	c.PrintEvents([]model.Event{
		{ID: "abc", StartDate: "2026-03-15", EndDate: "2026-03-15", Start: "14:00", End: "15:00",
			Label: "Doctor visit", Repeat: model.RepeatNone, Source: model.SourceUser},
		{ID: "birthday-rose", StartDate: "1948-03-15", EndDate: "1948-03-15", AllDay: true,
			Label: "Rose's birthday", Repeat: model.RepeatYearly, Source: model.SourceSystem},
	})

	out := buf.String()
	assert.Contains(t, out, "Doctor visit")
	assert.Contains(t, out, "14:00-15:00")
	assert.Contains(t, out, "all day")
	assert.Contains(t, out, "birthday-rose")
	assert.Contains(t, out, "system")
}

func TestCLIPrintDone(t *testing.T) {
	c, buf := newTestCLI()

	c.PrintDone("2026-03-10", []DoneItem{
		{Index: 0, Start: "06:30", End: "09:00", Label: "Morning routine", Done: true},
		{Index: 1, Start: "09:00", End: "12:00", Label: "Morning walk"},
	})

	out := buf.String()
	assert.Contains(t, out, "Done marks for 2026-03-10")
	assert.Contains(t, out, "Morning routine")
	assert.Contains(t, out, "✓")
}

func TestCLIPrintActivity(t *testing.T) {
	c, buf := newTestCLI()

	c.PrintActivity([]model.ActivityEntry{
		{Title: "Lunch", DateKey: "2026-03-10",
			CompletedAt: time.Date(2026, 3, 10, 12, 45, 0, 0, time.Local)},
	})

	out := buf.String()
	assert.Contains(t, out, "Lunch")
	assert.Contains(t, out, "12:45")
	assert.Contains(t, out, "2026-03-10")
}

func TestCLIPrintSettings(t *testing.T) {
	c, buf := newTestCLI()

	c.PrintSettings(model.Settings{AudioEnabled: true, AlertCount: 3}, []int{30, 15, 5})

	out := buf.String()
	assert.Contains(t, out, "Audio cues:   on")
	assert.Contains(t, out, "Alert preset: 3 (30, 15, 5 minutes before)")
}

func TestCLIPrintSettingsDefaultPreset(t *testing.T) {
	c, buf := newTestCLI()

	c.PrintSettings(model.Settings{AlertCount: 0}, []int{30, 15, 5})

	out := buf.String()
	assert.Contains(t, out, "Audio cues:   off")
	assert.Contains(t, out, "Alert preset: default")
}

func TestCLIPrintDayProgress(t *testing.T) {
	c, buf := newTestCLI()
	c.PrintDayProgress("12:00", 50)

	out := buf.String()
	assert.Contains(t, out, "12:00")
	assert.Contains(t, out, "█")
	assert.Contains(t, out, "░")
	assert.Contains(t, out, "50%")
}

// =============================================================================
// ProgressBar Tests
// =============================================================================

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name       string
		percentage float64
		width      int
		filled     int
	}{
		{"empty", 0, 10, 0},
		{"half", 50, 10, 5},
		{"full", 100, 10, 10},
		{"clamped_high", 150, 10, 10},
		{"clamped_low", -5, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := ProgressBar(tt.percentage, tt.width)
			assert.Equal(t, tt.filled, bytes.Count([]byte(bar), []byte("█")))
			assert.Equal(t, tt.width-tt.filled, bytes.Count([]byte(bar), []byte("░")))
		})
	}
}

// =============================================================================
// Table Tests
// =============================================================================

func TestPrintTable(t *testing.T) {
	c, buf := newTestCLI()

	c.PrintTable([]string{"ID", "LABEL"}, []TableRow{
		{Columns: []string{"1", "Morning walk"}},
		{Columns: []string{"2", "Lunch"}},
	})

	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "LABEL")
	assert.Contains(t, out, "Morning walk")
	assert.Contains(t, out, "─")
}

func TestPrintTableEmpty(t *testing.T) {
	c, buf := newTestCLI()
	c.PrintTable([]string{"ID"}, nil)
	assert.Empty(t, buf.String())
}

// =============================================================================
// JSONFormatter Tests
// =============================================================================

func newTestJSON() (*JSONFormatter, *bytes.Buffer) {
	var buf bytes.Buffer
	f := &Formatter{Writer: &buf, Format: FormatJSON}
	return NewJSONFormatter(f), &buf
}

func TestJSONPrintError(t *testing.T) {
	j, buf := newTestJSON()

	err := j.PrintError("error", "event not found", "Use 'carebell event list' to see event IDs.")
	require.NoError(t, err)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "event not found", resp.Error)
	assert.Contains(t, resp.Message, "event list")
}

func TestJSONPrintOK(t *testing.T) {
	j, buf := newTestJSON()

	require.NoError(t, j.PrintOK("event removed"))

	var resp OKResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "event removed", resp.Message)
}

func TestJSONPrintSchedule(t *testing.T) {
	j, buf := newTestJSON()

	err := j.PrintSchedule([]model.TimeBlock{
		{Start: "09:00", End: "12:00", Label: model.StringList{"Morning walk"}},
	})
	require.NoError(t, err)

	var resp ScheduleResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	require.Len(t, resp.Blocks, 1)
	assert.Equal(t, "09:00", resp.Blocks[0].Start)
}

func TestJSONPrintCheck(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		j, buf := newTestJSON()
		require.NoError(t, j.PrintCheck(nil, 4))

		var resp CheckResponse
		require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, 4, resp.Blocks)
		assert.Empty(t, resp.Error)
	})

	t.Run("invalid", func(t *testing.T) {
		j, buf := newTestJSON()
		require.NoError(t, j.PrintCheck(assert.AnError, 0))

		var resp CheckResponse
		require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
		assert.Equal(t, "invalid", resp.Status)
		assert.NotEmpty(t, resp.Error)
	})
}

func TestJSONPrintDone(t *testing.T) {
	j, buf := newTestJSON()

	err := j.PrintDone("2026-03-10", []DoneItem{
		{Index: 0, Start: "06:30", End: "09:00", Label: "Morning routine", Done: true},
	})
	require.NoError(t, err)

	var resp DoneResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "2026-03-10", resp.DateKey)
	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Items[0].Done)
}

func TestJSONPrintSettings(t *testing.T) {
	j, buf := newTestJSON()

	err := j.PrintSettings(model.Settings{AudioEnabled: true, AlertCount: 2}, []int{15, 5})
	require.NoError(t, err)

	var resp SettingsResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.True(t, resp.AudioEnabled)
	assert.Equal(t, 2, resp.AlertCount)
	assert.Equal(t, []int{15, 5}, resp.AlertMinutes)
}
