package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMinutes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"midnight", "00:00", 0, false},
		{"morning", "07:30", 450, false},
		{"last_minute", "23:59", 1439, false},
		{"end_of_day", "24:00", 1440, false},
		{"end_of_day_with_minutes", "24:01", 0, true},
		{"hour_out_of_range", "25:00", 0, true},
		{"minute_out_of_range", "12:60", 0, true},
		{"unpadded_hour", "9:00", 0, true},
		{"missing_minutes", "12", 0, true},
		{"empty", "", 0, true},
		{"garbage", "noon", 0, true},
		{"negative", "-1:00", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToMinutes(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidClock)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		name  string
		input int
		want  string
	}{
		{"midnight", 0, "00:00"},
		{"morning", 450, "07:30"},
		{"last_minute", 1439, "23:59"},
		{"end_of_day", 1440, "24:00"},
		{"clamped_below", -15, "00:00"},
		{"clamped_above", 2000, "24:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMinutes(tt.input))
		})
	}
}

func TestFormatMinutesRoundTrip(t *testing.T) {
	for _, clock := range []string{"00:00", "06:45", "12:00", "23:59", "24:00"} {
		min, err := ToMinutes(clock)
		require.NoError(t, err)
		assert.Equal(t, clock, FormatMinutes(min))
	}
}

func TestDateKey(t *testing.T) {
	d := time.Date(2026, time.March, 7, 23, 59, 59, 0, time.Local)
	assert.Equal(t, "2026-03-07", DateKey(d))

	// The key comes from local calendar fields, so one second later is
	// the next day regardless of any UTC offset.
	assert.Equal(t, "2026-03-08", DateKey(d.Add(time.Second)))
}

func TestParseDateKey(t *testing.T) {
	d, err := ParseDateKey("2026-03-07")
	require.NoError(t, err)
	assert.Equal(t, 2026, d.Year())
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 7, d.Day())

	_, err = ParseDateKey("07.03.2026")
	assert.Error(t, err)
}

func TestMinuteOfDay(t *testing.T) {
	d := time.Date(2026, time.March, 7, 14, 30, 59, 0, time.Local)
	assert.Equal(t, 870, MinuteOfDay(d))
}

func TestDayProgress(t *testing.T) {
	noon := time.Date(2026, time.March, 7, 12, 0, 0, 0, time.Local)
	assert.InDelta(t, 50.0, DayProgress(noon), 0.01)

	start := time.Date(2026, time.March, 7, 0, 0, 30, 0, time.Local)
	assert.InDelta(t, 0.0, DayProgress(start), 0.01)

	// Saturates during the last minute of the day.
	lastMinute := time.Date(2026, time.March, 7, 23, 59, 1, 0, time.Local)
	assert.Equal(t, 100.0, DayProgress(lastMinute))
}

func TestParseNaturalDate(t *testing.T) {
	today, err := ParseNaturalDate("")
	require.NoError(t, err)
	assert.Equal(t, DateKey(time.Now()), DateKey(today))

	today, err = ParseNaturalDate("today")
	require.NoError(t, err)
	assert.Equal(t, DateKey(time.Now()), DateKey(today))

	d, err := ParseNaturalDate("2026-03-14")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-14", DateKey(d))

	tomorrow, err := ParseNaturalDate("tomorrow")
	require.NoError(t, err)
	assert.Equal(t, DateKey(time.Now().AddDate(0, 0, 1)), DateKey(tomorrow))

	_, err = ParseNaturalDate("not a date at all zzz")
	assert.Error(t, err)
}
