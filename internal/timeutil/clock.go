// Package timeutil provides minute-of-day time handling for CareBell.
// The whole application reasons about a single wall-clock day: clock
// strings are strict zero-padded "HH:MM" values and dates are local
// "YYYY-MM-DD" keys. There are no timezones and no UTC conversions.
package timeutil

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// MinutesPerDay is the number of minutes in a full day. The sentinel
// clock value "24:00" maps to it so a block can run to midnight.
const MinutesPerDay = 1440

// DateKeyLayout is the layout of local calendar date keys.
const DateKeyLayout = "2006-01-02"

// ErrInvalidClock is returned when a clock string cannot be parsed.
var ErrInvalidClock = errors.New("invalid clock time")

// clockRegex matches strict zero-padded clock values like "07:30".
var clockRegex = regexp.MustCompile(`^\d{2}:\d{2}$`)

// ToMinutes converts a strict "HH:MM" clock string to minutes since
// midnight. Hours run 00-23 with minutes 00-59; the single exception is
// "24:00", which maps to 1440 so the last block of the day can end at
// midnight. Anything else, including out-of-range values like "25:00"
// or unpadded ones like "9:00", is rejected.
func ToMinutes(clock string) (int, error) {
	if !clockRegex.MatchString(clock) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, clock)
	}

	hh := int(clock[0]-'0')*10 + int(clock[1]-'0')
	mm := int(clock[3]-'0')*10 + int(clock[4]-'0')

	if hh == 24 {
		if mm != 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidClock, clock)
		}
		return MinutesPerDay, nil
	}
	if hh > 23 || mm > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, clock)
	}

	return hh*60 + mm, nil
}

// FormatMinutes renders minutes since midnight as a zero-padded "HH:MM"
// string. Values are clamped into [0, 1440]; 1440 renders as "24:00".
func FormatMinutes(min int) string {
	if min < 0 {
		min = 0
	}
	if min > MinutesPerDay {
		min = MinutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// MinuteOfDay returns the minute of the local day for t, in [0, 1439].
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// DateKey returns the local calendar date of t as "YYYY-MM-DD".
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// ParseDateKey parses a "YYYY-MM-DD" date key in the local timezone.
func ParseDateKey(key string) (time.Time, error) {
	return time.ParseInLocation(DateKeyLayout, key, time.Local)
}

// DayProgress returns how far through the day t is, as a percentage.
// The value saturates at 100 within the last minute of the day so the
// display never shows a partial bar at 23:59.
func DayProgress(t time.Time) float64 {
	min := MinuteOfDay(t)
	if min >= MinutesPerDay-1 {
		return 100
	}
	return float64(min) / MinutesPerDay * 100
}
