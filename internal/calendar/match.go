// Package calendar decides which events occur on a given date and
// which single event, if any, overrides the schedule display right now.
package calendar

import (
	"sort"
	"time"

	"github.com/carebell/carebell/internal/model"
	"github.com/carebell/carebell/internal/timeutil"
)

// OccursOn reports whether the event occurs on the given date key.
// One-off events span [StartDate, EndDate]; recurring events never
// occur before their own start date. Malformed dates never match.
func OccursOn(event model.Event, dateKey string) bool {
	if event.StartDate == "" {
		return false
	}

	if event.Repeat == "" || event.Repeat == model.RepeatNone {
		end := event.EndDate
		if end == "" {
			end = event.StartDate
		}
		// Fixed-width ISO dates order correctly as strings.
		return event.StartDate <= dateKey && dateKey <= end
	}

	if dateKey < event.StartDate {
		return false
	}

	switch event.Repeat {
	case model.RepeatDaily:
		return true
	case model.RepeatWeekly:
		day, start, err := parsePair(dateKey, event.StartDate)
		if err != nil {
			return false
		}
		return day.Weekday() == start.Weekday()
	case model.RepeatYearly:
		day, start, err := parsePair(dateKey, event.StartDate)
		if err != nil {
			return false
		}
		return day.Month() == start.Month() && day.Day() == start.Day()
	}
	return false
}

func parsePair(dateKey, startDate string) (day, start time.Time, err error) {
	day, err = timeutil.ParseDateKey(dateKey)
	if err != nil {
		return
	}
	start, err = timeutil.ParseDateKey(startDate)
	return
}

// ResolveActive returns the event overriding the display at the given
// minute. Candidates for the date are ordered all-day first, then timed
// by start minute; the first match wins. An all-day event matches
// unconditionally, a timed event only while it contains the minute.
// The boolean distinguishes "no active event" from a match.
func ResolveActive(events []model.Event, dateKey string, nowMin int) (*model.Event, bool) {
	candidates := OccurringOn(events, dateKey)
	for i := range candidates {
		if candidates[i].AllDay {
			return &candidates[i], true
		}
		if candidates[i].StartMinute() <= nowMin && nowMin < candidates[i].EndMinute() {
			return &candidates[i], true
		}
	}
	return nil, false
}

// OccurringOn returns the events occurring on the date in display
// precedence order: all-day events first, then timed events by start
// minute, ties in stored order.
func OccurringOn(events []model.Event, dateKey string) []model.Event {
	var matched []model.Event
	for _, event := range events {
		if OccursOn(event, dateKey) {
			matched = append(matched, event)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].AllDay != matched[j].AllDay {
			return matched[i].AllDay
		}
		return matched[i].StartMinute() < matched[j].StartMinute()
	})
	return matched
}
