package model

import (
	"errors"
	"fmt"

	"github.com/carebell/carebell/internal/timeutil"
	"github.com/carebell/carebell/internal/validate"
)

// Repeat is the recurrence rule of a calendar event.
type Repeat string

// Recurrence rules. The set is closed: there are no intervals, counts,
// or exception dates.
const (
	RepeatNone   Repeat = "none"
	RepeatDaily  Repeat = "daily"
	RepeatWeekly Repeat = "weekly"
	RepeatYearly Repeat = "yearly"
)

// ValidRepeats returns the supported recurrence rules.
func ValidRepeats() []Repeat {
	return []Repeat{RepeatNone, RepeatDaily, RepeatWeekly, RepeatYearly}
}

// IsValidRepeat checks if a recurrence rule is supported.
func IsValidRepeat(r Repeat) bool {
	for _, valid := range ValidRepeats() {
		if r == valid {
			return true
		}
	}
	return false
}

// EventSource distinguishes family-entered events from derived ones.
type EventSource string

// Event sources. System events (birthdays) are recomputed from the
// profile on every load and never persisted.
const (
	SourceUser   EventSource = "user"
	SourceSystem EventSource = "system"
)

// Event is a calendar entry. While an event is active it overrides the
// schedule display and suppresses the done action.
type Event struct {
	ID        string      `json:"id"`
	StartDate string      `json:"startDate"`
	EndDate   string      `json:"endDate"`
	Start     string      `json:"start"`
	End       string      `json:"end"`
	Label     string      `json:"label"`
	AllDay    bool        `json:"allDay"`
	Repeat    Repeat      `json:"repeat"`
	Source    EventSource `json:"source"`
}

// Normalize applies the storage invariants: canonical date keys, date
// order, all-day clock bounds, and defaults for repeat and source.
func (e *Event) Normalize() {
	e.Label = validate.Label(e.Label)

	// Date keys compare lexicographically, so "2026-3-9" must become
	// "2026-03-09" before it is stored.
	if d, err := timeutil.ParseDateKey(e.StartDate); err == nil {
		e.StartDate = timeutil.DateKey(d)
	}
	if d, err := timeutil.ParseDateKey(e.EndDate); err == nil {
		e.EndDate = timeutil.DateKey(d)
	}

	if e.EndDate == "" {
		e.EndDate = e.StartDate
	}
	if e.StartDate > e.EndDate {
		e.StartDate, e.EndDate = e.EndDate, e.StartDate
	}
	if e.AllDay {
		e.Start, e.End = "00:00", "23:59"
	}
	if e.Repeat == "" {
		e.Repeat = RepeatNone
	}
	if e.Source == "" {
		e.Source = SourceUser
	}
}

// Validate checks the stored-event invariants. Callers normalize first.
func (e *Event) Validate() error {
	if e.Label == "" {
		return errors.New("event label is required")
	}
	if _, err := timeutil.ParseDateKey(e.StartDate); err != nil {
		return fmt.Errorf("invalid event start date %q", e.StartDate)
	}
	if _, err := timeutil.ParseDateKey(e.EndDate); err != nil {
		return fmt.Errorf("invalid event end date %q", e.EndDate)
	}
	if !IsValidRepeat(e.Repeat) {
		return fmt.Errorf("invalid repeat rule %q", e.Repeat)
	}

	startMin, err := timeutil.ToMinutes(e.Start)
	if err != nil {
		return fmt.Errorf("invalid event start time %q", e.Start)
	}
	endMin, err := timeutil.ToMinutes(e.End)
	if err != nil {
		return fmt.Errorf("invalid event end time %q", e.End)
	}
	if startMin >= endMin {
		return errors.New("event end must be after start")
	}
	return nil
}

// IsSystem reports whether the event is derived rather than stored.
func (e *Event) IsSystem() bool {
	return e.Source == SourceSystem
}

// StartMinute returns the start clock as minutes since midnight.
// Invalid clocks count as midnight; validation catches them earlier.
func (e *Event) StartMinute() int {
	min, err := timeutil.ToMinutes(e.Start)
	if err != nil {
		return 0
	}
	return min
}

// EndMinute returns the end clock as minutes since midnight.
func (e *Event) EndMinute() int {
	min, err := timeutil.ToMinutes(e.End)
	if err != nil {
		return 0
	}
	return min
}
