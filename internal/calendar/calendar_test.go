package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carebell/carebell/internal/model"
)

// =============================================================================
// OccursOn Tests
// =============================================================================

func TestOccursOnOneOff(t *testing.T) {
	event := model.Event{StartDate: "2026-03-10", EndDate: "2026-03-12", Repeat: model.RepeatNone}

	assert.False(t, OccursOn(event, "2026-03-09"))
	assert.True(t, OccursOn(event, "2026-03-10"))
	assert.True(t, OccursOn(event, "2026-03-11"))
	assert.True(t, OccursOn(event, "2026-03-12"))
	assert.False(t, OccursOn(event, "2026-03-13"))
}

func TestOccursOnSingleDay(t *testing.T) {
	// Missing end date means a single-day event.
	event := model.Event{StartDate: "2026-03-10"}

	assert.True(t, OccursOn(event, "2026-03-10"))
	assert.False(t, OccursOn(event, "2026-03-11"))
}

func TestOccursOnDaily(t *testing.T) {
	event := model.Event{StartDate: "2026-03-10", Repeat: model.RepeatDaily}

	assert.False(t, OccursOn(event, "2026-03-09"))
	assert.True(t, OccursOn(event, "2026-03-10"))
	assert.True(t, OccursOn(event, "2027-01-01"))
}

func TestOccursOnWeekly(t *testing.T) {
	// 2026-03-10 is a Tuesday.
	event := model.Event{StartDate: "2026-03-10", Repeat: model.RepeatWeekly}

	assert.True(t, OccursOn(event, "2026-03-10"))
	assert.True(t, OccursOn(event, "2026-03-17"))
	assert.False(t, OccursOn(event, "2026-03-11"))
	assert.False(t, OccursOn(event, "2026-03-03"), "never before start date")
}

func TestOccursOnYearly(t *testing.T) {
	event := model.Event{StartDate: "2020-03-15", Repeat: model.RepeatYearly}

	assert.True(t, OccursOn(event, "2024-03-15"))
	assert.False(t, OccursOn(event, "2024-03-16"))
	assert.False(t, OccursOn(event, "2019-03-15"), "never before start date")
}

func TestOccursOnMalformed(t *testing.T) {
	assert.False(t, OccursOn(model.Event{Repeat: model.RepeatDaily}, "2026-03-10"))
	assert.False(t, OccursOn(model.Event{StartDate: "not-a-date", Repeat: model.RepeatWeekly}, "2026-03-10"))
	assert.False(t, OccursOn(model.Event{StartDate: "2026-03-10", Repeat: model.RepeatYearly}, "bogus"))
}

// =============================================================================
// ResolveActive Tests
// =============================================================================

func TestResolveActivePrecedence(t *testing.T) {
	// An all-day event sorts before a timed one and matches
	// unconditionally, so it wins even inside the timed window.
	events := []model.Event{
		{ID: "visit", StartDate: "2026-03-10", Start: "10:00", End: "11:00", Label: "Doctor visit"},
		{ID: "holiday", StartDate: "2026-03-10", AllDay: true, Start: "00:00", End: "23:59", Label: "Holiday"},
	}

	active, ok := ResolveActive(events, "2026-03-10", 10*60+30)
	require.True(t, ok)
	assert.Equal(t, "holiday", active.ID)
}

func TestResolveActiveTimedWindow(t *testing.T) {
	events := []model.Event{
		{ID: "visit", StartDate: "2026-03-10", Start: "10:00", End: "11:00", Label: "Doctor visit"},
	}

	tests := []struct {
		name   string
		nowMin int
		want   bool
	}{
		{"before window", 9*60 + 59, false},
		{"window start is inclusive", 10 * 60, true},
		{"inside window", 10*60 + 30, true},
		{"window end is exclusive", 11 * 60, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ResolveActive(events, "2026-03-10", tt.nowMin)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestResolveActiveTimedOrder(t *testing.T) {
	// Outside every all-day event, the earliest containing timed
	// event wins.
	events := []model.Event{
		{ID: "late", StartDate: "2026-03-10", Start: "10:00", End: "12:00", Label: "Late"},
		{ID: "early", StartDate: "2026-03-10", Start: "09:00", End: "11:00", Label: "Early"},
	}

	active, ok := ResolveActive(events, "2026-03-10", 10*60+30)
	require.True(t, ok)
	assert.Equal(t, "early", active.ID)
}

func TestResolveActiveAllDayInsertionOrder(t *testing.T) {
	events := []model.Event{
		{ID: "first", StartDate: "2026-03-10", AllDay: true, Start: "00:00", End: "23:59", Label: "First"},
		{ID: "second", StartDate: "2026-03-10", AllDay: true, Start: "00:00", End: "23:59", Label: "Second"},
	}

	active, ok := ResolveActive(events, "2026-03-10", 600)
	require.True(t, ok)
	assert.Equal(t, "first", active.ID)
}

func TestResolveActiveNone(t *testing.T) {
	events := []model.Event{
		{ID: "other-day", StartDate: "2026-03-11", Start: "10:00", End: "11:00", Label: "Tomorrow"},
	}

	active, ok := ResolveActive(events, "2026-03-10", 600)
	assert.False(t, ok)
	assert.Nil(t, active)
}

// =============================================================================
// OccurringOn Tests
// =============================================================================

func TestOccurringOnOrder(t *testing.T) {
	events := []model.Event{
		{ID: "noon", StartDate: "2026-03-10", Start: "12:00", End: "13:00", Label: "Lunch out"},
		{ID: "allday", StartDate: "2026-03-10", AllDay: true, Start: "00:00", End: "23:59", Label: "Holiday"},
		{ID: "morning", StartDate: "2026-03-10", Start: "09:00", End: "10:00", Label: "Visit"},
		{ID: "skip", StartDate: "2026-03-11", Start: "09:00", End: "10:00", Label: "Tomorrow"},
	}

	matched := OccurringOn(events, "2026-03-10")
	require.Len(t, matched, 3)
	assert.Equal(t, "allday", matched[0].ID)
	assert.Equal(t, "morning", matched[1].ID)
	assert.Equal(t, "noon", matched[2].ID)
}

// =============================================================================
// SystemEvents Tests
// =============================================================================

func TestSystemEvents(t *testing.T) {
	profile := model.Profile{Members: []model.Member{
		{Name: "Rose Miller", Birthday: "1948-03-15"},
		{Name: "No Birthday"},
		{Name: "  ", Birthday: "1950-01-01"},
		{Name: "Bad Date", Birthday: "15.03.1948"},
	}}

	events := SystemEvents(profile)
	require.Len(t, events, 1)

	event := events[0]
	assert.Equal(t, "birthday-rose-miller", event.ID)
	assert.Equal(t, "Rose Miller's birthday", event.Label)
	assert.True(t, event.AllDay)
	assert.Equal(t, model.RepeatYearly, event.Repeat)
	assert.True(t, event.IsSystem())

	// Yearly recurrence makes the birthday occur every year from the
	// birth date on.
	assert.True(t, OccursOn(event, "2026-03-15"))
	assert.False(t, OccursOn(event, "2026-03-16"))
}

func TestMerged(t *testing.T) {
	stored := []model.Event{
		{ID: "visit", StartDate: "2026-03-15", Start: "10:00", End: "11:00", Label: "Doctor visit"},
	}
	profile := model.Profile{Members: []model.Member{
		{Name: "Rose", Birthday: "1948-03-15"},
	}}

	merged := Merged(stored, profile)
	require.Len(t, merged, 2)
	assert.Equal(t, "visit", merged[0].ID)
	assert.Equal(t, "birthday-rose", merged[1].ID)

	// The birthday is all-day, so it overrides the timed visit.
	active, ok := ResolveActive(merged, "2026-03-15", 10*60+30)
	require.True(t, ok)
	assert.Equal(t, "birthday-rose", active.ID)
}

func TestMergedEmptyProfile(t *testing.T) {
	stored := []model.Event{{ID: "visit", StartDate: "2026-03-15", Start: "10:00", End: "11:00"}}
	assert.Equal(t, stored, Merged(stored, model.Profile{}))
}
