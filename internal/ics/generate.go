// Package ics renders the family calendar as an iCalendar feed so
// relatives can subscribe from their own calendar apps.
package ics

import (
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/carebell/carebell/internal/model"
	"github.com/carebell/carebell/internal/timeutil"
)

const productID = "-//CareBell//CareBell Calendar//EN"

// Generate renders the events as an iCalendar document. Events with a
// malformed start date are skipped, matching the matcher which never
// selects them.
func Generate(events []model.Event) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	for _, event := range events {
		addEvent(cal, event)
	}
	return cal.Serialize()
}

func addEvent(cal *ical.Calendar, event model.Event) {
	startDate, err := timeutil.ParseDateKey(event.StartDate)
	if err != nil {
		return
	}
	endDate := startDate
	if event.EndDate != "" {
		if parsed, err := timeutil.ParseDateKey(event.EndDate); err == nil {
			endDate = parsed
		}
	}

	ve := cal.AddEvent(uid(event))
	ve.SetDtStampTime(time.Now())
	ve.SetSummary(event.Label)

	if event.AllDay {
		// DTEND is exclusive for all-day events.
		ve.SetAllDayStartAt(startDate)
		ve.SetAllDayEndAt(endDate.AddDate(0, 0, 1))
	} else {
		ve.SetStartAt(startDate.Add(time.Duration(event.StartMinute()) * time.Minute))
		ve.SetEndAt(startDate.Add(time.Duration(event.EndMinute()) * time.Minute))
	}

	if rule := recurrence(event, startDate, endDate); rule != "" {
		ve.SetProperty(ical.ComponentPropertyRrule, rule)
	}
}

func uid(event model.Event) string {
	id := event.ID
	if id == "" {
		label := strings.ToLower(strings.ReplaceAll(event.Label, " ", "-"))
		id = fmt.Sprintf("%s-%s", event.StartDate, label)
	}
	return id + "@carebell"
}

func recurrence(event model.Event, startDate, endDate time.Time) string {
	switch event.Repeat {
	case model.RepeatDaily:
		return "FREQ=DAILY"
	case model.RepeatWeekly:
		return "FREQ=WEEKLY"
	case model.RepeatYearly:
		return "FREQ=YEARLY"
	}

	// A multi-day one-off with clock bounds happens each day of its
	// span at the same times. All-day spans are covered by DTEND.
	if !event.AllDay {
		if days := int(endDate.Sub(startDate).Hours()/24) + 1; days > 1 {
			return fmt.Sprintf("FREQ=DAILY;COUNT=%d", days)
		}
	}
	return ""
}
