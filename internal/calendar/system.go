package calendar

import (
	"fmt"
	"strings"

	"github.com/carebell/carebell/internal/model"
	"github.com/carebell/carebell/internal/timeutil"
)

// SystemEvents derives yearly all-day events from the family profile.
// Currently that means one birthday event per member with a known
// birthday. Derived events are recomputed on every load and never
// persisted, so profile edits take effect immediately.
func SystemEvents(profile model.Profile) []model.Event {
	var events []model.Event
	for _, member := range profile.Members {
		name := strings.TrimSpace(member.Name)
		if name == "" || member.Birthday == "" {
			continue
		}
		if _, err := timeutil.ParseDateKey(member.Birthday); err != nil {
			continue
		}
		event := model.Event{
			ID:        "birthday-" + slug(name),
			StartDate: member.Birthday,
			EndDate:   member.Birthday,
			Label:     fmt.Sprintf("%s's birthday", name),
			AllDay:    true,
			Repeat:    model.RepeatYearly,
			Source:    model.SourceSystem,
		}
		event.Normalize()
		events = append(events, event)
	}
	return events
}

// Merged returns the stored events followed by the profile's derived
// ones. Stored events keep their positions so insertion-stable
// precedence among all-day events is preserved.
func Merged(stored []model.Event, profile model.Profile) []model.Event {
	system := SystemEvents(profile)
	if len(system) == 0 {
		return stored
	}
	merged := make([]model.Event, 0, len(stored)+len(system))
	merged = append(merged, stored...)
	merged = append(merged, system...)
	return merged
}

func slug(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "-"))
}
