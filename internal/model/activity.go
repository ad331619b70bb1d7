package model

import "time"

// ActivityEntry records one completed block in the family activity log.
// The log lets family members see what was done without asking.
type ActivityEntry struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	CompletedAt time.Time `json:"completedAt"`
	DateKey     string    `json:"dateKey"`
}

// Profile holds family data used to derive system events.
type Profile struct {
	Members []Member `json:"members"`
}

// Member is one family member in the stored profile.
type Member struct {
	Name     string `json:"name"`
	Birthday string `json:"birthday,omitempty"` // YYYY-MM-DD
}

// Settings is the merged view of the display settings keys.
type Settings struct {
	AudioEnabled bool `json:"audioEnabled"`
	AlertCount   int  `json:"alertCount"`
}
