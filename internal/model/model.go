// Package model defines the domain models for CareBell.
package model

import "fmt"

// Storage keys. The schedule and the event list are each stored as one
// whole JSON value; per-day state (done sets, alert marks) is keyed by
// the local date.
const (
	KeySchedule     = "schedule"
	KeyEvents       = "events"
	KeyProfile      = "profile"
	KeyActivityLog  = "done_activity_log"
	KeyAudioEnabled = "audio_enabled"
	KeyAlertCount   = "alert_count"
)

// Key prefixes for per-day records.
const (
	PrefixDone  = "done_"
	PrefixAlert = "alert_"
)

// ActivityLogCap bounds the done activity log to the newest entries.
const ActivityLogCap = 200

// DoneKey returns the storage key for a day's completed block set.
func DoneKey(dateKey string) string {
	return PrefixDone + dateKey
}

// AlertKey returns the per-day suppression key for a fired alert.
// blockKey identifies the built block ("HH:MM-HH:MM") and alertType
// combines the anchor with the offset ("start10", "end5").
func AlertKey(dateKey, blockKey, alertType string) string {
	return fmt.Sprintf("%s%s_%s_%s", PrefixAlert, dateKey, blockKey, alertType)
}

// AlertDayPrefix returns the key prefix covering one day's alert marks.
func AlertDayPrefix(dateKey string) string {
	return PrefixAlert + dateKey + "_"
}
