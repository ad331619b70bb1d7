package runtime

import (
	"errors"
	"strings"
	"syscall"

	errs "github.com/carebell/carebell/internal/errors"
)

// ErrDiskFull indicates the store could not write because the device is out
// of space. Display devices usually run off small SD cards.
var ErrDiskFull = errors.New("disk full: unable to write to database")

// Suggestions provides helpful suggestions for common errors.
var Suggestions = map[error]string{
	errs.ErrEmptySchedule:   "Use 'carebell schedule set' to create one.",
	errs.ErrEventNotFound:   "Use 'carebell event list' to see event IDs.",
	errs.ErrBlockOutOfRange: "Use 'carebell schedule show' to see block numbers.",
	errs.ErrEventActive:     "Done marks are paused while an event is on screen.",
	errs.ErrSystemEvent:     "Birthdays come from the family profile; edit the profile instead.",
	ErrDiskFull:             "Free up space on the device and try again.",
}

// GetSuggestion returns a suggestion for an error, if available.
func GetSuggestion(err error) string {
	for knownErr, suggestion := range Suggestions {
		if errors.Is(err, knownErr) {
			return suggestion
		}
	}
	if IsDiskFullError(err) {
		return Suggestions[ErrDiskFull]
	}
	return ""
}

// FormatError formats an error with optional suggestion.
func FormatError(err error) string {
	msg := err.Error()
	if suggestion := GetSuggestion(err); suggestion != "" {
		msg += "\n" + suggestion
	}
	return msg
}

// IsDiskFullError checks if an error indicates a disk full condition.
// It checks for ENOSPC (Linux/macOS) and common disk full error patterns.
func IsDiskFullError(err error) bool {
	if err == nil {
		return false
	}

	// Check if it's our sentinel error
	if errors.Is(err, ErrDiskFull) {
		return true
	}

	// Check for ENOSPC (no space left on device)
	var errno syscall.Errno
	if errors.As(err, &errno) {
		if errno == syscall.ENOSPC {
			return true
		}
	}

	// Check error message for disk full patterns
	errStr := strings.ToLower(err.Error())
	diskFullPatterns := []string{
		"no space left on device",
		"disk full",
		"enospc",
		"not enough space",
		"insufficient disk space",
		"out of disk space",
	}

	for _, pattern := range diskFullPatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}

	return false
}
