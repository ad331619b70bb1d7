package output

import (
	"github.com/carebell/carebell/internal/model"
)

// JSONFormatter provides JSON-specific formatting.
type JSONFormatter struct {
	*Formatter
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(f *Formatter) *JSONFormatter {
	return &JSONFormatter{Formatter: f}
}

// ErrorResponse represents an error in JSON output.
type ErrorResponse struct {
	Status  string `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// OKResponse represents a successful mutation in JSON output.
type OKResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ScheduleResponse represents the schedule in JSON output.
type ScheduleResponse struct {
	Blocks []model.TimeBlock `json:"blocks"`
}

// CheckResponse represents a schedule validation result in JSON.
type CheckResponse struct {
	Status string `json:"status"`
	Blocks int    `json:"blocks,omitempty"`
	Error  string `json:"error,omitempty"`
}

// EventsResponse represents the event list in JSON output.
type EventsResponse struct {
	Events []model.Event `json:"events"`
}

// DoneItem represents one block's done state.
type DoneItem struct {
	Index int    `json:"index"`
	Start string `json:"start"`
	End   string `json:"end"`
	Label string `json:"label"`
	Done  bool   `json:"done"`
}

// DoneResponse represents today's done state in JSON output.
type DoneResponse struct {
	DateKey string     `json:"dateKey"`
	Items   []DoneItem `json:"items"`
}

// ActivityResponse represents the activity log in JSON output.
type ActivityResponse struct {
	Activity []model.ActivityEntry `json:"activity"`
}

// SettingsResponse represents the settings with the alert preset
// resolved to its offsets.
type SettingsResponse struct {
	AudioEnabled bool  `json:"audioEnabled"`
	AlertCount   int   `json:"alertCount"`
	AlertMinutes []int `json:"alertMinutes"`
}

// PrintError outputs an error in JSON format.
func (j *JSONFormatter) PrintError(status, errMsg, message string) error {
	return j.JSON(ErrorResponse{
		Status:  status,
		Error:   errMsg,
		Message: message,
	})
}

// PrintOK outputs a successful mutation in JSON format.
func (j *JSONFormatter) PrintOK(message string) error {
	return j.JSON(OKResponse{Status: "ok", Message: message})
}

// PrintSchedule outputs the schedule in JSON format.
func (j *JSONFormatter) PrintSchedule(blocks []model.TimeBlock) error {
	return j.JSON(ScheduleResponse{Blocks: blocks})
}

// PrintCheck outputs a validation result in JSON format.
func (j *JSONFormatter) PrintCheck(err error, blocks int) error {
	if err != nil {
		return j.JSON(CheckResponse{Status: "invalid", Error: err.Error()})
	}
	return j.JSON(CheckResponse{Status: "ok", Blocks: blocks})
}

// PrintEvents outputs the event list in JSON format.
func (j *JSONFormatter) PrintEvents(events []model.Event) error {
	return j.JSON(EventsResponse{Events: events})
}

// PrintDone outputs today's done state in JSON format.
func (j *JSONFormatter) PrintDone(dateKey string, items []DoneItem) error {
	return j.JSON(DoneResponse{DateKey: dateKey, Items: items})
}

// PrintActivity outputs the activity log in JSON format.
func (j *JSONFormatter) PrintActivity(entries []model.ActivityEntry) error {
	return j.JSON(ActivityResponse{Activity: entries})
}

// PrintSettings outputs the settings in JSON format.
func (j *JSONFormatter) PrintSettings(settings model.Settings, minutes []int) error {
	return j.JSON(SettingsResponse{
		AudioEnabled: settings.AudioEnabled,
		AlertCount:   settings.AlertCount,
		AlertMinutes: minutes,
	})
}
