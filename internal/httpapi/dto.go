package httpapi

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/carebell/carebell/internal/alert"
	"github.com/carebell/carebell/internal/model"
)

// schedulePayload is the wire form of the stored schedule.
type schedulePayload struct {
	Blocks []model.TimeBlock `json:"blocks"`
}

// eventRequest is the body of POST /api/v1/events. Field-level shape
// checks live here; the calendar invariants (date order, end after
// start) are enforced by the model on the normalized event.
type eventRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate,omitempty"`
	Start     string `json:"start,omitempty"`
	End       string `json:"end,omitempty"`
	Label     string `json:"label"`
	AllDay    bool   `json:"allDay,omitempty"`
	Repeat    string `json:"repeat,omitempty"`
}

func (r eventRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Label, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.StartDate, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&r.EndDate, validation.Date("2006-01-02")),
		validation.Field(&r.Repeat, validation.In("none", "daily", "weekly", "yearly")),
	)
}

func (r eventRequest) toModel() model.Event {
	return model.Event{
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Start:     r.Start,
		End:       r.End,
		Label:     r.Label,
		AllDay:    r.AllDay,
		Repeat:    model.Repeat(r.Repeat),
		Source:    model.SourceUser,
	}
}

// settingsRequest carries partial settings updates. Pointer fields
// separate "leave unchanged" from an explicit value.
type settingsRequest struct {
	AudioEnabled *bool `json:"audioEnabled,omitempty"`
	AlertCount   *int  `json:"alertCount,omitempty"`
}

func (r settingsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.AlertCount, validation.Min(alert.MinCount), validation.Max(alert.MaxCount)),
	)
}
