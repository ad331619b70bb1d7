package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/carebell/carebell/internal/calendar"
	"github.com/carebell/carebell/internal/engine"
	errs "github.com/carebell/carebell/internal/errors"
	"github.com/carebell/carebell/internal/export"
	"github.com/carebell/carebell/internal/ics"
	"github.com/carebell/carebell/internal/logging"
	"github.com/carebell/carebell/internal/schedule"
	"github.com/carebell/carebell/internal/storage"
)

const maxBodySize = 1 << 20

// Handler holds the API route handlers. Reads go straight to the
// repositories; every write goes through the engine's reload entry
// points so connected displays see the change on the next frame.
type Handler struct {
	engine   *engine.Engine
	schedule *storage.ScheduleRepo
	events   *storage.EventRepo
	done     *storage.DoneRepo
	settings *storage.SettingsRepo
	profile  *storage.ProfileRepo
}

// NewHandler creates a Handler over the engine and its store.
func NewHandler(eng *engine.Engine, store storage.Store) *Handler {
	return &Handler{
		engine:   eng,
		schedule: storage.NewScheduleRepo(store),
		events:   storage.NewEventRepo(store),
		done:     storage.NewDoneRepo(store),
		settings: storage.NewSettingsRepo(store),
		profile:  storage.NewProfileRepo(store),
	}
}

// Display handles GET /api/v1/display.
func (h *Handler) Display(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.Snapshot())
}

// GetSchedule handles GET /api/v1/schedule.
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	blocks, err := h.schedule.Get(r.Context())
	if err != nil {
		logging.Error("get schedule failed", logging.KeyError, err)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, schedulePayload{Blocks: blocks})
}

// PutSchedule handles PUT /api/v1/schedule. The whole document is
// replaced at once; a validation failure leaves the stored schedule
// untouched and reports the first broken block.
func (h *Handler) PutSchedule(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	var req schedulePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid json"))
		return
	}

	if err := schedule.Validate(req.Blocks); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody(err.Error()))
		return
	}

	if err := h.schedule.Set(r.Context(), req.Blocks); err != nil {
		logging.Error("save schedule failed", logging.KeyError, err)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if err := h.engine.ReloadSchedule(r.Context()); err != nil {
		logging.Error("schedule reload failed", logging.KeyError, err)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}

	// Respond with the document as stored: cleaned and sorted.
	writeJSON(w, http.StatusOK, schedulePayload{Blocks: schedule.Sorted(schedule.Clean(req.Blocks))})
}

// ListEvents handles GET /api/v1/events. The list includes derived
// system events; their source field tells clients they cannot be
// deleted.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.List(r.Context())
	if err != nil {
		logging.Error("list events failed", logging.KeyError, err)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	profile, err := h.profile.Get(r.Context())
	if err != nil {
		logging.Error("get profile failed", logging.KeyError, err)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"events": calendar.Merged(events, profile),
	})
}

// CreateEvent handles POST /api/v1/events.
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid json"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody(err.Error()))
		return
	}

	ev := req.toModel()
	ev.Normalize()
	if err := ev.Validate(); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody(err.Error()))
		return
	}

	created, err := h.events.Add(r.Context(), ev)
	if err != nil {
		logging.Error("add event failed", logging.KeyError, err)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if err := h.engine.ReloadEvents(r.Context()); err != nil {
		logging.Error("events reload failed", logging.KeyError, err)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// DeleteEvent handles DELETE /api/v1/events/{id}.
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("id is required"))
		return
	}
	if h.isSystemEvent(r.Context(), id) {
		writeJSON(w, http.StatusBadRequest, errorBody("system events cannot be removed"))
		return
	}

	if err := h.events.Remove(r.Context(), id); err != nil {
		if errs.Is(err, errs.ErrEventNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			logging.Error("remove event failed", logging.KeyEventID, id, logging.KeyError, err)
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	if err := h.engine.ReloadEvents(r.Context()); err != nil {
		logging.Error("events reload failed", logging.KeyError, err)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}

	writeJSON(w, http.StatusOK, statusOK())
}

// isSystemEvent reports whether the id names an event derived from the
// profile. Derived events are not stored, so the repo would report them
// as missing rather than protected.
func (h *Handler) isSystemEvent(ctx context.Context, id string) bool {
	profile, err := h.profile.Get(ctx)
	if err != nil {
		return false
	}
	for _, ev := range calendar.SystemEvents(profile) {
		if ev.ID == id {
			return true
		}
	}
	return false
}

// MarkDone handles POST /api/v1/done/{index}.
func (h *Handler) MarkDone(w http.ResponseWriter, r *http.Request) {
	index, ok := doneIndex(w, r)
	if !ok {
		return
	}
	if err := h.engine.MarkDone(r.Context(), index); err != nil {
		writeDoneError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusOK())
}

// UnmarkDone handles DELETE /api/v1/done/{index}.
func (h *Handler) UnmarkDone(w http.ResponseWriter, r *http.Request) {
	index, ok := doneIndex(w, r)
	if !ok {
		return
	}
	if err := h.engine.UnmarkDone(r.Context(), index); err != nil {
		writeDoneError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusOK())
}

func doneIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("index must be a number"))
		return 0, false
	}
	return index, true
}

func writeDoneError(w http.ResponseWriter, err error) {
	switch {
	case errs.Is(err, errs.ErrEventActive):
		writeJSON(w, http.StatusConflict, errorBody("an event override is active"))
	case errs.Is(err, errs.ErrBlockOutOfRange):
		writeJSON(w, http.StatusNotFound, errorBody("block index out of range"))
	default:
		logging.Error("done action failed", logging.KeyError, err)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

// Activity handles GET /api/v1/activity. With ?format=xlsx the log is
// returned as a spreadsheet download.
func (h *Handler) Activity(w http.ResponseWriter, r *http.Request) {
	entries, err := h.done.Activity(r.Context())
	if err != nil {
		logging.Error("load activity failed", logging.KeyError, err)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}

	if r.URL.Query().Get("format") == "xlsx" {
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="carebell-activity.xlsx"`)
		if err := export.WriteActivity(w, entries); err != nil {
			// Headers are already out; all we can do is log.
			logging.Error("activity export failed", logging.KeyError, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"activity": entries,
	})
}

// GetSettings handles GET /api/v1/settings.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get(r.Context())
	if err != nil {
		logging.Error("get settings failed", logging.KeyError, err)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// PutSettings handles PUT /api/v1/settings. Absent fields keep their
// stored value.
func (h *Handler) PutSettings(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	var req settingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid json"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody(err.Error()))
		return
	}

	ctx := r.Context()
	if req.AudioEnabled != nil {
		if err := h.settings.SetAudio(ctx, *req.AudioEnabled); err != nil {
			logging.Error("save settings failed", logging.KeyError, err)
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
			return
		}
	}
	if req.AlertCount != nil {
		if err := h.settings.SetAlertCount(ctx, *req.AlertCount); err != nil {
			logging.Error("save settings failed", logging.KeyError, err)
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
			return
		}
	}
	if err := h.engine.ReloadSettings(ctx); err != nil {
		logging.Error("settings reload failed", logging.KeyError, err)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}

	settings, err := h.settings.Get(ctx)
	if err != nil {
		logging.Error("get settings failed", logging.KeyError, err)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// CalendarICS handles GET /api/v1/calendar.ics. Family members can
// subscribe to it from their own calendar apps.
func (h *Handler) CalendarICS(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.List(r.Context())
	if err != nil {
		logging.Error("list events failed", logging.KeyError, err)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	profile, err := h.profile.Get(r.Context())
	if err != nil {
		logging.Error("get profile failed", logging.KeyError, err)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="carebell.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(ics.Generate(calendar.Merged(events, profile))))
}
