// Package httpapi exposes the family-facing HTTP surface: a JSON API
// over the schedule, events, done marks and settings, an SSE stream
// carrying the engine's display updates, an ICS calendar feed, and the
// operational endpoints (health, metrics).
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/carebell/carebell/internal/config"
	"github.com/carebell/carebell/internal/logging"
	"github.com/carebell/carebell/internal/metrics"
)

// NewRouter assembles the HTTP surface. Health and metrics stay outside
// the auth group so probes and scrapers need no token.
func NewRouter(h *Handler, broker *Broker, cfg config.ServerConfig) http.Handler {
	metrics.Register()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health/live", healthOK)
	r.Get("/health/ready", healthOK)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware(cfg.AuthEnabled(), cfg.AuthToken))

		r.Route("/api/v1", func(r chi.Router) {
			r.Get("/display", h.Display)
			r.Get("/schedule", h.GetSchedule)
			r.Put("/schedule", h.PutSchedule)
			r.Get("/events", h.ListEvents)
			r.Post("/events", h.CreateEvent)
			r.Delete("/events/{id}", h.DeleteEvent)
			r.Post("/done/{index}", h.MarkDone)
			r.Delete("/done/{index}", h.UnmarkDone)
			r.Get("/activity", h.Activity)
			r.Get("/settings", h.GetSettings)
			r.Put("/settings", h.PutSettings)
			r.Get("/calendar.ics", h.CalendarICS)
		})

		r.Get("/events", broker.ServeHTTP)
	})

	return r
}

func healthOK(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// requestLogger logs each request with status and duration. Probe and
// scrape endpoints are skipped to keep the log readable.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health/live", "/health/ready", "/metrics":
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		logging.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			logging.KeyStatus, ww.Status(),
			logging.KeyDuration, time.Since(start).Milliseconds(),
			logging.KeyRequestID, middleware.GetReqID(r.Context()),
		)
	})
}
