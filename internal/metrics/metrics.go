// Package metrics exposes Prometheus counters for the serve mode.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	alertsFired = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "carebell",
			Name:      "alerts_fired_total",
			Help:      "Count of schedule alerts fired by anchor target.",
		},
		[]string{"target"},
	)

	ticks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "carebell",
			Name:      "engine_ticks_total",
			Help:      "Count of engine ticks by job.",
		},
		[]string{"job"},
	)

	reloads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "carebell",
			Name:      "reloads_total",
			Help:      "Count of schedule and event reloads.",
		},
		[]string{"kind"},
	)

	doneMarked = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "carebell",
			Name:      "done_marked_total",
			Help:      "Count of blocks marked done.",
		},
	)

	notifyDeliveries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "carebell",
			Name:      "notify_deliveries_total",
			Help:      "Count of family notification deliveries by sink and status.",
		},
		[]string{"sink", "status"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(alertsFired, ticks, reloads, doneMarked, notifyDeliveries)
	})
}

func IncAlertFired(target string) {
	alertsFired.WithLabelValues(target).Inc()
}

func IncTick(job string) {
	ticks.WithLabelValues(job).Inc()
}

func IncReload(kind string) {
	reloads.WithLabelValues(kind).Inc()
}

func IncDoneMarked() {
	doneMarked.Inc()
}

func IncNotifyDelivery(sink, status string) {
	notifyDeliveries.WithLabelValues(sink, status).Inc()
}
