// Package engine drives the serve-mode display state. Three cron jobs
// tick independently: a one-second clock refresh, a thirty-second
// current-block recompute, and a fifteen-second alert scan. The alert
// cadence must stay under a minute so no minute boundary slips past
// between scans. Every job recomputes from the wall clock, so a
// machine resuming from sleep is correct again on the next tick.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/carebell/carebell/internal/alert"
	"github.com/carebell/carebell/internal/bus"
	"github.com/carebell/carebell/internal/logging"
	"github.com/carebell/carebell/internal/model"
	"github.com/carebell/carebell/internal/storage"
)

// Snapshot is a consistent view of everything the display needs.
// Consumers receive copies and may not mutate shared state through it.
type Snapshot struct {
	Now          time.Time          `json:"now"`
	DateKey      string             `json:"dateKey"`
	Clock        string             `json:"clock"`
	Progress     float64            `json:"progress"`
	Blocks       []model.BuiltBlock `json:"blocks"`
	CurrentIndex int                `json:"currentIndex"`
	ActiveEvent  *model.Event       `json:"activeEvent,omitempty"`
	TodayEvents  []model.Event      `json:"todayEvents"`
	Done         map[int]bool       `json:"done"`
	Settings     model.Settings     `json:"settings"`
}

// Tick is the once-a-minute heartbeat pushed to remote displays so
// their clocks stay in step without polling.
type Tick struct {
	Now      time.Time `json:"now"`
	DateKey  string    `json:"dateKey"`
	Clock    string    `json:"clock"`
	Progress float64   `json:"progress"`
}

// Engine owns the periodic evaluation of the schedule.
type Engine struct {
	schedule  *storage.ScheduleRepo
	events    *storage.EventRepo
	doneRepo  *storage.DoneRepo
	settings  *storage.SettingsRepo
	profile   *storage.ProfileRepo
	marks     *storage.AlertMarkRepo
	evaluator *alert.Evaluator

	bus          *bus.Bus
	cron         *cron.Cron
	defaultCount int
	now          func() time.Time

	mu          sync.RWMutex
	blocks      []model.BuiltBlock
	eventList   []model.Event
	doneSet     map[int]bool
	prefs       model.Settings
	lastDate    string
	lastClock   string
	nowTime     time.Time
	clock       string
	progress    float64
	currentIdx  int
	activeEvent *model.Event
	todayEvents []model.Event
}

// New creates an engine over the given store. defaultAlertCount is the
// configured fallback used while the stored alert-count setting is
// unset.
func New(store storage.Store, eventBus *bus.Bus, defaultAlertCount int) *Engine {
	marks := storage.NewAlertMarkRepo(store)
	return &Engine{
		schedule:     storage.NewScheduleRepo(store),
		events:       storage.NewEventRepo(store),
		doneRepo:     storage.NewDoneRepo(store),
		settings:     storage.NewSettingsRepo(store),
		profile:      storage.NewProfileRepo(store),
		marks:        marks,
		evaluator:    alert.NewEvaluator(marks),
		bus:          eventBus,
		cron:         cron.New(cron.WithSeconds()),
		defaultCount: defaultAlertCount,
		now:          time.Now,
		doneSet:      make(map[int]bool),
	}
}

// SetNow overrides the engine clock. Tests drive evaluation through a
// fixed time with it.
func (e *Engine) SetNow(now func() time.Time) {
	e.now = now
}

// Start loads current state and begins ticking. The first snapshot is
// complete before Start returns.
func (e *Engine) Start() error {
	if err := e.Refresh(context.Background()); err != nil {
		return err
	}

	jobs := []struct {
		spec string
		name string
		run  func()
	}{
		{"* * * * * *", "clock", e.clockTick},
		{"*/30 * * * * *", "blocks", e.blockTick},
		{"*/15 * * * * *", "alerts", e.alertTick},
	}
	for _, job := range jobs {
		if _, err := e.cron.AddFunc(job.spec, job.run); err != nil {
			return fmt.Errorf("failed to add %s job: %w", job.name, err)
		}
	}

	e.cron.Start()
	logging.Info("engine started")
	return nil
}

// Stop halts the cron jobs and waits for running ones to drain. No
// tick fires after Stop returns.
func (e *Engine) Stop() {
	if e.cron != nil {
		ctx := e.cron.Stop()
		<-ctx.Done()
	}
	logging.Info("engine stopped")
}

// Snapshot returns a copy of the current display state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()

	done := make(map[int]bool, len(e.doneSet))
	for i, v := range e.doneSet {
		done[i] = v
	}

	return Snapshot{
		Now:          e.nowTime,
		DateKey:      e.lastDate,
		Clock:        e.clock,
		Progress:     e.progress,
		Blocks:       append([]model.BuiltBlock(nil), e.blocks...),
		CurrentIndex: e.currentIdx,
		ActiveEvent:  e.activeEvent,
		TodayEvents:  append([]model.Event(nil), e.todayEvents...),
		Done:         done,
		Settings:     e.prefs,
	}
}

func (e *Engine) publishSnapshot() {
	if e.bus != nil {
		e.bus.Publish(bus.TypeSnapshot, e.Snapshot())
	}
}
