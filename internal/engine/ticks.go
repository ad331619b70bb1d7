package engine

import (
	"context"

	"github.com/carebell/carebell/internal/alert"
	"github.com/carebell/carebell/internal/bus"
	"github.com/carebell/carebell/internal/calendar"
	"github.com/carebell/carebell/internal/logging"
	"github.com/carebell/carebell/internal/metrics"
	"github.com/carebell/carebell/internal/schedule"
	"github.com/carebell/carebell/internal/timeutil"
)

// clockTick refreshes the displayed time and day progress. Once per
// minute it also publishes a heartbeat for remote displays.
func (e *Engine) clockTick() {
	metrics.IncTick("clock")
	now := e.now()
	clock := now.Format("15:04")
	progress := timeutil.DayProgress(now)

	e.mu.Lock()
	e.nowTime = now
	e.clock = clock
	e.progress = progress
	minuteTurned := clock != e.lastClock
	e.lastClock = clock
	e.mu.Unlock()

	if minuteTurned && e.bus != nil {
		e.bus.Publish(bus.TypeTick, Tick{
			Now:      now,
			DateKey:  timeutil.DateKey(now),
			Clock:    clock,
			Progress: progress,
		})
	}
}

// blockTick recomputes the current block and handles the midnight
// rollover.
func (e *Engine) blockTick() {
	metrics.IncTick("blocks")
	e.rolloverIfNeeded(context.Background())
	e.recompute()
	e.publishSnapshot()
}

// alertTick scans for a due reminder and publishes it.
func (e *Engine) alertTick() {
	metrics.IncTick("alerts")
	ctx := context.Background()

	now := e.now()
	dateKey := timeutil.DateKey(now)
	nowMin := timeutil.MinuteOfDay(now)

	e.mu.RLock()
	blocks := e.blocks
	done := make(map[int]bool, len(e.doneSet))
	for i, v := range e.doneSet {
		done[i] = v
	}
	count := e.prefs.AlertCount
	e.mu.RUnlock()

	if count == 0 {
		count = e.defaultCount
	}

	fired, err := e.evaluator.Scan(ctx, dateKey, nowMin, blocks, done, alert.Preset(count))
	if err != nil {
		logging.Warn("alert scan failed", logging.KeyError, err)
		return
	}
	if fired == nil {
		return
	}

	logging.Info("alert fired",
		logging.KeyBlock, fired.BlockKey,
		logging.KeyDateKey, dateKey,
		"message", fired.Message,
	)
	metrics.IncAlertFired(string(fired.Target))
	if e.bus != nil {
		e.bus.Publish(bus.TypeAlert, fired)
	}
}

// rolloverIfNeeded resets per-day state once the date key changes:
// yesterday's done marks stop applying and stale alert flags are swept.
func (e *Engine) rolloverIfNeeded(ctx context.Context) {
	today := timeutil.DateKey(e.now())

	e.mu.RLock()
	last := e.lastDate
	e.mu.RUnlock()
	if last == "" || last == today {
		return
	}

	logging.Info("date rollover", logging.KeyDateKey, today)

	done, err := e.doneRepo.Done(ctx, today)
	if err != nil {
		logging.Warn("loading done set failed", logging.KeyError, err)
		done = make(map[int]bool)
	}

	removed, err := e.marks.Purge(ctx, today)
	if err != nil {
		logging.Warn("purging alert marks failed", logging.KeyError, err)
	} else if removed > 0 {
		logging.Info("purged stale alert marks", logging.KeyCount, removed)
	}

	e.mu.Lock()
	e.doneSet = done
	e.lastDate = today
	e.mu.Unlock()
}

// recompute derives the tick-cadence display state from the wall
// clock: date, current block, and the active event override.
func (e *Engine) recompute() {
	now := e.now()
	dateKey := timeutil.DateKey(now)
	nowMin := timeutil.MinuteOfDay(now)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.nowTime = now
	e.clock = now.Format("15:04")
	e.progress = timeutil.DayProgress(now)
	e.lastDate = dateKey
	e.currentIdx = schedule.FindCurrentIndex(nowMin, e.blocks)
	e.todayEvents = calendar.OccurringOn(e.eventList, dateKey)
	e.activeEvent, _ = calendar.ResolveActive(e.eventList, dateKey, nowMin)
}
