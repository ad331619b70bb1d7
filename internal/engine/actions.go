package engine

import (
	"context"

	"github.com/carebell/carebell/internal/bus"
	"github.com/carebell/carebell/internal/calendar"
	errs "github.com/carebell/carebell/internal/errors"
	"github.com/carebell/carebell/internal/logging"
	"github.com/carebell/carebell/internal/metrics"
	"github.com/carebell/carebell/internal/schedule"
	"github.com/carebell/carebell/internal/timeutil"
)

// Refresh loads all persisted state and recomputes the snapshot. Start
// runs it once; afterwards the Reload entry points keep state current.
func (e *Engine) Refresh(ctx context.Context) error {
	blocks, err := e.schedule.Get(ctx)
	if err != nil {
		return err
	}
	if err := e.loadEvents(ctx); err != nil {
		return err
	}
	prefs, err := e.settings.Get(ctx)
	if err != nil {
		return err
	}
	done, err := e.doneRepo.Done(ctx, timeutil.DateKey(e.now()))
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.blocks = schedule.Build(blocks)
	e.prefs = prefs
	e.doneSet = done
	e.mu.Unlock()

	e.recompute()
	return nil
}

// ReloadSchedule re-reads the stored schedule. Invoked after any
// schedule write and by external change notifications.
func (e *Engine) ReloadSchedule(ctx context.Context) error {
	blocks, err := e.schedule.Get(ctx)
	if err != nil {
		return err
	}

	built := schedule.Build(blocks)
	e.mu.Lock()
	e.blocks = built
	e.mu.Unlock()

	e.recompute()
	metrics.IncReload("schedule")
	logging.Info("schedule reloaded", logging.KeyCount, len(built))
	if e.bus != nil {
		e.bus.Publish(bus.TypeReload, "schedule")
	}
	e.publishSnapshot()
	return nil
}

// ReloadEvents re-reads stored events and re-derives system events from
// the profile.
func (e *Engine) ReloadEvents(ctx context.Context) error {
	if err := e.loadEvents(ctx); err != nil {
		return err
	}

	e.recompute()
	metrics.IncReload("events")
	logging.Info("events reloaded")
	if e.bus != nil {
		e.bus.Publish(bus.TypeReload, "events")
	}
	e.publishSnapshot()
	return nil
}

// ReloadSettings re-reads the display settings.
func (e *Engine) ReloadSettings(ctx context.Context) error {
	prefs, err := e.settings.Get(ctx)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.prefs = prefs
	e.mu.Unlock()

	metrics.IncReload("settings")
	if e.bus != nil {
		e.bus.Publish(bus.TypeReload, "settings")
	}
	e.publishSnapshot()
	return nil
}

func (e *Engine) loadEvents(ctx context.Context) error {
	stored, err := e.events.List(ctx)
	if err != nil {
		return err
	}
	profile, err := e.profile.Get(ctx)
	if err != nil {
		return err
	}

	merged := calendar.Merged(stored, profile)
	e.mu.Lock()
	e.eventList = merged
	e.mu.Unlock()
	return nil
}

// MarkDone records the current date's block at index as completed.
// While an event override is active the done action is suppressed.
func (e *Engine) MarkDone(ctx context.Context, index int) error {
	e.mu.RLock()
	active := e.activeEvent
	total := len(e.blocks)
	var label string
	if index >= 0 && index < total {
		label = e.blocks[index].Label
	}
	e.mu.RUnlock()

	if active != nil {
		return errs.ErrEventActive
	}
	if index < 0 || index >= total {
		return errs.ErrBlockOutOfRange
	}

	dateKey := timeutil.DateKey(e.now())
	entry, err := e.doneRepo.MarkDone(ctx, dateKey, index, label)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.doneSet[index] = true
	e.mu.Unlock()

	if entry != nil {
		metrics.IncDoneMarked()
		logging.Info("block marked done", logging.KeyBlock, label, logging.KeyDateKey, dateKey)
		if e.bus != nil {
			e.bus.Publish(bus.TypeDone, *entry)
		}
	}
	e.publishSnapshot()
	return nil
}

// UnmarkDone clears a completion mark set by mistake.
func (e *Engine) UnmarkDone(ctx context.Context, index int) error {
	e.mu.RLock()
	total := len(e.blocks)
	e.mu.RUnlock()

	if index < 0 || index >= total {
		return errs.ErrBlockOutOfRange
	}

	dateKey := timeutil.DateKey(e.now())
	if err := e.doneRepo.UnmarkDone(ctx, dateKey, index); err != nil {
		return err
	}

	e.mu.Lock()
	delete(e.doneSet, index)
	e.mu.Unlock()

	e.publishSnapshot()
	return nil
}
