package storage

import (
	"context"

	"github.com/google/uuid"

	errs "github.com/carebell/carebell/internal/errors"
	"github.com/carebell/carebell/internal/model"
)

// EventRepo provides operations for one-off and recurring calendar events.
// Only user events live in the store; system events (birthdays) are derived
// from the profile at read time and are refused here.
type EventRepo struct {
	store Store
}

// NewEventRepo creates a new event repository.
func NewEventRepo(store Store) *EventRepo {
	return &EventRepo{store: store}
}

// List retrieves all stored events. Missing or malformed records yield an
// empty list.
func (r *EventRepo) List(ctx context.Context) ([]model.Event, error) {
	var events []model.Event
	if _, err := loadJSON(ctx, r.store, model.KeyEvents, &events); err != nil {
		return nil, err
	}
	if events == nil {
		events = []model.Event{}
	}
	return events, nil
}

// Add normalizes, validates and persists a new event, assigning its ID.
func (r *EventRepo) Add(ctx context.Context, ev model.Event) (model.Event, error) {
	if ev.IsSystem() {
		return model.Event{}, errs.ErrSystemEvent
	}

	ev.Normalize()
	if err := ev.Validate(); err != nil {
		return model.Event{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return model.Event{}, err
	}
	ev.ID = id.String()

	events, err := r.List(ctx)
	if err != nil {
		return model.Event{}, err
	}

	events = append(events, ev)
	if err := saveJSON(ctx, r.store, model.KeyEvents, events); err != nil {
		return model.Event{}, err
	}
	return ev, nil
}

// Remove deletes the event with the given ID.
func (r *EventRepo) Remove(ctx context.Context, id string) error {
	events, err := r.List(ctx)
	if err != nil {
		return err
	}

	kept := make([]model.Event, 0, len(events))
	found := false
	for _, ev := range events {
		if ev.ID == id {
			found = true
			continue
		}
		kept = append(kept, ev)
	}
	if !found {
		return errs.ErrEventNotFound
	}

	return saveJSON(ctx, r.store, model.KeyEvents, kept)
}
