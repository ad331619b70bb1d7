package storage

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/carebell/carebell/internal/model"
)

// DoneRepo tracks per-day completion marks and the rolling activity log.
// Done marks are keyed by date so yesterday's marks go stale on their own.
type DoneRepo struct {
	store Store
}

// NewDoneRepo creates a new done repository.
func NewDoneRepo(store Store) *DoneRepo {
	return &DoneRepo{store: store}
}

// Done retrieves the set of block indexes marked done for the date.
func (r *DoneRepo) Done(ctx context.Context, dateKey string) (map[int]bool, error) {
	var indexes []int
	if _, err := loadJSON(ctx, r.store, model.DoneKey(dateKey), &indexes); err != nil {
		return nil, err
	}

	done := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		done[i] = true
	}
	return done, nil
}

// MarkDone records the block at index as completed for the date and appends
// an entry to the activity log. Marking twice is a no-op returning a nil
// entry, so the log stays free of duplicates.
func (r *DoneRepo) MarkDone(ctx context.Context, dateKey string, index int, title string) (*model.ActivityEntry, error) {
	done, err := r.Done(ctx, dateKey)
	if err != nil {
		return nil, err
	}
	if done[index] {
		return nil, nil
	}

	done[index] = true
	if err := r.save(ctx, dateKey, done); err != nil {
		return nil, err
	}
	return r.appendActivity(ctx, dateKey, title)
}

// UnmarkDone clears the completion mark for the block at index.
func (r *DoneRepo) UnmarkDone(ctx context.Context, dateKey string, index int) error {
	done, err := r.Done(ctx, dateKey)
	if err != nil {
		return err
	}
	if !done[index] {
		return nil
	}

	delete(done, index)
	return r.save(ctx, dateKey, done)
}

func (r *DoneRepo) save(ctx context.Context, dateKey string, done map[int]bool) error {
	indexes := make([]int, 0, len(done))
	for i := range done {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)
	return saveJSON(ctx, r.store, model.DoneKey(dateKey), indexes)
}

func (r *DoneRepo) appendActivity(ctx context.Context, dateKey, title string) (*model.ActivityEntry, error) {
	entries, err := r.Activity(ctx)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	entry := model.ActivityEntry{
		ID:          id.String(),
		Title:       title,
		CompletedAt: time.Now(),
		DateKey:     dateKey,
	}

	// Newest first, capped.
	entries = append([]model.ActivityEntry{entry}, entries...)
	if len(entries) > model.ActivityLogCap {
		entries = entries[:model.ActivityLogCap]
	}
	if err := saveJSON(ctx, r.store, model.KeyActivityLog, entries); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Activity retrieves the completion activity log, newest first.
func (r *DoneRepo) Activity(ctx context.Context) ([]model.ActivityEntry, error) {
	var entries []model.ActivityEntry
	if _, err := loadJSON(ctx, r.store, model.KeyActivityLog, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.ActivityEntry{}
	}
	return entries, nil
}
