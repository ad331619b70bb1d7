package storage

import (
	"context"

	"github.com/carebell/carebell/internal/model"
	"github.com/carebell/carebell/internal/schedule"
)

// ScheduleRepo provides operations for the daily schedule document.
type ScheduleRepo struct {
	store Store
}

// NewScheduleRepo creates a new schedule repository.
func NewScheduleRepo(store Store) *ScheduleRepo {
	return &ScheduleRepo{store: store}
}

// Get retrieves the schedule. A missing or malformed record yields an
// empty schedule, never an error the display would have to render.
func (r *ScheduleRepo) Get(ctx context.Context) ([]model.TimeBlock, error) {
	var blocks []model.TimeBlock
	if _, err := loadJSON(ctx, r.store, model.KeySchedule, &blocks); err != nil {
		return nil, err
	}
	if blocks == nil {
		blocks = []model.TimeBlock{}
	}
	return blocks, nil
}

// Set persists the schedule cleaned and sorted by start minute, so
// consumers can rely on stored order and display-safe labels.
func (r *ScheduleRepo) Set(ctx context.Context, blocks []model.TimeBlock) error {
	return saveJSON(ctx, r.store, model.KeySchedule, schedule.Sorted(schedule.Clean(blocks)))
}
