package storage

import (
	"context"
	"strings"

	"github.com/carebell/carebell/internal/model"
)

// AlertMarkRepo stores per-day fired-alert flags keyed by
// alert_<date>_<blockKey>_<alertType>. Marks are only ever created and
// swept; a mark present means the alert must not fire again today.
type AlertMarkRepo struct {
	store Store
}

// NewAlertMarkRepo creates a new alert mark repository.
func NewAlertMarkRepo(store Store) *AlertMarkRepo {
	return &AlertMarkRepo{store: store}
}

// Marked reports whether the alert already fired on the given date.
func (r *AlertMarkRepo) Marked(ctx context.Context, dateKey, blockKey, alertType string) (bool, error) {
	_, err := r.store.Get(ctx, model.AlertKey(dateKey, blockKey, alertType))
	if err != nil {
		if IsErrKeyNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Mark records the alert as fired.
func (r *AlertMarkRepo) Mark(ctx context.Context, dateKey, blockKey, alertType string) error {
	return r.store.Set(ctx, model.AlertKey(dateKey, blockKey, alertType), []byte("1"))
}

// Purge removes fired marks for every day except keep. Returns the number
// of marks removed.
func (r *AlertMarkRepo) Purge(ctx context.Context, keep string) (int, error) {
	keys, err := r.store.Keys(ctx, model.PrefixAlert)
	if err != nil {
		return 0, err
	}

	keepPrefix := model.AlertDayPrefix(keep)
	removed := 0
	for _, key := range keys {
		if strings.HasPrefix(key, keepPrefix) {
			continue
		}
		if err := r.store.Delete(ctx, key); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}
