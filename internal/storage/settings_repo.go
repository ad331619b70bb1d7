package storage

import (
	"context"
	"strconv"

	"github.com/carebell/carebell/internal/model"
)

// SettingsRepo stores the display settings as individual flag keys,
// matching what the display writes: audio_enabled is "0"/"1", alert_count
// a digit.
type SettingsRepo struct {
	store Store
}

// NewSettingsRepo creates a new settings repository.
func NewSettingsRepo(store Store) *SettingsRepo {
	return &SettingsRepo{store: store}
}

// Get retrieves the settings. Absent or malformed keys fall back to
// defaults: audio on, alert count 0 meaning "use the configured default".
func (r *SettingsRepo) Get(ctx context.Context) (model.Settings, error) {
	settings := model.Settings{AudioEnabled: true}

	if data, err := r.store.Get(ctx, model.KeyAudioEnabled); err == nil {
		settings.AudioEnabled = string(data) != "0"
	} else if !IsErrKeyNotFound(err) {
		return model.Settings{}, err
	}

	if data, err := r.store.Get(ctx, model.KeyAlertCount); err == nil {
		if n, convErr := strconv.Atoi(string(data)); convErr == nil {
			settings.AlertCount = n
		}
	} else if !IsErrKeyNotFound(err) {
		return model.Settings{}, err
	}

	return settings, nil
}

// SetAudio stores the audio flag.
func (r *SettingsRepo) SetAudio(ctx context.Context, enabled bool) error {
	value := "0"
	if enabled {
		value = "1"
	}
	return r.store.Set(ctx, model.KeyAudioEnabled, []byte(value))
}

// SetAlertCount stores the alert preset choice.
func (r *SettingsRepo) SetAlertCount(ctx context.Context, count int) error {
	return r.store.Set(ctx, model.KeyAlertCount, []byte(strconv.Itoa(count)))
}
