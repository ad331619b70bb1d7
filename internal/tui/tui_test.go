package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carebell/carebell/internal/alert"
	"github.com/carebell/carebell/internal/bus"
	"github.com/carebell/carebell/internal/engine"
	"github.com/carebell/carebell/internal/model"
	"github.com/carebell/carebell/internal/storage"
)

func setupDisplay(t *testing.T) (*DisplayModel, *engine.Engine, *storage.DB) {
	t.Helper()

	db, err := storage.Open(storage.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})

	require.NoError(t, storage.NewScheduleRepo(db).Set(context.Background(), []model.TimeBlock{
		{Start: "06:30", End: "09:00", Label: model.StringList{"Morning routine"}},
		{Start: "09:00", End: "12:00", Label: model.StringList{"Morning walk"}},
		{Start: "12:00", End: "13:00", Label: model.StringList{"Lunch"}},
	}))

	eng := engine.New(db, bus.New(), 3)
	at, err := time.ParseInLocation("2006-01-02 15:04", "2026-03-10 08:00", time.Local)
	require.NoError(t, err)
	eng.SetNow(func() time.Time { return at })
	require.NoError(t, eng.Refresh(context.Background()))

	m := NewDisplayModel(DisplayConfig{Engine: eng})
	m.width = 80
	m.height = 40
	m.snap = eng.Snapshot()

	return m, eng, db
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// =============================================================================
// ProgressBar Tests
// =============================================================================

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name       string
		percentage float64
		width      int
	}{
		{"zero", 0, 10},
		{"half", 50, 10},
		{"full", 100, 10},
		{"over", 150, 10},
		{"negative", -10, 10},
		{"small_width", 50, 5},
		{"large_width", 50, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := ProgressBar(tt.percentage, tt.width)
			assert.NotEmpty(t, bar)
		})
	}
}

func TestProgressBarWidth(t *testing.T) {
	bar10 := ProgressBar(50, 10)
	bar20 := ProgressBar(50, 20)

	// Longer width should produce longer bar
	assert.Greater(t, len(bar20), len(bar10))
}

// =============================================================================
// DisplayModel Tests
// =============================================================================

func TestNewDisplayModel(t *testing.T) {
	m := NewDisplayModel(DisplayConfig{})
	assert.NotNil(t, m)
	assert.Equal(t, time.Second, m.refreshInterval)

	m = NewDisplayModel(DisplayConfig{RefreshInterval: 5 * time.Second})
	assert.Equal(t, 5*time.Second, m.refreshInterval)
}

func TestDisplayInit(t *testing.T) {
	m, _, _ := setupDisplay(t)
	assert.NotNil(t, m.Init())
}

func TestDisplayUpdateWindowSize(t *testing.T) {
	m, _, _ := setupDisplay(t)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 50})
	m = updated.(*DisplayModel)

	assert.Equal(t, 100, m.width)
	assert.Equal(t, 50, m.height)
}

func TestDisplayUpdateSnapshot(t *testing.T) {
	m, eng, _ := setupDisplay(t)

	updated, _ := m.Update(snapshotMsg(eng.Snapshot()))
	m = updated.(*DisplayModel)

	view := m.View()
	assert.Contains(t, view, "08:00")
	assert.Contains(t, view, "Morning routine")
	assert.Contains(t, view, "Today's Plan")
}

func TestDisplayTickRefreshesSnapshot(t *testing.T) {
	m, eng, _ := setupDisplay(t)
	require.NoError(t, eng.MarkDone(context.Background(), 0))

	updated, cmd := m.Update(tickMsg(time.Now()))
	m = updated.(*DisplayModel)

	assert.NotNil(t, cmd)
	assert.True(t, m.snap.Done[0])
	assert.Contains(t, m.View(), "✓ Done")
}

func TestDisplayKeyQuit(t *testing.T) {
	m, _, _ := setupDisplay(t)

	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestDisplayKeyDone(t *testing.T) {
	m, eng, _ := setupDisplay(t)

	updated, _ := m.Update(keyMsg("d"))
	m = updated.(*DisplayModel)

	assert.True(t, eng.Snapshot().Done[0])
	assert.Equal(t, "Well done!", m.message)
	assert.Contains(t, m.View(), "✓ Done")
}

func TestDisplayKeyUndo(t *testing.T) {
	m, eng, _ := setupDisplay(t)
	require.NoError(t, eng.MarkDone(context.Background(), 0))
	m.snap = eng.Snapshot()

	updated, _ := m.Update(keyMsg("u"))
	m = updated.(*DisplayModel)

	assert.Empty(t, eng.Snapshot().Done)
	assert.NotContains(t, m.View(), "✓ Done")
}

func TestDisplayDoneSuppressedDuringEvent(t *testing.T) {
	m, eng, db := setupDisplay(t)
	ctx := context.Background()

	_, err := storage.NewEventRepo(db).Add(ctx, model.Event{
		StartDate: "2026-03-10",
		Start:     "07:00",
		End:       "09:00",
		Label:     "Nurse visit",
	})
	require.NoError(t, err)
	require.NoError(t, eng.ReloadEvents(ctx))
	m.snap = eng.Snapshot()
	require.NotNil(t, m.snap.ActiveEvent)

	updated, _ := m.Update(keyMsg("d"))
	m = updated.(*DisplayModel)

	assert.Empty(t, eng.Snapshot().Done)

	view := m.View()
	assert.Contains(t, view, "Nurse visit")
	// Done keys are hidden from the help bar during the override
	assert.NotContains(t, view, "undo")
}

func TestDisplayAlertFlash(t *testing.T) {
	m, _, _ := setupDisplay(t)

	a := &alert.Alert{BlockIndex: 1, Label: "Morning walk", Minutes: 15, Message: "15 minutes until start"}
	updated, _ := m.Update(alertMsg{alert: a})
	m = updated.(*DisplayModel)

	view := m.View()
	assert.Contains(t, view, "Morning walk")
	assert.Contains(t, view, "15 minutes until start")

	// An expired flash is cleared on the next tick
	m.alertExp = time.Now().Add(-time.Second)
	updated, _ = m.Update(tickMsg(time.Now()))
	m = updated.(*DisplayModel)

	assert.Nil(t, m.alert)
	assert.NotContains(t, m.View(), "15 minutes until start")
}

// =============================================================================
// Component Tests
// =============================================================================

func TestNowComponent(t *testing.T) {
	t.Run("within_block", func(t *testing.T) {
		m, _, _ := setupDisplay(t)

		view := NewNowComponent(&m.snap, 80).View()
		assert.Contains(t, view, "NOW")
		assert.Contains(t, view, "Morning routine")
		assert.Contains(t, view, "06:30")
	})

	t.Run("before_first_block", func(t *testing.T) {
		m, eng, _ := setupDisplay(t)
		at, err := time.ParseInLocation("2006-01-02 15:04", "2026-03-10 05:00", time.Local)
		require.NoError(t, err)
		eng.SetNow(func() time.Time { return at })
		require.NoError(t, eng.Refresh(context.Background()))
		m.snap = eng.Snapshot()

		view := NewNowComponent(&m.snap, 80).View()
		assert.Contains(t, view, "COMING UP")
		assert.Contains(t, view, "Morning routine")
	})

	t.Run("empty_schedule", func(t *testing.T) {
		snap := engine.Snapshot{}

		view := NewNowComponent(&snap, 80).View()
		assert.Contains(t, view, "Nothing scheduled today.")
	})
}

func TestEventBanner(t *testing.T) {
	t.Run("all_day", func(t *testing.T) {
		ev := &model.Event{Label: "Rose's birthday", AllDay: true}

		view := NewEventBanner(ev, 80).View()
		assert.Contains(t, view, "Today")
		assert.Contains(t, view, "Rose's birthday")
	})

	t.Run("timed", func(t *testing.T) {
		ev := &model.Event{Label: "Doctor visit", Start: "14:00", End: "15:00"}

		view := NewEventBanner(ev, 80).View()
		assert.Contains(t, view, "Doctor visit")
		assert.Contains(t, view, "14:00")
	})

	t.Run("nil_event", func(t *testing.T) {
		assert.Empty(t, NewEventBanner(nil, 80).View())
	})
}

func TestAlertBanner(t *testing.T) {
	a := &alert.Alert{Label: "Lunch", Minutes: 5, Message: "5 minutes until start"}

	view := NewAlertBanner(a, 80).View()
	assert.Contains(t, view, "Lunch")
	assert.Contains(t, view, "5 minutes until start")
}

func TestScheduleComponentMarkers(t *testing.T) {
	m, eng, _ := setupDisplay(t)
	require.NoError(t, eng.MarkDone(context.Background(), 0))
	m.snap = eng.Snapshot()

	view := NewScheduleComponent(&m.snap, 80).View()
	assert.Contains(t, view, "→")
	assert.Contains(t, view, "✓")
	assert.Contains(t, view, "Morning walk")
	assert.Contains(t, view, "Lunch")
}

func TestHelpBar(t *testing.T) {
	t.Run("with_done_keys", func(t *testing.T) {
		bar := HelpBar(true)
		assert.Contains(t, bar, "done")
		assert.Contains(t, bar, "undo")
		assert.Contains(t, bar, "quit")
	})

	t.Run("override_hides_done_keys", func(t *testing.T) {
		bar := HelpBar(false)
		assert.NotContains(t, bar, "done")
		assert.NotContains(t, bar, "undo")
		assert.Contains(t, bar, "quit")
	})
}

func TestDisplayFooterAudioGlyph(t *testing.T) {
	m, eng, db := setupDisplay(t)
	assert.Contains(t, m.View(), "sound on")

	require.NoError(t, storage.NewSettingsRepo(db).SetAudio(context.Background(), false))
	require.NoError(t, eng.ReloadSettings(context.Background()))
	m.snap = eng.Snapshot()

	assert.Contains(t, m.View(), "muted")
}
