package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/carebell/carebell/internal/alert"
	"github.com/carebell/carebell/internal/bus"
	"github.com/carebell/carebell/internal/engine"
	errs "github.com/carebell/carebell/internal/errors"
)

// alertFlash is how long a reminder stays on screen. Kept under the
// one-minute alert cadence so flashes never pile up.
const alertFlash = 45 * time.Second

// tickMsg is sent when the timer ticks.
type tickMsg time.Time

// snapshotMsg carries a fresh engine snapshot.
type snapshotMsg engine.Snapshot

// alertMsg carries a reminder that just fired.
type alertMsg struct {
	alert *alert.Alert
}

// errMsg is sent when an error occurs.
type errMsg struct {
	err error
}

// DisplayModel is the main bubbletea model for the elder display.
type DisplayModel struct {
	// Data
	snap     engine.Snapshot
	alert    *alert.Alert
	alertExp time.Time

	// Engine
	engine *engine.Engine

	// UI state
	width      int
	height     int
	err        error
	message    string
	messageExp time.Time

	// Configuration
	refreshInterval time.Duration
}

// DisplayConfig holds configuration for the display.
type DisplayConfig struct {
	Engine          *engine.Engine
	Bus             *bus.Bus
	RefreshInterval time.Duration
}

// NewDisplayModel creates a new display model.
func NewDisplayModel(config DisplayConfig) *DisplayModel {
	if config.RefreshInterval == 0 {
		config.RefreshInterval = time.Second
	}

	return &DisplayModel{
		engine:          config.Engine,
		refreshInterval: config.RefreshInterval,
	}
}

// Init initializes the model.
func (m *DisplayModel) Init() tea.Cmd {
	return tea.Batch(
		m.tickCmd(),
		m.refreshCmd(),
	)
}

// Update handles messages and updates the model.
func (m *DisplayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.snap = m.engine.Snapshot()
		// Clear expired messages and reminder flashes
		now := time.Now()
		if !m.messageExp.IsZero() && now.After(m.messageExp) {
			m.message = ""
			m.messageExp = time.Time{}
		}
		if m.alert != nil && now.After(m.alertExp) {
			m.alert = nil
			m.alertExp = time.Time{}
		}
		return m, m.tickCmd()

	case snapshotMsg:
		m.snap = engine.Snapshot(msg)
		return m, nil

	case alertMsg:
		m.alert = msg.alert
		m.alertExp = time.Now().Add(alertFlash)
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input.
func (m *DisplayModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "d":
		// Mark the current block done. Disabled while an event is on
		// screen; the engine refuses it too.
		if m.snap.ActiveEvent != nil || len(m.snap.Blocks) == 0 {
			return m, nil
		}
		if err := m.engine.MarkDone(context.Background(), m.snap.CurrentIndex); err != nil {
			if errs.Is(err, errs.ErrEventActive) {
				m.setMessage("Done marks are paused during the event", 3*time.Second)
			} else {
				m.err = err
			}
		} else {
			m.setMessage("Well done!", 3*time.Second)
			m.snap = m.engine.Snapshot()
		}
		return m, nil

	case "u":
		// Undo a done mark
		if m.snap.ActiveEvent != nil || len(m.snap.Blocks) == 0 {
			return m, nil
		}
		if err := m.engine.UnmarkDone(context.Background(), m.snap.CurrentIndex); err != nil {
			m.err = err
		} else {
			m.setMessage("Undone", 2*time.Second)
			m.snap = m.engine.Snapshot()
		}
		return m, nil

	case "r":
		// Reload everything from storage
		if err := m.engine.Refresh(context.Background()); err != nil {
			m.err = err
		} else {
			m.snap = m.engine.Snapshot()
			m.setMessage("Refreshed", time.Second)
		}
		return m, nil
	}

	return m, nil
}

// View renders the display.
func (m *DisplayModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sections []string

	sections = append(sections, m.renderHeader())

	if m.err != nil {
		sections = append(sections, StyleError.Render("Error: "+m.err.Error()))
	}
	if m.message != "" {
		sections = append(sections, StyleWarning.Render(m.message))
	}

	if m.alert != nil {
		sections = append(sections, NewAlertBanner(m.alert, m.width).View())
	}
	if m.snap.ActiveEvent != nil {
		sections = append(sections, NewEventBanner(m.snap.ActiveEvent, m.width).View())
	}

	sections = append(sections, NewNowComponent(&m.snap, m.width).View())
	sections = append(sections, NewScheduleComponent(&m.snap, m.width).View())
	sections = append(sections, m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the clock, date, and day progress.
func (m *DisplayModel) renderHeader() string {
	clock := StyleClock.Render(m.snap.Clock)
	date := StyleDate.Render(m.snap.Now.Format("Monday, January 2"))
	top := lipgloss.JoinHorizontal(lipgloss.Top, clock, "  ", date)

	barWidth := m.width - 10
	if barWidth < 10 {
		barWidth = 10
	}
	bar := ProgressBar(m.snap.Progress, barWidth)

	return top + "\n" + bar + "\n"
}

// renderFooter renders the audio state and help bar.
func (m *DisplayModel) renderFooter() string {
	audio := "♪ sound on"
	if !m.snap.Settings.AudioEnabled {
		audio = "♪ muted"
	}
	return StyleSubtitle.Render(audio) + "\n" + HelpBar(m.snap.ActiveEvent == nil)
}

// setMessage sets a temporary message.
func (m *DisplayModel) setMessage(msg string, duration time.Duration) {
	m.message = msg
	m.messageExp = time.Now().Add(duration)
}

// tickCmd returns a command that sends a tick message.
func (m *DisplayModel) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refreshCmd returns a command that pulls the first snapshot.
func (m *DisplayModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(m.engine.Snapshot())
	}
}

// Run starts the display TUI. Engine events arrive through the bus so
// the screen reacts to reloads and reminders without waiting for the
// next tick.
func Run(config DisplayConfig) error {
	model := NewDisplayModel(config)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if config.Bus != nil {
		config.Bus.Subscribe(bus.TypeSnapshot, func(ev bus.Event) {
			if snap, ok := ev.Payload.(engine.Snapshot); ok {
				p.Send(snapshotMsg(snap))
			}
		})
		config.Bus.Subscribe(bus.TypeAlert, func(ev bus.Event) {
			if a, ok := ev.Payload.(*alert.Alert); ok {
				p.Send(alertMsg{alert: a})
			}
		})
	}

	_, err := p.Run()
	return err
}
