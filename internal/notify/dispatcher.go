// Package notify delivers schedule alerts and activity updates to the
// family's sinks: configured webhooks and an optional Telegram chat.
// Delivery is best-effort; the display never waits on it.
package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/carebell/carebell/internal/alert"
	"github.com/carebell/carebell/internal/bus"
	"github.com/carebell/carebell/internal/config"
	"github.com/carebell/carebell/internal/logging"
	"github.com/carebell/carebell/internal/metrics"
	"github.com/carebell/carebell/internal/model"
	"github.com/carebell/carebell/internal/validate"
)

// dispatchTimeout bounds one fan-out including webhook retries.
const dispatchTimeout = 90 * time.Second

// Notifier delivers one notification to one sink.
type Notifier interface {
	Name() string
	Send(ctx context.Context, n *model.Notification) error
}

// DispatchResult contains the outcome for a single sink.
type DispatchResult struct {
	Sink     string
	Success  bool
	Duration time.Duration
	Error    error
}

// Dispatcher fans notifications out to every configured sink.
type Dispatcher struct {
	notifiers []Notifier
}

// NewDispatcher creates a dispatcher over the given sinks.
func NewDispatcher(notifiers ...Notifier) *Dispatcher {
	return &Dispatcher{notifiers: notifiers}
}

// FromConfig builds a dispatcher with all sinks the config enables.
// A malformed webhook URL fails the whole build; silent sink loss is
// worse than a loud start.
func FromConfig(cfg config.NotifyConfig) (*Dispatcher, error) {
	var notifiers []Notifier
	for _, webhook := range cfg.Webhooks {
		if err := validate.WebhookURL(webhook.URL); err != nil {
			return nil, fmt.Errorf("webhook %q: %w", webhook.Name, err)
		}
		notifiers = append(notifiers, NewWebhookNotifier(webhook))
		logging.Info("webhook sink configured",
			logging.KeyWebhook, webhook.Name,
			"url", logging.MaskURL(webhook.URL),
		)
	}
	if cfg.Telegram.Enabled() {
		telegram, err := NewTelegramNotifier(cfg.Telegram)
		if err != nil {
			return nil, err
		}
		notifiers = append(notifiers, telegram)
		logging.Info("telegram sink configured")
	}
	return NewDispatcher(notifiers...), nil
}

// HasSinks reports whether any sink is configured.
func (d *Dispatcher) HasSinks() bool {
	return len(d.notifiers) > 0
}

// Dispatch sends the notification to all sinks concurrently and
// returns one result per sink.
func (d *Dispatcher) Dispatch(ctx context.Context, n *model.Notification) []DispatchResult {
	if len(d.notifiers) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	results := make([]DispatchResult, len(d.notifiers))

	for i, notifier := range d.notifiers {
		wg.Add(1)
		go func(idx int, sink Notifier) {
			defer wg.Done()
			start := time.Now()
			err := sink.Send(ctx, n)
			results[idx] = DispatchResult{
				Sink:     sink.Name(),
				Success:  err == nil,
				Duration: time.Since(start),
				Error:    err,
			}
		}(i, notifier)
	}
	wg.Wait()

	for _, result := range results {
		if result.Success {
			metrics.IncNotifyDelivery(result.Sink, "ok")
			logging.DebugLog("notification delivered",
				logging.KeyWebhook, result.Sink,
				logging.KeyDuration, result.Duration.Milliseconds(),
			)
		} else {
			metrics.IncNotifyDelivery(result.Sink, "error")
			// Transport errors quote the full URL, path secrets included.
			logging.Warn("notification delivery failed",
				logging.KeyWebhook, result.Sink,
				logging.KeyError, logging.MaskString(result.Error.Error()),
			)
		}
	}
	return results
}

// Bind subscribes the dispatcher to engine events. Deliveries run on
// their own goroutine so a slow sink never stalls a tick.
func (d *Dispatcher) Bind(eventBus *bus.Bus) {
	if !d.HasSinks() {
		return
	}

	eventBus.Subscribe(bus.TypeAlert, func(event bus.Event) {
		fired, ok := event.Payload.(*alert.Alert)
		if !ok {
			return
		}
		go d.dispatchAsync(AlertNotification(fired))
	})

	eventBus.Subscribe(bus.TypeDone, func(event bus.Event) {
		entry, ok := event.Payload.(model.ActivityEntry)
		if !ok {
			return
		}
		go d.dispatchAsync(ActivityNotification(entry))
	})
}

func (d *Dispatcher) dispatchAsync(n *model.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()
	d.Dispatch(ctx, n)
}

// AlertNotification converts a fired alert for the family sinks.
func AlertNotification(fired *alert.Alert) *model.Notification {
	title := fired.Label
	if title == "" {
		title = "Schedule reminder"
	}
	return model.NewNotification(model.NotifyAlert, title, fired.Message).
		WithField("Block", fired.BlockKey)
}

// ActivityNotification converts a completed block for the family sinks.
func ActivityNotification(entry model.ActivityEntry) *model.Notification {
	message := fmt.Sprintf("%s completed at %s", entry.Title, entry.CompletedAt.Format("15:04"))
	return model.NewNotification(model.NotifyActivity, entry.Title, message).
		WithField("Date", entry.DateKey)
}

// TestNotification produces the payload for verifying sink setup.
func TestNotification() *model.Notification {
	return model.NewNotification(
		model.NotifyTest,
		"CareBell Test",
		"If you can read this, notifications are configured correctly.",
	).WithField("Time", time.Now().Format("15:04"))
}
