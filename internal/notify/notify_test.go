package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carebell/carebell/internal/alert"
	"github.com/carebell/carebell/internal/bus"
	"github.com/carebell/carebell/internal/config"
	"github.com/carebell/carebell/internal/model"
)

// fastHTTPClient avoids the production backoff delays.
func fastHTTPClient() *HTTPClient {
	return &HTTPClient{
		client:     &http.Client{Timeout: 5 * time.Second},
		maxRetries: 3,
		retryDelay: []time.Duration{0, time.Millisecond, time.Millisecond},
	}
}

// =============================================================================
// Webhook Tests
// =============================================================================

func TestWebhookNotifierSend(t *testing.T) {
	var gotBody []byte
	var gotHeader http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotHeader = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := NewWebhookNotifier(config.WebhookConfig{
		Name:    "family-chat",
		URL:     server.URL,
		Headers: map[string]string{"X-Api-Key": "k1"},
	})

	n := model.NewNotification(model.NotifyAlert, "Morning walk", "10 minutes until start")
	require.NoError(t, notifier.Send(context.Background(), n))

	assert.Equal(t, "application/json", gotHeader.Get("Content-Type"))
	assert.Equal(t, "CareBell/1.0", gotHeader.Get("User-Agent"))
	assert.Equal(t, "k1", gotHeader.Get("X-Api-Key"))

	var sent model.Notification
	require.NoError(t, json.Unmarshal(gotBody, &sent))
	assert.Equal(t, model.NotifyAlert, sent.Type)
	assert.Equal(t, "Morning walk", sent.Title)
}

func TestWebhookNotifierRetriesServerErrors(t *testing.T) {
	var mu sync.Mutex
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits++
		n := hits
		mu.Unlock()
		if n < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := NewWebhookNotifier(config.WebhookConfig{Name: "flaky", URL: server.URL})
	notifier.client = fastHTTPClient()

	require.NoError(t, notifier.Send(context.Background(), TestNotification()))
	assert.Equal(t, 3, hits)
}

func TestWebhookNotifierDoesNotRetryClientErrors(t *testing.T) {
	var mu sync.Mutex
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits++
		mu.Unlock()
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	notifier := NewWebhookNotifier(config.WebhookConfig{Name: "strict", URL: server.URL})
	notifier.client = fastHTTPClient()

	err := notifier.Send(context.Background(), TestNotification())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 400")
	assert.Equal(t, 1, hits)
}

func TestHTTPClientRetriesRateLimit(t *testing.T) {
	var mu sync.Mutex
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits++
		n := hits
		mu.Unlock()
		if n == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	result := fastHTTPClient().Send(context.Background(), server.URL, "application/json", []byte("{}"), nil)
	require.NoError(t, result.Error)
	assert.Equal(t, 2, result.Attempts)
	assert.Equal(t, http.StatusOK, result.StatusCode)
}

// =============================================================================
// Telegram Tests
// =============================================================================

type fakeSender struct {
	sent []tgbotapi.Chattable
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, f.err
}

func TestTelegramNotifierSend(t *testing.T) {
	sender := &fakeSender{}
	notifier := NewTelegramNotifierWithSender(sender, 42)

	n := model.NewNotification(model.NotifyAlert, "Morning walk", "10 minutes until start").
		WithField("Block", "09:00-10:00")
	require.NoError(t, notifier.Send(context.Background(), n))

	require.Len(t, sender.sent, 1)
	msg, ok := sender.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(42), msg.ChatID)
	assert.Equal(t, "Schedule Alert\nMorning walk\n10 minutes until start\nBlock: 09:00-10:00", msg.Text)
}

func TestTelegramNotifierSendError(t *testing.T) {
	sender := &fakeSender{err: assert.AnError}
	notifier := NewTelegramNotifierWithSender(sender, 42)

	err := notifier.Send(context.Background(), TestNotification())
	assert.Error(t, err)
}

// =============================================================================
// Dispatcher Tests
// =============================================================================

type fakeNotifier struct {
	name string
	err  error

	mu  sync.Mutex
	got []*model.Notification
}

func (f *fakeNotifier) Name() string { return f.name }

func (f *fakeNotifier) Send(_ context.Context, n *model.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.got = append(f.got, n)
	return f.err
}

func TestDispatchFansOutToAllSinks(t *testing.T) {
	ok := &fakeNotifier{name: "ok"}
	bad := &fakeNotifier{name: "bad", err: assert.AnError}
	d := NewDispatcher(ok, bad)

	results := d.Dispatch(context.Background(), TestNotification())
	require.Len(t, results, 2)

	assert.Equal(t, "ok", results[0].Sink)
	assert.True(t, results[0].Success)
	assert.Equal(t, "bad", results[1].Sink)
	assert.False(t, results[1].Success)
	assert.Error(t, results[1].Error)

	assert.Len(t, ok.got, 1)
	assert.Len(t, bad.got, 1)
}

func TestDispatchWithoutSinks(t *testing.T) {
	d := NewDispatcher()
	assert.False(t, d.HasSinks())
	assert.Nil(t, d.Dispatch(context.Background(), TestNotification()))
}

type chanNotifier struct {
	ch chan *model.Notification
}

func (c *chanNotifier) Name() string { return "chan" }

func (c *chanNotifier) Send(_ context.Context, n *model.Notification) error {
	c.ch <- n
	return nil
}

func TestBindDeliversEngineEvents(t *testing.T) {
	sink := &chanNotifier{ch: make(chan *model.Notification, 2)}
	d := NewDispatcher(sink)

	eventBus := bus.New()
	d.Bind(eventBus)

	eventBus.Publish(bus.TypeAlert, &alert.Alert{
		BlockKey: "09:00-10:00",
		Label:    "Morning walk",
		Message:  "10 minutes until start",
	})

	select {
	case n := <-sink.ch:
		assert.Equal(t, model.NotifyAlert, n.Type)
		assert.Equal(t, "Morning walk", n.Title)
		assert.Equal(t, "10 minutes until start", n.Message)
	case <-time.After(2 * time.Second):
		t.Fatal("alert notification never arrived")
	}

	eventBus.Publish(bus.TypeDone, model.ActivityEntry{
		Title:       "Morning walk",
		CompletedAt: time.Date(2026, 3, 10, 9, 45, 0, 0, time.Local),
		DateKey:     "2026-03-10",
	})

	select {
	case n := <-sink.ch:
		assert.Equal(t, model.NotifyActivity, n.Type)
		assert.Equal(t, "Morning walk completed at 09:45", n.Message)
	case <-time.After(2 * time.Second):
		t.Fatal("activity notification never arrived")
	}
}

func TestFromConfigWebhooksOnly(t *testing.T) {
	d, err := FromConfig(config.NotifyConfig{
		Webhooks: []config.WebhookConfig{
			{Name: "a", URL: "https://example.com/hook"},
			{Name: "b", URL: "https://example.com/hook2"},
		},
	})
	require.NoError(t, err)
	assert.True(t, d.HasSinks())
	assert.Len(t, d.notifiers, 2)
}

func TestFromConfigEmpty(t *testing.T) {
	d, err := FromConfig(config.NotifyConfig{})
	require.NoError(t, err)
	assert.False(t, d.HasSinks())
}

func TestFromConfigRejectsBadWebhookURL(t *testing.T) {
	_, err := FromConfig(config.NotifyConfig{
		Webhooks: []config.WebhookConfig{
			{Name: "family", URL: "not a url"},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "family")
}

// =============================================================================
// Notification Builder Tests
// =============================================================================

func TestAlertNotificationFallbackTitle(t *testing.T) {
	n := AlertNotification(&alert.Alert{Message: "5 minutes until start", BlockKey: "09:00-09:30"})
	assert.Equal(t, "Schedule reminder", n.Title)
	assert.Equal(t, "09:00-09:30", n.Fields["Block"])
}
