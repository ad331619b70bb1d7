package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/carebell/carebell/internal/config"
	"github.com/carebell/carebell/internal/logging"
	"github.com/carebell/carebell/internal/model"
)

// WebhookNotifier posts notifications as JSON to one configured URL.
type WebhookNotifier struct {
	name    string
	url     string
	headers map[string]string
	client  *HTTPClient
}

// NewWebhookNotifier creates a notifier for a configured webhook.
func NewWebhookNotifier(cfg config.WebhookConfig) *WebhookNotifier {
	return &WebhookNotifier{
		name:    cfg.Name,
		url:     cfg.URL,
		headers: cfg.Headers,
		client:  NewHTTPClient(),
	}
}

// Name identifies the sink in results and logs.
func (w *WebhookNotifier) Name() string {
	return w.name
}

// Send posts the notification.
func (w *WebhookNotifier) Send(ctx context.Context, n *model.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	logging.DebugLog("posting webhook",
		logging.KeyWebhook, w.name,
		"url", logging.MaskURL(w.url),
		"headers", logging.MaskSensitiveData(w.headers),
	)
	result := w.client.Send(ctx, w.url, "application/json", payload, w.headers)
	if result.Error != nil {
		return result.Error
	}
	return nil
}
