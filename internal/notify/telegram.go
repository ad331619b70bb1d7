package notify

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/carebell/carebell/internal/config"
	"github.com/carebell/carebell/internal/model"
)

// telegramSender is the slice of the bot API the notifier needs. Tests
// inject a fake.
type telegramSender interface {
	Send(tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier sends notifications to one family chat.
type TelegramNotifier struct {
	sender telegramSender
	chatID int64
}

// NewTelegramNotifier connects to the Telegram bot API.
func NewTelegramNotifier(cfg config.TelegramConfig) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to connect telegram bot: %w", err)
	}
	api.Debug = cfg.Debug
	return &TelegramNotifier{sender: api, chatID: cfg.ChatID}, nil
}

// NewTelegramNotifierWithSender allows injecting a fake bot for tests.
func NewTelegramNotifierWithSender(sender telegramSender, chatID int64) *TelegramNotifier {
	return &TelegramNotifier{sender: sender, chatID: chatID}
}

// Name identifies the sink in results and logs.
func (t *TelegramNotifier) Name() string {
	return "telegram"
}

// Send delivers the notification as a plain-text chat message.
func (t *TelegramNotifier) Send(_ context.Context, n *model.Notification) error {
	msg := tgbotapi.NewMessage(t.chatID, formatText(n))
	if _, err := t.sender.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}

// formatText renders a notification for chat. Plain text on purpose:
// block labels are family input and would need escaping in any markup
// mode.
func formatText(n *model.Notification) string {
	var b strings.Builder
	b.WriteString(n.TypeLabel())
	if n.Title != "" {
		b.WriteString("\n")
		b.WriteString(n.Title)
	}
	if n.Message != "" {
		b.WriteString("\n")
		b.WriteString(n.Message)
	}

	keys := make([]string, 0, len(n.Fields))
	for key := range n.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(&b, "\n%s: %s", key, n.Fields[key])
	}
	return b.String()
}
