package alerts

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"crypto-trade-journal/internal/config"
	"crypto-trade-journal/internal/models"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Notifier delivers a fired alert outside the journal inbox.
type Notifier interface {
	Notify(ctx context.Context, alert models.PriceAlert, price float64) error
}

// Message renders the human readable line for a fired alert.
func Message(alert models.PriceAlert, price float64) string {
	msg := fmt.Sprintf("%s is %s %s (last %s)",
		alert.Symbol, alert.Condition, formatPrice(alert.Price), formatPrice(price))
	if alert.Note != "" {
		msg += ": " + alert.Note
	}
	return msg
}

func formatPrice(p float64) string {
	s := fmt.Sprintf("%.8f", p)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// LogNotifier writes fired alerts to the log.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a notifier that only logs.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the alert.
func (n *LogNotifier) Notify(_ context.Context, alert models.PriceAlert, price float64) error {
	n.logger.Info("Price alert fired",
		zap.String("user", alert.UserID),
		zap.String("symbol", alert.Symbol),
		zap.String("condition", string(alert.Condition)),
		zap.Float64("target", alert.Price),
		zap.Float64("price", price))
	return nil
}

// WebhookNotifier posts fired alerts to a Discord or Slack incoming webhook.
type WebhookNotifier struct {
	client  *resty.Client
	url     string
	botName string
}

// NewWebhookNotifier creates a webhook notifier. Delivery is retried on
// transport errors and 5xx responses.
func NewWebhookNotifier(url, botName string) *WebhookNotifier {
	if botName == "" {
		botName = "TradeJournal"
	}
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		})
	return &WebhookNotifier{client: client, url: url, botName: botName}
}

// Notify posts the alert message.
func (n *WebhookNotifier) Notify(ctx context.Context, alert models.PriceAlert, price float64) error {
	text := fmt.Sprintf("[%s] %s", n.botName, Message(alert, price))

	resp, err := n.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(n.payload(text)).
		Post(n.url)
	if err != nil {
		return fmt.Errorf("webhook delivery failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("webhook delivery failed with status %s", resp.Status())
	}
	return nil
}

func (n *WebhookNotifier) payload(msg string) map[string]string {
	if strings.Contains(n.url, "discord") {
		return map[string]string{
			"content":  msg,
			"username": n.botName,
		}
	}
	return map[string]string{
		"text":     fmt.Sprintf("`%s`", msg),
		"username": n.botName,
	}
}

// Multi fans an alert out to several notifiers and returns the first error.
type Multi []Notifier

// Notify calls every notifier even when one fails.
func (m Multi) Notify(ctx context.Context, alert models.PriceAlert, price float64) error {
	var first error
	for _, n := range m {
		if err := n.Notify(ctx, alert, price); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// NotifierFor always logs and also posts to the webhook when one is configured.
func NotifierFor(cfg config.Alerts, logger *zap.Logger) Notifier {
	n := Multi{NewLogNotifier(logger)}
	if cfg.WebhookURL != "" {
		n = append(n, NewWebhookNotifier(cfg.WebhookURL, cfg.BotName))
	}
	return n
}
