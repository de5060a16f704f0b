// Package alerts fires user price alerts from polled market prices.
package alerts

import (
	"context"
	"fmt"
	"time"

	"crypto-trade-journal/internal/config"
	"crypto-trade-journal/internal/market"
	"crypto-trade-journal/internal/models"

	"go.uber.org/zap"
)

// Store is the persistence the watcher needs.
type Store interface {
	ListActiveAlerts(ctx context.Context) ([]models.PriceAlert, error)
	MarkTriggered(ctx context.Context, id uint, price float64, at time.Time) error
	AddNotification(ctx context.Context, n *models.Notification) error
}

// Watcher polls prices for every pending alert and fires the ones whose
// condition holds. An alert fires at most once.
type Watcher struct {
	logger   *zap.Logger
	store    Store
	prices   market.PriceSource
	notifier Notifier
	interval time.Duration
	now      func() time.Time
}

// NewWatcher creates a new alert watcher polling every interval.
func NewWatcher(logger *zap.Logger, store Store, prices market.PriceSource, notifier Notifier, interval time.Duration) *Watcher {
	return &Watcher{
		logger:   logger,
		store:    store,
		prices:   prices,
		notifier: notifier,
		interval: interval,
		now:      time.Now,
	}
}

// PollInterval converts the configured seconds, falling back to 30s.
func PollInterval(cfg config.Alerts) time.Duration {
	if cfg.PollInterval <= 0 {
		return 30 * time.Second
	}
	return time.Duration(cfg.PollInterval) * time.Second
}

// Run checks alerts on every tick until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("Starting alert watcher", zap.Duration("interval", w.interval))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Stopping alert watcher...")
			return
		case <-ticker.C:
			if _, err := w.CheckOnce(ctx); err != nil {
				w.logger.Error("Alert check failed", zap.Error(err))
			}
		}
	}
}

// CheckOnce runs one pass over the pending alerts and returns how many fired.
func (w *Watcher) CheckOnce(ctx context.Context) (int, error) {
	active, err := w.store.ListActiveAlerts(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not load active alerts: %w", err)
	}
	if len(active) == 0 {
		return 0, nil
	}

	symbols := make([]string, 0, len(active))
	seen := make(map[string]struct{})
	for _, a := range active {
		if _, ok := seen[a.Symbol]; !ok {
			seen[a.Symbol] = struct{}{}
			symbols = append(symbols, a.Symbol)
		}
	}

	prices, err := w.prices.Prices(ctx, symbols)
	if err != nil {
		return 0, fmt.Errorf("could not fetch prices: %w", err)
	}

	fired := 0
	for _, a := range active {
		price, ok := prices[a.Symbol]
		if !ok {
			w.logger.Warn("No price for alert symbol", zap.String("symbol", a.Symbol), zap.Uint("alert", a.ID))
			continue
		}
		if !a.Hit(price) {
			continue
		}
		if err := w.fire(ctx, a, price); err != nil {
			w.logger.Error("Failed to fire alert", zap.Uint("alert", a.ID), zap.Error(err))
			continue
		}
		fired++
	}

	w.logger.Debug("Alert check complete", zap.Int("active", len(active)), zap.Int("fired", fired))
	return fired, nil
}

func (w *Watcher) fire(ctx context.Context, a models.PriceAlert, price float64) error {
	if err := w.store.MarkTriggered(ctx, a.ID, price, w.now()); err != nil {
		return fmt.Errorf("could not mark alert triggered: %w", err)
	}

	n := &models.Notification{
		UserID:  a.UserID,
		Kind:    "alert",
		Title:   fmt.Sprintf("%s alert", a.Symbol),
		Message: Message(a, price),
	}
	if err := w.store.AddNotification(ctx, n); err != nil {
		return fmt.Errorf("could not store notification: %w", err)
	}

	// The inbox entry is the record; external delivery is best effort.
	if w.notifier != nil {
		if err := w.notifier.Notify(ctx, a, price); err != nil {
			w.logger.Warn("Alert delivery failed", zap.Uint("alert", a.ID), zap.Error(err))
		}
	}
	return nil
}
