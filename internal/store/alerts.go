package store

import (
	"context"
	"time"

	"crypto-trade-journal/internal/models"
)

// CreateAlert inserts a price alert.
func (s *Store) CreateAlert(ctx context.Context, a *models.PriceAlert) error {
	return s.db.WithContext(ctx).Create(a).Error
}

// ListAlerts returns every alert of a user, pending ones first.
func (s *Store) ListAlerts(ctx context.Context, userID string) ([]models.PriceAlert, error) {
	var alerts []models.PriceAlert
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("triggered ASC").Order("id DESC").
		Find(&alerts).Error
	return alerts, err
}

// ListActiveAlerts returns the untriggered alerts of all users.
func (s *Store) ListActiveAlerts(ctx context.Context) ([]models.PriceAlert, error) {
	var alerts []models.PriceAlert
	err := s.db.WithContext(ctx).Where("triggered = ?", false).Order("id ASC").Find(&alerts).Error
	return alerts, err
}

// MarkTriggered records the price that fired an alert. An alert that already
// fired is left untouched and reported as ErrNotFound.
func (s *Store) MarkTriggered(ctx context.Context, id uint, price float64, at time.Time) error {
	res := s.db.WithContext(ctx).
		Model(&models.PriceAlert{}).
		Where("id = ? AND triggered = ?", id, false).
		Updates(map[string]any{
			"triggered":       true,
			"triggered_price": price,
			"triggered_at":    at,
		})
	return affected(res)
}

// DeleteAlert removes an alert owned by userID.
func (s *Store) DeleteAlert(ctx context.Context, userID string, id uint) error {
	return affected(s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.PriceAlert{}, id))
}

// AddNotification appends an entry to a user's inbox.
func (s *Store) AddNotification(ctx context.Context, n *models.Notification) error {
	return s.db.WithContext(ctx).Create(n).Error
}

// ListNotifications returns a user's inbox, newest first. limit <= 0 means no limit.
func (s *Store) ListNotifications(ctx context.Context, userID string, unreadOnly bool, limit int) ([]models.Notification, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("read = ?", false)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var out []models.Notification
	err := q.Order("id DESC").Find(&out).Error
	return out, err
}

// UnreadCount counts a user's unread notifications.
func (s *Store) UnreadCount(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&n).Error
	return n, err
}

// MarkRead marks one notification as read.
func (s *Store) MarkRead(ctx context.Context, userID string, id uint) error {
	res := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	return affected(res)
}

// MarkAllRead marks every notification of a user as read and returns how many changed.
func (s *Store) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true)
	return res.RowsAffected, res.Error
}
