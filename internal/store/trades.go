package store

import (
	"context"
	"strings"

	"crypto-trade-journal/internal/models"
)

// TradeFilter narrows a trade listing. Zero values do not filter.
type TradeFilter struct {
	UserID    string
	Session   models.Session
	Direction models.Direction
	Result    models.Result
	Pair      string
	From      string // inclusive YYYY-MM-DD
	To        string // inclusive YYYY-MM-DD
	Limit     int
}

// CreateTrade inserts t and fills in its ID and timestamps.
func (s *Store) CreateTrade(ctx context.Context, t *models.Trade) error {
	return s.db.WithContext(ctx).Create(t).Error
}

// GetTrade loads one trade owned by userID.
func (s *Store) GetTrade(ctx context.Context, userID string, id uint) (*models.Trade, error) {
	var t models.Trade
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&t, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

// UpdateTrade overwrites every column of an existing trade, NULLs included.
func (s *Store) UpdateTrade(ctx context.Context, t *models.Trade) error {
	existing, err := s.GetTrade(ctx, t.UserID, t.ID)
	if err != nil {
		return err
	}
	t.CreatedAt = existing.CreatedAt
	return s.db.WithContext(ctx).Save(t).Error
}

// DeleteTrade soft-deletes a trade owned by userID.
func (s *Store) DeleteTrade(ctx context.Context, userID string, id uint) error {
	res := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Trade{}, id)
	return affected(res)
}

// ListTrades returns the matching trades, newest first.
func (s *Store) ListTrades(ctx context.Context, f TradeFilter) ([]models.Trade, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", f.UserID)

	if f.Session != "" {
		q = q.Where("session = ?", f.Session)
	}
	if f.Direction != "" {
		q = q.Where("direction = ?", f.Direction)
	}
	if f.Result != "" {
		q = q.Where("trade_result = ?", f.Result)
	}
	if f.Pair != "" {
		q = q.Where("UPPER(pair) = ?", strings.ToUpper(f.Pair))
	}
	if f.From != "" {
		q = q.Where("trade_date >= ?", f.From)
	}
	if f.To != "" {
		q = q.Where("trade_date <= ?", f.To)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var trades []models.Trade
	err := q.Order("trade_date DESC").Order("trade_time DESC").Order("id DESC").Find(&trades).Error
	return trades, err
}
