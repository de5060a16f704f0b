// Package journal ties trade validation, derived-field calculation and
// persistence together for the HTTP and CLI front ends.
package journal

import (
	"context"
	"errors"
	"fmt"

	"crypto-trade-journal/internal/calc"
	"crypto-trade-journal/internal/models"
	"crypto-trade-journal/internal/stats"
	"crypto-trade-journal/internal/store"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrUnknownGroup is returned by Breakdown for an unsupported grouping name.
var ErrUnknownGroup = errors.New("unknown grouping")

// TradeRepository is the persistence the service needs.
type TradeRepository interface {
	CreateTrade(ctx context.Context, t *models.Trade) error
	GetTrade(ctx context.Context, userID string, id uint) (*models.Trade, error)
	UpdateTrade(ctx context.Context, t *models.Trade) error
	DeleteTrade(ctx context.Context, userID string, id uint) error
	ListTrades(ctx context.Context, f store.TradeFilter) ([]models.Trade, error)
}

// Service records trades with freshly derived economics.
type Service struct {
	logger     *zap.Logger
	repo       TradeRepository
	calculator calc.Calculator
	validator  calc.Validator
}

// NewService creates a new journal service.
func NewService(logger *zap.Logger, repo TradeRepository, calculator calc.Calculator, validator calc.Validator) *Service {
	return &Service{
		logger:     logger,
		repo:       repo,
		calculator: calculator,
		validator:  validator,
	}
}

// Preview derives the dependent fields of a trade form without storing anything.
func (s *Service) Preview(in calc.Inputs) calc.Derived {
	return s.calculator.Derive(in)
}

// CreateTrade validates t, fills in its derived fields and stores it for userID.
// Validation failures are returned as calc.ValidationErrors.
func (s *Service) CreateTrade(ctx context.Context, userID string, t models.Trade) (*models.Trade, error) {
	// Identity, timestamps and soft-delete state are never taken from the caller.
	t.Model = gorm.Model{}
	t.UserID = userID
	if err := s.validator.Validate(t); err != nil {
		return nil, err
	}

	enriched := s.calculator.Enrich(t)
	if err := s.repo.CreateTrade(ctx, &enriched); err != nil {
		return nil, fmt.Errorf("could not save trade: %w", err)
	}

	s.logger.Info("Trade recorded",
		zap.String("user", userID),
		zap.Uint("id", enriched.ID),
		zap.String("pair", enriched.Pair),
		zap.String("direction", string(enriched.Direction)),
		zap.String("result", string(enriched.TradeResult)))
	return &enriched, nil
}

// UpdateTrade replaces the entered fields of an existing trade and recomputes
// everything derived from them.
func (s *Service) UpdateTrade(ctx context.Context, userID string, id uint, edit models.Trade) (*models.Trade, error) {
	existing, err := s.repo.GetTrade(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	edit.Model = existing.Model
	edit.UserID = userID
	if err := s.validator.Validate(edit); err != nil {
		return nil, err
	}

	enriched := s.calculator.Enrich(edit)
	if err := s.repo.UpdateTrade(ctx, &enriched); err != nil {
		return nil, fmt.Errorf("could not update trade %d: %w", id, err)
	}

	s.logger.Info("Trade updated",
		zap.String("user", userID),
		zap.Uint("id", id),
		zap.String("result", string(enriched.TradeResult)))
	return &enriched, nil
}

// DeleteTrade removes a trade.
func (s *Service) DeleteTrade(ctx context.Context, userID string, id uint) error {
	if err := s.repo.DeleteTrade(ctx, userID, id); err != nil {
		return err
	}
	s.logger.Info("Trade deleted", zap.String("user", userID), zap.Uint("id", id))
	return nil
}

// GetTrade loads one trade.
func (s *Service) GetTrade(ctx context.Context, userID string, id uint) (*models.Trade, error) {
	return s.repo.GetTrade(ctx, userID, id)
}

// ListTrades lists the trades of userID matching f.
func (s *Service) ListTrades(ctx context.Context, userID string, f store.TradeFilter) ([]models.Trade, error) {
	f.UserID = userID
	return s.repo.ListTrades(ctx, f)
}

// Breakdown groups the closed trades of userID by the named category.
func (s *Service) Breakdown(ctx context.Context, userID, group string, order stats.Order, f store.TradeFilter) ([]stats.BucketView, error) {
	key, ok := stats.KeyFor(group)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGroup, group)
	}

	trades, err := s.ListTrades(ctx, userID, unlimited(f))
	if err != nil {
		return nil, err
	}

	buckets := stats.AggregateBy(trades, key)
	s.logger.Debug("Computed breakdown",
		zap.String("user", userID),
		zap.String("group", group),
		zap.Int("trades", len(trades)),
		zap.Int("buckets", len(buckets)))
	return stats.View(stats.Sorted(buckets, order)), nil
}

// Summary computes the overview statistics of userID.
func (s *Service) Summary(ctx context.Context, userID string, f store.TradeFilter) (stats.Summary, error) {
	trades, err := s.ListTrades(ctx, userID, unlimited(f))
	if err != nil {
		return stats.Summary{}, err
	}
	return stats.Summarize(trades), nil
}

// unlimited drops the row limit so statistics always cover every matching trade.
func unlimited(f store.TradeFilter) store.TradeFilter {
	f.Limit = 0
	return f
}
