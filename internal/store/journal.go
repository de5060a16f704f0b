package store

import (
	"context"

	"crypto-trade-journal/internal/models"
)

// CreateGoal inserts a goal.
func (s *Store) CreateGoal(ctx context.Context, g *models.Goal) error {
	return s.db.WithContext(ctx).Create(g).Error
}

// GetGoal loads one goal owned by userID.
func (s *Store) GetGoal(ctx context.Context, userID string, id uint) (*models.Goal, error) {
	var g models.Goal
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&g, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &g, nil
}

// ListGoals returns a user's goals, open ones first.
func (s *Store) ListGoals(ctx context.Context, userID string) ([]models.Goal, error) {
	var goals []models.Goal
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("completed ASC").Order("id DESC").
		Find(&goals).Error
	return goals, err
}

// UpdateGoal overwrites an existing goal.
func (s *Store) UpdateGoal(ctx context.Context, g *models.Goal) error {
	existing, err := s.GetGoal(ctx, g.UserID, g.ID)
	if err != nil {
		return err
	}
	g.CreatedAt = existing.CreatedAt
	return s.db.WithContext(ctx).Save(g).Error
}

// DeleteGoal removes a goal owned by userID.
func (s *Store) DeleteGoal(ctx context.Context, userID string, id uint) error {
	return affected(s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Goal{}, id))
}

// CreateNote inserts a note.
func (s *Store) CreateNote(ctx context.Context, n *models.Note) error {
	return s.db.WithContext(ctx).Create(n).Error
}

// GetNote loads one note owned by userID.
func (s *Store) GetNote(ctx context.Context, userID string, id uint) (*models.Note, error) {
	var n models.Note
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&n, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &n, nil
}

// ListNotes returns a user's notes, newest first. A non-nil tradeID restricts
// the listing to notes attached to that trade.
func (s *Store) ListNotes(ctx context.Context, userID string, tradeID *uint) ([]models.Note, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if tradeID != nil {
		q = q.Where("trade_id = ?", *tradeID)
	}

	var notes []models.Note
	err := q.Order("date DESC").Order("id DESC").Find(&notes).Error
	return notes, err
}

// UpdateNote overwrites an existing note.
func (s *Store) UpdateNote(ctx context.Context, n *models.Note) error {
	existing, err := s.GetNote(ctx, n.UserID, n.ID)
	if err != nil {
		return err
	}
	n.CreatedAt = existing.CreatedAt
	return s.db.WithContext(ctx).Save(n).Error
}

// DeleteNote removes a note owned by userID.
func (s *Store) DeleteNote(ctx context.Context, userID string, id uint) error {
	return affected(s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Note{}, id))
}
