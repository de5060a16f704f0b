// Package store persists journal data through gorm. Every lookup is scoped to
// the owning user, so one user can never read or change another's rows.
package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a row does not exist or belongs to another user.
var ErrNotFound = fmt.Errorf("store: record not found: %w", gorm.ErrRecordNotFound)

// Store is the gorm-backed repository for trades, goals, notes, alerts and notifications.
type Store struct {
	db *gorm.DB
}

// New wraps an opened and migrated database.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for health checks.
func (s *Store) DB() *gorm.DB {
	return s.db
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// affected maps a write that touched no rows to ErrNotFound.
func affected(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
