package models

import (
	"time"

	"gorm.io/gorm"
)

// Goal is a trading objective a user tracks progress against.
type Goal struct {
	gorm.Model
	UserID      string     `json:"user_id" gorm:"index;not null"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description,omitempty"`
	TargetPL    *float64   `json:"target_pl,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Completed   bool       `json:"completed"`
}

// Note is a free-form journal entry, optionally tied to a trade.
type Note struct {
	gorm.Model
	UserID  string `json:"user_id" gorm:"index;not null"`
	TradeID *uint  `json:"trade_id,omitempty" gorm:"index"`
	Date    string `json:"date" gorm:"index"` // YYYY-MM-DD
	Title   string `json:"title"`
	Content string `json:"content"`
	Tags    string `json:"tags,omitempty"` // comma separated
	Mood    string `json:"mood,omitempty"`
}
