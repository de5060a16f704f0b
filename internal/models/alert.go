package models

import (
	"time"

	"gorm.io/gorm"
)

// AlertCondition is the price relation that fires an alert.
type AlertCondition string

const (
	ConditionAbove AlertCondition = "above"
	ConditionBelow AlertCondition = "below"
)

// PriceAlert fires once when Symbol crosses Price in the given direction.
type PriceAlert struct {
	gorm.Model
	UserID         string         `json:"user_id" gorm:"index;not null"`
	Symbol         string         `json:"symbol" gorm:"index;not null"` // exchange symbol, e.g. BTCUSDT
	Condition      AlertCondition `json:"condition"`
	Price          float64        `json:"price"`
	Note           string         `json:"note,omitempty"`
	Triggered      bool           `json:"triggered" gorm:"index"`
	TriggeredPrice *float64       `json:"triggered_price,omitempty"`
	TriggeredAt    *time.Time     `json:"triggered_at,omitempty"`
}

// Hit reports whether price satisfies the alert condition.
func (a PriceAlert) Hit(price float64) bool {
	switch a.Condition {
	case ConditionAbove:
		return price >= a.Price
	case ConditionBelow:
		return price <= a.Price
	default:
		return false
	}
}

// Notification is an inbox entry shown to a user.
type Notification struct {
	gorm.Model
	UserID  string `json:"user_id" gorm:"index;not null"`
	Kind    string `json:"kind"` // "alert", "goal", ...
	Title   string `json:"title"`
	Message string `json:"message"`
	Read    bool   `json:"read" gorm:"index"`
}
