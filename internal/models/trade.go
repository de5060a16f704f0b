package models

import (
	"time"

	"gorm.io/gorm"
)

// Direction is the side of a trade.
type Direction string

const (
	DirectionLong  Direction = "Long"
	DirectionShort Direction = "Short"
)

// Valid reports whether d is one of the known directions.
func (d Direction) Valid() bool {
	return d == DirectionLong || d == DirectionShort
}

// Session is the trading session a trade was taken in.
type Session string

const (
	SessionLondonClose Session = "London Close"
	SessionNY          Session = "NY Session"
	SessionAsian       Session = "Asian Session"
)

// Sessions lists every accepted session in display order.
var Sessions = []Session{SessionLondonClose, SessionNY, SessionAsian}

// Valid reports whether s is one of the known sessions.
func (s Session) Valid() bool {
	for _, known := range Sessions {
		if s == known {
			return true
		}
	}
	return false
}

// Result is the outcome classification of a closed trade.
type Result string

const (
	ResultWin       Result = "Win"
	ResultLoss      Result = "Loss"
	ResultBreakEven Result = "Break Even"
)

// Date and clock layouts used by TradeDate, TradeTime and ExitTime.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Trade is a journaled trade owned by a single user.
// Pointer fields are absent (NULL) until their inputs are known.
type Trade struct {
	gorm.Model
	UserID string `json:"user_id" gorm:"index;not null"`

	TradeDate string  `json:"trade_date" gorm:"index"` // YYYY-MM-DD
	TradeTime string  `json:"trade_time"`              // HH:MM, entry clock time
	ExitTime  string  `json:"exit_time,omitempty"`     // HH:MM
	DayOfWeek string  `json:"day_of_week"`             // derived from TradeDate on save
	Session   Session `json:"session" gorm:"index"`

	// Setup context, stored as entered.
	Pair            string   `json:"pair"`
	HTFTrend        string   `json:"htf_trend,omitempty"`
	POIType         string   `json:"poi_type,omitempty"`
	POIPrice        *float64 `json:"poi_price,omitempty"`
	M15Confirmation bool     `json:"m15_confirmation"`
	M1EntryType     string   `json:"m1_entry_type,omitempty"`
	Notes           string   `json:"notes,omitempty"`

	Direction       Direction `json:"direction"`
	EntryPrice      float64   `json:"entry_price"`
	StopLoss        float64   `json:"stop_loss"`
	TakeProfit      *float64  `json:"take_profit,omitempty"`
	ExitPrice       *float64  `json:"exit_price,omitempty"`
	RiskPercent     float64   `json:"risk_percent"`
	AccountBalance  float64   `json:"account_balance"`
	RiskDollar      float64   `json:"risk_dollar"`
	PositionSize    float64   `json:"position_size"`
	RiskRewardRatio *float64  `json:"risk_reward_ratio,omitempty"`

	PLDollar      *float64 `json:"pl_dollar,omitempty"`
	PLPercent     *float64 `json:"pl_percent,omitempty"`
	TradeResult   Result   `json:"trade_result,omitempty" gorm:"index"`
	TradeDuration string   `json:"trade_duration,omitempty"`
}

// BeforeSave keeps DayOfWeek in step with TradeDate.
func (t *Trade) BeforeSave(tx *gorm.DB) error {
	t.DayOfWeek = DayOfWeek(t.TradeDate)
	return nil
}

// Closed reports whether the trade has a determined outcome.
func (t Trade) Closed() bool {
	return t.PLDollar != nil
}

// DayOfWeek returns the weekday name for a YYYY-MM-DD date, or "" if it does not parse.
func DayOfWeek(date string) string {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return ""
	}
	return d.Weekday().String()
}

// Float returns a pointer to v. Handy for the optional price fields.
func Float(v float64) *float64 {
	return &v
}
