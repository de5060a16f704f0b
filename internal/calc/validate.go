package calc

import (
	"fmt"
	"strings"
	"time"

	"crypto-trade-journal/internal/models"
)

// DefaultRiskPercents are the risk levels a trade may be entered with.
var DefaultRiskPercents = []float64{1, 1.5, 2}

// FieldError describes one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is returned by Validator.Validate when a trade cannot be submitted.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, fe := range v {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "invalid trade: " + strings.Join(parts, "; ")
}

// Validator is the submit gate for trade records.
type Validator struct {
	RiskPercents []float64
}

// NewValidator returns a Validator accepting the given risk percents,
// or DefaultRiskPercents when none are given.
func NewValidator(riskPercents []float64) Validator {
	if len(riskPercents) == 0 {
		riskPercents = DefaultRiskPercents
	}
	return Validator{RiskPercents: riskPercents}
}

// Validate checks that t has the required fields and a stop loss on the
// losing side of the entry. It returns ValidationErrors or nil.
func (v Validator) Validate(t models.Trade) error {
	var errs ValidationErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if t.TradeDate == "" {
		add("trade_date", "is required")
	} else if _, err := time.Parse(models.DateLayout, t.TradeDate); err != nil {
		add("trade_date", "must be YYYY-MM-DD")
	}

	if t.TradeTime == "" {
		add("trade_time", "is required")
	} else if _, err := time.Parse(models.TimeLayout, t.TradeTime); err != nil {
		add("trade_time", "must be HH:MM")
	}
	if t.ExitTime != "" {
		if _, err := time.Parse(models.TimeLayout, t.ExitTime); err != nil {
			add("exit_time", "must be HH:MM")
		}
	}

	if t.Session == "" {
		add("session", "is required")
	} else if !t.Session.Valid() {
		add("session", "must be one of %s", joinSessions())
	}

	if t.AccountBalance <= 0 {
		add("account_balance", "must be greater than 0")
	}

	if t.Direction == "" {
		add("direction", "is required")
	} else if !t.Direction.Valid() {
		add("direction", "must be Long or Short")
	}

	if t.EntryPrice <= 0 {
		add("entry_price", "must be greater than 0")
	}
	if t.StopLoss <= 0 {
		add("stop_loss", "must be greater than 0")
	}
	if t.EntryPrice > 0 && t.StopLoss > 0 {
		switch t.Direction {
		case models.DirectionLong:
			if t.StopLoss >= t.EntryPrice {
				add("stop_loss", "must be below the entry price for a Long trade")
			}
		case models.DirectionShort:
			if t.StopLoss <= t.EntryPrice {
				add("stop_loss", "must be above the entry price for a Short trade")
			}
		}
	}

	if t.TakeProfit != nil && *t.TakeProfit <= 0 {
		add("take_profit", "must be greater than 0")
	}
	if t.ExitPrice != nil && *t.ExitPrice <= 0 {
		add("exit_price", "must be greater than 0")
	}

	if t.RiskPercent == 0 {
		add("risk_percent", "is required")
	} else if !v.allowedRisk(t.RiskPercent) {
		add("risk_percent", "must be one of %v", v.RiskPercents)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (v Validator) allowedRisk(p float64) bool {
	for _, allowed := range v.RiskPercents {
		if p == allowed {
			return true
		}
	}
	return false
}

func joinSessions() string {
	names := make([]string, len(models.Sessions))
	for i, s := range models.Sessions {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
