// Package calc derives trade economics from user-entered inputs.
//
// Every function here is total: incomplete or degenerate input yields 0, nil
// or "" instead of an error, so callers can recompute on every keystroke.
// Deciding whether a trade may be submitted is Validator's job.
package calc

import (
	"fmt"
	"math"
	"time"

	"crypto-trade-journal/internal/models"

	"github.com/shopspring/decimal"
)

// PnLResult is the realized profit or loss of a closed trade.
type PnLResult struct {
	Dollar  float64 `json:"dollar"`
	Percent float64 `json:"percent"`
}

func finite(xs ...float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// Round2 rounds x half away from zero to two decimal places.
func Round2(x float64) float64 {
	if !finite(x) {
		return 0
	}
	return decimal.NewFromFloat(x).Round(2).InexactFloat64()
}

// RiskDollar converts a risk percent of the account balance into currency.
func RiskDollar(accountBalance, riskPercent float64) float64 {
	if !finite(accountBalance, riskPercent) || accountBalance <= 0 || riskPercent <= 0 {
		return 0
	}
	return accountBalance * riskPercent / 100
}

// PositionSize is the quantity that loses exactly riskDollar if the stop is hit.
// A zero entry/stop distance yields 0.
func PositionSize(riskDollar, entryPrice, stopLoss float64) float64 {
	if !finite(riskDollar, entryPrice, stopLoss) {
		return 0
	}
	distance := math.Abs(entryPrice - stopLoss)
	if distance == 0 {
		return 0
	}
	return riskDollar / distance
}

// RiskRewardRatio returns N of a 1:N risk:reward, rounded to two decimals.
// Direction does not change the magnitude.
func RiskRewardRatio(entryPrice, takeProfit, stopLoss float64, direction models.Direction) float64 {
	if !finite(entryPrice, takeProfit, stopLoss) {
		return 0
	}
	risk := math.Abs(entryPrice - stopLoss)
	if risk == 0 {
		return 0
	}
	reward := math.Abs(takeProfit - entryPrice)
	return Round2(reward / risk)
}

// PnL computes the dollar and percent result of closing at exitPrice.
// Percent is relative to the notional entryPrice*positionSize, 0 when that is 0.
func PnL(entryPrice, exitPrice, positionSize float64, direction models.Direction) PnLResult {
	if !finite(entryPrice, exitPrice, positionSize) {
		return PnLResult{}
	}

	var dollar float64
	switch direction {
	case models.DirectionLong:
		dollar = (exitPrice - entryPrice) * positionSize
	case models.DirectionShort:
		dollar = (entryPrice - exitPrice) * positionSize
	default:
		return PnLResult{}
	}

	res := PnLResult{Dollar: dollar}
	if notional := entryPrice * positionSize; notional != 0 {
		res.Percent = dollar / notional * 100
	}
	return res
}

// ClassifyResult maps a dollar P/L to Win, Loss or Break Even by exact comparison with zero.
func ClassifyResult(dollarPnL float64) models.Result {
	return ClassifyResultWithin(dollarPnL, 0)
}

// ClassifyResultWithin treats |dollarPnL| <= tolerance as Break Even.
// A tolerance of 0 is the same as ClassifyResult.
func ClassifyResultWithin(dollarPnL, tolerance float64) models.Result {
	if tolerance < 0 || !finite(tolerance) {
		tolerance = 0
	}
	switch {
	case dollarPnL > tolerance:
		return models.ResultWin
	case dollarPnL < -tolerance:
		return models.ResultLoss
	default:
		return models.ResultBreakEven
	}
}

// Duration formats the time between two same-day "HH:MM" clock readings.
// An exit earlier than the entry is taken as an overnight trade and wraps by 24h.
// Malformed input yields "".
func Duration(entryTime, exitTime string) string {
	entry, err := time.Parse(models.TimeLayout, entryTime)
	if err != nil {
		return ""
	}
	exit, err := time.Parse(models.TimeLayout, exitTime)
	if err != nil {
		return ""
	}

	d := exit.Sub(entry)
	if d < 0 {
		d += 24 * time.Hour
	}
	return FormatDuration(d)
}

// DurationOn is Duration with explicit calendar dates, for trades spanning days.
// An exit before the entry yields "".
func DurationOn(entryDate, entryTime, exitDate, exitTime string) string {
	const layout = models.DateLayout + " " + models.TimeLayout
	entry, err := time.Parse(layout, entryDate+" "+entryTime)
	if err != nil {
		return ""
	}
	exit, err := time.Parse(layout, exitDate+" "+exitTime)
	if err != nil {
		return ""
	}

	d := exit.Sub(entry)
	if d < 0 {
		return ""
	}
	return FormatDuration(d)
}

// FormatDuration renders d as "45m", "2h 05m" or "1d 3h 00m".
func FormatDuration(d time.Duration) string {
	mins := int(d.Round(time.Minute) / time.Minute)
	days, mins := mins/(24*60), mins%(24*60)
	hours, mins := mins/60, mins%60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %02dm", days, hours, mins)
	case hours > 0:
		return fmt.Sprintf("%dh %02dm", hours, mins)
	default:
		return fmt.Sprintf("%dm", mins)
	}
}
