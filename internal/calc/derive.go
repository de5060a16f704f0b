package calc

import "crypto-trade-journal/internal/models"

// Inputs are the raw form values a trade's derived fields depend on.
// Zero numbers and nil pointers mean "not entered yet".
type Inputs struct {
	AccountBalance float64          `json:"account_balance"`
	RiskPercent    float64          `json:"risk_percent"`
	Direction      models.Direction `json:"direction"`
	EntryPrice     float64          `json:"entry_price"`
	StopLoss       float64          `json:"stop_loss"`
	TakeProfit     *float64         `json:"take_profit,omitempty"`
	ExitPrice      *float64         `json:"exit_price,omitempty"`
	EntryTime      string           `json:"entry_time,omitempty"`
	ExitTime       string           `json:"exit_time,omitempty"`
}

// Outcome holds the fields that exist only once the exit price and direction are known.
type Outcome struct {
	PLDollar  float64       `json:"pl_dollar"`
	PLPercent float64       `json:"pl_percent"`
	Result    models.Result `json:"trade_result"`
	Duration  string        `json:"trade_duration,omitempty"`
}

// Derived is everything Calculator computes from Inputs.
type Derived struct {
	RiskDollar      float64  `json:"risk_dollar"`
	PositionSize    float64  `json:"position_size"`
	RiskRewardRatio *float64 `json:"risk_reward_ratio,omitempty"`
	Outcome         *Outcome `json:"outcome,omitempty"`
}

// Calculator applies the journal's classification settings to the pure functions.
type Calculator struct {
	BreakEvenTolerance float64
}

// NewCalculator returns a Calculator using tolerance as the Break Even band.
func NewCalculator(breakEvenTolerance float64) Calculator {
	return Calculator{BreakEvenTolerance: breakEvenTolerance}
}

// Derive computes the dependent fields for possibly incomplete inputs.
func (c Calculator) Derive(in Inputs) Derived {
	var out Derived
	out.RiskDollar = RiskDollar(in.AccountBalance, in.RiskPercent)
	if in.EntryPrice > 0 && in.StopLoss > 0 {
		out.PositionSize = PositionSize(out.RiskDollar, in.EntryPrice, in.StopLoss)
	}

	if in.TakeProfit != nil && in.StopLoss > 0 && in.EntryPrice > 0 {
		rr := RiskRewardRatio(in.EntryPrice, *in.TakeProfit, in.StopLoss, in.Direction)
		out.RiskRewardRatio = &rr
	}

	// Without a known side the P/L sign is undefined, so the outcome stays absent.
	if in.ExitPrice != nil && in.Direction.Valid() {
		pnl := PnL(in.EntryPrice, *in.ExitPrice, out.PositionSize, in.Direction)
		out.Outcome = &Outcome{
			PLDollar:  pnl.Dollar,
			PLPercent: pnl.Percent,
			Result:    ClassifyResultWithin(pnl.Dollar, c.BreakEvenTolerance),
		}
		if in.EntryTime != "" && in.ExitTime != "" {
			out.Outcome.Duration = Duration(in.EntryTime, in.ExitTime)
		}
	}
	return out
}

// InputsOf extracts the calculator inputs from a trade record.
func InputsOf(t models.Trade) Inputs {
	return Inputs{
		AccountBalance: t.AccountBalance,
		RiskPercent:    t.RiskPercent,
		Direction:      t.Direction,
		EntryPrice:     t.EntryPrice,
		StopLoss:       t.StopLoss,
		TakeProfit:     t.TakeProfit,
		ExitPrice:      t.ExitPrice,
		EntryTime:      t.TradeTime,
		ExitTime:       t.ExitTime,
	}
}

// Enrich returns a copy of t with every derived field recomputed.
// Outcome fields are cleared while the exit price is unknown.
func (c Calculator) Enrich(t models.Trade) models.Trade {
	d := c.Derive(InputsOf(t))

	t.DayOfWeek = models.DayOfWeek(t.TradeDate)
	t.RiskDollar = d.RiskDollar
	t.PositionSize = d.PositionSize
	t.RiskRewardRatio = d.RiskRewardRatio

	if d.Outcome == nil {
		t.PLDollar = nil
		t.PLPercent = nil
		t.TradeResult = ""
		t.TradeDuration = ""
		return t
	}

	t.PLDollar = models.Float(d.Outcome.PLDollar)
	t.PLPercent = models.Float(d.Outcome.PLPercent)
	t.TradeResult = d.Outcome.Result
	t.TradeDuration = d.Outcome.Duration
	return t
}
