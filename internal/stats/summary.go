package stats

import (
	"math"

	"crypto-trade-journal/internal/models"
)

// Summary is the dashboard overview over every closed trade.
type Summary struct {
	TotalTrades   int      `json:"total_trades"`
	ClosedTrades  int      `json:"closed_trades"`
	OpenTrades    int      `json:"open_trades"`
	Wins          int      `json:"wins"`
	Losses        int      `json:"losses"`
	BreakEvens    int      `json:"break_evens"`
	WinRate       float64  `json:"win_rate"`
	TotalPL       float64  `json:"total_pl"`
	GrossProfit   float64  `json:"gross_profit"`
	GrossLoss     float64  `json:"gross_loss"` // absolute value
	ProfitFactor  *float64 `json:"profit_factor,omitempty"`
	AverageWin    *float64 `json:"average_win,omitempty"`
	AverageLoss   *float64 `json:"average_loss,omitempty"`
	AvgRiskReward *float64 `json:"avg_risk_reward,omitempty"`
	BestTrade     *float64 `json:"best_trade,omitempty"`
	WorstTrade    *float64 `json:"worst_trade,omitempty"`
}

// Summarize computes overall statistics. Profit factor is left nil when
// there are no losing trades.
func Summarize(trades []models.Trade) Summary {
	var s Summary
	var rrSum, winSum, lossSum float64
	var rrCount int
	best, worst := math.Inf(-1), math.Inf(1)

	s.TotalTrades = len(trades)
	for _, t := range trades {
		if t.PLDollar == nil {
			s.OpenTrades++
			continue
		}
		pl := *t.PLDollar
		s.ClosedTrades++
		s.TotalPL += pl

		switch t.TradeResult {
		case models.ResultWin:
			s.Wins++
			winSum += pl
		case models.ResultLoss:
			s.Losses++
			lossSum += pl
		case models.ResultBreakEven:
			s.BreakEvens++
		}

		if pl > 0 {
			s.GrossProfit += pl
		} else if pl < 0 {
			s.GrossLoss += -pl
		}

		if t.RiskRewardRatio != nil {
			rrSum += *t.RiskRewardRatio
			rrCount++
		}

		best = math.Max(best, pl)
		worst = math.Min(worst, pl)
	}

	if s.ClosedTrades == 0 {
		return s
	}

	s.WinRate = float64(s.Wins) / float64(s.ClosedTrades) * 100
	s.BestTrade = models.Float(best)
	s.WorstTrade = models.Float(worst)
	if s.GrossLoss > 0 {
		s.ProfitFactor = models.Float(s.GrossProfit / s.GrossLoss)
	}
	if s.Wins > 0 {
		s.AverageWin = models.Float(winSum / float64(s.Wins))
	}
	if s.Losses > 0 {
		s.AverageLoss = models.Float(lossSum / float64(s.Losses))
	}
	if rrCount > 0 {
		s.AvgRiskReward = models.Float(rrSum / float64(rrCount))
	}
	return s
}
