package journal

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"crypto-trade-journal/internal/models"
	"crypto-trade-journal/internal/store"

	"github.com/gocarina/gocsv"
	"go.uber.org/zap"
)

// TradeRow is the flat CSV form of a trade. Optional numbers are blank when unset.
type TradeRow struct {
	ID              uint    `csv:"id"`
	TradeDate       string  `csv:"trade_date"`
	TradeTime       string  `csv:"trade_time"`
	ExitTime        string  `csv:"exit_time"`
	DayOfWeek       string  `csv:"day_of_week"`
	Session         string  `csv:"session"`
	Pair            string  `csv:"pair"`
	Direction       string  `csv:"direction"`
	HTFTrend        string  `csv:"htf_trend"`
	POIType         string  `csv:"poi_type"`
	POIPrice        string  `csv:"poi_price"`
	M15Confirmation bool    `csv:"m15_confirmation"`
	M1EntryType     string  `csv:"m1_entry_type"`
	EntryPrice      float64 `csv:"entry_price"`
	StopLoss        float64 `csv:"stop_loss"`
	TakeProfit      string  `csv:"take_profit"`
	ExitPrice       string  `csv:"exit_price"`
	AccountBalance  float64 `csv:"account_balance"`
	RiskPercent     float64 `csv:"risk_percent"`
	RiskDollar      float64 `csv:"risk_dollar"`
	PositionSize    float64 `csv:"position_size"`
	RiskRewardRatio string  `csv:"risk_reward_ratio"`
	PLDollar        string  `csv:"pl_dollar"`
	PLPercent       string  `csv:"pl_percent"`
	TradeResult     string  `csv:"trade_result"`
	TradeDuration   string  `csv:"trade_duration"`
	Notes           string  `csv:"notes"`
}

func optional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// RowOf flattens a trade for export.
func RowOf(t models.Trade) TradeRow {
	return TradeRow{
		ID:              t.ID,
		TradeDate:       t.TradeDate,
		TradeTime:       t.TradeTime,
		ExitTime:        t.ExitTime,
		DayOfWeek:       t.DayOfWeek,
		Session:         string(t.Session),
		Pair:            t.Pair,
		Direction:       string(t.Direction),
		HTFTrend:        t.HTFTrend,
		POIType:         t.POIType,
		POIPrice:        optional(t.POIPrice),
		M15Confirmation: t.M15Confirmation,
		M1EntryType:     t.M1EntryType,
		EntryPrice:      t.EntryPrice,
		StopLoss:        t.StopLoss,
		TakeProfit:      optional(t.TakeProfit),
		ExitPrice:       optional(t.ExitPrice),
		AccountBalance:  t.AccountBalance,
		RiskPercent:     t.RiskPercent,
		RiskDollar:      t.RiskDollar,
		PositionSize:    t.PositionSize,
		RiskRewardRatio: optional(t.RiskRewardRatio),
		PLDollar:        optional(t.PLDollar),
		PLPercent:       optional(t.PLPercent),
		TradeResult:     string(t.TradeResult),
		TradeDuration:   t.TradeDuration,
		Notes:           t.Notes,
	}
}

// ExportCSV writes the trades of userID matching f to w, newest first.
func (s *Service) ExportCSV(ctx context.Context, userID string, f store.TradeFilter, w io.Writer) error {
	trades, err := s.ListTrades(ctx, userID, f)
	if err != nil {
		return err
	}

	rows := make([]TradeRow, len(trades))
	for i, t := range trades {
		rows[i] = RowOf(t)
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("could not write csv: %w", err)
	}

	s.logger.Info("Exported trades", zap.String("user", userID), zap.Int("rows", len(rows)))
	return nil
}
