package calc

import (
	"errors"
	"testing"

	"crypto-trade-journal/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTrade() models.Trade {
	return models.Trade{
		TradeDate:      "2024-01-15",
		TradeTime:      "09:30",
		Session:        models.SessionLondonClose,
		AccountBalance: 10000,
		Direction:      models.DirectionLong,
		EntryPrice:     100,
		StopLoss:       95,
		RiskPercent:    1.5,
	}
}

func fields(err error) []string {
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]string, len(verrs))
	for i, fe := range verrs {
		out[i] = fe.Field
	}
	return out
}

func TestValidator_AcceptsValidTrade(t *testing.T) {
	v := NewValidator(nil)
	assert.NoError(t, v.Validate(validTrade()))

	short := validTrade()
	short.Direction = models.DirectionShort
	short.StopLoss = 105
	short.ExitTime = "10:00"
	short.ExitPrice = models.Float(98)
	assert.NoError(t, v.Validate(short))
}

func TestValidator_RejectsEmptyTrade(t *testing.T) {
	err := NewValidator(nil).Validate(models.Trade{})

	require.Error(t, err)
	assert.ElementsMatch(t, []string{
		"trade_date", "trade_time", "session", "account_balance",
		"direction", "entry_price", "stop_loss", "risk_percent",
	}, fields(err))
	assert.Contains(t, err.Error(), "invalid trade")
}

func TestValidator_Rules(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*models.Trade)
		field  string
	}{
		{"Bad date", func(tr *models.Trade) { tr.TradeDate = "15/01/2024" }, "trade_date"},
		{"Bad time", func(tr *models.Trade) { tr.TradeTime = "25:00" }, "trade_time"},
		{"Bad exit time", func(tr *models.Trade) { tr.ExitTime = "noon" }, "exit_time"},
		{"Unknown session", func(tr *models.Trade) { tr.Session = "Sydney" }, "session"},
		{"Unknown direction", func(tr *models.Trade) { tr.Direction = "Up" }, "direction"},
		{"Long stop above entry", func(tr *models.Trade) { tr.StopLoss = 101 }, "stop_loss"},
		{"Long stop equal entry", func(tr *models.Trade) { tr.StopLoss = 100 }, "stop_loss"},
		{"Short stop below entry", func(tr *models.Trade) { tr.Direction = models.DirectionShort }, "stop_loss"},
		{"Risk not in set", func(tr *models.Trade) { tr.RiskPercent = 3 }, "risk_percent"},
		{"Negative take profit", func(tr *models.Trade) { tr.TakeProfit = models.Float(-1) }, "take_profit"},
		{"Zero exit price", func(tr *models.Trade) { tr.ExitPrice = models.Float(0) }, "exit_price"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tr := validTrade()
			tc.mutate(&tr)

			err := NewValidator(nil).Validate(tr)

			require.Error(t, err)
			assert.Equal(t, []string{tc.field}, fields(err))
		})
	}
}

func TestValidator_CustomRiskPercents(t *testing.T) {
	v := NewValidator([]float64{0.5})
	tr := validTrade()
	tr.RiskPercent = 0.5
	assert.NoError(t, v.Validate(tr))

	tr.RiskPercent = 1
	assert.Equal(t, []string{"risk_percent"}, fields(v.Validate(tr)))
}
