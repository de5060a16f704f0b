package calc

import (
	"testing"

	"crypto-trade-journal/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculator_Derive_Partial(t *testing.T) {
	c := NewCalculator(0)

	// Only the balance has been typed so far.
	d := c.Derive(Inputs{AccountBalance: 10000})
	assert.Equal(t, 0.0, d.RiskDollar)
	assert.Equal(t, 0.0, d.PositionSize)
	assert.Nil(t, d.RiskRewardRatio)
	assert.Nil(t, d.Outcome)

	// Risk chosen, no stop yet.
	d = c.Derive(Inputs{AccountBalance: 10000, RiskPercent: 1, EntryPrice: 50000})
	assert.InDelta(t, 100, d.RiskDollar, 1e-9)
	assert.Equal(t, 0.0, d.PositionSize)

	// Take profit without a stop has no ratio.
	d = c.Derive(Inputs{EntryPrice: 50000, TakeProfit: models.Float(53000)})
	assert.Nil(t, d.RiskRewardRatio)
}

func TestCalculator_Derive_ExitWithoutDirection(t *testing.T) {
	base := Inputs{
		AccountBalance: 10000,
		RiskPercent:    1,
		EntryPrice:     50000,
		StopLoss:       49000,
		ExitPrice:      models.Float(51000),
	}

	for _, dir := range []models.Direction{"", "Sideways"} {
		t.Run(string(dir), func(t *testing.T) {
			in := base
			in.Direction = dir

			d := NewCalculator(0).Derive(in)

			assert.InDelta(t, 0.1, d.PositionSize, 1e-12)
			assert.Nil(t, d.Outcome)
		})
	}
}

func TestCalculator_Derive_Scenarios(t *testing.T) {
	c := NewCalculator(0)

	d := c.Derive(Inputs{
		AccountBalance: 10000,
		RiskPercent:    1,
		Direction:      models.DirectionLong,
		EntryPrice:     50000,
		StopLoss:       49000,
		TakeProfit:     models.Float(53000),
		ExitPrice:      models.Float(51000),
		EntryTime:      "09:00",
		ExitTime:       "11:30",
	})

	assert.InDelta(t, 100, d.RiskDollar, 1e-9)
	assert.InDelta(t, 0.1, d.PositionSize, 1e-12)
	require.NotNil(t, d.RiskRewardRatio)
	assert.Equal(t, 3.0, *d.RiskRewardRatio)
	require.NotNil(t, d.Outcome)
	assert.InDelta(t, 100, d.Outcome.PLDollar, 1e-9)
	assert.InDelta(t, 2, d.Outcome.PLPercent, 1e-9)
	assert.Equal(t, models.ResultWin, d.Outcome.Result)
	assert.Equal(t, "2h 30m", d.Outcome.Duration)

	flat := c.Derive(Inputs{
		AccountBalance: 10000,
		RiskPercent:    1,
		Direction:      models.DirectionShort,
		EntryPrice:     50000,
		StopLoss:       51000,
		ExitPrice:      models.Float(50000),
	})
	require.NotNil(t, flat.Outcome)
	assert.Equal(t, 0.0, flat.Outcome.PLDollar)
	assert.Equal(t, models.ResultBreakEven, flat.Outcome.Result)
	assert.Equal(t, "", flat.Outcome.Duration)
}

func TestCalculator_Derive_Tolerance(t *testing.T) {
	in := Inputs{
		AccountBalance: 1000,
		RiskPercent:    1,
		Direction:      models.DirectionLong,
		EntryPrice:     100,
		StopLoss:       90,
		ExitPrice:      models.Float(100.001),
	}

	assert.Equal(t, models.ResultWin, NewCalculator(0).Derive(in).Outcome.Result)
	assert.Equal(t, models.ResultBreakEven, NewCalculator(0.01).Derive(in).Outcome.Result)
}

func TestCalculator_Enrich(t *testing.T) {
	c := NewCalculator(0)
	open := models.Trade{
		TradeDate:      "2024-01-15",
		TradeTime:      "09:00",
		Session:        models.SessionNY,
		Direction:      models.DirectionLong,
		AccountBalance: 10000,
		RiskPercent:    1,
		EntryPrice:     50000,
		StopLoss:       49000,
		TakeProfit:     models.Float(53000),
		M1EntryType:    "Breaker",
	}

	enriched := c.Enrich(open)

	assert.Equal(t, "Monday", enriched.DayOfWeek)
	assert.InDelta(t, 100, enriched.RiskDollar, 1e-9)
	assert.InDelta(t, 0.1, enriched.PositionSize, 1e-12)
	require.NotNil(t, enriched.RiskRewardRatio)
	assert.Equal(t, 3.0, *enriched.RiskRewardRatio)
	assert.Nil(t, enriched.PLDollar, "outcome stays absent while open")
	assert.Nil(t, enriched.PLPercent)
	assert.Empty(t, enriched.TradeResult)
	assert.Equal(t, "Breaker", enriched.M1EntryType)
	assert.Equal(t, 0.0, open.RiskDollar, "input record is not mutated")

	closed := enriched
	closed.ExitPrice = models.Float(49500)
	closed.ExitTime = "09:45"
	closed = c.Enrich(closed)

	require.NotNil(t, closed.PLDollar)
	assert.InDelta(t, -50, *closed.PLDollar, 1e-9)
	assert.InDelta(t, -1, *closed.PLPercent, 1e-9)
	assert.Equal(t, models.ResultLoss, closed.TradeResult)
	assert.Equal(t, "45m", closed.TradeDuration)

	// Clearing the exit price removes the outcome again.
	closed.ExitPrice = nil
	reopened := c.Enrich(closed)
	assert.Nil(t, reopened.PLDollar)
	assert.Empty(t, reopened.TradeResult)
	assert.Empty(t, reopened.TradeDuration)
}

func TestCalculator_DeriveIsRepeatable(t *testing.T) {
	c := NewCalculator(0)
	in := Inputs{AccountBalance: 5000, RiskPercent: 2, Direction: models.DirectionShort,
		EntryPrice: 3000, StopLoss: 3100, TakeProfit: models.Float(2700), ExitPrice: models.Float(2800)}

	assert.Equal(t, c.Derive(in), c.Derive(in))
}
