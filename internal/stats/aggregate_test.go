package stats

import (
	"testing"

	"crypto-trade-journal/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func closed(session models.Session, pl float64, rr *float64) models.Trade {
	result := models.ResultBreakEven
	if pl > 0 {
		result = models.ResultWin
	} else if pl < 0 {
		result = models.ResultLoss
	}
	return models.Trade{
		TradeDate:       "2024-03-12",
		Session:         session,
		Pair:            "btcusdt",
		Direction:       models.DirectionLong,
		M1EntryType:     "Engulfing",
		PLDollar:        models.Float(pl),
		TradeResult:     result,
		RiskRewardRatio: rr,
	}
}

func TestAggregateBy_Session(t *testing.T) {
	trades := []models.Trade{
		closed(models.SessionNY, 50, models.Float(2)),
		closed(models.SessionNY, -20, models.Float(1)),
		closed(models.SessionNY, 30, nil),
	}

	buckets := AggregateBy(trades, BySession)

	require.Len(t, buckets, 1)
	b := buckets[string(models.SessionNY)]
	require.NotNil(t, b)
	assert.Equal(t, 3, b.Count)
	assert.Equal(t, 2, b.Wins)
	assert.Equal(t, 1, b.Losses)
	assert.InDelta(t, 60.0, b.PLSum, 1e-9)
	assert.InDelta(t, 66.67, b.WinRate(), 0.01)

	avg, ok := b.AvgRiskReward()
	assert.True(t, ok)
	assert.InDelta(t, 1.5, avg, 1e-9)
}

func TestAggregateBy_ExcludesOpenAndUnkeyed(t *testing.T) {
	open := closed(models.SessionNY, 0, nil)
	open.PLDollar = nil
	open.TradeResult = ""
	unkeyed := closed("", 10, nil)

	buckets := AggregateBy([]models.Trade{open, unkeyed, closed(models.SessionAsian, 5, nil)}, BySession)

	require.Len(t, buckets, 1)
	assert.Equal(t, 1, buckets[string(models.SessionAsian)].Count)
}

func TestAggregateBy_BreakEvenCountsTowardTotalOnly(t *testing.T) {
	buckets := AggregateBy([]models.Trade{closed(models.SessionAsian, 0, nil)}, BySession)

	b := buckets[string(models.SessionAsian)]
	assert.Equal(t, 1, b.Count)
	assert.Zero(t, b.Wins)
	assert.Zero(t, b.Losses)
	assert.Zero(t, b.WinRate())
}

func TestAggregateBy_Complete(t *testing.T) {
	trades := []models.Trade{
		closed(models.SessionNY, 50, nil),
		closed(models.SessionAsian, -10, nil),
		closed(models.SessionLondonClose, 0, nil),
		closed(models.SessionNY, 5, nil),
	}

	buckets := AggregateBy(trades, BySession)

	var count, outcomes int
	for _, b := range buckets {
		count += b.Count
		outcomes += b.Wins + b.Losses
		assert.LessOrEqual(t, b.Wins+b.Losses, b.Count)
	}
	assert.Equal(t, len(trades), count)
	assert.Equal(t, 3, outcomes)
}

func TestAggregateBy_Idempotent(t *testing.T) {
	trades := []models.Trade{
		closed(models.SessionNY, 50, models.Float(2)),
		closed(models.SessionAsian, -20, nil),
	}

	first := AggregateBy(trades, BySession)
	second := AggregateBy(trades, BySession)

	assert.Equal(t, first, second)
	assert.InDelta(t, 50.0, *trades[0].PLDollar, 1e-9)
}

func TestAggregateBy_NoRiskReward(t *testing.T) {
	b := AggregateBy([]models.Trade{closed(models.SessionNY, 1, nil)}, BySession)[string(models.SessionNY)]

	_, ok := b.AvgRiskReward()
	assert.False(t, ok)
}

func TestKeyFuncs(t *testing.T) {
	tr := closed(models.SessionNY, 1, nil)

	testCases := []struct {
		group    string
		expected string
	}{
		{GroupSession, string(models.SessionNY)},
		{GroupEntryType, "Engulfing"},
		{GroupDayOfWeek, "Tuesday"},
		{GroupDate, "2024-03-12"},
		{GroupDirection, "Long"},
		{GroupPair, "BTCUSDT"},
	}

	for _, tc := range testCases {
		t.Run(tc.group, func(t *testing.T) {
			fn, ok := KeyFor(tc.group)
			require.True(t, ok)
			assert.Equal(t, tc.expected, fn(tr))
		})
	}

	_, ok := KeyFor("weather")
	assert.False(t, ok)
	assert.Len(t, Groups(), 6)
}

func TestSorted(t *testing.T) {
	buckets := map[string]*Bucket{
		"a": {Key: "a", Count: 1, PLSum: 10},
		"b": {Key: "b", Count: 3, PLSum: -5},
		"c": {Key: "c", Count: 2, PLSum: 40},
	}

	keys := func(bs []*Bucket) []string {
		out := make([]string, len(bs))
		for i, b := range bs {
			out[i] = b.Key
		}
		return out
	}

	assert.Equal(t, []string{"c", "a", "b"}, keys(Sorted(buckets, OrderPL)))
	assert.Equal(t, []string{"b", "c", "a"}, keys(Sorted(buckets, OrderCount)))
	assert.Equal(t, []string{"a", "b", "c"}, keys(Sorted(buckets, OrderKey)))
}

func TestParseOrder(t *testing.T) {
	testCases := []struct {
		name     string
		expected Order
		ok       bool
	}{
		{"", OrderPL, true},
		{"pl", OrderPL, true},
		{"count", OrderCount, true},
		{"key", OrderKey, true},
		{"vibes", "", false},
		{"PL", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseOrder(tc.name)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestView(t *testing.T) {
	b := &Bucket{Key: "NY Session", Count: 3, Wins: 2, Losses: 1, PLSum: 60.004, RRValues: []float64{1, 2}}

	views := View([]*Bucket{b, {Key: "Asian Session", Count: 1}})

	require.Len(t, views, 2)
	assert.Equal(t, 66.67, views[0].WinRate)
	assert.Equal(t, 60.0, views[0].TotalPL)
	require.NotNil(t, views[0].AvgRiskReward)
	assert.Equal(t, 1.5, *views[0].AvgRiskReward)
	assert.Nil(t, views[1].AvgRiskReward)
}
