// Package stats folds journaled trades into per-category and overall statistics.
//
// Functions here are pure: they never mutate the trades passed in and keep no
// state between calls.
package stats

import (
	"sort"
	"strings"

	"crypto-trade-journal/internal/models"
)

// KeyFunc extracts the grouping key of a trade. An empty key excludes the trade.
type KeyFunc func(t models.Trade) string

// Grouping keys accepted by KeyFor.
const (
	GroupSession   = "session"
	GroupEntryType = "entry_type"
	GroupDayOfWeek = "day_of_week"
	GroupDate      = "date"
	GroupDirection = "direction"
	GroupPair      = "pair"
)

var (
	BySession   KeyFunc = func(t models.Trade) string { return string(t.Session) }
	ByEntryType KeyFunc = func(t models.Trade) string { return t.M1EntryType }
	ByDayOfWeek KeyFunc = func(t models.Trade) string {
		if t.DayOfWeek != "" {
			return t.DayOfWeek
		}
		return models.DayOfWeek(t.TradeDate)
	}
	ByTradeDate KeyFunc = func(t models.Trade) string { return t.TradeDate }
	ByDirection KeyFunc = func(t models.Trade) string { return string(t.Direction) }
	ByPair      KeyFunc = func(t models.Trade) string { return strings.ToUpper(t.Pair) }
)

var keyFuncs = map[string]KeyFunc{
	GroupSession:   BySession,
	GroupEntryType: ByEntryType,
	GroupDayOfWeek: ByDayOfWeek,
	GroupDate:      ByTradeDate,
	GroupDirection: ByDirection,
	GroupPair:      ByPair,
}

// KeyFor resolves a grouping name to its KeyFunc.
func KeyFor(group string) (KeyFunc, bool) {
	fn, ok := keyFuncs[group]
	return fn, ok
}

// Groups lists the grouping names KeyFor understands.
func Groups() []string {
	out := make([]string, 0, len(keyFuncs))
	for name := range keyFuncs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Bucket accumulates the closed trades sharing one key.
type Bucket struct {
	Key      string
	Count    int
	Wins     int
	Losses   int
	PLSum    float64
	RRValues []float64
}

// WinRate is Wins as a percentage of Count.
func (b *Bucket) WinRate() float64 {
	if b.Count == 0 {
		return 0
	}
	return float64(b.Wins) / float64(b.Count) * 100
}

// AvgRiskReward is the mean R:R of the bucket's trades; ok is false when none had one.
func (b *Bucket) AvgRiskReward() (avg float64, ok bool) {
	if len(b.RRValues) == 0 {
		return 0, false
	}
	var sum float64
	for _, rr := range b.RRValues {
		sum += rr
	}
	return sum / float64(len(b.RRValues)), true
}

// AggregateBy groups the closed trades by key. Trades without a P/L or with
// an empty key contribute to no bucket.
func AggregateBy(trades []models.Trade, key KeyFunc) map[string]*Bucket {
	buckets := make(map[string]*Bucket)
	for _, t := range trades {
		if t.PLDollar == nil {
			continue
		}
		k := key(t)
		if k == "" {
			continue
		}

		b, ok := buckets[k]
		if !ok {
			b = &Bucket{Key: k}
			buckets[k] = b
		}

		b.Count++
		b.PLSum += *t.PLDollar
		switch t.TradeResult {
		case models.ResultWin:
			b.Wins++
		case models.ResultLoss:
			b.Losses++
		}
		if t.RiskRewardRatio != nil {
			b.RRValues = append(b.RRValues, *t.RiskRewardRatio)
		}
	}
	return buckets
}

// Order names a display ordering for Sorted.
type Order string

const (
	OrderPL    Order = "pl"    // total P/L, highest first
	OrderCount Order = "count" // trade count, highest first
	OrderKey   Order = "key"   // key, alphabetical
)

// ParseOrder resolves a display ordering name. An empty name means OrderPL.
func ParseOrder(name string) (Order, bool) {
	switch o := Order(name); o {
	case "":
		return OrderPL, true
	case OrderPL, OrderCount, OrderKey:
		return o, true
	default:
		return "", false
	}
}

// Sorted returns the buckets as a slice in the requested order. Ties fall
// back to the key so the result is stable.
func Sorted(buckets map[string]*Bucket, order Order) []*Bucket {
	out := make([]*Bucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, b)
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch order {
		case OrderPL:
			if a.PLSum != b.PLSum {
				return a.PLSum > b.PLSum
			}
		case OrderCount:
			if a.Count != b.Count {
				return a.Count > b.Count
			}
		}
		return a.Key < b.Key
	})
	return out
}
