package stats

import "crypto-trade-journal/internal/calc"

// BucketView is the display form of a Bucket, rounded for presentation.
type BucketView struct {
	Key           string   `json:"key"`
	Trades        int      `json:"trades"`
	Wins          int      `json:"wins"`
	Losses        int      `json:"losses"`
	WinRate       float64  `json:"win_rate"`
	TotalPL       float64  `json:"total_pl"`
	AvgRiskReward *float64 `json:"avg_risk_reward,omitempty"`
}

// View converts buckets into their display form.
func View(buckets []*Bucket) []BucketView {
	out := make([]BucketView, len(buckets))
	for i, b := range buckets {
		v := BucketView{
			Key:     b.Key,
			Trades:  b.Count,
			Wins:    b.Wins,
			Losses:  b.Losses,
			WinRate: calc.Round2(b.WinRate()),
			TotalPL: calc.Round2(b.PLSum),
		}
		if avg, ok := b.AvgRiskReward(); ok {
			rounded := calc.Round2(avg)
			v.AvgRiskReward = &rounded
		}
		out[i] = v
	}
	return out
}
