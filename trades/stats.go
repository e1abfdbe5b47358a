package trades

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/user/tradejournal-go/apperror"
)

// Stats holds the summary metrics over a user's trade history. Field names
// mirror the response contract the browser client consumes.
type Stats struct {
	SumPnL            int64   `json:"sumOfAllTrades"`
	WinLossRatio      float64 `json:"winLossRatio"`
	AverageRiskReward float64 `json:"averageRiskReward"`
	TotalTradeCount   int     `json:"totalTradeCount"`
	TotalVolume       float64 `json:"totalVolume"`
}

// Aggregate reduces a trade history into summary metrics in one pass. It is
// a pure function of its input and independent of trade order.
//
// sumOfAllTrades truncates each pAndL value toward zero before summing, so
// fractional cents are dropped per trade. The win/loss ratio and the average
// risk-reward are computed once from the final counts; zero trades yields
// all-zero Stats instead of a division by zero. A non-numeric field aborts
// the aggregation with a ParseError naming the trade and field.
func Aggregate(trades []Trade) (Stats, error) {
	var stats Stats
	stats.TotalTradeCount = len(trades)
	if len(trades) == 0 {
		return stats, nil
	}

	var winCount int
	var totalRiskReward float64
	for i := range trades {
		t := &trades[i]

		pnl, err := parseField(t, "pAndL", t.PAndL)
		if err != nil {
			return Stats{}, err
		}
		stats.SumPnL += int64(pnl)

		if t.Outcome == OutcomeWin {
			winCount++
		}

		volume, err := parseField(t, "volume", t.Volume)
		if err != nil {
			return Stats{}, err
		}
		stats.TotalVolume += volume

		riskReward, err := parseField(t, "riskReward", t.RiskReward)
		if err != nil {
			return Stats{}, err
		}
		totalRiskReward += riskReward
	}

	total := float64(stats.TotalTradeCount)
	stats.WinLossRatio = float64(winCount) / total * 100
	stats.AverageRiskReward = totalRiskReward / total
	return stats, nil
}

func parseField(t *Trade, name, value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, apperror.NewParseError(
			fmt.Sprintf("trade %d: field %s is not numeric", t.ID, name), err)
	}
	return v, nil
}
