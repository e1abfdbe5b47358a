// Package trades covers the trade records of the journal: persistence, the
// derived outcome classification, and the statistics aggregation over a
// user's trade history.
package trades

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Outcome values derived from the sign of the profit-and-loss figure.
const (
	OutcomeWin       = "Win"
	OutcomeLose      = "Lose"
	OutcomeBreakEven = "Break-Even"
)

// Trade is a journal entry as stored in the database. Instrument and price
// fields are kept as text exactly as submitted; only the outcome is derived
// server-side.
type Trade struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	Pair       string    `json:"pair"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
	Open       string    `json:"open"`
	Close      string    `json:"close"`
	Volume     string    `json:"volume"`
	RiskReward string    `json:"riskReward"`
	PAndL      string    `json:"pAndL"`
	Outcome    string    `json:"outcome"`
	CreatedAt  time.Time `json:"createdAt"`
}

// OutcomeForPnL derives the outcome from the sign of the profit-and-loss
// value. The client-supplied outcome is never trusted; this is recomputed on
// every write. A non-numeric value is rejected rather than silently
// classified.
func OutcomeForPnL(pAndL string) (string, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(pAndL), 64)
	if err != nil {
		return "", fmt.Errorf("pAndL %q is not numeric", pAndL)
	}
	switch {
	case v > 0:
		return OutcomeWin, nil
	case v < 0:
		return OutcomeLose, nil
	default:
		return OutcomeBreakEven, nil
	}
}
