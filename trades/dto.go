package trades

import (
	"encoding/json"
	"fmt"
)

// StringOrNumber decodes a JSON value that clients send either as a string
// or as a bare number, preserving its textual form. Price and volume fields
// are stored exactly as submitted, so both "1.25" and 1.25 arrive as "1.25".
type StringOrNumber string

// UnmarshalJSON implements json.Unmarshaler.
func (s *StringOrNumber) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = StringOrNumber(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*s = StringOrNumber(num.String())
	return nil
}

// TradeFields is the client-submitted portion of a trade. The outcome field
// is accepted in the payload for compatibility but ignored; it is always
// recomputed from pAndL.
type TradeFields struct {
	Pair       string         `json:"pair"`
	Date       string         `json:"date"`
	Time       string         `json:"time"`
	Open       StringOrNumber `json:"open"`
	Close      StringOrNumber `json:"close"`
	Volume     StringOrNumber `json:"volume"`
	RiskReward StringOrNumber `json:"riskReward"`
	PAndL      StringOrNumber `json:"pAndL" validate:"required"`
	Outcome    string         `json:"outcome,omitempty"`
}

// CreateTradeRequest is the payload for recording a new trade.
type CreateTradeRequest struct {
	UserID   int64       `json:"userID" validate:"required"`
	NewTrade TradeFields `json:"newTrade" validate:"required"`
}

// UpdateTradeRequest is the payload for replacing an existing trade's fields.
type UpdateTradeRequest struct {
	UpdatedTrade TradeFields `json:"updatedTrade" validate:"required"`
}

// StatsResponse wraps the aggregated metrics in the envelope the client
// expects.
type StatsResponse struct {
	UserStats Stats `json:"userStats"`
}

// ListResponse wraps a user's trades.
type ListResponse struct {
	TradesOfUser []Trade `json:"tradesOfUser"`
}

// DetailResponse wraps a single trade.
type DetailResponse struct {
	RequestedTrade *Trade `json:"requestedTrade"`
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}
