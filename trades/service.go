package trades

import (
	"context"
	"errors"
	"fmt"

	"github.com/user/tradejournal-go/apperror"
)

// TradeService carries the business rules around trade records: deriving the
// outcome on every write and reducing a history into summary statistics.
type TradeService struct {
	repo TradeRepository
}

// NewTradeService creates a new TradeService.
func NewTradeService(repo TradeRepository) *TradeService {
	return &TradeService{repo: repo}
}

// Create records a new trade for userID. The outcome is derived from the
// pAndL sign; whatever outcome the client submitted is discarded. The trade
// insert and the append to the owner's trade list are atomic.
func (s *TradeService) Create(ctx context.Context, userID int64, fields TradeFields) (*Trade, error) {
	trade, err := tradeFromFields(userID, fields)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, trade)
	if err != nil {
		if errors.Is(err, ErrOwnerNotFound) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("user %d not found", userID), nil)
		}
		return nil, apperror.NewDatabaseError("failed to save trade", err)
	}
	return created, nil
}

// ListByUser returns all trades owned by userID.
func (s *TradeService) ListByUser(ctx context.Context, userID int64) ([]Trade, error) {
	trades, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list trades", err)
	}
	return trades, nil
}

// Get returns a single trade by id.
func (s *TradeService) Get(ctx context.Context, tradeID int64) (*Trade, error) {
	trade, err := s.repo.Get(ctx, tradeID)
	if err != nil {
		if errors.Is(err, ErrTradeNotFound) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("trade %d not found", tradeID), nil)
		}
		return nil, apperror.NewDatabaseError("failed to get trade", err)
	}
	return trade, nil
}

// Update replaces a trade's fields, recomputing the outcome from the new
// pAndL value.
func (s *TradeService) Update(ctx context.Context, tradeID int64, fields TradeFields) error {
	trade, err := tradeFromFields(0, fields)
	if err != nil {
		return err
	}
	trade.ID = tradeID

	if err := s.repo.Update(ctx, trade); err != nil {
		if errors.Is(err, ErrTradeNotFound) {
			return apperror.NewNotFoundError(fmt.Sprintf("trade %d not found", tradeID), nil)
		}
		return apperror.NewDatabaseError("failed to update trade", err)
	}
	return nil
}

// Delete removes a trade and its entry in the owner's trade list.
func (s *TradeService) Delete(ctx context.Context, tradeID int64) error {
	if err := s.repo.Delete(ctx, tradeID); err != nil {
		if errors.Is(err, ErrTradeNotFound) {
			return apperror.NewNotFoundError(fmt.Sprintf("trade %d not found", tradeID), nil)
		}
		return apperror.NewDatabaseError("failed to delete trade", err)
	}
	return nil
}

// Stats aggregates a user's full trade history into summary metrics.
func (s *TradeService) Stats(ctx context.Context, userID int64) (Stats, error) {
	trades, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return Stats{}, apperror.NewDatabaseError("failed to load trades for stats", err)
	}
	return Aggregate(trades)
}

// tradeFromFields builds a Trade from client-submitted fields, deriving the
// outcome. A non-numeric pAndL is rejected here, at write time, so no trade
// is ever stored with an unclassifiable outcome.
func tradeFromFields(userID int64, fields TradeFields) (*Trade, error) {
	outcome, err := OutcomeForPnL(string(fields.PAndL))
	if err != nil {
		return nil, apperror.NewValidationError("pAndL must be a numeric value", err)
	}

	return &Trade{
		UserID:     userID,
		Pair:       fields.Pair,
		Date:       fields.Date,
		Time:       fields.Time,
		Open:       string(fields.Open),
		Close:      string(fields.Close),
		Volume:     string(fields.Volume),
		RiskReward: string(fields.RiskReward),
		PAndL:      string(fields.PAndL),
		Outcome:    outcome,
	}, nil
}
