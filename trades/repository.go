package trades

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository lookup errors.
var (
	ErrTradeNotFound = errors.New("trade not found")
	ErrOwnerNotFound = errors.New("owning user not found")
)

// TradeRepository is the trade-record half of the document store.
type TradeRepository interface {
	// Create persists a new trade and appends its identifier to the owning
	// user's trade list. Both writes happen in one transaction so the id is
	// appended exactly once or not at all.
	Create(ctx context.Context, trade *Trade) (*Trade, error)
	// ListByUser returns all trades owned by userID in insertion order.
	ListByUser(ctx context.Context, userID int64) ([]Trade, error)
	// Get returns one trade by id, or ErrTradeNotFound.
	Get(ctx context.Context, id int64) (*Trade, error)
	// Update replaces the mutable fields of a trade, or ErrTradeNotFound.
	Update(ctx context.Context, trade *Trade) error
	// Delete removes a trade and its entry in the owner's trade list, or
	// ErrTradeNotFound.
	Delete(ctx context.Context, id int64) error
}

// PostgresTradeRepository implements TradeRepository on a pgx pool.
type PostgresTradeRepository struct {
	db *pgxpool.Pool
}

// NewPostgresTradeRepository creates a PostgresTradeRepository.
func NewPostgresTradeRepository(db *pgxpool.Pool) *PostgresTradeRepository {
	return &PostgresTradeRepository{db: db}
}

func (r *PostgresTradeRepository) Create(ctx context.Context, trade *Trade) (*Trade, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	insert := `INSERT INTO trades (user_id, pair, trade_date, trade_time, open_price,
	                               close_price, volume, risk_reward, p_and_l, outcome)
	           VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	           RETURNING id, created_at`
	err = tx.QueryRow(ctx, insert,
		trade.UserID, trade.Pair, trade.Date, trade.Time, trade.Open,
		trade.Close, trade.Volume, trade.RiskReward, trade.PAndL, trade.Outcome,
	).Scan(&trade.ID, &trade.CreatedAt)
	if err != nil {
		return nil, err
	}

	tag, err := tx.Exec(ctx,
		`UPDATE users SET trade_ids = array_append(trade_ids, $1) WHERE id = $2`,
		trade.ID, trade.UserID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrOwnerNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit trade creation: %w", err)
	}
	return trade, nil
}

func (r *PostgresTradeRepository) ListByUser(ctx context.Context, userID int64) ([]Trade, error) {
	query := tradeColumns + ` WHERE user_id = $1 ORDER BY id`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trades := []Trade{}
	for rows.Next() {
		var t Trade
		if err := scanTrade(rows, &t); err != nil {
			return nil, err
		}
		trades = append(trades, t)
	}
	return trades, rows.Err()
}

func (r *PostgresTradeRepository) Get(ctx context.Context, id int64) (*Trade, error) {
	var t Trade
	err := scanTrade(r.db.QueryRow(ctx, tradeColumns+` WHERE id = $1`, id), &t)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTradeNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *PostgresTradeRepository) Update(ctx context.Context, trade *Trade) error {
	query := `UPDATE trades
	          SET pair = $1, trade_date = $2, trade_time = $3, open_price = $4,
	              close_price = $5, volume = $6, risk_reward = $7, p_and_l = $8, outcome = $9
	          WHERE id = $10`
	tag, err := r.db.Exec(ctx, query,
		trade.Pair, trade.Date, trade.Time, trade.Open,
		trade.Close, trade.Volume, trade.RiskReward, trade.PAndL, trade.Outcome,
		trade.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTradeNotFound
	}
	return nil
}

func (r *PostgresTradeRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var userID int64
	err = tx.QueryRow(ctx, `DELETE FROM trades WHERE id = $1 RETURNING user_id`, id).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrTradeNotFound
		}
		return err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE users SET trade_ids = array_remove(trade_ids, $1) WHERE id = $2`,
		id, userID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit trade deletion: %w", err)
	}
	return nil
}

const tradeColumns = `SELECT id, user_id, pair, trade_date, trade_time, open_price,
       close_price, volume, risk_reward, p_and_l, outcome, created_at
FROM trades`

func scanTrade(row pgx.Row, t *Trade) error {
	return row.Scan(
		&t.ID, &t.UserID, &t.Pair, &t.Date, &t.Time, &t.Open,
		&t.Close, &t.Volume, &t.RiskReward, &t.PAndL, &t.Outcome, &t.CreatedAt,
	)
}
