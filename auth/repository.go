package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrUserNotFound is returned by repository lookups when no row matches.
var ErrUserNotFound = errors.New("user not found")

// UserRepository is the identity-record half of the document store. The auth
// service is its only writer for credential fields.
type UserRepository interface {
	// CreateUser persists a new user in a single atomic insert and returns
	// it with the store-assigned identifier filled in.
	CreateUser(ctx context.Context, user *User) (*User, error)
	// GetUserByUsername returns the user with the given login handle, or
	// ErrUserNotFound.
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	// GetUserByID returns the user with the given identifier, or
	// ErrUserNotFound.
	GetUserByID(ctx context.Context, id int64) (*User, error)
}

// PostgresUserRepository implements UserRepository on a pgx pool.
type PostgresUserRepository struct {
	db *pgxpool.Pool
}

// NewPostgresUserRepository creates a PostgresUserRepository.
func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, user *User) (*User, error) {
	query := `INSERT INTO users (full_name, username, password_hash, salt, auth_method,
	                             initial_balance, broker_name, profile_image_url)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query,
		user.FullName, user.Username, user.PasswordHash, user.Salt, user.AuthMethod,
		user.Profile.InitialBalance, user.Profile.BrokerName, user.Profile.ProfileImageURL,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	if user.TradeIDs == nil {
		user.TradeIDs = []int64{}
	}
	return user, nil
}

func (r *PostgresUserRepository) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	return r.getUser(ctx, `WHERE username = $1`, username)
}

func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id int64) (*User, error) {
	return r.getUser(ctx, `WHERE id = $1`, id)
}

func (r *PostgresUserRepository) getUser(ctx context.Context, where string, arg any) (*User, error) {
	query := `SELECT id, full_name, username, password_hash, salt, auth_method, trade_ids,
	                 initial_balance, broker_name, profile_image_url, created_at
	          FROM users ` + where
	var user User
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID, &user.FullName, &user.Username, &user.PasswordHash, &user.Salt,
		&user.AuthMethod, &user.TradeIDs,
		&user.Profile.InitialBalance, &user.Profile.BrokerName, &user.Profile.ProfileImageURL,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.TradeIDs == nil {
		user.TradeIDs = []int64{}
	}
	return &user, nil
}
