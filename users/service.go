package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/tradejournal-go/apperror"
)

// UserService provides profile read and overwrite operations.
type UserService struct {
	db *pgxpool.Pool
}

// NewUserService creates a new UserService.
func NewUserService(db *pgxpool.Pool) *UserService {
	return &UserService{db: db}
}

// GetProfile retrieves the profile fields for a user. Credential fields are
// never selected, so they cannot appear in the response.
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*ProfileFields, error) {
	query := `SELECT full_name, username, initial_balance, broker_name, profile_image_url
	          FROM users WHERE id = $1`

	var p ProfileFields
	err := s.db.QueryRow(ctx, query, userID).Scan(
		&p.FullName, &p.Email, &p.InitialBalance, &p.BrokerName, &p.ProfileImageURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("user %d not found", userID), nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user profile", err)
	}
	return &p, nil
}

// UpdateProfile overwrites the profile fields of a user with the submitted
// values. Changing the login handle to one already taken surfaces as a
// conflict.
func (s *UserService) UpdateProfile(ctx context.Context, req *UpdateProfileRequest) error {
	query := `UPDATE users
	          SET full_name = $1, username = $2, initial_balance = $3,
	              broker_name = $4, profile_image_url = $5
	          WHERE id = $6`
	tag, err := s.db.Exec(ctx, query,
		req.FullName, req.Email, req.InitialBalance, req.BrokerName, req.ProfileImageURL,
		req.UserID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" &&
			strings.Contains(pgErr.ConstraintName, "username") {
			return apperror.NewConflictError("username already exists", nil)
		}
		return apperror.NewDatabaseError("failed to update user profile", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("user %d not found", req.UserID), nil)
	}
	return nil
}
