package auth

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/user/tradejournal-go/apperror"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint
// violations.
const pgUniqueViolation = "23505"

// invalidCredentialsMessage is shared by the missing-user and wrong-secret
// paths so a caller cannot enumerate usernames from the response.
const invalidCredentialsMessage = "invalid credentials"

// AuthService orchestrates signup and signin. It is the sole writer of
// identity records' credential fields, and the only component that issues
// sessions.
type AuthService struct {
	users    UserRepository
	sessions *SessionStore
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserRepository, sessions *SessionStore) *AuthService {
	return &AuthService{users: users, sessions: sessions}
}

// SignUp registers a new local account and starts a session for it. The new
// user has an empty profile and an empty trade list. Exactly one session is
// created on success; none on failure.
func (s *AuthService) SignUp(ctx context.Context, req SignupRequest) (int64, string, error) {
	// Uniqueness pre-check; the users_username_key constraint still backs
	// this up against concurrent signups.
	_, err := s.users.GetUserByUsername(ctx, req.Username)
	if err == nil {
		return 0, "", apperror.NewConflictError("username already exists", nil)
	}
	if !errors.Is(err, ErrUserNotFound) {
		return 0, "", apperror.NewDatabaseError("failed to check username", err)
	}

	hash, salt, err := HashPassword(req.Password)
	if err != nil {
		return 0, "", apperror.NewInternalError("failed to hash password", err)
	}

	user := &User{
		FullName:     req.FullName,
		Username:     req.Username,
		PasswordHash: hash,
		Salt:         salt,
		AuthMethod:   AuthMethodLocal,
	}

	created, err := s.users.CreateUser(ctx, user)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation &&
			strings.Contains(pgErr.ConstraintName, "username") {
			return 0, "", apperror.NewConflictError("username already exists", nil)
		}
		return 0, "", apperror.NewDatabaseError("failed to create user", err)
	}

	token, err := s.sessions.Issue(created.ID)
	if err != nil {
		return 0, "", apperror.NewInternalError("failed to issue session", err)
	}
	return created.ID, token, nil
}

// SignIn verifies a credential and starts a session. A missing user and a
// wrong secret both fail with the same AuthError kind.
func (s *AuthService) SignIn(ctx context.Context, req SigninRequest) (int64, string, error) {
	user, err := s.users.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return 0, "", apperror.NewAuthError(invalidCredentialsMessage, nil)
		}
		log.Printf("Database error looking up user at signin: %v", err)
		return 0, "", apperror.NewDatabaseError("failed to get user", err)
	}

	ok, err := VerifyPassword(req.Password, user.PasswordHash, user.Salt)
	if err != nil {
		return 0, "", apperror.NewInternalError("failed to verify credential", err)
	}
	if !ok {
		return 0, "", apperror.NewAuthError(invalidCredentialsMessage, nil)
	}

	token, err := s.sessions.Issue(user.ID)
	if err != nil {
		return 0, "", apperror.NewInternalError("failed to issue session", err)
	}
	return user.ID, token, nil
}

// SignOut invalidates the session bound to the token. Unknown tokens are a
// no-op, so logout is idempotent.
func (s *AuthService) SignOut(token string) {
	s.sessions.Invalidate(token)
}

// ResolveSession maps session evidence back to an identity.
func (s *AuthService) ResolveSession(token string) (int64, bool) {
	return s.sessions.Resolve(token)
}
