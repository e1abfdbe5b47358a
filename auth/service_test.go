package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/tradejournal-go/apperror"
)

// fakeUserRepo is an in-memory UserRepository for exercising the service
// without a database.
type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]*User // keyed by username
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*User)}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	if user.TradeIDs == nil {
		user.TradeIDs = []int64{}
	}
	stored := *user
	r.users[user.Username] = &stored
	return user, nil
}

func (r *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id int64) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func newTestService() (*AuthService, *fakeUserRepo, *SessionStore) {
	repo := newFakeUserRepo()
	sessions := NewSessionStore(time.Hour)
	return NewAuthService(repo, sessions), repo, sessions
}

func TestSignUp_IssuesResolvableSession(t *testing.T) {
	t.Parallel()

	svc, repo, sessions := newTestService()

	userID, token, err := svc.SignUp(context.Background(), SignupRequest{
		FullName: "Jane Trader",
		Username: "jane@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	require.NotZero(t, userID)
	require.NotEmpty(t, token)

	resolved, ok := sessions.Resolve(token)
	require.True(t, ok)
	assert.Equal(t, userID, resolved)

	stored, err := repo.GetUserByUsername(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, AuthMethodLocal, stored.AuthMethod)
	assert.Empty(t, stored.TradeIDs)
	assert.Equal(t, Profile{}, stored.Profile)
	assert.NotEqual(t, "hunter22", stored.PasswordHash)
}

func TestSignUp_DuplicateUsername(t *testing.T) {
	t.Parallel()

	svc, repo, sessions := newTestService()

	_, _, err := svc.SignUp(context.Background(), SignupRequest{
		FullName: "Jane Trader", Username: "jane@example.com", Password: "hunter22",
	})
	require.NoError(t, err)
	before, err := repo.GetUserByUsername(context.Background(), "jane@example.com")
	require.NoError(t, err)
	sessionsBefore := sessions.Len()

	_, _, err = svc.SignUp(context.Background(), SignupRequest{
		FullName: "Impostor", Username: "jane@example.com", Password: "other",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsConflictError(err), "want ConflictError, got %v", err)

	// The existing user is untouched and no extra session was created.
	after, err := repo.GetUserByUsername(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, sessionsBefore, sessions.Len())
}

func TestSignIn_Success(t *testing.T) {
	t.Parallel()

	svc, _, sessions := newTestService()

	signupID, _, err := svc.SignUp(context.Background(), SignupRequest{
		FullName: "Jane Trader", Username: "jane@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	signinID, token, err := svc.SignIn(context.Background(), SigninRequest{
		Username: "jane@example.com", Password: "hunter22",
	})
	require.NoError(t, err)
	assert.Equal(t, signupID, signinID)

	resolved, ok := sessions.Resolve(token)
	require.True(t, ok)
	assert.Equal(t, signupID, resolved)
}

func TestSignIn_FailuresAreNonEnumerable(t *testing.T) {
	t.Parallel()

	svc, _, sessions := newTestService()

	_, _, err := svc.SignUp(context.Background(), SignupRequest{
		FullName: "Jane Trader", Username: "jane@example.com", Password: "hunter22",
	})
	require.NoError(t, err)
	sessionsBefore := sessions.Len()

	_, _, wrongSecret := svc.SignIn(context.Background(), SigninRequest{
		Username: "jane@example.com", Password: "wrong",
	})
	_, _, noSuchUser := svc.SignIn(context.Background(), SigninRequest{
		Username: "nobody@example.com", Password: "hunter22",
	})

	require.Error(t, wrongSecret)
	require.Error(t, noSuchUser)
	assert.True(t, apperror.IsAuthError(wrongSecret))
	assert.True(t, apperror.IsAuthError(noSuchUser))

	// Identical messages: the response must not reveal which part failed.
	wrongAppErr, _ := apperror.FromError(wrongSecret)
	missingAppErr, _ := apperror.FromError(noSuchUser)
	assert.Equal(t, wrongAppErr.Message, missingAppErr.Message)

	// No session is created on a failed signin.
	assert.Equal(t, sessionsBefore, sessions.Len())
}

func TestSignOut_InvalidatesSession(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService()

	_, token, err := svc.SignUp(context.Background(), SignupRequest{
		FullName: "Jane Trader", Username: "jane@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	svc.SignOut(token)
	_, ok := svc.ResolveSession(token)
	assert.False(t, ok)

	// Idempotent.
	svc.SignOut(token)
}
