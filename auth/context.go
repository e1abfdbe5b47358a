package auth

import "context"

// contextKey is a private type for context keys so values set here cannot
// collide with other packages.
type contextKey int

const userIDContextKey contextKey = iota

// NewContextWithUserID returns a child context carrying the authenticated
// user's identifier.
func NewContextWithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

// UserIDFromContext retrieves the identifier attached by the session
// middleware. The second return value is false if the request was not
// authenticated.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDContextKey).(int64)
	return userID, ok
}
