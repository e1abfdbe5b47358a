package auth

import (
	"net/http"

	"github.com/user/tradejournal-go/apperror"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "session_id"

// SessionMiddleware is the authorization guard for protected routes. It
// extracts the session cookie, resolves it against the session store, and
// either attaches the bound identity to the request context or short-circuits
// with a 401 before the downstream handler runs. The middleware itself is
// stateless; all session state lives in the store.
func SessionMiddleware(sessions *SessionStore) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil {
				WriteError(w, r, apperror.NewAuthError("authentication required", nil))
				return
			}

			userID, ok := sessions.Resolve(cookie.Value)
			if !ok {
				WriteError(w, r, apperror.NewAuthError("session is invalid or expired", nil))
				return
			}

			ctx := NewContextWithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
