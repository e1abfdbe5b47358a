package auth

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/user/tradejournal-go/apperror"
)

// CookieConfig controls the attributes of the session cookie.
type CookieConfig struct {
	// MaxAge mirrors the session TTL so the cookie and the server-side
	// session expire together.
	MaxAge time.Duration
	// Production enables Secure and SameSite=None for cross-site clients;
	// non-production deployments relax to SameSite=Lax over plain HTTP.
	Production bool
}

// Handlers exposes the authentication endpoints over HTTP.
type Handlers struct {
	service  *AuthService
	cookies  CookieConfig
	validate *validator.Validate
}

// NewHandlers creates the authentication handlers.
func NewHandlers(service *AuthService, cookies CookieConfig) *Handlers {
	return &Handlers{
		service:  service,
		cookies:  cookies,
		validate: validator.New(),
	}
}

// HandleSignup godoc
// @Summary Create an account and start a session
// @Tags Auth
// @Accept json
// @Produce json
// @Param signupBody body auth.SignupRequest true "New account details"
// @Success 200 {object} auth.IdentityResponse
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 409 {object} apperror.ErrorResponse "Username already taken"
// @Failure 500 {object} apperror.ErrorResponse
// @Router /auth/signup [post]
func (h *Handlers) HandleSignup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SignupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		if err := h.validate.Struct(req); err != nil {
			WriteError(w, r, apperror.NewValidationError("fullName, username, and password are required", err))
			return
		}

		userID, token, err := h.service.SignUp(r.Context(), req)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		h.setSessionCookie(w, token)
		writeJSON(w, http.StatusOK, IdentityResponse{UserID: userID})
	}
}

// HandleSignin godoc
// @Summary Verify credentials and start a session
// @Tags Auth
// @Accept json
// @Produce json
// @Param signinBody body auth.SigninRequest true "Login credentials"
// @Success 200 {object} auth.IdentityResponse
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 401 {object} apperror.ErrorResponse "Invalid credentials"
// @Failure 500 {object} apperror.ErrorResponse
// @Router /auth/signin [post]
func (h *Handlers) HandleSignin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SigninRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		if err := h.validate.Struct(req); err != nil {
			WriteError(w, r, apperror.NewValidationError("username and password are required", err))
			return
		}

		userID, token, err := h.service.SignIn(r.Context(), req)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		h.setSessionCookie(w, token)
		writeJSON(w, http.StatusOK, IdentityResponse{UserID: userID})
	}
}

// HandleStatus godoc
// @Summary Return the identity bound to the current session
// @Tags Auth
// @Produce json
// @Success 200 {object} auth.StatusResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Router /auth/status [get]
func (h *Handlers) HandleStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		if !ok {
			WriteError(w, r, apperror.NewAuthError("authentication required", nil))
			return
		}
		writeJSON(w, http.StatusOK, StatusResponse{User: userID})
	}
}

// HandleLogout godoc
// @Summary Invalidate the current session
// @Tags Auth
// @Produce json
// @Success 200 {object} auth.LogoutResponse
// @Router /auth/logout [get]
func (h *Handlers) HandleLogout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Logout is deliberately unauthenticated: invalidating an already
		// dead session is a harmless no-op.
		if cookie, err := r.Cookie(SessionCookieName); err == nil {
			h.service.SignOut(cookie.Value)
		}
		h.clearSessionCookie(w)
		writeJSON(w, http.StatusOK, LogoutResponse{Success: true})
	}
}

func (h *Handlers) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cookies.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.cookies.Production,
		SameSite: h.sameSite(),
	})
}

func (h *Handlers) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookies.Production,
		SameSite: h.sameSite(),
	})
}

// sameSite returns None in production, where the browser client is served
// from a different origin over HTTPS, and Lax otherwise.
func (h *Handlers) sameSite() http.SameSite {
	if h.cookies.Production {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

// writeJSON serializes data and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
		}
	}
}

// WriteError converts any error into the standardized apperror response.
// Errors that are not *AppError are wrapped as internal errors so nothing
// unexpected leaks to the client.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("an unexpected error occurred", err)
	}
	writeJSON(w, appErr.StatusCode(), appErr.ToResponse())
}
