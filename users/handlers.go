package users

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/user/tradejournal-go/apperror"
	"github.com/user/tradejournal-go/auth"
)

// Handlers exposes the profile endpoints over HTTP.
type Handlers struct {
	service  *UserService
	validate *validator.Validate
}

// NewHandlers creates the profile handlers.
func NewHandlers(service *UserService) *Handlers {
	return &Handlers{service: service, validate: validator.New()}
}

// HandleGetProfile godoc
// @Summary Read a user's profile fields
// @Tags Users
// @Produce json
// @Success 200 {object} users.ProfileResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /user/profile/{userID} [get]
func (h *Handlers) HandleGetProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := chi.URLParam(r, "userID")
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("userID must be a numeric identifier", err))
			return
		}

		profile, err := h.service.GetProfile(r.Context(), userID)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(ProfileResponse{ProfileFields: *profile}); err != nil {
			http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
		}
	}
}

// HandleUpdateProfile godoc
// @Summary Overwrite a user's profile fields
// @Tags Users
// @Accept json
// @Success 200 "Profile updated"
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Failure 409 {object} apperror.ErrorResponse "New username already taken"
// @Router /user/update/profile [post]
func (h *Handlers) HandleUpdateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		if err := h.validate.Struct(req); err != nil {
			auth.WriteError(w, r, apperror.NewValidationError("userID is required", err))
			return
		}

		if err := h.service.UpdateProfile(r.Context(), &req); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}
