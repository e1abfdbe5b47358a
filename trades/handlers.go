package trades

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/user/tradejournal-go/apperror"
	"github.com/user/tradejournal-go/auth"
)

// Handlers exposes the trade and statistics endpoints over HTTP. All of them
// sit behind the session middleware.
type Handlers struct {
	service  *TradeService
	validate *validator.Validate
}

// NewHandlers creates the trade handlers.
func NewHandlers(service *TradeService) *Handlers {
	return &Handlers{service: service, validate: validator.New()}
}

// HandleStats godoc
// @Summary Aggregated statistics over a user's trade history
// @Tags Trades
// @Produce json
// @Success 200 {object} trades.StatsResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 422 {object} apperror.ErrorResponse "A stored field is not numeric"
// @Router /user/stats/{userID} [get]
func (h *Handlers) HandleStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := pathID(r, "userID")
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		stats, err := h.service.Stats(r.Context(), userID)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, StatsResponse{UserStats: stats})
	}
}

// HandleListTrades godoc
// @Summary List a user's trades
// @Tags Trades
// @Produce json
// @Success 200 {object} trades.ListResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Router /user/trades/{userID} [get]
func (h *Handlers) HandleListTrades() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := pathID(r, "userID")
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		list, err := h.service.ListByUser(r.Context(), userID)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, ListResponse{TradesOfUser: list})
	}
}

// HandleTradeDetails godoc
// @Summary Fetch a single trade
// @Tags Trades
// @Produce json
// @Success 200 {object} trades.DetailResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /user/trades/details/{tradeID} [get]
func (h *Handlers) HandleTradeDetails() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tradeID, err := pathID(r, "tradeID")
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		trade, err := h.service.Get(r.Context(), tradeID)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, DetailResponse{RequestedTrade: trade})
	}
}

// HandleCreateTrade godoc
// @Summary Record a new trade and append it to the owner's trade list
// @Tags Trades
// @Accept json
// @Success 200 "Trade recorded"
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse "Owning user does not exist"
// @Router /user/update/trades [post]
func (h *Handlers) HandleCreateTrade() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateTradeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		if err := h.validate.Struct(req); err != nil {
			auth.WriteError(w, r, apperror.NewValidationError("userID and newTrade are required", err))
			return
		}

		if _, err := h.service.Create(r.Context(), req.UserID, req.NewTrade); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

// HandleUpdateTrade godoc
// @Summary Replace a trade's fields, recomputing its outcome
// @Tags Trades
// @Accept json
// @Produce json
// @Success 200 {object} trades.MessageResponse
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /user/patch/trades/{tradeID} [patch]
func (h *Handlers) HandleUpdateTrade() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tradeID, err := pathID(r, "tradeID")
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		var req UpdateTradeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		if err := h.service.Update(r.Context(), tradeID, req.UpdatedTrade); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, MessageResponse{Message: "Successfully updated!"})
	}
}

// HandleDeleteTrade godoc
// @Summary Delete a trade
// @Tags Trades
// @Produce json
// @Success 200 {object} trades.MessageResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /user/trade/delete/{tradeID} [delete]
func (h *Handlers) HandleDeleteTrade() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tradeID, err := pathID(r, "tradeID")
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		if err := h.service.Delete(r.Context(), tradeID); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, MessageResponse{Message: "Successfully deleted!"})
	}
}

// pathID parses a numeric chi URL parameter.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperror.NewBadRequestError(name+" must be a numeric identifier", err)
	}
	return id, nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
	}
}
