package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusCodeMapping(t *testing.T) {
	tests := []struct {
		errType ErrorType
		want    int
	}{
		{AuthError, http.StatusUnauthorized},
		{NotFoundError, http.StatusNotFound},
		{ValidationError, http.StatusBadRequest},
		{BadRequestError, http.StatusBadRequest},
		{ConflictError, http.StatusConflict},
		{ParseError, http.StatusUnprocessableEntity},
		{DatabaseError, http.StatusInternalServerError},
		{ConfigError, http.StatusInternalServerError},
		{InternalError, http.StatusInternalServerError},
		{UnknownError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := NewAppError(tt.errType, "x", nil).StatusCode(); got != tt.want {
			t.Errorf("type %d: StatusCode() = %d, want %d", tt.errType, got, tt.want)
		}
	}
}

func TestUnwrapAndFromError(t *testing.T) {
	cause := errors.New("connection reset")
	appErr := NewDatabaseError("failed to list trades", cause)

	if !errors.Is(appErr, cause) {
		t.Error("errors.Is should reach the wrapped cause")
	}

	wrapped := fmt.Errorf("listing: %w", appErr)
	got, ok := FromError(wrapped)
	if !ok {
		t.Fatal("FromError should find an *AppError through wrapping")
	}
	if got.Type != DatabaseError {
		t.Errorf("Type = %d, want DatabaseError", got.Type)
	}

	if _, ok := FromError(nil); ok {
		t.Error("FromError(nil) should report false")
	}
	if _, ok := FromError(errors.New("plain")); ok {
		t.Error("FromError on a plain error should report false")
	}
}

func TestToResponseHidesCause(t *testing.T) {
	appErr := NewInternalError("internal server error", errors.New("pq: syntax error near SELECT"))
	resp := appErr.ToResponse()
	if resp.Error != "internal server error" {
		t.Errorf("Error = %q, want the client-safe message only", resp.Error)
	}
}

func TestPredicates(t *testing.T) {
	if !IsNotFound(fmt.Errorf("lookup: %w", NewNotFoundError("user 7 not found", nil))) {
		t.Error("IsNotFound should see through wrapping")
	}
	if IsNotFound(NewAuthError("invalid credentials", nil)) {
		t.Error("IsNotFound should reject other types")
	}
	if !IsParseError(NewParseError("trade 3: field volume is not numeric", nil)) {
		t.Error("IsParseError should match")
	}
	if !IsConflictError(NewConflictError("username already exists", nil)) {
		t.Error("IsConflictError should match")
	}
}
