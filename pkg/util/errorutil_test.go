package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
)

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{"validation", NewValidationError("bad input", nil), "VALIDATION_FAILED", http.StatusBadRequest},
		{"not found", NewNotFound("ticket", nil), "NOT_FOUND", http.StatusNotFound},
		{"unauthorized", NewUnauthorized("nope"), "UNAUTHORIZED", http.StatusUnauthorized},
		{"conflict", NewConflict("busy", nil), "CONFLICT", http.StatusConflict},
		{"pgx no rows", pgx.ErrNoRows, "NOT_FOUND", http.StatusNotFound},
		{"wrapped pgx no rows", fmt.Errorf("lookup: %w", pgx.ErrNoRows), "NOT_FOUND", http.StatusNotFound},
		{"generic", errors.New("boom"), "INTERNAL_ERROR", http.StatusInternalServerError},
		{"wrapped domain error", fmt.Errorf("ctx: %w", NewConflict("busy", nil)), "CONFLICT", http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDomainError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.HTTPStatus != tt.wantStatus {
				t.Errorf("status = %d, want %d", got.HTTPStatus, tt.wantStatus)
			}
		})
	}
}

func TestToDomainErrorNil(t *testing.T) {
	if ToDomainError(nil) != nil {
		t.Error("nil error maps to nil")
	}
	if MapError(nil) != nil {
		t.Error("nil error maps to nil")
	}
}

func TestDomainErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := NewInternalError(inner)
	if !errors.Is(err, inner) {
		t.Error("internal error must unwrap to its cause")
	}
}
