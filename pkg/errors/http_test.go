package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantSlug   string
		wantMsg    string
	}{
		{"validation", NewValidationError("", "no filter"), http.StatusBadRequest, "validation_error", "validation failed: no filter"},
		{"not found", NewNotFoundError("user", "user not found: id=3"), http.StatusNotFound, "not_found", "user not found: id=3"},
		{"wrapped not found", fmt.Errorf("modify: %w", NewNotFoundError("user", "")), http.StatusNotFound, "not_found", "user not found"},
		{"conflict", NewConflictError("user", ""), http.StatusConflict, "conflict", "user is ambiguous"},
		{"forbidden", ErrForbidden, http.StatusForbidden, "forbidden", "missing or invalid API key"},
		{"internal hides cause", NewInternalError("failed to find users", stderrors.New("pq: password authentication failed")), http.StatusInternalServerError, "internal_error", InternalMessage},
		{"sentinel internal", ErrInternal, http.StatusInternalServerError, "internal_error", InternalMessage},
		{"untyped", stderrors.New("connection refused"), http.StatusInternalServerError, "internal_error", InternalMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, slug, msg := ToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, code)
			assert.Equal(t, tt.wantSlug, slug)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}
