package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "validation", err: NewValidationError("bad", nil), wantStatus: http.StatusBadRequest, wantCode: "VALIDATION_FAILED"},
		{name: "wrapped not found", err: fmt.Errorf("load: %w", NewNotFound("ticket", nil)), wantStatus: http.StatusNotFound, wantCode: "NOT_FOUND"},
		{name: "no rows", err: pgx.ErrNoRows, wantStatus: http.StatusNotFound, wantCode: "NOT_FOUND"},
		{name: "unknown", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantCode: "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDomainError(tt.err)
			assert.Equal(t, tt.wantStatus, got.HTTPStatus)
			assert.Equal(t, tt.wantCode, got.Code)
		})
	}
	assert.Nil(t, ToDomainError(nil))
}

func TestNotFoundMessage(t *testing.T) {
	err := NewNotFound("employee", map[string]any{"employee_id": 3})
	assert.Equal(t, "employee not found", err.Error())
	assert.True(t, IsNotFound(err))
	assert.True(t, IsNotFound(fmt.Errorf("wrap: %w", pgx.ErrNoRows)))
	assert.False(t, IsNotFound(NewValidationError("nope", nil)))
}

func TestInternalErrorUnwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewInternalError(cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "internal server error: connection reset", err.Error())
}
