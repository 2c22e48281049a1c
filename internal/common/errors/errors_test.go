// internal/common/errors/errors_test.go
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Error Code Tests
// ==========================

func TestConstructorsCarryTheirCodes(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name string
		err  error
		code ErrorCode
	}{
		{"invalid request", NewInvalidRequestError("query is required"), ErrCodeInvalidRequest},
		{"es connection", NewElasticsearchConnectionFailedError(cause), ErrCodeElasticsearchConnectionFailed},
		{"search query", NewSearchQueryFailedError("fitness_exercises", cause), ErrCodeSearchQueryFailed},
		{"search timeout", NewSearchTimeoutError("fitness_exercises"), ErrCodeSearchTimeout},
		{"index not found", NewIndexNotFoundError("fitness_exercises"), ErrCodeIndexNotFound},
		{"advice generation", NewAdviceGenerationFailedError(cause), ErrCodeAdviceGenerationFailed},
		{"advice timeout", NewAdviceTimeoutError(), ErrCodeAdviceTimeout},
		{"history save", NewHistorySaveFailedError(cause), ErrCodeHistorySaveFailed},
		{"history query", NewHistoryQueryFailedError("user-1", cause), ErrCodeHistoryQueryFailed},
		{"history delete", NewHistoryDeleteFailedError("user-1", cause), ErrCodeHistoryDeleteFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, IsCode(tt.err, tt.code))
		})
	}
}

func TestIsCode_WrappedAndForeignErrors(t *testing.T) {
	wrapped := fmt.Errorf("stage failed: %w", NewSearchTimeoutError("fitness_exercises"))
	assert.True(t, IsCode(wrapped, ErrCodeSearchTimeout))
	assert.False(t, IsCode(wrapped, ErrCodeSearchQueryFailed))
	assert.False(t, IsCode(errors.New("plain"), ErrCodeSearchTimeout))
	assert.False(t, IsCode(nil, ErrCodeSearchTimeout))
}

// ==========================
// HTTP Mapping Tests
// ==========================

func TestHTTPStatus(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid request", NewInvalidRequestError("bad"), http.StatusBadRequest},
		{"index not found", NewIndexNotFoundError("missing"), http.StatusNotFound},
		{"search timeout", NewSearchTimeoutError("fitness_exercises"), http.StatusGatewayTimeout},
		{"advice timeout", NewAdviceTimeoutError(), http.StatusGatewayTimeout},
		{"search query", NewSearchQueryFailedError("fitness_exercises", cause), http.StatusInternalServerError},
		{"history save", NewHistorySaveFailedError(cause), http.StatusInternalServerError},
		{"unknown error", errors.New("plain"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, HTTPStatus(tt.err))
		})
	}
}

func TestToEnvelope(t *testing.T) {
	env := ToEnvelope(NewIndexNotFoundError("fitness_exercises"))
	assert.Equal(t, "error", env.Status)
	assert.Equal(t, string(ErrCodeIndexNotFound), env.Code)
	assert.NotEmpty(t, env.Message)

	plain := ToEnvelope(errors.New("boom"))
	assert.Equal(t, "error", plain.Status)
	assert.Empty(t, plain.Code)
}
