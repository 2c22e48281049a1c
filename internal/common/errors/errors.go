// Package errors provides standardized error handling for the service.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"

	ErrCodeElasticsearchConnectionFailed ErrorCode = "ELASTICSEARCH_CONNECTION_FAILED"
	ErrCodeSearchQueryFailed             ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeSearchTimeout                 ErrorCode = "SEARCH_TIMEOUT"
	ErrCodeIndexNotFound                 ErrorCode = "INDEX_NOT_FOUND"

	ErrCodeAdviceGenerationFailed ErrorCode = "ADVICE_GENERATION_FAILED"
	ErrCodeAdviceTimeout          ErrorCode = "ADVICE_TIMEOUT"

	ErrCodeHistorySaveFailed   ErrorCode = "HISTORY_SAVE_FAILED"
	ErrCodeHistoryQueryFailed  ErrorCode = "HISTORY_QUERY_FAILED"
	ErrCodeHistoryDeleteFailed ErrorCode = "HISTORY_DELETE_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewInvalidRequestError creates a non-retryable request validation error.
func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Invalid request payload",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewElasticsearchConnectionFailedError creates a retryable Elasticsearch connection error.
func NewElasticsearchConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeElasticsearchConnectionFailed,
		Message:   "Elasticsearch connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchQueryFailedError creates a retryable search query error.
func NewSearchQueryFailedError(index string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchQueryFailed,
		Message:   "Elasticsearch query error",
		Details:   fmt.Sprintf("index: %s, error: %s", index, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchTimeoutError creates a retryable search timeout error.
func NewSearchTimeoutError(index string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchTimeout,
		Message:   "Elasticsearch query timeout",
		Details:   fmt.Sprintf("index: %s", index),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewIndexNotFoundError creates a non-retryable missing index error.
func NewIndexNotFoundError(index string) *StandardError {
	return &StandardError{
		Code:      ErrCodeIndexNotFound,
		Message:   "Elasticsearch index not found",
		Details:   fmt.Sprintf("index: %s", index),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAdviceGenerationFailedError creates a retryable advisory service error.
func NewAdviceGenerationFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAdviceGenerationFailed,
		Message:   "Advisory service error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewAdviceTimeoutError creates a retryable advisory timeout error.
func NewAdviceTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeAdviceTimeout,
		Message:   "Advisory service timeout",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewHistorySaveFailedError creates a retryable history persistence error.
func NewHistorySaveFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeHistorySaveFailed,
		Message:   "Workout history save error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewHistoryQueryFailedError creates a retryable history lookup error.
func NewHistoryQueryFailedError(userID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeHistoryQueryFailed,
		Message:   "Workout history query error",
		Details:   fmt.Sprintf("userId: %s, error: %s", userID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewHistoryDeleteFailedError creates a retryable history delete error.
func NewHistoryDeleteFailedError(userID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeHistoryDeleteFailed,
		Message:   "Workout history delete error",
		Details:   fmt.Sprintf("userId: %s, error: %s", userID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. HTTP Integration
// ==========================

// HTTPEnvelope is the JSON body returned for failed requests.
type HTTPEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// IsCode reports whether err carries the given error code.
func IsCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	return errors.As(err, &stdErr) && stdErr.Code == code
}

// HTTPStatus maps an error to the response status code. Unknown errors are
// treated as internal.
func HTTPStatus(err error) int {
	var stdErr *StandardError
	if !errors.As(err, &stdErr) {
		return http.StatusInternalServerError
	}
	switch stdErr.Code {
	case ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case ErrCodeIndexNotFound:
		return http.StatusNotFound
	case ErrCodeSearchTimeout, ErrCodeAdviceTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// ToEnvelope converts an error into the HTTP error body.
func ToEnvelope(err error) HTTPEnvelope {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return HTTPEnvelope{
			Status:  "error",
			Message: stdErr.Message,
			Code:    string(stdErr.Code),
		}
	}
	return HTTPEnvelope{
		Status:  "error",
		Message: "internal error",
	}
}
