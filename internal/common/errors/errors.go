// Package errors provides standardized error values for the repository and
// session layers. Deck composition itself is pure and never errors; the only
// real failure class is a collaborator fetch, surfaced to the caller for a
// user-visible retry prompt and never retried here.
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"

	ErrCodeRestaurantFetchFailed ErrorCode = "RESTAURANT_FETCH_FAILED"
	ErrCodeSwipeFetchFailed      ErrorCode = "SWIPE_FETCH_FAILED"
	ErrCodeSwipeInsertFailed     ErrorCode = "SWIPE_INSERT_FAILED"
	ErrCodeSwipeResetFailed      ErrorCode = "SWIPE_RESET_FAILED"
	ErrCodeProfileFetchFailed    ErrorCode = "PROFILE_FETCH_FAILED"

	ErrCodeInvalidFilterFormat ErrorCode = "INVALID_FILTER_FORMAT"
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

// NewDatabaseConnectionFailedError creates a retryable connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRestaurantFetchFailedError creates a retryable restaurant fetch error.
func NewRestaurantFetchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRestaurantFetchFailed,
		Message:   "Failed to fetch restaurants",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSwipeFetchFailedError creates a retryable swipe-history fetch error.
func NewSwipeFetchFailedError(userID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSwipeFetchFailed,
		Message:   "Failed to fetch swipe history",
		Details:   fmt.Sprintf("userId: %s, error: %s", userID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSwipeInsertFailedError creates a retryable swipe insert error.
func NewSwipeInsertFailedError(restaurantID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSwipeInsertFailed,
		Message:   "Failed to record swipe",
		Details:   fmt.Sprintf("restaurantId: %s, error: %s", restaurantID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSwipeResetFailedError creates a retryable swipe reset error.
func NewSwipeResetFailedError(userID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSwipeResetFailed,
		Message:   "Failed to reset swipe history",
		Details:   fmt.Sprintf("userId: %s, error: %s", userID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewProfileFetchFailedError creates a retryable profile fetch error.
func NewProfileFetchFailedError(userID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProfileFetchFailed,
		Message:   "Failed to fetch profile preferences",
		Details:   fmt.Sprintf("userId: %s, error: %s", userID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidFilterFormatError creates a non-retryable filter format error.
func NewInvalidFilterFormatError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidFilterFormat,
		Message:   "Filter configuration failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Helpers
// ==========================

// IsRetryable reports whether err is a StandardError marked retryable.
func IsRetryable(err error) bool {
	if se, ok := err.(*StandardError); ok {
		return se.Retryable
	}
	return false
}

// CodeOf returns the error code of a StandardError, or "" for other errors.
func CodeOf(err error) ErrorCode {
	if se, ok := err.(*StandardError); ok {
		return se.Code
	}
	return ""
}
