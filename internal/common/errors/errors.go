// internal/common/errors/errors.go

// Package errors provides standardized error handling for the suggestion pipeline.
package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Video selection errors. None of these ever reach an HTTP response:
	// the selector converts them to a search-link fallback.
	ErrCodeConfigurationAbsent ErrorCode = "CONFIGURATION_ABSENT"
	ErrCodeVideoSearchFailed   ErrorCode = "VIDEO_SEARCH_FAILED"
	ErrCodeVideoDetailFailed   ErrorCode = "VIDEO_DETAIL_FAILED"
	ErrCodeMalformedResponse   ErrorCode = "MALFORMED_RESPONSE"

	// Generation errors.
	ErrCodeGenerationFailed ErrorCode = "GENERATION_FAILED"
	ErrCodeModelUnavailable ErrorCode = "MODEL_UNAVAILABLE"
	ErrCodeParseFailed      ErrorCode = "PARSE_FAILED"

	// Preference intake errors.
	ErrCodeValidationFailed     ErrorCode = "PREFERENCES_VALIDATION_FAILED"
	ErrCodeDatabaseInsertFailed ErrorCode = "DATABASE_INSERT_FAILED"
	ErrCodePreferencesNotFound  ErrorCode = "PREFERENCES_NOT_FOUND"

	// Supporting service errors.
	ErrCodeArchiveFailed          ErrorCode = "ARCHIVE_FAILED"
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeAuthenticationError    ErrorCode = "AUTHENTICATION_ERROR"
	ErrCodeInternalError          ErrorCode = "INTERNAL_ERROR"
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
// Error Constructors
// ==========================

// NewConfigurationAbsentError marks a missing credential. Non-fatal by
// contract: callers route to a fallback result instead of failing.
func NewConfigurationAbsentError(what string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigurationAbsent,
		Message:   "Required configuration is absent",
		Details:   what,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewVideoSearchFailedError creates a transient video index error.
func NewVideoSearchFailedError(locale string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeVideoSearchFailed,
		Message:   "Video index search failed",
		Details:   fmt.Sprintf("locale: %s, error: %s", locale, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewVideoDetailFailedError marks a single hit whose detail record could not
// be fetched. The candidate is dropped, never the whole locale.
func NewVideoDetailFailedError(videoID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeVideoDetailFailed,
		Message:   "Video detail fetch failed",
		Details:   fmt.Sprintf("videoId: %s, error: %s", videoID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewMalformedResponseError creates a non-retryable decode error.
func NewMalformedResponseError(source string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMalformedResponse,
		Message:   "Unexpected response shape from external API",
		Details:   fmt.Sprintf("source: %s, error: %s", source, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewGenerationFailedError creates a retryable generation error.
func NewGenerationFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenerationFailed,
		Message:   "Meal suggestion generation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewModelUnavailableError creates a non-retryable model error: the caller
// is expected to advance to the next model in its fallback list instead.
func NewModelUnavailableError(model string) *StandardError {
	return &StandardError{
		Code:      ErrCodeModelUnavailable,
		Message:   "Generative model not available",
		Details:   fmt.Sprintf("model: %s", model),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewParseFailedError creates a non-retryable parse error.
func NewParseFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeParseFailed,
		Message:   "Failed to parse AI response",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationFailedError creates a non-retryable validation error.
func NewValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "User preference validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseInsertFailedError creates a retryable database insert error.
func NewDatabaseInsertFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseInsertFailed,
		Message:   "Database insert operation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewPreferencesNotFoundError creates a non-retryable lookup error.
func NewPreferencesNotFoundError(userID string) *StandardError {
	return &StandardError{
		Code:      ErrCodePreferencesNotFound,
		Message:   "No stored preferences for user",
		Details:   fmt.Sprintf("userId: %s", userID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewArchiveFailedError creates a retryable archive error. Archiving is
// best-effort: generation succeeds even when this is returned.
func NewArchiveFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeArchiveFailed,
		Message:   "Suggestion archive indexing failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification error.
func NewNotificationSendFailedError(notificationType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("type: %s, error: %s", notificationType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewAuthenticationError creates a non-retryable auth error.
func NewAuthenticationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAuthenticationError,
		Message:   "Authentication failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternalError,
		Message:   "Unexpected internal error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// HTTP Integration
// ==========================

// HTTPStatus maps an error code to the status the API layer should return.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeValidationFailed:
		return http.StatusBadRequest
	case ErrCodeAuthenticationError:
		return http.StatusUnauthorized
	case ErrCodePreferencesNotFound:
		return http.StatusNotFound
	case ErrCodeDatabaseInsertFailed,
		ErrCodeGenerationFailed,
		ErrCodeModelUnavailable,
		ErrCodeParseFailed,
		ErrCodeArchiveFailed,
		ErrCodeNotificationSendFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Normalize ensures any error is wrapped as a StandardError.
func Normalize(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return NewInternalError(err)
}
