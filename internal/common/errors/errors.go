// Package errors provides the structured error codes used at the service
// boundary. The NLU core itself never returns errors: a non-match is an
// absent value and malformed oracle text is an unsuccessful ParseResult.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode is a standardized internal error code.
type ErrorCode string

const (
	ErrCodeEmptyOracleResponse  ErrorCode = "EMPTY_ORACLE_RESPONSE"
	ErrCodeOracleParseFailed    ErrorCode = "ORACLE_PARSE_FAILED"
	ErrCodeBookValidationFailed ErrorCode = "BOOK_VALIDATION_FAILED"
	ErrCodeLexiconLoadFailed    ErrorCode = "LEXICON_LOAD_FAILED"
	ErrCodeCacheUnavailable     ErrorCode = "CACHE_UNAVAILABLE"
	ErrCodeInvalidRequest       ErrorCode = "INVALID_REQUEST"
)

// StandardError is a structured application error.
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

// NewEmptyOracleResponseError marks a blank oracle response; the caller
// should re-ask the oracle.
func NewEmptyOracleResponseError() *StandardError {
	return &StandardError{
		Code:      ErrCodeEmptyOracleResponse,
		Message:   "Oracle returned an empty response",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewOracleParseFailedError marks a response that matched no known format;
// retrying the oracle may produce a parseable one.
func NewOracleParseFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeOracleParseFailed,
		Message:   "Oracle response did not match any known format",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewBookValidationFailedError carries field-level violations back to the
// user for correction; it is never retryable.
func NewBookValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeBookValidationFailed,
		Message:   "Book record failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewLexiconLoadFailedError marks a rejected lexicon registry file.
func NewLexiconLoadFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeLexiconLoadFailed,
		Message:   "Lexicon registry could not be loaded",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheUnavailableError marks a cache outage. Parsing proceeds without
// the cache, so this is informational.
func NewCacheUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheUnavailable,
		Message:   "Result cache unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidRequestError marks a malformed API request.
func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Invalid request",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
