package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeValidation is used when request or document validation fails
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a document or entry is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeLineNotFound is used when a document line is not found
	ErrCodeLineNotFound = "ERR_LINE_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeConcurrencyConflict is used when optimistic locking fails
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Lifecycle error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for the
	// document's current status
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeNotPosted is used when a ledger operation targets a document
	// that was never posted
	ErrCodeNotPosted = "ERR_NOT_POSTED"
	// ErrCodeAlreadyReversal is used when trying to reverse a reversal entry
	ErrCodeAlreadyReversal = "ERR_ALREADY_REVERSAL"
	// ErrCodeTotalsInconsistent is used when stored totals disagree with
	// recomputed totals at a posting boundary
	ErrCodeTotalsInconsistent = "ERR_TOTALS_INCONSISTENT"
	// ErrCodeUnbalancedEntry is used when a ledger entry's debits and
	// credits do not balance
	ErrCodeUnbalancedEntry = "ERR_UNBALANCED_ENTRY"
)

// Posting backend error codes
const (
	// ErrCodePostingFailed is used when the posting backend rejects or
	// fails to record a ledger entry
	ErrCodePostingFailed = "ERR_POSTING_FAILED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeValidation:  http.StatusBadRequest,
	ErrCodeInvalidJSON: http.StatusBadRequest,

	// Resource errors
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeLineNotFound:        http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	// Lifecycle errors -> 422 Unprocessable Entity
	ErrCodeInvalidState:       http.StatusUnprocessableEntity,
	ErrCodeNotPosted:          http.StatusUnprocessableEntity,
	ErrCodeAlreadyReversal:    http.StatusUnprocessableEntity,
	ErrCodeTotalsInconsistent: http.StatusUnprocessableEntity,
	ErrCodeUnbalancedEntry:    http.StatusUnprocessableEntity,

	// Posting backend errors -> 502 Bad Gateway
	ErrCodePostingFailed: http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain-layer error codes to transport codes.
// Domain errors carry bare codes; the HTTP surface exposes the ERR_ form.
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"LINE_NOT_FOUND":       ErrCodeLineNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"INVALID_INPUT":        ErrCodeBadRequest,
	"VALIDATION_ERROR":     ErrCodeValidation,
	"INVALID_STATE":        ErrCodeInvalidState,
	"NOT_POSTED":           ErrCodeNotPosted,
	"ALREADY_REVERSAL":     ErrCodeAlreadyReversal,
	"TOTALS_INCONSISTENT":  ErrCodeTotalsInconsistent,
	"UNBALANCED_ENTRY":     ErrCodeUnbalancedEntry,
	"POSTING_FAILED":       ErrCodePostingFailed,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,
	"INTERNAL_ERROR":       ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the transport format.
// If the code is already in the transport format or unknown, returns it as-is.
func NormalizeErrorCode(code string) string {
	if transportCode, ok := DomainErrorCodeMapping[code]; ok {
		return transportCode
	}
	return code
}
