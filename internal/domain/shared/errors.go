package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Field   string            `json:"field,omitempty"`   // Offending field for validation errors
	Details map[string]string `json:"details,omitempty"` // Extra context, e.g. current/requested status
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a field-attributable validation error
func NewValidationError(field, message string) *DomainError {
	return &DomainError{
		Code:    "VALIDATION_ERROR",
		Message: message,
		Field:   field,
	}
}

// NewInvalidStateError creates an error for an illegal lifecycle transition.
// Current and requested states are carried so callers can render both.
func NewInvalidStateError(current, requested, message string) *DomainError {
	return &DomainError{
		Code:    "INVALID_STATE",
		Message: message,
		Details: map[string]string{
			"current_status":   current,
			"requested_status": requested,
		},
	}
}

// NewPostingFailedError wraps a posting backend failure. The document is
// guaranteed to remain in its pre-transition state when this is returned.
func NewPostingFailedError(message string) *DomainError {
	return &DomainError{
		Code:    "POSTING_FAILED",
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)
