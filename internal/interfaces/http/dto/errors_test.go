package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected int
	}{
		{"bad request", ErrCodeBadRequest, http.StatusBadRequest},
		{"validation", ErrCodeValidation, http.StatusBadRequest},
		{"invalid json", ErrCodeInvalidJSON, http.StatusBadRequest},
		{"not found", ErrCodeNotFound, http.StatusNotFound},
		{"line not found", ErrCodeLineNotFound, http.StatusNotFound},
		{"already exists", ErrCodeAlreadyExists, http.StatusConflict},
		{"conflict", ErrCodeConflict, http.StatusConflict},
		{"concurrency conflict", ErrCodeConcurrencyConflict, http.StatusConflict},
		{"invalid state", ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{"not posted", ErrCodeNotPosted, http.StatusUnprocessableEntity},
		{"already reversal", ErrCodeAlreadyReversal, http.StatusUnprocessableEntity},
		{"totals inconsistent", ErrCodeTotalsInconsistent, http.StatusUnprocessableEntity},
		{"unbalanced entry", ErrCodeUnbalancedEntry, http.StatusUnprocessableEntity},
		{"posting failed", ErrCodePostingFailed, http.StatusBadGateway},
		{"internal", ErrCodeInternal, http.StatusInternalServerError},
		{"unknown code falls back to 500", "ERR_SOMETHING_NEW", http.StatusInternalServerError},
		{"empty code falls back to 500", "", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected string
	}{
		{"domain not found", "NOT_FOUND", ErrCodeNotFound},
		{"domain line not found", "LINE_NOT_FOUND", ErrCodeLineNotFound},
		{"domain validation", "VALIDATION_ERROR", ErrCodeValidation},
		{"domain invalid state", "INVALID_STATE", ErrCodeInvalidState},
		{"domain posting failed", "POSTING_FAILED", ErrCodePostingFailed},
		{"domain concurrency", "CONCURRENCY_CONFLICT", ErrCodeConcurrencyConflict},
		{"domain unbalanced", "UNBALANCED_ENTRY", ErrCodeUnbalancedEntry},
		{"already transport form", ErrCodeNotFound, ErrCodeNotFound},
		{"unknown passes through", "SOMETHING_ELSE", "SOMETHING_ELSE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.code))
		})
	}
}

func TestNormalizedCodesHaveStatusMapping(t *testing.T) {
	// Every domain code must normalize to a code with an explicit status
	for domainCode, transportCode := range DomainErrorCodeMapping {
		_, ok := ErrorCodeHTTPStatus[transportCode]
		assert.True(t, ok, "domain code %s maps to %s which has no HTTP status", domainCode, transportCode)
	}
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "Document not found", "req-123")

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "Document not found", resp.Error.Message)
	assert.Equal(t, "req-123", resp.Error.RequestID)
	assert.Nil(t, resp.Data)
}

func TestNewValidationErrorResponse(t *testing.T) {
	details := []ValidationDetail{
		{Field: "lines[0].quantity", Message: "quantity must be positive"},
		{Field: "currency", Message: "currency is required"},
	}

	resp := NewValidationErrorResponse("Request validation failed", "req-456", details)

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-456", resp.Error.RequestID)
	assert.Len(t, resp.Error.Details, 2)
	assert.Equal(t, "lines[0].quantity", resp.Error.Details[0].Field)
}

func TestErrorResponseJSON(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeInvalidState, "Only draft documents can be deleted", "req-789")

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, false, decoded["success"])
	errObj, ok := decoded["error"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, ErrCodeInvalidState, errObj["code"])
	assert.Equal(t, "req-789", errObj["request_id"])

	// Empty optional fields must be omitted from the payload
	_, hasField := errObj["field"]
	assert.False(t, hasField)
	_, hasDetails := errObj["details"]
	assert.False(t, hasDetails)
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	tests := []struct {
		name       string
		total      int64
		page       int
		pageSize   int
		totalPages int
	}{
		{"exact division", 40, 1, 20, 2},
		{"partial last page", 41, 1, 20, 3},
		{"empty result", 0, 1, 20, 0},
		{"single item", 1, 1, 20, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewSuccessResponseWithMeta([]string{}, tt.total, tt.page, tt.pageSize)
			assert.True(t, resp.Success)
			require.NotNil(t, resp.Meta)
			assert.Equal(t, tt.total, resp.Meta.Total)
			assert.Equal(t, tt.totalPages, resp.Meta.TotalPages)
		})
	}
}
