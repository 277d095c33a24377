// ABOUTME: Standardized error response types and helpers for HTTP handlers
// ABOUTME: Gives the editor API and admin endpoints one JSON error envelope

package errors

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the error envelope every JSON endpoint returns.
//
// Usage:
//
//	WriteError(w, http.StatusBadRequest, ErrInvalidBody, "The request body is malformed")
type ErrorResponse struct {
	Code    string `json:"code"`              // Machine-readable error code (e.g., "invalid_request", "not_found")
	Message string `json:"message"`           // Human-readable error message
	Status  int    `json:"status"`            // HTTP status code
	Field   string `json:"field,omitempty"`   // Optional: field that caused the error (for validation errors)
	Details string `json:"details,omitempty"` // Optional: additional error details
}

// WriteError writes an error envelope with the given status and code.
//
// Example:
//
//	WriteError(w, http.StatusNotFound, ErrNotFound, "Block type acf/hero is not registered")
func WriteError(w http.ResponseWriter, status int, code, message string) {
	writeErrorResponse(w, ErrorResponse{
		Code:    code,
		Message: message,
		Status:  status,
	})
}

// WriteErrorWithField writes an error envelope naming the offending field.
// Use this for validation errors on a single input.
//
// Example:
//
//	WriteErrorWithField(w, http.StatusBadRequest, ErrMissingField, "Block name is required", "name")
func WriteErrorWithField(w http.ResponseWriter, status int, code, message, field string) {
	writeErrorResponse(w, ErrorResponse{
		Code:    code,
		Message: message,
		Status:  status,
		Field:   field,
	})
}

// WriteErrorWithDetails writes an error envelope with extra context.
//
// Example:
//
//	WriteErrorWithDetails(w, http.StatusInternalServerError, ErrDatabaseError, "Failed to load blocks", err.Error())
func WriteErrorWithDetails(w http.ResponseWriter, status int, code, message, details string) {
	writeErrorResponse(w, ErrorResponse{
		Code:    code,
		Message: message,
		Status:  status,
		Details: details,
	})
}

func writeErrorResponse(w http.ResponseWriter, resp ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	json.NewEncoder(w).Encode(resp)
}

// Error codes shared by all handlers
const (
	// Client errors (4xx)
	ErrInvalidRequest   = "invalid_request"
	ErrInvalidBody      = "invalid_request_body"
	ErrMissingField     = "missing_field"
	ErrValidationFailed = "validation_failed"
	ErrNotFound         = "not_found"
	ErrUnauthorized     = "unauthorized"
	ErrForbidden        = "forbidden"
	ErrConflict         = "conflict"
	ErrBlockNotAllowed  = "block_not_allowed"

	// Server errors (5xx)
	ErrInternal           = "internal_error"
	ErrDatabaseError      = "database_error"
	ErrRenderFailed       = "render_failed"
	ErrServiceUnavailable = "service_unavailable"
	ErrNotImplemented     = "not_implemented"
)
