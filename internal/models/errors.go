package models

// APIError represents a standardized error response format for the API.
// @Description APIError carries success=false, an application-specific error code and a human-readable message.
type APIError struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`              // Application-specific error code (e.g., "REQUEST_TIMEOUT")
	Message string `json:"message"`           // Human-readable message describing the error
	Details any    `json:"details,omitempty"` // Optional additional context
}

// Predefined application-specific error codes
const (
	// Generic Errors
	ErrorCodeInternalServerError = "INTERNAL_SERVER_ERROR"
	ErrorCodeRequestTimeout      = "REQUEST_TIMEOUT"
	ErrorCodeServiceUnavailable  = "SERVICE_UNAVAILABLE"

	// Backend Errors
	ErrorCodeBackendUnreachable       = "BACKEND_UNREACHABLE"
	ErrorCodeBackendStructureMismatch = "BACKEND_STRUCTURE_MISMATCH"

	// Input Validation
	ErrorCodeValidation  = "VALIDATION_ERROR"
	ErrorCodeInvalidJSON = "INVALID_JSON"

	// Access
	ErrorCodeUnauthorized = "UNAUTHORIZED"
	ErrorCodeForbidden    = "FORBIDDEN"

	// Resource Specific Errors
	ErrorCodeNotFound = "NOT_FOUND"
)
