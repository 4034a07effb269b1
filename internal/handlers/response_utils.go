package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"customer-portal/internal/models"
	"customer-portal/internal/soap"
)

// RespondWithError sends a standardized JSON error response and aborts the
// handler chain.
func RespondWithError(c *gin.Context, httpStatus int, appErrorCode string, message string, details interface{}) {
	c.AbortWithStatusJSON(httpStatus, models.APIError{
		Success: false,
		Code:    appErrorCode,
		Message: message,
		Details: details,
	})
}

// RespondWithSuccess wraps data in the standard success envelope. List data
// is always an array, never null.
func RespondWithSuccess(c *gin.Context, httpStatus int, message string, data interface{}) {
	c.JSON(httpStatus, models.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// respondOperationError maps an executor error onto an HTTP status and error
// code.
func (a *API) respondOperationError(c *gin.Context, operation string, err error) {
	status, code, message := classifyOperationError(err)

	evt := a.log.Warn()
	if status >= http.StatusInternalServerError {
		evt = a.log.Error()
	}
	evt.Err(err).
		Str("request_id", requestID(c)).
		Str("operation", operation).
		Int("status", status).
		Str("code", code).
		Msg("backend operation failed")

	var details interface{}
	if code == models.ErrorCodeBackendStructureMismatch || code == models.ErrorCodeValidation {
		details = gin.H{"reason": err.Error()}
	}
	RespondWithError(c, status, code, message, details)
}

func classifyOperationError(err error) (int, string, string) {
	var te *soap.TransportError
	switch {
	case errors.Is(err, soap.ErrValidation):
		return http.StatusBadRequest, models.ErrorCodeValidation, validationMessage(err)
	case errors.As(err, &te) && te.Timeout:
		return http.StatusGatewayTimeout, models.ErrorCodeRequestTimeout, "Request timeout - SAP system not responding"
	case errors.As(err, &te) && te.Refused:
		return http.StatusServiceUnavailable, models.ErrorCodeServiceUnavailable, "SAP service unavailable"
	case errors.Is(err, soap.ErrTransport):
		return http.StatusBadGateway, models.ErrorCodeBackendUnreachable, "Error connecting to SAP system"
	case errors.Is(err, soap.ErrStructureMismatch):
		return http.StatusInternalServerError, models.ErrorCodeBackendStructureMismatch, "Error processing SAP response"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, models.ErrorCodeRequestTimeout, "Request timeout - SAP system not responding"
	default:
		return http.StatusInternalServerError, models.ErrorCodeInternalServerError, "An unexpected error occurred"
	}
}

func validationMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), soap.ErrValidation.Error()+": ")
	if msg == "" {
		return "Invalid request"
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
