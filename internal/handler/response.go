package handler

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"recipekit/internal/domain"
	"recipekit/internal/scaling"
)

// StatusClientClosedRequest is the non-standard status used when the caller
// cancelled the operation.
const StatusClientClosedRequest = 499

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *ListMeta   `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ListMeta describes a bounded list response.
type ListMeta struct {
	Count int `json:"count"`
	Limit int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondList sends a 200 success response with list metadata.
func RespondList(c *gin.Context, data interface{}, meta ListMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	var yerr *scaling.YieldError
	switch {
	case errors.As(err, &yerr):
		return http.StatusBadRequest, "INVALID_YIELD", yerr.Message
	case errors.Is(err, domain.ErrCancelled), errors.Is(err, context.Canceled):
		return StatusClientClosedRequest, "CANCELLED", "operation cancelled"
	case errors.Is(err, domain.ErrInputTooLarge):
		return http.StatusRequestEntityTooLarge, "INPUT_TOO_LARGE", "input exceeds maximum allowed size"
	case errors.Is(err, domain.ErrInvalidYield):
		return http.StatusBadRequest, "INVALID_YIELD", "invalid target yield"
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest, "INVALID_REQUEST", errorMessage(err)
	case errors.Is(err, domain.ErrNoDecomposer):
		return http.StatusServiceUnavailable, "NO_DECOMPOSER", "no ingredient decomposer configured"
	case errors.Is(err, domain.ErrOrchestratorUsed), errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, "IMPORT_STATE_CONFLICT", "import cannot run in its current state"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// errorMessage returns the outermost wrap message, which carries the
// request-specific context for ErrInvalidRequest.
func errorMessage(err error) string {
	msg := err.Error()
	if msg == "" {
		return "invalid request"
	}
	return msg
}

// HandleError maps a domain error and sends the appropriate error response.
// Server-side failures are attached to the gin context for the access log.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		_ = c.Error(err)
	}
	resp := APIResponse{Success: false, Error: &APIError{Code: code, Message: msg}}
	var yerr *scaling.YieldError
	if errors.As(err, &yerr) {
		resp.Error.Details = yerr
	}
	c.JSON(status, resp)
}
