// Package httputil provides helpers shared by the HTTP handlers.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/shopfloor/shopfloor/internal/errors"
	"github.com/shopfloor/shopfloor/internal/validation"
)

// ErrorResponse is the JSON body of every failed request. Fields carries the
// per-field messages of a validation failure.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// HandleErrorGin maps err onto a status code and writes it as JSON. Builder
// violations are rendered field by field; internal errors are logged but never
// exposed to the client.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	if infoErr, ok := validation.AsInformationRequired(err); ok {
		if logger != nil {
			logger.Warn("validation failed",
				slog.String("entity", infoErr.Entity),
				slog.Any("fields", infoErr.Violations.Keys()))
		}
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation_error",
			Message: infoErr.Error(),
			Fields:  infoErr.Violations.Messages(),
		})
		return
	}

	var statusCode int
	var errorResponse ErrorResponse

	switch {
	case apperrors.Is(err, apperrors.ErrNotFound):
		statusCode = http.StatusNotFound
		errorResponse = ErrorResponse{Error: "not_found", Message: err.Error()}

	case apperrors.Is(err, apperrors.ErrConflict):
		statusCode = http.StatusConflict
		errorResponse = ErrorResponse{Error: "conflict", Message: err.Error()}

	case apperrors.Is(err, apperrors.ErrInvalidInput):
		statusCode = http.StatusUnprocessableEntity
		errorResponse = ErrorResponse{Error: "invalid_input", Message: err.Error()}

	case apperrors.Is(err, apperrors.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		errorResponse = ErrorResponse{Error: "unauthorized", Message: "Authentication is required"}

	case apperrors.Is(err, apperrors.ErrForbidden):
		statusCode = http.StatusForbidden
		errorResponse = ErrorResponse{
			Error:   "forbidden",
			Message: "You don't have permission to access this resource",
		}

	default:
		statusCode = http.StatusInternalServerError
		errorResponse = ErrorResponse{Error: "internal_error", Message: "An internal error occurred"}
	}

	if logger != nil {
		logger.Error("request failed",
			slog.Int("status_code", statusCode),
			slog.String("error_code", errorResponse.Error),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, errorResponse)
}

// HandleBadRequestGin writes a 400 for malformed JSON, path or query parameters.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "bad_request",
		Message: err.Error(),
	})
}

// HandleValidationErrorGin writes a 422 for request bodies rejected by DTO validation.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}

	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation_error",
		Message: err.Error(),
	})
}
