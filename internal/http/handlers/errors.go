package handlers

import (
	"errors"
	"net/http"

	"marketplace/internal/domain"
	"marketplace/internal/http/middleware"
	"marketplace/internal/validation"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	resp := gin.H{
		"error":   message,
		"code":    code,
		"details": details,
	}
	if reqID := middleware.GetRequestID(c); reqID != "" {
		resp["request_id"] = reqID
	}
	c.JSON(status, resp)
}

// RespondDomainError maps domain errors to HTTP responses. Field-scoped
// validation errors carry every collected failure in details so the
// client can render them all at once.
func RespondDomainError(c *gin.Context, err error) {
	var fieldErrs validation.FieldErrors
	if errors.As(err, &fieldErrs) {
		respondError(c, http.StatusBadRequest, "validation_error", "validation failed", fieldErrs)
		return
	}

	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong", nil)
	}
}
