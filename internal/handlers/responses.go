package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"linguachat/internal/domain"
)

// ErrorResponse is the standard format for API error responses.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps domain errors onto HTTP responses. Validation problems
// are client errors; anything touching the store is a server error.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: "invalid_request", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Code: "not_found", Message: err.Error()})
	case errors.Is(err, domain.ErrPersistence):
		slog.Error("Persistence failure", "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Code: "persistence_failed", Message: "message store unavailable"})
	default:
		slog.Error("Unhandled error", "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Code: "internal_error", Message: "internal server error"})
	}
}
