package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"linguachat/internal/analytics"
	"linguachat/internal/middleware"
)

// AnalyticsHandler exposes per-user conversation statistics.
type AnalyticsHandler struct {
	aggregator *analytics.Aggregator
}

// NewAnalyticsHandler creates a handler backed by the given aggregator.
func NewAnalyticsHandler(a *analytics.Aggregator) *AnalyticsHandler {
	return &AnalyticsHandler{aggregator: a}
}

// GetAnalytics handles GET /api/analytics for the authenticated user.
func (h *AnalyticsHandler) GetAnalytics(c echo.Context) error {
	stats, err := h.aggregator.ComputeStats(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, stats)
}
