package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"linguachat/internal/middleware"
)

// RegisterRoutes sets up all the application routes.
func (s *Server) RegisterRoutes() {
	authed := middleware.CurrentUser()

	api := s.E.Group("/api", authed)
	api.POST("/messages/send/:id", s.messageHandler.SendMessage)
	api.GET("/messages/:id", s.messageHandler.GetMessages)
	api.GET("/analytics", s.analyticsHandler.GetAnalytics)

	s.E.GET("/ws", s.bridge.Handler(), authed)

	s.E.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
	s.E.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}
