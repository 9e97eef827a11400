package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"linguachat/internal/domain"
	"linguachat/internal/middleware"
	"linguachat/internal/relay"
)

// MessageHandler exposes the relay over HTTP.
type MessageHandler struct {
	relay *relay.Relay
}

// NewMessageHandler creates a handler backed by the given relay.
func NewMessageHandler(r *relay.Relay) *MessageHandler {
	return &MessageHandler{relay: r}
}

// SendMessage handles POST /api/messages/send/:id. The sender is the
// authenticated user; :id is the receiver.
func (h *MessageHandler) SendMessage(c echo.Context) error {
	var req SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, fmt.Errorf("%w: malformed body", domain.ErrInvalidRequest))
	}
	if err := c.Validate(&req); err != nil {
		return writeError(c, fmt.Errorf("%w: text or image is required", domain.ErrInvalidRequest))
	}

	msg, err := h.relay.Send(c.Request().Context(), relay.SendRequest{
		SenderID:   middleware.UserID(c),
		ReceiverID: c.Param("id"),
		Text:       req.Text,
		MediaURL:   req.Image,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, msg)
}

// GetMessages handles GET /api/messages/:id, returning the conversation
// between the authenticated user and :id in creation order.
func (h *MessageHandler) GetMessages(c echo.Context) error {
	messages, err := h.relay.FetchHistory(c.Request().Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, messages)
}
