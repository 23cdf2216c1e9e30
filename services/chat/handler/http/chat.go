package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dkurush/fleetops/internal/pkg/jwt"
	"github.com/dkurush/fleetops/internal/pkg/models"
	"github.com/dkurush/fleetops/services/chat/usecase"
)

// ChatHandler serves the conversation endpoints for console clients
type ChatHandler struct {
	uc        *usecase.ChatUC
	jwtSecret string
}

// NewChatHandler creates a new chat HTTP handler
func NewChatHandler(uc *usecase.ChatUC, jwtSecret string) *ChatHandler {
	return &ChatHandler{
		uc:        uc,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers the chat endpoints
func (h *ChatHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/conversations/:peer/messages", h.SendMessage)
	e.GET("/conversations/:peer/messages", h.GetMessages)
}

// actorFromRequest resolves the authenticated caller from the Bearer
// token; identity is always passed explicitly into the use case.
func (h *ChatHandler) actorFromRequest(c echo.Context) (models.Actor, error) {
	authHeader := c.Request().Header.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return models.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is required")
	}

	claims, err := jwt.ValidateToken(parts[1], h.jwtSecret)
	if err != nil {
		return models.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	c.Set("user_id", claims.UserID)
	return models.Actor{ID: claims.UserID, Role: claims.Role}, nil
}

// SendMessage appends a message to the conversation with the peer
func (h *ChatHandler) SendMessage(c echo.Context) error {
	actor, err := h.actorFromRequest(c)
	if err != nil {
		return err
	}

	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	msg, err := h.uc.Send(c.Request().Context(), actor, c.Param("peer"), req.Text)
	if err != nil {
		if errors.Is(err, usecase.ErrEmptyMessage) {
			return echo.NewHTTPError(http.StatusBadRequest, "message text is empty")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to send message")
	}

	return c.JSON(http.StatusCreated, msg)
}

// GetMessages returns the most recent messages of the conversation in
// ascending time order
func (h *ChatHandler) GetMessages(c echo.Context) error {
	actor, err := h.actorFromRequest(c)
	if err != nil {
		return err
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a non-negative integer")
		}
	}

	messages, err := h.uc.History(c.Request().Context(), actor, c.Param("peer"), limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load messages")
	}

	return c.JSON(http.StatusOK, messages)
}
