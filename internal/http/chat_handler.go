package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"outdoor-chat/internal/domain"
	"outdoor-chat/internal/service"
)

const (
	chatErrorTitle      = "Chat API error"
	missingBindingsText = "Missing chat bindings."
	missingMessageText  = "Missing userMessage"
)

// TurnHandler es la capacidad que el endpoint necesita del coordinador de sesiones.
type TurnHandler interface {
	HandleTurn(ctx context.Context, req service.TurnRequest) (service.TurnResult, error)
}

// ChatHandler mantiene dependencias para el endpoint de chat.
type ChatHandler struct {
	logger *zap.Logger
	turns  TurnHandler
}

// NewChatHandler crea una instancia de ChatHandler. turns puede ser nil si faltan dependencias;
// en ese caso cada request responde 500.
func NewChatHandler(logger *zap.Logger, turns TurnHandler) *ChatHandler {
	return &ChatHandler{
		logger: logger,
		turns:  turns,
	}
}

type chatRequest struct {
	ChatID      string `json:"chatId"`
	UserMessage string `json:"userMessage"`
}

type chatResponse struct {
	ChatID  string            `json:"chatId"`
	Reply   string            `json:"reply"`
	History domain.Transcript `json:"history"`
}

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details"`
	Stack   string `json:"stack,omitempty"`
}

// PostChat maneja POST /api/chat. Es el unico punto donde los errores se convierten en respuestas HTTP.
func (h *ChatHandler) PostChat(c *gin.Context) {
	if h.turns == nil {
		h.logger.Error("chat bindings not configured")
		c.String(http.StatusInternalServerError, missingBindingsText)
		return
	}

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid chat request body", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorBody{Error: chatErrorTitle, Details: err.Error()})
		return
	}

	res, err := h.turns.HandleTurn(c.Request.Context(), service.TurnRequest{
		ChatID:      req.ChatID,
		UserMessage: req.UserMessage,
	})
	switch {
	case err == nil:
	case errors.Is(err, service.ErrInvalidInput):
		c.String(http.StatusBadRequest, missingMessageText)
		return
	case errors.Is(err, service.ErrMissingBindings):
		h.logger.Error("chat bindings not configured", zap.Error(err))
		c.String(http.StatusInternalServerError, missingBindingsText)
		return
	default:
		h.logger.Error("chat turn failed", zap.String("chat_id", req.ChatID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorBody{Error: chatErrorTitle, Details: err.Error()})
		return
	}

	c.JSON(http.StatusOK, chatResponse{
		ChatID:  res.ChatID,
		Reply:   res.Reply,
		History: res.History,
	})
}
