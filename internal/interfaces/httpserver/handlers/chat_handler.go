package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/NguyenLeDuy2k7/Chatbot-AI/internal/domain/chat"
	"github.com/NguyenLeDuy2k7/Chatbot-AI/internal/interfaces/httpserver/requests"
	"github.com/NguyenLeDuy2k7/Chatbot-AI/internal/interfaces/httpserver/responses"
	"github.com/NguyenLeDuy2k7/Chatbot-AI/internal/utils/apierrors"
)

// ChatHandler exposes the chat-turn endpoint.
type ChatHandler struct {
	service chat.Service
	log     zerolog.Logger
}

// NewChatHandler constructs the handler.
func NewChatHandler(service chat.Service, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		service: service,
		log:     log.With().Str("handler", "chat").Logger(),
	}
}

// Post handles POST /chat.
func (h *ChatHandler) Post(c *gin.Context) {
	var req requests.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleError(c,
			apierrors.New(c.Request.Context(), apierrors.LayerHandler, apierrors.ErrorTypeValidation, "message content is missing", err),
			"invalid request body")
		return
	}

	result, err := h.service.Chat(c.Request.Context(), req.ConversationID, req.Message)
	if err != nil {
		responses.HandleError(c, err, "failed to process chat turn")
		return
	}

	c.JSON(http.StatusOK, responses.ChatResponse{
		ConversationID: result.ConversationID,
		Reply:          result.Reply,
	})
}
