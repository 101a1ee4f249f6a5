package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/NguyenLeDuy2k7/Chatbot-AI/internal/domain/chat"
	"github.com/NguyenLeDuy2k7/Chatbot-AI/internal/interfaces/httpserver/requests"
	"github.com/NguyenLeDuy2k7/Chatbot-AI/internal/interfaces/httpserver/responses"
	"github.com/NguyenLeDuy2k7/Chatbot-AI/internal/utils/apierrors"
)

// ConversationHandler exposes conversation lifecycle endpoints.
type ConversationHandler struct {
	service chat.Service
	log     zerolog.Logger
}

// NewConversationHandler constructs the handler.
func NewConversationHandler(service chat.Service, log zerolog.Logger) *ConversationHandler {
	return &ConversationHandler{
		service: service,
		log:     log.With().Str("handler", "conversation").Logger(),
	}
}

// List handles GET /history.
func (h *ConversationHandler) List(c *gin.Context) {
	summaries, err := h.service.ListConversations(c.Request.Context())
	if err != nil {
		responses.HandleError(c, err, "failed to list conversations")
		return
	}
	c.JSON(http.StatusOK, responses.FromSummaries(summaries))
}

// Get handles GET /history/:id.
func (h *ConversationHandler) Get(c *gin.Context) {
	id, ok := h.conversationID(c)
	if !ok {
		return
	}

	detail, err := h.service.GetConversation(c.Request.Context(), id)
	if err != nil {
		responses.HandleError(c, err, "failed to fetch conversation")
		return
	}
	c.JSON(http.StatusOK, responses.FromDetail(detail))
}

// Create handles POST /history/new.
func (h *ConversationHandler) Create(c *gin.Context) {
	summary, err := h.service.NewConversation(c.Request.Context())
	if err != nil {
		responses.HandleError(c, err, "failed to create conversation")
		return
	}
	c.JSON(http.StatusOK, responses.ConversationSummary{ID: summary.ID, Name: summary.Name})
}

// Rename handles POST /history/rename/:id.
func (h *ConversationHandler) Rename(c *gin.Context) {
	id, ok := h.conversationID(c)
	if !ok {
		return
	}

	var req requests.RenameConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleError(c,
			apierrors.New(c.Request.Context(), apierrors.LayerHandler, apierrors.ErrorTypeValidation, "new name is required", err),
			"invalid request body")
		return
	}

	if err := h.service.RenameConversation(c.Request.Context(), id, req.Name); err != nil {
		responses.HandleError(c, err, "failed to rename conversation")
		return
	}
	c.JSON(http.StatusOK, responses.MessageResponse{Message: "conversation renamed"})
}

// Delete handles DELETE /history/delete/:id.
func (h *ConversationHandler) Delete(c *gin.Context) {
	id, ok := h.conversationID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteConversation(c.Request.Context(), id); err != nil {
		responses.HandleError(c, err, "failed to delete conversation")
		return
	}
	c.JSON(http.StatusOK, responses.MessageResponse{Message: "conversation deleted"})
}

func (h *ConversationHandler) conversationID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		responses.HandleError(c,
			apierrors.New(c.Request.Context(), apierrors.LayerHandler, apierrors.ErrorTypeValidation, "conversation id must be an integer", err),
			"invalid conversation id")
		return 0, false
	}
	return uint(id), true
}
