package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NguyenLeDuy2k7/Chatbot-AI/internal/domain/chat"
	"github.com/NguyenLeDuy2k7/Chatbot-AI/internal/domain/conversation"
	"github.com/NguyenLeDuy2k7/Chatbot-AI/internal/utils/apierrors"
)

// ErrorResponse is the structured error body returned to clients.
type ErrorResponse struct {
	Code      string `json:"code"`
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// HandleError translates domain errors into HTTP responses.
func HandleError(reqCtx *gin.Context, err error, fallback string) {
	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) {
		reqCtx.AbortWithStatusJSON(apierrors.ErrorTypeToHTTPStatus(apiErr.Type), ErrorResponse{
			Code:      string(apiErr.Type),
			Error:     apiErr.Message,
			RequestID: apiErr.RequestID,
		})
		return
	}
	reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Code:  string(apierrors.ErrorTypeInternal),
		Error: fallback,
	})
}

// ChatResponse is returned from POST /chat.
type ChatResponse struct {
	ConversationID uint   `json:"conversation_id"`
	Reply          string `json:"reply"`
}

// ConversationSummary is one row of GET /history.
type ConversationSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// MessagePayload is a single decoded message.
type MessagePayload struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ConversationDetail is returned from GET /history/:id.
type ConversationDetail struct {
	ID       uint             `json:"id"`
	Name     string           `json:"name"`
	Messages []MessagePayload `json:"messages"`
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// FromSummaries maps domain summaries to the listing payload.
func FromSummaries(summaries []conversation.Summary) []ConversationSummary {
	out := make([]ConversationSummary, len(summaries))
	for i, s := range summaries {
		out[i] = ConversationSummary{ID: s.ID, Name: s.Name}
	}
	return out
}

// FromDetail maps a decoded conversation to the detail payload.
func FromDetail(detail *chat.Detail) ConversationDetail {
	messages := make([]MessagePayload, len(detail.Messages))
	for i, m := range detail.Messages {
		messages[i] = MessagePayload{Role: string(m.Role), Content: m.Content}
	}
	return ConversationDetail{
		ID:       detail.ID,
		Name:     detail.Name,
		Messages: messages,
	}
}
