package handlers

import (
	"github.com/rs/zerolog"

	"github.com/NguyenLeDuy2k7/Chatbot-AI/internal/domain/chat"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Chat         *ChatHandler
	Conversation *ConversationHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(chatService chat.Service, log zerolog.Logger) *Provider {
	return &Provider{
		Chat:         NewChatHandler(chatService, log),
		Conversation: NewConversationHandler(chatService, log),
	}
}
