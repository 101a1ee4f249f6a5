package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/NguyenLeDuy2k7/Chatbot-AI/internal/interfaces/httpserver/handlers"
)

// Provider encapsulates route registration.
type Provider struct {
	handlers *handlers.Provider
}

// NewProvider builds the route registrar.
func NewProvider(handlerProvider *handlers.Provider) *Provider {
	return &Provider{handlers: handlerProvider}
}

// Register attaches all API routes.
func (p *Provider) Register(engine *gin.Engine) {
	engine.POST("/chat", p.handlers.Chat.Post)

	engine.GET("/history", p.handlers.Conversation.List)
	engine.GET("/history/:id", p.handlers.Conversation.Get)
	engine.POST("/history/new", p.handlers.Conversation.Create)
	engine.POST("/history/rename/:id", p.handlers.Conversation.Rename)
	engine.DELETE("/history/delete/:id", p.handlers.Conversation.Delete)
}
