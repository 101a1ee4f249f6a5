package requests

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	ConversationID *uint  `json:"conversation_id"`
	Message        string `json:"message" binding:"required"`
}

// RenameConversationRequest is the body of POST /history/rename/:id.
type RenameConversationRequest struct {
	Name string `json:"name" binding:"required"`
}
