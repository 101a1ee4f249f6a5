package conversation

import "time"

// DefaultName is assigned to conversations created without an explicit name.
const DefaultName = "New Conversation"

// Role tags the author of a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether the role is one of the known tags.
func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}

// Message is a single role-tagged entry in a conversation log.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Conversation is the persisted record of a chat thread. MessageLog holds the
// encoded message sequence; use DecodeLog to read it.
type Conversation struct {
	ID         uint
	Name       string
	MessageLog string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Summary is the listing projection of a conversation.
type Summary struct {
	ID   uint
	Name string
}
