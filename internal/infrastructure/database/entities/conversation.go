package entities

import (
	"time"

	"github.com/NguyenLeDuy2k7/Chatbot-AI/internal/domain/conversation"
)

// Conversation represents the database schema for conversations. Ids are
// monotonically assigned by the database (SQLite AUTOINCREMENT / Postgres
// sequence), so a deleted id is never handed out again.
type Conversation struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Name     string `gorm:"type:varchar(256);not null"`
	Messages string `gorm:"type:text;not null"`
}

// TableName specifies the table name for Conversation.
func (Conversation) TableName() string {
	return "conversations"
}

// EtoD converts database entity to domain model.
func (c *Conversation) EtoD() *conversation.Conversation {
	return &conversation.Conversation{
		ID:         c.ID,
		Name:       c.Name,
		MessageLog: c.Messages,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}
