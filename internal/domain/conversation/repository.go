package conversation

import "context"

// Repository persists conversations. Operations that reference a nonexistent
// id return an apierrors NOT_FOUND error; storage faults surface as
// DATABASE_ERROR. Each write is a single atomic statement.
type Repository interface {
	// Create inserts a conversation with an empty message log and returns it.
	Create(ctx context.Context, name string) (*Conversation, error)
	// Get fetches the full record.
	Get(ctx context.Context, id uint) (*Conversation, error)
	// ListAll returns summaries for every conversation, ordered by id ascending.
	ListAll(ctx context.Context) ([]Summary, error)
	// Rename updates the conversation name in place.
	Rename(ctx context.Context, id uint, name string) error
	// Delete removes the record permanently. Deleted ids are never reused.
	Delete(ctx context.Context, id uint) error
	// SaveMessages overwrites the stored message blob.
	SaveMessages(ctx context.Context, id uint, messageLog string) error
}
