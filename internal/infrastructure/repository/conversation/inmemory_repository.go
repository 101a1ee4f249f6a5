package conversation

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	domain "github.com/NguyenLeDuy2k7/Chatbot-AI/internal/domain/conversation"
	"github.com/NguyenLeDuy2k7/Chatbot-AI/internal/utils/apierrors"
)

// InMemoryRepository is a thread-safe repository useful for demos/tests. It
// honors the same contract as the GORM repository, including monotonic id
// assignment: a deleted id is never handed out again.
type InMemoryRepository struct {
	mu      sync.RWMutex
	nextID  uint
	entries map[uint]*domain.Conversation
}

// NewInMemoryRepository creates an empty repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		nextID:  1,
		entries: make(map[uint]*domain.Conversation),
	}
}

// Create inserts a conversation with an empty message log.
func (r *InMemoryRepository) Create(ctx context.Context, name string) (*domain.Conversation, error) {
	emptyLog, err := domain.EncodeLog(nil)
	if err != nil {
		return nil, apierrors.New(ctx, apierrors.LayerRepository, apierrors.ErrorTypeInternal, "encode empty message log", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	conv := &domain.Conversation{
		ID:         r.nextID,
		Name:       name,
		MessageLog: emptyLog,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	r.nextID++
	r.entries[conv.ID] = conv

	copied := *conv
	return &copied, nil
}

// Get fetches a conversation by id.
func (r *InMemoryRepository) Get(ctx context.Context, id uint) (*domain.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conv, ok := r.entries[id]
	if !ok {
		return nil, r.notFound(ctx, id)
	}
	copied := *conv
	return &copied, nil
}

// ListAll returns summaries ordered by id ascending.
func (r *InMemoryRepository) ListAll(ctx context.Context) ([]domain.Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	summaries := make([]domain.Summary, 0, len(r.entries))
	for _, conv := range r.entries {
		summaries = append(summaries, domain.Summary{ID: conv.ID, Name: conv.Name})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID < summaries[j].ID })
	return summaries, nil
}

// Rename updates the conversation name in place.
func (r *InMemoryRepository) Rename(ctx context.Context, id uint, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	conv, ok := r.entries[id]
	if !ok {
		return r.notFound(ctx, id)
	}
	conv.Name = name
	conv.UpdatedAt = time.Now().UTC()
	return nil
}

// Delete removes the conversation permanently.
func (r *InMemoryRepository) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; !ok {
		return r.notFound(ctx, id)
	}
	delete(r.entries, id)
	return nil
}

// SaveMessages overwrites the stored message blob.
func (r *InMemoryRepository) SaveMessages(ctx context.Context, id uint, messageLog string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	conv, ok := r.entries[id]
	if !ok {
		return r.notFound(ctx, id)
	}
	conv.MessageLog = messageLog
	conv.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *InMemoryRepository) notFound(ctx context.Context, id uint) error {
	return apierrors.New(ctx, apierrors.LayerRepository, apierrors.ErrorTypeNotFound,
		fmt.Sprintf("conversation not found: %d", id), nil)
}

var _ domain.Repository = (*InMemoryRepository)(nil)
