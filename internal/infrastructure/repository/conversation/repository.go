package conversation

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/NguyenLeDuy2k7/Chatbot-AI/internal/domain/conversation"
	"github.com/NguyenLeDuy2k7/Chatbot-AI/internal/infrastructure/database/entities"
	"github.com/NguyenLeDuy2k7/Chatbot-AI/internal/utils/apierrors"
)

// Repository persists conversations through GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a conversation repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a conversation with an empty message log.
func (r *Repository) Create(ctx context.Context, name string) (*domain.Conversation, error) {
	emptyLog, err := domain.EncodeLog(nil)
	if err != nil {
		return nil, apierrors.New(ctx, apierrors.LayerRepository, apierrors.ErrorTypeInternal, "encode empty message log", err)
	}

	entity := &entities.Conversation{
		Name:     name,
		Messages: emptyLog,
	}
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return nil, apierrors.New(ctx, apierrors.LayerRepository, apierrors.ErrorTypeDatabaseError, "failed to create conversation", err)
	}
	return entity.EtoD(), nil
}

// Get fetches a conversation by id.
func (r *Repository) Get(ctx context.Context, id uint) (*domain.Conversation, error) {
	var entity entities.Conversation
	if err := r.db.WithContext(ctx).First(&entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, r.notFound(ctx, id)
		}
		return nil, apierrors.New(ctx, apierrors.LayerRepository, apierrors.ErrorTypeDatabaseError, "failed to fetch conversation", err)
	}
	return entity.EtoD(), nil
}

// ListAll returns summaries for every conversation, ordered by id ascending.
func (r *Repository) ListAll(ctx context.Context) ([]domain.Summary, error) {
	var rows []entities.Conversation
	if err := r.db.WithContext(ctx).
		Select("id", "name").
		Order("id asc").
		Find(&rows).Error; err != nil {
		return nil, apierrors.New(ctx, apierrors.LayerRepository, apierrors.ErrorTypeDatabaseError, "failed to list conversations", err)
	}

	summaries := make([]domain.Summary, len(rows))
	for i, row := range rows {
		summaries[i] = domain.Summary{ID: row.ID, Name: row.Name}
	}
	return summaries, nil
}

// Rename updates the conversation name with a single UPDATE statement.
func (r *Repository) Rename(ctx context.Context, id uint, name string) error {
	res := r.db.WithContext(ctx).
		Model(&entities.Conversation{}).
		Where("id = ?", id).
		Update("name", name)
	if res.Error != nil {
		return apierrors.New(ctx, apierrors.LayerRepository, apierrors.ErrorTypeDatabaseError, "failed to rename conversation", res.Error)
	}
	if res.RowsAffected == 0 {
		return r.notFound(ctx, id)
	}
	return nil
}

// Delete removes the conversation permanently.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entities.Conversation{}, id)
	if res.Error != nil {
		return apierrors.New(ctx, apierrors.LayerRepository, apierrors.ErrorTypeDatabaseError, "failed to delete conversation", res.Error)
	}
	if res.RowsAffected == 0 {
		return r.notFound(ctx, id)
	}
	return nil
}

// SaveMessages overwrites the stored message blob with a single UPDATE
// statement, so readers never observe a partial write.
func (r *Repository) SaveMessages(ctx context.Context, id uint, messageLog string) error {
	res := r.db.WithContext(ctx).
		Model(&entities.Conversation{}).
		Where("id = ?", id).
		Update("messages", messageLog)
	if res.Error != nil {
		return apierrors.New(ctx, apierrors.LayerRepository, apierrors.ErrorTypeDatabaseError, "failed to save messages", res.Error)
	}
	if res.RowsAffected == 0 {
		return r.notFound(ctx, id)
	}
	return nil
}

func (r *Repository) notFound(ctx context.Context, id uint) error {
	return apierrors.New(ctx, apierrors.LayerRepository, apierrors.ErrorTypeNotFound,
		fmt.Sprintf("conversation not found: %d", id), nil)
}

var _ domain.Repository = (*Repository)(nil)
