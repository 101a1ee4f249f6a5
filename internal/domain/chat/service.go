package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/NguyenLeDuy2k7/Chatbot-AI/internal/domain/conversation"
	"github.com/NguyenLeDuy2k7/Chatbot-AI/internal/domain/llm"
	"github.com/NguyenLeDuy2k7/Chatbot-AI/internal/infrastructure/metrics"
	"github.com/NguyenLeDuy2k7/Chatbot-AI/internal/utils/apierrors"
)

// upstreamFailureMessage is the user-facing text for any completion failure.
// Internal detail stays in the logs.
const upstreamFailureMessage = "failed to get response from AI model"

// TurnResult is the outcome of one chat turn.
type TurnResult struct {
	ConversationID uint
	Reply          string
}

// Detail is a fully decoded conversation as exposed by the API.
type Detail struct {
	ID        uint
	Name      string
	Messages  []conversation.Message
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Service coordinates chat turns and conversation lifecycle.
type Service interface {
	Chat(ctx context.Context, conversationID *uint, userText string) (*TurnResult, error)
	NewConversation(ctx context.Context) (*conversation.Summary, error)
	ListConversations(ctx context.Context) ([]conversation.Summary, error)
	GetConversation(ctx context.Context, id uint) (*Detail, error)
	RenameConversation(ctx context.Context, id uint, name string) error
	DeleteConversation(ctx context.Context, id uint) error
}

// DefaultService implements Service against a conversation repository and a
// completion provider.
type DefaultService struct {
	repo         conversation.Repository
	provider     llm.Provider
	systemPrompt string
	locks        *conversationLocks
	log          zerolog.Logger
}

// NewService creates the chat orchestrator.
func NewService(repo conversation.Repository, provider llm.Provider, systemPrompt string, log zerolog.Logger) *DefaultService {
	return &DefaultService{
		repo:         repo,
		provider:     provider,
		systemPrompt: systemPrompt,
		locks:        newConversationLocks(),
		log:          log.With().Str("component", "chat-service").Logger(),
	}
}

// Chat runs one turn: resolve the conversation, append the user message,
// call the completion endpoint with the full context, and persist both turns
// atomically. When the upstream call fails the user message is discarded and
// the persisted log stays at its pre-turn state.
func (s *DefaultService) Chat(ctx context.Context, conversationID *uint, userText string) (*TurnResult, error) {
	if strings.TrimSpace(userText) == "" {
		return nil, apierrors.New(ctx, apierrors.LayerDomain, apierrors.ErrorTypeValidation, "message content is missing", nil)
	}

	conv, err := s.resolveConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	// Writes for one conversation are serialized for the whole turn so a
	// racing turn cannot overwrite this one's appends.
	s.locks.Lock(conv.ID)
	defer s.locks.Unlock(conv.ID)

	// Reload under the lock: a racing turn may have appended since resolve.
	conv, err = s.repo.Get(ctx, conv.ID)
	if err != nil {
		return nil, err
	}

	messages, err := conversation.DecodeLog(conv.MessageLog)
	if err != nil {
		s.log.Error().Err(err).Uint("conversation_id", conv.ID).Msg("persisted message log is corrupt")
		return nil, apierrors.New(ctx, apierrors.LayerDomain, apierrors.ErrorTypeDecode, "conversation history is corrupt", err)
	}

	messages = append(messages, conversation.Message{Role: conversation.RoleUser, Content: userText})

	reply, err := s.provider.Complete(ctx, s.buildContext(messages))
	if err != nil {
		return nil, s.upstreamFailure(ctx, conv.ID, err)
	}

	messages = append(messages, conversation.Message{Role: conversation.RoleAssistant, Content: reply})
	blob, err := conversation.EncodeLog(messages)
	if err != nil {
		return nil, apierrors.New(ctx, apierrors.LayerDomain, apierrors.ErrorTypeInternal, "encode conversation history", err)
	}
	if err := s.repo.SaveMessages(ctx, conv.ID, blob); err != nil {
		metrics.ChatTurnsTotal.WithLabelValues("storage_error").Inc()
		return nil, err
	}

	metrics.ChatTurnsTotal.WithLabelValues("ok").Inc()
	s.log.Debug().Uint("conversation_id", conv.ID).Int("context_len", len(messages)).Msg("chat turn persisted")

	return &TurnResult{ConversationID: conv.ID, Reply: reply}, nil
}

// resolveConversation returns the referenced conversation, creating a fresh
// one when the id is absent or does not exist.
func (s *DefaultService) resolveConversation(ctx context.Context, conversationID *uint) (*conversation.Conversation, error) {
	if conversationID != nil {
		conv, err := s.repo.Get(ctx, *conversationID)
		if err == nil {
			return conv, nil
		}
		var apiErr *apierrors.APIError
		if !errors.As(err, &apiErr) || apiErr.Type != apierrors.ErrorTypeNotFound {
			return nil, err
		}
	}
	return s.repo.Create(ctx, conversation.DefaultName)
}

// buildContext prepends the fixed system instruction to the conversation log.
func (s *DefaultService) buildContext(messages []conversation.Message) []llm.ChatMessage {
	chatCtx := make([]llm.ChatMessage, 0, len(messages)+1)
	if s.systemPrompt != "" {
		chatCtx = append(chatCtx, llm.ChatMessage{Role: string(conversation.RoleSystem), Content: s.systemPrompt})
	}
	for _, msg := range messages {
		chatCtx = append(chatCtx, llm.ChatMessage{Role: string(msg.Role), Content: msg.Content})
	}
	return chatCtx
}

func (s *DefaultService) upstreamFailure(ctx context.Context, conversationID uint, err error) error {
	errorType := apierrors.ErrorTypeUpstreamDown
	var upstreamErr *llm.UpstreamError
	if errors.As(err, &upstreamErr) {
		metrics.UpstreamErrorsTotal.WithLabelValues(string(upstreamErr.Kind)).Inc()
		switch upstreamErr.Kind {
		case llm.UpstreamTimeout:
			errorType = apierrors.ErrorTypeUpstreamTimeout
		case llm.UpstreamBadStatus:
			errorType = apierrors.ErrorTypeUpstreamBadStatus
		case llm.UpstreamMalformedBody:
			errorType = apierrors.ErrorTypeUpstreamMalformed
		}
	}
	metrics.ChatTurnsTotal.WithLabelValues("upstream_error").Inc()
	s.log.Warn().Err(err).Uint("conversation_id", conversationID).Msg("completion call failed, discarding user turn")
	return apierrors.New(ctx, apierrors.LayerDomain, errorType, upstreamFailureMessage, err)
}

// NewConversation creates an empty conversation with the default name.
func (s *DefaultService) NewConversation(ctx context.Context) (*conversation.Summary, error) {
	conv, err := s.repo.Create(ctx, conversation.DefaultName)
	if err != nil {
		return nil, err
	}
	return &conversation.Summary{ID: conv.ID, Name: conv.Name}, nil
}

// ListConversations returns all conversation summaries ordered by id.
func (s *DefaultService) ListConversations(ctx context.Context) ([]conversation.Summary, error) {
	return s.repo.ListAll(ctx)
}

// GetConversation fetches and decodes a single conversation.
func (s *DefaultService) GetConversation(ctx context.Context, id uint) (*Detail, error) {
	conv, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	messages, err := conversation.DecodeLog(conv.MessageLog)
	if err != nil {
		s.log.Error().Err(err).Uint("conversation_id", id).Msg("persisted message log is corrupt")
		return nil, apierrors.New(ctx, apierrors.LayerDomain, apierrors.ErrorTypeDecode, "conversation history is corrupt", err)
	}
	return &Detail{
		ID:        conv.ID,
		Name:      conv.Name,
		Messages:  messages,
		CreatedAt: conv.CreatedAt,
		UpdatedAt: conv.UpdatedAt,
	}, nil
}

// RenameConversation updates the conversation name.
func (s *DefaultService) RenameConversation(ctx context.Context, id uint, name string) error {
	if strings.TrimSpace(name) == "" {
		return apierrors.New(ctx, apierrors.LayerDomain, apierrors.ErrorTypeValidation, "new name is required", nil)
	}
	return s.repo.Rename(ctx, id, name)
}

// DeleteConversation removes the conversation permanently.
func (s *DefaultService) DeleteConversation(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

var _ Service = (*DefaultService)(nil)
