package chat_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NguyenLeDuy2k7/Chatbot-AI/internal/domain/chat"
	"github.com/NguyenLeDuy2k7/Chatbot-AI/internal/domain/conversation"
	"github.com/NguyenLeDuy2k7/Chatbot-AI/internal/domain/llm"
	conversationrepo "github.com/NguyenLeDuy2k7/Chatbot-AI/internal/infrastructure/repository/conversation"
	"github.com/NguyenLeDuy2k7/Chatbot-AI/internal/utils/apierrors"
)

// MockProvider is a mock implementation of llm.Provider for testing.
type MockProvider struct {
	CompleteFunc func(ctx context.Context, messages []llm.ChatMessage) (string, error)
}

func (m *MockProvider) Complete(ctx context.Context, messages []llm.ChatMessage) (string, error) {
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, messages)
	}
	return "", nil
}

const testSystemPrompt = "You are a helpful AI assistant."

func newTestService(provider llm.Provider) (*chat.DefaultService, *conversationrepo.InMemoryRepository) {
	repo := conversationrepo.NewInMemoryRepository()
	svc := chat.NewService(repo, provider, testSystemPrompt, zerolog.Nop())
	return svc, repo
}

func errorType(t *testing.T, err error) apierrors.ErrorType {
	t.Helper()
	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	return apiErr.Type
}

func TestChatPersistsUserAndAssistantTurns(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(&MockProvider{
		CompleteFunc: func(ctx context.Context, messages []llm.ChatMessage) (string, error) {
			return "hello", nil
		},
	})

	created, err := svc.NewConversation(ctx)
	require.NoError(t, err)

	result, err := svc.Chat(ctx, &created.ID, "hi")
	require.NoError(t, err)
	assert.Equal(t, created.ID, result.ConversationID)
	assert.Equal(t, "hello", result.Reply)

	detail, err := svc.GetConversation(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []conversation.Message{
		{Role: conversation.RoleUser, Content: "hi"},
		{Role: conversation.RoleAssistant, Content: "hello"},
	}, detail.Messages)
}

func TestChatBuildsOrderedContext(t *testing.T) {
	ctx := context.Background()
	var captured []llm.ChatMessage
	svc, _ := newTestService(&MockProvider{
		CompleteFunc: func(ctx context.Context, messages []llm.ChatMessage) (string, error) {
			captured = messages
			return "fine, thanks", nil
		},
	})

	created, err := svc.NewConversation(ctx)
	require.NoError(t, err)

	_, err = svc.Chat(ctx, &created.ID, "hi")
	require.NoError(t, err)
	_, err = svc.Chat(ctx, &created.ID, "how are you?")
	require.NoError(t, err)

	require.Len(t, captured, 4)
	assert.Equal(t, llm.ChatMessage{Role: "system", Content: testSystemPrompt}, captured[0])
	assert.Equal(t, llm.ChatMessage{Role: "user", Content: "hi"}, captured[1])
	assert.Equal(t, "assistant", captured[2].Role)
	assert.Equal(t, llm.ChatMessage{Role: "user", Content: "how are you?"}, captured[3])
}

func TestChatAutoCreatesConversation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(&MockProvider{
		CompleteFunc: func(ctx context.Context, messages []llm.ChatMessage) (string, error) {
			return "welcome", nil
		},
	})

	// No id at all.
	result, err := svc.Chat(ctx, nil, "hi")
	require.NoError(t, err)
	assert.NotZero(t, result.ConversationID)

	// An id that does not exist.
	absent := result.ConversationID + 100
	second, err := svc.Chat(ctx, &absent, "hi again")
	require.NoError(t, err)
	assert.NotEqual(t, absent, second.ConversationID)
	assert.NotEqual(t, result.ConversationID, second.ConversationID)

	detail, err := svc.GetConversation(ctx, second.ConversationID)
	require.NoError(t, err)
	assert.Equal(t, conversation.DefaultName, detail.Name)
	require.Len(t, detail.Messages, 2)
}

func TestChatUpstreamFailureDiscardsUserTurn(t *testing.T) {
	kinds := map[llm.UpstreamErrorKind]apierrors.ErrorType{
		llm.UpstreamUnreachable:   apierrors.ErrorTypeUpstreamDown,
		llm.UpstreamTimeout:       apierrors.ErrorTypeUpstreamTimeout,
		llm.UpstreamBadStatus:     apierrors.ErrorTypeUpstreamBadStatus,
		llm.UpstreamMalformedBody: apierrors.ErrorTypeUpstreamMalformed,
	}

	for kind, wantType := range kinds {
		t.Run(string(kind), func(t *testing.T) {
			ctx := context.Background()
			svc, _ := newTestService(&MockProvider{
				CompleteFunc: func(ctx context.Context, messages []llm.ChatMessage) (string, error) {
					return "", &llm.UpstreamError{Kind: kind, StatusCode: 500, Err: errors.New("boom")}
				},
			})

			created, err := svc.NewConversation(ctx)
			require.NoError(t, err)

			_, err = svc.Chat(ctx, &created.ID, "hi")
			require.Error(t, err)
			assert.Equal(t, wantType, errorType(t, err))

			// The persisted log must equal its pre-turn state.
			detail, err := svc.GetConversation(ctx, created.ID)
			require.NoError(t, err)
			assert.Empty(t, detail.Messages)
		})
	}
}

func TestChatEmptyMessageRejected(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(&MockProvider{})

	_, err := svc.Chat(ctx, nil, "   ")
	require.Error(t, err)
	assert.Equal(t, apierrors.ErrorTypeValidation, errorType(t, err))
}

func TestChatCorruptLogSurfacesDecodeError(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(&MockProvider{})

	created, err := svc.NewConversation(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.SaveMessages(ctx, created.ID, "{{{not json"))

	_, err = svc.Chat(ctx, &created.ID, "hi")
	require.Error(t, err)
	assert.Equal(t, apierrors.ErrorTypeDecode, errorType(t, err))

	_, err = svc.GetConversation(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, apierrors.ErrorTypeDecode, errorType(t, err))
}

func TestConcurrentTurnsOnSameConversation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(&MockProvider{
		CompleteFunc: func(ctx context.Context, messages []llm.ChatMessage) (string, error) {
			// Hold the turn open long enough for the turns to overlap.
			time.Sleep(20 * time.Millisecond)
			last := messages[len(messages)-1]
			return "reply to " + last.Content, nil
		},
	})

	created, err := svc.NewConversation(ctx)
	require.NoError(t, err)

	const turns = 4
	var wg sync.WaitGroup
	errs := make([]error, turns)
	for i := 0; i < turns; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Chat(ctx, &created.ID, fmt.Sprintf("message %d", i))
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "turn %d failed", i)
	}

	detail, err := svc.GetConversation(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, detail.Messages, 2*turns, "no turn may be lost")

	// Turns interleave in some serialized order: user then matching reply.
	seen := make(map[string]bool)
	for i := 0; i < len(detail.Messages); i += 2 {
		user := detail.Messages[i]
		reply := detail.Messages[i+1]
		assert.Equal(t, conversation.RoleUser, user.Role)
		assert.Equal(t, conversation.RoleAssistant, reply.Role)
		assert.Equal(t, "reply to "+user.Content, reply.Content)
		assert.False(t, seen[user.Content], "duplicate turn %q", user.Content)
		seen[user.Content] = true
	}
}

func TestLifecycleOperations(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(&MockProvider{})

	first, err := svc.NewConversation(ctx)
	require.NoError(t, err)
	second, err := svc.NewConversation(ctx)
	require.NoError(t, err)

	summaries, err := svc.ListConversations(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Less(t, summaries[0].ID, summaries[1].ID)

	require.NoError(t, svc.RenameConversation(ctx, first.ID, "project notes"))
	detail, err := svc.GetConversation(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "project notes", detail.Name)

	err = svc.RenameConversation(ctx, first.ID, "  ")
	require.Error(t, err)
	assert.Equal(t, apierrors.ErrorTypeValidation, errorType(t, err))

	require.NoError(t, svc.DeleteConversation(ctx, second.ID))
	_, err = svc.GetConversation(ctx, second.ID)
	require.Error(t, err)
	assert.Equal(t, apierrors.ErrorTypeNotFound, errorType(t, err))

	assert.Equal(t, apierrors.ErrorTypeNotFound, errorType(t, svc.RenameConversation(ctx, second.ID, "ghost")))
	assert.Equal(t, apierrors.ErrorTypeNotFound, errorType(t, svc.DeleteConversation(ctx, second.ID)))
}

func TestDeletedIDIsNeverReused(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(&MockProvider{})

	created, err := svc.NewConversation(ctx)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteConversation(ctx, created.ID))

	for i := 0; i < 5; i++ {
		next, err := svc.NewConversation(ctx)
		require.NoError(t, err)
		assert.NotEqual(t, created.ID, next.ID)
	}
}
