package llmprovider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NguyenLeDuy2k7/Chatbot-AI/internal/domain/llm"
)

func upstreamKind(t *testing.T, err error) llm.UpstreamErrorKind {
	t.Helper()
	var upstreamErr *llm.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	return upstreamErr.Kind
}

func TestCompleteReturnsReplyText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req llm.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		assert.False(t, req.Stream)
		require.NotEmpty(t, req.Messages)
		assert.Equal(t, "system", req.Messages[0].Role)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(llm.ChatCompletionResponse{
			Choices: []llm.Choice{
				{Message: llm.ChatMessage{Role: "assistant", Content: "  hello there \n"}},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-model", 5*time.Second)
	reply, err := client.Complete(context.Background(), []llm.ChatMessage{
		{Role: "system", Content: "be helpful"},
		{Role: "user", Content: "hi"},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello there", reply)
}

func TestCompleteBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-model", 5*time.Second)
	_, err := client.Complete(context.Background(), []llm.ChatMessage{{Role: "user", Content: "hi"}})
	require.Error(t, err)
	assert.Equal(t, llm.UpstreamBadStatus, upstreamKind(t, err))

	var upstreamErr *llm.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, http.StatusInternalServerError, upstreamErr.StatusCode)
}

func TestCompleteMalformedBody(t *testing.T) {
	cases := map[string]string{
		"not json":  "this is not json at all",
		"no choice": `{"choices":[]}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(body))
			}))
			defer server.Close()

			client := NewClient(server.URL, "test-model", 5*time.Second)
			_, err := client.Complete(context.Background(), []llm.ChatMessage{{Role: "user", Content: "hi"}})
			require.Error(t, err)
			assert.Equal(t, llm.UpstreamMalformedBody, upstreamKind(t, err))
		})
	}
}

func TestCompleteUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listens here anymore

	client := NewClient(server.URL, "test-model", 5*time.Second)
	_, err := client.Complete(context.Background(), []llm.ChatMessage{{Role: "user", Content: "hi"}})
	require.Error(t, err)
	assert.Equal(t, llm.UpstreamUnreachable, upstreamKind(t, err))
}

func TestCompleteTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer func() {
		close(release)
		server.Close()
	}()

	client := NewClient(server.URL, "test-model", 50*time.Millisecond)
	_, err := client.Complete(context.Background(), []llm.ChatMessage{{Role: "user", Content: "hi"}})
	require.Error(t, err)
	assert.Equal(t, llm.UpstreamTimeout, upstreamKind(t, err))
}
