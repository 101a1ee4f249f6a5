package llmprovider

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/NguyenLeDuy2k7/Chatbot-AI/internal/domain/llm"
)

// Client implements the llm.Provider interface against an OpenAI-compatible
// chat-completions endpoint (LM Studio, llama.cpp server, etc.).
type Client struct {
	httpClient *resty.Client
	url        string
	model      string
}

// NewClient creates a Resty-backed client with a bounded request timeout.
func NewClient(url, model string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		httpClient: resty.New().
			SetHeader("Content-Type", "application/json").
			SetTimeout(timeout),
		url:   url,
		model: model,
	}
}

// Complete sends the assembled context and returns the assistant reply text.
// Every call is a fresh request; the client holds no state and never retries.
func (c *Client) Complete(ctx context.Context, messages []llm.ChatMessage) (string, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(llm.ChatCompletionRequest{
			Model:    c.model,
			Messages: messages,
			Stream:   false,
		}).
		Post(c.url)
	if err != nil {
		return "", &llm.UpstreamError{Kind: classifyTransportError(err), Err: err}
	}

	if resp.IsError() {
		return "", &llm.UpstreamError{Kind: llm.UpstreamBadStatus, StatusCode: resp.StatusCode()}
	}

	var completion llm.ChatCompletionResponse
	if err := json.Unmarshal(resp.Body(), &completion); err != nil {
		return "", &llm.UpstreamError{Kind: llm.UpstreamMalformedBody, Err: err}
	}
	if len(completion.Choices) == 0 {
		return "", &llm.UpstreamError{Kind: llm.UpstreamMalformedBody, Err: errors.New("response contains no choices")}
	}

	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}

func classifyTransportError(err error) llm.UpstreamErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return llm.UpstreamTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return llm.UpstreamTimeout
	}
	return llm.UpstreamUnreachable
}

var _ llm.Provider = (*Client)(nil)
