package api

import (
	"context"
	"net/http"
	"time"

	"assetdeck/internal/domain"
)

// ChatClient fetches the chat transcript. Live traffic arrives over the
// realtime channel; this client only serves the one-shot history load at
// connect time.
type ChatClient struct {
	*client
}

// NewChatClient creates a chat-service client.
func NewChatClient(baseURL string, timeout time.Duration, creds CredentialSource) *ChatClient {
	return &ChatClient{client: newClient(baseURL, timeout, creds, HeaderAuthorization)}
}

// History fetches the full message transcript. Streamed messages appended
// after this are not deduplicated against it.
func (c *ChatClient) History(ctx context.Context) ([]domain.ChatMessage, error) {
	var out []domain.ChatMessage
	err := c.do(ctx, http.MethodGet, "/chat/all", nil, nil, &out)
	return out, err
}
