// Package chat drives the chat-assist conversation. The surface
// degrades in-band: a failed exchange appends an assistant error
// message to the transcript instead of raising a notification.
package chat

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/medibook/medibook/internal/platform/api"
)

// errorReply is the in-band assistant message appended on any failure.
const errorReply = "Error fetching response."

// Backend is the slice of the API client the conversation needs.
type Backend interface {
	Chat(ctx context.Context, messages []api.ChatMessage) (api.ChatMessage, error)
}

// Conversation is one chat-assist transcript.
type Conversation struct {
	mu       sync.Mutex
	backend  Backend
	log      zerolog.Logger
	messages []api.ChatMessage
}

// NewConversation builds an empty Conversation.
func NewConversation(backend Backend, logger zerolog.Logger) *Conversation {
	return &Conversation{
		backend: backend,
		log:     logger.With().Str("component", "chat").Logger(),
	}
}

// Send submits input as a user message and appends the assistant's
// reply to the transcript. Blank input is a no-op. Only the new user
// message is sent upstream; the endpoint is stateless per exchange.
// The returned message is the assistant's reply (or the in-band error
// message).
func (c *Conversation) Send(ctx context.Context, input string) (api.ChatMessage, bool) {
	if strings.TrimSpace(input) == "" {
		return api.ChatMessage{}, false
	}

	user := api.ChatMessage{Role: api.RoleUser, Content: input}
	c.mu.Lock()
	c.messages = append(c.messages, user)
	c.mu.Unlock()

	reply, err := c.backend.Chat(ctx, []api.ChatMessage{user})
	if err != nil {
		c.log.Error().Err(err).Msg("chat exchange failed")
		reply = api.ChatMessage{Role: api.RoleAssistant, Content: errorReply}
	}

	c.mu.Lock()
	c.messages = append(c.messages, reply)
	c.mu.Unlock()
	return reply, true
}

// Messages returns a copy of the transcript in order.
func (c *Conversation) Messages() []api.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]api.ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}
