// Package ai streams chat completions from an LLM provider for the
// public site's chat widget. Two providers are supported, OpenAI and
// Anthropic, selected by configuration; both stream tokens back so the
// widget can render the reply as it arrives.
package ai

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Message is a single turn in a chat conversation.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Provider streams a chat completion. onDelta is called once per text
// fragment as it arrives from the upstream API; returning an error from
// the callback aborts the stream.
type Provider interface {
	Stream(ctx context.Context, system string, messages []Message, onDelta func(text string) error) error
	Name() string
}

// ProviderConfig holds the credentials and settings for a provider.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// streamTimeout bounds a single completion, including all streamed tokens.
const streamTimeout = 120 * time.Second

// New constructs the configured provider. Returns nil with no error
// when no API key is set, which disables the chat widget.
func New(name string, cfg ProviderConfig) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, nil
	}
	switch name {
	case "openai":
		return newOpenAI(cfg), nil
	case "anthropic":
		return newAnthropic(cfg), nil
	default:
		return nil, fmt.Errorf("ai: unknown provider %q", name)
	}
}

// maxHistory caps how many prior turns are forwarded upstream. The
// widget keeps the full transcript client-side; we only need recent
// context for a coherent reply.
const maxHistory = 20

// TrimHistory drops the oldest turns beyond maxHistory, always keeping
// the most recent message.
func TrimHistory(messages []Message) []Message {
	if len(messages) <= maxHistory {
		return messages
	}
	return messages[len(messages)-maxHistory:]
}

// ValidateMessages rejects transcripts the upstream APIs would refuse.
func ValidateMessages(messages []Message) error {
	if len(messages) == 0 {
		return fmt.Errorf("ai: empty conversation")
	}
	for i, m := range messages {
		if m.Role != "user" && m.Role != "assistant" {
			return fmt.Errorf("ai: message %d has invalid role %q", i, m.Role)
		}
		if strings.TrimSpace(m.Content) == "" {
			return fmt.Errorf("ai: message %d is empty", i)
		}
	}
	if messages[len(messages)-1].Role != "user" {
		return fmt.Errorf("ai: conversation must end with a user message")
	}
	return nil
}
