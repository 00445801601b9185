package ai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// anthropicProvider streams completions from the Anthropic Messages API
// (POST /v1/messages with "stream": true).
type anthropicProvider struct {
	config ProviderConfig
	client *http.Client
}

// newAnthropic creates a new Anthropic provider.
func newAnthropic(cfg ProviderConfig) *anthropicProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.anthropic.com"
	}
	if cfg.Model == "" {
		cfg.Model = "claude-sonnet-4-20250514"
	}
	return &anthropicProvider{
		config: cfg,
		client: &http.Client{Timeout: streamTimeout},
	}
}

func (p *anthropicProvider) Name() string { return "anthropic" }

// Stream sends the conversation to the Messages API and forwards
// content_block_delta text fragments to onDelta as they arrive.
func (p *anthropicProvider) Stream(ctx context.Context, system string, messages []Message, onDelta func(string) error) error {
	body := anthropicRequest{
		Model:     p.config.Model,
		MaxTokens: 1024,
		System:    system,
		Messages:  messages,
		Stream:    true,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("anthropic marshal: %w", err)
	}

	url := p.config.BaseURL + "/v1/messages"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("anthropic request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", p.config.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("anthropic http: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("anthropic API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	// The response is a server-sent event stream. Each event's data line
	// carries a JSON payload; text arrives in content_block_delta events.
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		data := strings.TrimPrefix(line, "data: ")

		var event anthropicStreamEvent
		if err := json.Unmarshal([]byte(data), &event); err != nil {
			continue // unknown event shape, skip
		}

		switch event.Type {
		case "content_block_delta":
			if event.Delta.Type == "text_delta" && event.Delta.Text != "" {
				if err := onDelta(event.Delta.Text); err != nil {
					return err
				}
			}
		case "error":
			return fmt.Errorf("anthropic stream error: %s", event.Error.Message)
		case "message_stop":
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("anthropic read stream: %w", err)
	}
	return nil
}

// --- Anthropic Messages API types ---

type anthropicRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []Message `json:"messages"`
	Stream    bool      `json:"stream"`
}

type anthropicStreamEvent struct {
	Type  string `json:"type"`
	Delta struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"delta"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}
