package ai

import (
	"testing"
)

func TestNewSelectsProvider(t *testing.T) {
	p, err := New("openai", ProviderConfig{APIKey: "k"})
	if err != nil {
		t.Fatalf("New openai: %v", err)
	}
	if p.Name() != "openai" {
		t.Errorf("Name() = %q, want openai", p.Name())
	}

	p, err = New("anthropic", ProviderConfig{APIKey: "k"})
	if err != nil {
		t.Fatalf("New anthropic: %v", err)
	}
	if p.Name() != "anthropic" {
		t.Errorf("Name() = %q, want anthropic", p.Name())
	}
}

func TestNewWithoutKeyDisablesChat(t *testing.T) {
	p, err := New("anthropic", ProviderConfig{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if p != nil {
		t.Error("expected nil provider when no API key is set")
	}
}

func TestNewUnknownProvider(t *testing.T) {
	if _, err := New("llama-in-my-basement", ProviderConfig{APIKey: "k"}); err == nil {
		t.Error("expected error for unknown provider name")
	}
}

func TestTrimHistory(t *testing.T) {
	short := []Message{{Role: "user", Content: "hi"}}
	if got := TrimHistory(short); len(got) != 1 {
		t.Errorf("short history trimmed to %d", len(got))
	}

	long := make([]Message, maxHistory+7)
	for i := range long {
		long[i] = Message{Role: "user", Content: "m"}
	}
	long[len(long)-1].Content = "latest"

	got := TrimHistory(long)
	if len(got) != maxHistory {
		t.Errorf("trimmed length = %d, want %d", len(got), maxHistory)
	}
	if got[len(got)-1].Content != "latest" {
		t.Error("most recent message must survive trimming")
	}
}

func TestValidateMessages(t *testing.T) {
	tests := []struct {
		name     string
		messages []Message
		wantErr  bool
	}{
		{
			"valid single turn",
			[]Message{{Role: "user", Content: "hello"}},
			false,
		},
		{
			"valid multi turn",
			[]Message{
				{Role: "user", Content: "hello"},
				{Role: "assistant", Content: "hi there"},
				{Role: "user", Content: "do you film weddings?"},
			},
			false,
		},
		{"empty conversation", nil, true},
		{
			"invalid role",
			[]Message{{Role: "system", Content: "sneaky override"}},
			true,
		},
		{
			"blank content",
			[]Message{{Role: "user", Content: "   "}},
			true,
		},
		{
			"ends with assistant",
			[]Message{
				{Role: "user", Content: "hello"},
				{Role: "assistant", Content: "hi"},
			},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMessages(tt.messages)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMessages() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
