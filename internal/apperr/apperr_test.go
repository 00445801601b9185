package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", Validation("title is required"), KindValidation},
		{"not found", NotFound("team member"), KindNotFound},
		{"upstream", Upstream("upload failed", errors.New("boom")), KindUpstream},
		{"wrapped tagged error", fmt.Errorf("handler: %w", NotFound("post")), KindNotFound},
		{"plain error defaults to upstream", errors.New("pq: connection refused"), KindUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMessageOfSanitizesUnknownErrors(t *testing.T) {
	// Infrastructure detail must never reach the client.
	err := errors.New("dial tcp 10.0.0.5:5432: connect: connection refused")
	if got := MessageOf(err); got != "unexpected error" {
		t.Errorf("MessageOf() = %q, want generic message", got)
	}
}

func TestMessageOfKeepsTaggedMessage(t *testing.T) {
	err := fmt.Errorf("create testimonial: %w", Validation("rating must be between 1 and 5"))
	if got := MessageOf(err); got != "rating must be between 1 and 5" {
		t.Errorf("MessageOf() = %q", got)
	}
}

func TestUpstreamUnwrap(t *testing.T) {
	cause := errors.New("s3 delete: access denied")
	err := Upstream("failed to delete file", cause)
	if !errors.Is(err, cause) {
		t.Error("expected Unwrap to expose the cause")
	}
	if err.Message != "failed to delete file" {
		t.Errorf("Message = %q", err.Message)
	}
}
