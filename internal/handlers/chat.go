package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"reelpress/internal/ai"
	"reelpress/internal/apperr"
)

type chatRequest struct {
	Messages []ai.Message `json:"messages"`
}

// Chat streams an LLM reply for the public chat widget as server-sent
// events. Each token arrives as a "data:" line; the stream ends with
// "event: done". Upstream failures after streaming has begun surface as
// an "event: error" since the status line is already gone.
func Chat(provider ai.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if provider == nil {
			respondErr(w, apperr.Validation("chat is not available"))
			return
		}

		var req chatRequest
		if err := decodeJSON(r, &req); err != nil {
			respondErr(w, err)
			return
		}
		if err := ai.ValidateMessages(req.Messages); err != nil {
			respondErr(w, apperr.Validation(err.Error()))
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			respondErr(w, apperr.Upstream("streaming unsupported", nil))
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)

		messages := ai.TrimHistory(req.Messages)
		err := provider.Stream(r.Context(), ai.SystemPrompt, messages, func(text string) error {
			// SSE data must not contain raw newlines; split into
			// multiple data lines within one event.
			for _, line := range strings.Split(text, "\n") {
				if _, err := fmt.Fprintf(w, "data: %s\n", line); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprint(w, "\n"); err != nil {
				return err
			}
			flusher.Flush()
			return nil
		})
		if err != nil {
			slog.Error("chat stream", "provider", provider.Name(), "error", err)
			fmt.Fprint(w, "event: error\ndata: the assistant is unavailable right now\n\n")
			flusher.Flush()
			return
		}

		fmt.Fprint(w, "event: done\ndata: \n\n")
		flusher.Flush()
	}
}
