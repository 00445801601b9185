package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func chatBody(messages string) *strings.Reader {
	return strings.NewReader(`{"messages":` + messages + `}`)
}

func TestChatStreamsSSE(t *testing.T) {
	handler := Chat(&mockChatProvider{chunks: []string{"Hello ", "there"}})

	req := httptest.NewRequest(http.MethodPost, "/api/chat",
		chatBody(`[{"role":"user","content":"hi"}]`))
	rr := httptest.NewRecorder()
	handler(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\n%s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q, want text/event-stream", ct)
	}

	body := rr.Body.String()
	if !strings.Contains(body, "data: Hello ") {
		t.Errorf("missing first chunk:\n%s", body)
	}
	if !strings.Contains(body, "data: there") {
		t.Errorf("missing second chunk:\n%s", body)
	}
	if !strings.Contains(body, "event: done") {
		t.Errorf("missing done event:\n%s", body)
	}
}

func TestChatMultiLineChunk(t *testing.T) {
	handler := Chat(&mockChatProvider{chunks: []string{"line one\nline two"}})

	req := httptest.NewRequest(http.MethodPost, "/api/chat",
		chatBody(`[{"role":"user","content":"hi"}]`))
	rr := httptest.NewRecorder()
	handler(rr, req)

	// A newline inside a chunk becomes two data lines in the same event.
	body := rr.Body.String()
	if !strings.Contains(body, "data: line one\ndata: line two\n\n") {
		t.Errorf("multi-line chunk not split into data lines:\n%s", body)
	}
}

func TestChatStreamError(t *testing.T) {
	handler := Chat(&mockChatProvider{
		chunks: []string{"partial"},
		err:    errors.New("upstream went away"),
	})

	req := httptest.NewRequest(http.MethodPost, "/api/chat",
		chatBody(`[{"role":"user","content":"hi"}]`))
	rr := httptest.NewRecorder()
	handler(rr, req)

	body := rr.Body.String()
	if !strings.Contains(body, "data: partial") {
		t.Errorf("partial output should still be delivered:\n%s", body)
	}
	if !strings.Contains(body, "event: error") {
		t.Errorf("missing error event:\n%s", body)
	}
	if strings.Contains(body, "event: done") {
		t.Errorf("done event must not follow an error:\n%s", body)
	}
}

func TestChatDisabled(t *testing.T) {
	handler := Chat(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/chat",
		chatBody(`[{"role":"user","content":"hi"}]`))
	status, resp := doJSON(t, handler, req)

	if status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", status)
	}
	if resp.Success {
		t.Error("success should be false")
	}
}

func TestChatRejectsBadHistory(t *testing.T) {
	handler := Chat(&mockChatProvider{chunks: []string{"x"}})

	cases := []struct {
		name     string
		messages string
	}{
		{"empty", `[]`},
		{"bad role", `[{"role":"system","content":"sneaky"}]`},
		{"blank content", `[{"role":"user","content":"  "}]`},
		{"ends with assistant", `[{"role":"user","content":"a"},{"role":"assistant","content":"b"}]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/chat", chatBody(tc.messages))
			status, _ := doJSON(t, handler, req)
			if status != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", status)
			}
		})
	}
}
