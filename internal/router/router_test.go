// Package router tests verify the HTTP routing configuration, middleware
// chains, and the health endpoint.
package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"reelpress/internal/handlers"
	"reelpress/internal/middleware"
	"reelpress/internal/render"
	"reelpress/internal/session"
)

// newTestRouter builds a router with stub API handlers. The session
// Redis client points nowhere, which is fine: requests without a
// session cookie never touch Redis.
func newTestRouter(t *testing.T, publicLimit int) http.Handler {
	t.Helper()

	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	rc := redis.NewClient(&redis.Options{Addr: "localhost:1"})
	t.Cleanup(func() { rc.Close() })

	stub := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"success":true}`))
	}

	var limiter *middleware.RateLimiter
	if publicLimit > 0 {
		limiter = middleware.NewRateLimiter(publicLimit, time.Minute)
		t.Cleanup(limiter.Stop)
	}

	return New(Deps{
		Sessions:      session.NewStore(rc, false),
		Admin:         &handlers.Admin{},
		Auth:          &handlers.Auth{},
		Public:        handlers.NewPublic(renderer, nil, nil, nil, nil, nil, nil, nil, false),
		Contact:       stub,
		Booking:       stub,
		Chat:          stub,
		PublicLimiter: limiter,
	})
}

// csrfCookie fetches the health endpoint and returns the CSRF cookie
// the middleware set on the response.
func csrfCookie(t *testing.T, r http.Handler) *http.Cookie {
	t.Helper()

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	for _, c := range rr.Result().Cookies() {
		if c.Name == middleware.CSRFCookieName {
			return c
		}
	}
	t.Fatal("no CSRF cookie set")
	return nil
}

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/health", nil)

	healthHandler(w, r)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type: got %q, want application/json", ct)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field: got %q, want ok", body["status"])
	}
}

func TestStaticAssetsServed(t *testing.T) {
	r := newTestRouter(t, 0)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/static/site.css", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("GET /static/site.css: got %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "site-header") {
		t.Error("site.css content not served")
	}
}

func TestPublicAPIRequiresCSRF(t *testing.T) {
	r := newTestRouter(t, 0)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader("{}"))
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("POST without token: got %d, want 403", rr.Code)
	}
}

func TestPublicAPIAcceptsCSRFHeader(t *testing.T) {
	r := newTestRouter(t, 0)
	cookie := csrfCookie(t, r)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader("{}"))
	req.AddCookie(cookie)
	req.Header.Set(middleware.CSRFHeaderName, cookie.Value)
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("POST with token: got %d, want 200", rr.Code)
	}
}

func TestPublicAPIRateLimited(t *testing.T) {
	r := newTestRouter(t, 1)
	cookie := csrfCookie(t, r)

	post := func() int {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader("{}"))
		req.AddCookie(cookie)
		req.Header.Set(middleware.CSRFHeaderName, cookie.Value)
		r.ServeHTTP(rr, req)
		return rr.Code
	}

	if got := post(); got != http.StatusOK {
		t.Fatalf("first request: got %d, want 200", got)
	}
	if got := post(); got != http.StatusTooManyRequests {
		t.Errorf("second request: got %d, want 429", got)
	}
}

func TestAdminAPIRequiresAuth(t *testing.T) {
	r := newTestRouter(t, 0)
	cookie := csrfCookie(t, r)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/api/posts/", nil)
	req.AddCookie(cookie)
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated admin request: got %d, want 401", rr.Code)
	}
}

func TestUnknownPageNotFound(t *testing.T) {
	r := newTestRouter(t, 0)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/no-such-page", nil))

	if rr.Code != http.StatusNotFound {
		t.Errorf("got %d, want 404", rr.Code)
	}
}
