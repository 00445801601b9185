package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"reelpress/internal/cache"
	"reelpress/internal/models"
)

func getPage(handler http.HandlerFunc, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func TestHomeRendersAndCaches(t *testing.T) {
	env := newTestEnv(t)

	rr := getPage(env.Public.Home, "/")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}

	if _, ok := env.PageCache.Get(context.Background(), cache.PageHome); !ok {
		t.Error("home page should be cached after first render")
	}
}

func TestHomeServedFromCache(t *testing.T) {
	env := newTestEnv(t)

	sentinel := []byte("<html>cached sentinel</html>")
	env.PageCache.Set(context.Background(), cache.PageHome, sentinel)

	rr := getPage(env.Public.Home, "/")
	if got := rr.Body.String(); got != string(sentinel) {
		t.Errorf("cached HTML not served verbatim:\n%s", got)
	}
}

func TestBlogPostDraftNotFound(t *testing.T) {
	env := newTestEnv(t)
	slug := "public-test-draft"
	t.Cleanup(func() { env.DB.Exec("DELETE FROM blog_posts WHERE slug = $1", slug) })

	if _, err := env.BlogStore.Create(&models.BlogPost{
		Title: "Draft", Slug: slug, Body: "unpublished", Published: false,
	}); err != nil {
		t.Fatalf("seed draft: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/blog/"+slug, nil)
	req = withURLParam(req, "slug", slug)
	rr := httptest.NewRecorder()
	env.Public.BlogPost(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("draft post: status = %d, want 404", rr.Code)
	}
}

func TestBlogPostRendersMarkdown(t *testing.T) {
	env := newTestEnv(t)
	slug := "public-test-published"
	t.Cleanup(func() {
		env.DB.Exec("DELETE FROM blog_posts WHERE slug = $1", slug)
		env.PageCache.Invalidate(context.Background(), cache.BlogPostKey(slug))
	})

	if _, err := env.BlogStore.Create(&models.BlogPost{
		Title: "Behind the Lens", Slug: slug,
		Body: "Some **bold** words.", Published: true,
	}); err != nil {
		t.Fatalf("seed post: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/blog/"+slug, nil)
	req = withURLParam(req, "slug", slug)
	rr := httptest.NewRecorder()
	env.Public.BlogPost(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "<strong>bold</strong>") {
		t.Errorf("markdown not rendered:\n%s", body)
	}
	if !strings.Contains(body, "Behind the Lens") {
		t.Errorf("title missing:\n%s", body)
	}
}

func TestBlogIndexDeepPagesSkipCache(t *testing.T) {
	env := newTestEnv(t)

	sentinel := []byte("<html>page one sentinel</html>")
	env.PageCache.Set(context.Background(), cache.PageBlogIndex, sentinel)

	// Page 1 comes from the cache.
	rr := getPage(env.Public.BlogIndex, "/blog")
	if rr.Body.String() != string(sentinel) {
		t.Error("page 1 should be served from the cache")
	}

	// Page 2 is always rendered fresh.
	rr = getPage(env.Public.BlogIndex, "/blog?page=2")
	if rr.Body.String() == string(sentinel) {
		t.Error("page 2 must not reuse the page 1 cache entry")
	}
}

func TestEventPageRenders(t *testing.T) {
	env := newTestEnv(t)

	rr := getPage(env.Public.Event, "/event")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "/api/booking") {
		t.Error("event page should contain the booking form")
	}
}

func TestNotFoundPage(t *testing.T) {
	env := newTestEnv(t)

	rr := getPage(env.Public.NotFound, "/nope")
	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}
