package render

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"reelpress/internal/models"
)

func TestNewParsesAllTemplates(t *testing.T) {
	rn, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for _, name := range []string{"home", "team", "gallery", "blog_index", "blog_post", "testimonials", "event", "404"} {
		if _, ok := rn.templates[name]; !ok {
			t.Errorf("template %q not parsed", name)
		}
	}
}

func TestRenderHome(t *testing.T) {
	rn, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	html, err := rn.Render("home", &PageData{
		Title:       "Home",
		Section:     "home",
		ChatEnabled: true,
		Data: map[string]any{
			"FeaturedImages": []models.GalleryImage{
				{URL: "https://media.example/gallery/images/a.jpg", AltText: "First dance"},
			},
		},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	page := string(html)
	if !strings.Contains(page, "Northlight Films") {
		t.Error("page missing site name")
	}
	if !strings.Contains(page, "First dance") {
		t.Error("page missing gallery alt text")
	}
	if !strings.Contains(page, "chat-widget") {
		t.Error("chat widget missing when enabled")
	}
}

func TestRenderChatDisabled(t *testing.T) {
	rn, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	html, err := rn.Render("home", &PageData{Title: "Home", Section: "home"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(string(html), "chat-widget") {
		t.Error("chat widget should be absent when disabled")
	}
}

func TestRenderBlogPostEscapesButKeepsBodyHTML(t *testing.T) {
	rn, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	now := time.Now()
	html, err := rn.Render("blog_post", &PageData{
		Title:   "Post",
		Section: "blog",
		Data: map[string]any{
			"Post": models.BlogPost{
				Title:       "A <script> in the title",
				Slug:        "a-post",
				PublishedAt: &now,
			},
			"BodyHTML": "<p>rendered <strong>markdown</strong></p>",
			"Author":   nil,
		},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	page := string(html)
	if strings.Contains(page, "<script> in the title") {
		t.Error("title should be HTML-escaped")
	}
	if !strings.Contains(page, "<strong>markdown</strong>") {
		t.Error("body HTML should pass through unescaped")
	}
}

func TestRenderMissingTemplate(t *testing.T) {
	rn, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := rn.Render("no-such-page", &PageData{}); err == nil {
		t.Error("expected error for unknown template")
	}
}

func TestNotFoundStatus(t *testing.T) {
	rn, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rr := httptest.NewRecorder()
	rn.NotFound(rr)

	if rr.Code != 404 {
		t.Errorf("status = %d, want 404", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Page not found") {
		t.Error("404 body missing message")
	}
}

func TestStarsFunc(t *testing.T) {
	rn, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	html, err := rn.Render("testimonials", &PageData{
		Title:   "Testimonials",
		Section: "testimonials",
		Data: map[string]any{
			"Testimonials": []models.Testimonial{
				{Name: "Ada", Content: "Wonderful", Rating: 3},
			},
		},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(html), "★★★☆☆") {
		t.Error("rating should render as three filled stars")
	}
}
