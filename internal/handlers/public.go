package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"reelpress/internal/cache"
	"reelpress/internal/markdown"
	"reelpress/internal/models"
	"reelpress/internal/render"
	"reelpress/internal/store"
)

// blogPageSize is the number of posts per public blog index page.
const blogPageSize = 10

// homeSectionLimit caps how many items each homepage section shows.
const homeSectionLimit = 6

// Public groups the public site page handlers.
type Public struct {
	renderer         *render.Renderer
	blogStore        *store.BlogStore
	authorStore      *store.AuthorStore
	teamStore        *store.TeamStore
	galleryStore     *store.GalleryStore
	testimonialStore *store.TestimonialStore
	orderStore       *cache.OrderStore
	pageCache        *cache.PageCache
	chatEnabled      bool
}

// NewPublic creates a new Public handler group.
func NewPublic(
	renderer *render.Renderer,
	blogStore *store.BlogStore,
	authorStore *store.AuthorStore,
	teamStore *store.TeamStore,
	galleryStore *store.GalleryStore,
	testimonialStore *store.TestimonialStore,
	orderStore *cache.OrderStore,
	pageCache *cache.PageCache,
	chatEnabled bool,
) *Public {
	return &Public{
		renderer:         renderer,
		blogStore:        blogStore,
		authorStore:      authorStore,
		teamStore:        teamStore,
		galleryStore:     galleryStore,
		testimonialStore: testimonialStore,
		orderStore:       orderStore,
		pageCache:        pageCache,
		chatEnabled:      chatEnabled,
	}
}

// servePage renders a page through the cache: cached HTML is served
// as-is, otherwise build runs, the result is cached, and served.
func (p *Public) servePage(w http.ResponseWriter, r *http.Request, cacheKey string, build func(ctx context.Context) ([]byte, error)) {
	if html, ok := p.pageCache.Get(r.Context(), cacheKey); ok {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(html)
		return
	}

	html, err := build(r.Context())
	if err != nil {
		slog.Error("building page", "key", cacheKey, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.pageCache.Set(r.Context(), cacheKey, html)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

// Home renders the landing page with featured work, latest posts, and
// a few testimonials.
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	p.servePage(w, r, cache.PageHome, func(ctx context.Context) ([]byte, error) {
		images, err := p.galleryStore.ListImages()
		if err != nil {
			return nil, err
		}
		order, _, err := p.orderStore.Get(ctx, cache.OrderGalleryImages)
		if err != nil {
			return nil, err
		}
		images = cache.Apply(images, order, func(img models.GalleryImage) uuid.UUID { return img.ID })
		if len(images) > homeSectionLimit {
			images = images[:homeSectionLimit]
		}

		posts, err := p.blogStore.ListPublished(3, 0)
		if err != nil {
			return nil, err
		}

		testimonials, err := p.testimonialStore.List()
		if err != nil {
			return nil, err
		}
		if len(testimonials) > 3 {
			testimonials = testimonials[:3]
		}

		return p.renderer.Render("home", &render.PageData{
			Title:           "Home",
			MetaDescription: "Northlight Films crafts wedding films, corporate video, and event coverage.",
			Section:         "home",
			ChatEnabled:     p.chatEnabled,
			Data: map[string]any{
				"FeaturedImages": images,
				"LatestPosts":    posts,
				"Testimonials":   testimonials,
			},
		})
	})
}

// Team renders the crew page in display order.
func (p *Public) Team(w http.ResponseWriter, r *http.Request) {
	p.servePage(w, r, cache.PageTeam, func(ctx context.Context) ([]byte, error) {
		members, err := p.teamStore.List()
		if err != nil {
			return nil, err
		}
		order, _, err := p.orderStore.Get(ctx, cache.OrderTeam)
		if err != nil {
			return nil, err
		}
		members = cache.Apply(members, order, func(m models.TeamMember) uuid.UUID { return m.ID })

		return p.renderer.Render("team", &render.PageData{
			Title:       "The Crew",
			Section:     "team",
			ChatEnabled: p.chatEnabled,
			Data:        map[string]any{"Members": members},
		})
	})
}

// Gallery renders images and videos in display order.
func (p *Public) Gallery(w http.ResponseWriter, r *http.Request) {
	p.servePage(w, r, cache.PageGallery, func(ctx context.Context) ([]byte, error) {
		images, err := p.galleryStore.ListImages()
		if err != nil {
			return nil, err
		}
		imgOrder, _, err := p.orderStore.Get(ctx, cache.OrderGalleryImages)
		if err != nil {
			return nil, err
		}
		images = cache.Apply(images, imgOrder, func(img models.GalleryImage) uuid.UUID { return img.ID })

		videos, err := p.galleryStore.ListVideos()
		if err != nil {
			return nil, err
		}
		vidOrder, _, err := p.orderStore.Get(ctx, cache.OrderGalleryVideos)
		if err != nil {
			return nil, err
		}
		videos = cache.Apply(videos, vidOrder, func(v models.GalleryVideo) uuid.UUID { return v.ID })

		return p.renderer.Render("gallery", &render.PageData{
			Title:       "Gallery",
			Section:     "gallery",
			ChatEnabled: p.chatEnabled,
			Data: map[string]any{
				"Images": images,
				"Videos": videos,
			},
		})
	})
}

// BlogIndex renders the published post listing. Page one is cached;
// deeper pages render fresh since they are rarely visited.
func (p *Public) BlogIndex(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	build := func(ctx context.Context) ([]byte, error) {
		posts, err := p.blogStore.ListPublished(blogPageSize, (page-1)*blogPageSize)
		if err != nil {
			return nil, err
		}
		total, err := p.blogStore.CountPublished()
		if err != nil {
			return nil, err
		}

		return p.renderer.Render("blog_index", &render.PageData{
			Title:       "Blog",
			Section:     "blog",
			ChatEnabled: p.chatEnabled,
			Data: map[string]any{
				"Posts":    posts,
				"HasMore":  page*blogPageSize < total,
				"NextPage": page + 1,
			},
		})
	}

	if page == 1 {
		p.servePage(w, r, cache.PageBlogIndex, build)
		return
	}

	html, err := build(r.Context())
	if err != nil {
		slog.Error("building blog page", "page", page, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

// BlogPost renders a single published post with its markdown body
// converted to HTML. Drafts 404 on the public site.
func (p *Public) BlogPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	if html, ok := p.pageCache.Get(r.Context(), cache.BlogPostKey(slug)); ok {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(html)
		return
	}

	post, err := p.blogStore.FindBySlug(slug)
	if err != nil {
		slog.Error("loading post", "slug", slug, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if post == nil || !post.Published {
		p.renderer.NotFound(w)
		return
	}

	bodyHTML, err := markdown.ToHTML(post.Body)
	if err != nil {
		slog.Error("rendering post body", "slug", slug, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var author *models.Author
	if post.AuthorID != nil {
		author, err = p.authorStore.FindByID(*post.AuthorID)
		if err != nil {
			slog.Warn("loading post author", "slug", slug, "error", err)
		}
	}

	html, err := p.renderer.Render("blog_post", &render.PageData{
		Title:           post.Title,
		MetaDescription: deref(post.MetaDescription),
		Section:         "blog",
		ChatEnabled:     p.chatEnabled,
		Data: map[string]any{
			"Post":     post,
			"BodyHTML": bodyHTML,
			"Author":   author,
		},
	})
	if err != nil {
		slog.Error("rendering post", "slug", slug, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.pageCache.Set(r.Context(), cache.BlogPostKey(slug), html)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

// Testimonials renders the full testimonial listing.
func (p *Public) Testimonials(w http.ResponseWriter, r *http.Request) {
	p.servePage(w, r, cache.PageTestimonials, func(ctx context.Context) ([]byte, error) {
		items, err := p.testimonialStore.List()
		if err != nil {
			return nil, err
		}
		return p.renderer.Render("testimonials", &render.PageData{
			Title:       "Testimonials",
			Section:     "testimonials",
			ChatEnabled: p.chatEnabled,
			Data:        map[string]any{"Testimonials": items},
		})
	})
}

// Event renders the static event page with the booking form.
func (p *Public) Event(w http.ResponseWriter, r *http.Request) {
	p.servePage(w, r, cache.PageEvent, func(ctx context.Context) ([]byte, error) {
		return p.renderer.Render("event", &render.PageData{
			Title:       "Event Coverage",
			Section:     "event",
			ChatEnabled: p.chatEnabled,
			Data:        map[string]any{},
		})
	})
}

// NotFound is the site-wide 404 handler.
func (p *Public) NotFound(w http.ResponseWriter, r *http.Request) {
	p.renderer.NotFound(w)
}
