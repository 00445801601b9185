package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"reelpress/internal/apperr"
	"reelpress/internal/models"
	"reelpress/internal/slug"
)

type blogPostRequest struct {
	Title            string     `json:"title"`
	Slug             string     `json:"slug"`
	Body             string     `json:"body"`
	Excerpt          *string    `json:"excerpt"`
	FeaturedImageURL *string    `json:"featured_image_url"`
	MetaDescription  *string    `json:"meta_description"`
	MetaKeywords     *string    `json:"meta_keywords"`
	Published        bool       `json:"published"`
	AuthorID         *uuid.UUID `json:"author_id"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// BlogList returns all posts, drafts included, newest first.
func (a *Admin) BlogList(w http.ResponseWriter, r *http.Request) {
	posts, err := a.blogStore.List()
	if err != nil {
		respondErr(w, apperr.Upstream("listing posts", err))
		return
	}
	respondOK(w, posts)
}

// BlogGet returns a single post by ID.
func (a *Admin) BlogGet(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		respondErr(w, err)
		return
	}

	post, err := a.blogStore.FindByID(id)
	if err != nil {
		respondErr(w, apperr.Upstream("loading post", err))
		return
	}
	if post == nil {
		respondErr(w, apperr.NotFound("post"))
		return
	}
	respondOK(w, post)
}

// BlogCreate creates a post. An empty slug is derived from the title;
// either way the slug must be unique.
func (a *Admin) BlogCreate(w http.ResponseWriter, r *http.Request) {
	var req blogPostRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, err)
		return
	}

	if err := validateBlogInput(req.Title, req.Body, deref(req.Excerpt), deref(req.MetaDescription), deref(req.MetaKeywords)); err != nil {
		respondErr(w, err)
		return
	}

	postSlug := req.Slug
	if postSlug == "" {
		postSlug = slug.Generate(req.Title)
	}
	if postSlug == "" {
		respondErr(w, apperr.Validation("cannot derive a slug from the title"))
		return
	}

	taken, err := a.blogStore.SlugExists(postSlug, uuid.Nil)
	if err != nil {
		respondErr(w, apperr.Upstream("checking slug", err))
		return
	}
	if taken {
		respondErr(w, apperr.Validation("slug is already in use"))
		return
	}

	post, err := a.blogStore.Create(&models.BlogPost{
		Title:            req.Title,
		Slug:             postSlug,
		Body:             req.Body,
		Excerpt:          req.Excerpt,
		FeaturedImageURL: req.FeaturedImageURL,
		MetaDescription:  req.MetaDescription,
		MetaKeywords:     req.MetaKeywords,
		Published:        req.Published,
		AuthorID:         req.AuthorID,
	})
	if err != nil {
		respondErr(w, apperr.Upstream("creating post", err))
		return
	}

	a.pageCache.InvalidateBlog(r.Context(), post.Slug)
	respondCreated(w, post)
}

// BlogUpdate updates a post. A slug change invalidates both the old and
// new cached pages.
func (a *Admin) BlogUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		respondErr(w, err)
		return
	}

	var req blogPostRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, err)
		return
	}

	if err := validateBlogInput(req.Title, req.Body, deref(req.Excerpt), deref(req.MetaDescription), deref(req.MetaKeywords)); err != nil {
		respondErr(w, err)
		return
	}

	existing, err := a.blogStore.FindByID(id)
	if err != nil {
		respondErr(w, apperr.Upstream("loading post", err))
		return
	}
	if existing == nil {
		respondErr(w, apperr.NotFound("post"))
		return
	}

	postSlug := req.Slug
	if postSlug == "" {
		postSlug = slug.Generate(req.Title)
	}

	taken, err := a.blogStore.SlugExists(postSlug, id)
	if err != nil {
		respondErr(w, apperr.Upstream("checking slug", err))
		return
	}
	if taken {
		respondErr(w, apperr.Validation("slug is already in use"))
		return
	}

	updated, err := a.blogStore.Update(&models.BlogPost{
		ID:               id,
		Title:            req.Title,
		Slug:             postSlug,
		Body:             req.Body,
		Excerpt:          req.Excerpt,
		FeaturedImageURL: req.FeaturedImageURL,
		MetaDescription:  req.MetaDescription,
		MetaKeywords:     req.MetaKeywords,
		Published:        req.Published,
		AuthorID:         req.AuthorID,
	})
	if err != nil {
		respondErr(w, apperr.Upstream("updating post", err))
		return
	}
	if updated == nil {
		respondErr(w, apperr.NotFound("post"))
		return
	}

	a.pageCache.InvalidateBlog(r.Context(), existing.Slug)
	if updated.Slug != existing.Slug {
		a.pageCache.InvalidateBlog(r.Context(), updated.Slug)
	}
	respondOK(w, updated)
}

// BlogDelete removes a post. The featured image object is deleted best
// effort; a storage failure never blocks the row removal.
func (a *Admin) BlogDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		respondErr(w, err)
		return
	}

	deleted, err := a.blogStore.Delete(id)
	if err != nil {
		respondErr(w, apperr.Upstream("deleting post", err))
		return
	}
	if deleted == nil {
		respondErr(w, apperr.NotFound("post"))
		return
	}

	if deleted.FeaturedImageURL != nil {
		a.deleteStoredURL(r.Context(), *deleted.FeaturedImageURL)
	}

	a.pageCache.InvalidateBlog(r.Context(), deleted.Slug)
	respondOK(w, nil)
}

// deleteStoredURL removes an object from storage by its public URL.
// Failures are logged and swallowed: the database row is already gone
// and an orphaned object is preferable to a failed delete.
func (a *Admin) deleteStoredURL(ctx context.Context, rawURL string) {
	if a.storageClient == nil {
		return
	}
	if err := a.storageClient.DeleteURL(ctx, rawURL); err != nil {
		slog.Warn("deleting storage object", "url", rawURL, "error", err)
	}
}
