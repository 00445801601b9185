package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"reelpress/internal/apperr"
	"reelpress/internal/cache"
	"reelpress/internal/storage"
	"reelpress/internal/store"
)

// Admin groups the admin API handlers and their dependencies.
type Admin struct {
	blogStore        *store.BlogStore
	authorStore      *store.AuthorStore
	teamStore        *store.TeamStore
	galleryStore     *store.GalleryStore
	testimonialStore *store.TestimonialStore
	storageClient    *storage.Client
	orderStore       *cache.OrderStore
	pageCache        *cache.PageCache
}

// NewAdmin creates a new Admin handler group with the given dependencies.
// storageClient may be nil when object storage is not configured.
func NewAdmin(
	blogStore *store.BlogStore,
	authorStore *store.AuthorStore,
	teamStore *store.TeamStore,
	galleryStore *store.GalleryStore,
	testimonialStore *store.TestimonialStore,
	storageClient *storage.Client,
	orderStore *cache.OrderStore,
	pageCache *cache.PageCache,
) *Admin {
	return &Admin{
		blogStore:        blogStore,
		authorStore:      authorStore,
		teamStore:        teamStore,
		galleryStore:     galleryStore,
		testimonialStore: testimonialStore,
		storageClient:    storageClient,
		orderStore:       orderStore,
		pageCache:        pageCache,
	}
}

// urlParamID parses the {id} route parameter as a UUID.
func urlParamID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.Validation("invalid id")
	}
	return id, nil
}

// reorderRequest is the shared payload for the three display-order
// endpoints. Version carries the expected ordering version for
// optimistic concurrency; zero means overwrite unconditionally.
type reorderRequest struct {
	IDs     []uuid.UUID `json:"ids"`
	Version int64       `json:"version"`
}

// reorderResponse reports the new ordering version after a replace.
type reorderResponse struct {
	Version int64 `json:"version"`
}

// replaceOrder runs a Replace for the given kind and writes the
// standard response, converting a stale version into a validation error
// the client resolves by refetching. Returns false when nothing was
// changed so callers skip their cache invalidation.
func (a *Admin) replaceOrder(w http.ResponseWriter, r *http.Request, kind cache.OrderKind) bool {
	var req reorderRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, err)
		return false
	}

	version, err := a.orderStore.Replace(r.Context(), kind, req.IDs, req.Version)
	if err == cache.ErrStaleVersion {
		respondErr(w, apperr.Validation("display order changed since you loaded it, refresh and try again"))
		return false
	}
	if err != nil {
		respondErr(w, apperr.Upstream("saving display order", err))
		return false
	}

	respondOK(w, reorderResponse{Version: version})
	return true
}
