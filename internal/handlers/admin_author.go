package handlers

import (
	"net/http"

	"reelpress/internal/apperr"
	"reelpress/internal/cache"
	"reelpress/internal/models"
)

type authorRequest struct {
	Name      string  `json:"name"`
	Email     *string `json:"email"`
	AvatarURL *string `json:"avatar_url"`
}

func (req *authorRequest) validate() error {
	if err := requireString("name", req.Name, maxNameLen); err != nil {
		return err
	}
	if req.Email != nil && *req.Email != "" && !validEmail(*req.Email) {
		return apperr.Validation("email is not a valid address")
	}
	return optionalString("avatar url", deref(req.AvatarURL), maxURLLen)
}

// AuthorList returns all authors ordered by name.
func (a *Admin) AuthorList(w http.ResponseWriter, r *http.Request) {
	authors, err := a.authorStore.List()
	if err != nil {
		respondErr(w, apperr.Upstream("listing authors", err))
		return
	}
	respondOK(w, authors)
}

// AuthorCreate creates a blog author.
func (a *Admin) AuthorCreate(w http.ResponseWriter, r *http.Request) {
	var req authorRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, err)
		return
	}
	if err := req.validate(); err != nil {
		respondErr(w, err)
		return
	}

	author, err := a.authorStore.Create(&models.Author{
		Name:      req.Name,
		Email:     req.Email,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		respondErr(w, apperr.Upstream("creating author", err))
		return
	}
	respondCreated(w, author)
}

// AuthorUpdate updates an author. A replaced avatar's old object is
// deleted best effort.
func (a *Admin) AuthorUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		respondErr(w, err)
		return
	}

	var req authorRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, err)
		return
	}
	if err := req.validate(); err != nil {
		respondErr(w, err)
		return
	}

	existing, err := a.authorStore.FindByID(id)
	if err != nil {
		respondErr(w, apperr.Upstream("loading author", err))
		return
	}
	if existing == nil {
		respondErr(w, apperr.NotFound("author"))
		return
	}

	updated, err := a.authorStore.Update(&models.Author{
		ID:        id,
		Name:      req.Name,
		Email:     req.Email,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		respondErr(w, apperr.Upstream("updating author", err))
		return
	}
	if updated == nil {
		respondErr(w, apperr.NotFound("author"))
		return
	}

	if existing.AvatarURL != nil && deref(req.AvatarURL) != *existing.AvatarURL {
		a.deleteStoredURL(r.Context(), *existing.AvatarURL)
	}

	a.pageCache.Invalidate(r.Context(), cache.PageBlogIndex)
	respondOK(w, updated)
}

// AuthorDelete removes an author. Their posts survive with the byline
// cleared; the avatar object is deleted best effort.
func (a *Admin) AuthorDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		respondErr(w, err)
		return
	}

	deleted, err := a.authorStore.Delete(id)
	if err != nil {
		respondErr(w, apperr.Upstream("deleting author", err))
		return
	}
	if deleted == nil {
		respondErr(w, apperr.NotFound("author"))
		return
	}

	if deleted.AvatarURL != nil {
		a.deleteStoredURL(r.Context(), *deleted.AvatarURL)
	}

	a.pageCache.Invalidate(r.Context(), cache.PageBlogIndex)
	respondOK(w, nil)
}
