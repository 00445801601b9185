package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"reelpress/internal/apperr"
	"reelpress/internal/cache"
	"reelpress/internal/models"
	"reelpress/internal/slug"
)

type teamMemberRequest struct {
	Name     string  `json:"name"`
	Title    string  `json:"title"`
	Bio      string  `json:"bio"`
	ImageURL *string `json:"image_url"`
}

// TeamList returns all team members with the current display order and
// its version, so the admin reorder UI can submit a consistent update.
func (a *Admin) TeamList(w http.ResponseWriter, r *http.Request) {
	members, err := a.teamStore.List()
	if err != nil {
		respondErr(w, apperr.Upstream("listing team members", err))
		return
	}

	order, version, err := a.orderStore.Get(r.Context(), cache.OrderTeam)
	if err != nil {
		respondErr(w, apperr.Upstream("loading display order", err))
		return
	}
	members = cache.Apply(members, order, func(m models.TeamMember) uuid.UUID { return m.ID })

	respondOK(w, map[string]any{
		"members":       members,
		"order_version": version,
	})
}

// TeamCreate creates a team member. The slug is derived from the name.
func (a *Admin) TeamCreate(w http.ResponseWriter, r *http.Request) {
	var req teamMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, err)
		return
	}
	if err := validateTeamInput(req.Name, req.Title, req.Bio); err != nil {
		respondErr(w, err)
		return
	}

	memberSlug := slug.Generate(req.Name)
	if memberSlug == "" {
		respondErr(w, apperr.Validation("cannot derive a slug from the name"))
		return
	}
	taken, err := a.teamStore.SlugExists(memberSlug, uuid.Nil)
	if err != nil {
		respondErr(w, apperr.Upstream("checking slug", err))
		return
	}
	if taken {
		respondErr(w, apperr.Validation("a team member with this name already exists"))
		return
	}

	member, err := a.teamStore.Create(&models.TeamMember{
		Name:     req.Name,
		Title:    req.Title,
		Bio:      req.Bio,
		Slug:     memberSlug,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		respondErr(w, apperr.Upstream("creating team member", err))
		return
	}

	a.pageCache.Invalidate(r.Context(), cache.PageTeam, cache.PageHome)
	respondCreated(w, member)
}

// TeamUpdate updates a team member. Renaming regenerates the slug; a
// replaced portrait's old object is deleted best effort.
func (a *Admin) TeamUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		respondErr(w, err)
		return
	}

	var req teamMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, err)
		return
	}
	if err := validateTeamInput(req.Name, req.Title, req.Bio); err != nil {
		respondErr(w, err)
		return
	}

	existing, err := a.teamStore.FindByID(id)
	if err != nil {
		respondErr(w, apperr.Upstream("loading team member", err))
		return
	}
	if existing == nil {
		respondErr(w, apperr.NotFound("team member"))
		return
	}

	memberSlug := existing.Slug
	if req.Name != existing.Name {
		memberSlug = slug.Generate(req.Name)
		taken, err := a.teamStore.SlugExists(memberSlug, id)
		if err != nil {
			respondErr(w, apperr.Upstream("checking slug", err))
			return
		}
		if taken {
			respondErr(w, apperr.Validation("a team member with this name already exists"))
			return
		}
	}

	updated, err := a.teamStore.Update(&models.TeamMember{
		ID:       id,
		Name:     req.Name,
		Title:    req.Title,
		Bio:      req.Bio,
		Slug:     memberSlug,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		respondErr(w, apperr.Upstream("updating team member", err))
		return
	}
	if updated == nil {
		respondErr(w, apperr.NotFound("team member"))
		return
	}

	if existing.ImageURL != nil && deref(req.ImageURL) != *existing.ImageURL {
		a.deleteStoredURL(r.Context(), *existing.ImageURL)
	}

	a.pageCache.Invalidate(r.Context(), cache.PageTeam, cache.PageHome)
	respondOK(w, updated)
}

// TeamDelete removes a team member, drops them from the display order,
// and deletes the portrait object best effort.
func (a *Admin) TeamDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		respondErr(w, err)
		return
	}

	deleted, err := a.teamStore.Delete(id)
	if err != nil {
		respondErr(w, apperr.Upstream("deleting team member", err))
		return
	}
	if deleted == nil {
		respondErr(w, apperr.NotFound("team member"))
		return
	}

	if err := a.orderStore.Remove(r.Context(), cache.OrderTeam, id); err != nil {
		respondErr(w, apperr.Upstream("updating display order", err))
		return
	}

	if deleted.ImageURL != nil {
		a.deleteStoredURL(r.Context(), *deleted.ImageURL)
	}

	a.pageCache.Invalidate(r.Context(), cache.PageTeam, cache.PageHome)
	respondOK(w, nil)
}

// TeamReorder replaces the team display order.
func (a *Admin) TeamReorder(w http.ResponseWriter, r *http.Request) {
	if a.replaceOrder(w, r, cache.OrderTeam) {
		a.pageCache.Invalidate(r.Context(), cache.PageTeam, cache.PageHome)
	}
}
