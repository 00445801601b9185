package handlers

import (
	"net/http"

	"reelpress/internal/apperr"
	"reelpress/internal/cache"
	"reelpress/internal/models"
)

type testimonialRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Company string `json:"company"`
	Content string `json:"content"`
	Rating  int    `json:"rating"`
}

// TestimonialList returns all testimonials newest first.
func (a *Admin) TestimonialList(w http.ResponseWriter, r *http.Request) {
	items, err := a.testimonialStore.List()
	if err != nil {
		respondErr(w, apperr.Upstream("listing testimonials", err))
		return
	}
	respondOK(w, items)
}

// TestimonialCreate creates a testimonial.
func (a *Admin) TestimonialCreate(w http.ResponseWriter, r *http.Request) {
	var req testimonialRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, err)
		return
	}
	if err := validateTestimonialInput(req.Name, req.Content, req.Rating); err != nil {
		respondErr(w, err)
		return
	}

	item, err := a.testimonialStore.Create(&models.Testimonial{
		Name:    req.Name,
		Address: req.Address,
		Company: req.Company,
		Content: req.Content,
		Rating:  req.Rating,
	})
	if err != nil {
		respondErr(w, apperr.Upstream("creating testimonial", err))
		return
	}

	a.pageCache.Invalidate(r.Context(), cache.PageTestimonials, cache.PageHome)
	respondCreated(w, item)
}

// TestimonialUpdate updates a testimonial.
func (a *Admin) TestimonialUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		respondErr(w, err)
		return
	}

	var req testimonialRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, err)
		return
	}
	if err := validateTestimonialInput(req.Name, req.Content, req.Rating); err != nil {
		respondErr(w, err)
		return
	}

	item, err := a.testimonialStore.Update(&models.Testimonial{
		ID:      id,
		Name:    req.Name,
		Address: req.Address,
		Company: req.Company,
		Content: req.Content,
		Rating:  req.Rating,
	})
	if err != nil {
		respondErr(w, apperr.Upstream("updating testimonial", err))
		return
	}
	if item == nil {
		respondErr(w, apperr.NotFound("testimonial"))
		return
	}

	a.pageCache.Invalidate(r.Context(), cache.PageTestimonials, cache.PageHome)
	respondOK(w, item)
}

// TestimonialDelete removes a testimonial.
func (a *Admin) TestimonialDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		respondErr(w, err)
		return
	}

	deleted, err := a.testimonialStore.Delete(id)
	if err != nil {
		respondErr(w, apperr.Upstream("deleting testimonial", err))
		return
	}
	if deleted == nil {
		respondErr(w, apperr.NotFound("testimonial"))
		return
	}

	a.pageCache.Invalidate(r.Context(), cache.PageTestimonials, cache.PageHome)
	respondOK(w, nil)
}
