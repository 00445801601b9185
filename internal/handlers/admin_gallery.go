package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"reelpress/internal/apperr"
	"reelpress/internal/cache"
	"reelpress/internal/models"
)

type galleryImageInput struct {
	URL     string `json:"url"`
	AltText string `json:"alt_text"`
}

type galleryImagesRequest struct {
	Images []galleryImageInput `json:"images"`
}

type galleryVideoRequest struct {
	URL          string  `json:"url"`
	AltText      string  `json:"alt_text"`
	ThumbnailURL *string `json:"thumbnail_url"`
}

type altTextRequest struct {
	AltText string `json:"alt_text"`
}

// GalleryImagesList returns all images with the display order applied,
// plus the order version for the reorder UI.
func (a *Admin) GalleryImagesList(w http.ResponseWriter, r *http.Request) {
	images, err := a.galleryStore.ListImages()
	if err != nil {
		respondErr(w, apperr.Upstream("listing gallery images", err))
		return
	}

	order, version, err := a.orderStore.Get(r.Context(), cache.OrderGalleryImages)
	if err != nil {
		respondErr(w, apperr.Upstream("loading display order", err))
		return
	}
	images = cache.Apply(images, order, func(img models.GalleryImage) uuid.UUID { return img.ID })

	respondOK(w, map[string]any{
		"images":        images,
		"order_version": version,
	})
}

// GalleryImagesCreate records a batch of uploaded images. The files are
// already in object storage via presigned upload; this persists the rows.
func (a *Admin) GalleryImagesCreate(w http.ResponseWriter, r *http.Request) {
	var req galleryImagesRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, err)
		return
	}
	if len(req.Images) == 0 {
		respondErr(w, apperr.Validation("at least one image is required"))
		return
	}

	images := make([]models.GalleryImage, 0, len(req.Images))
	for _, in := range req.Images {
		if err := requireString("url", in.URL, maxURLLen); err != nil {
			respondErr(w, err)
			return
		}
		if err := optionalString("alt text", in.AltText, maxAltTextLen); err != nil {
			respondErr(w, err)
			return
		}
		images = append(images, models.GalleryImage{URL: in.URL, AltText: in.AltText})
	}

	created, err := a.galleryStore.CreateImages(images)
	if err != nil {
		respondErr(w, apperr.Upstream("saving gallery images", err))
		return
	}

	a.pageCache.Invalidate(r.Context(), cache.PageGallery, cache.PageHome)
	respondCreated(w, created)
}

// GalleryImageUpdate changes an image's alt text.
func (a *Admin) GalleryImageUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		respondErr(w, err)
		return
	}

	var req altTextRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, err)
		return
	}
	if err := optionalString("alt text", req.AltText, maxAltTextLen); err != nil {
		respondErr(w, err)
		return
	}

	img, err := a.galleryStore.UpdateImage(id, req.AltText)
	if err != nil {
		respondErr(w, apperr.Upstream("updating gallery image", err))
		return
	}
	if img == nil {
		respondErr(w, apperr.NotFound("gallery image"))
		return
	}

	a.pageCache.Invalidate(r.Context(), cache.PageGallery)
	respondOK(w, img)
}

// GalleryImageDelete removes an image, drops it from the display order,
// and deletes the stored object best effort.
func (a *Admin) GalleryImageDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		respondErr(w, err)
		return
	}

	deleted, err := a.galleryStore.DeleteImage(id)
	if err != nil {
		respondErr(w, apperr.Upstream("deleting gallery image", err))
		return
	}
	if deleted == nil {
		respondErr(w, apperr.NotFound("gallery image"))
		return
	}

	if err := a.orderStore.Remove(r.Context(), cache.OrderGalleryImages, id); err != nil {
		respondErr(w, apperr.Upstream("updating display order", err))
		return
	}

	a.deleteStoredURL(r.Context(), deleted.URL)
	a.pageCache.Invalidate(r.Context(), cache.PageGallery, cache.PageHome)
	respondOK(w, nil)
}

type galleryImagesDeleteRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

// GalleryImagesDelete removes a batch of images. Rows go in one
// transaction; display-order removal and object deletion follow per
// image, best effort.
func (a *Admin) GalleryImagesDelete(w http.ResponseWriter, r *http.Request) {
	var req galleryImagesDeleteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, err)
		return
	}
	if len(req.IDs) == 0 {
		respondErr(w, apperr.Validation("at least one id is required"))
		return
	}

	deleted, err := a.galleryStore.DeleteImages(req.IDs)
	if err != nil {
		respondErr(w, apperr.Upstream("deleting gallery images", err))
		return
	}

	for _, img := range deleted {
		if err := a.orderStore.Remove(r.Context(), cache.OrderGalleryImages, img.ID); err != nil {
			respondErr(w, apperr.Upstream("updating display order", err))
			return
		}
		a.deleteStoredURL(r.Context(), img.URL)
	}

	a.pageCache.Invalidate(r.Context(), cache.PageGallery, cache.PageHome)
	respondOK(w, map[string]any{"deleted": len(deleted)})
}

// GalleryImagesReorder replaces the image display order.
func (a *Admin) GalleryImagesReorder(w http.ResponseWriter, r *http.Request) {
	if a.replaceOrder(w, r, cache.OrderGalleryImages) {
		a.pageCache.Invalidate(r.Context(), cache.PageGallery, cache.PageHome)
	}
}

// GalleryVideosList returns all videos with the display order applied.
func (a *Admin) GalleryVideosList(w http.ResponseWriter, r *http.Request) {
	videos, err := a.galleryStore.ListVideos()
	if err != nil {
		respondErr(w, apperr.Upstream("listing gallery videos", err))
		return
	}

	order, version, err := a.orderStore.Get(r.Context(), cache.OrderGalleryVideos)
	if err != nil {
		respondErr(w, apperr.Upstream("loading display order", err))
		return
	}
	videos = cache.Apply(videos, order, func(v models.GalleryVideo) uuid.UUID { return v.ID })

	respondOK(w, map[string]any{
		"videos":        videos,
		"order_version": version,
	})
}

// GalleryVideoCreate records an uploaded video. A missing thumbnail is
// fine; the public player shows its own poster.
func (a *Admin) GalleryVideoCreate(w http.ResponseWriter, r *http.Request) {
	var req galleryVideoRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, err)
		return
	}
	if err := requireString("url", req.URL, maxURLLen); err != nil {
		respondErr(w, err)
		return
	}
	if err := optionalString("alt text", req.AltText, maxAltTextLen); err != nil {
		respondErr(w, err)
		return
	}

	video, err := a.galleryStore.CreateVideo(&models.GalleryVideo{
		URL:          req.URL,
		AltText:      req.AltText,
		ThumbnailURL: req.ThumbnailURL,
	})
	if err != nil {
		respondErr(w, apperr.Upstream("saving gallery video", err))
		return
	}

	a.pageCache.Invalidate(r.Context(), cache.PageGallery, cache.PageHome)
	respondCreated(w, video)
}

// GalleryVideoUpdate changes a video's alt text and thumbnail. A
// replaced thumbnail's old object is deleted best effort.
func (a *Admin) GalleryVideoUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		respondErr(w, err)
		return
	}

	var req galleryVideoRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, err)
		return
	}
	if err := optionalString("alt text", req.AltText, maxAltTextLen); err != nil {
		respondErr(w, err)
		return
	}

	existing, err := a.galleryStore.FindVideoByID(id)
	if err != nil {
		respondErr(w, apperr.Upstream("loading gallery video", err))
		return
	}
	if existing == nil {
		respondErr(w, apperr.NotFound("gallery video"))
		return
	}

	video, err := a.galleryStore.UpdateVideo(id, req.AltText, req.ThumbnailURL)
	if err != nil {
		respondErr(w, apperr.Upstream("updating gallery video", err))
		return
	}
	if video == nil {
		respondErr(w, apperr.NotFound("gallery video"))
		return
	}

	if existing.ThumbnailURL != nil && deref(req.ThumbnailURL) != *existing.ThumbnailURL {
		a.deleteStoredURL(r.Context(), *existing.ThumbnailURL)
	}

	a.pageCache.Invalidate(r.Context(), cache.PageGallery)
	respondOK(w, video)
}

// GalleryVideoDelete removes a video, drops it from the display order,
// and deletes the video and thumbnail objects best effort.
func (a *Admin) GalleryVideoDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r)
	if err != nil {
		respondErr(w, err)
		return
	}

	deleted, err := a.galleryStore.DeleteVideo(id)
	if err != nil {
		respondErr(w, apperr.Upstream("deleting gallery video", err))
		return
	}
	if deleted == nil {
		respondErr(w, apperr.NotFound("gallery video"))
		return
	}

	if err := a.orderStore.Remove(r.Context(), cache.OrderGalleryVideos, id); err != nil {
		respondErr(w, apperr.Upstream("updating display order", err))
		return
	}

	a.deleteStoredURL(r.Context(), deleted.URL)
	if deleted.ThumbnailURL != nil {
		a.deleteStoredURL(r.Context(), *deleted.ThumbnailURL)
	}

	a.pageCache.Invalidate(r.Context(), cache.PageGallery, cache.PageHome)
	respondOK(w, nil)
}

// GalleryVideosReorder replaces the video display order.
func (a *Admin) GalleryVideosReorder(w http.ResponseWriter, r *http.Request) {
	if a.replaceOrder(w, r, cache.OrderGalleryVideos) {
		a.pageCache.Invalidate(r.Context(), cache.PageGallery, cache.PageHome)
	}
}
