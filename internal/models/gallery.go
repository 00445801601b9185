package models

import (
	"time"

	"github.com/google/uuid"
)

// GalleryImage represents a still image in the public gallery.
type GalleryImage struct {
	ID        uuid.UUID `json:"id"`
	URL       string    `json:"url"`
	AltText   string    `json:"alt_text"`
	CreatedAt time.Time `json:"created_at"`
}

// GalleryVideo represents a video in the public gallery. The thumbnail is
// optional; a video saved without one falls back to a player poster.
type GalleryVideo struct {
	ID           uuid.UUID `json:"id"`
	URL          string    `json:"url"`
	AltText      string    `json:"alt_text"`
	ThumbnailURL *string   `json:"thumbnail_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
