package models

import (
	"time"

	"github.com/google/uuid"
)

// TeamMember represents a crew member shown on the public team page.
// The slug is derived from the name on creation and must be unique.
type TeamMember struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Title     string    `json:"title"`
	Bio       string    `json:"bio"`
	Slug      string    `json:"slug"`
	ImageURL  *string   `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
