package models

import (
	"time"

	"github.com/google/uuid"
)

// Author represents a blog author shown in post bylines.
type Author struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BlogPost represents a blog article. The body is stored as Markdown and
// rendered to HTML on the public site.
type BlogPost struct {
	ID               uuid.UUID  `json:"id"`
	Title            string     `json:"title"`
	Slug             string     `json:"slug"`
	Body             string     `json:"body"`
	Excerpt          *string    `json:"excerpt,omitempty"`
	FeaturedImageURL *string    `json:"featured_image_url,omitempty"`
	MetaDescription  *string    `json:"meta_description,omitempty"`
	MetaKeywords     *string    `json:"meta_keywords,omitempty"`
	Published        bool       `json:"published"`
	AuthorID         *uuid.UUID `json:"author_id,omitempty"`
	PublishedAt      *time.Time `json:"published_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
