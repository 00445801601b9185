package models

import (
	"time"

	"github.com/google/uuid"
)

// RatingMin and RatingMax bound testimonial ratings.
const (
	RatingMin = 1
	RatingMax = 5
)

// Testimonial represents a client quote shown on the public site.
type Testimonial struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Company   string    `json:"company"`
	Content   string    `json:"content"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RatingValid reports whether the rating is within the allowed 1-5 range.
func (t *Testimonial) RatingValid() bool {
	return t.Rating >= RatingMin && t.Rating <= RatingMax
}
