package handlers

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"reelpress/internal/apperr"
	"reelpress/internal/models"
)

// Validation limits for admin and public form fields.
const (
	maxNameLen     = 200
	maxTitleLen    = 300
	maxBodyLen     = 100_000
	maxBioLen      = 5_000
	maxExcerptLen  = 1_000
	maxMetaLen     = 500
	maxAltTextLen  = 500
	maxContentLen  = 5_000
	maxMessageLen  = 10_000
	maxURLLen      = 2_000
	maxFileNameLen = 255
)

// requireString checks that a field is present and within length limits.
func requireString(field, value string, maxLen int) error {
	if strings.TrimSpace(value) == "" {
		return apperr.Validation(field + " is required")
	}
	if utf8.RuneCountInString(value) > maxLen {
		return apperr.Validation(fmt.Sprintf("%s is too long (max %d characters)", field, maxLen))
	}
	return nil
}

// optionalString checks length limits on a field that may be empty.
func optionalString(field, value string, maxLen int) error {
	if utf8.RuneCountInString(value) > maxLen {
		return apperr.Validation(fmt.Sprintf("%s is too long (max %d characters)", field, maxLen))
	}
	return nil
}

// validEmail reports whether the address parses per RFC 5322.
func validEmail(address string) bool {
	_, err := mail.ParseAddress(address)
	return err == nil
}

// validateRating checks the testimonial rating range.
func validateRating(rating int) error {
	if rating < models.RatingMin || rating > models.RatingMax {
		return apperr.Validation(fmt.Sprintf("rating must be between %d and %d", models.RatingMin, models.RatingMax))
	}
	return nil
}

// validateBlogInput checks blog post fields shared by create and update.
func validateBlogInput(title, body, excerpt, metaDesc, metaKw string) error {
	if err := requireString("title", title, maxTitleLen); err != nil {
		return err
	}
	if err := requireString("body", body, maxBodyLen); err != nil {
		return err
	}
	if err := optionalString("excerpt", excerpt, maxExcerptLen); err != nil {
		return err
	}
	if err := optionalString("meta description", metaDesc, maxMetaLen); err != nil {
		return err
	}
	return optionalString("meta keywords", metaKw, maxMetaLen)
}

// validateTeamInput checks team member fields shared by create and update.
func validateTeamInput(name, title, bio string) error {
	if err := requireString("name", name, maxNameLen); err != nil {
		return err
	}
	if err := optionalString("title", title, maxTitleLen); err != nil {
		return err
	}
	return optionalString("bio", bio, maxBioLen)
}

// validateTestimonialInput checks testimonial fields shared by create
// and update.
func validateTestimonialInput(name, content string, rating int) error {
	if err := requireString("name", name, maxNameLen); err != nil {
		return err
	}
	if err := requireString("content", content, maxContentLen); err != nil {
		return err
	}
	return validateRating(rating)
}
