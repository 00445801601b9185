package handlers

import (
	"strings"
	"testing"

	"reelpress/internal/apperr"
)

func TestRequireString(t *testing.T) {
	if err := requireString("name", "Ada", maxNameLen); err != nil {
		t.Errorf("valid value rejected: %v", err)
	}
	if err := requireString("name", "   ", maxNameLen); err == nil {
		t.Error("whitespace-only value accepted")
	}
	if err := requireString("name", strings.Repeat("x", maxNameLen+1), maxNameLen); err == nil {
		t.Error("overlong value accepted")
	}

	err := requireString("name", "", maxNameLen)
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("kind = %q, want validation", apperr.KindOf(err))
	}
}

func TestValidEmail(t *testing.T) {
	valid := []string{"a@b.com", "First Last <first@example.com>", "x+tag@example.co.uk"}
	for _, addr := range valid {
		if !validEmail(addr) {
			t.Errorf("validEmail(%q) = false, want true", addr)
		}
	}

	invalid := []string{"", "not-an-email", "@example.com", "spaces in@example.com"}
	for _, addr := range invalid {
		if validEmail(addr) {
			t.Errorf("validEmail(%q) = true, want false", addr)
		}
	}
}

func TestValidateRating(t *testing.T) {
	for rating := 1; rating <= 5; rating++ {
		if err := validateRating(rating); err != nil {
			t.Errorf("rating %d rejected: %v", rating, err)
		}
	}
	for _, rating := range []int{0, -1, 6, 100} {
		if err := validateRating(rating); err == nil {
			t.Errorf("rating %d accepted", rating)
		}
	}
}

func TestValidateBlogInput(t *testing.T) {
	if err := validateBlogInput("Title", "Body", "", "", ""); err != nil {
		t.Errorf("valid input rejected: %v", err)
	}
	if err := validateBlogInput("", "Body", "", "", ""); err == nil {
		t.Error("missing title accepted")
	}
	if err := validateBlogInput("Title", "", "", "", ""); err == nil {
		t.Error("missing body accepted")
	}
	if err := validateBlogInput("Title", "Body", strings.Repeat("x", maxExcerptLen+1), "", ""); err == nil {
		t.Error("overlong excerpt accepted")
	}
}

func TestValidateTestimonialInput(t *testing.T) {
	if err := validateTestimonialInput("Ada", "Great film", 5); err != nil {
		t.Errorf("valid input rejected: %v", err)
	}
	if err := validateTestimonialInput("", "Great film", 5); err == nil {
		t.Error("missing name accepted")
	}
	if err := validateTestimonialInput("Ada", "Great film", 0); err == nil {
		t.Error("zero rating accepted")
	}
}
