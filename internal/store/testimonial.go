package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"reelpress/internal/models"
)

// TestimonialStore handles all testimonial database operations.
type TestimonialStore struct {
	db *sql.DB
}

// NewTestimonialStore creates a new TestimonialStore with the given
// database connection.
func NewTestimonialStore(db *sql.DB) *TestimonialStore {
	return &TestimonialStore{db: db}
}

const testimonialColumns = `id, name, address, company, content, rating, created_at, updated_at`

func scanTestimonial(scanner interface{ Scan(...any) error }) (*models.Testimonial, error) {
	var t models.Testimonial
	err := scanner.Scan(&t.ID, &t.Name, &t.Address, &t.Company, &t.Content, &t.Rating, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts a new testimonial and returns it with the generated ID.
func (s *TestimonialStore) Create(t *models.Testimonial) (*models.Testimonial, error) {
	row := s.db.QueryRow(`
		INSERT INTO testimonials (name, address, company, content, rating)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+testimonialColumns,
		t.Name, t.Address, t.Company, t.Content, t.Rating)
	created, err := scanTestimonial(row)
	if err != nil {
		return nil, fmt.Errorf("create testimonial: %w", err)
	}
	return created, nil
}

// FindByID retrieves a testimonial by UUID. Returns nil if not found.
func (s *TestimonialStore) FindByID(id uuid.UUID) (*models.Testimonial, error) {
	row := s.db.QueryRow(`SELECT `+testimonialColumns+` FROM testimonials WHERE id = $1`, id)
	t, err := scanTestimonial(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find testimonial by id: %w", err)
	}
	return t, nil
}

// List returns all testimonials newest first.
func (s *TestimonialStore) List() ([]models.Testimonial, error) {
	rows, err := s.db.Query(`SELECT ` + testimonialColumns + ` FROM testimonials ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list testimonials: %w", err)
	}
	defer rows.Close()

	var items []models.Testimonial
	for rows.Next() {
		t, err := scanTestimonial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan testimonial: %w", err)
		}
		items = append(items, *t)
	}
	return items, rows.Err()
}

// Update modifies a testimonial and returns the updated record.
// Returns nil if the testimonial does not exist.
func (s *TestimonialStore) Update(t *models.Testimonial) (*models.Testimonial, error) {
	row := s.db.QueryRow(`
		UPDATE testimonials SET name = $1, address = $2, company = $3,
			content = $4, rating = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING `+testimonialColumns,
		t.Name, t.Address, t.Company, t.Content, t.Rating, t.ID)
	updated, err := scanTestimonial(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update testimonial: %w", err)
	}
	return updated, nil
}

// Delete removes a testimonial. Returns nil if it does not exist.
func (s *TestimonialStore) Delete(id uuid.UUID) (*models.Testimonial, error) {
	row := s.db.QueryRow(`
		DELETE FROM testimonials WHERE id = $1
		RETURNING `+testimonialColumns, id)
	t, err := scanTestimonial(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete testimonial: %w", err)
	}
	return t, nil
}
