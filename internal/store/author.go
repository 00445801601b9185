package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"reelpress/internal/models"
)

// AuthorStore handles all author-related database operations.
type AuthorStore struct {
	db *sql.DB
}

// NewAuthorStore creates a new AuthorStore with the given database connection.
func NewAuthorStore(db *sql.DB) *AuthorStore {
	return &AuthorStore{db: db}
}

const authorColumns = `id, name, email, avatar_url, created_at, updated_at`

func scanAuthor(scanner interface{ Scan(...any) error }) (*models.Author, error) {
	var a models.Author
	err := scanner.Scan(&a.ID, &a.Name, &a.Email, &a.AvatarURL, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new author and returns it with the generated ID.
func (s *AuthorStore) Create(a *models.Author) (*models.Author, error) {
	row := s.db.QueryRow(`
		INSERT INTO authors (name, email, avatar_url)
		VALUES ($1, $2, $3)
		RETURNING `+authorColumns,
		a.Name, a.Email, a.AvatarURL)
	created, err := scanAuthor(row)
	if err != nil {
		return nil, fmt.Errorf("create author: %w", err)
	}
	return created, nil
}

// FindByID retrieves an author by UUID. Returns nil if not found.
func (s *AuthorStore) FindByID(id uuid.UUID) (*models.Author, error) {
	row := s.db.QueryRow(`SELECT `+authorColumns+` FROM authors WHERE id = $1`, id)
	a, err := scanAuthor(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find author by id: %w", err)
	}
	return a, nil
}

// List returns all authors ordered by name.
func (s *AuthorStore) List() ([]models.Author, error) {
	rows, err := s.db.Query(`SELECT ` + authorColumns + ` FROM authors ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	defer rows.Close()

	var authors []models.Author
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan author: %w", err)
		}
		authors = append(authors, *a)
	}
	return authors, rows.Err()
}

// Update modifies an author's fields and returns the updated record.
// Returns nil if the author does not exist.
func (s *AuthorStore) Update(a *models.Author) (*models.Author, error) {
	row := s.db.QueryRow(`
		UPDATE authors SET name = $1, email = $2, avatar_url = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING `+authorColumns,
		a.Name, a.Email, a.AvatarURL, a.ID)
	updated, err := scanAuthor(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update author: %w", err)
	}
	return updated, nil
}

// Delete removes an author and returns the deleted record so the caller
// can clean up the avatar object. Posts keep their author_id set to NULL
// via the foreign key. Returns nil if the author does not exist.
func (s *AuthorStore) Delete(id uuid.UUID) (*models.Author, error) {
	row := s.db.QueryRow(`
		DELETE FROM authors WHERE id = $1
		RETURNING `+authorColumns, id)
	a, err := scanAuthor(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete author: %w", err)
	}
	return a, nil
}
