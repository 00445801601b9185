package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"reelpress/internal/models"
)

// TeamStore handles all team member database operations.
type TeamStore struct {
	db *sql.DB
}

// NewTeamStore creates a new TeamStore with the given database connection.
func NewTeamStore(db *sql.DB) *TeamStore {
	return &TeamStore{db: db}
}

const teamColumns = `id, name, title, bio, slug, image_url, created_at, updated_at`

func scanTeamMember(scanner interface{ Scan(...any) error }) (*models.TeamMember, error) {
	var m models.TeamMember
	err := scanner.Scan(&m.ID, &m.Name, &m.Title, &m.Bio, &m.Slug, &m.ImageURL, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a new team member and returns it with the generated ID.
func (s *TeamStore) Create(m *models.TeamMember) (*models.TeamMember, error) {
	row := s.db.QueryRow(`
		INSERT INTO team_members (name, title, bio, slug, image_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+teamColumns,
		m.Name, m.Title, m.Bio, m.Slug, m.ImageURL)
	created, err := scanTeamMember(row)
	if err != nil {
		return nil, fmt.Errorf("create team member: %w", err)
	}
	return created, nil
}

// FindByID retrieves a team member by UUID. Returns nil if not found.
func (s *TeamStore) FindByID(id uuid.UUID) (*models.TeamMember, error) {
	row := s.db.QueryRow(`SELECT `+teamColumns+` FROM team_members WHERE id = $1`, id)
	m, err := scanTeamMember(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find team member by id: %w", err)
	}
	return m, nil
}

// SlugExists reports whether a slug is already taken, excluding the
// given member ID (pass uuid.Nil when creating).
func (s *TeamStore) SlugExists(slug string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS (SELECT 1 FROM team_members WHERE slug = $1 AND id <> $2)
	`, slug, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check team slug: %w", err)
	}
	return exists, nil
}

// List returns all team members ordered by creation date. The public
// page reorders them with the Redis display order.
func (s *TeamStore) List() ([]models.TeamMember, error) {
	rows, err := s.db.Query(`SELECT ` + teamColumns + ` FROM team_members ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	defer rows.Close()

	var members []models.TeamMember
	for rows.Next() {
		m, err := scanTeamMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan team member: %w", err)
		}
		members = append(members, *m)
	}
	return members, rows.Err()
}

// Update modifies a team member's fields and returns the updated record.
// Returns nil if the member does not exist.
func (s *TeamStore) Update(m *models.TeamMember) (*models.TeamMember, error) {
	row := s.db.QueryRow(`
		UPDATE team_members SET name = $1, title = $2, bio = $3, slug = $4,
			image_url = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING `+teamColumns,
		m.Name, m.Title, m.Bio, m.Slug, m.ImageURL, m.ID)
	updated, err := scanTeamMember(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update team member: %w", err)
	}
	return updated, nil
}

// Delete removes a team member and returns the deleted record so the
// caller can clean up the portrait object. Returns nil if the member
// does not exist.
func (s *TeamStore) Delete(id uuid.UUID) (*models.TeamMember, error) {
	row := s.db.QueryRow(`
		DELETE FROM team_members WHERE id = $1
		RETURNING `+teamColumns, id)
	m, err := scanTeamMember(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete team member: %w", err)
	}
	return m, nil
}
