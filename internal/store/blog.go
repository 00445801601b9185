package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"reelpress/internal/models"
)

// BlogStore handles all blog post database operations.
type BlogStore struct {
	db *sql.DB
}

// NewBlogStore creates a new BlogStore with the given database connection.
func NewBlogStore(db *sql.DB) *BlogStore {
	return &BlogStore{db: db}
}

const blogColumns = `id, title, slug, body, excerpt, featured_image_url,
	meta_description, meta_keywords, published, author_id, published_at,
	created_at, updated_at`

func scanBlogPost(scanner interface{ Scan(...any) error }) (*models.BlogPost, error) {
	var p models.BlogPost
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Body, &p.Excerpt, &p.FeaturedImageURL,
		&p.MetaDescription, &p.MetaKeywords, &p.Published, &p.AuthorID, &p.PublishedAt,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new blog post. published_at is set when the post is
// created already published.
func (s *BlogStore) Create(p *models.BlogPost) (*models.BlogPost, error) {
	row := s.db.QueryRow(`
		INSERT INTO blog_posts (title, slug, body, excerpt, featured_image_url,
			meta_description, meta_keywords, published, author_id, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9,
			CASE WHEN $8 THEN NOW() ELSE NULL END)
		RETURNING `+blogColumns,
		p.Title, p.Slug, p.Body, p.Excerpt, p.FeaturedImageURL,
		p.MetaDescription, p.MetaKeywords, p.Published, p.AuthorID)
	created, err := scanBlogPost(row)
	if err != nil {
		return nil, fmt.Errorf("create blog post: %w", err)
	}
	return created, nil
}

// FindByID retrieves a post by UUID. Returns nil if not found.
func (s *BlogStore) FindByID(id uuid.UUID) (*models.BlogPost, error) {
	row := s.db.QueryRow(`SELECT `+blogColumns+` FROM blog_posts WHERE id = $1`, id)
	p, err := scanBlogPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find blog post by id: %w", err)
	}
	return p, nil
}

// FindBySlug retrieves a post by its URL slug. Returns nil if not found.
func (s *BlogStore) FindBySlug(slug string) (*models.BlogPost, error) {
	row := s.db.QueryRow(`SELECT `+blogColumns+` FROM blog_posts WHERE slug = $1`, slug)
	p, err := scanBlogPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find blog post by slug: %w", err)
	}
	return p, nil
}

// SlugExists reports whether a slug is already taken, excluding the
// given post ID (pass uuid.Nil when creating).
func (s *BlogStore) SlugExists(slug string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS (SELECT 1 FROM blog_posts WHERE slug = $1 AND id <> $2)
	`, slug, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check blog slug: %w", err)
	}
	return exists, nil
}

// List returns all posts, drafts included, newest first. Used by the admin.
func (s *BlogStore) List() ([]models.BlogPost, error) {
	rows, err := s.db.Query(`SELECT ` + blogColumns + ` FROM blog_posts ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list blog posts: %w", err)
	}
	defer rows.Close()
	return collectBlogPosts(rows)
}

// ListPublished returns published posts newest first. Used by the public site.
func (s *BlogStore) ListPublished(limit, offset int) ([]models.BlogPost, error) {
	rows, err := s.db.Query(`
		SELECT `+blogColumns+`
		FROM blog_posts
		WHERE published = TRUE
		ORDER BY published_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list published posts: %w", err)
	}
	defer rows.Close()
	return collectBlogPosts(rows)
}

func collectBlogPosts(rows *sql.Rows) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	for rows.Next() {
		p, err := scanBlogPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan blog post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// Update modifies a post. published_at is stamped on the draft-to-published
// transition and preserved otherwise. Returns nil if the post does not exist.
func (s *BlogStore) Update(p *models.BlogPost) (*models.BlogPost, error) {
	row := s.db.QueryRow(`
		UPDATE blog_posts SET
			title = $1, slug = $2, body = $3, excerpt = $4,
			featured_image_url = $5, meta_description = $6, meta_keywords = $7,
			published = $8, author_id = $9,
			published_at = CASE
				WHEN $8 AND published_at IS NULL THEN NOW()
				WHEN NOT $8 THEN NULL
				ELSE published_at
			END,
			updated_at = NOW()
		WHERE id = $10
		RETURNING `+blogColumns,
		p.Title, p.Slug, p.Body, p.Excerpt,
		p.FeaturedImageURL, p.MetaDescription, p.MetaKeywords,
		p.Published, p.AuthorID, p.ID)
	updated, err := scanBlogPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update blog post: %w", err)
	}
	return updated, nil
}

// Delete removes a post and returns it so the caller can clean up the
// featured image object. Returns nil if the post does not exist.
func (s *BlogStore) Delete(id uuid.UUID) (*models.BlogPost, error) {
	row := s.db.QueryRow(`
		DELETE FROM blog_posts WHERE id = $1
		RETURNING `+blogColumns, id)
	p, err := scanBlogPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete blog post: %w", err)
	}
	return p, nil
}

// CountPublished returns the number of published posts, for pagination.
func (s *BlogStore) CountPublished() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM blog_posts WHERE published = TRUE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count published posts: %w", err)
	}
	return count, nil
}
