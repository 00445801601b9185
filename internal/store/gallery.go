package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"reelpress/internal/models"
)

// GalleryStore handles gallery image and video database operations.
type GalleryStore struct {
	db *sql.DB
}

// NewGalleryStore creates a new GalleryStore with the given database connection.
func NewGalleryStore(db *sql.DB) *GalleryStore {
	return &GalleryStore{db: db}
}

const (
	galleryImageColumns = `id, url, alt_text, created_at`
	galleryVideoColumns = `id, url, alt_text, thumbnail_url, created_at`
)

func scanGalleryImage(scanner interface{ Scan(...any) error }) (*models.GalleryImage, error) {
	var img models.GalleryImage
	if err := scanner.Scan(&img.ID, &img.URL, &img.AltText, &img.CreatedAt); err != nil {
		return nil, err
	}
	return &img, nil
}

func scanGalleryVideo(scanner interface{ Scan(...any) error }) (*models.GalleryVideo, error) {
	var v models.GalleryVideo
	if err := scanner.Scan(&v.ID, &v.URL, &v.AltText, &v.ThumbnailURL, &v.CreatedAt); err != nil {
		return nil, err
	}
	return &v, nil
}

// CreateImages inserts a batch of gallery images in one transaction.
// The admin upload flow sends several files at once; either all rows
// land or none do.
func (s *GalleryStore) CreateImages(images []models.GalleryImage) ([]models.GalleryImage, error) {
	if len(images) == 0 {
		return nil, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin gallery insert: %w", err)
	}
	defer tx.Rollback()

	created := make([]models.GalleryImage, 0, len(images))
	for _, img := range images {
		row := tx.QueryRow(`
			INSERT INTO gallery_images (url, alt_text)
			VALUES ($1, $2)
			RETURNING `+galleryImageColumns,
			img.URL, img.AltText)
		c, err := scanGalleryImage(row)
		if err != nil {
			return nil, fmt.Errorf("insert gallery image: %w", err)
		}
		created = append(created, *c)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit gallery insert: %w", err)
	}
	return created, nil
}

// ListImages returns all gallery images ordered by creation date. The
// public page reorders them with the Redis display order.
func (s *GalleryStore) ListImages() ([]models.GalleryImage, error) {
	rows, err := s.db.Query(`SELECT ` + galleryImageColumns + ` FROM gallery_images ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list gallery images: %w", err)
	}
	defer rows.Close()

	var images []models.GalleryImage
	for rows.Next() {
		img, err := scanGalleryImage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan gallery image: %w", err)
		}
		images = append(images, *img)
	}
	return images, rows.Err()
}

// UpdateImage changes an image's alt text. Returns nil if not found.
func (s *GalleryStore) UpdateImage(id uuid.UUID, altText string) (*models.GalleryImage, error) {
	row := s.db.QueryRow(`
		UPDATE gallery_images SET alt_text = $1 WHERE id = $2
		RETURNING `+galleryImageColumns, altText, id)
	img, err := scanGalleryImage(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update gallery image: %w", err)
	}
	return img, nil
}

// DeleteImage removes an image and returns it so the caller can clean
// up the S3 object. Returns nil if the image does not exist.
func (s *GalleryStore) DeleteImage(id uuid.UUID) (*models.GalleryImage, error) {
	row := s.db.QueryRow(`
		DELETE FROM gallery_images WHERE id = $1
		RETURNING `+galleryImageColumns, id)
	img, err := scanGalleryImage(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete gallery image: %w", err)
	}
	return img, nil
}

// DeleteImages removes a batch of images in one transaction and returns
// the deleted rows so the caller can clean up the S3 objects. IDs with
// no matching row are skipped rather than failing the batch.
func (s *GalleryStore) DeleteImages(ids []uuid.UUID) ([]models.GalleryImage, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin gallery delete: %w", err)
	}
	defer tx.Rollback()

	var deleted []models.GalleryImage
	for _, id := range ids {
		row := tx.QueryRow(`
			DELETE FROM gallery_images WHERE id = $1
			RETURNING `+galleryImageColumns, id)
		img, err := scanGalleryImage(row)
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("delete gallery image: %w", err)
		}
		deleted = append(deleted, *img)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit gallery delete: %w", err)
	}
	return deleted, nil
}

// FindVideoByID retrieves a video by UUID. Returns nil if not found.
func (s *GalleryStore) FindVideoByID(id uuid.UUID) (*models.GalleryVideo, error) {
	row := s.db.QueryRow(`SELECT `+galleryVideoColumns+` FROM gallery_videos WHERE id = $1`, id)
	v, err := scanGalleryVideo(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find gallery video by id: %w", err)
	}
	return v, nil
}

// CreateVideo inserts a new gallery video.
func (s *GalleryStore) CreateVideo(v *models.GalleryVideo) (*models.GalleryVideo, error) {
	row := s.db.QueryRow(`
		INSERT INTO gallery_videos (url, alt_text, thumbnail_url)
		VALUES ($1, $2, $3)
		RETURNING `+galleryVideoColumns,
		v.URL, v.AltText, v.ThumbnailURL)
	created, err := scanGalleryVideo(row)
	if err != nil {
		return nil, fmt.Errorf("create gallery video: %w", err)
	}
	return created, nil
}

// ListVideos returns all gallery videos ordered by creation date.
func (s *GalleryStore) ListVideos() ([]models.GalleryVideo, error) {
	rows, err := s.db.Query(`SELECT ` + galleryVideoColumns + ` FROM gallery_videos ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list gallery videos: %w", err)
	}
	defer rows.Close()

	var videos []models.GalleryVideo
	for rows.Next() {
		v, err := scanGalleryVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan gallery video: %w", err)
		}
		videos = append(videos, *v)
	}
	return videos, rows.Err()
}

// UpdateVideo changes a video's alt text and thumbnail. Returns nil if
// not found.
func (s *GalleryStore) UpdateVideo(id uuid.UUID, altText string, thumbnailURL *string) (*models.GalleryVideo, error) {
	row := s.db.QueryRow(`
		UPDATE gallery_videos SET alt_text = $1, thumbnail_url = $2 WHERE id = $3
		RETURNING `+galleryVideoColumns, altText, thumbnailURL, id)
	v, err := scanGalleryVideo(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update gallery video: %w", err)
	}
	return v, nil
}

// DeleteVideo removes a video and returns it so the caller can clean up
// the video and thumbnail objects. Returns nil if the video does not exist.
func (s *GalleryStore) DeleteVideo(id uuid.UUID) (*models.GalleryVideo, error) {
	row := s.db.QueryRow(`
		DELETE FROM gallery_videos WHERE id = $1
		RETURNING `+galleryVideoColumns, id)
	v, err := scanGalleryVideo(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete gallery video: %w", err)
	}
	return v, nil
}
