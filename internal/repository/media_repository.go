package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/marcus102/AGROVIE-sub002/internal/models"
	"github.com/marcus102/AGROVIE-sub002/internal/pkg/apperror"
)

// MediaRepository persists uploaded media file records.
type MediaRepository struct {
	db *sqlx.DB
}

// NewMediaRepository creates a new instance.
func NewMediaRepository(db *sqlx.DB) *MediaRepository {
	return &MediaRepository{db: db}
}

// Create inserts a media record.
func (r *MediaRepository) Create(ctx context.Context, media *models.MediaFile) error {
	query := `
		INSERT INTO media_files (user_id, file_path, file_type, file_size)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	if err := r.db.QueryRowxContext(ctx, query, media.UserID, media.FilePath, media.FileType, media.FileSize).
		Scan(&media.ID, &media.CreatedAt); err != nil {
		return fmt.Errorf("media repository: create %w", err)
	}
	return nil
}

// GetByID returns a media record by id.
func (r *MediaRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.MediaFile, error) {
	var media models.MediaFile
	query := `SELECT id, user_id, file_path, file_type, file_size, created_at FROM media_files WHERE id = $1`
	if err := r.db.GetContext(ctx, &media, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.New(apperror.ErrCodeNotFound, "media file not found")
		}
		return nil, fmt.Errorf("media repository: get by id %w", err)
	}
	return &media, nil
}

// CountByPaths counts the user's media records among the given paths.
// The mission submission uses it to verify every referenced image finished
// uploading.
func (r *MediaRepository) CountByPaths(ctx context.Context, userID uuid.UUID, paths []string) (int, error) {
	if len(paths) == 0 {
		return 0, nil
	}

	var count int
	query := `SELECT COUNT(DISTINCT file_path) FROM media_files WHERE user_id = $1 AND file_path = ANY($2)`
	if err := r.db.GetContext(ctx, &count, query, userID, pq.Array(paths)); err != nil {
		return 0, fmt.Errorf("media repository: count by paths %w", err)
	}
	return count, nil
}

// Delete removes a media record owned by the user and returns its path.
func (r *MediaRepository) Delete(ctx context.Context, id, userID uuid.UUID) (string, error) {
	var filePath string
	query := `DELETE FROM media_files WHERE id = $1 AND user_id = $2 RETURNING file_path`
	if err := r.db.GetContext(ctx, &filePath, query, id, userID); err != nil {
		if err == sql.ErrNoRows {
			return "", apperror.New(apperror.ErrCodeNotFound, "media file not found")
		}
		return "", fmt.Errorf("media repository: delete %w", err)
	}
	return filePath, nil
}
