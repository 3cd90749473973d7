package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/marcus102/AGROVIE-sub002/internal/models"
	"github.com/marcus102/AGROVIE-sub002/internal/pkg/apperror"
)

// TemplateRepository persists quick start mission templates.
type TemplateRepository struct {
	db *sqlx.DB
}

// NewTemplateRepository creates a new instance.
func NewTemplateRepository(db *sqlx.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// Create inserts a template.
func (r *TemplateRepository) Create(ctx context.Context, template *models.MissionTemplate) error {
	query := `
		INSERT INTO mission_templates (user_id, name, draft)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	if err := r.db.QueryRowxContext(ctx, query, template.UserID, template.Name, template.Draft).
		Scan(&template.ID, &template.CreatedAt, &template.UpdatedAt); err != nil {
		return fmt.Errorf("template repository: create %w", err)
	}
	return nil
}

// GetByID returns a template by id.
func (r *TemplateRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.MissionTemplate, error) {
	var template models.MissionTemplate
	query := `SELECT id, user_id, name, draft, created_at, updated_at FROM mission_templates WHERE id = $1`
	if err := r.db.GetContext(ctx, &template, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.ErrTemplateNotFound
		}
		return nil, fmt.Errorf("template repository: get by id %w", err)
	}
	return &template, nil
}

// ListByUser returns the user's templates.
func (r *TemplateRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.MissionTemplate, error) {
	var templates []models.MissionTemplate
	query := `SELECT id, user_id, name, draft, created_at, updated_at FROM mission_templates WHERE user_id = $1 ORDER BY updated_at DESC`
	if err := r.db.SelectContext(ctx, &templates, query, userID); err != nil {
		return nil, fmt.Errorf("template repository: list by user %w", err)
	}
	return templates, nil
}

// Update replaces the template's name and draft.
func (r *TemplateRepository) Update(ctx context.Context, template *models.MissionTemplate) error {
	query := `
		UPDATE mission_templates
		SET name = $3, draft = $4, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, template.ID, template.UserID, template.Name, template.Draft)
	if err != nil {
		return fmt.Errorf("template repository: update %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("template repository: update rows %w", err)
	}
	if affected == 0 {
		return apperror.ErrTemplateNotFound
	}
	return nil
}

// Delete removes a template owned by the user.
func (r *TemplateRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM mission_templates WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("template repository: delete %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("template repository: delete rows %w", err)
	}
	if affected == 0 {
		return apperror.ErrTemplateNotFound
	}
	return nil
}
