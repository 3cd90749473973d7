package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/marcus102/AGROVIE-sub002/internal/models"
	"github.com/marcus102/AGROVIE-sub002/internal/pkg/apperror"
)

// MissionRepository persists missions and their applicants.
type MissionRepository struct {
	db *sqlx.DB
}

// NewMissionRepository creates a new instance.
func NewMissionRepository(db *sqlx.DB) *MissionRepository {
	return &MissionRepository{db: db}
}

const missionColumns = `
	id, user_id, title, description, location, start_date, end_date,
	actor_role, specialization, other_specialization, needed_actor_amount,
	experience_level, surface_area, surface_unit, equipment, advantages,
	images, original_price, original_price_status, adjustment_price,
	adjustment_price_status, final_price, personalized_expression, status,
	is_promoted, promoted_until, created_at, updated_at
`

// Create inserts a mission and returns its server-assigned fields.
func (r *MissionRepository) Create(ctx context.Context, mission *models.Mission) error {
	query := `
		INSERT INTO missions (
			user_id, title, description, location, start_date, end_date,
			actor_role, specialization, other_specialization, needed_actor_amount,
			experience_level, surface_area, surface_unit, equipment, advantages,
			images, original_price, original_price_status, adjustment_price,
			adjustment_price_status, final_price, personalized_expression, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
		RETURNING id, created_at, updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx,
		query,
		mission.UserID,
		mission.Title,
		mission.Description,
		mission.Location,
		mission.StartDate,
		mission.EndDate,
		mission.ActorRole,
		mission.Specialization,
		mission.OtherSpecialization,
		mission.NeededActorAmount,
		mission.ExperienceLevel,
		mission.SurfaceArea,
		mission.SurfaceUnit,
		mission.Equipment,
		mission.Advantages,
		mission.Images,
		mission.OriginalPrice,
		mission.OriginalPriceStatus,
		mission.AdjustmentPrice,
		mission.AdjustmentPriceStatus,
		mission.FinalPrice,
		mission.PersonalizedExpression,
		mission.Status,
	).Scan(&mission.ID, &mission.CreatedAt, &mission.UpdatedAt); err != nil {
		return fmt.Errorf("mission repository: create %w", err)
	}

	return nil
}

// GetByID returns a mission by id.
func (r *MissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Mission, error) {
	var mission models.Mission
	query := `SELECT ` + missionColumns + ` FROM missions WHERE id = $1`
	if err := r.db.GetContext(ctx, &mission, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.ErrMissionNotFound
		}
		return nil, fmt.Errorf("mission repository: get by id %w", err)
	}
	return &mission, nil
}

// MissionListParams filters the mission listing.
type MissionListParams struct {
	Status         string
	ActorRole      string
	Specialization string
	OwnerID        *uuid.UUID
	Search         string
	Limit          int
	Offset         int
}

// List returns missions matching the filter plus the total match count.
func (r *MissionRepository) List(ctx context.Context, params MissionListParams) ([]models.Mission, int, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	idx := 1

	addCondition := func(cond string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(cond, idx))
		args = append(args, value)
		idx++
	}

	if params.Status != "" {
		addCondition("status = $%d", params.Status)
	}
	if params.ActorRole != "" {
		addCondition("actor_role = $%d", params.ActorRole)
	}
	if params.Specialization != "" {
		addCondition("specialization = $%d", params.Specialization)
	}
	if params.OwnerID != nil {
		addCondition("user_id = $%d", *params.OwnerID)
	}
	if params.Search != "" {
		addCondition("(title ILIKE $%d OR description ILIKE '%%' || $%[1]d || '%%')", "%"+params.Search+"%")
	}

	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM missions WHERE ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("mission repository: count %w", err)
	}

	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	query := fmt.Sprintf(
		`SELECT %s FROM missions WHERE %s ORDER BY is_promoted DESC, created_at DESC LIMIT $%d OFFSET $%d`,
		missionColumns, where, idx, idx+1,
	)
	args = append(args, limit, params.Offset)

	var missions []models.Mission
	if err := r.db.SelectContext(ctx, &missions, query, args...); err != nil {
		return nil, 0, fmt.Errorf("mission repository: list %w", err)
	}

	return missions, total, nil
}

// ListByOwner returns every mission created by a user.
func (r *MissionRepository) ListByOwner(ctx context.Context, userID uuid.UUID) ([]models.Mission, error) {
	var missions []models.Mission
	query := `SELECT ` + missionColumns + ` FROM missions WHERE user_id = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &missions, query, userID); err != nil {
		return nil, fmt.Errorf("mission repository: list by owner %w", err)
	}
	return missions, nil
}

// AddApplicant records an application. The insert is conditional on the pair
// not existing yet, so the applicants list grows without duplicates. Returns
// false when the user had already applied.
func (r *MissionRepository) AddApplicant(ctx context.Context, missionID, userID uuid.UUID) (bool, error) {
	query := `
		INSERT INTO mission_applicants (mission_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (mission_id, user_id) DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, query, missionID, userID)
	if err != nil {
		return false, fmt.Errorf("mission repository: add applicant %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mission repository: add applicant rows %w", err)
	}
	return affected > 0, nil
}

// ListApplicants returns the applicant user ids of a mission.
func (r *MissionRepository) ListApplicants(ctx context.Context, missionID uuid.UUID) ([]uuid.UUID, error) {
	var applicants []uuid.UUID
	query := `SELECT user_id FROM mission_applicants WHERE mission_id = $1 ORDER BY created_at`
	if err := r.db.SelectContext(ctx, &applicants, query, missionID); err != nil {
		return nil, fmt.Errorf("mission repository: list applicants %w", err)
	}
	return applicants, nil
}

// IsApplicant reports whether the user applied to the mission.
func (r *MissionRepository) IsApplicant(ctx context.Context, missionID, userID uuid.UUID) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM mission_applicants WHERE mission_id = $1 AND user_id = $2`
	if err := r.db.GetContext(ctx, &count, query, missionID, userID); err != nil {
		return false, fmt.Errorf("mission repository: is applicant %w", err)
	}
	return count > 0, nil
}

// UpdateStatus sets a mission status.
func (r *MissionRepository) UpdateStatus(ctx context.Context, missionID uuid.UUID, status string) error {
	query := `UPDATE missions SET status = $2, updated_at = NOW() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, missionID, status)
	if err != nil {
		return fmt.Errorf("mission repository: update status %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mission repository: update status rows %w", err)
	}
	if affected == 0 {
		return apperror.ErrMissionNotFound
	}
	return nil
}
