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

// TrackingRepository persists mission tracking records.
type TrackingRepository struct {
	db *sqlx.DB
}

// NewTrackingRepository creates a new instance.
func NewTrackingRepository(db *sqlx.DB) *TrackingRepository {
	return &TrackingRepository{db: db}
}

const trackingColumns = `
	id, mission_id, user_id, status, tasks_completed, total_tasks,
	completion_rate, time_worked_minutes, earnings, created_at, updated_at
`

// Create inserts a tracking record. The (mission_id, user_id) pair is unique.
func (r *TrackingRepository) Create(ctx context.Context, tracking *models.MissionTracking) error {
	query := `
		INSERT INTO mission_tracking (mission_id, user_id, status, tasks_completed, total_tasks, completion_rate, time_worked_minutes, earnings)
		VALUES ($1, $2, $3, 0, $4, 0, 0, 0)
		RETURNING id, created_at, updated_at
	`
	if err := r.db.QueryRowxContext(
		ctx,
		query,
		tracking.MissionID,
		tracking.UserID,
		tracking.Status,
		tracking.TotalTasks,
	).Scan(&tracking.ID, &tracking.CreatedAt, &tracking.UpdatedAt); err != nil {
		return fmt.Errorf("tracking repository: create %w", err)
	}
	return nil
}

// GetByID returns a tracking record by id.
func (r *TrackingRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.MissionTracking, error) {
	var tracking models.MissionTracking
	query := `SELECT ` + trackingColumns + ` FROM mission_tracking WHERE id = $1`
	if err := r.db.GetContext(ctx, &tracking, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.ErrTrackingNotFound
		}
		return nil, fmt.Errorf("tracking repository: get by id %w", err)
	}
	return &tracking, nil
}

// GetByMissionAndUser returns the record for a (mission, worker) pair.
func (r *TrackingRepository) GetByMissionAndUser(ctx context.Context, missionID, userID uuid.UUID) (*models.MissionTracking, error) {
	var tracking models.MissionTracking
	query := `SELECT ` + trackingColumns + ` FROM mission_tracking WHERE mission_id = $1 AND user_id = $2`
	if err := r.db.GetContext(ctx, &tracking, query, missionID, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.ErrTrackingNotFound
		}
		return nil, fmt.Errorf("tracking repository: get by mission and user %w", err)
	}
	return &tracking, nil
}

// ListByUser returns all tracking records of a worker.
func (r *TrackingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.MissionTracking, error) {
	var trackings []models.MissionTracking
	query := `SELECT ` + trackingColumns + ` FROM mission_tracking WHERE user_id = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &trackings, query, userID); err != nil {
		return nil, fmt.Errorf("tracking repository: list by user %w", err)
	}
	return trackings, nil
}

// UpdateStatus sets the tracking status.
func (r *TrackingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE mission_tracking SET status = $2, updated_at = NOW() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("tracking repository: update status %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("tracking repository: update status rows %w", err)
	}
	if affected == 0 {
		return apperror.ErrTrackingNotFound
	}
	return nil
}

// CompleteTask increments tasks_completed and stores the derived fields.
// The guard keeps tasks_completed from ever passing total_tasks, so the
// idempotency boundary holds even with racing clients.
func (r *TrackingRepository) CompleteTask(ctx context.Context, id uuid.UUID, completionRate int, earnings int64) (bool, error) {
	query := `
		UPDATE mission_tracking
		SET tasks_completed = tasks_completed + 1,
		    completion_rate = $2,
		    earnings = $3,
		    updated_at = NOW()
		WHERE id = $1 AND tasks_completed < total_tasks
	`
	res, err := r.db.ExecContext(ctx, query, id, completionRate, earnings)
	if err != nil {
		return false, fmt.Errorf("tracking repository: complete task %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("tracking repository: complete task rows %w", err)
	}
	return affected > 0, nil
}

// AddTime accumulates worked minutes.
func (r *TrackingRepository) AddTime(ctx context.Context, id uuid.UUID, minutes int) error {
	query := `UPDATE mission_tracking SET time_worked_minutes = time_worked_minutes + $2, updated_at = NOW() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, minutes)
	if err != nil {
		return fmt.Errorf("tracking repository: add time %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("tracking repository: add time rows %w", err)
	}
	if affected == 0 {
		return apperror.ErrTrackingNotFound
	}
	return nil
}
