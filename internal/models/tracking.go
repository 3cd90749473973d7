package models

import (
	"time"

	"github.com/google/uuid"
)

// MissionTracking is the per (mission, worker) progress record. Its lifecycle
// is separate from the mission's own status.
type MissionTracking struct {
	ID                uuid.UUID `db:"id" json:"id"`
	MissionID         uuid.UUID `db:"mission_id" json:"mission_id"`
	UserID            uuid.UUID `db:"user_id" json:"user_id"`
	Status            string    `db:"status" json:"status"`
	TasksCompleted    int       `db:"tasks_completed" json:"tasks_completed"`
	TotalTasks        int       `db:"total_tasks" json:"total_tasks"`
	CompletionRate    int       `db:"completion_rate" json:"completion_rate"`
	TimeWorkedMinutes int       `db:"time_worked_minutes" json:"time_worked_minutes"`
	Earnings          int64     `db:"earnings" json:"earnings"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}
