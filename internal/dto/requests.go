package dto

import (
	"github.com/marcus102/AGROVIE-sub002/internal/models"
)

// RegisterRequest is the payload for account registration.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginRequest is the payload for login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries a refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// WizardStepRequest carries the wizard position and the working draft.
// Drafts live on the client; the server validates and prices them.
type WizardStepRequest struct {
	Step  int                 `json:"step" binding:"required"`
	Draft models.MissionDraft `json:"draft"`
}

// WizardJumpRequest carries a direct step navigation from the review step.
type WizardJumpRequest struct {
	From  int                 `json:"from" binding:"required"`
	To    int                 `json:"to" binding:"required"`
	Draft models.MissionDraft `json:"draft"`
}

// AdjustPriceRequest sets the manual price adjustment on a draft.
type AdjustPriceRequest struct {
	Draft      models.MissionDraft `json:"draft"`
	Adjustment int64               `json:"adjustment_price"`
}

// SubmitMissionRequest carries the final draft for submission.
type SubmitMissionRequest struct {
	Draft models.MissionDraft `json:"draft"`
}

// PriceQuoteRequest requests a standalone price calculation for a draft.
type PriceQuoteRequest struct {
	Draft models.MissionDraft `json:"draft"`
}

// UpdateMissionStatusRequest changes a mission status.
type UpdateMissionStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// StartTrackingRequest starts tracking a mission.
type StartTrackingRequest struct {
	MissionID  string `json:"mission_id" binding:"required"`
	TotalTasks int    `json:"total_tasks" binding:"required"`
}

// AddTimeRequest records worked minutes on a tracking.
type AddTimeRequest struct {
	Minutes int `json:"minutes" binding:"required"`
}

// SaveTemplateRequest saves a quick start template.
type SaveTemplateRequest struct {
	Name  string              `json:"name" binding:"required"`
	Draft models.MissionDraft `json:"draft"`
}
