package dto

import (
	"github.com/marcus102/AGROVIE-sub002/internal/models"
)

// AuthResponse returns the user and token pair after register/login.
type AuthResponse struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in_seconds"`
}

// WizardStepResponse reports a step transition outcome. Errors holds the
// per-field validation messages when the transition was blocked.
type WizardStepResponse struct {
	Step   int                  `json:"step"`
	Draft  *models.MissionDraft `json:"draft,omitempty"`
	Errors map[string]string    `json:"errors,omitempty"`
}

// PriceQuoteResponse returns a computed price and the derived final price.
type PriceQuoteResponse struct {
	OriginalPrice int64 `json:"original_price"`
	FinalPrice    int64 `json:"final_price"`
}

// MissionListResponse wraps a paginated mission listing.
type MissionListResponse struct {
	Missions []models.Mission `json:"missions"`
	Total    int              `json:"total"`
	Limit    int              `json:"limit"`
	Offset   int              `json:"offset"`
}

// EarningsResponse reports the derived earnings for a tracking record.
type EarningsResponse struct {
	TrackingID      string `json:"tracking_id"`
	CompletionRate  int    `json:"completion_rate"`
	CurrentEarnings int64  `json:"current_earnings"`
}
