package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Mission is a persisted mission created through the wizard.
type Mission struct {
	ID                      uuid.UUID      `db:"id" json:"id"`
	UserID                  uuid.UUID      `db:"user_id" json:"user_id"`
	Title                   string         `db:"title" json:"title"`
	Description             string         `db:"description" json:"description"`
	Location                string         `db:"location" json:"location"`
	StartDate               time.Time      `db:"start_date" json:"start_date"`
	EndDate                 time.Time      `db:"end_date" json:"end_date"`
	ActorRole               string         `db:"actor_role" json:"actor_role"`
	Specialization          *string        `db:"specialization" json:"specialization,omitempty"`
	OtherSpecialization     *string        `db:"other_specialization" json:"other_specialization,omitempty"`
	NeededActorAmount       int            `db:"needed_actor_amount" json:"needed_actor_amount"`
	ExperienceLevel         string         `db:"experience_level" json:"experience_level"`
	SurfaceArea             float64        `db:"surface_area" json:"surface_area"`
	SurfaceUnit             string         `db:"surface_unit" json:"surface_unit"`
	Equipment               bool           `db:"equipment" json:"equipment"`
	Advantages              pq.StringArray `db:"advantages" json:"proposed_advantages"`
	Images                  pq.StringArray `db:"images" json:"mission_images"`
	OriginalPrice           int64          `db:"original_price" json:"original_price"`
	OriginalPriceStatus     string         `db:"original_price_status" json:"original_price_status"`
	AdjustmentPrice         int64          `db:"adjustment_price" json:"adjustment_price"`
	AdjustmentPriceStatus   string         `db:"adjustment_price_status" json:"adjustment_price_status"`
	FinalPrice              int64          `db:"final_price" json:"final_price"`
	PersonalizedExpression  *string        `db:"personalized_expression" json:"personalized_expression,omitempty"`
	Status                  string         `db:"status" json:"status"`
	Applicants              []uuid.UUID    `db:"-" json:"applicants"`
	IsPromoted              bool           `db:"is_promoted" json:"is_promoted"`
	PromotedUntil           *time.Time     `db:"promoted_until" json:"promoted_until,omitempty"`
	CreatedAt               time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt               time.Time      `db:"updated_at" json:"updated_at"`
}

// MissionDraft is the wizard's working state. It lives on the client and in
// request payloads; it is persisted only once converted into a Mission.
type MissionDraft struct {
	Title                  string     `json:"title"`
	Description            string     `json:"description"`
	Location               string     `json:"location"`
	StartDate              *time.Time `json:"start_date,omitempty"`
	EndDate                *time.Time `json:"end_date,omitempty"`
	ActorRole              string     `json:"actor_role"`
	Specialization         string     `json:"specialization"`
	OtherSpecialization    string     `json:"other_specialization"`
	NeededActorAmount      int        `json:"needed_actor_amount"`
	ExperienceLevel        string     `json:"experience_level"`
	SurfaceArea            float64    `json:"surface_area"`
	SurfaceUnit            string     `json:"surface_unit"`
	Equipment              bool       `json:"equipment"`
	Advantages             []string   `json:"proposed_advantages"`
	Images                 []string   `json:"mission_images"`
	OriginalPrice          *int64     `json:"original_price,omitempty"`
	AdjustmentPrice        int64      `json:"adjustment_price"`
	FinalPrice             int64      `json:"final_price"`
	PersonalizedExpression string     `json:"personalized_expression"`
}

// RecomputeFinalPrice re-derives final_price from its operands. The invariant
// final = original + adjustment holds whenever either side changes.
func (d *MissionDraft) RecomputeFinalPrice() {
	var original int64
	if d.OriginalPrice != nil {
		original = *d.OriginalPrice
	}
	d.FinalPrice = original + d.AdjustmentPrice
}

// SetOriginalPrice sets the computed price and re-derives final_price.
func (d *MissionDraft) SetOriginalPrice(price int64) {
	d.OriginalPrice = &price
	d.RecomputeFinalPrice()
}

// SetAdjustmentPrice sets the manual adjustment and re-derives final_price.
func (d *MissionDraft) SetAdjustmentPrice(amount int64) {
	d.AdjustmentPrice = amount
	d.RecomputeFinalPrice()
}
