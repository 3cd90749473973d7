package models

import (
	"time"

	"github.com/google/uuid"
)

// PricingRule holds the price formula parameters for one
// (role, specialization, experience, surface unit) combination.
// Rules are seeded by the backend and read-only for the API.
type PricingRule struct {
	ID                      uuid.UUID `db:"id" json:"id"`
	ActorRole               string    `db:"actor_role" json:"actor_rank"`
	Specialization          string    `db:"specialization" json:"actor_specialization"`
	ExperienceLevel         string    `db:"experience_level" json:"experience_level"`
	SurfaceUnit             string    `db:"surface_unit" json:"surface_unit"`
	SpecializationBasePrice float64   `db:"specialization_base_price" json:"specialization_base_price"`
	ExperienceMultiplier    float64   `db:"experience_multiplier" json:"experience_multiplier"`
	SurfaceUnitPrice        float64   `db:"surface_unit_price" json:"surface_unit_price"`
	EquipmentsPrice         float64   `db:"equipments_price" json:"equipments_price"`
	AdvantagesReduction     float64   `db:"advantages_reduction" json:"advantages_reduction"`
	PricePerKilometer       float64   `db:"price_per_kilometer" json:"price_per_kilometer"`
	PricePerHour            float64   `db:"price_per_hour" json:"price_per_hour"`
	CreatedAt               time.Time `db:"created_at" json:"created_at"`
}

// PricingCriteria is the lookup fingerprint for a rule.
type PricingCriteria struct {
	ActorRole       string `json:"actor_rank"`
	Specialization  string `json:"actor_specialization"`
	ExperienceLevel string `json:"experience_level"`
	SurfaceUnit     string `json:"surface_unit"`
}
