package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/marcus102/AGROVIE-sub002/internal/models"
)

// PricingRepository reads the seeded pricing rules.
type PricingRepository struct {
	db *sqlx.DB
}

// NewPricingRepository creates a new instance.
func NewPricingRepository(db *sqlx.DB) *PricingRepository {
	return &PricingRepository{db: db}
}

// FindRules returns every rule matching the criteria. The order is fixed
// (oldest first) so "first match wins" is deterministic for callers. An
// empty result is not an error at this layer.
func (r *PricingRepository) FindRules(ctx context.Context, criteria models.PricingCriteria) ([]models.PricingRule, error) {
	var rules []models.PricingRule
	query := `
		SELECT id, actor_role, specialization, experience_level, surface_unit,
		       specialization_base_price, experience_multiplier, surface_unit_price,
		       equipments_price, advantages_reduction, price_per_kilometer,
		       price_per_hour, created_at
		FROM pricing_rules
		WHERE actor_role = $1
		  AND specialization = $2
		  AND experience_level = $3
		  AND surface_unit = $4
		ORDER BY created_at, id
	`
	if err := r.db.SelectContext(ctx, &rules, query,
		criteria.ActorRole,
		criteria.Specialization,
		criteria.ExperienceLevel,
		criteria.SurfaceUnit,
	); err != nil {
		return nil, fmt.Errorf("pricing repository: find rules %w", err)
	}
	return rules, nil
}
