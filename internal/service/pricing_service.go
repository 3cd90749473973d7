package service

import (
	"context"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/marcus102/AGROVIE-sub002/internal/logger"
	"github.com/marcus102/AGROVIE-sub002/internal/metrics"
	"github.com/marcus102/AGROVIE-sub002/internal/models"
	"github.com/marcus102/AGROVIE-sub002/internal/pkg/apperror"
)

// PricingRuleRepository describes the pricing rule storage contract.
type PricingRuleRepository interface {
	// FindRules returns every rule matching the criteria in deterministic
	// order (oldest first).
	FindRules(ctx context.Context, criteria models.PricingCriteria) ([]models.PricingRule, error)
}

// RuleCache caches looked-up pricing rules. A nil cache disables caching.
type RuleCache interface {
	Get(ctx context.Context, criteria models.PricingCriteria) (*models.PricingRule, bool)
	Set(ctx context.Context, criteria models.PricingCriteria, rule *models.PricingRule)
}

// PricingService resolves pricing rules and computes mission prices.
type PricingService struct {
	rules PricingRuleRepository
	cache RuleCache
}

// NewPricingService creates a pricing service. cache may be nil.
func NewPricingService(rules PricingRuleRepository, cache RuleCache) *PricingService {
	return &PricingService{rules: rules, cache: cache}
}

// FetchRule returns the authoritative rule for the criteria. When several
// rules match, the first returned by the repository wins; no match fails
// with ErrNoPricingRule.
func (s *PricingService) FetchRule(ctx context.Context, criteria models.PricingCriteria) (*models.PricingRule, error) {
	if s.cache != nil {
		if rule, ok := s.cache.Get(ctx, criteria); ok {
			return rule, nil
		}
	}

	rules, err := s.rules.FindRules(ctx, criteria)
	if err != nil {
		metrics.PricingLookupFailures.Inc()
		return nil, apperror.Wrap(err, apperror.ErrCodePricingLookup, "pricing rule lookup failed")
	}
	if len(rules) == 0 {
		metrics.PricingLookupFailures.Inc()
		return nil, apperror.ErrNoPricingRule
	}
	if len(rules) > 1 {
		logger.Log.WithFields(logrus.Fields{
			"actor_role":       criteria.ActorRole,
			"specialization":   criteria.Specialization,
			"experience_level": criteria.ExperienceLevel,
			"surface_unit":     criteria.SurfaceUnit,
			"matches":          len(rules),
		}).Warn("multiple pricing rules match, using the first")
	}

	rule := rules[0]
	if s.cache != nil {
		s.cache.Set(ctx, criteria, &rule)
	}
	return &rule, nil
}

// QuotePrice resolves the rule for the draft and computes its base price.
// Implements the wizard's pricing boundary.
func (s *PricingService) QuotePrice(ctx context.Context, draft *models.MissionDraft) (int64, error) {
	criteria := models.PricingCriteria{
		ActorRole:       draft.ActorRole,
		Specialization:  draft.Specialization,
		ExperienceLevel: draft.ExperienceLevel,
		SurfaceUnit:     draft.SurfaceUnit,
	}

	timer := metrics.NewPriceCalculationTimer()
	defer timer.ObserveDuration()

	rule, err := s.FetchRule(ctx, criteria)
	if err != nil {
		return 0, err
	}

	price := CalculatePrice(rule, draft)
	metrics.PriceQuotes.Inc()
	return price, nil
}

// CalculatePrice turns a pricing rule and draft parameters into a base price.
//
//	base = specialization_base_price * experience_multiplier
//	base += surface_area * surface_unit_price
//	equipment adds equipments_price
//	any advantage applies the percentage reduction
//
// The result is rounded half away from zero, never negative.
func CalculatePrice(rule *models.PricingRule, draft *models.MissionDraft) int64 {
	base := rule.SpecializationBasePrice * rule.ExperienceMultiplier
	base += draft.SurfaceArea * rule.SurfaceUnitPrice
	if draft.Equipment {
		base += rule.EquipmentsPrice
	}
	if len(draft.Advantages) > 0 {
		base *= 1 - rule.AdvantagesReduction/100
	}

	result := int64(math.Round(base))
	if result < 0 {
		result = 0
	}
	return result
}
