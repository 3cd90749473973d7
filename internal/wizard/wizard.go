// Package wizard implements the multi-step mission creation state machine.
// Steps are linear; a transition is accepted only after the current step
// validates, and leaving the pricing step requires a successful price quote.
package wizard

import (
	"context"
	"fmt"
	"time"

	"github.com/marcus102/AGROVIE-sub002/internal/models"
	"github.com/marcus102/AGROVIE-sub002/internal/pkg/apperror"
	"github.com/marcus102/AGROVIE-sub002/internal/validation"
)

// Step identifies a wizard step.
type Step int

const (
	StepBasics Step = iota + 1
	StepRequirements
	StepPricing
	StepMedia
	StepReview
)

const (
	FirstStep = StepBasics
	LastStep  = StepReview
)

// String returns the step name.
func (s Step) String() string {
	switch s {
	case StepBasics:
		return "basics"
	case StepRequirements:
		return "requirements"
	case StepPricing:
		return "pricing"
	case StepMedia:
		return "media"
	case StepReview:
		return "review"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// Valid reports whether the step exists.
func (s Step) Valid() bool {
	return s >= FirstStep && s <= LastStep
}

// ErrorMap maps field names to validation messages. Empty means valid.
type ErrorMap map[string]string

// PriceQuoter computes the original price for a validated draft. The wizard
// calls it exactly once per successful step 3 advancement.
type PriceQuoter interface {
	QuotePrice(ctx context.Context, draft *models.MissionDraft) (int64, error)
}

// Machine drives one wizard session around a single draft. The draft is
// owned exclusively by the session; the machine is not safe for concurrent
// use and does not need to be.
type Machine struct {
	quoter PriceQuoter
	now    func() time.Time
}

// New creates a wizard machine with the given price quoter.
func New(quoter PriceQuoter) *Machine {
	return &Machine{quoter: quoter, now: time.Now}
}

// ValidateStep checks the draft fields required by one step. It is pure:
// the draft is not mutated and no backend call is made.
func (m *Machine) ValidateStep(step Step, draft *models.MissionDraft) ErrorMap {
	errs := ErrorMap{}

	switch step {
	case StepBasics:
		m.validateBasics(draft, errs)
	case StepRequirements:
		m.validateRequirements(draft, errs)
	case StepPricing:
		m.validatePricingInputs(draft, errs)
	case StepMedia:
		m.validateMedia(draft, errs)
	case StepReview:
		// Review revalidates everything and requires a computed price.
		m.validateBasics(draft, errs)
		m.validateRequirements(draft, errs)
		m.validatePricingInputs(draft, errs)
		m.validateMedia(draft, errs)
		if draft.OriginalPrice == nil {
			errs["original_price"] = "price has not been calculated"
		}
	default:
		errs["step"] = fmt.Sprintf("unknown step %d", int(step))
	}

	return errs
}

// Advance validates the current step and returns the next one. At the
// pricing step it additionally resolves the price quote before the
// transition; on quote failure the wizard stays on the pricing step.
// Validation always happens before pricing, pricing before the transition.
func (m *Machine) Advance(ctx context.Context, current Step, draft *models.MissionDraft) (Step, ErrorMap, error) {
	if !current.Valid() {
		return current, nil, apperror.New(apperror.ErrCodeBadRequest, fmt.Sprintf("unknown step %d", int(current)))
	}
	if current == LastStep {
		return current, nil, apperror.New(apperror.ErrCodeStateTransition, "already on the review step")
	}

	if errs := m.ValidateStep(current, draft); len(errs) > 0 {
		return current, errs, nil
	}

	if current == StepPricing {
		price, err := m.quoter.QuotePrice(ctx, draft)
		if err != nil {
			return current, nil, err
		}
		draft.SetOriginalPrice(price)
	}

	return current + 1, nil, nil
}

// Retreat moves to the previous step without validation.
func (m *Machine) Retreat(current Step) Step {
	if current <= FirstStep {
		return FirstStep
	}
	return current - 1
}

// JumpTo moves directly to a step for editing. Allowed only from review.
func (m *Machine) JumpTo(from, to Step) (Step, error) {
	if from != StepReview {
		return from, apperror.New(apperror.ErrCodeStateTransition, "direct step navigation is only allowed from the review step")
	}
	if !to.Valid() {
		return from, apperror.New(apperror.ErrCodeBadRequest, fmt.Sprintf("unknown step %d", int(to)))
	}
	return to, nil
}

func (m *Machine) validateBasics(draft *models.MissionDraft, errs ErrorMap) {
	if err := validation.ValidateTitle(draft.Title); err != nil {
		errs["title"] = err.Error()
	}
	if err := validation.ValidateDescription(draft.Description); err != nil {
		errs["description"] = err.Error()
	}
	if err := validation.ValidateLocation(draft.Location); err != nil {
		errs["location"] = err.Error()
	}
	for field, msg := range validation.ValidateDateRange(draft.StartDate, draft.EndDate, m.now()) {
		errs[field] = msg
	}
}

func (m *Machine) validateRequirements(draft *models.MissionDraft, errs ErrorMap) {
	if _, ok := models.ValidActorRoles[draft.ActorRole]; !ok {
		errs["needed_actor"] = "a valid actor role is required"
		return
	}

	if models.RoleRequiresSpecialization(draft.ActorRole) {
		if draft.Specialization == "" {
			errs["actor_specialization"] = "specialization is required for this role"
		} else if _, ok := models.ValidSpecializations[draft.Specialization]; !ok {
			errs["actor_specialization"] = "unknown specialization"
		} else if draft.Specialization == models.SpecializationOther {
			if draft.OtherSpecialization == "" {
				errs["other_specialization"] = "custom specialization text is required"
			} else if err := validation.ValidateLength("custom specialization", draft.OtherSpecialization, 1, validation.MaxOtherSpecializationLength); err != nil {
				errs["other_specialization"] = err.Error()
			}
		}
	}

	if err := validation.ValidateActorAmount(draft.NeededActorAmount); err != nil {
		errs["needed_actor_amount"] = err.Error()
	}
	if _, ok := models.ValidExperienceLevels[draft.ExperienceLevel]; !ok {
		errs["required_experience_level"] = "a valid experience level is required"
	}
}

func (m *Machine) validatePricingInputs(draft *models.MissionDraft, errs ErrorMap) {
	if err := validation.ValidateSurfaceArea(draft.SurfaceArea); err != nil {
		errs["surface_area"] = err.Error()
	}
	if _, ok := models.ValidSurfaceUnits[draft.SurfaceUnit]; !ok {
		errs["surface_unit"] = "a valid surface unit is required"
	}
	for _, adv := range draft.Advantages {
		if _, ok := models.ValidAdvantages[adv]; !ok {
			errs["proposed_advantages"] = fmt.Sprintf("unknown advantage %q", adv)
			break
		}
	}
	if err := validation.ValidateLength("personalized expression", draft.PersonalizedExpression, 0, validation.MaxPersonalizedExpressionLength); err != nil {
		errs["personalized_expression"] = err.Error()
	}
}

func (m *Machine) validateMedia(draft *models.MissionDraft, errs ErrorMap) {
	// Images are optional; any present must be storage paths.
	if len(draft.Images) > validation.MaxImagesPerMission {
		errs["mission_images"] = fmt.Sprintf("at most %d images are allowed", validation.MaxImagesPerMission)
		return
	}
	for _, img := range draft.Images {
		if err := validation.ValidateImagePath(img); err != nil {
			errs["mission_images"] = err.Error()
			break
		}
	}
}
