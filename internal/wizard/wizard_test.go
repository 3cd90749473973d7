package wizard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/marcus102/AGROVIE-sub002/internal/models"
	"github.com/marcus102/AGROVIE-sub002/internal/pkg/apperror"
)

type mockQuoter struct {
	mock.Mock
}

func (m *mockQuoter) QuotePrice(ctx context.Context, draft *models.MissionDraft) (int64, error) {
	args := m.Called(ctx, draft)
	return args.Get(0).(int64), args.Error(1)
}

func validDraft() *models.MissionDraft {
	start := time.Now().Add(48 * time.Hour)
	end := start.Add(7 * 24 * time.Hour)
	return &models.MissionDraft{
		Title:             "Seasonal maize harvest",
		Description:       "Harvesting maize on a mid-size farm, housing nearby.",
		Location:          "Bobo-Dioulasso",
		StartDate:         &start,
		EndDate:           &end,
		ActorRole:         models.ActorRoleWorker,
		Specialization:    models.SpecializationCropProduction,
		NeededActorAmount: 3,
		ExperienceLevel:   models.ExperienceLevelQualified,
		SurfaceArea:       12,
		SurfaceUnit:       models.SurfaceUnitHectares,
		Equipment:         true,
		Advantages:        []string{models.AdvantageMeal},
	}
}

func TestValidateStep_BasicsMissingFields(t *testing.T) {
	m := New(nil)
	draft := &models.MissionDraft{}

	errs := m.ValidateStep(StepBasics, draft)

	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "description")
	assert.Contains(t, errs, "location")
	assert.Contains(t, errs, "start_date")
}

func TestValidateStep_BasicsValid(t *testing.T) {
	m := New(nil)

	errs := m.ValidateStep(StepBasics, validDraft())

	assert.Empty(t, errs)
}

func TestValidateStep_DatesInPast(t *testing.T) {
	m := New(nil)
	draft := validDraft()
	past := time.Now().Add(-24 * time.Hour)
	draft.StartDate = &past

	errs := m.ValidateStep(StepBasics, draft)

	assert.Contains(t, errs, "start_date")
}

func TestValidateStep_EndBeforeStart(t *testing.T) {
	m := New(nil)
	draft := validDraft()
	end := draft.StartDate.Add(-time.Hour)
	draft.EndDate = &end

	errs := m.ValidateStep(StepBasics, draft)

	assert.Contains(t, errs, "end_date")
}

func TestValidateStep_SpecializationRequiredForWorker(t *testing.T) {
	m := New(nil)
	draft := validDraft()
	draft.Specialization = ""

	errs := m.ValidateStep(StepRequirements, draft)

	assert.Contains(t, errs, "actor_specialization")
}

func TestValidateStep_EntrepreneurNeedsNoSpecialization(t *testing.T) {
	m := New(nil)
	draft := validDraft()
	draft.ActorRole = models.ActorRoleEntrepreneur
	draft.Specialization = ""

	errs := m.ValidateStep(StepRequirements, draft)

	assert.Empty(t, errs)
}

func TestValidateStep_OtherSpecializationNeedsText(t *testing.T) {
	m := New(nil)
	draft := validDraft()
	draft.Specialization = models.SpecializationOther
	draft.OtherSpecialization = ""

	errs := m.ValidateStep(StepRequirements, draft)

	assert.Contains(t, errs, "other_specialization")

	draft.OtherSpecialization = "vineyard pruning"
	errs = m.ValidateStep(StepRequirements, draft)
	assert.Empty(t, errs)
}

func TestValidateStep_UnknownAdvantageRejected(t *testing.T) {
	m := New(nil)
	draft := validDraft()
	draft.Advantages = []string{"company_car"}

	errs := m.ValidateStep(StepPricing, draft)

	assert.Contains(t, errs, "proposed_advantages")
}

func TestValidateStep_ReviewRequiresComputedPrice(t *testing.T) {
	m := New(nil)
	draft := validDraft()

	errs := m.ValidateStep(StepReview, draft)
	assert.Contains(t, errs, "original_price")

	draft.SetOriginalPrice(1500)
	errs = m.ValidateStep(StepReview, draft)
	assert.Empty(t, errs)
}

func TestAdvance_HappyPathThroughAllSteps(t *testing.T) {
	quoter := new(mockQuoter)
	m := New(quoter)
	ctx := context.Background()
	draft := validDraft()

	quoter.On("QuotePrice", ctx, draft).Return(int64(1740), nil).Once()

	step := FirstStep
	for step != LastStep {
		next, errs, err := m.Advance(ctx, step, draft)
		assert.NoError(t, err)
		assert.Empty(t, errs)
		assert.Equal(t, step+1, next)
		step = next
	}

	assert.NotNil(t, draft.OriginalPrice)
	assert.Equal(t, int64(1740), *draft.OriginalPrice)
	assert.Equal(t, int64(1740), draft.FinalPrice)
	quoter.AssertExpectations(t)
}

func TestAdvance_ValidationFailureStaysOnStep(t *testing.T) {
	quoter := new(mockQuoter)
	m := New(quoter)
	draft := validDraft()
	draft.Title = ""

	next, errs, err := m.Advance(context.Background(), StepBasics, draft)

	assert.NoError(t, err)
	assert.Equal(t, StepBasics, next)
	assert.Contains(t, errs, "title")
	quoter.AssertNotCalled(t, "QuotePrice", mock.Anything, mock.Anything)
}

func TestAdvance_QuoteFailureStaysOnPricingStep(t *testing.T) {
	quoter := new(mockQuoter)
	m := New(quoter)
	ctx := context.Background()
	draft := validDraft()

	quoter.On("QuotePrice", ctx, draft).Return(int64(0), apperror.ErrNoPricingRule)

	next, errs, err := m.Advance(ctx, StepPricing, draft)

	assert.Equal(t, StepPricing, next)
	assert.Empty(t, errs)
	assert.True(t, apperror.IsPricingLookup(err))
	assert.Nil(t, draft.OriginalPrice)
}

func TestAdvance_FromReviewRejected(t *testing.T) {
	m := New(nil)

	_, _, err := m.Advance(context.Background(), StepReview, validDraft())

	assert.True(t, apperror.IsStateTransition(err))
}

func TestRetreat_NeverValidatesAndClampsAtFirst(t *testing.T) {
	m := New(nil)

	// A completely empty draft retreats fine.
	assert.Equal(t, StepPricing, m.Retreat(StepMedia))
	assert.Equal(t, FirstStep, m.Retreat(StepBasics))
}

func TestJumpTo_OnlyFromReview(t *testing.T) {
	m := New(nil)

	step, err := m.JumpTo(StepReview, StepBasics)
	assert.NoError(t, err)
	assert.Equal(t, StepBasics, step)

	_, err = m.JumpTo(StepMedia, StepBasics)
	assert.True(t, apperror.IsStateTransition(err))
}

func TestAdjustment_RederivesFinalPrice(t *testing.T) {
	draft := validDraft()
	draft.SetOriginalPrice(1200)
	draft.SetAdjustmentPrice(-150)

	assert.Equal(t, int64(1050), draft.FinalPrice)

	draft.SetAdjustmentPrice(0)
	assert.Equal(t, int64(1200), draft.FinalPrice)
}
