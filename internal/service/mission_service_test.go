package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/marcus102/AGROVIE-sub002/internal/models"
	"github.com/marcus102/AGROVIE-sub002/internal/pkg/apperror"
	"github.com/marcus102/AGROVIE-sub002/internal/repository"
	"github.com/marcus102/AGROVIE-sub002/internal/wizard"
)

type mockMissionRepo struct {
	mock.Mock
}

func (m *mockMissionRepo) Create(ctx context.Context, mission *models.Mission) error {
	args := m.Called(ctx, mission)
	if args.Error(0) == nil {
		mission.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockMissionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Mission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mission), args.Error(1)
}

func (m *mockMissionRepo) List(ctx context.Context, params repository.MissionListParams) ([]models.Mission, int, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]models.Mission), args.Int(1), args.Error(2)
}

func (m *mockMissionRepo) ListByOwner(ctx context.Context, userID uuid.UUID) ([]models.Mission, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Mission), args.Error(1)
}

func (m *mockMissionRepo) AddApplicant(ctx context.Context, missionID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, missionID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockMissionRepo) ListApplicants(ctx context.Context, missionID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, missionID)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *mockMissionRepo) IsApplicant(ctx context.Context, missionID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, missionID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockMissionRepo) UpdateStatus(ctx context.Context, missionID uuid.UUID, status string) error {
	args := m.Called(ctx, missionID, status)
	return args.Error(0)
}

type mockMediaLookup struct {
	mock.Mock
}

func (m *mockMediaLookup) CountByPaths(ctx context.Context, userID uuid.UUID, paths []string) (int, error) {
	args := m.Called(ctx, userID, paths)
	return args.Int(0), args.Error(1)
}

func submittableDraft() *models.MissionDraft {
	start := time.Now().Add(48 * time.Hour)
	end := start.Add(7 * 24 * time.Hour)
	draft := &models.MissionDraft{
		Title:             "Orchard pruning campaign",
		Description:       "Winter pruning of a 6 hectare apple orchard.",
		Location:          "Ouagadougou",
		StartDate:         &start,
		EndDate:           &end,
		ActorRole:         models.ActorRoleWorker,
		Specialization:    models.SpecializationSeasonalHarvest,
		NeededActorAmount: 2,
		ExperienceLevel:   models.ExperienceLevelStarter,
		SurfaceArea:       6,
		SurfaceUnit:       models.SurfaceUnitHectares,
	}
	draft.SetOriginalPrice(1200)
	return draft
}

func newMissionService(repo *mockMissionRepo, media *mockMediaLookup) *MissionService {
	return NewMissionService(repo, media, wizard.New(nil))
}

func TestMission_Submit_Success(t *testing.T) {
	repo := new(mockMissionRepo)
	media := new(mockMediaLookup)
	svc := newMissionService(repo, media)
	ctx := context.Background()
	userID := uuid.New()

	repo.On("Create", ctx, mock.AnythingOfType("*models.Mission")).Return(nil)

	mission, err := svc.Submit(ctx, userID, submittableDraft())

	assert.NoError(t, err)
	assert.Equal(t, userID, mission.UserID)
	assert.Equal(t, models.MissionStatusInReview, mission.Status)
	assert.Equal(t, int64(1200), mission.OriginalPrice)
	assert.Equal(t, int64(1200), mission.FinalPrice)
	assert.Equal(t, models.PriceStatusCurrent, mission.OriginalPriceStatus)
	// No manual adjustment was made, so its status is stale.
	assert.Equal(t, models.PriceStatusNotCurrent, mission.AdjustmentPriceStatus)
}

func TestMission_Submit_InvalidDraftRejected(t *testing.T) {
	repo := new(mockMissionRepo)
	svc := newMissionService(repo, new(mockMediaLookup))

	draft := submittableDraft()
	draft.Title = ""

	_, err := svc.Submit(context.Background(), uuid.New(), draft)

	assert.True(t, apperror.IsValidation(err))
	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Fields, "title")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMission_Submit_WithoutComputedPriceRejected(t *testing.T) {
	repo := new(mockMissionRepo)
	svc := newMissionService(repo, new(mockMediaLookup))

	draft := submittableDraft()
	draft.OriginalPrice = nil

	_, err := svc.Submit(context.Background(), uuid.New(), draft)

	assert.True(t, apperror.IsValidation(err))
}

func TestMission_Submit_AdjustmentMarksStatusCurrent(t *testing.T) {
	repo := new(mockMissionRepo)
	svc := newMissionService(repo, new(mockMediaLookup))
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*models.Mission")).Return(nil)

	draft := submittableDraft()
	draft.SetAdjustmentPrice(-200)

	mission, err := svc.Submit(ctx, uuid.New(), draft)

	assert.NoError(t, err)
	assert.Equal(t, int64(-200), mission.AdjustmentPrice)
	assert.Equal(t, models.PriceStatusCurrent, mission.AdjustmentPriceStatus)
	assert.Equal(t, int64(1000), mission.FinalPrice)
}

func TestMission_Submit_NormalizesOptionalFields(t *testing.T) {
	repo := new(mockMissionRepo)
	svc := newMissionService(repo, new(mockMediaLookup))
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*models.Mission")).Return(nil)

	draft := submittableDraft()
	draft.PersonalizedExpression = ""

	mission, err := svc.Submit(ctx, uuid.New(), draft)

	assert.NoError(t, err)
	// Empty free text persists as NULL, not as an empty string.
	assert.Nil(t, mission.PersonalizedExpression)
	// Worker missions carry their specialization.
	if assert.NotNil(t, mission.Specialization) {
		assert.Equal(t, models.SpecializationSeasonalHarvest, *mission.Specialization)
	}
	assert.Nil(t, mission.OtherSpecialization)
}

func TestMission_Submit_EntrepreneurDropsSpecialization(t *testing.T) {
	repo := new(mockMissionRepo)
	svc := newMissionService(repo, new(mockMediaLookup))
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*models.Mission")).Return(nil)

	draft := submittableDraft()
	draft.ActorRole = models.ActorRoleEntrepreneur
	draft.Specialization = ""

	mission, err := svc.Submit(ctx, uuid.New(), draft)

	assert.NoError(t, err)
	assert.Nil(t, mission.Specialization)
}

func TestMission_Submit_VerifiesUploadedImages(t *testing.T) {
	repo := new(mockMissionRepo)
	media := new(mockMediaLookup)
	svc := newMissionService(repo, media)
	ctx := context.Background()
	userID := uuid.New()

	draft := submittableDraft()
	draft.Images = []string{"photos/a.jpg", "photos/b.jpg"}

	media.On("CountByPaths", ctx, userID, draft.Images).Return(1, nil)

	_, err := svc.Submit(ctx, userID, draft)

	assert.True(t, apperror.IsValidation(err))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMission_Apply_Success(t *testing.T) {
	repo := new(mockMissionRepo)
	svc := newMissionService(repo, new(mockMediaLookup))
	ctx := context.Background()

	missionID := uuid.New()
	applicantID := uuid.New()
	mission := &models.Mission{ID: missionID, UserID: uuid.New(), Status: models.MissionStatusOnline}

	repo.On("GetByID", ctx, missionID).Return(mission, nil)
	repo.On("AddApplicant", ctx, missionID, applicantID).Return(true, nil)

	err := svc.Apply(ctx, missionID, applicantID)

	assert.NoError(t, err)
}

func TestMission_Apply_RejectedWhenNotOnline(t *testing.T) {
	repo := new(mockMissionRepo)
	svc := newMissionService(repo, new(mockMediaLookup))
	ctx := context.Background()

	missionID := uuid.New()
	mission := &models.Mission{ID: missionID, UserID: uuid.New(), Status: models.MissionStatusInReview}
	repo.On("GetByID", ctx, missionID).Return(mission, nil)

	err := svc.Apply(ctx, missionID, uuid.New())

	assert.True(t, apperror.IsStateTransition(err))
}

func TestMission_Apply_OwnMissionForbidden(t *testing.T) {
	repo := new(mockMissionRepo)
	svc := newMissionService(repo, new(mockMediaLookup))
	ctx := context.Background()

	ownerID := uuid.New()
	missionID := uuid.New()
	mission := &models.Mission{ID: missionID, UserID: ownerID, Status: models.MissionStatusOnline}
	repo.On("GetByID", ctx, missionID).Return(mission, nil)

	err := svc.Apply(ctx, missionID, ownerID)

	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.ErrCodeForbidden, appErr.Code)
}

func TestMission_Apply_DuplicateIsConflict(t *testing.T) {
	repo := new(mockMissionRepo)
	svc := newMissionService(repo, new(mockMediaLookup))
	ctx := context.Background()

	missionID := uuid.New()
	applicantID := uuid.New()
	mission := &models.Mission{ID: missionID, UserID: uuid.New(), Status: models.MissionStatusOnline}

	repo.On("GetByID", ctx, missionID).Return(mission, nil)
	repo.On("AddApplicant", ctx, missionID, applicantID).Return(false, nil)

	err := svc.Apply(ctx, missionID, applicantID)

	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.ErrCodeConflict, appErr.Code)
}

func TestMission_UpdateStatus_OwnerMayOnlyRemove(t *testing.T) {
	repo := new(mockMissionRepo)
	svc := newMissionService(repo, new(mockMediaLookup))
	ctx := context.Background()

	ownerID := uuid.New()
	missionID := uuid.New()
	mission := &models.Mission{ID: missionID, UserID: ownerID, Status: models.MissionStatusOnline}
	repo.On("GetByID", ctx, missionID).Return(mission, nil)
	repo.On("UpdateStatus", ctx, missionID, models.MissionStatusRemoved).Return(nil)

	err := svc.UpdateStatus(ctx, missionID, ownerID, models.UserRoleEntrepreneur, models.MissionStatusOnline)
	assert.Error(t, err)

	err = svc.UpdateStatus(ctx, missionID, ownerID, models.UserRoleEntrepreneur, models.MissionStatusRemoved)
	assert.NoError(t, err)
}

func TestMission_UpdateStatus_AdminMaySetAny(t *testing.T) {
	repo := new(mockMissionRepo)
	svc := newMissionService(repo, new(mockMediaLookup))
	ctx := context.Background()

	missionID := uuid.New()
	mission := &models.Mission{ID: missionID, UserID: uuid.New(), Status: models.MissionStatusInReview}
	repo.On("GetByID", ctx, missionID).Return(mission, nil)
	repo.On("UpdateStatus", ctx, missionID, models.MissionStatusOnline).Return(nil)

	err := svc.UpdateStatus(ctx, missionID, uuid.New(), models.UserRoleAdmin, models.MissionStatusOnline)

	assert.NoError(t, err)
}

func TestMission_Get_IncludesApplicants(t *testing.T) {
	repo := new(mockMissionRepo)
	svc := newMissionService(repo, new(mockMediaLookup))
	ctx := context.Background()

	missionID := uuid.New()
	applicants := []uuid.UUID{uuid.New(), uuid.New()}
	repo.On("GetByID", ctx, missionID).Return(&models.Mission{ID: missionID}, nil)
	repo.On("ListApplicants", ctx, missionID).Return(applicants, nil)

	mission, err := svc.Get(ctx, missionID)

	assert.NoError(t, err)
	assert.Equal(t, applicants, mission.Applicants)
}
