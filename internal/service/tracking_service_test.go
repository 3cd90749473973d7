package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/marcus102/AGROVIE-sub002/internal/models"
	"github.com/marcus102/AGROVIE-sub002/internal/pkg/apperror"
)

type mockTrackingRepo struct {
	mock.Mock
}

func (m *mockTrackingRepo) Create(ctx context.Context, tracking *models.MissionTracking) error {
	args := m.Called(ctx, tracking)
	if args.Error(0) == nil {
		tracking.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockTrackingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.MissionTracking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MissionTracking), args.Error(1)
}

func (m *mockTrackingRepo) GetByMissionAndUser(ctx context.Context, missionID, userID uuid.UUID) (*models.MissionTracking, error) {
	args := m.Called(ctx, missionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MissionTracking), args.Error(1)
}

func (m *mockTrackingRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.MissionTracking, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.MissionTracking), args.Error(1)
}

func (m *mockTrackingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *mockTrackingRepo) CompleteTask(ctx context.Context, id uuid.UUID, completionRate int, earnings int64) (bool, error) {
	args := m.Called(ctx, id, completionRate, earnings)
	return args.Bool(0), args.Error(1)
}

func (m *mockTrackingRepo) AddTime(ctx context.Context, id uuid.UUID, minutes int) error {
	args := m.Called(ctx, id, minutes)
	return args.Error(0)
}

type mockMissionGetter struct {
	mock.Mock
}

func (m *mockMissionGetter) GetByID(ctx context.Context, id uuid.UUID) (*models.Mission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mission), args.Error(1)
}

func (m *mockMissionGetter) IsApplicant(ctx context.Context, missionID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, missionID, userID)
	return args.Bool(0), args.Error(1)
}

func activeTracking(userID uuid.UUID) *models.MissionTracking {
	return &models.MissionTracking{
		ID:         uuid.New(),
		MissionID:  uuid.New(),
		UserID:     userID,
		Status:     models.TrackingStatusActive,
		TotalTasks: 4,
	}
}

func TestTracking_Start_Success(t *testing.T) {
	repo := new(mockTrackingRepo)
	missions := new(mockMissionGetter)
	svc := NewTrackingService(repo, missions)
	ctx := context.Background()

	missionID := uuid.New()
	userID := uuid.New()
	mission := &models.Mission{ID: missionID, UserID: uuid.New(), Status: models.MissionStatusAccepted}

	missions.On("GetByID", ctx, missionID).Return(mission, nil)
	missions.On("IsApplicant", ctx, missionID, userID).Return(true, nil)
	repo.On("GetByMissionAndUser", ctx, missionID, userID).Return(nil, apperror.ErrTrackingNotFound)
	repo.On("Create", ctx, mock.AnythingOfType("*models.MissionTracking")).Return(nil)

	tracking, err := svc.Start(ctx, missionID, userID, 5)

	assert.NoError(t, err)
	assert.Equal(t, models.TrackingStatusActive, tracking.Status)
	assert.Equal(t, 5, tracking.TotalTasks)
	assert.Equal(t, 0, tracking.TasksCompleted)
}

func TestTracking_Start_RejectsZeroTasks(t *testing.T) {
	svc := NewTrackingService(new(mockTrackingRepo), new(mockMissionGetter))

	_, err := svc.Start(context.Background(), uuid.New(), uuid.New(), 0)

	assert.True(t, apperror.IsValidation(err))
}

func TestTracking_Start_RejectsNonApplicant(t *testing.T) {
	repo := new(mockTrackingRepo)
	missions := new(mockMissionGetter)
	svc := NewTrackingService(repo, missions)
	ctx := context.Background()

	missionID := uuid.New()
	userID := uuid.New()
	mission := &models.Mission{ID: missionID, Status: models.MissionStatusOnline}

	missions.On("GetByID", ctx, missionID).Return(mission, nil)
	missions.On("IsApplicant", ctx, missionID, userID).Return(false, nil)

	_, err := svc.Start(ctx, missionID, userID, 3)

	assert.Error(t, err)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTracking_Start_ConflictWhenAlreadyTracking(t *testing.T) {
	repo := new(mockTrackingRepo)
	missions := new(mockMissionGetter)
	svc := NewTrackingService(repo, missions)
	ctx := context.Background()

	missionID := uuid.New()
	userID := uuid.New()
	mission := &models.Mission{ID: missionID, Status: models.MissionStatusOnline}

	missions.On("GetByID", ctx, missionID).Return(mission, nil)
	missions.On("IsApplicant", ctx, missionID, userID).Return(true, nil)
	repo.On("GetByMissionAndUser", ctx, missionID, userID).Return(activeTracking(userID), nil)

	_, err := svc.Start(ctx, missionID, userID, 3)

	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.ErrCodeConflict, appErr.Code)
}

func TestTracking_PauseAndResume(t *testing.T) {
	repo := new(mockTrackingRepo)
	svc := NewTrackingService(repo, new(mockMissionGetter))
	ctx := context.Background()

	userID := uuid.New()
	tracking := activeTracking(userID)

	repo.On("GetByID", ctx, tracking.ID).Return(tracking, nil)
	repo.On("UpdateStatus", ctx, tracking.ID, models.TrackingStatusPaused).Return(nil)
	repo.On("UpdateStatus", ctx, tracking.ID, models.TrackingStatusActive).Return(nil)

	paused, err := svc.Pause(ctx, tracking.ID, userID)
	assert.NoError(t, err)
	assert.Equal(t, models.TrackingStatusPaused, paused.Status)

	resumed, err := svc.Resume(ctx, tracking.ID, userID)
	assert.NoError(t, err)
	assert.Equal(t, models.TrackingStatusActive, resumed.Status)
}

func TestTracking_PauseFromCompletedRejected(t *testing.T) {
	repo := new(mockTrackingRepo)
	svc := NewTrackingService(repo, new(mockMissionGetter))
	ctx := context.Background()

	userID := uuid.New()
	tracking := activeTracking(userID)
	tracking.Status = models.TrackingStatusCompleted

	repo.On("GetByID", ctx, tracking.ID).Return(tracking, nil)

	_, err := svc.Pause(ctx, tracking.ID, userID)

	assert.True(t, apperror.IsStateTransition(err))
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestTracking_CompleteIsTerminal(t *testing.T) {
	repo := new(mockTrackingRepo)
	missions := new(mockMissionGetter)
	svc := NewTrackingService(repo, missions)
	ctx := context.Background()

	userID := uuid.New()
	tracking := activeTracking(userID)

	repo.On("GetByID", ctx, tracking.ID).Return(tracking, nil)
	repo.On("UpdateStatus", ctx, tracking.ID, models.TrackingStatusCompleted).Return(nil)
	missions.On("GetByID", ctx, tracking.MissionID).Return(&models.Mission{ID: tracking.MissionID}, nil)

	completed, err := svc.Complete(ctx, tracking.ID, userID)
	assert.NoError(t, err)
	assert.Equal(t, models.TrackingStatusCompleted, completed.Status)

	// Completed cannot be resumed or completed again.
	_, err = svc.Resume(ctx, tracking.ID, userID)
	assert.True(t, apperror.IsStateTransition(err))

	_, err = svc.Complete(ctx, tracking.ID, userID)
	assert.True(t, apperror.IsStateTransition(err))
}

func TestTracking_CompleteTask_DerivesRateAndEarnings(t *testing.T) {
	repo := new(mockTrackingRepo)
	missions := new(mockMissionGetter)
	svc := NewTrackingService(repo, missions)
	ctx := context.Background()

	userID := uuid.New()
	tracking := activeTracking(userID)
	tracking.TotalTasks = 3
	tracking.TasksCompleted = 0
	mission := &models.Mission{ID: tracking.MissionID, FinalPrice: 1000}

	// 1/3 done: rate 33, earnings floor(1000*33/100) = 330.
	repo.On("GetByID", ctx, tracking.ID).Return(tracking, nil)
	missions.On("GetByID", ctx, tracking.MissionID).Return(mission, nil)
	repo.On("CompleteTask", ctx, tracking.ID, 33, int64(330)).Return(true, nil)

	updated, err := svc.CompleteTask(ctx, tracking.ID, userID)

	assert.NoError(t, err)
	assert.Equal(t, 1, updated.TasksCompleted)
	assert.Equal(t, 33, updated.CompletionRate)
	assert.Equal(t, int64(330), updated.Earnings)
}

func TestTracking_CompleteTask_NoOpWhenAllTasksDone(t *testing.T) {
	repo := new(mockTrackingRepo)
	svc := NewTrackingService(repo, new(mockMissionGetter))
	ctx := context.Background()

	userID := uuid.New()
	tracking := activeTracking(userID)
	tracking.TasksCompleted = tracking.TotalTasks
	tracking.CompletionRate = 100

	repo.On("GetByID", ctx, tracking.ID).Return(tracking, nil)

	result, err := svc.CompleteTask(ctx, tracking.ID, userID)

	assert.NoError(t, err)
	assert.Equal(t, tracking.TotalTasks, result.TasksCompleted)
	repo.AssertNotCalled(t, "CompleteTask", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTracking_CompleteTask_NoOpAfterComplete(t *testing.T) {
	repo := new(mockTrackingRepo)
	svc := NewTrackingService(repo, new(mockMissionGetter))
	ctx := context.Background()

	userID := uuid.New()
	tracking := activeTracking(userID)
	tracking.Status = models.TrackingStatusCompleted
	tracking.TasksCompleted = 1

	repo.On("GetByID", ctx, tracking.ID).Return(tracking, nil)

	result, err := svc.CompleteTask(ctx, tracking.ID, userID)

	assert.NoError(t, err)
	assert.Equal(t, 1, result.TasksCompleted)
	repo.AssertNotCalled(t, "CompleteTask", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTracking_CompleteTask_RejectedWhilePaused(t *testing.T) {
	repo := new(mockTrackingRepo)
	svc := NewTrackingService(repo, new(mockMissionGetter))
	ctx := context.Background()

	userID := uuid.New()
	tracking := activeTracking(userID)
	tracking.Status = models.TrackingStatusPaused

	repo.On("GetByID", ctx, tracking.ID).Return(tracking, nil)

	_, err := svc.CompleteTask(ctx, tracking.ID, userID)

	assert.True(t, apperror.IsStateTransition(err))
}

func TestTracking_CompleteTask_RereadsOnConcurrentBoundary(t *testing.T) {
	repo := new(mockTrackingRepo)
	missions := new(mockMissionGetter)
	svc := NewTrackingService(repo, missions)
	ctx := context.Background()

	userID := uuid.New()
	tracking := activeTracking(userID)
	tracking.TotalTasks = 2
	tracking.TasksCompleted = 1
	mission := &models.Mission{ID: tracking.MissionID, FinalPrice: 1000}

	repo.On("GetByID", ctx, tracking.ID).Return(tracking, nil)
	missions.On("GetByID", ctx, tracking.MissionID).Return(mission, nil)
	repo.On("CompleteTask", ctx, tracking.ID, 100, int64(1000)).Return(false, nil)

	result, err := svc.CompleteTask(ctx, tracking.ID, userID)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	repo.AssertNumberOfCalls(t, "GetByID", 2)
}

func TestTracking_AddTime_OnlyWhileActive(t *testing.T) {
	repo := new(mockTrackingRepo)
	svc := NewTrackingService(repo, new(mockMissionGetter))
	ctx := context.Background()

	userID := uuid.New()
	tracking := activeTracking(userID)

	repo.On("GetByID", ctx, tracking.ID).Return(tracking, nil)
	repo.On("AddTime", ctx, tracking.ID, 90).Return(nil)

	updated, err := svc.AddTime(ctx, tracking.ID, userID, 90)
	assert.NoError(t, err)
	assert.Equal(t, 90, updated.TimeWorkedMinutes)

	tracking.Status = models.TrackingStatusPaused
	_, err = svc.AddTime(ctx, tracking.ID, userID, 30)
	assert.True(t, apperror.IsStateTransition(err))
}

func TestTracking_ForbiddenForOtherUsers(t *testing.T) {
	repo := new(mockTrackingRepo)
	svc := NewTrackingService(repo, new(mockMissionGetter))
	ctx := context.Background()

	tracking := activeTracking(uuid.New())
	repo.On("GetByID", ctx, tracking.ID).Return(tracking, nil)

	_, err := svc.Pause(ctx, tracking.ID, uuid.New())

	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestCompletionRate(t *testing.T) {
	assert.Equal(t, 0, CompletionRate(0, 4))
	assert.Equal(t, 25, CompletionRate(1, 4))
	assert.Equal(t, 33, CompletionRate(1, 3))
	assert.Equal(t, 67, CompletionRate(2, 3))
	assert.Equal(t, 100, CompletionRate(3, 3))
	assert.Equal(t, 0, CompletionRate(1, 0))
}

func TestEarnings_FloorsTowardZero(t *testing.T) {
	assert.Equal(t, int64(330), Earnings(1000, 33))
	assert.Equal(t, int64(329), Earnings(999, 33))
	assert.Equal(t, int64(1000), Earnings(1000, 100))
	assert.Equal(t, int64(0), Earnings(1000, 0))
}
