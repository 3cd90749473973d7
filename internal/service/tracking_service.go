package service

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/marcus102/AGROVIE-sub002/internal/logger"
	"github.com/marcus102/AGROVIE-sub002/internal/metrics"
	"github.com/marcus102/AGROVIE-sub002/internal/models"
	"github.com/marcus102/AGROVIE-sub002/internal/pkg/apperror"
)

// TrackingRepository describes the mission tracking storage contract.
type TrackingRepository interface {
	Create(ctx context.Context, tracking *models.MissionTracking) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.MissionTracking, error)
	GetByMissionAndUser(ctx context.Context, missionID, userID uuid.UUID) (*models.MissionTracking, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.MissionTracking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	// CompleteTask increments tasks_completed and stores the derived fields,
	// guarded by tasks_completed < total_tasks. Returns false when the guard
	// rejected the update.
	CompleteTask(ctx context.Context, id uuid.UUID, completionRate int, earnings int64) (bool, error)
	AddTime(ctx context.Context, id uuid.UUID, minutes int) error
}

// MissionGetter is the minimal mission read contract tracking needs.
type MissionGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Mission, error)
	IsApplicant(ctx context.Context, missionID, userID uuid.UUID) (bool, error)
}

// TrackingService drives the tracking state machine:
// NotStarted -> Active -> {Paused <-> Active} -> Completed (terminal).
// Invalid transitions are rejected before any write.
type TrackingService struct {
	repo     TrackingRepository
	missions MissionGetter
	hub      Notifier
}

// NewTrackingService creates a tracking service.
func NewTrackingService(repo TrackingRepository, missions MissionGetter) *TrackingService {
	return &TrackingService{repo: repo, missions: missions}
}

// SetHub sets the notifier for progress events.
func (s *TrackingService) SetHub(hub Notifier) {
	s.hub = hub
}

// Start creates the tracking record for a (mission, worker) pair. It fails
// with a conflict when one already exists; callers should fetch instead.
func (s *TrackingService) Start(ctx context.Context, missionID, userID uuid.UUID, totalTasks int) (*models.MissionTracking, error) {
	if totalTasks < 1 {
		return nil, apperror.Validation(map[string]string{
			"total_tasks": "total tasks must be at least 1",
		})
	}

	mission, err := s.missions.GetByID(ctx, missionID)
	if err != nil {
		return nil, err
	}
	if mission.Status != models.MissionStatusOnline && mission.Status != models.MissionStatusAccepted {
		return nil, apperror.New(apperror.ErrCodeStateTransition, "mission is not in a trackable state")
	}

	isApplicant, err := s.missions.IsApplicant(ctx, missionID, userID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodePersistence, "could not verify mission applicant")
	}
	if !isApplicant {
		return nil, apperror.New(apperror.ErrCodeForbidden, "only mission applicants can start tracking")
	}

	if existing, err := s.repo.GetByMissionAndUser(ctx, missionID, userID); err == nil && existing != nil {
		return nil, apperror.New(apperror.ErrCodeConflict, "tracking already started for this mission")
	} else if err != nil && !apperror.IsNotFound(err) {
		return nil, err
	}

	tracking := &models.MissionTracking{
		MissionID:  missionID,
		UserID:     userID,
		Status:     models.TrackingStatusActive,
		TotalTasks: totalTasks,
	}

	if err := s.repo.Create(ctx, tracking); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodePersistence, "could not create tracking record")
	}

	metrics.TrackingTransitions.WithLabelValues("start").Inc()
	s.notifyOwner(mission, "tracking.started", tracking)
	return tracking, nil
}

// Get returns a tracking record, restricted to its worker or the mission owner.
func (s *TrackingService) Get(ctx context.Context, trackingID, actorID uuid.UUID) (*models.MissionTracking, error) {
	tracking, err := s.repo.GetByID(ctx, trackingID)
	if err != nil {
		return nil, err
	}
	if tracking.UserID != actorID {
		mission, err := s.missions.GetByID(ctx, tracking.MissionID)
		if err != nil {
			return nil, err
		}
		if mission.UserID != actorID {
			return nil, apperror.ErrForbidden
		}
	}
	return tracking, nil
}

// ListMine returns the worker's tracking records.
func (s *TrackingService) ListMine(ctx context.Context, userID uuid.UUID) ([]models.MissionTracking, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Pause moves an active tracking to paused.
func (s *TrackingService) Pause(ctx context.Context, trackingID, userID uuid.UUID) (*models.MissionTracking, error) {
	return s.transition(ctx, trackingID, userID, models.TrackingStatusActive, models.TrackingStatusPaused, "pause")
}

// Resume moves a paused tracking back to active.
func (s *TrackingService) Resume(ctx context.Context, trackingID, userID uuid.UUID) (*models.MissionTracking, error) {
	return s.transition(ctx, trackingID, userID, models.TrackingStatusPaused, models.TrackingStatusActive, "resume")
}

// Complete terminates a tracking from active or paused.
func (s *TrackingService) Complete(ctx context.Context, trackingID, userID uuid.UUID) (*models.MissionTracking, error) {
	tracking, err := s.ownedTracking(ctx, trackingID, userID)
	if err != nil {
		return nil, err
	}

	if tracking.Status != models.TrackingStatusActive && tracking.Status != models.TrackingStatusPaused {
		return nil, apperror.New(apperror.ErrCodeStateTransition, "tracking cannot be completed from status "+tracking.Status)
	}

	if err := s.repo.UpdateStatus(ctx, trackingID, models.TrackingStatusCompleted); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodePersistence, "could not complete tracking")
	}
	tracking.Status = models.TrackingStatusCompleted

	metrics.TrackingTransitions.WithLabelValues("complete").Inc()
	if mission, err := s.missions.GetByID(ctx, tracking.MissionID); err == nil {
		s.notifyOwner(mission, "tracking.completed", tracking)
	}
	return tracking, nil
}

// CompleteTask increments the task counter and re-derives completion rate
// and earnings. Once tasks_completed equals total_tasks the call is a no-op:
// the record is returned unchanged and no error is raised.
func (s *TrackingService) CompleteTask(ctx context.Context, trackingID, userID uuid.UUID) (*models.MissionTracking, error) {
	tracking, err := s.ownedTracking(ctx, trackingID, userID)
	if err != nil {
		return nil, err
	}

	// Both boundaries are silent no-ops: all tasks done, or already
	// completed early.
	if tracking.TasksCompleted >= tracking.TotalTasks || tracking.Status == models.TrackingStatusCompleted {
		return tracking, nil
	}
	if tracking.Status != models.TrackingStatusActive {
		return nil, apperror.New(apperror.ErrCodeStateTransition, "tasks can only be completed while tracking is active")
	}

	mission, err := s.missions.GetByID(ctx, tracking.MissionID)
	if err != nil {
		return nil, err
	}

	newCompleted := tracking.TasksCompleted + 1
	newRate := CompletionRate(newCompleted, tracking.TotalTasks)
	newEarnings := Earnings(mission.FinalPrice, newRate)

	updated, err := s.repo.CompleteTask(ctx, trackingID, newRate, newEarnings)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodePersistence, "could not record completed task")
	}
	if !updated {
		// A concurrent update reached the boundary first; treat as the no-op.
		return s.repo.GetByID(ctx, trackingID)
	}

	tracking.TasksCompleted = newCompleted
	tracking.CompletionRate = newRate
	tracking.Earnings = newEarnings

	metrics.TrackingTransitions.WithLabelValues("complete_task").Inc()
	s.notifyOwner(mission, "tracking.progress", tracking)
	return tracking, nil
}

// AddTime accumulates worked minutes on an active tracking.
func (s *TrackingService) AddTime(ctx context.Context, trackingID, userID uuid.UUID, minutes int) (*models.MissionTracking, error) {
	if minutes <= 0 {
		return nil, apperror.Validation(map[string]string{
			"minutes": "minutes must be positive",
		})
	}

	tracking, err := s.ownedTracking(ctx, trackingID, userID)
	if err != nil {
		return nil, err
	}
	if tracking.Status != models.TrackingStatusActive {
		return nil, apperror.New(apperror.ErrCodeStateTransition, "time can only be added while tracking is active")
	}

	if err := s.repo.AddTime(ctx, trackingID, minutes); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodePersistence, "could not record worked time")
	}
	tracking.TimeWorkedMinutes += minutes
	return tracking, nil
}

// CurrentEarnings derives the worker's earnings for a tracking record from
// the mission's final price. Computed on read; the persisted earnings field
// is only a denormalization refreshed alongside CompleteTask.
func (s *TrackingService) CurrentEarnings(ctx context.Context, tracking *models.MissionTracking) (int64, error) {
	mission, err := s.missions.GetByID(ctx, tracking.MissionID)
	if err != nil {
		return 0, err
	}
	return Earnings(mission.FinalPrice, tracking.CompletionRate), nil
}

func (s *TrackingService) transition(ctx context.Context, trackingID, userID uuid.UUID, from, to, action string) (*models.MissionTracking, error) {
	tracking, err := s.ownedTracking(ctx, trackingID, userID)
	if err != nil {
		return nil, err
	}

	if tracking.Status != from {
		return nil, apperror.New(apperror.ErrCodeStateTransition, "cannot "+action+" tracking in status "+tracking.Status)
	}

	if err := s.repo.UpdateStatus(ctx, trackingID, to); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodePersistence, "could not update tracking status")
	}
	tracking.Status = to
	metrics.TrackingTransitions.WithLabelValues(action).Inc()
	return tracking, nil
}

func (s *TrackingService) ownedTracking(ctx context.Context, trackingID, userID uuid.UUID) (*models.MissionTracking, error) {
	tracking, err := s.repo.GetByID(ctx, trackingID)
	if err != nil {
		return nil, err
	}
	if tracking.UserID != userID {
		return nil, apperror.ErrForbidden
	}
	return tracking, nil
}

func (s *TrackingService) notifyOwner(mission *models.Mission, event string, tracking *models.MissionTracking) {
	if s.hub == nil {
		return
	}
	if err := s.hub.BroadcastToUser(mission.UserID, event, tracking); err != nil {
		logger.Log.WithFields(logrus.Fields{
			"mission_id": mission.ID,
			"event":      event,
		}).WithError(err).Warn("tracking event not delivered")
	}
}

// CompletionRate derives the percentage of completed tasks, rounded half
// away from zero.
func CompletionRate(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// Earnings derives the worker's earnings from the mission final price and
// completion rate. Always rounds down.
func Earnings(finalPrice int64, completionRate int) int64 {
	return int64(math.Floor(float64(finalPrice) * float64(completionRate) / 100))
}
