package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/marcus102/AGROVIE-sub002/internal/logger"
	"github.com/marcus102/AGROVIE-sub002/internal/metrics"
	"github.com/marcus102/AGROVIE-sub002/internal/models"
	"github.com/marcus102/AGROVIE-sub002/internal/pkg/apperror"
	"github.com/marcus102/AGROVIE-sub002/internal/repository"
	"github.com/marcus102/AGROVIE-sub002/internal/wizard"
)

// MissionRepository describes the mission storage contract.
type MissionRepository interface {
	Create(ctx context.Context, mission *models.Mission) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Mission, error)
	List(ctx context.Context, params repository.MissionListParams) ([]models.Mission, int, error)
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]models.Mission, error)
	AddApplicant(ctx context.Context, missionID, userID uuid.UUID) (bool, error)
	ListApplicants(ctx context.Context, missionID uuid.UUID) ([]uuid.UUID, error)
	IsApplicant(ctx context.Context, missionID, userID uuid.UUID) (bool, error)
	UpdateStatus(ctx context.Context, missionID uuid.UUID, status string) error
}

// MediaLookup verifies that image paths reference uploaded media.
type MediaLookup interface {
	CountByPaths(ctx context.Context, userID uuid.UUID, paths []string) (int, error)
}

// Notifier pushes events to connected users.
type Notifier interface {
	BroadcastToUser(userID uuid.UUID, event string, data interface{}) error
}

// MissionService holds the mission submission and application logic.
type MissionService struct {
	repo    MissionRepository
	media   MediaLookup
	machine *wizard.Machine
	hub     Notifier
}

// NewMissionService creates a mission service. The wizard machine is used to
// re-run the review step validation at the submission boundary.
func NewMissionService(repo MissionRepository, media MediaLookup, machine *wizard.Machine) *MissionService {
	return &MissionService{repo: repo, media: media, machine: machine}
}

// SetHub sets the notifier used for application events.
func (s *MissionService) SetHub(hub Notifier) {
	s.hub = hub
}

// Submit converts a validated draft into a persisted mission. The review
// step is re-validated, referenced images must already be uploaded, price
// fields are normalized into their tagged shape and the personalized
// expression collapses to NULL when empty. The draft is left intact on any
// failure so the caller can retry.
func (s *MissionService) Submit(ctx context.Context, userID uuid.UUID, draft *models.MissionDraft) (*models.Mission, error) {
	if errs := s.machine.ValidateStep(wizard.StepReview, draft); len(errs) > 0 {
		return nil, apperror.Validation(errs)
	}

	if len(draft.Images) > 0 {
		count, err := s.media.CountByPaths(ctx, userID, draft.Images)
		if err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodePersistence, "could not verify mission images")
		}
		if count != len(draft.Images) {
			return nil, apperror.Validation(map[string]string{
				"mission_images": "some images have not finished uploading",
			})
		}
	}

	draft.RecomputeFinalPrice()

	mission := &models.Mission{
		UserID:              userID,
		Title:               draft.Title,
		Description:         draft.Description,
		Location:            draft.Location,
		StartDate:           *draft.StartDate,
		EndDate:             *draft.EndDate,
		ActorRole:           draft.ActorRole,
		NeededActorAmount:   draft.NeededActorAmount,
		ExperienceLevel:     draft.ExperienceLevel,
		SurfaceArea:         draft.SurfaceArea,
		SurfaceUnit:         draft.SurfaceUnit,
		Equipment:           draft.Equipment,
		Advantages:          draft.Advantages,
		Images:              draft.Images,
		OriginalPrice:       *draft.OriginalPrice,
		OriginalPriceStatus: models.PriceStatusCurrent,
		AdjustmentPrice:     draft.AdjustmentPrice,
		FinalPrice:          draft.FinalPrice,
		Status:              models.MissionStatusInReview,
	}

	// The adjustment only counts as current once the user actually set one.
	if draft.AdjustmentPrice != 0 {
		mission.AdjustmentPriceStatus = models.PriceStatusCurrent
	} else {
		mission.AdjustmentPriceStatus = models.PriceStatusNotCurrent
	}

	if models.RoleRequiresSpecialization(draft.ActorRole) {
		spec := draft.Specialization
		mission.Specialization = &spec
		if draft.Specialization == models.SpecializationOther {
			other := draft.OtherSpecialization
			mission.OtherSpecialization = &other
		}
	}

	if draft.PersonalizedExpression != "" {
		expr := draft.PersonalizedExpression
		mission.PersonalizedExpression = &expr
	}

	if err := s.repo.Create(ctx, mission); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodePersistence, "could not save the mission")
	}

	metrics.MissionsSubmitted.Inc()
	logger.Log.WithFields(logrus.Fields{
		"mission_id":  mission.ID,
		"user_id":     userID,
		"final_price": mission.FinalPrice,
	}).Info("mission submitted")

	return mission, nil
}

// Apply records a user's application to an online mission. The applicants
// list grows only and never contains duplicates.
func (s *MissionService) Apply(ctx context.Context, missionID, userID uuid.UUID) error {
	mission, err := s.repo.GetByID(ctx, missionID)
	if err != nil {
		return err
	}

	if mission.Status != models.MissionStatusOnline {
		return apperror.New(apperror.ErrCodeStateTransition, "mission is not open for applications")
	}
	if mission.UserID == userID {
		return apperror.New(apperror.ErrCodeForbidden, "cannot apply to your own mission")
	}

	added, err := s.repo.AddApplicant(ctx, missionID, userID)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodePersistence, "could not record the application")
	}
	if !added {
		return apperror.New(apperror.ErrCodeConflict, "already applied to this mission")
	}

	metrics.MissionApplications.Inc()
	if s.hub != nil {
		if err := s.hub.BroadcastToUser(mission.UserID, "mission.application", map[string]interface{}{
			"mission_id":   missionID,
			"applicant_id": userID,
		}); err != nil {
			logger.Log.WithError(err).Warn("application event not delivered")
		}
	}

	return nil
}

// Get returns a mission with its applicants.
func (s *MissionService) Get(ctx context.Context, id uuid.UUID) (*models.Mission, error) {
	mission, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applicants, err := s.repo.ListApplicants(ctx, id)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodePersistence, "could not load applicants")
	}
	mission.Applicants = applicants
	return mission, nil
}

// List returns missions matching the filter.
func (s *MissionService) List(ctx context.Context, params repository.MissionListParams) ([]models.Mission, int, error) {
	return s.repo.List(ctx, params)
}

// ListMine returns the user's own missions.
func (s *MissionService) ListMine(ctx context.Context, userID uuid.UUID) ([]models.Mission, error) {
	return s.repo.ListByOwner(ctx, userID)
}

// UpdateStatus applies an owner or admin status change. Owners may only take
// their mission offline; the remaining transitions are backend owned and
// reserved for admins.
func (s *MissionService) UpdateStatus(ctx context.Context, missionID, actorID uuid.UUID, actorRole, status string) error {
	if _, ok := models.ValidMissionStatuses[status]; !ok {
		return apperror.New(apperror.ErrCodeBadRequest, fmt.Sprintf("unknown mission status %q", status))
	}

	mission, err := s.repo.GetByID(ctx, missionID)
	if err != nil {
		return err
	}

	if actorRole != models.UserRoleAdmin {
		if mission.UserID != actorID {
			return apperror.ErrForbidden
		}
		if status != models.MissionStatusRemoved {
			return apperror.New(apperror.ErrCodeForbidden, "owners may only remove their mission")
		}
	}

	if err := s.repo.UpdateStatus(ctx, missionID, status); err != nil {
		return apperror.Wrap(err, apperror.ErrCodePersistence, "could not update mission status")
	}
	return nil
}
