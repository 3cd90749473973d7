package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/marcus102/AGROVIE-sub002/internal/models"
	"github.com/marcus102/AGROVIE-sub002/internal/pkg/apperror"
	"github.com/marcus102/AGROVIE-sub002/internal/validation"
)

// TemplateRepository describes quick start template storage.
type TemplateRepository interface {
	Create(ctx context.Context, template *models.MissionTemplate) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.MissionTemplate, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.MissionTemplate, error)
	Update(ctx context.Context, template *models.MissionTemplate) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// TemplateService manages quick start templates: saved draft blobs a user
// can reuse to pre-populate a new wizard session.
type TemplateService struct {
	repo TemplateRepository
}

// NewTemplateService creates a template service.
func NewTemplateService(repo TemplateRepository) *TemplateService {
	return &TemplateService{repo: repo}
}

// Save stores the draft under a name. The draft is kept as an opaque JSON
// blob; only well-formedness is checked here, full validation happens when
// the template is loaded back into a wizard session.
func (s *TemplateService) Save(ctx context.Context, userID uuid.UUID, name string, draft *models.MissionDraft) (*models.MissionTemplate, error) {
	if err := validation.ValidateTemplateName(name); err != nil {
		return nil, apperror.Validation(map[string]string{"name": err.Error()})
	}

	blob, err := json.Marshal(draft)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "could not serialize the draft")
	}

	template := &models.MissionTemplate{
		UserID: userID,
		Name:   name,
		Draft:  blob,
	}

	if err := s.repo.Create(ctx, template); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodePersistence, "could not save the template")
	}
	return template, nil
}

// List returns all templates of the user.
func (s *TemplateService) List(ctx context.Context, userID uuid.UUID) ([]models.MissionTemplate, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Load returns the draft stored in a template, ready to seed a new wizard
// session. Prices are reset: the quote must be recomputed for the new
// session's inputs.
func (s *TemplateService) Load(ctx context.Context, templateID, userID uuid.UUID) (*models.MissionDraft, error) {
	template, err := s.repo.GetByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if template.UserID != userID {
		return nil, apperror.ErrForbidden
	}

	var draft models.MissionDraft
	if err := json.Unmarshal(template.Draft, &draft); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "stored template is corrupt")
	}

	draft.OriginalPrice = nil
	draft.AdjustmentPrice = 0
	draft.RecomputeFinalPrice()
	return &draft, nil
}

// Update replaces the name and stored draft of a template owned by the
// user. The ownership check lives in the repository's guarded update.
func (s *TemplateService) Update(ctx context.Context, templateID, userID uuid.UUID, name string, draft *models.MissionDraft) (*models.MissionTemplate, error) {
	if err := validation.ValidateTemplateName(name); err != nil {
		return nil, apperror.Validation(map[string]string{"name": err.Error()})
	}

	blob, err := json.Marshal(draft)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "could not serialize the draft")
	}

	template := &models.MissionTemplate{
		ID:     templateID,
		UserID: userID,
		Name:   name,
		Draft:  blob,
	}

	if err := s.repo.Update(ctx, template); err != nil {
		return nil, err
	}
	return template, nil
}

// Delete removes a template owned by the user.
func (s *TemplateService) Delete(ctx context.Context, templateID, userID uuid.UUID) error {
	return s.repo.Delete(ctx, templateID, userID)
}
