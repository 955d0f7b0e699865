package services

import (
	"context"

	"github.com/google/uuid"

	"alerta360-backend/internal/domain"
	"alerta360-backend/internal/repository"
	alerta_errors "alerta360-backend/pkg/errors"
)

// IncidentNotifier receives incident domain events, fire-and-forget. The
// HTTP response has already been committed when these run; failures are
// the dispatcher's problem, never the caller's.
type IncidentNotifier interface {
	NotifyNewIncident(incident domain.Incident)
	NotifyIncidentUpdated(incident domain.Incident, changeKind string)
	NotifyIncidentDeleted(incident domain.Incident)
}

type IncidentService struct {
	incidentRepo repository.IncidentRepository
	notifier     IncidentNotifier
}

func NewIncidentService(incidentRepo repository.IncidentRepository, notifier IncidentNotifier) *IncidentService {
	return &IncidentService{incidentRepo: incidentRepo, notifier: notifier}
}

func (s *IncidentService) Create(ctx context.Context, i *domain.Incident) error {
	if i.Description == "" && i.Title == "" {
		return alerta_errors.ErrInvalidInput
	}
	if err := s.incidentRepo.Create(ctx, i); err != nil {
		return err
	}
	if s.notifier != nil {
		s.notifier.NotifyNewIncident(*i)
	}
	return nil
}

func (s *IncidentService) GetByID(ctx context.Context, id uuid.UUID) (domain.Incident, error) {
	return s.incidentRepo.GetByID(ctx, id)
}

func (s *IncidentService) GetAll(ctx context.Context) ([]domain.Incident, error) {
	return s.incidentRepo.GetAll(ctx)
}

func (s *IncidentService) GetByUser(ctx context.Context, userID uuid.UUID) ([]domain.Incident, error) {
	return s.incidentRepo.GetByUser(ctx, userID)
}

func (s *IncidentService) Update(ctx context.Context, i domain.Incident) (domain.Incident, error) {
	existing, err := s.incidentRepo.GetByID(ctx, i.ID)
	if err != nil {
		return domain.Incident{}, err
	}
	i.CreatedAt = existing.CreatedAt
	if err := s.incidentRepo.Update(ctx, i); err != nil {
		return domain.Incident{}, err
	}
	if s.notifier != nil {
		s.notifier.NotifyIncidentUpdated(i, "actualizado")
	}
	return i, nil
}

func (s *IncidentService) Delete(ctx context.Context, id uuid.UUID) (domain.Incident, error) {
	incident, err := s.incidentRepo.GetByID(ctx, id)
	if err != nil {
		return domain.Incident{}, err
	}
	if err := s.incidentRepo.Delete(ctx, id); err != nil {
		return domain.Incident{}, err
	}
	if s.notifier != nil {
		s.notifier.NotifyIncidentDeleted(incident)
	}
	return incident, nil
}

// AttachEvidence appends uploaded object keys to an incident's evidence
// list.
func (s *IncidentService) AttachEvidence(ctx context.Context, id uuid.UUID, objectKeys []string) (domain.Incident, error) {
	incident, err := s.incidentRepo.GetByID(ctx, id)
	if err != nil {
		return domain.Incident{}, err
	}
	incident.Evidence = append(incident.Evidence, objectKeys...)
	if err := s.incidentRepo.Update(ctx, incident); err != nil {
		return domain.Incident{}, err
	}
	return incident, nil
}
