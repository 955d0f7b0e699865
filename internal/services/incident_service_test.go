package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"alerta360-backend/internal/domain"
	"alerta360-backend/internal/repository"
	alerta_errors "alerta360-backend/pkg/errors"
)

type recordingNotifier struct {
	created []domain.Incident
	updated []string
	deleted []domain.Incident
}

func (n *recordingNotifier) NotifyNewIncident(incident domain.Incident) {
	n.created = append(n.created, incident)
}

func (n *recordingNotifier) NotifyIncidentUpdated(incident domain.Incident, changeKind string) {
	n.updated = append(n.updated, changeKind)
}

func (n *recordingNotifier) NotifyIncidentDeleted(incident domain.Incident) {
	n.deleted = append(n.deleted, incident)
}

func newIncidentFixture(t *testing.T) (*IncidentService, *recordingNotifier) {
	t.Helper()
	notifier := &recordingNotifier{}
	return NewIncidentService(repository.NewIncidentRepository(testDB(t)), notifier), notifier
}

func TestIncidentService_CreateNotifies(t *testing.T) {
	req := require.New(t)
	service, notifier := newIncidentFixture(t)
	ctx := context.Background()

	incident := domain.Incident{
		Title:        "Robo en la esquina",
		IncidentType: "Robo",
		Ubication:    "Av. Larco",
		District:     "Miraflores",
		UserID:       uuid.New(),
	}
	req.NoError(service.Create(ctx, &incident))
	req.NotEqual(uuid.Nil, incident.ID)
	req.Len(notifier.created, 1)
	req.Equal(incident.ID, notifier.created[0].ID)
}

func TestIncidentService_CreateRequiresContent(t *testing.T) {
	req := require.New(t)
	service, notifier := newIncidentFixture(t)

	err := service.Create(context.Background(), &domain.Incident{UserID: uuid.New()})
	req.ErrorIs(err, alerta_errors.ErrInvalidInput)
	req.Empty(notifier.created)
}

func TestIncidentService_UpdateDeleteNotify(t *testing.T) {
	req := require.New(t)
	service, notifier := newIncidentFixture(t)
	ctx := context.Background()

	incident := domain.Incident{Title: "Bache", UserID: uuid.New()}
	req.NoError(service.Create(ctx, &incident))

	incident.Description = "Bache profundo"
	_, err := service.Update(ctx, incident)
	req.NoError(err)
	req.Equal([]string{"actualizado"}, notifier.updated)

	deleted, err := service.Delete(ctx, incident.ID)
	req.NoError(err)
	req.Equal(incident.ID, deleted.ID)
	req.Len(notifier.deleted, 1)

	_, err = service.GetByID(ctx, incident.ID)
	req.ErrorIs(err, alerta_errors.ErrNotFound)

	// Deleting again fails before any notification
	_, err = service.Delete(ctx, incident.ID)
	req.ErrorIs(err, alerta_errors.ErrNotFound)
	req.Len(notifier.deleted, 1)
}

func TestIncidentService_AttachEvidence(t *testing.T) {
	req := require.New(t)
	service, _ := newIncidentFixture(t)
	ctx := context.Background()

	incident := domain.Incident{Title: "Incendio", UserID: uuid.New(), Evidence: []string{"evidence/a.jpg"}}
	req.NoError(service.Create(ctx, &incident))

	updated, err := service.AttachEvidence(ctx, incident.ID, []string{"evidence/b.jpg", "evidence/c.jpg"})
	req.NoError(err)
	req.Equal([]string{"evidence/a.jpg", "evidence/b.jpg", "evidence/c.jpg"}, updated.Evidence)
}

func TestIncidentService_GetByUser(t *testing.T) {
	req := require.New(t)
	service, _ := newIncidentFixture(t)
	ctx := context.Background()
	reporter := uuid.New()

	req.NoError(service.Create(ctx, &domain.Incident{Title: "Uno", UserID: reporter}))
	req.NoError(service.Create(ctx, &domain.Incident{Title: "Dos", UserID: reporter}))
	req.NoError(service.Create(ctx, &domain.Incident{Title: "Ajeno", UserID: uuid.New()}))

	items, err := service.GetByUser(ctx, reporter)
	req.NoError(err)
	req.Len(items, 2)
}
