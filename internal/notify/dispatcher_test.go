package notify

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"alerta360-backend/internal/domain"
	"alerta360-backend/pkg/logger"
)

type published struct {
	Topic   string
	Payload []byte
}

type fakeProvider struct {
	mu        sync.Mutex
	published []published
}

func (p *fakeProvider) Publish(ctx context.Context, topic string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, published{Topic: topic, Payload: payload})
	return nil
}

func (p *fakeProvider) topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	topics := make([]string, 0, len(p.published))
	for _, pub := range p.published {
		topics = append(topics, pub.Topic)
	}
	return topics
}

// drained runs the dispatcher, executes fn, and waits until every queued
// notification has been delivered.
func drained(t *testing.T, fn func(d *Dispatcher)) *fakeProvider {
	t.Helper()
	provider := &fakeProvider{}
	d := NewDispatcher(provider, logger.NewNop())
	d.Start()
	fn(d)
	d.Stop()
	return provider
}

func TestLocationTopic(t *testing.T) {
	req := require.New(t)
	req.Equal("location_san_isidro", LocationTopic("San Isidro"))
	req.Equal("location_av._arequipa", LocationTopic("  Av.   Arequipa "))
	req.Equal("location_", LocationTopic(""))
}

func TestDispatcher_SendToTopicDeliversEnvelope(t *testing.T) {
	req := require.New(t)

	provider := drained(t, func(d *Dispatcher) {
		d.SendToTopic("all_incidents", Notification{Title: "Prueba", Body: "Hola"}, map[string]string{"k": "v"})
	})

	req.Len(provider.published, 1)
	req.Equal("all_incidents", provider.published[0].Topic)

	var msg topicMessage
	req.NoError(json.Unmarshal(provider.published[0].Payload, &msg))
	req.Equal("all_incidents", msg.Topic)
	req.Equal("Prueba", msg.Notification.Title)
	req.Equal("v", msg.Data["k"])
	req.NotEmpty(msg.Timestamp)
}

func TestDispatcher_NewIncidentFanOut(t *testing.T) {
	req := require.New(t)
	incident := domain.Incident{
		ID:           uuid.New(),
		Title:        "Choque múltiple",
		IncidentType: "Accidente",
		Ubication:    "Av. Javier Prado",
		District:     "San Borja",
	}

	provider := drained(t, func(d *Dispatcher) {
		d.NotifyNewIncident(incident)
	})

	req.ElementsMatch([]string{
		TopicAllIncidents,
		"location_av._javier_prado",
		"location_san_borja",
	}, provider.topics())
}

func TestDispatcher_EmergencyIncidentAlsoHitsEmergencyTopic(t *testing.T) {
	req := require.New(t)
	incident := domain.Incident{
		ID:           uuid.New(),
		Title:        "Incendio",
		IncidentType: "Emergencia médica",
		Ubication:    "Surco",
	}

	provider := drained(t, func(d *Dispatcher) {
		d.NotifyNewIncident(incident)
	})

	req.Contains(provider.topics(), TopicEmergencyAlerts)
}

func TestDispatcher_NewIncidentDefaults(t *testing.T) {
	req := require.New(t)
	incident := domain.Incident{ID: uuid.New()}

	provider := drained(t, func(d *Dispatcher) {
		d.NotifyNewIncident(incident)
	})

	// Only the global topic: no ubication, no district
	req.Equal([]string{TopicAllIncidents}, provider.topics())

	var msg topicMessage
	req.NoError(json.Unmarshal(provider.published[0].Payload, &msg))
	req.Equal("Incidente en Ubicación no especificada: Sin título", msg.Notification.Body)
}

func TestDispatcher_UpdatedAndDeleted(t *testing.T) {
	req := require.New(t)
	incident := domain.Incident{
		ID:           uuid.New(),
		Title:        "Bache",
		IncidentType: "Vial",
		Ubication:    "Lince",
	}

	provider := drained(t, func(d *Dispatcher) {
		d.NotifyIncidentUpdated(incident, "")
		d.NotifyIncidentDeleted(incident)
	})

	req.Equal([]string{
		TopicAllIncidents, "location_lince",
		TopicAllIncidents, "location_lince",
	}, provider.topics())

	var msg topicMessage
	req.NoError(json.Unmarshal(provider.published[0].Payload, &msg))
	req.Equal("actualizado", msg.Data["update_type"])
}

func TestDispatcher_StopDrainsQueue(t *testing.T) {
	req := require.New(t)
	provider := &fakeProvider{}
	d := NewDispatcher(provider, logger.NewNop())

	// Enqueue before the worker starts, then start and stop immediately:
	// everything queued must still be delivered.
	for i := 0; i < 10; i++ {
		d.SendToTopic(TopicAllIncidents, Notification{Title: "Prueba"}, nil)
	}
	d.Start()
	d.Stop()

	req.Len(provider.published, 10)

	// Stop is idempotent
	d.Stop()
}
