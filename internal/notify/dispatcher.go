package notify

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"alerta360-backend/internal/domain"
	"alerta360-backend/pkg/logger"
)

// Well-known topics.
const (
	TopicAllIncidents    = "all_incidents"
	TopicEmergencyAlerts = "emergency_alerts"
)

const publishTimeout = 10 * time.Second

// Notification is the user-visible part of a push message.
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type topicMessage struct {
	Topic        string            `json:"topic"`
	Notification Notification      `json:"notification"`
	Data         map[string]string `json:"data"`
	Timestamp    string            `json:"timestamp"`
}

type job struct {
	topic        string
	notification Notification
	data         map[string]string
}

// Dispatcher fans incident domain events out to push-notification
// topics. Sends are queued and handled by a background worker so the
// HTTP response path never waits on, or sees, delivery failures.
type Dispatcher struct {
	provider Provider
	log      *logger.Logger
	queue    chan job
	done     chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
}

func NewDispatcher(provider Provider, log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		provider: provider,
		log:      log,
		queue:    make(chan job, 256),
		done:     make(chan struct{}),
	}
}

// Start launches the background worker.
func (d *Dispatcher) Start() {
	d.wg.Add(1)
	go d.run()
}

// Stop drains the queue and waits for the worker to finish.
func (d *Dispatcher) Stop() {
	d.once.Do(func() { close(d.done) })
	d.wg.Wait()
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for {
		select {
		case j := <-d.queue:
			d.deliver(j)
		case <-d.done:
			// Drain whatever was enqueued before shutdown.
			for {
				select {
				case j := <-d.queue:
					d.deliver(j)
				default:
					return
				}
			}
		}
	}
}

func (d *Dispatcher) deliver(j job) {
	msg := topicMessage{
		Topic:        j.topic,
		Notification: j.notification,
		Data:         j.data,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		d.log.Errorf("notify: failed to marshal notification for topic %s: %v", j.topic, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := d.provider.Publish(ctx, j.topic, payload); err != nil {
		// Fire-and-forget: the triggering request already returned.
		d.log.Errorf("notify: failed to publish to topic %s: %v", j.topic, err)
		return
	}
	d.log.Infof("notify: sent %q to topic %s", j.notification.Title, j.topic)
}

// SendToTopic enqueues a notification. Never blocks; when the queue is
// full the notification is dropped and logged.
func (d *Dispatcher) SendToTopic(topic string, n Notification, data map[string]string) {
	select {
	case d.queue <- job{topic: topic, notification: n, data: data}:
	default:
		d.log.Warnf("notify: queue full, dropping notification for topic %s", topic)
	}
}

func (d *Dispatcher) NotifyNewIncident(incident domain.Incident) {
	incidentType := incident.IncidentType
	if incidentType == "" {
		incidentType = "Incidente"
	}
	ubication := incident.Ubication
	if ubication == "" {
		ubication = "Ubicación no especificada"
	}
	title := incident.Title
	if title == "" {
		title = "Sin título"
	}

	n := Notification{
		Title: "🚨 Nuevo Incidente Reportado",
		Body:  incidentType + " en " + ubication + ": " + title,
	}
	data := map[string]string{
		"type":          "new_incident",
		"incident_id":   incident.ID.String(),
		"incident_type": incidentType,
		"ubication":     ubication,
		"title":         title,
		"body":          incident.Description,
	}

	d.SendToTopic(TopicAllIncidents, n, data)
	if incident.Ubication != "" {
		d.SendToTopic(LocationTopic(incident.Ubication), n, data)
	}
	if incident.District != "" {
		d.SendToTopic(LocationTopic(incident.District), n, data)
	}
	if strings.Contains(strings.ToLower(incidentType), "emergencia") {
		d.SendToTopic(TopicEmergencyAlerts, Notification{
			Title: "🆘 EMERGENCIA",
			Body:  n.Body,
		}, data)
	}
}

func (d *Dispatcher) NotifyIncidentUpdated(incident domain.Incident, changeKind string) {
	if changeKind == "" {
		changeKind = "actualizado"
	}
	n := Notification{
		Title: "📝 Incidente Actualizado",
		Body:  incident.IncidentType + " en " + incident.Ubication + " ha sido " + changeKind,
	}
	data := map[string]string{
		"type":          "incident_update",
		"incident_id":   incident.ID.String(),
		"update_type":   changeKind,
		"incident_type": incident.IncidentType,
		"ubication":     incident.Ubication,
	}

	d.SendToTopic(TopicAllIncidents, n, data)
	if incident.Ubication != "" {
		d.SendToTopic(LocationTopic(incident.Ubication), n, data)
	}
}

func (d *Dispatcher) NotifyIncidentDeleted(incident domain.Incident) {
	n := Notification{
		Title: "🗑️ Incidente Eliminado",
		Body:  "El incidente \"" + incident.Title + "\" en " + incident.Ubication + " ha sido eliminado",
	}
	data := map[string]string{
		"type":          "incident_delete",
		"incident_id":   incident.ID.String(),
		"incident_type": incident.IncidentType,
		"ubication":     incident.Ubication,
	}

	d.SendToTopic(TopicAllIncidents, n, data)
	if incident.Ubication != "" {
		d.SendToTopic(LocationTopic(incident.Ubication), n, data)
	}
}

// LocationTopic normalizes a place name into its topic:
// "Av. Sincronizado" -> "location_av._sincronizado".
func LocationTopic(place string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(place)), "_")
	return "location_" + normalized
}
