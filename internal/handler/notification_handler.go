package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alerta360-backend/internal/notify"
	"alerta360-backend/internal/transport/httpdto"
)

type NotificationHandler struct {
	dispatcher *notify.Dispatcher
}

func NewNotificationHandler(dispatcher *notify.Dispatcher) *NotificationHandler {
	return &NotificationHandler{dispatcher: dispatcher}
}

// SendTest queues a notification to an arbitrary topic. Used by ops to
// verify the push pipeline end to end.
func (h *NotificationHandler) SendTest(c *gin.Context) {
	var req httpdto.TestNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	topic := req.Topic
	if topic == "" {
		topic = notify.TopicAllIncidents
	}

	h.dispatcher.SendToTopic(topic, notify.Notification{
		Title: req.Title,
		Body:  req.Body,
	}, req.Data)

	c.JSON(http.StatusAccepted, httpdto.NewSuccessResponse(gin.H{
		"topic":  topic,
		"queued": true,
	}))
}

// Topics lists the well-known topics clients can subscribe to.
func (h *NotificationHandler) Topics(c *gin.Context) {
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{
		"topics": []gin.H{
			{"name": notify.TopicAllIncidents, "description": "Todos los incidentes reportados"},
			{"name": notify.TopicEmergencyAlerts, "description": "Alertas de emergencia"},
			{"name": "location_<zona>", "description": "Incidentes por ubicación, ej. location_san_isidro"},
		},
	}))
}
