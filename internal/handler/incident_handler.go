package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alerta360-backend/internal/domain"
	"alerta360-backend/internal/services"
	"alerta360-backend/internal/transport/httpdto"
)

type IncidentHandler struct {
	service *services.IncidentService
}

func NewIncidentHandler(service *services.IncidentService) *IncidentHandler {
	return &IncidentHandler{service: service}
}

func (h *IncidentHandler) Create(c *gin.Context) {
	var req httpdto.CreateIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	userID, err := parseUUID(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid user_id", "INVALID_REQUEST"))
		return
	}

	incident := domain.Incident{
		Title:        req.Title,
		Description:  req.Description,
		IncidentType: req.IncidentType,
		Ubication:    req.Ubication,
		Geolocation:  req.Geolocation,
		District:     req.District,
		UserID:       userID,
		Date:         req.Date,
		Evidence:     req.Evidence,
	}
	if err := h.service.Create(c.Request.Context(), &incident); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(incident))
}

func (h *IncidentHandler) List(c *gin.Context) {
	items, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(items))
}

func (h *IncidentHandler) Get(c *gin.Context) {
	id, err := parseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid incident id", "INVALID_REQUEST"))
		return
	}

	incident, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(incident))
}

func (h *IncidentHandler) ListByUser(c *gin.Context) {
	userID, err := parseUUID(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid user id", "INVALID_REQUEST"))
		return
	}

	items, err := h.service.GetByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(items))
}

func (h *IncidentHandler) Update(c *gin.Context) {
	id, err := parseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid incident id", "INVALID_REQUEST"))
		return
	}

	var req httpdto.UpdateIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	current, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	if req.Title != nil {
		current.Title = *req.Title
	}
	if req.Description != nil {
		current.Description = *req.Description
	}
	if req.IncidentType != nil {
		current.IncidentType = *req.IncidentType
	}
	if req.Ubication != nil {
		current.Ubication = *req.Ubication
	}
	if req.Geolocation != nil {
		current.Geolocation = *req.Geolocation
	}
	if req.District != nil {
		current.District = *req.District
	}
	if req.Date != nil {
		current.Date = req.Date
	}
	if req.Evidence != nil {
		current.Evidence = req.Evidence
	}

	updated, err := h.service.Update(c.Request.Context(), current)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(updated))
}

func (h *IncidentHandler) Delete(c *gin.Context) {
	id, err := parseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid incident id", "INVALID_REQUEST"))
		return
	}

	deleted, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(deleted))
}
