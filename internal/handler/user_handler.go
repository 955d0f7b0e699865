package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alerta360-backend/internal/domain"
	"alerta360-backend/internal/services"
	"alerta360-backend/internal/transport/httpdto"
)

type UserHandler struct {
	service *services.UserService
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) Create(c *gin.Context) {
	var req httpdto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	u := domain.User{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		District:    req.District,
		DNI:         req.DNI,
	}
	if err := h.service.Create(c.Request.Context(), &u); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(u))
}

func (h *UserHandler) List(c *gin.Context) {
	items, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(items))
}

func (h *UserHandler) Get(c *gin.Context) {
	id, err := parseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid user id", "INVALID_REQUEST"))
		return
	}

	u, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(u))
}

func (h *UserHandler) Update(c *gin.Context) {
	id, err := parseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid user id", "INVALID_REQUEST"))
		return
	}

	var req httpdto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	current, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	if req.FirstName != nil {
		current.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		current.LastName = *req.LastName
	}
	if req.Email != nil {
		current.Email = *req.Email
	}
	if req.Password != nil {
		current.Password = *req.Password
	} else {
		current.Password = ""
	}
	if req.PhoneNumber != nil {
		current.PhoneNumber = *req.PhoneNumber
	}
	if req.District != nil {
		current.District = *req.District
	}
	if req.DNI != nil {
		current.DNI = *req.DNI
	}
	if req.FCMToken != nil {
		current.FCMToken = req.FCMToken
	}
	if req.SubscribedTopics != nil {
		current.SubscribedTopics = req.SubscribedTopics
	}

	updated, err := h.service.Update(c.Request.Context(), current)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(updated))
}
