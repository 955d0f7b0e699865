package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alerta360-backend/internal/services"
	"alerta360-backend/internal/transport/httpdto"
)

type ChatHandler struct {
	service *services.ChatService
}

func NewChatHandler(service *services.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// CreatePrivateChat returns the existing chat for the pair when one
// already exists, so repeated calls are idempotent.
func (h *ChatHandler) CreatePrivateChat(c *gin.Context) {
	var req httpdto.CreatePrivateChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	ownerID, err := parseUUID(req.OwnerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid owner_id", "INVALID_REQUEST"))
		return
	}
	friendID, err := parseUUID(req.FriendID)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid friend_id", "INVALID_REQUEST"))
		return
	}

	chat, created, err := h.service.GetOrCreatePrivateChat(c.Request.Context(), ownerID, friendID)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, httpdto.NewSuccessResponse(chat))
}

func (h *ChatHandler) ListPrivateChats(c *gin.Context) {
	userID, err := parseUUID(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid user id", "INVALID_REQUEST"))
		return
	}

	chats, err := h.service.GetPrivateChatsByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(chats))
}

func (h *ChatHandler) GetPrivateChatForPair(c *gin.Context) {
	ownerID, err := parseUUID(c.Param("ownerId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid owner id", "INVALID_REQUEST"))
		return
	}
	friendID, err := parseUUID(c.Param("friendId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid friend id", "INVALID_REQUEST"))
		return
	}

	chat, err := h.service.GetPrivateChatForPair(c.Request.Context(), ownerID, friendID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(chat))
}

func (h *ChatHandler) CreateDistrictChat(c *gin.Context) {
	var req httpdto.CreateDistrictChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	chat, err := h.service.CreateDistrictChat(c.Request.Context(), req.DistrictName, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(chat))
}

func (h *ChatHandler) ListDistrictChats(c *gin.Context) {
	chats, err := h.service.GetDistrictChats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(chats))
}

func (h *ChatHandler) GetDistrictChat(c *gin.Context) {
	chat, err := h.service.GetDistrictChat(c.Request.Context(), c.Param("districtName"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(chat))
}

func (h *ChatHandler) UpdateDistrictChat(c *gin.Context) {
	id, err := parseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid chat id", "INVALID_REQUEST"))
		return
	}

	var req httpdto.UpdateDistrictChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	chat, err := h.service.UpdateDistrictChat(c.Request.Context(), id, req.ChatName, req.Description, req.IsActive)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(chat))
}

func (h *ChatHandler) Get(c *gin.Context) {
	id, err := parseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid chat id", "INVALID_REQUEST"))
		return
	}

	chat, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(chat))
}
