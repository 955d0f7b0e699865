package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"alerta360-backend/internal/domain"
	"alerta360-backend/internal/services"
	"alerta360-backend/internal/transport/httpdto"
)

type MessageHandler struct {
	service *services.MessageService
}

func NewMessageHandler(service *services.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

// Create persists a message over REST. Connected room members still get
// the update through the chat_updated broadcast.
func (h *MessageHandler) Create(c *gin.Context) {
	var req httpdto.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	chatID, err := parseUUID(req.ChatID)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid chat_id", "INVALID_REQUEST"))
		return
	}
	senderID, err := parseUUID(req.SenderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid sender_id", "INVALID_REQUEST"))
		return
	}

	msg, err := h.service.Send(c.Request.Context(), chatID, senderID, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(msg))
}

type historyResponse struct {
	Messages   []domain.Message   `json:"messages"`
	Pagination httpdto.Pagination `json:"pagination"`
}

func (h *MessageHandler) History(c *gin.Context) {
	chatID, err := parseUUID(c.Param("chatId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid chat id", "INVALID_REQUEST"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}

	messages, total, err := h.service.History(c.Request.Context(), chatID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(historyResponse{
		Messages: messages,
		Pagination: httpdto.Pagination{
			CurrentPage:   page,
			TotalPages:    totalPages,
			TotalMessages: total,
			HasMore:       page < totalPages,
		},
	}))
}
