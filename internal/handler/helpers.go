package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"alerta360-backend/internal/transport/httpdto"
	alerta_errors "alerta360-backend/pkg/errors"
)

func parseUUID(value string) (uuid.UUID, error) {
	if value == "" {
		return uuid.Nil, alerta_errors.ErrInvalidInput
	}
	return uuid.Parse(value)
}

// respondError maps service errors to status codes and the JSON error
// envelope.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, alerta_errors.ErrNotFound):
		c.JSON(http.StatusNotFound, httpdto.NewErrorResponse(err.Error(), "NOT_FOUND"))
	case errors.Is(err, alerta_errors.ErrAlreadyExists):
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse(err.Error(), "ALREADY_EXISTS"))
	case errors.Is(err, alerta_errors.ErrInvalidInput),
		errors.Is(err, alerta_errors.ErrEmptyMessage),
		errors.Is(err, alerta_errors.ErrMessageTooLong):
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse(err.Error(), "INVALID_REQUEST"))
	default:
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse(err.Error(), "INTERNAL_ERROR"))
	}
}
