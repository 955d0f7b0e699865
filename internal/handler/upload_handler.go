package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alerta360-backend/internal/services"
	"alerta360-backend/internal/storage"
	"alerta360-backend/internal/transport/httpdto"
)

type UploadHandler struct {
	store     *storage.Client
	incidents *services.IncidentService
}

func NewUploadHandler(store *storage.Client, incidents *services.IncidentService) *UploadHandler {
	return &UploadHandler{store: store, incidents: incidents}
}

// PresignEvidence returns a presigned PUT URL for an evidence file and
// records the object key on the incident. The client uploads directly
// to the bucket afterwards.
func (h *UploadHandler) PresignEvidence(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, httpdto.NewErrorResponse("uploads not configured", "UPLOADS_DISABLED"))
		return
	}

	incidentID, err := parseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid incident id", "INVALID_REQUEST"))
		return
	}

	var req httpdto.EvidenceUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	key := storage.EvidenceKey(incidentID, req.FileName)
	uploadURL, _, err := h.store.PresignPut(c.Request.Context(), key, req.ContentType, req.SizeBytes)
	if err != nil {
		respondError(c, err)
		return
	}

	if _, err := h.incidents.AttachEvidence(c.Request.Context(), incidentID, []string{key}); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.EvidenceUploadResponse{
		UploadURL: uploadURL,
		ObjectKey: key,
	}))
}
