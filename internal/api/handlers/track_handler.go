// server/internal/api/handlers/track_handler.go
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"warranty-cert-api-server/internal/models"
	"warranty-cert-api-server/internal/status"
	"warranty-cert-api-server/internal/store"

	"github.com/gin-gonic/gin"
)

type TrackHandler struct {
	Store RequestStore
}

// TrackRequest looks up a request by certificate number and maps its stored
// status to the tracker category. Not-found is reported distinctly from a
// connectivity failure so the user knows whether to fix the ID or retry.
func (h *TrackHandler) TrackRequest(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	req, err := h.Store.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Request ID not found. Please check and try again."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch status. Please check your connection."})
		return
	}

	// Records written before the status field existed read as pending.
	raw := req.Status
	if raw == "" {
		raw = models.StatusPending
	}

	display := status.Resolve(raw, req.RejectionReason)

	c.JSON(http.StatusOK, gin.H{
		"requestID":       req.ID,
		"status":          raw,
		"category":        display.Category,
		"title":           display.Title,
		"description":     display.Description,
		"canEdit":         display.CanEdit,
		"rejectionReason": req.RejectionReason,
	})
}
