package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"gocart/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// publishRequest is the ingest body from the order and location services.
type publishRequest struct {
	Kind    string          `json:"kind" binding:"required"`
	Payload json.RawMessage `json:"payload"`
}

// PublishEvent accepts one tracking event from an upstream producer and puts
// it on the Pub/Sub channel. The call is one-way: the producer learns only
// that the event was accepted, never who received it. Events are not queued
// for rooms with no members.
func (h *Handler) PublishEvent(c *gin.Context) {
	orderID := c.Param("id")

	var req publishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind is required"})
		return
	}
	if !models.ValidEventKind(req.Kind) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown event kind"})
		return
	}

	ev := models.TrackingEvent{
		OrderID:   orderID,
		Kind:      req.Kind,
		Payload:   req.Payload,
		Timestamp: time.Now().UnixMilli(),
	}

	entry := &models.DeliveryLogEntry{
		OrderID:    ev.OrderID,
		Kind:       ev.Kind,
		Payload:    string(ev.Payload),
		ProducedAt: ev.Timestamp,
	}
	// Audit write failure must not block the realtime path; storage logs it.
	_ = h.Store.SaveDeliveryLog(entry)

	if err := h.Store.PublishEvent(ev); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to publish event"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"accepted": true})
}
