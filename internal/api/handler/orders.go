package handler

import (
	"net/http"
	"time"

	"gocart/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// createOrderRequest seeds a minimal order record so the join authorization
// policy has something to check against. Full order CRUD lives in the order
// service, not here.
type createOrderRequest struct {
	CustomerID string `json:"customer_id" binding:"required"`
	OrderID    string `json:"order_id"`
}

type assignAgentRequest struct {
	AgentID string `json:"agent_id" binding:"required"`
}

// CreateOrder registers an order for tracking.
func (h *Handler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "customer_id is required"})
		return
	}

	order := &models.Order{
		OrderID:    req.OrderID,
		CustomerID: req.CustomerID,
		Status:     "placed",
		IsActive:   true,
		PlacedAt:   time.Now(),
	}
	if err := h.Store.SaveOrder(order); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save order"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"order_id": order.OrderID})
}

// AssignAgent attaches a delivery agent to an order, opening the room to
// that agent's connections.
func (h *Handler) AssignAgent(c *gin.Context) {
	orderID := c.Param("id")

	var req assignAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "agent_id is required"})
		return
	}

	if err := h.Store.AssignAgent(orderID, req.AgentID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign agent"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order_id": orderID, "agent_id": req.AgentID})
}
