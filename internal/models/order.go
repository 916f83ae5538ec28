package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order represents a placed grocery order. The realtime core only consults
// it for the authorization policy (who may watch this order's room); the
// business state machine around Status lives in the order service.
type Order struct {
	// OrderID is the unique identifier for the order (UUID).
	OrderID string `gorm:"primaryKey" json:"order_id"`
	// CustomerID is the id of the user who placed the order.
	CustomerID string `gorm:"index" json:"customer_id"`
	// AgentID is the id of the delivery agent, empty until one is assigned.
	AgentID string `gorm:"index" json:"agent_id"`
	// Status is the last business status reported for the order.
	Status string `json:"status"`
	// IsActive indicates whether the order is still in flight.
	IsActive bool `json:"is_active"`
	// PlacedAt is the timestamp when the order was created.
	PlacedAt time.Time `json:"placed_at"`
	// ClosedAt is the timestamp when the order was delivered or cancelled.
	ClosedAt time.Time `json:"closed_at"`
}

// BeforeCreate is a GORM hook that generates a new UUID for the order
// if OrderID has not been set by the caller.
func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.OrderID == "" {
		o.OrderID = uuid.New().String()
	}
	return
}
