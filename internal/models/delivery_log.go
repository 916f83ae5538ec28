package models

import "gorm.io/gorm"

// DeliveryLogEntry is an audit row written when a producer submits a tracking
// event, before the event goes out over Pub/Sub. It exists for operational
// visibility only: the realtime hub never reads it back, and clients joining
// a room receive no backlog from it.
type DeliveryLogEntry struct {
	gorm.Model

	// OrderID is the order the event targeted.
	OrderID string `gorm:"type:text;not null;index:idx_order_event"`
	// Kind is the event kind as submitted by the producer.
	Kind string `gorm:"type:text;not null;index:idx_order_event"`
	// Payload is the raw event payload.
	Payload string `gorm:"type:text"`
	// ProducedAt is the producer timestamp in unix milliseconds.
	ProducedAt int64 `gorm:"not null"`
}
