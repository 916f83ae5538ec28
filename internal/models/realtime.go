package models

import "encoding/json"

// Event kinds accepted on the tracking channel.
const (
	EventStatusChanged   = "status_changed"
	EventLocationUpdated = "location_updated"
	EventGeneric         = "generic"
)

// Connection roles.
const (
	RoleCustomer    = "customer"
	RoleAgent       = "agent"
	RoleUnspecified = "unspecified"
)

// TrackingEvent is one update about an order, produced by the order or
// location service and fanned out to the order's room. The payload is opaque
// to the realtime core. Events are not persisted by the hub; a member that is
// absent at publish time never sees the event.
type TrackingEvent struct {
	OrderID   string          `json:"order_id"`
	Kind      string          `json:"kind"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"`
}

// ValidEventKind reports whether kind is one of the accepted event kinds.
func ValidEventKind(kind string) bool {
	switch kind {
	case EventStatusChanged, EventLocationUpdated, EventGeneric:
		return true
	}
	return false
}

// ClientFrame is an inbound message on a tracking WebSocket.
// Action is "join", "leave" or "ping".
type ClientFrame struct {
	Action  string `json:"action"`
	OrderID string `json:"order_id"`
}

// ServerFrame is an outbound message on a tracking WebSocket: either an
// event push (Action empty) or a control frame ("joined", "left", "error").
type ServerFrame struct {
	Action    string          `json:"action,omitempty"`
	Code      string          `json:"code,omitempty"`
	OrderID   string          `json:"order_id,omitempty"`
	Kind      string          `json:"kind,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"timestamp,omitempty"`
}

// PushFrame wraps a tracking event into the outbound frame shape.
func PushFrame(ev TrackingEvent) ServerFrame {
	return ServerFrame{
		OrderID:   ev.OrderID,
		Kind:      ev.Kind,
		Payload:   ev.Payload,
		Timestamp: ev.Timestamp,
	}
}
