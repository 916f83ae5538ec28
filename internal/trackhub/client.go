package trackhub

import "gocart/backend/internal/models"

// Client is the interface for any type of transport connection. It abstracts
// the underlying communication mechanism so the hub can manage different
// client types uniformly; the production implementation is WebSocketClient.
type Client interface {
	// GetConnID returns the connection id assigned by the registry.
	GetConnID() string
	// SetConnID is called once by the registry when the connection is accepted.
	SetConnID(id string)

	// GetUserID returns the authenticated user behind the connection.
	GetUserID() string
	// GetRole returns the connection role: customer, agent or unspecified.
	GetRole() string

	// GetSendChannel returns the channel the hub pushes outbound frames to.
	// The channel is bounded; a full channel means the client is too slow and
	// the frame is counted as a failed send.
	GetSendChannel() chan<- models.ServerFrame

	// Run starts the client's read and write pumps.
	Run()
	// Close stops the pumps and releases the underlying transport. It must be
	// safe to call more than once.
	Close()
}
