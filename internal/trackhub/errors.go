package trackhub

import "errors"

// Error kinds surfaced by the hub. NotFound is absorbed by leave/disconnect
// paths and only returned where the caller asked about a specific connection.
var (
	// ErrUnauthorized means the authorization policy rejected a join.
	ErrUnauthorized = errors.New("trackhub: not authorized for order")
	// ErrNotFound means the connection or room no longer exists.
	ErrNotFound = errors.New("trackhub: not found")
	// ErrResourceExhausted means a registry or per-connection room limit was hit.
	ErrResourceExhausted = errors.New("trackhub: resource limit reached")
	// ErrSendFailed means one recipient could not be delivered to; it never
	// aborts a broadcast.
	ErrSendFailed = errors.New("trackhub: send failed")
	// ErrDisconnected means the session already reached its terminal state.
	ErrDisconnected = errors.New("trackhub: connection disconnected")
)
