package trackhub

import (
	"log"
	"sync"
	"time"

	"gocart/backend/internal/models"

	"github.com/google/uuid"
)

// connRecord is the registry's view of one live connection. The record is
// mutated only by the connection's own handling flow and the supervisor's
// idle sweep, both funneled through the registry's lock.
type connRecord struct {
	client        Client
	role          string
	createdAt     time.Time
	lastHeartbeat time.Time
}

// Registry tracks every live connection on this instance. It owns each
// connection handle from Register until Unregister.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]*connRecord

	// maxConns caps the registry size; 0 means unlimited.
	maxConns int
}

func NewRegistry(maxConns int) *Registry {
	return &Registry{
		conns:    make(map[string]*connRecord),
		maxConns: maxConns,
	}
}

// Register assigns a connection id and makes the client visible to lookups.
// Fails only when the connection cap is reached.
func (r *Registry) Register(c Client) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.maxConns > 0 && len(r.conns) >= r.maxConns {
		return "", ErrResourceExhausted
	}

	id := uuid.New().String()
	now := time.Now()
	r.conns[id] = &connRecord{
		client:        c,
		role:          c.GetRole(),
		createdAt:     now,
		lastHeartbeat: now,
	}
	c.SetConnID(id)
	return id, nil
}

// Unregister removes the connection and closes its client. Idempotent:
// a second call for the same id is a no-op.
func (r *Registry) Unregister(connID string) {
	r.mu.Lock()
	rec, ok := r.conns[connID]
	if ok {
		delete(r.conns, connID)
	}
	r.mu.Unlock()

	if ok {
		rec.client.Close()
		log.Printf("connection %s (role %s) closed after %s", connID, rec.role, time.Since(rec.createdAt).Round(time.Second))
	}
}

// Send pushes a frame to one connection without blocking. A missing
// connection or a full outbound buffer reports ErrSendFailed; the caller
// (the broadcaster) records it per recipient and moves on.
func (r *Registry) Send(connID string, frame models.ServerFrame) error {
	r.mu.RLock()
	rec, ok := r.conns[connID]
	r.mu.RUnlock()

	if !ok {
		return ErrSendFailed
	}

	select {
	case rec.client.GetSendChannel() <- frame:
		return nil
	default:
		// Outbound buffer full: the backpressure ceiling converts a slow
		// consumer into a failed send instead of stalling the fan-out.
		return ErrSendFailed
	}
}

// TouchHeartbeat records liveness for the idle-timeout policy.
func (r *Registry) TouchHeartbeat(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec, ok := r.conns[connID]; ok {
		rec.lastHeartbeat = time.Now()
	}
}

// IdleConnections returns the ids of connections with no heartbeat inside
// the window. Used by the supervisor's sweep.
func (r *Registry) IdleConnections(window time.Duration) []string {
	cutoff := time.Now().Add(-window)

	r.mu.RLock()
	defer r.mu.RUnlock()

	var idle []string
	for id, rec := range r.conns {
		if rec.lastHeartbeat.Before(cutoff) {
			idle = append(idle, id)
		}
	}
	return idle
}

// ConnIDs returns a snapshot of every registered connection id.
func (r *Registry) ConnIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.conns))
	for id := range r.conns {
		ids = append(ids, id)
	}
	return ids
}

// Len returns the number of registered connections.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
