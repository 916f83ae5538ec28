package trackhub

import (
	"log"
	"sync"
	"time"

	"gocart/backend/internal/config"
	"gocart/backend/internal/models"
	"gocart/backend/internal/storage"
)

// Hub is the process-wide supervisor for the tracking core. It owns
// connection acceptance, the idle-timeout sweep and the graceful drain, and
// wires the registry, room index and broadcaster together.
type Hub struct {
	Registry    *Registry
	Rooms       *RoomIndex
	Broadcaster *Broadcaster
	Storage     storage.Storage

	// EventCh carries tracking events from upstream producers (the Pub/Sub
	// listener, or a local publish) into the broadcast flow.
	EventCh chan models.TrackingEvent
	// UnregisterCh carries disconnect requests from client pumps, mirroring
	// the pumps' fire-and-forget teardown path.
	UnregisterCh chan string

	cfg config.Realtime

	mu       sync.Mutex
	sessions map[string]*Session
	draining bool

	done     chan struct{}
	stopOnce sync.Once
}

func NewHub(s storage.Storage, cfg config.Realtime) *Hub {
	h := &Hub{
		Registry:     NewRegistry(cfg.MaxConnections),
		Rooms:        NewRoomIndex(),
		Storage:      s,
		EventCh:      make(chan models.TrackingEvent, 64),
		UnregisterCh: make(chan string, 64),
		cfg:          cfg,
		sessions:     make(map[string]*Session),
		done:         make(chan struct{}),
	}
	h.Broadcaster = NewBroadcaster(h.Registry, h.Rooms)
	return h
}

// Connect registers a transport client and hands back its protocol session.
// Refused with ErrResourceExhausted when the registry is full or the hub is
// draining for shutdown.
func (h *Hub) Connect(c Client) (*Session, error) {
	h.mu.Lock()
	if h.draining {
		h.mu.Unlock()
		return nil, ErrResourceExhausted
	}
	h.mu.Unlock()

	connID, err := h.Registry.Register(c)
	if err != nil {
		return nil, err
	}

	sess := newSession(connID, c.GetUserID(), c.GetRole(), h)

	h.mu.Lock()
	h.sessions[connID] = sess
	h.mu.Unlock()

	if err := h.Storage.AddActiveConnection(connID); err != nil {
		log.Printf("WARNING: failed to record presence for %s: %v", connID, err)
	}

	log.Printf("connection %s registered (user %s, role %s)", connID, c.GetUserID(), c.GetRole())
	return sess, nil
}

// Disconnect tears one connection down: leaveAll, then unregister. Safe to
// call from the pump, the sweep and shutdown concurrently; only the first
// call does work.
func (h *Hub) Disconnect(connID string) {
	h.mu.Lock()
	sess, ok := h.sessions[connID]
	if ok {
		delete(h.sessions, connID)
	}
	h.mu.Unlock()

	if !ok {
		return
	}

	sess.Disconnect()

	if err := h.Storage.RemoveActiveConnection(connID); err != nil {
		log.Printf("WARNING: failed to clear presence for %s: %v", connID, err)
	}

	log.Printf("connection %s disconnected", connID)
}

// Session returns the live session for a connection id, or nil.
func (h *Hub) Session(connID string) *Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sessions[connID]
}

// Touch records heartbeat activity for the idle-timeout policy.
func (h *Hub) Touch(connID string) {
	h.Registry.TouchHeartbeat(connID)
}

// Publish fans an event out to the local members of its order's room.
func (h *Hub) Publish(ev models.TrackingEvent) DeliveryReport {
	return h.Broadcaster.Publish(ev)
}

// Run is the supervisor loop: it serializes pump-driven disconnects, event
// fan-out and the idle sweep until Shutdown is called.
func (h *Hub) Run() {
	ticker := time.NewTicker(h.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case connID := <-h.UnregisterCh:
			h.Disconnect(connID)

		case ev := <-h.EventCh:
			h.Broadcaster.Publish(ev)

		case <-ticker.C:
			h.sweepIdle()

		case <-h.done:
			return
		}
	}
}

// sweepIdle force-disconnects connections that went silent past the idle
// window. Eviction goes through the normal disconnect path and is safe to
// race with a client-initiated close.
func (h *Hub) sweepIdle() {
	for _, connID := range h.Registry.IdleConnections(h.cfg.IdleTimeout) {
		log.Printf("connection %s idle past %s, evicting", connID, h.cfg.IdleTimeout)
		h.Disconnect(connID)
	}
}

// Shutdown performs the orderly drain: stop accepting connections, notify
// remaining clients, then tear every connection and room down.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	h.draining = true
	remaining := make([]string, 0, len(h.sessions))
	for connID := range h.sessions {
		remaining = append(remaining, connID)
	}
	h.mu.Unlock()

	notice := models.ServerFrame{Action: "error", Code: "server_shutdown"}
	for _, connID := range remaining {
		if err := h.Registry.Send(connID, notice); err != nil {
			// Client already gone or too slow to care; teardown follows anyway.
			continue
		}
	}
	for _, connID := range remaining {
		h.Disconnect(connID)
	}

	h.stopOnce.Do(func() { close(h.done) })
	log.Printf("tracking hub drained: %d connections closed", len(remaining))
}
