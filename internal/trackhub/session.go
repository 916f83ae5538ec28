package trackhub

import (
	"log"
	"sync"

	"gocart/backend/internal/storage"
)

// Session states. A session starts Connected, becomes Subscribed while it is
// a member of at least one room, and ends Disconnected (terminal).
const (
	StateConnected    = "connected"
	StateSubscribed   = "subscribed"
	StateDisconnected = "disconnected"
)

// Session is the per-connection protocol handler. It drives room membership
// for one connection: join and leave requests from the read pump, and the
// final disconnect from either the pump or the supervisor's idle sweep.
type Session struct {
	connID string
	userID string
	role   string

	rooms    *RoomIndex
	registry *Registry
	store    storage.Storage

	// maxRooms caps simultaneous memberships for this connection.
	maxRooms int

	mu           sync.Mutex
	disconnected bool
}

func newSession(connID, userID, role string, hub *Hub) *Session {
	return &Session{
		connID:   connID,
		userID:   userID,
		role:     role,
		rooms:    hub.Rooms,
		registry: hub.Registry,
		store:    hub.Storage,
		maxRooms: hub.cfg.MaxRoomsPerConn,
	}
}

func (s *Session) ConnID() string { return s.connID }
func (s *Session) UserID() string { return s.userID }
func (s *Session) Role() string   { return s.role }

// State derives the protocol state from the membership index.
func (s *Session) State() string {
	s.mu.Lock()
	if s.disconnected {
		s.mu.Unlock()
		return StateDisconnected
	}
	s.mu.Unlock()

	if s.rooms.RoomsOf(s.connID) > 0 {
		return StateSubscribed
	}
	return StateConnected
}

// Join subscribes the connection to an order's room. Re-joining the same
// order is a no-op success, which lets a reconnecting client replay its
// joins without special-casing. Returns ErrUnauthorized when the policy
// rejects the order, ErrResourceExhausted when the room cap is hit.
func (s *Session) Join(orderID string) error {
	s.mu.Lock()
	if s.disconnected {
		s.mu.Unlock()
		return ErrDisconnected
	}
	s.mu.Unlock()

	ok, err := s.store.CanViewOrder(s.userID, s.role, orderID)
	if err != nil {
		log.Printf("ERROR: authorization check for user %s on order %s: %v", s.userID, orderID, err)
		return ErrUnauthorized
	}
	if !ok {
		return ErrUnauthorized
	}

	if s.rooms.IsMember(orderID, s.connID) {
		return nil
	}
	if s.maxRooms > 0 && s.rooms.RoomsOf(s.connID) >= s.maxRooms {
		return ErrResourceExhausted
	}

	s.rooms.Join(orderID, s.connID)
	return nil
}

// Leave drops the membership for one order. Leaving a room the connection
// is not in is a benign no-op, never an error.
func (s *Session) Leave(orderID string) {
	s.rooms.Leave(orderID, s.connID)
}

// Disconnect moves the session to its terminal state: every room membership
// is removed before the connection is unregistered, so a broadcast running
// concurrently either includes this connection fully or not at all.
// Idempotent, so a client-initiated close racing the idle sweep is harmless.
func (s *Session) Disconnect() {
	s.mu.Lock()
	if s.disconnected {
		s.mu.Unlock()
		return
	}
	s.disconnected = true
	s.mu.Unlock()

	s.rooms.LeaveAll(s.connID)
	s.registry.Unregister(s.connID)
}
