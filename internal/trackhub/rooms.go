package trackhub

import "sync"

/*
RoomIndex stores two maps of room membership.

By maintaining both mappings these requirements are satisfied:
 1. Fast join and leave for a single (order, connection) pair;
 2. Efficient lookup of all members of an order's room for a broadcast;
 3. leaveAll on disconnect bounded by the rooms that connection joined,
    not by the total number of rooms.

A room is created on first join and deleted when its member set empties.
Rooms hold no event history.
*/
type RoomIndex struct {
	mu     sync.RWMutex
	byRoom map[string]map[string]struct{}
	byConn map[string]map[string]struct{}
}

func NewRoomIndex() *RoomIndex {
	return &RoomIndex{
		byRoom: make(map[string]map[string]struct{}),
		byConn: make(map[string]map[string]struct{}),
	}
}

// Join adds connID to the room for orderID, creating the room if absent.
// Returns false if the connection was already a member (joining twice has
// the effect of joining once).
func (ri *RoomIndex) Join(orderID, connID string) bool {
	ri.mu.Lock()
	defer ri.mu.Unlock()

	room, ok := ri.byRoom[orderID]
	if !ok {
		room = make(map[string]struct{})
		ri.byRoom[orderID] = room
	}
	if _, exists := room[connID]; exists {
		return false
	}
	room[connID] = struct{}{}

	joined, ok := ri.byConn[connID]
	if !ok {
		joined = make(map[string]struct{})
		ri.byConn[connID] = joined
	}
	joined[orderID] = struct{}{}
	return true
}

// Leave removes the membership. No-op if not a member. The room is deleted
// once its member set empties.
func (ri *RoomIndex) Leave(orderID, connID string) bool {
	ri.mu.Lock()
	defer ri.mu.Unlock()
	return ri.leaveLocked(orderID, connID)
}

// LeaveAll removes the connection from every room it belongs to and returns
// the ids of the rooms it left. Used on disconnect; atomic with respect to
// concurrent member snapshots, so a broadcast either fully includes or fully
// excludes the connection.
func (ri *RoomIndex) LeaveAll(connID string) []string {
	ri.mu.Lock()
	defer ri.mu.Unlock()

	joined, ok := ri.byConn[connID]
	if !ok {
		return nil
	}

	left := make([]string, 0, len(joined))
	for orderID := range joined {
		if ri.leaveLocked(orderID, connID) {
			left = append(left, orderID)
		}
	}
	return left
}

func (ri *RoomIndex) leaveLocked(orderID, connID string) bool {
	room, ok := ri.byRoom[orderID]
	if !ok {
		return false
	}
	if _, exists := room[connID]; !exists {
		return false
	}
	delete(room, connID)
	if len(room) == 0 {
		delete(ri.byRoom, orderID)
	}

	if joined, ok := ri.byConn[connID]; ok {
		delete(joined, orderID)
		if len(joined) == 0 {
			delete(ri.byConn, connID)
		}
	}
	return true
}

// Members returns a copy of the room's member set, safe to iterate while
// memberships keep mutating concurrently. An unknown room yields nil.
func (ri *RoomIndex) Members(orderID string) []string {
	ri.mu.RLock()
	defer ri.mu.RUnlock()

	room, ok := ri.byRoom[orderID]
	if !ok {
		return nil
	}
	members := make([]string, 0, len(room))
	for connID := range room {
		members = append(members, connID)
	}
	return members
}

// IsMember reports whether connID currently belongs to the room for orderID.
func (ri *RoomIndex) IsMember(orderID, connID string) bool {
	ri.mu.RLock()
	defer ri.mu.RUnlock()

	room, ok := ri.byRoom[orderID]
	if !ok {
		return false
	}
	_, exists := room[connID]
	return exists
}

// RoomsOf returns how many rooms the connection has joined.
func (ri *RoomIndex) RoomsOf(connID string) int {
	ri.mu.RLock()
	defer ri.mu.RUnlock()
	return len(ri.byConn[connID])
}

// RoomCount returns the number of rooms with at least one member.
func (ri *RoomIndex) RoomCount() int {
	ri.mu.RLock()
	defer ri.mu.RUnlock()
	return len(ri.byRoom)
}
