package relay

import (
	"sync"

	"github.com/google/uuid"
)

// Hub holds the broadcast groups: for each chat, the set of sessions
// currently joined. Rooms are purely in-memory, reconstructed from join
// events; membership here is a fan-out cache, not a source of truth.
type Hub struct {
	mu    sync.RWMutex
	rooms map[uuid.UUID]map[string]*Session
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[uuid.UUID]map[string]*Session)}
}

// Join subscribes a session to a room. Idempotent.
func (h *Hub) Join(chatID uuid.UUID, s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[chatID] == nil {
		h.rooms[chatID] = make(map[string]*Session)
	}
	h.rooms[chatID][s.ID] = s
}

// Leave unsubscribes a session from a room and reports whether it was a
// member, so callers can skip the departure broadcast on repeat leaves.
func (h *Hub) Leave(chatID uuid.UUID, s *Session) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[chatID]
	if !ok {
		return false
	}
	if _, member := room[s.ID]; !member {
		return false
	}
	delete(room, s.ID)
	if len(room) == 0 {
		delete(h.rooms, chatID)
	}
	return true
}

// RemoveSession drops the session from every room and returns the rooms
// it was subscribed to.
func (h *Hub) RemoveSession(s *Session) []uuid.UUID {
	h.mu.Lock()
	defer h.mu.Unlock()

	var rooms []uuid.UUID
	for chatID, room := range h.rooms {
		if _, member := room[s.ID]; member {
			delete(room, s.ID)
			if len(room) == 0 {
				delete(h.rooms, chatID)
			}
			rooms = append(rooms, chatID)
		}
	}
	return rooms
}

// Broadcast sends an event to every session in the room, including the
// sender's. Delivery is best effort and non-suspending.
func (h *Hub) Broadcast(chatID uuid.UUID, event string, payload interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, s := range h.rooms[chatID] {
		s.Send(event, payload)
	}
}

// BroadcastExcept sends an event to every room member except the given
// session.
func (h *Hub) BroadcastExcept(chatID uuid.UUID, exceptSessionID string, event string, payload interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, s := range h.rooms[chatID] {
		if id == exceptSessionID {
			continue
		}
		s.Send(event, payload)
	}
}

// MemberCount returns how many sessions are joined to a room.
func (h *Hub) MemberCount(chatID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[chatID])
}
