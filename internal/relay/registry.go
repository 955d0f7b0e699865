package relay

import (
	"iter"
	"sync"

	"github.com/google/uuid"
)

// Registry tracks which users are currently reachable and which rooms
// they have joined. It is process-local state owned by the relay, lost
// on restart, and mutated only by relay event handlers.
type Registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	rooms    map[uuid.UUID]map[uuid.UUID]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[uuid.UUID]*Session),
		rooms:    make(map[uuid.UUID]map[uuid.UUID]struct{}),
	}
}

// Register binds a user to a live session. Last writer wins: a second
// authentication from the same user overwrites the first mapping and
// orphans the prior session (it keeps its room subscriptions but is no
// longer reachable by user id).
func (r *Registry) Register(userID uuid.UUID, s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[userID] = s
}

// Unregister drops the user's session mapping and room memberships,
// returning the rooms the user was in so the caller can notify them.
func (r *Registry) Unregister(userID uuid.UUID) []uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, userID)

	joined := r.rooms[userID]
	delete(r.rooms, userID)

	rooms := make([]uuid.UUID, 0, len(joined))
	for chatID := range joined {
		rooms = append(rooms, chatID)
	}
	return rooms
}

// JoinRoom records membership. Idempotent.
func (r *Registry) JoinRoom(userID, chatID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rooms[userID] == nil {
		r.rooms[userID] = make(map[uuid.UUID]struct{})
	}
	r.rooms[userID][chatID] = struct{}{}
}

// LeaveRoom removes membership. Idempotent, no error if absent.
func (r *Registry) LeaveRoom(userID, chatID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if joined, ok := r.rooms[userID]; ok {
		delete(joined, chatID)
		if len(joined) == 0 {
			delete(r.rooms, userID)
		}
	}
}

func (r *Registry) IsOnline(userID uuid.UUID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.sessions[userID]
	return ok
}

// Session returns the live session mapped to a user, if any.
func (r *Registry) Session(userID uuid.UUID) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[userID]
	return s, ok
}

// ConnectedUserIDs yields a snapshot of the currently mapped user ids.
// The sequence is finite and restartable; iterating does not hold the
// registry lock.
func (r *Registry) ConnectedUserIDs() iter.Seq[uuid.UUID] {
	r.mu.RLock()
	snapshot := make([]uuid.UUID, 0, len(r.sessions))
	for userID := range r.sessions {
		snapshot = append(snapshot, userID)
	}
	r.mu.RUnlock()

	return func(yield func(uuid.UUID) bool) {
		for _, userID := range snapshot {
			if !yield(userID) {
				return
			}
		}
	}
}
