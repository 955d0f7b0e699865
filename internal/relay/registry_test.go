package relay

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterAndLookup(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	userID := uuid.New()
	session := NewSession(&fakeConn{})

	// Given no user is connected
	req.False(registry.IsOnline(userID))

	// When the user registers
	registry.Register(userID, session)

	// Then the session is reachable by user id
	req.True(registry.IsOnline(userID))
	got, ok := registry.Session(userID)
	req.True(ok)
	req.Same(session, got)
}

func TestRegistry_ReRegisterOverwrites(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	userID := uuid.New()
	first := NewSession(&fakeConn{})
	second := NewSession(&fakeConn{})

	registry.Register(userID, first)

	// When the same user authenticates from another connection
	registry.Register(userID, second)

	// Then the last writer wins
	got, ok := registry.Session(userID)
	req.True(ok)
	req.Same(second, got)
}

func TestRegistry_UnregisterReturnsJoinedRooms(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	userID := uuid.New()
	chatA := uuid.New()
	chatB := uuid.New()

	registry.Register(userID, NewSession(&fakeConn{}))
	registry.JoinRoom(userID, chatA)
	registry.JoinRoom(userID, chatB)

	rooms := registry.Unregister(userID)

	req.ElementsMatch([]uuid.UUID{chatA, chatB}, rooms)
	req.False(registry.IsOnline(userID))

	// Repeat unregister finds nothing
	req.Empty(registry.Unregister(userID))
}

func TestRegistry_JoinRoomIdempotent(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	userID := uuid.New()
	chatID := uuid.New()

	registry.Register(userID, NewSession(&fakeConn{}))
	registry.JoinRoom(userID, chatID)
	registry.JoinRoom(userID, chatID)

	rooms := registry.Unregister(userID)
	req.Equal([]uuid.UUID{chatID}, rooms)
}

func TestRegistry_LeaveRoomAbsentIsNoop(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	userID := uuid.New()

	// Leaving a room that was never joined must not panic or error
	registry.LeaveRoom(userID, uuid.New())
	req.False(registry.IsOnline(userID))
}

func TestRegistry_ConnectedUserIDsSnapshot(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	userA := uuid.New()
	userB := uuid.New()

	registry.Register(userA, NewSession(&fakeConn{}))
	registry.Register(userB, NewSession(&fakeConn{}))

	var ids []uuid.UUID
	for id := range registry.ConnectedUserIDs() {
		ids = append(ids, id)
	}
	req.ElementsMatch([]uuid.UUID{userA, userB}, ids)

	// The sequence is restartable
	count := 0
	seq := registry.ConnectedUserIDs()
	for range seq {
		count++
	}
	for range seq {
		count++
	}
	req.Equal(4, count)

	// Mutations after the snapshot do not affect it
	seq = registry.ConnectedUserIDs()
	registry.Unregister(userA)
	var after []uuid.UUID
	for id := range seq {
		after = append(after, id)
	}
	req.Len(after, 2)
}
