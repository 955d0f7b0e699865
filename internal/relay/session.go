package relay

import (
	"github.com/google/uuid"
)

// Conn is the outbound half of a live connection. Send must never block;
// the relay treats broadcast as best effort.
type Conn interface {
	Send(event string, payload interface{})
	Close()
}

// Session is the relay-side state of one live connection. It is created
// unauthenticated; identity is bound once by the authenticate event and
// immutable afterwards. Sessions are never persisted.
type Session struct {
	ID       string
	conn     Conn
	userID   uuid.UUID
	userName string
}

func NewSession(conn Conn) *Session {
	return &Session{
		ID:   uuid.NewString(),
		conn: conn,
	}
}

// Authenticated reports whether an identity has been bound.
func (s *Session) Authenticated() bool {
	return s.userID != uuid.Nil
}

func (s *Session) UserID() uuid.UUID {
	return s.userID
}

// userIDString is the identity stamped on user events. Empty when the
// session never authenticated (a typing event from such a session is
// broadcast with no identity, as the original transport did).
func (s *Session) userIDString() string {
	if s.userID == uuid.Nil {
		return ""
	}
	return s.userID.String()
}

func (s *Session) Send(event string, payload interface{}) {
	s.conn.Send(event, payload)
}
