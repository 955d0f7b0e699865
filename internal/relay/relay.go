package relay

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"alerta360-backend/internal/domain"
	"alerta360-backend/internal/services"
	alerta_errors "alerta360-backend/pkg/errors"
	"alerta360-backend/pkg/logger"
)

// Gateway is the persistence surface the relay needs. Implemented by
// services.MessageService.
type Gateway interface {
	CreateMessage(ctx context.Context, chatID, senderID uuid.UUID, senderName, text string) (domain.Message, error)
	FindChatByID(ctx context.Context, chatID uuid.UUID) (domain.Chat, error)
	RecentMessages(ctx context.Context, chatID uuid.UUID, limit int) ([]domain.Message, error)
	UpdateChatSummary(ctx context.Context, chatID uuid.UUID, summary domain.LastMessage) (domain.Chat, error)
}

// UserDirectory resolves the display name denormalized onto messages at
// send time. Implemented by services.UserService.
type UserDirectory interface {
	FindUserNameByID(ctx context.Context, userID uuid.UUID) (string, error)
}

// Relay orchestrates the real-time chat pipeline: connection lifecycle,
// room membership, message persistence and fan-out. Per-connection
// events arrive serially from that connection's read loop; events from
// different connections interleave, so room and registry state is
// internally synchronized.
type Relay struct {
	registry    *Registry
	hub         *Hub
	gateway     Gateway
	users       UserDirectory
	log         *logger.Logger
	recentLimit int
}

func New(gateway Gateway, users UserDirectory, recentLimit int, log *logger.Logger) *Relay {
	if recentLimit <= 0 {
		recentLimit = 20
	}
	return &Relay{
		registry:    NewRegistry(),
		hub:         NewHub(),
		gateway:     gateway,
		users:       users,
		log:         log,
		recentLimit: recentLimit,
	}
}

// Dispatch routes one inbound envelope to its handler.
func (r *Relay) Dispatch(ctx context.Context, s *Session, env Envelope) {
	switch env.Event {
	case EventAuthenticate:
		var p AuthenticatePayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			s.Send(EventError, ErrorPayload{Message: msgAuthFailed})
			return
		}
		r.Authenticate(s, p)
	case EventJoinChat:
		var p ChatPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			s.Send(EventError, ErrorPayload{Message: msgJoinFailed})
			return
		}
		r.JoinChat(ctx, s, p.ChatID)
	case EventLeaveChat:
		var p ChatPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return
		}
		r.LeaveChat(s, p.ChatID)
	case EventSendMessage:
		var p SendMessagePayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			s.Send(EventError, ErrorPayload{Message: msgSendFailed})
			return
		}
		r.SendMessage(ctx, s, p.ChatID, p.Text)
	case EventTypingStart:
		var p ChatPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return
		}
		r.Typing(s, p.ChatID, true)
	case EventTypingStop:
		var p ChatPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return
		}
		r.Typing(s, p.ChatID, false)
	default:
		r.log.Warnf("relay: unknown event %q from session %s", env.Event, s.ID)
	}
}

// Authenticate binds the client-supplied identity to the session and
// registers it. A repeat authentication by the same user from another
// connection overwrites the registry mapping (last writer wins).
func (r *Relay) Authenticate(s *Session, p AuthenticatePayload) {
	if p.UserID == "" {
		s.Send(EventError, ErrorPayload{Message: msgUserIDRequired})
		return
	}
	userID, err := uuid.Parse(p.UserID)
	if err != nil {
		s.Send(EventError, ErrorPayload{Message: msgAuthFailed})
		return
	}

	s.userID = userID
	s.userName = p.UserName
	if s.userName == "" {
		s.userName = "Usuario"
	}
	r.registry.Register(userID, s)

	r.log.Infof("relay: user authenticated: %s (%s)", s.userName, userID)
	s.Send(EventAuthenticated, AuthenticatedPayload{
		Success: true,
		Message: "Autenticado correctamente",
		UserID:  userID.String(),
	})
}

// JoinChat subscribes the session to a room, replays recent history to
// the joiner only, and announces the arrival to everyone else.
func (r *Relay) JoinChat(ctx context.Context, s *Session, chatID string) {
	if !s.Authenticated() {
		s.Send(EventError, ErrorPayload{Message: msgNotAuthenticated})
		return
	}
	id, err := uuid.Parse(chatID)
	if err != nil {
		s.Send(EventError, ErrorPayload{Message: msgChatNotFound})
		return
	}

	chat, err := r.gateway.FindChatByID(ctx, id)
	if err != nil {
		if errors.Is(err, alerta_errors.ErrNotFound) {
			s.Send(EventError, ErrorPayload{Message: msgChatNotFound})
		} else {
			r.log.Errorf("relay: join chat %s failed: %v", chatID, err)
			s.Send(EventError, ErrorPayload{Message: msgJoinFailed})
		}
		return
	}

	r.hub.Join(id, s)
	r.registry.JoinRoom(s.userID, id)
	r.log.Infof("relay: user %s joined chat %s (%s)", s.userName, chat.ChatName, id)

	// One-shot history batch for the joiner, not a subscription.
	messages, err := r.gateway.RecentMessages(ctx, id, r.recentLimit)
	if err != nil {
		r.log.Errorf("relay: recent messages for chat %s failed: %v", id, err)
		messages = []domain.Message{}
	}
	s.Send(EventRecentMessages, RecentMessagesPayload{ChatID: chatID, Messages: messages})

	r.hub.BroadcastExcept(id, s.ID, EventUserJoined, UserEventPayload{
		UserID:   s.userIDString(),
		UserName: s.userName,
		ChatID:   chatID,
	})

	s.Send(EventJoinedChat, JoinedChatPayload{Success: true, ChatID: chatID, ChatName: chat.ChatName})
}

// LeaveChat unsubscribes the session. Silent on every failure path, and
// the departure is announced only when the session was actually a
// member, so repeated leaves broadcast nothing.
func (r *Relay) LeaveChat(s *Session, chatID string) {
	if !s.Authenticated() {
		return
	}
	id, err := uuid.Parse(chatID)
	if err != nil {
		return
	}

	wasMember := r.hub.Leave(id, s)
	r.registry.LeaveRoom(s.userID, id)
	if !wasMember {
		return
	}

	r.log.Infof("relay: user %s left chat %s", s.userName, chatID)
	r.hub.Broadcast(id, EventUserLeft, UserEventPayload{
		UserID:   s.userIDString(),
		UserName: s.userName,
		ChatID:   chatID,
	})
}

// SendMessage runs the persist-then-broadcast pipeline. A persistence
// failure aborts the whole send: the error goes to the sender only and
// nothing is broadcast. A summary-update failure after the message is
// persisted leaves the summary stale (logged, no rollback) and skips
// only the chat_updated broadcast.
func (r *Relay) SendMessage(ctx context.Context, s *Session, chatID, text string) {
	if !s.Authenticated() {
		s.Send(EventError, ErrorPayload{Message: msgNotAuthenticated})
		return
	}
	id, err := uuid.Parse(chatID)
	if err != nil {
		s.Send(EventError, ErrorPayload{Message: msgSendFailed})
		return
	}

	trimmed, err := services.ValidateText(text)
	if err != nil {
		switch {
		case errors.Is(err, alerta_errors.ErrEmptyMessage):
			s.Send(EventError, ErrorPayload{Message: msgEmptyMessage})
		case errors.Is(err, alerta_errors.ErrMessageTooLong):
			s.Send(EventError, ErrorPayload{Message: msgMessageTooLong})
		default:
			s.Send(EventError, ErrorPayload{Message: msgSendFailed})
		}
		return
	}

	senderName, err := r.users.FindUserNameByID(ctx, s.userID)
	if err != nil {
		if errors.Is(err, alerta_errors.ErrNotFound) {
			s.Send(EventError, ErrorPayload{Message: msgSenderNotFound})
		} else {
			r.log.Errorf("relay: sender lookup for %s failed: %v", s.userID, err)
			s.Send(EventError, ErrorPayload{Message: msgSendFailed})
		}
		return
	}

	msg, err := r.gateway.CreateMessage(ctx, id, s.userID, senderName, trimmed)
	if err != nil {
		r.log.Errorf("relay: persisting message in chat %s failed: %v", id, err)
		s.Send(EventError, ErrorPayload{Message: msgSendFailed})
		return
	}

	chat, summaryErr := r.gateway.UpdateChatSummary(ctx, id, domain.LastMessage{
		Text:       msg.Text,
		SenderID:   &msg.SenderID,
		SenderName: msg.SenderName,
	})
	if summaryErr != nil {
		r.log.Errorf("relay: summary update for chat %s failed: %v", id, summaryErr)
	}

	r.hub.Broadcast(id, EventNewMessage, NewMessagePayload{Message: msg, ChatID: chatID})

	if summaryErr == nil {
		r.hub.Broadcast(id, EventChatUpdated, ChatUpdatedPayload{
			ChatID:       chatID,
			LastMessage:  chat.LastMessage,
			MessageCount: chat.MessageCount,
		})
	}
}

// Typing relays typing indicators to other room members. Stateless, no
// persistence, and no authentication gate: an unauthenticated typing
// event goes out with no identity, as the original transport allowed.
func (r *Relay) Typing(s *Session, chatID string, start bool) {
	id, err := uuid.Parse(chatID)
	if err != nil {
		return
	}
	event := EventUserStopTyping
	if start {
		event = EventUserTyping
	}
	r.hub.BroadcastExcept(id, s.ID, event, UserEventPayload{
		UserID:   s.userIDString(),
		UserName: s.userName,
		ChatID:   chatID,
	})
}

// Disconnect tears the session down: it leaves every room and, when
// authenticated, is dropped from the registry. Remaining members of
// each room get exactly one user_disconnected.
func (r *Relay) Disconnect(s *Session) {
	rooms := r.hub.RemoveSession(s)
	if s.Authenticated() {
		r.registry.Unregister(s.userID)
	}

	for _, chatID := range rooms {
		r.hub.Broadcast(chatID, EventUserDisconnected, UserEventPayload{
			UserID:   s.userIDString(),
			UserName: s.userName,
			ChatID:   chatID.String(),
		})
	}
}

// BroadcastToChat pushes a server-initiated event to a room. Used by the
// REST path so HTTP-originated mutations reach real-time clients.
func (r *Relay) BroadcastToChat(chatID uuid.UUID, event string, payload interface{}) {
	r.hub.Broadcast(chatID, event, payload)
}

// SendToUser delivers an event to a specific user's current connection,
// if any.
func (r *Relay) SendToUser(userID uuid.UUID, event string, payload interface{}) {
	if s, ok := r.registry.Session(userID); ok {
		s.Send(event, payload)
	}
}

func (r *Relay) IsUserConnected(userID uuid.UUID) bool {
	return r.registry.IsOnline(userID)
}

// ConnectedUserIDs snapshots the ids of currently connected users.
func (r *Relay) ConnectedUserIDs() []uuid.UUID {
	var ids []uuid.UUID
	for id := range r.registry.ConnectedUserIDs() {
		ids = append(ids, id)
	}
	return ids
}
