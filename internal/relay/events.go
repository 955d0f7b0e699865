package relay

import (
	"encoding/json"

	"alerta360-backend/internal/domain"
)

// Inbound event names (client -> relay).
const (
	EventAuthenticate = "authenticate"
	EventJoinChat     = "join_chat"
	EventLeaveChat    = "leave_chat"
	EventSendMessage  = "send_message"
	EventTypingStart  = "typing_start"
	EventTypingStop   = "typing_stop"
)

// Outbound event names (relay -> client).
const (
	EventError            = "error"
	EventAuthenticated    = "authenticated"
	EventJoinedChat       = "joined_chat"
	EventRecentMessages   = "recent_messages"
	EventUserJoined       = "user_joined"
	EventUserLeft         = "user_left"
	EventNewMessage       = "new_message"
	EventChatUpdated      = "chat_updated"
	EventUserTyping       = "user_typing"
	EventUserStopTyping   = "user_stop_typing"
	EventUserDisconnected = "user_disconnected"
)

// Client-facing messages. The mobile app renders these verbatim, so they
// stay in Spanish.
const (
	msgUserIDRequired   = "userId is required"
	msgAuthFailed       = "Error de autenticación"
	msgNotAuthenticated = "Usuario no autenticado"
	msgChatNotFound     = "Chat no encontrado"
	msgJoinFailed       = "Error al unirse al chat"
	msgEmptyMessage     = "El mensaje no puede estar vacío"
	msgMessageTooLong   = "El mensaje es demasiado largo"
	msgSendFailed       = "Error al enviar el mensaje"
	msgSenderNotFound   = "Usuario no encontrado"
)

// Envelope is the wire frame for both directions:
// {"event": "...", "data": {...}}.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type AuthenticatePayload struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
}

type ChatPayload struct {
	ChatID string `json:"chatId"`
}

type SendMessagePayload struct {
	ChatID string `json:"chatId"`
	Text   string `json:"text"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

type AuthenticatedPayload struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

type JoinedChatPayload struct {
	Success  bool   `json:"success"`
	ChatID   string `json:"chatId"`
	ChatName string `json:"chatName"`
}

type RecentMessagesPayload struct {
	ChatID   string           `json:"chatId"`
	Messages []domain.Message `json:"messages"`
}

// UserEventPayload is shared by user_joined, user_left, user_typing,
// user_stop_typing and user_disconnected.
type UserEventPayload struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	ChatID   string `json:"chatId"`
}

type NewMessagePayload struct {
	Message domain.Message `json:"message"`
	ChatID  string         `json:"chatId"`
}

type ChatUpdatedPayload struct {
	ChatID       string             `json:"chatId"`
	LastMessage  domain.LastMessage `json:"lastMessage"`
	MessageCount int                `json:"messageCount"`
}
