package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"alerta360-backend/internal/domain"
	"alerta360-backend/internal/repository"
	alerta_errors "alerta360-backend/pkg/errors"
	"alerta360-backend/pkg/logger"
)

// Broadcaster pushes server-initiated events to a chat room so REST and
// real-time clients stay consistent. Implemented by the relay.
type Broadcaster interface {
	BroadcastToChat(chatID uuid.UUID, event string, payload interface{})
}

type MessageService struct {
	messageRepo repository.MessageRepository
	chatRepo    repository.ChatRepository
	userRepo    repository.UserRepository
	broadcaster Broadcaster
	log         *logger.Logger
}

func NewMessageService(
	messageRepo repository.MessageRepository,
	chatRepo repository.ChatRepository,
	userRepo repository.UserRepository,
	log *logger.Logger,
) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		chatRepo:    chatRepo,
		userRepo:    userRepo,
		log:         log,
	}
}

// SetBroadcaster attaches the relay. Wired after construction because the
// relay and the service reference each other.
func (s *MessageService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// ValidateText trims the text and enforces the length bounds. Returns
// the trimmed text.
func ValidateText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", alerta_errors.ErrEmptyMessage
	}
	if utf8.RuneCountInString(trimmed) > domain.MaxMessageLength {
		return "", alerta_errors.ErrMessageTooLong
	}
	return trimmed, nil
}

// CreateMessage persists a single message attributed to senderID with the
// name resolved at send time.
func (s *MessageService) CreateMessage(ctx context.Context, chatID, senderID uuid.UUID, senderName, text string) (domain.Message, error) {
	m := domain.Message{
		ChatID:     chatID,
		SenderID:   senderID,
		SenderName: senderName,
		Text:       text,
		Type:       domain.MessageTypeText,
	}
	if err := s.messageRepo.Create(ctx, &m); err != nil {
		return domain.Message{}, err
	}
	return m, nil
}

func (s *MessageService) FindChatByID(ctx context.Context, chatID uuid.UUID) (domain.Chat, error) {
	return s.chatRepo.GetByID(ctx, chatID)
}

func (s *MessageService) RecentMessages(ctx context.Context, chatID uuid.UUID, limit int) ([]domain.Message, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.messageRepo.Recent(ctx, chatID, limit)
}

func (s *MessageService) UpdateChatSummary(ctx context.Context, chatID uuid.UUID, summary domain.LastMessage) (domain.Chat, error) {
	return s.chatRepo.UpdateSummary(ctx, chatID, summary)
}

// Send is the REST message pipeline: resolve sender name, validate,
// persist, update the chat summary, then push chat_updated to connected
// clients. Mirrors the relay pipeline minus the new_message broadcast,
// which the REST path never did.
func (s *MessageService) Send(ctx context.Context, chatID, senderID uuid.UUID, text string) (domain.Message, error) {
	trimmed, err := ValidateText(text)
	if err != nil {
		return domain.Message{}, err
	}

	user, err := s.userRepo.GetByID(ctx, senderID)
	if err != nil {
		return domain.Message{}, err
	}

	msg, err := s.CreateMessage(ctx, chatID, senderID, user.FullName(), trimmed)
	if err != nil {
		return domain.Message{}, err
	}

	chat, err := s.UpdateChatSummary(ctx, chatID, domain.LastMessage{
		Text:       msg.Text,
		SenderID:   &msg.SenderID,
		SenderName: msg.SenderName,
	})
	if err != nil {
		// The message is persisted; a stale summary is acceptable and
		// there is no compensating rollback.
		s.log.Errorf("failed to update chat summary for %s: %v", chatID, err)
		return msg, nil
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToChat(chatID, "chat_updated", map[string]interface{}{
			"chatId":       chat.ID,
			"lastMessage":  chat.LastMessage,
			"messageCount": chat.MessageCount,
		})
	}
	return msg, nil
}

// History returns one page of chat history plus the pagination envelope
// fields.
func (s *MessageService) History(ctx context.Context, chatID uuid.UUID, page, limit int) ([]domain.Message, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 50
	}
	if _, err := s.chatRepo.GetByID(ctx, chatID); err != nil {
		return nil, 0, err
	}
	return s.messageRepo.Page(ctx, chatID, page, limit)
}
