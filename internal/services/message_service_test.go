package services

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"alerta360-backend/internal/domain"
	"alerta360-backend/internal/repository"
	alerta_errors "alerta360-backend/pkg/errors"
	"alerta360-backend/pkg/logger"
)

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []string
}

func (b *recordingBroadcaster) BroadcastToChat(chatID uuid.UUID, event string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func TestValidateText(t *testing.T) {
	req := require.New(t)

	trimmed, err := ValidateText("  hola  ")
	req.NoError(err)
	req.Equal("hola", trimmed)

	_, err = ValidateText("   ")
	req.ErrorIs(err, alerta_errors.ErrEmptyMessage)

	_, err = ValidateText(strings.Repeat("a", domain.MaxMessageLength+1))
	req.ErrorIs(err, alerta_errors.ErrMessageTooLong)

	// Length counts runes, not bytes
	_, err = ValidateText(strings.Repeat("ñ", domain.MaxMessageLength))
	req.NoError(err)
}

type messageFixture struct {
	service     *MessageService
	users       *UserService
	chats       *ChatService
	broadcaster *recordingBroadcaster
}

func newMessageFixture(t *testing.T) *messageFixture {
	t.Helper()
	db := testDB(t)
	broadcaster := &recordingBroadcaster{}
	service := NewMessageService(
		repository.NewMessageRepository(db),
		repository.NewChatRepository(db),
		repository.NewUserRepository(db),
		logger.NewNop(),
	)
	service.SetBroadcaster(broadcaster)
	return &messageFixture{
		service:     service,
		users:       NewUserService(repository.NewUserRepository(db)),
		chats:       NewChatService(repository.NewChatRepository(db)),
		broadcaster: broadcaster,
	}
}

func TestMessageService_SendPipeline(t *testing.T) {
	req := require.New(t)
	f := newMessageFixture(t)
	ctx := context.Background()

	sender := newUser("alice@example.com")
	sender.FirstName, sender.LastName = "Alice", "Quispe"
	req.NoError(f.users.Create(ctx, sender))

	chat, _, err := f.chats.GetOrCreatePrivateChat(ctx, sender.ID, uuid.New())
	req.NoError(err)

	msg, err := f.service.Send(ctx, chat.ID, sender.ID, "  hola  ")
	req.NoError(err)
	req.Equal("hola", msg.Text)
	req.Equal("Alice Quispe", msg.SenderName)

	// The summary was updated and the change pushed to connected clients
	updated, err := f.chats.GetByID(ctx, chat.ID)
	req.NoError(err)
	req.Equal(1, updated.MessageCount)
	req.Equal("hola", updated.LastMessage.Text)
	req.Equal([]string{"chat_updated"}, f.broadcaster.events)
}

func TestMessageService_SendUnknownSender(t *testing.T) {
	req := require.New(t)
	f := newMessageFixture(t)
	ctx := context.Background()

	chat, _, err := f.chats.GetOrCreatePrivateChat(ctx, uuid.New(), uuid.New())
	req.NoError(err)

	_, err = f.service.Send(ctx, chat.ID, uuid.New(), "hola")
	req.ErrorIs(err, alerta_errors.ErrNotFound)
	req.Empty(f.broadcaster.events)
}

func TestMessageService_SenderNameFrozenAtSendTime(t *testing.T) {
	req := require.New(t)
	f := newMessageFixture(t)
	ctx := context.Background()

	sender := newUser("bob@example.com")
	sender.FirstName, sender.LastName = "Bob", "Díaz"
	req.NoError(f.users.Create(ctx, sender))

	chat, _, err := f.chats.GetOrCreatePrivateChat(ctx, sender.ID, uuid.New())
	req.NoError(err)

	_, err = f.service.Send(ctx, chat.ID, sender.ID, "primero")
	req.NoError(err)

	// Rename, then send again
	sender.FirstName = "Roberto"
	sender.Password = ""
	_, err = f.users.Update(ctx, *sender)
	req.NoError(err)

	_, err = f.service.Send(ctx, chat.ID, sender.ID, "segundo")
	req.NoError(err)

	messages, err := f.service.RecentMessages(ctx, chat.ID, 10)
	req.NoError(err)
	req.Len(messages, 2)
	req.Equal("Bob Díaz", messages[0].SenderName)
	req.Equal("Roberto Díaz", messages[1].SenderName)
}

func TestMessageService_HistoryUnknownChat(t *testing.T) {
	req := require.New(t)
	f := newMessageFixture(t)

	_, _, err := f.service.History(context.Background(), uuid.New(), 1, 50)
	req.ErrorIs(err, alerta_errors.ErrNotFound)
}
