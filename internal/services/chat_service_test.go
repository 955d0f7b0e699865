package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"alerta360-backend/internal/domain"
	"alerta360-backend/internal/repository"
	alerta_errors "alerta360-backend/pkg/errors"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Chat{},
		&domain.ChatMember{},
		&domain.Message{},
		&domain.Incident{},
	))

	require.NoError(t, db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_chats_active_district
		    ON chats (district_name)
		    WHERE chat_type = 'district_group' AND is_active
	`).Error)

	return db
}

func TestGetOrCreatePrivateChat_CreatesThenReuses(t *testing.T) {
	req := require.New(t)
	service := NewChatService(repository.NewChatRepository(testDB(t)))
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	chat, created, err := service.GetOrCreatePrivateChat(ctx, alice, bob)
	req.NoError(err)
	req.True(created)
	req.Equal(domain.ChatTypePrivate, chat.ChatType)
	req.ElementsMatch([]string{alice.String(), bob.String()}, chat.Members)

	// Same pair, reversed order, returns the existing chat
	again, created, err := service.GetOrCreatePrivateChat(ctx, bob, alice)
	req.NoError(err)
	req.False(created)
	req.Equal(chat.ID, again.ID)
}

func TestGetOrCreatePrivateChat_DistinctPairs(t *testing.T) {
	req := require.New(t)
	service := NewChatService(repository.NewChatRepository(testDB(t)))
	ctx := context.Background()
	alice, bob, carol := uuid.New(), uuid.New(), uuid.New()

	first, _, err := service.GetOrCreatePrivateChat(ctx, alice, bob)
	req.NoError(err)
	second, _, err := service.GetOrCreatePrivateChat(ctx, alice, carol)
	req.NoError(err)

	req.NotEqual(first.ID, second.ID)

	chats, err := service.GetPrivateChatsByUser(ctx, alice)
	req.NoError(err)
	req.Len(chats, 2)
}

func TestCreateDistrictChat_Defaults(t *testing.T) {
	req := require.New(t)
	service := NewChatService(repository.NewChatRepository(testDB(t)))
	ctx := context.Background()

	chat, err := service.CreateDistrictChat(ctx, "Miraflores", "")
	req.NoError(err)
	req.Equal("Chat Miraflores", chat.ChatName)
	req.NotNil(chat.Description)
	req.Equal("Chat grupal del distrito Miraflores", *chat.Description)
	req.True(chat.IsActive)
}

func TestCreateDistrictChat_RejectsDuplicateAndEmpty(t *testing.T) {
	req := require.New(t)
	service := NewChatService(repository.NewChatRepository(testDB(t)))
	ctx := context.Background()

	_, err := service.CreateDistrictChat(ctx, "", "")
	req.ErrorIs(err, alerta_errors.ErrInvalidInput)

	_, err = service.CreateDistrictChat(ctx, "Surco", "")
	req.NoError(err)

	_, err = service.CreateDistrictChat(ctx, "Surco", "otro")
	req.ErrorIs(err, alerta_errors.ErrAlreadyExists)
}

func TestUpdateDistrictChat_PartialUpdate(t *testing.T) {
	req := require.New(t)
	service := NewChatService(repository.NewChatRepository(testDB(t)))
	ctx := context.Background()

	chat, err := service.CreateDistrictChat(ctx, "Barranco", "")
	req.NoError(err)

	inactive := false
	updated, err := service.UpdateDistrictChat(ctx, chat.ID, "Chat Barranco Centro", "", &inactive)
	req.NoError(err)
	req.Equal("Chat Barranco Centro", updated.ChatName)
	req.False(updated.IsActive)
	// Untouched fields survive
	req.Equal(*chat.Description, *updated.Description)

	// Deactivated chats drop out of the active listing
	_, err = service.GetDistrictChat(ctx, "Barranco")
	req.ErrorIs(err, alerta_errors.ErrNotFound)

	// And the district can get a fresh active chat
	_, err = service.CreateDistrictChat(ctx, "Barranco", "")
	req.NoError(err)
}
