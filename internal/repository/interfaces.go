package repository

import (
	"context"

	"github.com/google/uuid"

	"alerta360-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetAll(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, u domain.User) error
}

type ChatRepository interface {
	Create(ctx context.Context, c *domain.Chat) error
	GetByID(ctx context.Context, id uuid.UUID) (domain.Chat, error)
	Update(ctx context.Context, c domain.Chat) error

	GetPrivateChatByMembers(ctx context.Context, a, b uuid.UUID) (domain.Chat, error)
	GetPrivateChatsByUser(ctx context.Context, userID uuid.UUID) ([]domain.Chat, error)

	GetActiveDistrictChat(ctx context.Context, districtName string) (domain.Chat, error)
	GetActiveDistrictChats(ctx context.Context) ([]domain.Chat, error)

	// UpdateSummary overwrites the denormalized last-message summary and
	// increments the message counter by one. The increment is applied by
	// the storage layer, so concurrent sends never lose counts; the
	// summary itself is last-writer-wins.
	UpdateSummary(ctx context.Context, chatID uuid.UUID, summary domain.LastMessage) (domain.Chat, error)
}

type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) error
	// Recent returns the latest limit messages in chronological order
	// (oldest first).
	Recent(ctx context.Context, chatID uuid.UUID, limit int) ([]domain.Message, error)
	// Page returns one page of history (chronological within the page,
	// newest pages first) plus the total message count for the chat.
	Page(ctx context.Context, chatID uuid.UUID, page, limit int) ([]domain.Message, int64, error)
}

type IncidentRepository interface {
	Create(ctx context.Context, i *domain.Incident) error
	GetByID(ctx context.Context, id uuid.UUID) (domain.Incident, error)
	GetAll(ctx context.Context) ([]domain.Incident, error)
	GetByUser(ctx context.Context, userID uuid.UUID) ([]domain.Incident, error)
	Update(ctx context.Context, i domain.Incident) error
	Delete(ctx context.Context, id uuid.UUID) error
}
