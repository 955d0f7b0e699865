package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"alerta360-backend/internal/domain"
	"alerta360-backend/internal/repository"
	alerta_errors "alerta360-backend/pkg/errors"
)

type ChatService struct {
	chatRepo repository.ChatRepository
}

func NewChatService(chatRepo repository.ChatRepository) *ChatService {
	return &ChatService{chatRepo: chatRepo}
}

// GetOrCreatePrivateChat returns the private chat for the unordered pair,
// creating it on first use. A concurrent create loses against the
// member-pair unique index and falls back to the winner's row.
func (s *ChatService) GetOrCreatePrivateChat(ctx context.Context, ownerID, friendID uuid.UUID) (domain.Chat, bool, error) {
	chat, err := s.chatRepo.GetPrivateChatByMembers(ctx, ownerID, friendID)
	if err == nil {
		return chat, false, nil
	}
	if !errors.Is(err, alerta_errors.ErrNotFound) {
		return domain.Chat{}, false, err
	}

	key := domain.PairKey(ownerID, friendID)
	newChat := domain.Chat{
		ChatType:  domain.ChatTypePrivate,
		Members:   []string{ownerID.String(), friendID.String()},
		MemberKey: &key,
		ChatName:  "Chat Privado",
	}
	if err := s.chatRepo.Create(ctx, &newChat); err != nil {
		if errors.Is(err, alerta_errors.ErrAlreadyExists) {
			chat, err = s.chatRepo.GetPrivateChatByMembers(ctx, ownerID, friendID)
			return chat, false, err
		}
		return domain.Chat{}, false, err
	}
	return newChat, true, nil
}

func (s *ChatService) GetPrivateChatsByUser(ctx context.Context, userID uuid.UUID) ([]domain.Chat, error) {
	return s.chatRepo.GetPrivateChatsByUser(ctx, userID)
}

func (s *ChatService) GetPrivateChatForPair(ctx context.Context, ownerID, friendID uuid.UUID) (domain.Chat, error) {
	return s.chatRepo.GetPrivateChatByMembers(ctx, ownerID, friendID)
}

// CreateDistrictChat creates the single active group chat for a district.
// The partial unique index on active district chats makes the invariant
// hold even when two creations race.
func (s *ChatService) CreateDistrictChat(ctx context.Context, districtName, description string) (domain.Chat, error) {
	if districtName == "" {
		return domain.Chat{}, alerta_errors.ErrInvalidInput
	}

	if _, err := s.chatRepo.GetActiveDistrictChat(ctx, districtName); err == nil {
		return domain.Chat{}, alerta_errors.ErrAlreadyExists
	} else if !errors.Is(err, alerta_errors.ErrNotFound) {
		return domain.Chat{}, err
	}

	if description == "" {
		description = fmt.Sprintf("Chat grupal del distrito %s", districtName)
	}
	chat := domain.Chat{
		ChatType:     domain.ChatTypeDistrictGroup,
		DistrictName: &districtName,
		ChatName:     fmt.Sprintf("Chat %s", districtName),
		Description:  &description,
		Members:      []string{},
		IsActive:     true,
	}
	if err := s.chatRepo.Create(ctx, &chat); err != nil {
		return domain.Chat{}, err
	}
	return chat, nil
}

func (s *ChatService) GetDistrictChats(ctx context.Context) ([]domain.Chat, error) {
	return s.chatRepo.GetActiveDistrictChats(ctx)
}

func (s *ChatService) GetDistrictChat(ctx context.Context, districtName string) (domain.Chat, error) {
	return s.chatRepo.GetActiveDistrictChat(ctx, districtName)
}

func (s *ChatService) UpdateDistrictChat(ctx context.Context, id uuid.UUID, chatName, description string, isActive *bool) (domain.Chat, error) {
	chat, err := s.chatRepo.GetByID(ctx, id)
	if err != nil {
		return domain.Chat{}, err
	}
	if chatName != "" {
		chat.ChatName = chatName
	}
	if description != "" {
		chat.Description = &description
	}
	if isActive != nil {
		chat.IsActive = *isActive
	}
	if err := s.chatRepo.Update(ctx, chat); err != nil {
		return domain.Chat{}, err
	}
	return chat, nil
}

func (s *ChatService) GetByID(ctx context.Context, id uuid.UUID) (domain.Chat, error) {
	return s.chatRepo.GetByID(ctx, id)
}
