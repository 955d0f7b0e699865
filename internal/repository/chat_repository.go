package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alerta360-backend/internal/domain"
	alerta_errors "alerta360-backend/pkg/errors"
)

type PostgresChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &PostgresChatRepository{db: db}
}

func (r *PostgresChatRepository) Create(ctx context.Context, c *domain.Chat) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		for _, member := range c.Members {
			userID, err := uuid.Parse(member)
			if err != nil {
				continue
			}
			if err := tx.Create(&domain.ChatMember{ChatID: c.ID, UserID: userID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return alerta_errors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *PostgresChatRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Chat, error) {
	var c domain.Chat
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Chat{}, alerta_errors.ErrNotFound
		}
		return domain.Chat{}, err
	}
	return c, nil
}

func (r *PostgresChatRepository) Update(ctx context.Context, c domain.Chat) error {
	res := r.db.WithContext(ctx).Save(&c)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return alerta_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresChatRepository) GetPrivateChatByMembers(ctx context.Context, a, b uuid.UUID) (domain.Chat, error) {
	var c domain.Chat
	err := r.db.WithContext(ctx).
		Where("chat_type = ? AND member_key = ?", domain.ChatTypePrivate, domain.PairKey(a, b)).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Chat{}, alerta_errors.ErrNotFound
		}
		return domain.Chat{}, err
	}
	return c, nil
}

func (r *PostgresChatRepository) GetPrivateChatsByUser(ctx context.Context, userID uuid.UUID) ([]domain.Chat, error) {
	var chats []domain.Chat
	err := r.db.WithContext(ctx).
		Joins("JOIN chat_members ON chat_members.chat_id = chats.id").
		Where("chat_members.user_id = ? AND chats.chat_type = ?", userID, domain.ChatTypePrivate).
		Find(&chats).Error
	if err != nil {
		return nil, err
	}
	return chats, nil
}

func (r *PostgresChatRepository) GetActiveDistrictChat(ctx context.Context, districtName string) (domain.Chat, error) {
	var c domain.Chat
	err := r.db.WithContext(ctx).
		Where("chat_type = ? AND district_name = ? AND is_active = ?", domain.ChatTypeDistrictGroup, districtName, true).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Chat{}, alerta_errors.ErrNotFound
		}
		return domain.Chat{}, err
	}
	return c, nil
}

func (r *PostgresChatRepository) GetActiveDistrictChats(ctx context.Context) ([]domain.Chat, error) {
	var chats []domain.Chat
	err := r.db.WithContext(ctx).
		Where("chat_type = ? AND is_active = ?", domain.ChatTypeDistrictGroup, true).
		Order("district_name ASC").
		Find(&chats).Error
	if err != nil {
		return nil, err
	}
	return chats, nil
}

func (r *PostgresChatRepository) UpdateSummary(ctx context.Context, chatID uuid.UUID, summary domain.LastMessage) (domain.Chat, error) {
	if summary.Timestamp == nil {
		now := time.Now()
		summary.Timestamp = &now
	}

	res := r.db.WithContext(ctx).
		Model(&domain.Chat{}).
		Where("id = ?", chatID).
		Updates(map[string]interface{}{
			"last_message_text":        summary.Text,
			"last_message_sender_id":   summary.SenderID,
			"last_message_sender_name": summary.SenderName,
			"last_message_timestamp":   summary.Timestamp,
			"message_count":            gorm.Expr("message_count + ?", 1),
		})
	if res.Error != nil {
		return domain.Chat{}, res.Error
	}
	if res.RowsAffected == 0 {
		return domain.Chat{}, alerta_errors.ErrNotFound
	}

	return r.GetByID(ctx, chatID)
}
