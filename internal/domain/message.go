package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxMessageLength bounds message text, counted in runes after trimming.
const MaxMessageLength = 1000

// Message is append-only in the relay flow. Reply/edit fields exist in
// the schema for the mobile client but no operation here writes them.
type Message struct {
	ID         uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	ChatID     uuid.UUID   `gorm:"type:uuid;not null;index:idx_messages_chat_created" json:"chat_id"`
	SenderID   uuid.UUID   `gorm:"type:uuid;not null" json:"sender_id"`
	SenderName string      `gorm:"not null" json:"sender_name"`
	Text       string      `gorm:"type:varchar(1000);not null" json:"text"`
	Type       MessageType `gorm:"column:message_type;default:'text'" json:"messageType"`

	ReplyTo  *uuid.UUID `gorm:"type:uuid" json:"replyTo"`
	IsEdited bool       `gorm:"default:false" json:"isEdited"`
	EditedAt *time.Time `json:"editedAt"`

	CreatedAt time.Time `gorm:"index:idx_messages_chat_created" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
