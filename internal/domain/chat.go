package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LastMessage is the denormalized summary of the most recent message on a
// chat, used for list-view rendering without a join.
type LastMessage struct {
	Text       string     `json:"text,omitempty"`
	SenderID   *uuid.UUID `gorm:"type:uuid" json:"sender_id,omitempty"`
	SenderName string     `json:"sender_name,omitempty"`
	Timestamp  *time.Time `json:"timestamp,omitempty"`
}

// Chat is either a private chat between two members or a district-scoped
// group chat. Members/MemberKey apply only to private chats,
// DistrictName only to district groups.
type Chat struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ChatType ChatType  `gorm:"not null;default:'private'" json:"chatType"`

	Members []string `gorm:"serializer:json" json:"members"`
	// MemberKey is the normalized unordered pair key ("min:max") that
	// backs the one-private-chat-per-pair invariant with a real unique
	// index instead of a check-then-create.
	MemberKey *string `gorm:"uniqueIndex" json:"-"`

	DistrictName *string `json:"districtName"`
	ChatName     string  `gorm:"not null" json:"chatName"`
	Description  *string `json:"description"`
	IsActive     bool    `gorm:"default:true" json:"isActive"`

	LastMessage  LastMessage `gorm:"embedded;embeddedPrefix:last_message_" json:"lastMessage"`
	MessageCount int         `gorm:"default:0" json:"messageCount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Chat) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// ChatMember indexes private chat membership for per-user listing.
type ChatMember struct {
	ChatID uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}

// PairKey builds the unordered member-pair key for a private chat.
func PairKey(a, b uuid.UUID) string {
	if b.String() < a.String() {
		a, b = b, a
	}
	return fmt.Sprintf("%s:%s", a, b)
}
