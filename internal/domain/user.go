package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User mirrors the mobile app's user document. Push-notification fields
// (FCM token, topic subscriptions, preferences) live on the user record
// so the dispatcher can target topics without a separate table.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName   string    `gorm:"not null" json:"first_name"`
	LastName    string    `gorm:"not null" json:"last_name"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"not null" json:"-"`
	PhoneNumber string    `json:"phone_number"`
	District    string    `json:"district"`
	DNI         string    `gorm:"column:dni" json:"dni"`

	FCMToken         *string  `gorm:"column:fcm_token" json:"fcmToken,omitempty"`
	SubscribedTopics []string `gorm:"serializer:json" json:"subscribedTopics"`

	NotifyIncidents   bool `gorm:"default:true" json:"notifyIncidents"`
	NotifyEmergencies bool `gorm:"default:true" json:"notifyEmergencies"`
	NotifyLocation    bool `gorm:"default:true" json:"notifyLocation"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// FullName is the display name denormalized onto messages at send time.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
