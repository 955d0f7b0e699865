package httpdto

import "time"

type CreateUserRequest struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	PhoneNumber string `json:"phone_number"`
	District    string `json:"district"`
	DNI         string `json:"dni"`
}

type UpdateUserRequest struct {
	FirstName        *string  `json:"first_name"`
	LastName         *string  `json:"last_name"`
	Email            *string  `json:"email"`
	Password         *string  `json:"password"`
	PhoneNumber      *string  `json:"phone_number"`
	District         *string  `json:"district"`
	DNI              *string  `json:"dni"`
	FCMToken         *string  `json:"fcmToken"`
	SubscribedTopics []string `json:"subscribedTopics"`
}

type CreatePrivateChatRequest struct {
	OwnerID  string `json:"owner_id" binding:"required"`
	FriendID string `json:"friend_id" binding:"required"`
}

type CreateDistrictChatRequest struct {
	DistrictName string `json:"districtName" binding:"required"`
	Description  string `json:"description"`
}

type UpdateDistrictChatRequest struct {
	ChatName    string `json:"chatName"`
	Description string `json:"description"`
	IsActive    *bool  `json:"isActive"`
}

type CreateMessageRequest struct {
	ChatID   string `json:"chat_id" binding:"required"`
	SenderID string `json:"sender_id" binding:"required"`
	Text     string `json:"text" binding:"required"`
}

type CreateIncidentRequest struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	IncidentType string     `json:"incidentType"`
	Ubication    string     `json:"ubication"`
	Geolocation  string     `json:"geolocation"`
	District     string     `json:"district"`
	UserID       string     `json:"user_id" binding:"required"`
	Date         *time.Time `json:"date"`
	Evidence     []string   `json:"evidence"`
}

type UpdateIncidentRequest struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	IncidentType *string    `json:"incidentType"`
	Ubication    *string    `json:"ubication"`
	Geolocation  *string    `json:"geolocation"`
	District     *string    `json:"district"`
	Date         *time.Time `json:"date"`
	Evidence     []string   `json:"evidence"`
}

type EvidenceUploadRequest struct {
	FileName    string `json:"file_name" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	SizeBytes   int64  `json:"size_bytes"`
}

type EvidenceUploadResponse struct {
	UploadURL string `json:"upload_url"`
	ObjectKey string `json:"object_key"`
}

type TestNotificationRequest struct {
	Topic string            `json:"topic"`
	Title string            `json:"title" binding:"required"`
	Body  string            `json:"body" binding:"required"`
	Data  map[string]string `json:"data"`
}
