package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Incident is a citizen-reported civic incident. Evidence holds object
// keys of files uploaded to the evidence bucket.
type Incident struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	IncidentType string     `json:"incidentType"`
	Ubication    string     `json:"ubication"`
	Geolocation  string     `json:"geolocation"`
	District     string     `json:"district"`
	UserID       uuid.UUID  `gorm:"type:uuid;index" json:"user_id"`
	Date         *time.Time `json:"date"`
	Evidence     []string   `gorm:"serializer:json" json:"evidence"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (i *Incident) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
