package media

import (
	"encoding/json"
	"time"
)

type Media struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Filename     string          `gorm:"not null;uniqueIndex:idx_media_filename" json:"filename"`
	OriginalName string          `gorm:"not null" json:"original_name"`
	Path         string          `gorm:"not null" json:"path"`
	Mimetype     string          `gorm:"not null" json:"mimetype"`
	Size         int64           `gorm:"not null" json:"size"`
	Type         string          `gorm:"not null;default:'file';index" json:"type"`
	Thumbnails   json.RawMessage `gorm:"type:jsonb" json:"thumbnails,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
