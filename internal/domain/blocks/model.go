package blocks

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Block is one node of a per-page content tree consumed by the visual page
// builder. Roots have a nil ParentID; siblings render in Sort order.
type Block struct {
	ID       string          `gorm:"type:uuid;primaryKey" json:"id"`
	Page     string          `gorm:"not null;index" json:"page"`
	Type     string          `gorm:"not null" json:"type"`
	Sort     int             `gorm:"not null;default:0;index" json:"sort"`
	Data     json.RawMessage `gorm:"type:jsonb" json:"data"`
	ParentID *string         `gorm:"type:uuid;index" json:"parent_id"`

	Children []Block `gorm:"foreignKey:ParentID;references:ID;constraint:OnDelete:CASCADE;" json:"children"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Block) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// Input is one submitted node of a page replacement. Sort is taken from list
// position, not from the payload.
type Input struct {
	ID       string          `json:"id"`
	Type     string          `json:"type" binding:"required"`
	Data     json.RawMessage `json:"data"`
	Children []Input         `json:"children"`
}

// Patch is a partial update of a single node. Nil fields are left untouched.
// The Set flags distinguish "clear to null" (true, nil value) from "leave
// alone" (false) for the nullable columns.
type Patch struct {
	Page        *string
	Type        *string
	Sort        *int
	Data        json.RawMessage
	DataSet     bool
	ParentID    *string
	ParentIDSet bool
}
