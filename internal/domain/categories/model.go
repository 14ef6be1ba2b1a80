package categories

import "time"

type Category struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"not null" json:"name"`
	Slug        string  `gorm:"not null;uniqueIndex:idx_categories_slug" json:"slug"`
	Description *string `json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
