package contacts

import "time"

type ContactPerson struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	FirstName string  `gorm:"not null" json:"first_name"`
	LastName  string  `gorm:"not null;index" json:"last_name"`
	Type      string  `gorm:"not null" json:"type"`
	Email     *string `json:"email"`
	Address   *string `json:"address"`
	Phone     string  `gorm:"not null" json:"phone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
