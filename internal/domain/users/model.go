package users

import "time"

type User struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Username string  `gorm:"not null;uniqueIndex:idx_users_username" json:"username"`
	Email    string  `gorm:"not null;uniqueIndex:idx_users_email" json:"email"`
	Password *string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
