package posts

import (
	"time"

	"clubsite-api/internal/domain/categories"
	"clubsite-api/internal/domain/media"
	"clubsite-api/internal/domain/tags"
	"clubsite-api/internal/domain/users"
)

type Post struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	Title     string  `gorm:"not null" json:"title"`
	Slug      string  `gorm:"not null;uniqueIndex:idx_posts_slug" json:"slug"`
	Content   *string `json:"content"`
	Published bool    `gorm:"not null;default:false;index" json:"published"`
	Hits      int     `gorm:"not null;default:0" json:"hits"`
	OldPost   bool    `gorm:"not null;default:false" json:"old_post"`

	AuthorID uint       `gorm:"not null;index" json:"author_id"`
	Author   users.User `gorm:"foreignKey:AuthorID" json:"author"`

	ThumbnailID *uint        `json:"thumbnail_id"`
	Thumbnail   *media.Media `gorm:"foreignKey:ThumbnailID" json:"thumbnail,omitempty"`

	Categories []categories.Category `gorm:"many2many:post_categories;" json:"categories"`
	Tags       []tags.Tag            `gorm:"many2many:post_tags;" json:"tags"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
