package posts

import (
	"errors"

	"clubsite-api/internal/domain/categories"
	"clubsite-api/internal/domain/media"
	"clubsite-api/internal/domain/slug"
	"clubsite-api/internal/domain/tags"
	"clubsite-api/internal/domain/users"
	"clubsite-api/internal/platform/apierr"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func SlugLookup(db *gorm.DB) slug.Lookup {
	return func(candidate string) (uint, bool, error) {
		var p Post
		err := db.Select("id").First(&p, "slug = ?", candidate).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		if err != nil {
			return 0, false, err
		}
		return p.ID, true, nil
	}
}

type ListParams struct {
	Published    *bool
	CategorySlug string
	TagSlug      string
	Page         int
	Limit        int
}

type PaginationMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type ListResult struct {
	Data []Post         `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

func List(db *gorm.DB, params ListParams) (ListResult, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = 10
	}

	base := func() *gorm.DB {
		q := db.Model(&Post{})
		if params.Published != nil {
			q = q.Where("posts.published = ?", *params.Published)
		}
		if params.CategorySlug != "" {
			q = q.
				Joins("JOIN post_categories ON post_categories.post_id = posts.id").
				Joins("JOIN categories ON categories.id = post_categories.category_id AND categories.slug = ?", params.CategorySlug)
		}
		if params.TagSlug != "" {
			q = q.
				Joins("JOIN post_tags ON post_tags.post_id = posts.id").
				Joins("JOIN tags ON tags.id = post_tags.tag_id AND tags.slug = ?", params.TagSlug)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return ListResult{}, err
	}

	var rows []Post
	err := base().
		Preload("Author").
		Preload("Categories").
		Preload("Tags").
		Preload("Thumbnail").
		Order("posts.created_at DESC").
		Offset((params.Page - 1) * params.Limit).
		Limit(params.Limit).
		Find(&rows).Error
	if err != nil {
		return ListResult{}, err
	}

	totalPages := int((total + int64(params.Limit) - 1) / int64(params.Limit))
	return ListResult{
		Data: rows,
		Meta: PaginationMeta{Total: total, Page: params.Page, Limit: params.Limit, TotalPages: totalPages},
	}, nil
}

func GetBySlug(db *gorm.DB, slugStr string) (Post, error) {
	var p Post
	err := db.
		Preload("Author").
		Preload("Categories").
		Preload("Tags").
		Preload("Thumbnail").
		First(&p, "slug = ?", slugStr).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Post{}, apierr.NotFound("post with slug %q not found", slugStr)
		}
		return Post{}, err
	}
	return p, nil
}

type CreateInput struct {
	Title       string
	Content     *string
	Published   bool
	Hits        int
	OldPost     bool
	AuthorID    uint
	CategoryIDs []uint
	TagIDs      []uint
	ThumbnailID *uint
}

func Create(db *gorm.DB, in CreateInput) (Post, error) {
	var created Post

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := checkAuthor(tx, in.AuthorID); err != nil {
			return err
		}
		cats, err := resolveCategories(tx, in.CategoryIDs)
		if err != nil {
			return err
		}
		tagRows, err := resolveTags(tx, in.TagIDs)
		if err != nil {
			return err
		}
		if err := checkThumbnail(tx, in.ThumbnailID); err != nil {
			return err
		}

		s, err := slug.GenerateUnique(in.Title, 0, SlugLookup(tx))
		if err != nil {
			return err
		}

		p := Post{
			Title:       in.Title,
			Slug:        s,
			Content:     in.Content,
			Published:   in.Published,
			Hits:        in.Hits,
			OldPost:     in.OldPost,
			AuthorID:    in.AuthorID,
			ThumbnailID: in.ThumbnailID,
		}
		if err := tx.Omit(clause.Associations).Create(&p).Error; err != nil {
			return err
		}
		if len(cats) > 0 {
			if err := tx.Model(&p).Association("Categories").Replace(cats); err != nil {
				return err
			}
		}
		if len(tagRows) > 0 {
			if err := tx.Model(&p).Association("Tags").Replace(tagRows); err != nil {
				return err
			}
		}

		created, err = GetBySlug(tx, s)
		return err
	})
	if err != nil {
		return Post{}, err
	}
	return created, nil
}

type UpdateInput struct {
	Title        *string
	Content      *string
	Published    *bool
	Hits         *int
	OldPost      *bool
	CategoryIDs  []uint
	CategorySet  bool
	TagIDs       []uint
	TagSet       bool
	ThumbnailID  *uint
	ThumbnailSet bool
}

func Update(db *gorm.DB, slugStr string, in UpdateInput) (Post, error) {
	var updated Post

	err := db.Transaction(func(tx *gorm.DB) error {
		var existing Post
		if err := tx.First(&existing, "slug = ?", slugStr).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierr.NotFound("post with slug %q not found", slugStr)
			}
			return err
		}

		updates := map[string]interface{}{}

		if in.Title != nil {
			newSlug, err := slug.GenerateUnique(*in.Title, existing.ID, SlugLookup(tx))
			if err != nil {
				return err
			}
			updates["title"] = *in.Title
			updates["slug"] = newSlug
		}
		if in.Content != nil {
			updates["content"] = *in.Content
		}
		if in.Published != nil {
			updates["published"] = *in.Published
		}
		if in.Hits != nil {
			updates["hits"] = *in.Hits
		}
		if in.OldPost != nil {
			updates["old_post"] = *in.OldPost
		}
		if in.ThumbnailSet {
			if err := checkThumbnail(tx, in.ThumbnailID); err != nil {
				return err
			}
			updates["thumbnail_id"] = in.ThumbnailID
		}

		if len(updates) > 0 {
			if err := tx.Model(&Post{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
				return err
			}
		}

		if in.CategorySet {
			cats, err := resolveCategories(tx, in.CategoryIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(&existing).Association("Categories").Replace(cats); err != nil {
				return err
			}
		}
		if in.TagSet {
			tagRows, err := resolveTags(tx, in.TagIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(&existing).Association("Tags").Replace(tagRows); err != nil {
				return err
			}
		}

		var p Post
		if err := tx.
			Preload("Author").
			Preload("Categories").
			Preload("Tags").
			Preload("Thumbnail").
			First(&p, "id = ?", existing.ID).Error; err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return Post{}, err
	}
	return updated, nil
}

func Remove(db *gorm.DB, slugStr string) (Post, error) {
	existing, err := GetBySlug(db, slugStr)
	if err != nil {
		return Post{}, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&existing).Association("Categories").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&existing).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&Post{}, "id = ?", existing.ID).Error
	})
	if err != nil {
		return Post{}, err
	}
	return existing, nil
}

func checkAuthor(tx *gorm.DB, id uint) error {
	var n int64
	if err := tx.Model(&users.User{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return apierr.NotFound("author with id %d not found", id)
	}
	return nil
}

func checkThumbnail(tx *gorm.DB, id *uint) error {
	if id == nil {
		return nil
	}
	var n int64
	if err := tx.Model(&media.Media{}).Where("id = ?", *id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return apierr.NotFound("media with id %d not found", *id)
	}
	return nil
}

func resolveCategories(tx *gorm.DB, ids []uint) ([]categories.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []categories.Category
	if err := tx.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) != len(ids) {
		missing := firstMissing(ids, func(id uint) bool {
			for _, r := range rows {
				if r.ID == id {
					return true
				}
			}
			return false
		})
		return nil, apierr.NotFound("category with id %d not found", missing)
	}
	return rows, nil
}

func resolveTags(tx *gorm.DB, ids []uint) ([]tags.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []tags.Tag
	if err := tx.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) != len(ids) {
		missing := firstMissing(ids, func(id uint) bool {
			for _, r := range rows {
				if r.ID == id {
					return true
				}
			}
			return false
		})
		return nil, apierr.NotFound("tag with id %d not found", missing)
	}
	return rows, nil
}

func firstMissing(ids []uint, found func(uint) bool) uint {
	for _, id := range ids {
		if !found(id) {
			return id
		}
	}
	return 0
}
