package tags

import (
	"errors"

	"clubsite-api/internal/domain/slug"
	"clubsite-api/internal/platform/apierr"

	"gorm.io/gorm"
)

func SlugLookup(db *gorm.DB) slug.Lookup {
	return func(candidate string) (uint, bool, error) {
		var t Tag
		err := db.Select("id").First(&t, "slug = ?", candidate).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		if err != nil {
			return 0, false, err
		}
		return t.ID, true, nil
	}
}

// TagWithCount is a tag plus the number of posts carrying it.
type TagWithCount struct {
	Tag
	PostCount int64 `json:"post_count"`
}

func List(db *gorm.DB) ([]TagWithCount, error) {
	var out []TagWithCount
	err := db.Model(&Tag{}).
		Select("tags.*, COUNT(post_tags.post_id) AS post_count").
		Joins("LEFT JOIN post_tags ON post_tags.tag_id = tags.id").
		Group("tags.id").
		Order("tags.name ASC").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func GetBySlug(db *gorm.DB, slugStr string) (Tag, error) {
	var t Tag
	if err := db.First(&t, "slug = ?", slugStr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Tag{}, apierr.NotFound("tag with slug %q not found", slugStr)
		}
		return Tag{}, err
	}
	return t, nil
}

func Create(db *gorm.DB, name string) (Tag, error) {
	if err := checkNameConflict(db, name, 0); err != nil {
		return Tag{}, err
	}

	s, err := slug.GenerateUnique(name, 0, SlugLookup(db))
	if err != nil {
		return Tag{}, err
	}

	t := Tag{Name: name, Slug: s}
	if err := db.Create(&t).Error; err != nil {
		return Tag{}, err
	}
	return t, nil
}

func Update(db *gorm.DB, slugStr string, name string) (Tag, error) {
	existing, err := GetBySlug(db, slugStr)
	if err != nil {
		return Tag{}, err
	}

	if err := checkNameConflict(db, name, existing.ID); err != nil {
		return Tag{}, err
	}
	newSlug, err := slug.GenerateUnique(name, existing.ID, SlugLookup(db))
	if err != nil {
		return Tag{}, err
	}

	if err := db.Model(&Tag{}).Where("id = ?", existing.ID).
		Updates(map[string]interface{}{"name": name, "slug": newSlug}).Error; err != nil {
		return Tag{}, err
	}

	var t Tag
	if err := db.First(&t, "id = ?", existing.ID).Error; err != nil {
		return Tag{}, err
	}
	return t, nil
}

func Remove(db *gorm.DB, slugStr string) (Tag, error) {
	existing, err := GetBySlug(db, slugStr)
	if err != nil {
		return Tag{}, err
	}

	// Tags detach from posts on delete; only the join rows go with them.
	if err := db.Exec("DELETE FROM post_tags WHERE tag_id = ?", existing.ID).Error; err != nil {
		return Tag{}, err
	}
	if err := db.Delete(&Tag{}, "id = ?", existing.ID).Error; err != nil {
		return Tag{}, err
	}
	return existing, nil
}

func checkNameConflict(db *gorm.DB, name string, excludeID uint) error {
	q := db.Model(&Tag{}).Where("LOWER(name) = LOWER(?)", name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return apierr.Conflict("tag with name %q already exists", name)
	}
	return nil
}
