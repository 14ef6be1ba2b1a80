package categories

import (
	"errors"

	"clubsite-api/internal/domain/slug"
	"clubsite-api/internal/platform/apierr"

	"gorm.io/gorm"
)

// SlugLookup resolves candidate slugs within the category namespace.
func SlugLookup(db *gorm.DB) slug.Lookup {
	return func(candidate string) (uint, bool, error) {
		var c Category
		err := db.Select("id").First(&c, "slug = ?", candidate).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		if err != nil {
			return 0, false, err
		}
		return c.ID, true, nil
	}
}

func List(db *gorm.DB) ([]Category, error) {
	var out []Category
	if err := db.Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func GetBySlug(db *gorm.DB, slugStr string) (Category, error) {
	var c Category
	if err := db.First(&c, "slug = ?", slugStr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Category{}, apierr.NotFound("category with slug %q not found", slugStr)
		}
		return Category{}, err
	}
	return c, nil
}

type CreateInput struct {
	Name        string
	Description *string
}

func Create(db *gorm.DB, in CreateInput) (Category, error) {
	if err := checkNameConflict(db, in.Name, 0); err != nil {
		return Category{}, err
	}

	s, err := slug.GenerateUnique(in.Name, 0, SlugLookup(db))
	if err != nil {
		return Category{}, err
	}

	c := Category{Name: in.Name, Slug: s, Description: in.Description}
	if err := db.Create(&c).Error; err != nil {
		return Category{}, err
	}
	return c, nil
}

type UpdateInput struct {
	Name        *string
	Description *string
}

// Update patches the category identified by slug. A name change recomputes
// the slug through the shared allocator, excluding the category's own row.
func Update(db *gorm.DB, slugStr string, in UpdateInput) (Category, error) {
	existing, err := GetBySlug(db, slugStr)
	if err != nil {
		return Category{}, err
	}

	updates := map[string]interface{}{}

	if in.Name != nil {
		if err := checkNameConflict(db, *in.Name, existing.ID); err != nil {
			return Category{}, err
		}
		newSlug, err := slug.GenerateUnique(*in.Name, existing.ID, SlugLookup(db))
		if err != nil {
			return Category{}, err
		}
		updates["name"] = *in.Name
		updates["slug"] = newSlug
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}

	if len(updates) > 0 {
		if err := db.Model(&Category{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
			return Category{}, err
		}
	}

	var c Category
	if err := db.First(&c, "id = ?", existing.ID).Error; err != nil {
		return Category{}, err
	}
	return c, nil
}

// Remove deletes the category unless posts still reference it.
func Remove(db *gorm.DB, slugStr string) (Category, error) {
	existing, err := GetBySlug(db, slugStr)
	if err != nil {
		return Category{}, err
	}

	var attached int64
	if err := db.Table("post_categories").Where("category_id = ?", existing.ID).Count(&attached).Error; err != nil {
		return Category{}, err
	}
	if attached > 0 {
		return Category{}, apierr.Conflict("category %q still has %d posts attached", existing.Name, attached)
	}

	if err := db.Delete(&Category{}, "id = ?", existing.ID).Error; err != nil {
		return Category{}, err
	}
	return existing, nil
}

// checkNameConflict enforces case-insensitive name uniqueness, skipping
// excludeID (0 = none).
func checkNameConflict(db *gorm.DB, name string, excludeID uint) error {
	q := db.Model(&Category{}).Where("LOWER(name) = LOWER(?)", name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return apierr.Conflict("category with name %q already exists", name)
	}
	return nil
}
