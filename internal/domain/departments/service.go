package departments

import (
	"errors"

	"clubsite-api/internal/domain/slug"
	"clubsite-api/internal/platform/apierr"

	"gorm.io/gorm"
)

func SlugLookup(db *gorm.DB) slug.Lookup {
	return func(candidate string) (uint, bool, error) {
		var d Department
		err := db.Select("id").First(&d, "slug = ?", candidate).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		if err != nil {
			return 0, false, err
		}
		return d.ID, true, nil
	}
}

func List(db *gorm.DB) ([]Department, error) {
	var out []Department
	if err := db.Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func GetBySlug(db *gorm.DB, slugStr string) (Department, error) {
	var d Department
	err := db.
		Preload("Stats", func(db *gorm.DB) *gorm.DB { return db.Order("sort ASC") }).
		Preload("Locations", func(db *gorm.DB) *gorm.DB { return db.Order("sort ASC") }).
		Preload("TrainingGroups", func(db *gorm.DB) *gorm.DB { return db.Order("sort ASC") }).
		Preload("TrainingGroups.Sessions", func(db *gorm.DB) *gorm.DB { return db.Order("sort ASC") }).
		Preload("Trainers", func(db *gorm.DB) *gorm.DB { return db.Order("sort ASC") }).
		Preload("Trainers.ContactPerson").
		First(&d, "slug = ?", slugStr).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Department{}, apierr.NotFound("department with slug %q not found", slugStr)
		}
		return Department{}, err
	}
	return d, nil
}

type CreateInput struct {
	Name             string
	ShortDescription string
	LongDescription  string
}

func Create(db *gorm.DB, in CreateInput) (Department, error) {
	if err := checkNameConflict(db, in.Name, 0); err != nil {
		return Department{}, err
	}

	s, err := slug.GenerateUnique(in.Name, 0, SlugLookup(db))
	if err != nil {
		return Department{}, err
	}

	d := Department{
		Name:             in.Name,
		Slug:             s,
		ShortDescription: in.ShortDescription,
		LongDescription:  in.LongDescription,
	}
	if err := db.Create(&d).Error; err != nil {
		return Department{}, err
	}
	return d, nil
}

type UpdateInput struct {
	Name             *string
	ShortDescription *string
	LongDescription  *string
}

func Update(db *gorm.DB, slugStr string, in UpdateInput) (Department, error) {
	existing, err := GetBySlug(db, slugStr)
	if err != nil {
		return Department{}, err
	}

	updates := map[string]interface{}{}

	if in.Name != nil {
		if err := checkNameConflict(db, *in.Name, existing.ID); err != nil {
			return Department{}, err
		}
		newSlug, err := slug.GenerateUnique(*in.Name, existing.ID, SlugLookup(db))
		if err != nil {
			return Department{}, err
		}
		updates["name"] = *in.Name
		updates["slug"] = newSlug
	}
	if in.ShortDescription != nil {
		updates["short_description"] = *in.ShortDescription
	}
	if in.LongDescription != nil {
		updates["long_description"] = *in.LongDescription
	}

	if len(updates) > 0 {
		if err := db.Model(&Department{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
			return Department{}, err
		}
	}

	var d Department
	if err := db.First(&d, "id = ?", existing.ID).Error; err != nil {
		return Department{}, err
	}
	return d, nil
}

func Remove(db *gorm.DB, slugStr string) (Department, error) {
	existing, err := GetBySlug(db, slugStr)
	if err != nil {
		return Department{}, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&DepartmentStat{}, "department_id = ?", existing.ID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&DepartmentLocation{}, "department_id = ?", existing.ID).Error; err != nil {
			return err
		}
		var groupIDs []uint
		if err := tx.Model(&TrainingGroup{}).Where("department_id = ?", existing.ID).Pluck("id", &groupIDs).Error; err != nil {
			return err
		}
		if len(groupIDs) > 0 {
			if err := tx.Delete(&TrainingSession{}, "training_group_id IN ?", groupIDs).Error; err != nil {
				return err
			}
			if err := tx.Delete(&TrainingGroup{}, "id IN ?", groupIDs).Error; err != nil {
				return err
			}
		}
		if err := tx.Delete(&Trainer{}, "department_id = ?", existing.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&Department{}, "id = ?", existing.ID).Error
	})
	if err != nil {
		return Department{}, err
	}
	return existing, nil
}

type StatInput struct {
	Label string `json:"label" binding:"required"`
	Value string `json:"value" binding:"required"`
}

// ReplaceStats swaps a department's stats wholesale; sort follows list
// position, like page blocks.
func ReplaceStats(db *gorm.DB, slugStr string, inputs []StatInput) ([]DepartmentStat, error) {
	existing, err := GetBySlug(db, slugStr)
	if err != nil {
		return nil, err
	}

	created := make([]DepartmentStat, 0, len(inputs))
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&DepartmentStat{}, "department_id = ?", existing.ID).Error; err != nil {
			return err
		}
		for i, in := range inputs {
			row := DepartmentStat{
				DepartmentID: existing.ID,
				Label:        in.Label,
				Value:        in.Value,
				Sort:         i,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			created = append(created, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

type LocationInput struct {
	Name    string `json:"name" binding:"required"`
	Street  string `json:"street" binding:"required"`
	City    string `json:"city" binding:"required"`
	MapsURL string `json:"maps_url"`
}

func ReplaceLocations(db *gorm.DB, slugStr string, inputs []LocationInput) ([]DepartmentLocation, error) {
	existing, err := GetBySlug(db, slugStr)
	if err != nil {
		return nil, err
	}

	created := make([]DepartmentLocation, 0, len(inputs))
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&DepartmentLocation{}, "department_id = ?", existing.ID).Error; err != nil {
			return err
		}
		for i, in := range inputs {
			row := DepartmentLocation{
				DepartmentID: existing.ID,
				Name:         in.Name,
				Street:       in.Street,
				City:         in.City,
				MapsURL:      in.MapsURL,
				Sort:         i,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			created = append(created, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func checkNameConflict(db *gorm.DB, name string, excludeID uint) error {
	q := db.Model(&Department{}).Where("LOWER(name) = LOWER(?)", name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return apierr.Conflict("department with name %q already exists", name)
	}
	return nil
}
