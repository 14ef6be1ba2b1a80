package departments

import (
	"encoding/json"
	"errors"
	"time"

	"clubsite-api/internal/domain/contacts"
	"clubsite-api/internal/platform/apierr"

	"gorm.io/gorm"
)

// Trainer links a contact person into a department's trainer roster, with
// role and license details for the department page. One contact person can
// appear at most once per department.
type Trainer struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	DepartmentID    uint            `gorm:"not null;uniqueIndex:idx_department_trainers_pair" json:"department_id"`
	ContactPersonID uint            `gorm:"not null;uniqueIndex:idx_department_trainers_pair" json:"contact_person_id"`
	Role            string          `gorm:"not null" json:"role"`
	Licenses        json.RawMessage `gorm:"type:jsonb" json:"licenses"`
	Experience      string          `gorm:"not null" json:"experience"`
	Quote           string          `gorm:"not null" json:"quote"`
	Sort            int             `gorm:"not null;default:0;index" json:"sort"`

	ContactPerson contacts.ContactPerson `gorm:"foreignKey:ContactPersonID" json:"contact_person"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TrainerInput struct {
	ContactPersonID uint            `json:"contact_person_id" binding:"required"`
	Role            string          `json:"role" binding:"required"`
	Licenses        json.RawMessage `json:"licenses"`
	Experience      string          `json:"experience"`
	Quote           string          `json:"quote"`
	Sort            int             `json:"sort"`
}

type TrainerPatch struct {
	Role       *string          `json:"role"`
	Licenses   *json.RawMessage `json:"licenses"`
	Experience *string          `json:"experience"`
	Quote      *string          `json:"quote"`
	Sort       *int             `json:"sort"`
}

func ListTrainers(db *gorm.DB, slugStr string) ([]Trainer, error) {
	depID, err := departmentID(db, slugStr)
	if err != nil {
		return nil, err
	}

	var out []Trainer
	err = db.
		Preload("ContactPerson").
		Where("department_id = ?", depID).
		Order("sort ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func CreateTrainer(db *gorm.DB, slugStr string, in TrainerInput) (Trainer, error) {
	depID, err := departmentID(db, slugStr)
	if err != nil {
		return Trainer{}, err
	}

	var n int64
	if err := db.Model(&contacts.ContactPerson{}).Where("id = ?", in.ContactPersonID).Count(&n).Error; err != nil {
		return Trainer{}, err
	}
	if n == 0 {
		return Trainer{}, apierr.NotFound("contact person with id %d not found", in.ContactPersonID)
	}

	if err := db.Model(&Trainer{}).
		Where("department_id = ? AND contact_person_id = ?", depID, in.ContactPersonID).
		Count(&n).Error; err != nil {
		return Trainer{}, err
	}
	if n > 0 {
		return Trainer{}, apierr.Conflict("this contact person is already a trainer for this department")
	}

	t := Trainer{
		DepartmentID:    depID,
		ContactPersonID: in.ContactPersonID,
		Role:            in.Role,
		Licenses:        in.Licenses,
		Experience:      in.Experience,
		Quote:           in.Quote,
		Sort:            in.Sort,
	}
	if err := db.Create(&t).Error; err != nil {
		return Trainer{}, err
	}

	if err := db.Preload("ContactPerson").First(&t, "id = ?", t.ID).Error; err != nil {
		return Trainer{}, err
	}
	return t, nil
}

func UpdateTrainer(db *gorm.DB, slugStr string, id uint, patch TrainerPatch) (Trainer, error) {
	depID, err := departmentID(db, slugStr)
	if err != nil {
		return Trainer{}, err
	}

	var t Trainer
	err = db.First(&t, "id = ? AND department_id = ?", id, depID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Trainer{}, apierr.NotFound("trainer with id %d not found for this department", id)
	}
	if err != nil {
		return Trainer{}, err
	}

	updates := map[string]interface{}{}
	if patch.Role != nil {
		updates["role"] = *patch.Role
	}
	if patch.Licenses != nil {
		updates["licenses"] = *patch.Licenses
	}
	if patch.Experience != nil {
		updates["experience"] = *patch.Experience
	}
	if patch.Quote != nil {
		updates["quote"] = *patch.Quote
	}
	if patch.Sort != nil {
		updates["sort"] = *patch.Sort
	}

	if len(updates) > 0 {
		if err := db.Model(&Trainer{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return Trainer{}, err
		}
	}

	if err := db.Preload("ContactPerson").First(&t, "id = ?", id).Error; err != nil {
		return Trainer{}, err
	}
	return t, nil
}

func RemoveTrainer(db *gorm.DB, slugStr string, id uint) (Trainer, error) {
	depID, err := departmentID(db, slugStr)
	if err != nil {
		return Trainer{}, err
	}

	var t Trainer
	err = db.Preload("ContactPerson").First(&t, "id = ? AND department_id = ?", id, depID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Trainer{}, apierr.NotFound("trainer with id %d not found for this department", id)
	}
	if err != nil {
		return Trainer{}, err
	}

	if err := db.Delete(&Trainer{}, "id = ?", id).Error; err != nil {
		return Trainer{}, err
	}
	return t, nil
}
