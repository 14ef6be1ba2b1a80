package departments

import (
	"errors"
	"time"

	"clubsite-api/internal/platform/apierr"

	"gorm.io/gorm"
)

const (
	GroupIconYouth  = "youth"
	GroupIconAdults = "adults"

	GroupVariantPrimary   = "primary"
	GroupVariantSecondary = "secondary"
)

func validGroupIcon(v string) bool {
	return v == GroupIconYouth || v == GroupIconAdults
}

func validGroupVariant(v string) bool {
	return v == GroupVariantPrimary || v == GroupVariantSecondary
}

// TrainingGroup is one offering of a department (e.g. "Jugend U12") with its
// weekly sessions. Groups and sessions render in Sort order.
type TrainingGroup struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	DepartmentID uint    `gorm:"not null;index" json:"department_id"`
	Name         string  `gorm:"not null" json:"name"`
	AgeRange     *string `json:"age_range"`
	Icon         string  `gorm:"not null" json:"icon"`
	Variant      string  `gorm:"not null" json:"variant"`
	Sort         int     `gorm:"not null;default:0;index" json:"sort"`

	Sessions []TrainingSession `gorm:"foreignKey:TrainingGroupID;constraint:OnDelete:CASCADE;" json:"sessions"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TrainingSession struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	TrainingGroupID uint   `gorm:"not null;index" json:"training_group_id"`
	Day             string `gorm:"not null" json:"day"`
	Time            string `gorm:"not null" json:"time"`
	Sort            int    `gorm:"not null;default:0;index" json:"sort"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type GroupInput struct {
	Name     string  `json:"name" binding:"required"`
	AgeRange *string `json:"age_range"`
	Icon     string  `json:"icon" binding:"required"`
	Variant  string  `json:"variant" binding:"required"`
	Sort     int     `json:"sort"`
}

type GroupPatch struct {
	Name     *string `json:"name"`
	AgeRange *string `json:"age_range"`
	Icon     *string `json:"icon"`
	Variant  *string `json:"variant"`
	Sort     *int    `json:"sort"`
}

type SessionInput struct {
	Day  string `json:"day" binding:"required"`
	Time string `json:"time" binding:"required"`
	Sort int    `json:"sort"`
}

type SessionPatch struct {
	Day  *string `json:"day"`
	Time *string `json:"time"`
	Sort *int    `json:"sort"`
}

// departmentID resolves a department slug without loading its relations.
func departmentID(db *gorm.DB, slugStr string) (uint, error) {
	var d Department
	if err := db.Select("id").First(&d, "slug = ?", slugStr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apierr.NotFound("department with slug %q not found", slugStr)
		}
		return 0, err
	}
	return d.ID, nil
}

// groupOf fetches a training group and verifies it belongs to the department.
func groupOf(db *gorm.DB, departmentID, groupID uint) (TrainingGroup, error) {
	var g TrainingGroup
	err := db.First(&g, "id = ? AND department_id = ?", groupID, departmentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return TrainingGroup{}, apierr.NotFound("training group with id %d not found for this department", groupID)
	}
	if err != nil {
		return TrainingGroup{}, err
	}
	return g, nil
}

func ListGroups(db *gorm.DB, slugStr string) ([]TrainingGroup, error) {
	depID, err := departmentID(db, slugStr)
	if err != nil {
		return nil, err
	}

	var out []TrainingGroup
	err = db.
		Preload("Sessions", func(db *gorm.DB) *gorm.DB { return db.Order("sort ASC") }).
		Where("department_id = ?", depID).
		Order("sort ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func CreateGroup(db *gorm.DB, slugStr string, in GroupInput) (TrainingGroup, error) {
	depID, err := departmentID(db, slugStr)
	if err != nil {
		return TrainingGroup{}, err
	}
	if !validGroupIcon(in.Icon) {
		return TrainingGroup{}, apierr.Validation("unknown training group icon %q", in.Icon)
	}
	if !validGroupVariant(in.Variant) {
		return TrainingGroup{}, apierr.Validation("unknown training group variant %q", in.Variant)
	}

	g := TrainingGroup{
		DepartmentID: depID,
		Name:         in.Name,
		AgeRange:     in.AgeRange,
		Icon:         in.Icon,
		Variant:      in.Variant,
		Sort:         in.Sort,
	}
	if err := db.Create(&g).Error; err != nil {
		return TrainingGroup{}, err
	}
	g.Sessions = []TrainingSession{}
	return g, nil
}

func UpdateGroup(db *gorm.DB, slugStr string, groupID uint, patch GroupPatch) (TrainingGroup, error) {
	depID, err := departmentID(db, slugStr)
	if err != nil {
		return TrainingGroup{}, err
	}
	if _, err := groupOf(db, depID, groupID); err != nil {
		return TrainingGroup{}, err
	}

	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.AgeRange != nil {
		updates["age_range"] = *patch.AgeRange
	}
	if patch.Icon != nil {
		if !validGroupIcon(*patch.Icon) {
			return TrainingGroup{}, apierr.Validation("unknown training group icon %q", *patch.Icon)
		}
		updates["icon"] = *patch.Icon
	}
	if patch.Variant != nil {
		if !validGroupVariant(*patch.Variant) {
			return TrainingGroup{}, apierr.Validation("unknown training group variant %q", *patch.Variant)
		}
		updates["variant"] = *patch.Variant
	}
	if patch.Sort != nil {
		updates["sort"] = *patch.Sort
	}

	if len(updates) > 0 {
		if err := db.Model(&TrainingGroup{}).Where("id = ?", groupID).Updates(updates).Error; err != nil {
			return TrainingGroup{}, err
		}
	}

	var g TrainingGroup
	err = db.
		Preload("Sessions", func(db *gorm.DB) *gorm.DB { return db.Order("sort ASC") }).
		First(&g, "id = ?", groupID).Error
	if err != nil {
		return TrainingGroup{}, err
	}
	return g, nil
}

// RemoveGroup deletes a group with its sessions, returning the pre-delete
// state.
func RemoveGroup(db *gorm.DB, slugStr string, groupID uint) (TrainingGroup, error) {
	depID, err := departmentID(db, slugStr)
	if err != nil {
		return TrainingGroup{}, err
	}
	if _, err := groupOf(db, depID, groupID); err != nil {
		return TrainingGroup{}, err
	}

	var snapshot TrainingGroup
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Preload("Sessions", func(db *gorm.DB) *gorm.DB { return db.Order("sort ASC") }).
			First(&snapshot, "id = ?", groupID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&TrainingSession{}, "training_group_id = ?", groupID).Error; err != nil {
			return err
		}
		return tx.Delete(&TrainingGroup{}, "id = ?", groupID).Error
	})
	if err != nil {
		return TrainingGroup{}, err
	}
	return snapshot, nil
}

func CreateSession(db *gorm.DB, slugStr string, groupID uint, in SessionInput) (TrainingSession, error) {
	depID, err := departmentID(db, slugStr)
	if err != nil {
		return TrainingSession{}, err
	}
	if _, err := groupOf(db, depID, groupID); err != nil {
		return TrainingSession{}, err
	}

	s := TrainingSession{
		TrainingGroupID: groupID,
		Day:             in.Day,
		Time:            in.Time,
		Sort:            in.Sort,
	}
	if err := db.Create(&s).Error; err != nil {
		return TrainingSession{}, err
	}
	return s, nil
}

func UpdateSession(db *gorm.DB, slugStr string, groupID, sessionID uint, patch SessionPatch) (TrainingSession, error) {
	depID, err := departmentID(db, slugStr)
	if err != nil {
		return TrainingSession{}, err
	}
	if _, err := groupOf(db, depID, groupID); err != nil {
		return TrainingSession{}, err
	}

	var s TrainingSession
	err = db.First(&s, "id = ? AND training_group_id = ?", sessionID, groupID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return TrainingSession{}, apierr.NotFound("training session with id %d not found for this training group", sessionID)
	}
	if err != nil {
		return TrainingSession{}, err
	}

	updates := map[string]interface{}{}
	if patch.Day != nil {
		updates["day"] = *patch.Day
	}
	if patch.Time != nil {
		updates["time"] = *patch.Time
	}
	if patch.Sort != nil {
		updates["sort"] = *patch.Sort
	}

	if len(updates) > 0 {
		if err := db.Model(&TrainingSession{}).Where("id = ?", sessionID).Updates(updates).Error; err != nil {
			return TrainingSession{}, err
		}
	}

	if err := db.First(&s, "id = ?", sessionID).Error; err != nil {
		return TrainingSession{}, err
	}
	return s, nil
}

func RemoveSession(db *gorm.DB, slugStr string, groupID, sessionID uint) (TrainingSession, error) {
	depID, err := departmentID(db, slugStr)
	if err != nil {
		return TrainingSession{}, err
	}
	if _, err := groupOf(db, depID, groupID); err != nil {
		return TrainingSession{}, err
	}

	var s TrainingSession
	err = db.First(&s, "id = ? AND training_group_id = ?", sessionID, groupID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return TrainingSession{}, apierr.NotFound("training session with id %d not found for this training group", sessionID)
	}
	if err != nil {
		return TrainingSession{}, err
	}

	if err := db.Delete(&TrainingSession{}, "id = ?", sessionID).Error; err != nil {
		return TrainingSession{}, err
	}
	return s, nil
}

// ReorderGroups rewrites the sort of every listed group from its list
// position, then returns the department's groups in the new order. Every id
// must belong to the department.
func ReorderGroups(db *gorm.DB, slugStr string, ids []uint) ([]TrainingGroup, error) {
	depID, err := departmentID(db, slugStr)
	if err != nil {
		return nil, err
	}

	var existing []uint
	if err := db.Model(&TrainingGroup{}).Where("department_id = ?", depID).Pluck("id", &existing).Error; err != nil {
		return nil, err
	}
	known := make(map[uint]bool, len(existing))
	for _, id := range existing {
		known[id] = true
	}
	for _, id := range ids {
		if !known[id] {
			return nil, apierr.NotFound("training group with id %d not found for this department", id)
		}
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		for i, id := range ids {
			if err := tx.Model(&TrainingGroup{}).Where("id = ?", id).Update("sort", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ListGroups(db, slugStr)
}

func ReorderSessions(db *gorm.DB, slugStr string, groupID uint, ids []uint) ([]TrainingSession, error) {
	depID, err := departmentID(db, slugStr)
	if err != nil {
		return nil, err
	}
	if _, err := groupOf(db, depID, groupID); err != nil {
		return nil, err
	}

	var existing []uint
	if err := db.Model(&TrainingSession{}).Where("training_group_id = ?", groupID).Pluck("id", &existing).Error; err != nil {
		return nil, err
	}
	known := make(map[uint]bool, len(existing))
	for _, id := range existing {
		known[id] = true
	}
	for _, id := range ids {
		if !known[id] {
			return nil, apierr.NotFound("training session with id %d not found for this training group", id)
		}
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		for i, id := range ids {
			if err := tx.Model(&TrainingSession{}).Where("id = ?", id).Update("sort", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var out []TrainingSession
	if err := db.Where("training_group_id = ?", groupID).Order("sort ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
