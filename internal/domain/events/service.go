package events

import (
	"errors"
	"time"

	"clubsite-api/internal/platform/apierr"

	"gorm.io/gorm"
)

// Range returns every concrete event instance inside [start, end],
// optionally filtered by category. Recurring events are fetched by their
// anchor date and expanded in memory.
func Range(db *gorm.DB, start, end time.Time, category string) ([]Instance, error) {
	q := db.Model(&Event{}).
		Where("(recurrence IS NULL AND start_date <= ? AND end_date >= ?) OR (recurrence IS NOT NULL AND start_date <= ?)",
			end, start, end)
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var rows []Event
	if err := q.Order("start_date ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	return ExpandRange(rows, start, end), nil
}

func GetByID(db *gorm.DB, id uint) (Event, error) {
	var e Event
	if err := db.First(&e, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Event{}, apierr.NotFound("event with id %d not found", id)
		}
		return Event{}, err
	}
	return e, nil
}

type CreateInput struct {
	Title       string
	Description *string
	StartDate   time.Time
	EndDate     time.Time
	IsFullDay   bool
	Location    *string
	Recurrence  *string
	Category    string
}

func Create(db *gorm.DB, in CreateInput) (Event, error) {
	if !ValidCategory(in.Category) {
		return Event{}, apierr.Validation("unknown event category %q", in.Category)
	}
	if in.EndDate.Before(in.StartDate) {
		return Event{}, apierr.Validation("event end date precedes start date")
	}

	e := Event{
		Title:       in.Title,
		Description: in.Description,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		IsFullDay:   in.IsFullDay,
		Location:    in.Location,
		Recurrence:  in.Recurrence,
		Category:    in.Category,
	}
	if err := db.Create(&e).Error; err != nil {
		return Event{}, err
	}
	return e, nil
}

// UpdateInput patches an event. For the nullable columns the Set flag
// distinguishes "clear to null" (true, nil value) from "leave alone".
type UpdateInput struct {
	Title          *string
	Description    *string
	DescriptionSet bool
	StartDate      *time.Time
	EndDate        *time.Time
	IsFullDay      *bool
	Location       *string
	LocationSet    bool
	Recurrence     *string
	RecurrenceSet  bool
	Category       *string
}

func Update(db *gorm.DB, id uint, in UpdateInput) (Event, error) {
	existing, err := GetByID(db, id)
	if err != nil {
		return Event{}, err
	}

	updates := map[string]interface{}{}

	if in.Title != nil {
		updates["title"] = *in.Title
	}
	if in.DescriptionSet {
		updates["description"] = in.Description
	}

	// Validate the interval the event would end up with, not just the
	// patched side.
	start, end := existing.StartDate, existing.EndDate
	if in.StartDate != nil {
		start = *in.StartDate
		updates["start_date"] = start
	}
	if in.EndDate != nil {
		end = *in.EndDate
		updates["end_date"] = end
	}
	if end.Before(start) {
		return Event{}, apierr.Validation("event end date precedes start date")
	}

	if in.IsFullDay != nil {
		updates["is_full_day"] = *in.IsFullDay
	}
	if in.LocationSet {
		updates["location"] = in.Location
	}
	if in.RecurrenceSet {
		updates["recurrence"] = in.Recurrence
	}
	if in.Category != nil {
		if !ValidCategory(*in.Category) {
			return Event{}, apierr.Validation("unknown event category %q", *in.Category)
		}
		updates["category"] = *in.Category
	}

	if len(updates) > 0 {
		if err := db.Model(&Event{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
			return Event{}, err
		}
	}

	return GetByID(db, id)
}

func Remove(db *gorm.DB, id uint) (Event, error) {
	existing, err := GetByID(db, id)
	if err != nil {
		return Event{}, err
	}
	if err := db.Delete(&Event{}, "id = ?", existing.ID).Error; err != nil {
		return Event{}, err
	}
	return existing, nil
}
