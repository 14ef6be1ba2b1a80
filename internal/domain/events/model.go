package events

import "time"

const (
	CategoryMeeting = "Meeting"
	CategorySport   = "Sport"
	CategorySocial  = "Social"
	CategoryOther   = "Other"
)

// Categories lists the accepted event categories in display order.
var Categories = []string{CategoryMeeting, CategorySport, CategorySocial, CategoryOther}

func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description *string   `json:"description"`
	StartDate   time.Time `gorm:"not null;index" json:"start_date"`
	EndDate     time.Time `gorm:"not null;index" json:"end_date"`
	IsFullDay   bool      `gorm:"not null;default:false" json:"is_full_day"`
	Location    *string   `json:"location"`
	// Recurrence holds an RRULE body ("FREQ=WEEKLY;BYDAY=MO"); nil for
	// one-off events.
	Recurrence *string `json:"recurrence"`
	Category   string  `gorm:"not null;index" json:"category"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Instance is one concrete occurrence of an event inside a query window.
// Recurring events produce one Instance per expanded occurrence.
type Instance struct {
	Event
	IsRecurrenceInstance bool       `json:"is_recurrence_instance"`
	OriginalEventID      *uint      `json:"original_event_id"`
	InstanceDate         *time.Time `json:"instance_date,omitempty"`
}
