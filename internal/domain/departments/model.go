package departments

import "time"

type Department struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	Name             string `gorm:"not null" json:"name"`
	Slug             string `gorm:"not null;uniqueIndex:idx_departments_slug" json:"slug"`
	ShortDescription string `gorm:"not null" json:"short_description"`
	LongDescription  string `gorm:"not null" json:"long_description"`

	Stats          []DepartmentStat     `gorm:"foreignKey:DepartmentID;constraint:OnDelete:CASCADE;" json:"stats,omitempty"`
	Locations      []DepartmentLocation `gorm:"foreignKey:DepartmentID;constraint:OnDelete:CASCADE;" json:"locations,omitempty"`
	TrainingGroups []TrainingGroup      `gorm:"foreignKey:DepartmentID;constraint:OnDelete:CASCADE;" json:"training_groups,omitempty"`
	Trainers       []Trainer            `gorm:"foreignKey:DepartmentID;constraint:OnDelete:CASCADE;" json:"trainers,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type DepartmentStat struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	DepartmentID uint   `gorm:"not null;index" json:"department_id"`
	Label        string `gorm:"not null" json:"label"`
	Value        string `gorm:"not null" json:"value"`
	Sort         int    `gorm:"not null;default:0;index" json:"sort"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type DepartmentLocation struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	DepartmentID uint   `gorm:"not null;index" json:"department_id"`
	Name         string `gorm:"not null" json:"name"`
	Street       string `gorm:"not null" json:"street"`
	City         string `gorm:"not null" json:"city"`
	MapsURL      string `gorm:"column:maps_url" json:"maps_url"`
	Sort         int    `gorm:"not null;default:0;index" json:"sort"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
