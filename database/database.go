package database

import (
	"fmt"
	"log"
	"os"

	"clubsite-api/internal/domain/blocks"
	"clubsite-api/internal/domain/categories"
	"clubsite-api/internal/domain/contacts"
	"clubsite-api/internal/domain/departments"
	"clubsite-api/internal/domain/events"
	"clubsite-api/internal/domain/media"
	"clubsite-api/internal/domain/posts"
	"clubsite-api/internal/domain/settings"
	"clubsite-api/internal/domain/tags"
	"clubsite-api/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	DB = db

	// Required for uuid defaults on existing rows created outside the app.
	if err := DB.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Fatal("Failed to enable pgcrypto extension:", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("AutoMigrate error:", err)
	}

	fmt.Println("Connected and migrated successfully")
}

// Migrate runs the schema migration for every domain model. Shared with
// cmd/migrate, which targets a fresh database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// core
		&users.User{},
		&categories.Category{},
		&tags.Tag{},
		&media.Media{},
		&posts.Post{},

		// club
		&contacts.ContactPerson{},
		&departments.Department{},
		&departments.DepartmentStat{},
		&departments.DepartmentLocation{},
		&departments.TrainingGroup{},
		&departments.TrainingSession{},
		&departments.Trainer{},
		&events.Event{},

		// site
		&settings.Setting{},
		&blocks.Block{},
	)
}
