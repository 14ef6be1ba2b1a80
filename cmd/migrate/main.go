// One-off Joomla (MySQL) to PostgreSQL content migration.
// Reads the old club website's category and article tables and recreates
// them through the regular domain services, so slugs come from the same
// allocator the API uses.
//
// Run with: go run ./cmd/migrate -mysql "$MYSQL_URL" -postgres "$DB_URL"
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"clubsite-api/database"
	"clubsite-api/internal/domain/categories"
	"clubsite-api/internal/domain/posts"
	"clubsite-api/internal/domain/users"
	"clubsite-api/internal/platform/logger"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const categoryQuery = `
SELECT
  id,
  title AS name,
  description
FROM j3x_categories
WHERE extension = 'com_content'
  AND published = 1
ORDER BY lft ASC
LIMIT 300`

const postQuery = `
SELECT
  id,
  title,
  introtext AS content,
  hits,
  created,
  modified
FROM j3x_content
WHERE catid = ?
  AND state = 1
LIMIT 10000`

type joomlaCategory struct {
	ID          int
	Name        string
	Description *string
}

type joomlaPost struct {
	ID       int
	Title    string
	Content  *string
	Hits     int
	Created  time.Time
	Modified time.Time
}

var seedUsers = []struct {
	Username string
	Email    string
}{
	{Username: "admin", Email: "admin@club.example"},
	{Username: "redaktion", Email: "redaktion@club.example"},
}

func main() {
	var mysqlDSN, pgDSN string
	var dryRun bool
	flag.StringVar(&mysqlDSN, "mysql", os.Getenv("MYSQL_URL"), "MySQL DSN of the old Joomla database")
	flag.StringVar(&pgDSN, "postgres", os.Getenv("DB_URL"), "PostgreSQL DSN of the new database")
	flag.BoolVar(&dryRun, "dry-run", false, "read from MySQL but write nothing")
	flag.Parse()

	_ = godotenv.Load()

	log, err := logger.New(os.Getenv("APP_ENV"))
	if err != nil {
		fmt.Printf("init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if mysqlDSN == "" || pgDSN == "" {
		log.Fatal("both -mysql and -postgres DSNs are required")
	}

	src, err := gorm.Open(mysql.Open(mysqlDSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		log.Fatal("connect mysql", "err", err)
	}

	dst, err := gorm.Open(postgres.Open(pgDSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		log.Fatal("connect postgres", "err", err)
	}

	if err := database.Migrate(dst); err != nil {
		log.Fatal("migrate schema", "err", err)
	}

	started := time.Now()

	authorID, err := seedAuthors(dst, log, dryRun)
	if err != nil {
		log.Fatal("seed users", "err", err)
	}

	catMap, err := migrateCategories(src, dst, log, dryRun)
	if err != nil {
		log.Fatal("migrate categories", "err", err)
	}

	totalPosts, err := migratePosts(src, dst, log, catMap, authorID, dryRun)
	if err != nil {
		log.Fatal("migrate posts", "err", err)
	}

	log.Info("migration complete",
		"categories", len(catMap),
		"posts", totalPosts,
		"elapsed", time.Since(started).String(),
	)
}

// seedAuthors creates the editorial users migrated posts get attributed to
// and returns the id of the first one.
func seedAuthors(dst *gorm.DB, log *logger.Logger, dryRun bool) (uint, error) {
	password := os.Getenv("MIGRATE_SEED_PASSWORD")
	if password == "" {
		password = "changeme"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}
	hashStr := string(hash)

	var firstID uint
	for _, su := range seedUsers {
		if dryRun {
			log.Info("would seed user", "username", su.Username)
			continue
		}
		u := users.User{Username: su.Username, Email: su.Email, Password: &hashStr}
		err := dst.Where(users.User{Username: su.Username}).FirstOrCreate(&u).Error
		if err != nil {
			return 0, err
		}
		if firstID == 0 {
			firstID = u.ID
		}
		log.Info("seeded user", "username", u.Username, "id", u.ID)
	}
	return firstID, nil
}

// migrateCategories copies published content categories and returns the
// Joomla id -> new id map posts need.
func migrateCategories(src, dst *gorm.DB, log *logger.Logger, dryRun bool) (map[int]uint, error) {
	var rows []joomlaCategory
	if err := src.Raw(categoryQuery).Scan(&rows).Error; err != nil {
		return nil, err
	}
	log.Info("found categories", "count", len(rows))

	catMap := make(map[int]uint, len(rows))
	for _, row := range rows {
		if dryRun {
			log.Info("would migrate category", "name", row.Name)
			continue
		}
		c, err := categories.Create(dst, categories.CreateInput{
			Name:        row.Name,
			Description: row.Description,
		})
		if err != nil {
			return nil, fmt.Errorf("category %q: %w", row.Name, err)
		}
		catMap[row.ID] = c.ID
		log.Info("migrated category", "name", c.Name, "old_id", row.ID, "new_id", c.ID, "slug", c.Slug)
	}
	return catMap, nil
}

func migratePosts(src, dst *gorm.DB, log *logger.Logger, catMap map[int]uint, authorID uint, dryRun bool) (int, error) {
	total := 0
	for oldCatID, newCatID := range catMap {
		var rows []joomlaPost
		if err := src.Raw(postQuery, oldCatID).Scan(&rows).Error; err != nil {
			return total, err
		}

		for _, row := range rows {
			if dryRun {
				log.Info("would migrate post", "title", row.Title)
				continue
			}
			p, err := posts.Create(dst, posts.CreateInput{
				Title:       row.Title,
				Content:     row.Content,
				Published:   true,
				Hits:        row.Hits,
				OldPost:     true,
				AuthorID:    authorID,
				CategoryIDs: []uint{newCatID},
			})
			if err != nil {
				return total, fmt.Errorf("post %q: %w", row.Title, err)
			}

			// Preserve the original timestamps.
			err = dst.Model(&posts.Post{}).Where("id = ?", p.ID).
				Updates(map[string]interface{}{
					"created_at": row.Created,
					"updated_at": row.Modified,
				}).Error
			if err != nil {
				return total, err
			}
			total++
		}
		log.Info("migrated category posts", "old_category_id", oldCatID, "posts", len(rows))
	}
	return total, nil
}
