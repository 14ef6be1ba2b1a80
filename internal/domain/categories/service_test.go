package categories

import (
	"testing"

	"clubsite-api/internal/platform/apierr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Category{}))
	// Stand-in for the posts join table so Remove can count attachments.
	require.NoError(t, db.Exec(`CREATE TABLE post_categories (post_id integer, category_id integer)`).Error)
	return db
}

func TestCreateAllocatesSlug(t *testing.T) {
	db := testDB(t)

	c, err := Create(db, CreateInput{Name: "Jugend & Sport"})
	require.NoError(t, err)
	assert.Equal(t, "jugend-sport", c.Slug)
}

func TestCreateNameConflictCaseInsensitive(t *testing.T) {
	db := testDB(t)

	_, err := Create(db, CreateInput{Name: "Sports"})
	require.NoError(t, err)

	_, err = Create(db, CreateInput{Name: "sports"})
	assert.True(t, apierr.IsConflict(err), "case-insensitive duplicate must conflict")
}

func TestUpdateKeepsOwnSlug(t *testing.T) {
	db := testDB(t)

	c, err := Create(db, CreateInput{Name: "Fussball"})
	require.NoError(t, err)
	assert.Equal(t, "fussball", c.Slug)

	// Renaming to a different casing of itself must not bump the suffix.
	name := "FUSSBALL"
	updated, err := Update(db, c.Slug, UpdateInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "fussball", updated.Slug)
	assert.Equal(t, "FUSSBALL", updated.Name)
}

func TestUpdateRegeneratesSlugOnRename(t *testing.T) {
	db := testDB(t)

	c, err := Create(db, CreateInput{Name: "Turnen"})
	require.NoError(t, err)

	name := "Geräteturnen"
	updated, err := Update(db, c.Slug, UpdateInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "gerteturnen", updated.Slug)

	_, err = GetBySlug(db, "turnen")
	assert.True(t, apierr.IsNotFound(err), "old slug must be released")
}

func TestSlugSuffixAllocation(t *testing.T) {
	db := testDB(t)

	a, err := Create(db, CreateInput{Name: "Turnen"})
	require.NoError(t, err)
	assert.Equal(t, "turnen", a.Slug)

	// Same base slug, different name, so no name conflict fires.
	b, err := Create(db, CreateInput{Name: "Turnen "})
	require.NoError(t, err)
	assert.Equal(t, "turnen-2", b.Slug)

	c, err := Create(db, CreateInput{Name: "  Turnen"})
	require.NoError(t, err)
	assert.Equal(t, "turnen-3", c.Slug)
}

func TestRemoveConflictsWithAttachedPosts(t *testing.T) {
	db := testDB(t)

	c, err := Create(db, CreateInput{Name: "News"})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`INSERT INTO post_categories (post_id, category_id) VALUES (1, ?)`, c.ID).Error)

	_, err = Remove(db, c.Slug)
	assert.True(t, apierr.IsConflict(err))

	require.NoError(t, db.Exec(`DELETE FROM post_categories WHERE category_id = ?`, c.ID).Error)

	removed, err := Remove(db, c.Slug)
	require.NoError(t, err)
	assert.Equal(t, c.ID, removed.ID)

	_, err = GetBySlug(db, c.Slug)
	assert.True(t, apierr.IsNotFound(err))
}

func TestUpdateNotFound(t *testing.T) {
	db := testDB(t)

	name := "x"
	_, err := Update(db, "missing", UpdateInput{Name: &name})
	assert.True(t, apierr.IsNotFound(err))
}
