package departments

import (
	"testing"

	"clubsite-api/internal/domain/contacts"
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
	require.NoError(t, db.AutoMigrate(
		&contacts.ContactPerson{},
		&Department{}, &DepartmentStat{}, &DepartmentLocation{},
		&TrainingGroup{}, &TrainingSession{}, &Trainer{},
	))
	return db
}

func TestCreateAllocatesSlug(t *testing.T) {
	db := testDB(t)

	d, err := Create(db, CreateInput{Name: "Turnen & Gymnastik"})
	require.NoError(t, err)
	assert.Equal(t, "turnen-gymnastik", d.Slug)
}

func TestCreateNameConflict(t *testing.T) {
	db := testDB(t)

	_, err := Create(db, CreateInput{Name: "Fussball"})
	require.NoError(t, err)

	_, err = Create(db, CreateInput{Name: "FUSSBALL"})
	assert.True(t, apierr.IsConflict(err))
}

func TestReplaceStatsOrdersBySortAndIsWholesale(t *testing.T) {
	db := testDB(t)

	d, err := Create(db, CreateInput{Name: "Handball"})
	require.NoError(t, err)

	stats, err := ReplaceStats(db, d.Slug, []StatInput{
		{Label: "Mitglieder", Value: "240"},
		{Label: "Mannschaften", Value: "8"},
		{Label: "Gegründet", Value: "1962"},
	})
	require.NoError(t, err)
	require.Len(t, stats, 3)
	for i, s := range stats {
		assert.Equal(t, i, s.Sort)
	}

	// A second replace wipes the old rows instead of appending.
	stats, err = ReplaceStats(db, d.Slug, []StatInput{
		{Label: "Mitglieder", Value: "250"},
	})
	require.NoError(t, err)
	require.Len(t, stats, 1)

	loaded, err := GetBySlug(db, d.Slug)
	require.NoError(t, err)
	require.Len(t, loaded.Stats, 1)
	assert.Equal(t, "250", loaded.Stats[0].Value)
}

func TestReplaceStatsEmptyClears(t *testing.T) {
	db := testDB(t)

	d, err := Create(db, CreateInput{Name: "Tennis"})
	require.NoError(t, err)

	_, err = ReplaceStats(db, d.Slug, []StatInput{{Label: "Plätze", Value: "6"}})
	require.NoError(t, err)

	stats, err := ReplaceStats(db, d.Slug, nil)
	require.NoError(t, err)
	assert.Empty(t, stats)

	loaded, err := GetBySlug(db, d.Slug)
	require.NoError(t, err)
	assert.Empty(t, loaded.Stats)
}

func TestReplaceLocations(t *testing.T) {
	db := testDB(t)

	d, err := Create(db, CreateInput{Name: "Leichtathletik"})
	require.NoError(t, err)

	locs, err := ReplaceLocations(db, d.Slug, []LocationInput{
		{Name: "Stadion", Street: "Sportallee 1", City: "Musterstadt"},
		{Name: "Halle", Street: "Turnweg 3", City: "Musterstadt", MapsURL: "https://maps.example.org/halle"},
	})
	require.NoError(t, err)
	require.Len(t, locs, 2)
	assert.Equal(t, 0, locs[0].Sort)
	assert.Equal(t, 1, locs[1].Sort)

	loaded, err := GetBySlug(db, d.Slug)
	require.NoError(t, err)
	require.Len(t, loaded.Locations, 2)
	assert.Equal(t, "Stadion", loaded.Locations[0].Name)
	assert.Equal(t, "https://maps.example.org/halle", loaded.Locations[1].MapsURL)
}

func TestReplaceStatsUnknownDepartment(t *testing.T) {
	db := testDB(t)

	_, err := ReplaceStats(db, "missing", []StatInput{{Label: "x", Value: "y"}})
	assert.True(t, apierr.IsNotFound(err))
}

func TestRemoveTakesChildrenAlong(t *testing.T) {
	db := testDB(t)

	d, err := Create(db, CreateInput{Name: "Schwimmen"})
	require.NoError(t, err)

	_, err = ReplaceStats(db, d.Slug, []StatInput{{Label: "Bahnen", Value: "5"}})
	require.NoError(t, err)
	_, err = ReplaceLocations(db, d.Slug, []LocationInput{{Name: "Bad", Street: "Seeweg 2", City: "Musterstadt"}})
	require.NoError(t, err)

	_, err = Remove(db, d.Slug)
	require.NoError(t, err)

	var stats, locs int64
	require.NoError(t, db.Model(&DepartmentStat{}).Count(&stats).Error)
	require.NoError(t, db.Model(&DepartmentLocation{}).Count(&locs).Error)
	assert.EqualValues(t, 0, stats)
	assert.EqualValues(t, 0, locs)
}

func TestUpdateRenameMovesSlug(t *testing.T) {
	db := testDB(t)

	d, err := Create(db, CreateInput{Name: "Volleyball"})
	require.NoError(t, err)

	name := "Beachvolleyball"
	updated, err := Update(db, d.Slug, UpdateInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "beachvolleyball", updated.Slug)

	_, err = GetBySlug(db, "volleyball")
	assert.True(t, apierr.IsNotFound(err))
}
