package events

import (
	"testing"
	"time"

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
	require.NoError(t, db.AutoMigrate(&Event{}))
	return db
}

func strPtr(s string) *string { return &s }

func date(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func TestExpandRangeOneOffEvents(t *testing.T) {
	inside := Event{
		ID:        1,
		Title:     "Vereinsversammlung",
		StartDate: date(2024, time.March, 10, 18),
		EndDate:   date(2024, time.March, 10, 20),
		Category:  CategoryMeeting,
	}
	outside := Event{
		ID:        2,
		Title:     "Sommerfest",
		StartDate: date(2024, time.July, 1, 12),
		EndDate:   date(2024, time.July, 1, 18),
		Category:  CategorySocial,
	}

	out := ExpandRange([]Event{inside, outside},
		date(2024, time.March, 1, 0), date(2024, time.March, 31, 0))

	require.Len(t, out, 1)
	assert.Equal(t, uint(1), out[0].ID)
	assert.False(t, out[0].IsRecurrenceInstance)
	assert.Nil(t, out[0].OriginalEventID)
}

func TestExpandRangeWeeklyRecurrence(t *testing.T) {
	training := Event{
		ID:         3,
		Title:      "Badminton Training",
		StartDate:  date(2024, time.March, 5, 18), // a Tuesday
		EndDate:    date(2024, time.March, 5, 20),
		Recurrence: strPtr("FREQ=WEEKLY"),
		Category:   CategorySport,
	}

	out := ExpandRange([]Event{training},
		date(2024, time.March, 1, 0), date(2024, time.March, 21, 0))

	require.Len(t, out, 3)
	for i, inst := range out {
		assert.True(t, inst.IsRecurrenceInstance)
		require.NotNil(t, inst.OriginalEventID)
		assert.Equal(t, uint(3), *inst.OriginalEventID)
		// Each occurrence keeps the original two-hour duration.
		assert.Equal(t, 2*time.Hour, inst.EndDate.Sub(inst.StartDate))
		want := date(2024, time.March, 5+7*i, 18)
		assert.True(t, inst.StartDate.Equal(want), "occurrence %d: got %s want %s", i, inst.StartDate, want)
	}
}

func TestExpandRangeInvalidRuleFallsBack(t *testing.T) {
	broken := Event{
		ID:         4,
		Title:      "Kaputt",
		StartDate:  date(2024, time.March, 5, 18),
		EndDate:    date(2024, time.March, 5, 20),
		Recurrence: strPtr("FREQ=NONSENSE;;;"),
		Category:   CategoryOther,
	}

	out := ExpandRange([]Event{broken},
		date(2024, time.March, 1, 0), date(2024, time.March, 31, 0))

	require.Len(t, out, 1)
	assert.False(t, out[0].IsRecurrenceInstance)
	assert.True(t, out[0].StartDate.Equal(broken.StartDate))
}

func TestExpandRangeSortsByStart(t *testing.T) {
	weekly := Event{
		ID:         5,
		Title:      "Training",
		StartDate:  date(2024, time.March, 4, 18),
		EndDate:    date(2024, time.March, 4, 19),
		Recurrence: strPtr("FREQ=WEEKLY"),
		Category:   CategorySport,
	}
	oneOff := Event{
		ID:        6,
		Title:     "Turnier",
		StartDate: date(2024, time.March, 9, 9),
		EndDate:   date(2024, time.March, 9, 17),
		Category:  CategorySport,
	}

	out := ExpandRange([]Event{weekly, oneOff},
		date(2024, time.March, 1, 0), date(2024, time.March, 15, 0))

	require.Len(t, out, 3)
	for i := 1; i < len(out); i++ {
		assert.False(t, out[i].StartDate.Before(out[i-1].StartDate),
			"instances must be ordered by start date")
	}
	assert.Equal(t, uint(6), out[1].ID)
}

func TestRangeQuery(t *testing.T) {
	db := testDB(t)

	weekly := Event{
		Title:      "Training",
		StartDate:  date(2024, time.March, 5, 18),
		EndDate:    date(2024, time.March, 5, 20),
		Recurrence: strPtr("FREQ=WEEKLY"),
		Category:   CategorySport,
	}
	meeting := Event{
		Title:     "Vorstandssitzung",
		StartDate: date(2024, time.March, 12, 19),
		EndDate:   date(2024, time.March, 12, 21),
		Category:  CategoryMeeting,
	}
	past := Event{
		Title:     "Altes Event",
		StartDate: date(2023, time.January, 1, 10),
		EndDate:   date(2023, time.January, 1, 12),
		Category:  CategorySocial,
	}
	require.NoError(t, db.Create(&weekly).Error)
	require.NoError(t, db.Create(&meeting).Error)
	require.NoError(t, db.Create(&past).Error)

	out, err := Range(db, date(2024, time.March, 1, 0), date(2024, time.March, 14, 0), "")
	require.NoError(t, err)
	require.Len(t, out, 3) // two training occurrences plus the meeting

	filtered, err := Range(db, date(2024, time.March, 1, 0), date(2024, time.March, 14, 0), CategoryMeeting)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Vorstandssitzung", filtered[0].Title)
}

func TestEventCRUD(t *testing.T) {
	db := testDB(t)

	e, err := Create(db, CreateInput{
		Title:     "Turnier",
		StartDate: date(2024, time.May, 1, 9),
		EndDate:   date(2024, time.May, 1, 17),
		Category:  CategorySport,
	})
	require.NoError(t, err)
	require.NotZero(t, e.ID)

	_, err = Create(db, CreateInput{
		Title:     "Kaputt",
		StartDate: date(2024, time.May, 2, 9),
		EndDate:   date(2024, time.May, 1, 9),
		Category:  CategorySport,
	})
	require.Error(t, err, "end before start must be rejected")

	_, err = Create(db, CreateInput{
		Title:     "Kaputt",
		StartDate: date(2024, time.May, 1, 9),
		EndDate:   date(2024, time.May, 1, 10),
		Category:  "Quatsch",
	})
	require.Error(t, err, "unknown category must be rejected")

	title := "Sommerturnier"
	updated, err := Update(db, e.ID, UpdateInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Sommerturnier", updated.Title)

	removed, err := Remove(db, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.ID, removed.ID)

	_, err = GetByID(db, e.ID)
	require.Error(t, err)
}

func TestUpdateRejectsInvertedInterval(t *testing.T) {
	db := testDB(t)

	e, err := Create(db, CreateInput{
		Title:     "Training",
		StartDate: date(2024, time.May, 1, 18),
		EndDate:   date(2024, time.May, 1, 20),
		Category:  CategorySport,
	})
	require.NoError(t, err)

	// Patching only the end below the existing start must fail.
	badEnd := date(2024, time.May, 1, 17)
	_, err = Update(db, e.ID, UpdateInput{EndDate: &badEnd})
	require.Error(t, err)
	assert.Equal(t, 400, apierr.Status(err))

	// Patching only the start past the existing end must fail too.
	badStart := date(2024, time.May, 1, 21)
	_, err = Update(db, e.ID, UpdateInput{StartDate: &badStart})
	require.Error(t, err)
	assert.Equal(t, 400, apierr.Status(err))

	// Moving both sides together is fine.
	newStart := date(2024, time.May, 2, 18)
	newEnd := date(2024, time.May, 2, 20)
	updated, err := Update(db, e.ID, UpdateInput{StartDate: &newStart, EndDate: &newEnd})
	require.NoError(t, err)
	assert.True(t, updated.StartDate.Equal(newStart))
	assert.True(t, updated.EndDate.Equal(newEnd))
}

func TestUpdateClearsNullableFields(t *testing.T) {
	db := testDB(t)

	e, err := Create(db, CreateInput{
		Title:       "Training",
		Description: strPtr("mit Beschreibung"),
		StartDate:   date(2024, time.May, 1, 18),
		EndDate:     date(2024, time.May, 1, 20),
		Location:    strPtr("Halle 1"),
		Recurrence:  strPtr("FREQ=WEEKLY"),
		Category:    CategorySport,
	})
	require.NoError(t, err)

	// Set flags with nil values null the columns.
	updated, err := Update(db, e.ID, UpdateInput{
		DescriptionSet: true,
		LocationSet:    true,
		RecurrenceSet:  true,
	})
	require.NoError(t, err)
	assert.Nil(t, updated.Description)
	assert.Nil(t, updated.Location)
	assert.Nil(t, updated.Recurrence)

	// Unset flags leave values alone.
	loc := "Halle 2"
	updated, err = Update(db, e.ID, UpdateInput{Location: &loc, LocationSet: true})
	require.NoError(t, err)
	require.NotNil(t, updated.Location)
	assert.Equal(t, "Halle 2", *updated.Location)
	assert.Nil(t, updated.Description)
}
