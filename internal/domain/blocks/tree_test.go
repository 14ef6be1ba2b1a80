package blocks

import (
	"encoding/json"
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
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, db.AutoMigrate(&Block{}))
	return db
}

func raw(s string) json.RawMessage { return json.RawMessage(s) }

func sampleForest() []Input {
	return []Input{
		{
			Type: "section",
			Data: raw(`{"background":"light"}`),
			Children: []Input{
				{
					Type: "columns",
					Children: []Input{
						{Type: "column", Children: []Input{
							{Type: "headline", Data: raw(`{"text":"Willkommen"}`)},
							{Type: "paragraph", Data: raw(`{"text":"Hallo"}`)},
						}},
						{Type: "column", Children: []Input{
							{Type: "image", Data: raw(`{"src":"/media/1.jpg"}`)},
						}},
					},
				},
			},
		},
		{Type: "section", Data: raw(`{"background":"dark"}`)},
	}
}

func TestReplacePageRoundTrip(t *testing.T) {
	db := testDB(t)

	created, err := ReplacePage(db, "home", sampleForest())
	require.NoError(t, err)
	require.Len(t, created, 2)

	forest, err := GetByPage(db, "home")
	require.NoError(t, err)
	require.Len(t, forest, 2)

	root := forest[0]
	assert.Equal(t, "section", root.Type)
	assert.Equal(t, 0, root.Sort)
	assert.Nil(t, root.ParentID)
	assert.JSONEq(t, `{"background":"light"}`, string(root.Data))
	require.Len(t, root.Children, 1)

	cols := root.Children[0]
	assert.Equal(t, "columns", cols.Type)
	require.Len(t, cols.Children, 2)

	left := cols.Children[0]
	require.Len(t, left.Children, 2)
	assert.Equal(t, "headline", left.Children[0].Type)
	assert.Equal(t, "paragraph", left.Children[1].Type)
	assert.JSONEq(t, `{"text":"Willkommen"}`, string(left.Children[0].Data))

	// Every node of the tree carries the page value.
	assert.Equal(t, "home", left.Children[1].Page)
	require.NotNil(t, left.Children[0].ParentID)
	assert.Equal(t, left.ID, *left.Children[0].ParentID)

	assert.Equal(t, 1, forest[1].Sort)
	assert.Empty(t, forest[1].Children)
}

func TestSiblingOrderFollowsListPosition(t *testing.T) {
	db := testDB(t)

	_, err := ReplacePage(db, "home", []Input{
		{Type: "section", Children: []Input{
			{Type: "headline"},
			{Type: "paragraph"},
			{Type: "image"},
		}},
	})
	require.NoError(t, err)

	forest, err := GetByPage(db, "home")
	require.NoError(t, err)
	require.Len(t, forest, 1)

	kids := forest[0].Children
	require.Len(t, kids, 3)
	for i, wantType := range []string{"headline", "paragraph", "image"} {
		assert.Equal(t, wantType, kids[i].Type)
		assert.Equal(t, i, kids[i].Sort)
	}
}

func TestReplacePageClearsPriorState(t *testing.T) {
	db := testDB(t)

	first, err := ReplacePage(db, "home", sampleForest())
	require.NoError(t, err)

	var oldIDs []string
	var collect func(bs []Block)
	collect = func(bs []Block) {
		for _, b := range bs {
			oldIDs = append(oldIDs, b.ID)
			collect(b.Children)
		}
	}
	collect(first)
	require.NotEmpty(t, oldIDs)

	second, err := ReplacePage(db, "home", []Input{{Type: "hero"}})
	require.NoError(t, err)
	require.Len(t, second, 1)

	forest, err := GetByPage(db, "home")
	require.NoError(t, err)
	require.Len(t, forest, 1)
	assert.Equal(t, "hero", forest[0].Type)

	for _, id := range oldIDs {
		_, err := GetByID(db, id)
		assert.True(t, apierr.IsNotFound(err), "old block %s should be gone", id)
	}
}

func TestReplacePageLeavesOtherPagesAlone(t *testing.T) {
	db := testDB(t)

	_, err := ReplacePage(db, "home", []Input{{Type: "section"}})
	require.NoError(t, err)
	_, err = ReplacePage(db, "about", []Input{{Type: "hero"}})
	require.NoError(t, err)

	home, err := GetByPage(db, "home")
	require.NoError(t, err)
	require.Len(t, home, 1)
	assert.Equal(t, "section", home[0].Type)
}

func TestReplacePageRejectsEmptyType(t *testing.T) {
	db := testDB(t)

	_, err := ReplacePage(db, "home", []Input{{Type: ""}})
	require.Error(t, err)
}

func TestGetByPageUnknownPage(t *testing.T) {
	db := testDB(t)

	forest, err := GetByPage(db, "nope")
	require.NoError(t, err)
	assert.Empty(t, forest)
}

func TestGetByIDNotFound(t *testing.T) {
	db := testDB(t)

	_, err := GetByID(db, "00000000-0000-0000-0000-000000000000")
	assert.True(t, apierr.IsNotFound(err))
}

func TestRemoveNodeCascades(t *testing.T) {
	db := testDB(t)

	created, err := ReplacePage(db, "home", []Input{
		{Type: "section", Children: []Input{
			{Type: "columns", Children: []Input{
				{Type: "headline"},
			}},
		}},
	})
	require.NoError(t, err)

	root := created[0]
	child := root.Children[0]
	grandchild := child.Children[0]

	snapshot, err := RemoveNode(db, root.ID)
	require.NoError(t, err)

	// The snapshot reflects the tree as it was before deletion.
	assert.Equal(t, root.ID, snapshot.ID)
	require.Len(t, snapshot.Children, 1)
	require.Len(t, snapshot.Children[0].Children, 1)
	assert.Equal(t, grandchild.ID, snapshot.Children[0].Children[0].ID)

	forest, err := GetByPage(db, "home")
	require.NoError(t, err)
	assert.Empty(t, forest)

	_, err = GetByID(db, child.ID)
	assert.True(t, apierr.IsNotFound(err))
	_, err = GetByID(db, grandchild.ID)
	assert.True(t, apierr.IsNotFound(err))
}

func TestRemoveNodeLeavesSiblings(t *testing.T) {
	db := testDB(t)

	created, err := ReplacePage(db, "home", []Input{
		{Type: "section"},
		{Type: "hero"},
	})
	require.NoError(t, err)

	_, err = RemoveNode(db, created[0].ID)
	require.NoError(t, err)

	forest, err := GetByPage(db, "home")
	require.NoError(t, err)
	require.Len(t, forest, 1)
	assert.Equal(t, "hero", forest[0].Type)
}

func TestRemoveNodeNotFound(t *testing.T) {
	db := testDB(t)

	_, err := RemoveNode(db, "missing")
	assert.True(t, apierr.IsNotFound(err))
}

func TestUpdateNodeFields(t *testing.T) {
	db := testDB(t)

	created, err := ReplacePage(db, "home", []Input{{Type: "paragraph", Data: raw(`{"text":"a"}`)}})
	require.NoError(t, err)

	newType := "headline"
	newSort := 5
	newData := raw(`{"text":"b"}`)

	b, err := UpdateNode(db, created[0].ID, Patch{Type: &newType, Sort: &newSort, Data: newData, DataSet: true})
	require.NoError(t, err)
	assert.Equal(t, "headline", b.Type)
	assert.Equal(t, 5, b.Sort)
	assert.JSONEq(t, `{"text":"b"}`, string(b.Data))
}

func TestUpdateNodeClearsData(t *testing.T) {
	db := testDB(t)

	created, err := ReplacePage(db, "home", []Input{{Type: "paragraph", Data: raw(`{"text":"a"}`)}})
	require.NoError(t, err)

	// DataSet with no payload nulls the column.
	b, err := UpdateNode(db, created[0].ID, Patch{DataSet: true})
	require.NoError(t, err)
	assert.Empty(t, b.Data)

	reloaded, err := GetByID(db, created[0].ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Data)

	// An unset Data leaves existing content alone.
	other, err := ReplacePage(db, "about", []Input{{Type: "paragraph", Data: raw(`{"text":"keep"}`)}})
	require.NoError(t, err)

	newSort := 3
	b, err = UpdateNode(db, other[0].ID, Patch{Sort: &newSort})
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"keep"}`, string(b.Data))
}

func TestUpdateNodeReparent(t *testing.T) {
	db := testDB(t)

	created, err := ReplacePage(db, "home", []Input{
		{Type: "section", Children: []Input{{Type: "paragraph"}}},
		{Type: "section"},
	})
	require.NoError(t, err)

	para := created[0].Children[0]
	target := created[1]

	b, err := UpdateNode(db, para.ID, Patch{ParentID: &target.ID, ParentIDSet: true})
	require.NoError(t, err)
	require.NotNil(t, b.ParentID)
	assert.Equal(t, target.ID, *b.ParentID)

	// Detach back to root level.
	b, err = UpdateNode(db, para.ID, Patch{ParentIDSet: true})
	require.NoError(t, err)
	assert.Nil(t, b.ParentID)

	forest, err := GetByPage(db, "home")
	require.NoError(t, err)
	assert.Len(t, forest, 3)
}

func TestUpdateNodeReparentValidation(t *testing.T) {
	db := testDB(t)

	created, err := ReplacePage(db, "home", []Input{
		{Type: "section", Children: []Input{{Type: "columns", Children: []Input{{Type: "column"}}}}},
	})
	require.NoError(t, err)

	root := created[0]
	grandchild := root.Children[0].Children[0]

	missing := "00000000-0000-0000-0000-000000000000"
	_, err = UpdateNode(db, root.ID, Patch{ParentID: &missing, ParentIDSet: true})
	assert.True(t, apierr.IsNotFound(err))

	_, err = UpdateNode(db, root.ID, Patch{ParentID: &root.ID, ParentIDSet: true})
	require.Error(t, err)

	// A node cannot be moved under its own descendant.
	_, err = UpdateNode(db, root.ID, Patch{ParentID: &grandchild.ID, ParentIDSet: true})
	require.Error(t, err)
}

func TestUpdateNodePageCascadesToDescendants(t *testing.T) {
	db := testDB(t)

	created, err := ReplacePage(db, "home", []Input{
		{Type: "section", Children: []Input{{Type: "columns", Children: []Input{{Type: "column"}}}}},
	})
	require.NoError(t, err)

	root := created[0]
	newPage := "about"
	b, err := UpdateNode(db, root.ID, Patch{Page: &newPage})
	require.NoError(t, err)
	assert.Equal(t, "about", b.Page)

	about, err := GetByPage(db, "about")
	require.NoError(t, err)
	require.Len(t, about, 1)
	require.Len(t, about[0].Children, 1)
	assert.Equal(t, "about", about[0].Children[0].Page)
	require.Len(t, about[0].Children[0].Children, 1)
	assert.Equal(t, "about", about[0].Children[0].Children[0].Page)

	home, err := GetByPage(db, "home")
	require.NoError(t, err)
	assert.Empty(t, home)
}

func TestUpdateNodeNotFound(t *testing.T) {
	db := testDB(t)

	s := "section"
	_, err := UpdateNode(db, "missing", Patch{Type: &s})
	assert.True(t, apierr.IsNotFound(err))
}
