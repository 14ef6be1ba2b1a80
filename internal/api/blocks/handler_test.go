package blocks

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"clubsite-api/database"
	blocksdomain "clubsite-api/internal/domain/blocks"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&blocksdomain.Block{}))
	database.DB = db

	r := gin.New()
	r.PATCH("/blocks/:id", UpdateBlock)
	return r
}

func TestUpdateBlockClearsDataWithNull(t *testing.T) {
	r := setupRouter(t)

	forest, err := blocksdomain.ReplacePage(database.DB, "home", []blocksdomain.Input{
		{Type: "hero", Data: []byte(`{"title":"Willkommen"}`)},
	})
	require.NoError(t, err)
	require.Len(t, forest, 1)
	id := forest[0].ID

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/blocks/"+id, strings.NewReader(`{"data":null}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	b, err := blocksdomain.GetByID(database.DB, id)
	require.NoError(t, err)
	assert.Empty(t, b.Data)
}

func TestUpdateBlockAbsentDataLeavesItAlone(t *testing.T) {
	r := setupRouter(t)

	forest, err := blocksdomain.ReplacePage(database.DB, "home", []blocksdomain.Input{
		{Type: "hero", Data: []byte(`{"title":"Willkommen"}`)},
	})
	require.NoError(t, err)
	id := forest[0].ID

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/blocks/"+id, strings.NewReader(`{"sort":3}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	b, err := blocksdomain.GetByID(database.DB, id)
	require.NoError(t, err)
	assert.Equal(t, 3, b.Sort)
	assert.JSONEq(t, `{"title":"Willkommen"}`, string(b.Data))
}
