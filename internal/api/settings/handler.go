package settings

import (
	"errors"
	"net/http"

	"clubsite-api/database"
	"clubsite-api/internal/domain/settings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SetSettingRequest struct {
	Value string `json:"value" binding:"required"`
}

// GET /settings
func ListSettings(c *gin.Context) {
	var out []settings.Setting
	if err := database.DB.Order("key ASC").Find(&out).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /settings/:key
func GetSetting(c *gin.Context) {
	var s settings.Setting
	if err := database.DB.First(&s, "key = ?", c.Param("key")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Setting not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load setting"})
		return
	}
	c.JSON(http.StatusOK, s)
}

// PUT /settings/:key
func SetSetting(c *gin.Context) {
	var req SetSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s := settings.Setting{Key: c.Param("key"), Value: req.Value}
	err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&s).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save setting"})
		return
	}
	c.JSON(http.StatusOK, s)
}
