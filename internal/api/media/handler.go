package media

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"clubsite-api/database"
	"clubsite-api/internal/domain/media"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateMediaRequest struct {
	Filename     string          `json:"filename" binding:"required"`
	OriginalName string          `json:"original_name" binding:"required"`
	Path         string          `json:"path" binding:"required"`
	Mimetype     string          `json:"mimetype" binding:"required"`
	Size         int64           `json:"size" binding:"required"`
	Type         string          `json:"type"`
	Thumbnails   json.RawMessage `json:"thumbnails"`
}

// GET /media?page=&limit=
func ListMedia(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "24"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 24
	}

	var total int64
	if err := database.DB.Model(&media.Media{}).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load media"})
		return
	}

	var rows []media.Media
	if err := database.DB.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load media"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": rows,
		"meta": gin.H{"total": total, "page": page, "limit": limit},
	})
}

// GET /media/:id
func GetMedia(c *gin.Context) {
	var m media.Media
	if err := database.DB.First(&m, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Media not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load media"})
		return
	}
	c.JSON(http.StatusOK, m)
}

// POST /media
func CreateMedia(c *gin.Context) {
	var req CreateMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Type == "" {
		req.Type = "file"
	}

	m := media.Media{
		Filename:     req.Filename,
		OriginalName: req.OriginalName,
		Path:         req.Path,
		Mimetype:     req.Mimetype,
		Size:         req.Size,
		Type:         req.Type,
		Thumbnails:   req.Thumbnails,
	}
	if err := database.DB.Create(&m).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create media"})
		return
	}
	c.JSON(http.StatusCreated, m)
}

// DELETE /media/:id
func DeleteMedia(c *gin.Context) {
	res := database.DB.Delete(&media.Media{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete media"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Media not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
