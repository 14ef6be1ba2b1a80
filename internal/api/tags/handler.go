package tags

import (
	"net/http"

	"clubsite-api/database"
	"clubsite-api/internal/api/httpx"
	"clubsite-api/internal/domain/tags"

	"github.com/gin-gonic/gin"
)

type TagRequest struct {
	Name string `json:"name" binding:"required"`
}

// GET /tags
func ListTags(c *gin.Context) {
	out, err := tags.List(database.DB)
	if err != nil {
		httpx.Fail(c, err, "Failed to load tags")
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /tags/:slug
func GetTag(c *gin.Context) {
	t, err := tags.GetBySlug(database.DB, c.Param("slug"))
	if err != nil {
		httpx.Fail(c, err, "Failed to load tag")
		return
	}
	c.JSON(http.StatusOK, t)
}

// POST /tags
func CreateTag(c *gin.Context) {
	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, err := tags.Create(database.DB, req.Name)
	if err != nil {
		httpx.Fail(c, err, "Failed to create tag")
		return
	}
	c.JSON(http.StatusCreated, t)
}

// PUT /tags/:slug
func UpdateTag(c *gin.Context) {
	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, err := tags.Update(database.DB, c.Param("slug"), req.Name)
	if err != nil {
		httpx.Fail(c, err, "Failed to update tag")
		return
	}
	c.JSON(http.StatusOK, t)
}

// DELETE /tags/:slug
func DeleteTag(c *gin.Context) {
	t, err := tags.Remove(database.DB, c.Param("slug"))
	if err != nil {
		httpx.Fail(c, err, "Failed to delete tag")
		return
	}
	c.JSON(http.StatusOK, t)
}
