package categories

import (
	"net/http"

	"clubsite-api/database"
	"clubsite-api/internal/api/httpx"
	"clubsite-api/internal/domain/categories"

	"github.com/gin-gonic/gin"
)

type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// GET /categories
func ListCategories(c *gin.Context) {
	out, err := categories.List(database.DB)
	if err != nil {
		httpx.Fail(c, err, "Failed to load categories")
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /categories/:slug
func GetCategory(c *gin.Context) {
	cat, err := categories.GetBySlug(database.DB, c.Param("slug"))
	if err != nil {
		httpx.Fail(c, err, "Failed to load category")
		return
	}
	c.JSON(http.StatusOK, cat)
}

// POST /categories
func CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cat, err := categories.Create(database.DB, categories.CreateInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		httpx.Fail(c, err, "Failed to create category")
		return
	}
	c.JSON(http.StatusCreated, cat)
}

// PUT /categories/:slug
func UpdateCategory(c *gin.Context) {
	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cat, err := categories.Update(database.DB, c.Param("slug"), categories.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		httpx.Fail(c, err, "Failed to update category")
		return
	}
	c.JSON(http.StatusOK, cat)
}

// DELETE /categories/:slug
func DeleteCategory(c *gin.Context) {
	cat, err := categories.Remove(database.DB, c.Param("slug"))
	if err != nil {
		httpx.Fail(c, err, "Failed to delete category")
		return
	}
	c.JSON(http.StatusOK, cat)
}
