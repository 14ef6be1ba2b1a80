package blocks

import (
	"encoding/json"
	"net/http"

	"clubsite-api/database"
	"clubsite-api/internal/api/httpx"
	"clubsite-api/internal/domain/blocks"

	"github.com/gin-gonic/gin"
)

type ReplacePageRequest struct {
	Page   string         `json:"page" binding:"required"`
	Blocks []blocks.Input `json:"blocks"`
}

type UpdateBlockRequest struct {
	Page *string `json:"page"`
	Type *string `json:"type"`
	Sort *int    `json:"sort"`
	// Data and ParentID are raw so "null" (clear / detach to root) and
	// absent (no change) stay distinguishable.
	Data     json.RawMessage `json:"data"`
	ParentID json.RawMessage `json:"parent_id"`
}

// GET /blocks?page=
func GetBlocksByPage(c *gin.Context) {
	page := c.Query("page")
	if page == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'page' is required"})
		return
	}

	forest, err := blocks.GetByPage(database.DB, page)
	if err != nil {
		httpx.Fail(c, err, "Failed to load blocks")
		return
	}
	c.JSON(http.StatusOK, forest)
}

// GET /blocks/:id
func GetBlock(c *gin.Context) {
	b, err := blocks.GetByID(database.DB, c.Param("id"))
	if err != nil {
		httpx.Fail(c, err, "Failed to load block")
		return
	}
	c.JSON(http.StatusOK, b)
}

// POST /blocks: wholesale replacement of one page's forest.
func ReplacePage(c *gin.Context) {
	var req ReplacePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	forest, err := blocks.ReplacePage(database.DB, req.Page, req.Blocks)
	if err != nil {
		httpx.Fail(c, err, "Failed to replace page blocks")
		return
	}
	c.JSON(http.StatusCreated, forest)
}

// PATCH /blocks/:id
func UpdateBlock(c *gin.Context) {
	var req UpdateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := blocks.Patch{
		Page: req.Page,
		Type: req.Type,
		Sort: req.Sort,
	}
	if len(req.Data) > 0 {
		patch.DataSet = true
		if string(req.Data) != "null" {
			patch.Data = req.Data
		}
	}
	if len(req.ParentID) > 0 {
		patch.ParentIDSet = true
		if string(req.ParentID) != "null" {
			var parentID string
			if err := json.Unmarshal(req.ParentID, &parentID); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "parent_id must be a string or null"})
				return
			}
			patch.ParentID = &parentID
		}
	}

	b, err := blocks.UpdateNode(database.DB, c.Param("id"), patch)
	if err != nil {
		httpx.Fail(c, err, "Failed to update block")
		return
	}
	c.JSON(http.StatusOK, b)
}

// DELETE /blocks/:id: returns the removed subtree.
func DeleteBlock(c *gin.Context) {
	b, err := blocks.RemoveNode(database.DB, c.Param("id"))
	if err != nil {
		httpx.Fail(c, err, "Failed to delete block")
		return
	}
	c.JSON(http.StatusOK, b)
}
