package departments

import (
	"net/http"
	"strconv"

	"clubsite-api/database"
	"clubsite-api/internal/api/httpx"
	"clubsite-api/internal/domain/departments"

	"github.com/gin-gonic/gin"
)

type CreateDepartmentRequest struct {
	Name             string `json:"name" binding:"required"`
	ShortDescription string `json:"short_description" binding:"required"`
	LongDescription  string `json:"long_description" binding:"required"`
}

type UpdateDepartmentRequest struct {
	Name             *string `json:"name"`
	ShortDescription *string `json:"short_description"`
	LongDescription  *string `json:"long_description"`
}

// GET /departments
func ListDepartments(c *gin.Context) {
	out, err := departments.List(database.DB)
	if err != nil {
		httpx.Fail(c, err, "Failed to load departments")
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /departments/:slug
func GetDepartment(c *gin.Context) {
	d, err := departments.GetBySlug(database.DB, c.Param("slug"))
	if err != nil {
		httpx.Fail(c, err, "Failed to load department")
		return
	}
	c.JSON(http.StatusOK, d)
}

// POST /departments
func CreateDepartment(c *gin.Context) {
	var req CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d, err := departments.Create(database.DB, departments.CreateInput{
		Name:             req.Name,
		ShortDescription: req.ShortDescription,
		LongDescription:  req.LongDescription,
	})
	if err != nil {
		httpx.Fail(c, err, "Failed to create department")
		return
	}
	c.JSON(http.StatusCreated, d)
}

// PUT /departments/:slug
func UpdateDepartment(c *gin.Context) {
	var req UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d, err := departments.Update(database.DB, c.Param("slug"), departments.UpdateInput{
		Name:             req.Name,
		ShortDescription: req.ShortDescription,
		LongDescription:  req.LongDescription,
	})
	if err != nil {
		httpx.Fail(c, err, "Failed to update department")
		return
	}
	c.JSON(http.StatusOK, d)
}

// DELETE /departments/:slug
func DeleteDepartment(c *gin.Context) {
	d, err := departments.Remove(database.DB, c.Param("slug"))
	if err != nil {
		httpx.Fail(c, err, "Failed to delete department")
		return
	}
	c.JSON(http.StatusOK, d)
}

// PUT /departments/:slug/stats
func ReplaceStats(c *gin.Context) {
	var req []departments.StatInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := departments.ReplaceStats(database.DB, c.Param("slug"), req)
	if err != nil {
		httpx.Fail(c, err, "Failed to replace stats")
		return
	}
	c.JSON(http.StatusOK, out)
}

// PUT /departments/:slug/locations
func ReplaceLocations(c *gin.Context) {
	var req []departments.LocationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := departments.ReplaceLocations(database.DB, c.Param("slug"), req)
	if err != nil {
		httpx.Fail(c, err, "Failed to replace locations")
		return
	}
	c.JSON(http.StatusOK, out)
}

func groupID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("groupId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid training group id"})
		return 0, false
	}
	return uint(id), true
}

func itemID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}

type ReorderRequest struct {
	IDs []uint `json:"ids" binding:"required"`
}

// GET /departments/:slug/training-groups
func ListTrainingGroups(c *gin.Context) {
	out, err := departments.ListGroups(database.DB, c.Param("slug"))
	if err != nil {
		httpx.Fail(c, err, "Failed to load training groups")
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /departments/:slug/training-groups
func CreateTrainingGroup(c *gin.Context) {
	var req departments.GroupInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	g, err := departments.CreateGroup(database.DB, c.Param("slug"), req)
	if err != nil {
		httpx.Fail(c, err, "Failed to create training group")
		return
	}
	c.JSON(http.StatusCreated, g)
}

// PATCH /departments/:slug/training-groups/reorder
func ReorderTrainingGroups(c *gin.Context) {
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := departments.ReorderGroups(database.DB, c.Param("slug"), req.IDs)
	if err != nil {
		httpx.Fail(c, err, "Failed to reorder training groups")
		return
	}
	c.JSON(http.StatusOK, out)
}

// PATCH /departments/:slug/training-groups/:groupId
func UpdateTrainingGroup(c *gin.Context) {
	id, ok := groupID(c)
	if !ok {
		return
	}

	var req departments.GroupPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	g, err := departments.UpdateGroup(database.DB, c.Param("slug"), id, req)
	if err != nil {
		httpx.Fail(c, err, "Failed to update training group")
		return
	}
	c.JSON(http.StatusOK, g)
}

// DELETE /departments/:slug/training-groups/:groupId
func DeleteTrainingGroup(c *gin.Context) {
	id, ok := groupID(c)
	if !ok {
		return
	}

	g, err := departments.RemoveGroup(database.DB, c.Param("slug"), id)
	if err != nil {
		httpx.Fail(c, err, "Failed to delete training group")
		return
	}
	c.JSON(http.StatusOK, g)
}

// POST /departments/:slug/training-groups/:groupId/sessions
func CreateTrainingSession(c *gin.Context) {
	id, ok := groupID(c)
	if !ok {
		return
	}

	var req departments.SessionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s, err := departments.CreateSession(database.DB, c.Param("slug"), id, req)
	if err != nil {
		httpx.Fail(c, err, "Failed to create training session")
		return
	}
	c.JSON(http.StatusCreated, s)
}

// PATCH /departments/:slug/training-groups/:groupId/sessions/reorder
func ReorderTrainingSessions(c *gin.Context) {
	gid, ok := groupID(c)
	if !ok {
		return
	}

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := departments.ReorderSessions(database.DB, c.Param("slug"), gid, req.IDs)
	if err != nil {
		httpx.Fail(c, err, "Failed to reorder training sessions")
		return
	}
	c.JSON(http.StatusOK, out)
}

// PATCH /departments/:slug/training-groups/:groupId/sessions/:id
func UpdateTrainingSession(c *gin.Context) {
	gid, ok := groupID(c)
	if !ok {
		return
	}
	id, ok := itemID(c)
	if !ok {
		return
	}

	var req departments.SessionPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s, err := departments.UpdateSession(database.DB, c.Param("slug"), gid, id, req)
	if err != nil {
		httpx.Fail(c, err, "Failed to update training session")
		return
	}
	c.JSON(http.StatusOK, s)
}

// DELETE /departments/:slug/training-groups/:groupId/sessions/:id
func DeleteTrainingSession(c *gin.Context) {
	gid, ok := groupID(c)
	if !ok {
		return
	}
	id, ok := itemID(c)
	if !ok {
		return
	}

	s, err := departments.RemoveSession(database.DB, c.Param("slug"), gid, id)
	if err != nil {
		httpx.Fail(c, err, "Failed to delete training session")
		return
	}
	c.JSON(http.StatusOK, s)
}

// GET /departments/:slug/trainers
func ListTrainers(c *gin.Context) {
	out, err := departments.ListTrainers(database.DB, c.Param("slug"))
	if err != nil {
		httpx.Fail(c, err, "Failed to load trainers")
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /departments/:slug/trainers
func CreateTrainer(c *gin.Context) {
	var req departments.TrainerInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, err := departments.CreateTrainer(database.DB, c.Param("slug"), req)
	if err != nil {
		httpx.Fail(c, err, "Failed to create trainer")
		return
	}
	c.JSON(http.StatusCreated, t)
}

// PATCH /departments/:slug/trainers/:id
func UpdateTrainer(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}

	var req departments.TrainerPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, err := departments.UpdateTrainer(database.DB, c.Param("slug"), id, req)
	if err != nil {
		httpx.Fail(c, err, "Failed to update trainer")
		return
	}
	c.JSON(http.StatusOK, t)
}

// DELETE /departments/:slug/trainers/:id
func DeleteTrainer(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}

	t, err := departments.RemoveTrainer(database.DB, c.Param("slug"), id)
	if err != nil {
		httpx.Fail(c, err, "Failed to delete trainer")
		return
	}
	c.JSON(http.StatusOK, t)
}
