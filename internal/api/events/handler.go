package events

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"clubsite-api/database"
	"clubsite-api/internal/api/httpx"
	"clubsite-api/internal/domain/events"

	"github.com/gin-gonic/gin"
)

type CreateEventRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	StartDate   string  `json:"start_date" binding:"required"`
	EndDate     string  `json:"end_date" binding:"required"`
	IsFullDay   bool    `json:"is_full_day"`
	Location    *string `json:"location"`
	Recurrence  *string `json:"recurrence"`
	Category    string  `json:"category" binding:"required"`
}

type UpdateEventRequest struct {
	Title     *string `json:"title"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	IsFullDay *bool   `json:"is_full_day"`
	Category  *string `json:"category"`
	// Raw so "null" (clear the field) and absent (no change) stay
	// distinguishable.
	Description json.RawMessage `json:"description"`
	Location    json.RawMessage `json:"location"`
	Recurrence  json.RawMessage `json:"recurrence"`
}

// patchString decodes a raw optional-string field. set reports whether the
// field was present at all; a JSON null yields set with a nil value.
func patchString(raw json.RawMessage) (value *string, set bool, err error) {
	if len(raw) == 0 {
		return nil, false, nil
	}
	if string(raw) == "null" {
		return nil, true, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, false, err
	}
	return &s, true, nil
}

func mustID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event id"})
		return 0, false
	}
	return uint(id), true
}

func parseDate(c *gin.Context, value string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dates must be RFC 3339 timestamps"})
		return time.Time{}, false
	}
	return t, true
}

// GET /events?start=&end=&category=
func ListEvents(c *gin.Context) {
	start, ok := parseDate(c, c.Query("start"))
	if !ok {
		return
	}
	end, ok := parseDate(c, c.Query("end"))
	if !ok {
		return
	}
	category := c.Query("category")
	if category != "" && !events.ValidCategory(category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown event category"})
		return
	}

	out, err := events.Range(database.DB, start, end, category)
	if err != nil {
		httpx.Fail(c, err, "Failed to load events")
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /events/:id
func GetEvent(c *gin.Context) {
	id, ok := mustID(c)
	if !ok {
		return
	}

	e, err := events.GetByID(database.DB, id)
	if err != nil {
		httpx.Fail(c, err, "Failed to load event")
		return
	}
	c.JSON(http.StatusOK, e)
}

// POST /events
func CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, ok := parseDate(c, req.StartDate)
	if !ok {
		return
	}
	end, ok := parseDate(c, req.EndDate)
	if !ok {
		return
	}

	e, err := events.Create(database.DB, events.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   start,
		EndDate:     end,
		IsFullDay:   req.IsFullDay,
		Location:    req.Location,
		Recurrence:  req.Recurrence,
		Category:    req.Category,
	})
	if err != nil {
		httpx.Fail(c, err, "Failed to create event")
		return
	}
	c.JSON(http.StatusCreated, e)
}

// PUT /events/:id
func UpdateEvent(c *gin.Context) {
	id, ok := mustID(c)
	if !ok {
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := events.UpdateInput{
		Title:     req.Title,
		IsFullDay: req.IsFullDay,
		Category:  req.Category,
	}
	var err error
	if in.Description, in.DescriptionSet, err = patchString(req.Description); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "description must be a string or null"})
		return
	}
	if in.Location, in.LocationSet, err = patchString(req.Location); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "location must be a string or null"})
		return
	}
	if in.Recurrence, in.RecurrenceSet, err = patchString(req.Recurrence); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recurrence must be a string or null"})
		return
	}
	if req.StartDate != nil {
		t, ok := parseDate(c, *req.StartDate)
		if !ok {
			return
		}
		in.StartDate = &t
	}
	if req.EndDate != nil {
		t, ok := parseDate(c, *req.EndDate)
		if !ok {
			return
		}
		in.EndDate = &t
	}

	e, err := events.Update(database.DB, id, in)
	if err != nil {
		httpx.Fail(c, err, "Failed to update event")
		return
	}
	c.JSON(http.StatusOK, e)
}

// DELETE /events/:id
func DeleteEvent(c *gin.Context) {
	id, ok := mustID(c)
	if !ok {
		return
	}

	e, err := events.Remove(database.DB, id)
	if err != nil {
		httpx.Fail(c, err, "Failed to delete event")
		return
	}
	c.JSON(http.StatusOK, e)
}
