package contacts

import (
	"errors"
	"net/http"

	"clubsite-api/database"
	"clubsite-api/internal/domain/contacts"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateContactPersonRequest struct {
	FirstName string  `json:"first_name" binding:"required"`
	LastName  string  `json:"last_name" binding:"required"`
	Type      string  `json:"type" binding:"required"`
	Email     *string `json:"email"`
	Address   *string `json:"address"`
	Phone     string  `json:"phone" binding:"required"`
}

type UpdateContactPersonRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Type      *string `json:"type"`
	Email     *string `json:"email"`
	Address   *string `json:"address"`
	Phone     *string `json:"phone"`
}

// GET /contact-persons
func ListContactPersons(c *gin.Context) {
	var out []contacts.ContactPerson
	if err := database.DB.Order("last_name ASC").Find(&out).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load contact persons"})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /contact-persons/:id
func GetContactPerson(c *gin.Context) {
	var cp contacts.ContactPerson
	if err := database.DB.First(&cp, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contact person not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load contact person"})
		return
	}
	c.JSON(http.StatusOK, cp)
}

// POST /contact-persons
func CreateContactPerson(c *gin.Context) {
	var req CreateContactPersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cp := contacts.ContactPerson{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Type:      req.Type,
		Email:     req.Email,
		Address:   req.Address,
		Phone:     req.Phone,
	}
	if err := database.DB.Create(&cp).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create contact person"})
		return
	}
	c.JSON(http.StatusCreated, cp)
}

// PUT /contact-persons/:id
func UpdateContactPerson(c *gin.Context) {
	var req UpdateContactPersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var cp contacts.ContactPerson
	if err := database.DB.First(&cp, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contact person not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load contact person"})
		return
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&cp).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update contact person"})
			return
		}
	}

	c.JSON(http.StatusOK, cp)
}

// DELETE /contact-persons/:id
func DeleteContactPerson(c *gin.Context) {
	res := database.DB.Delete(&contacts.ContactPerson{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete contact person"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contact person not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
