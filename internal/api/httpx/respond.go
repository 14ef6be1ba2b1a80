package httpx

import (
	"net/http"

	"clubsite-api/internal/platform/apierr"

	"github.com/gin-gonic/gin"
)

// Fail maps a domain error to its status code. Unknown errors get the
// fallback message so internals never leak to clients.
func Fail(c *gin.Context, err error, fallback string) {
	status := apierr.Status(err)
	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": fallback})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
