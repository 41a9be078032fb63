package api

import (
	"alcyxob/workout-tracker/internal/repository"
	"net/http"

	"github.com/gin-gonic/gin"
)

// respondSuccess writes the standard single-resource envelope.
func respondSuccess(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// respondList writes the standard list envelope. Count is the number of
// items on this page, not the total match count.
func respondList(c *gin.Context, count int, pagination repository.Pagination, data any) {
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"count":      count,
		"pagination": pagination,
		"data":       data,
	})
}

// respondDeleted writes the delete envelope: success with an empty object.
func respondDeleted(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{}})
}

// abortWithError returns the JSON error envelope and aborts the request.
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"success": false, "error": message})
}
