package handler

import (
	"net/http"

	"reviewhub/internal/httpapi/apperr"

	"github.com/gin-gonic/gin"
)

// abortWithError maps the error taxonomy onto HTTP statuses. Internal
// details never reach the client.
func abortWithError(c *gin.Context, err error) {
	switch apperr.KindOf(err) {
	case apperr.Validation:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperr.NotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperr.Conflict:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case apperr.Forbidden:
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case apperr.Unauthorized:
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
	c.Abort()
}
