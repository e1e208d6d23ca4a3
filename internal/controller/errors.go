package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"matelog-backend/internal/service"
	"matelog-backend/utilities"
)

// abortWithError maps service errors to HTTP statuses. Anything unrecognized
// is logged with the caller context and surfaced as a generic failure.
func abortWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrTopicLocked):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		userID, _ := utilities.CurrentUserID(c)
		utilities.Error("unexpected failure on %s %s (user %d): %v",
			c.Request.Method, c.Request.URL.Path, userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno del servidor"})
	}
}
