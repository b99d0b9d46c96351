// Package response centralizes the JSON error shapes shared by every
// handler. Success bodies vary per endpoint and are written inline; error
// bodies always carry a human-readable message and, for validation
// failures, a field-keyed errors map.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// FieldErrors maps a field name to a reason (string) or list of reasons
// ([]string, used for the accumulated password rules).
type FieldErrors map[string]any

func Validation(c *gin.Context, errs FieldErrors) {
	c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": errs})
}

func Conflict(c *gin.Context, message string, errs FieldErrors) {
	c.JSON(http.StatusConflict, gin.H{"message": message, "errors": errs})
}

func Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{"message": message})
}

// AbortUnauthorized is the middleware flavor; it stops the handler chain.
func AbortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": message})
}

func AbortForbidden(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied."})
}

func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{"message": message})
}

func TooManyRequests(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Too many requests"})
}

// ServerError hides the underlying error from the client; callers log it.
func ServerError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error. Please try again later."})
}
