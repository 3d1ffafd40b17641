package utils

import "github.com/gin-gonic/gin"

// ErrorResponse writes the documented error shape {"message": ...}
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"message": message})
}
