package handler

import "github.com/gin-gonic/gin"

// respondError writes the uniform failure body. Storage detail never
// reaches the client; callers log it and pass a generic message here.
func respondError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "error": msg})
}
