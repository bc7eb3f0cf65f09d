package handlers

import (
	"net/http"

	"relay/internal/http/middleware"
	"relay/internal/utils"

	"github.com/gin-gonic/gin"
)

// BindJSONOrError ensures body is present and parsable. A malformed body is
// answered like a request with missing fields.
func BindJSONOrError[T any](c *gin.Context, dst *T, message string) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": message})
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.LogEvent(middleware.GetRequestID(c), "http", "bind", "invalid json: "+err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": message})
		return false
	}
	return true
}
