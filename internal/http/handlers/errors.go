package handlers

import (
	"net/http"

	"relay/internal/domain"
	"relay/internal/http/middleware"
	"relay/internal/services"
	"relay/internal/utils"

	"github.com/gin-gonic/gin"
)

const msgDispatchFailed = "Failed to send confirmation message."

// RespondDomainError maps domain errors to the book-ride response shapes.
// Provider causes are logged, never returned.
func RespondDomainError(c *gin.Context, err error) {
	reqID := middleware.GetRequestID(c)
	switch {
	case domain.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": services.MsgFieldsRequired})
	case domain.IsDispatch(err):
		utils.LogEvent(reqID, "http", "respond", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": msgDispatchFailed})
	default:
		utils.LogEvent(reqID, "http", "respond", "unexpected: "+err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal error"})
	}
}
