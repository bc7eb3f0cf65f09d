package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "notification relay running"})
}

// Routes lists the engine's registered routes.
func Routes(r *gin.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		routes := r.Routes()
		out := make([]gin.H, 0, len(routes))
		for _, rt := range routes {
			out = append(out, gin.H{
				"method": rt.Method,
				"path":   rt.Path,
			})
		}
		c.JSON(http.StatusOK, gin.H{"routes": out})
	}
}
