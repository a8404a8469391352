package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/talentclip/models"
)

// Health returns a handler for GET /api/v1/health.
func Health(storeBackend string, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.HealthResponse{
			Status:  "healthy",
			Uptime:  time.Since(startTime).Round(time.Second).String(),
			Store:   storeBackend,
			Version: models.Version,
		})
	}
}
