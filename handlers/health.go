package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheck returns server health status
// @Summary Health check
// @Description Check if the server is running
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Server is healthy"
// @Router /health [get]
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "prepwise-backend",
	})
}
