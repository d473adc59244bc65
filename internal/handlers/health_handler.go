package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler serves the health endpoints.
type HealthHandler struct{}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// HealthCheck handles GET /health
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "civilsoul-certificates",
		"version": "1.0.0",
	})
}

// ReadinessCheck handles GET /health/ready
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	// Dependency checks (DynamoDB, Kafka, ledger) could be wired here
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"dependencies": gin.H{
			"database": "ok",
			"kafka":    "ok",
			"ledger":   "ok",
		},
	})
}

// LivenessCheck handles GET /health/live
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
