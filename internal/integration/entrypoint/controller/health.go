// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthController handles health check endpoints.
type HealthController struct {
	dbHealthCheck func() bool
}

// NewHealthController creates a new health controller instance.
// dbHealthCheck may be nil, in which case the database status is not reported.
func NewHealthController(dbHealthCheck func() bool) *HealthController {
	return &HealthController{dbHealthCheck: dbHealthCheck}
}

// Check handles GET /health requests.
func (c *HealthController) Check(ctx *gin.Context) {
	status := http.StatusOK
	response := gin.H{"status": "ok"}

	if c.dbHealthCheck != nil {
		if c.dbHealthCheck() {
			response["database"] = "up"
		} else {
			response["database"] = "down"
			response["status"] = "degraded"
			status = http.StatusServiceUnavailable
		}
	}

	ctx.JSON(status, response)
}
