package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	resp "tripnect/internal/models/response_models"
	"tripnect/internal/services"
)

type HealthController struct {
	healthService services.HealthServiceInterface
}

func NewHealthController(healthService services.HealthServiceInterface) *HealthController {
	return &HealthController{healthService: healthService}
}

// Health godoc
// @Summary Dependency health
// @Description Database, generation provider and configuration status. DEGRADED still answers 200.
// @Tags Health
// @Produce json
// @Success 200 {object} response_models.HealthReport
// @Failure 503 {object} response_models.HealthReport
// @Router /health [get]
func (h *HealthController) Health(c *gin.Context) {
	report := h.healthService.Check(c.Request.Context())
	code := http.StatusOK
	if report.Status == resp.HealthError {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, report)
}

// Live godoc
// @Summary Liveness probe
// @Tags Health
// @Success 200
// @Router /health/live [get]
func (h *HealthController) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": resp.HealthOK})
}
