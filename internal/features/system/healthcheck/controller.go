package system_healthcheck

import (
	"net/http"

	errors_utils "vendors-backend/internal/util/errors"

	"github.com/gin-gonic/gin"
)

type HealthcheckController struct {
	healthcheckService *HealthcheckService
}

func (c *HealthcheckController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/system/health", c.CheckHealth)
}

// CheckHealth
// @Summary Check system health
// @Description Reports whether the database answers
// @Tags system/health
// @Produce json
// @Success 200 {object} HealthcheckResponse
// @Failure 500 {object} map[string]string
// @Router /system/health [get]
func (c *HealthcheckController) CheckHealth(ctx *gin.Context) {
	if err := c.healthcheckService.IsHealthy(ctx.Request.Context()); err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, HealthcheckResponse{Status: "ok"})
}
