package audit_logs

import (
	"net/http"

	memberships_services "vendors-backend/internal/features/memberships/services"
	users_middleware "vendors-backend/internal/features/users/middleware"
	errors_utils "vendors-backend/internal/util/errors"
	request_utils "vendors-backend/internal/util/request"

	"github.com/gin-gonic/gin"
)

type AuditLogController struct {
	auditLogService      *AuditLogService
	authorizationService *memberships_services.AuthorizationService
}

func (c *AuditLogController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/vendors/:id/audit-logs", c.GetVendorAuditLogs)
}

// GetVendorAuditLogs
// @Summary Vendor audit log
// @Tags audit-logs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vendor ID"
// @Param limit query int false "Page size (max 1000)"
// @Param offset query int false "Offset"
// @Param beforeDate query string false "Only entries created before this RFC3339 time"
// @Success 200 {object} GetAuditLogsResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /vendors/{id}/audit-logs [get]
func (c *AuditLogController) GetVendorAuditLogs(ctx *gin.Context) {
	vendorID, err := request_utils.ParseIDParam(ctx, "id", "Invalid vendor ID")
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	callerID := users_middleware.GetUserIDFromContext(ctx)
	if err := c.authorizationService.AuthorizeListMembers(callerID, vendorID); err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	var request GetAuditLogsRequest
	if err := ctx.ShouldBindQuery(&request); err != nil {
		errors_utils.RespondWithError(ctx, errors_utils.Validation("Invalid query parameters"))
		return
	}

	response, err := c.auditLogService.GetVendorAuditLogs(vendorID, &request)
	if err != nil {
		errors_utils.RespondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}
