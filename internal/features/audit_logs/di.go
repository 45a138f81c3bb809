package audit_logs

import (
	"sync"

	memberships_services "vendors-backend/internal/features/memberships/services"
	users_services "vendors-backend/internal/features/users/services"
	vendors_services "vendors-backend/internal/features/vendors/services"
	"vendors-backend/internal/util/logger"
)

var auditLogRepository = &AuditLogRepository{}

var auditLogService = &AuditLogService{
	auditLogRepository,
	logger.GetLogger(),
}

var auditLogController = &AuditLogController{
	auditLogService,
	memberships_services.GetAuthorizationService(),
}

func GetAuditLogService() *AuditLogService {
	return auditLogService
}

func GetAuditLogController() *AuditLogController {
	return auditLogController
}

var setupOnce sync.Once

// SetupDependencies points every service that records activity at the
// audit log. It must run before the router starts.
func SetupDependencies() {
	setupOnce.Do(setupDependencies)
}

func setupDependencies() {
	users_services.GetUserService().SetAuditLogWriter(auditLogService)
	vendors_services.GetVendorService().SetAuditLogWriter(auditLogService)

	memberships_services.GetMembershipService().SetAuditLogWriter(auditLogService)
}
