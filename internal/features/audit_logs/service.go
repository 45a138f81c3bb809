package audit_logs

import (
	"log/slog"

	audit_logs_models "vendors-backend/internal/features/audit_logs/models"
	errors_utils "vendors-backend/internal/util/errors"
)

const (
	defaultAuditLogsLimit = 100
	maxAuditLogsLimit     = 1000
)

type AuditLogService struct {
	auditLogRepository *AuditLogRepository
	logger             *slog.Logger
}

// WriteAuditLog never fails the caller; a lost audit entry is logged.
func (s *AuditLogService) WriteAuditLog(message string, userID *int64, vendorID *int64) {
	auditLog := &audit_logs_models.AuditLog{
		UserID:   userID,
		VendorID: vendorID,
		Message:  message,
	}

	if err := s.auditLogRepository.Create(auditLog); err != nil {
		s.logger.Error("failed to write audit log", "message", message, "error", err)
	}
}

func (s *AuditLogService) GetVendorAuditLogs(
	vendorID int64,
	request *GetAuditLogsRequest,
) (*GetAuditLogsResponse, error) {
	limit := request.Limit
	if limit <= 0 {
		limit = defaultAuditLogsLimit
	}
	if limit > maxAuditLogsLimit {
		limit = maxAuditLogsLimit
	}

	offset := max(request.Offset, 0)

	auditLogs, err := s.auditLogRepository.GetByVendor(vendorID, limit, offset, request.BeforeDate)
	if err != nil {
		return nil, errors_utils.DependencyUnavailable("Failed to load audit logs", err)
	}

	total, err := s.auditLogRepository.CountByVendor(vendorID, request.BeforeDate)
	if err != nil {
		return nil, errors_utils.DependencyUnavailable("Failed to count audit logs", err)
	}

	if auditLogs == nil {
		auditLogs = []*AuditLogDTO{}
	}

	return &GetAuditLogsResponse{
		AuditLogs: auditLogs,
		Total:     total,
		Limit:     limit,
		Offset:    offset,
	}, nil
}
