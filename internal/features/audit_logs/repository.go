package audit_logs

import (
	"time"

	audit_logs_models "vendors-backend/internal/features/audit_logs/models"
	"vendors-backend/internal/storage"

	"github.com/google/uuid"
)

type AuditLogRepository struct{}

func (r *AuditLogRepository) Create(auditLog *audit_logs_models.AuditLog) error {
	if auditLog.ID == uuid.Nil {
		auditLog.ID = uuid.New()
	}

	if auditLog.CreatedAt.IsZero() {
		auditLog.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(auditLog).Error
}

func (r *AuditLogRepository) GetByVendor(
	vendorID int64,
	limit, offset int,
	beforeDate *time.Time,
) ([]*AuditLogDTO, error) {
	var auditLogs []*AuditLogDTO

	query := storage.GetDb().
		Table("audit_logs al").
		Select(`
			al.id,
			al.user_id,
			al.vendor_id,
			al.message,
			al.created_at,
			u.email AS user_email,
			u.display_name AS user_display_name,
			v.title AS vendor_title`).
		Joins("LEFT JOIN users u ON al.user_id = u.id").
		Joins("LEFT JOIN vendors v ON al.vendor_id = v.id").
		Where("al.vendor_id = ?", vendorID)

	if beforeDate != nil {
		query = query.Where("al.created_at < ?", *beforeDate)
	}

	err := query.
		Order("al.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&auditLogs).Error

	return auditLogs, err
}

func (r *AuditLogRepository) CountByVendor(vendorID int64, beforeDate *time.Time) (int64, error) {
	var count int64

	query := storage.GetDb().Model(&audit_logs_models.AuditLog{}).Where("vendor_id = ?", vendorID)
	if beforeDate != nil {
		query = query.Where("created_at < ?", *beforeDate)
	}

	err := query.Count(&count).Error
	return count, err
}
