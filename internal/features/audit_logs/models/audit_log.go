package audit_logs_models

import (
	"time"

	"github.com/google/uuid"
)

type AuditLog struct {
	ID        uuid.UUID `json:"id"        gorm:"column:id;type:uuid;primaryKey"`
	UserID    *int64    `json:"userId"    gorm:"column:user_id;index:idx_audit_logs_user_id"`
	VendorID  *int64    `json:"vendorId"  gorm:"column:vendor_id;index:idx_audit_logs_vendor_id"`
	Message   string    `json:"message"   gorm:"column:message;type:text;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at;not null;index:idx_audit_logs_created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
