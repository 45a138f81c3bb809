package memberships_models

import (
	"time"

	memberships_enums "vendors-backend/internal/features/memberships/enums"
)

type VendorMembership struct {
	ID         int64                        `json:"id"         gorm:"column:id;primaryKey;autoIncrement"`
	VendorID   int64                        `json:"vendorId"   gorm:"column:vendor_id;not null;uniqueIndex:idx_vendor_memberships_vendor_user,priority:1;index:idx_vendor_memberships_vendor_id"`
	UserID     int64                        `json:"userId"     gorm:"column:user_id;not null;uniqueIndex:idx_vendor_memberships_vendor_user,priority:2;index:idx_vendor_memberships_user_id"`
	Role       memberships_enums.VendorRole `json:"role"       gorm:"column:role;size:32;not null;index:idx_vendor_memberships_role"`
	AssignedAt time.Time                    `json:"assignedAt" gorm:"column:assigned_at;not null"`
}

func (VendorMembership) TableName() string {
	return "vendor_memberships"
}
