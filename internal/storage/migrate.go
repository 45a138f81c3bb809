package storage

import (
	"fmt"

	audit_logs_models "vendors-backend/internal/features/audit_logs/models"
	memberships_models "vendors-backend/internal/features/memberships/models"
	users_models "vendors-backend/internal/features/users/models"
	vendors_models "vendors-backend/internal/features/vendors/models"

	"gorm.io/gorm"
)

// Migrate creates or extends every table and named index. Columns are
// only added, never dropped.
func Migrate(db *gorm.DB) error {
	models := []any{
		&users_models.User{},
		&vendors_models.Vendor{},
		&vendors_models.Term{},
		&vendors_models.TermAssignment{},
		&memberships_models.VendorMembership{},
		&audit_logs_models.AuditLog{},
	}

	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}
