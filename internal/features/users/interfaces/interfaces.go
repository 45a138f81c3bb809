package users_interfaces

type AuditLogWriter interface {
	WriteAuditLog(message string, userID *int64, vendorID *int64)
}
