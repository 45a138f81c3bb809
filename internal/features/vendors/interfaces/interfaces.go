package vendors_interfaces

// VendorPublishListener is notified after a vendor is saved with the
// publish status. It can fire more than once for the same vendor.
type VendorPublishListener interface {
	OnVendorPublished(vendorID int64, authorID int64)
}

// VendorDeletionListener runs after the vendor row is gone. Failures
// are the listener's own concern and never undo the deletion.
type VendorDeletionListener interface {
	OnVendorDeleted(vendorID int64)
}

type AuditLogWriter interface {
	WriteAuditLog(message string, userID *int64, vendorID *int64)
}
