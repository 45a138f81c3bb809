package memberships_enums

type VendorRole string

const (
	VendorRoleOwner   VendorRole = "owner"
	VendorRoleManager VendorRole = "manager"
	VendorRoleEditor  VendorRole = "editor"
	VendorRoleViewer  VendorRole = "viewer"
)

// MaxVendorRoleLength matches the width of the role column.
const MaxVendorRoleLength = 32
