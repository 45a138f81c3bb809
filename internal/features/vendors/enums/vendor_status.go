package vendors_enums

type VendorStatus string

const (
	VendorStatusPublish VendorStatus = "publish"
	VendorStatusDraft   VendorStatus = "draft"
	VendorStatusPending VendorStatus = "pending"
)

func (s VendorStatus) IsValid() bool {
	switch s {
	case VendorStatusPublish, VendorStatusDraft, VendorStatusPending:
		return true
	default:
		return false
	}
}

// ParseVendorStatus falls back to publish for anything unrecognized.
func ParseVendorStatus(value string) VendorStatus {
	status := VendorStatus(value)
	if !status.IsValid() {
		return VendorStatusPublish
	}

	return status
}
