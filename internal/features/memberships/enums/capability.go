package memberships_enums

type Capability string

const (
	CapabilityManageMembers Capability = "can_manage_members"
	CapabilityEditBasic     Capability = "can_edit_basic"
	CapabilityDeleteVendor  Capability = "can_delete_vendor"
)

func (c Capability) IsValid() bool {
	switch c {
	case CapabilityManageMembers, CapabilityEditBasic, CapabilityDeleteVendor:
		return true
	default:
		return false
	}
}

func AllCapabilities() []Capability {
	return []Capability{
		CapabilityManageMembers,
		CapabilityEditBasic,
		CapabilityDeleteVendor,
	}
}
