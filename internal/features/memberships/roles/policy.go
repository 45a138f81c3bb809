package memberships_roles

import (
	"strings"

	memberships_enums "vendors-backend/internal/features/memberships/enums"
)

type CapabilityMatrix map[memberships_enums.VendorRole]map[memberships_enums.Capability]bool

// RoleCatalogOverride receives a copy of the default catalog and returns
// the catalog to use.
type RoleCatalogOverride func(defaults []memberships_enums.VendorRole) []memberships_enums.VendorRole

// CapabilityMatrixOverride receives a copy of the default matrix and
// returns the matrix to use.
type CapabilityMatrixOverride func(defaults CapabilityMatrix) CapabilityMatrix

// RolePolicy answers which roles exist and what each role may do. The
// overrides are evaluated on every call so the embedding application can
// back them with live configuration.
type RolePolicy struct {
	catalogOverride RoleCatalogOverride
	matrixOverride  CapabilityMatrixOverride
}

type Option func(*RolePolicy)

func WithRoleCatalogOverride(override RoleCatalogOverride) Option {
	return func(p *RolePolicy) {
		p.catalogOverride = override
	}
}

func WithCapabilityMatrixOverride(override CapabilityMatrixOverride) Option {
	return func(p *RolePolicy) {
		p.matrixOverride = override
	}
}

// WithExtraRoles appends roles to the default catalog through the
// catalog override.
func WithExtraRoles(extraRoles []string) Option {
	return WithRoleCatalogOverride(func(defaults []memberships_enums.VendorRole) []memberships_enums.VendorRole {
		for _, role := range extraRoles {
			defaults = append(defaults, memberships_enums.VendorRole(role))
		}

		return defaults
	})
}

func NewRolePolicy(options ...Option) *RolePolicy {
	policy := &RolePolicy{}
	for _, option := range options {
		option(policy)
	}

	return policy
}

func DefaultRoles() []memberships_enums.VendorRole {
	return []memberships_enums.VendorRole{
		memberships_enums.VendorRoleOwner,
		memberships_enums.VendorRoleManager,
		memberships_enums.VendorRoleEditor,
		memberships_enums.VendorRoleViewer,
	}
}

func DefaultCapabilityMatrix() CapabilityMatrix {
	return CapabilityMatrix{
		memberships_enums.VendorRoleOwner: {
			memberships_enums.CapabilityManageMembers: true,
			memberships_enums.CapabilityEditBasic:     true,
			memberships_enums.CapabilityDeleteVendor:  true,
		},
		memberships_enums.VendorRoleManager: {
			memberships_enums.CapabilityManageMembers: true,
			memberships_enums.CapabilityEditBasic:     true,
			memberships_enums.CapabilityDeleteVendor:  false,
		},
		memberships_enums.VendorRoleEditor: {
			memberships_enums.CapabilityManageMembers: false,
			memberships_enums.CapabilityEditBasic:     true,
			memberships_enums.CapabilityDeleteVendor:  false,
		},
		memberships_enums.VendorRoleViewer: {
			memberships_enums.CapabilityManageMembers: false,
			memberships_enums.CapabilityEditBasic:     false,
			memberships_enums.CapabilityDeleteVendor:  false,
		},
	}
}

// ListRoles returns the effective catalog in priority order. Blank and
// duplicate names from an override are dropped; an override that leaves
// nothing falls back to the defaults.
func (p *RolePolicy) ListRoles() []memberships_enums.VendorRole {
	if p.catalogOverride == nil {
		return DefaultRoles()
	}

	overridden := p.catalogOverride(DefaultRoles())

	roles := make([]memberships_enums.VendorRole, 0, len(overridden))
	seen := make(map[memberships_enums.VendorRole]bool, len(overridden))

	for _, role := range overridden {
		role = memberships_enums.VendorRole(strings.TrimSpace(string(role)))
		if role == "" || len(role) > memberships_enums.MaxVendorRoleLength || seen[role] {
			continue
		}

		seen[role] = true
		roles = append(roles, role)
	}

	if len(roles) == 0 {
		return DefaultRoles()
	}

	return roles
}

func (p *RolePolicy) IsValidRole(role memberships_enums.VendorRole) bool {
	if role == "" {
		return false
	}

	for _, candidate := range p.ListRoles() {
		if candidate == role {
			return true
		}
	}

	return false
}

// CapabilitiesFor returns every known capability for role. Unknown roles
// get an all-false set.
func (p *RolePolicy) CapabilitiesFor(
	role memberships_enums.VendorRole,
) map[memberships_enums.Capability]bool {
	matrix := p.matrix()

	capabilities := make(map[memberships_enums.Capability]bool, len(memberships_enums.AllCapabilities()))
	for _, capability := range memberships_enums.AllCapabilities() {
		capabilities[capability] = matrix[role][capability]
	}

	return capabilities
}

func (p *RolePolicy) Allows(
	role memberships_enums.VendorRole,
	capability memberships_enums.Capability,
) bool {
	if role == "" || !capability.IsValid() {
		return false
	}

	return p.matrix()[role][capability]
}

func (p *RolePolicy) matrix() CapabilityMatrix {
	if p.matrixOverride == nil {
		return DefaultCapabilityMatrix()
	}

	matrix := p.matrixOverride(DefaultCapabilityMatrix())
	if matrix == nil {
		return CapabilityMatrix{}
	}

	return matrix
}
