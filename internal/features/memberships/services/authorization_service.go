package memberships_services

import (
	"log/slog"

	memberships_enums "vendors-backend/internal/features/memberships/enums"
	memberships_interfaces "vendors-backend/internal/features/memberships/interfaces"
	memberships_repositories "vendors-backend/internal/features/memberships/repositories"
	memberships_roles "vendors-backend/internal/features/memberships/roles"
	errors_utils "vendors-backend/internal/util/errors"
	metrics_utils "vendors-backend/internal/util/metrics"
)

// AuthorizationService is the single place that decides whether a user
// may act on a vendor. Every decision reads the store; nothing is cached.
type AuthorizationService struct {
	membershipRepository *memberships_repositories.MembershipRepository
	rolePolicy           *memberships_roles.RolePolicy
	adminChecker         memberships_interfaces.AdminChecker
	metrics              *metrics_utils.Metrics
	logger               *slog.Logger
}

// UserCan reports whether the user holds capability on the vendor.
// Administrators may do anything. Lookup failures deny and are returned
// so the caller can report them.
func (s *AuthorizationService) UserCan(
	userID int64,
	vendorID int64,
	capability memberships_enums.Capability,
) (bool, error) {
	allowed, err := s.userCan(userID, vendorID, capability)
	s.metrics.RecordAuthorization(string(capability), allowed)

	return allowed, err
}

func (s *AuthorizationService) userCan(
	userID int64,
	vendorID int64,
	capability memberships_enums.Capability,
) (bool, error) {
	if userID <= 0 || vendorID <= 0 || !capability.IsValid() {
		return false, nil
	}

	isAdmin, err := s.adminChecker.IsAdmin(userID)
	if err != nil {
		return false, errors_utils.DependencyUnavailable("Failed to look up user", err)
	}

	if isAdmin {
		return true, nil
	}

	role, err := s.membershipRepository.GetRole(vendorID, userID)
	if err != nil {
		return false, errors_utils.DependencyUnavailable("Failed to look up membership", err)
	}

	if role == nil {
		return false, nil
	}

	return s.rolePolicy.Allows(*role, capability), nil
}

// GetRole returns nil for anonymous callers and non-members.
func (s *AuthorizationService) GetRole(
	vendorID int64,
	userID int64,
) (*memberships_enums.VendorRole, error) {
	if vendorID <= 0 || userID <= 0 {
		return nil, nil
	}

	role, err := s.membershipRepository.GetRole(vendorID, userID)
	if err != nil {
		return nil, errors_utils.DependencyUnavailable("Failed to look up membership", err)
	}

	return role, nil
}

func (s *AuthorizationService) IsAdmin(userID int64) (bool, error) {
	if userID <= 0 {
		return false, nil
	}

	isAdmin, err := s.adminChecker.IsAdmin(userID)
	if err != nil {
		return false, errors_utils.DependencyUnavailable("Failed to look up user", err)
	}

	return isAdmin, nil
}

func (s *AuthorizationService) AuthorizeCreateVendor(callerID int64) error {
	isAdmin, err := s.IsAdmin(callerID)
	if err != nil {
		return err
	}

	if !isAdmin {
		return errors_utils.Forbidden("Only administrators can create vendors")
	}

	return nil
}

func (s *AuthorizationService) AuthorizeEditVendor(callerID, vendorID int64) error {
	return s.requireCapability(
		callerID,
		vendorID,
		memberships_enums.CapabilityEditBasic,
		"You do not have permission to edit this vendor",
	)
}

func (s *AuthorizationService) AuthorizeDeleteVendor(callerID, vendorID int64) error {
	return s.requireCapability(
		callerID,
		vendorID,
		memberships_enums.CapabilityDeleteVendor,
		"You do not have permission to delete this vendor",
	)
}

func (s *AuthorizationService) AuthorizeListMembers(callerID, vendorID int64) error {
	return s.requireCapability(
		callerID,
		vendorID,
		memberships_enums.CapabilityManageMembers,
		"You do not have permission to manage members of this vendor",
	)
}

// AuthorizeAddMember additionally requires the caller to be an owner to
// hand out the owner role.
func (s *AuthorizationService) AuthorizeAddMember(
	callerID int64,
	vendorID int64,
	role memberships_enums.VendorRole,
) error {
	isAdmin, err := s.IsAdmin(callerID)
	if err != nil || isAdmin {
		return err
	}

	if err := s.AuthorizeListMembers(callerID, vendorID); err != nil {
		return err
	}

	if role == memberships_enums.VendorRoleOwner {
		isOwner, err := s.isOwner(callerID, vendorID)
		if err != nil {
			return err
		}

		if !isOwner {
			return errors_utils.Forbidden("Only an owner can assign the owner role")
		}
	}

	return nil
}

// AuthorizeChangeRole lets only owners move a member into or out of the
// owner role. Other changes need can_manage_members.
func (s *AuthorizationService) AuthorizeChangeRole(
	callerID int64,
	vendorID int64,
	targetUserID int64,
	newRole memberships_enums.VendorRole,
) error {
	if callerID <= 0 {
		return errors_utils.Forbidden("Authentication is required")
	}

	isAdmin, err := s.IsAdmin(callerID)
	if err != nil || isAdmin {
		return err
	}

	targetRole, err := s.GetRole(vendorID, targetUserID)
	if err != nil {
		return err
	}

	touchesOwnership := newRole == memberships_enums.VendorRoleOwner ||
		(targetRole != nil && *targetRole == memberships_enums.VendorRoleOwner)

	if touchesOwnership {
		isOwner, err := s.isOwner(callerID, vendorID)
		if err != nil {
			return err
		}

		if !isOwner {
			return errors_utils.Forbidden("Only an owner can change ownership roles")
		}

		return nil
	}

	return s.AuthorizeListMembers(callerID, vendorID)
}

// AuthorizeRemoveMember reports a target without membership as not
// found before checking capabilities.
func (s *AuthorizationService) AuthorizeRemoveMember(
	callerID int64,
	vendorID int64,
	targetUserID int64,
) error {
	if callerID <= 0 {
		return errors_utils.Forbidden("Authentication is required")
	}

	isAdmin, err := s.IsAdmin(callerID)
	if err != nil || isAdmin {
		return err
	}

	targetRole, err := s.GetRole(vendorID, targetUserID)
	if err != nil {
		return err
	}

	if targetRole == nil {
		return errors_utils.NotFound("Membership not found")
	}

	if *targetRole == memberships_enums.VendorRoleOwner {
		isOwner, err := s.isOwner(callerID, vendorID)
		if err != nil {
			return err
		}

		if !isOwner {
			return errors_utils.Forbidden("Only an owner can remove an owner")
		}
	}

	return s.AuthorizeListMembers(callerID, vendorID)
}

func (s *AuthorizationService) requireCapability(
	callerID int64,
	vendorID int64,
	capability memberships_enums.Capability,
	message string,
) error {
	if callerID <= 0 {
		return errors_utils.Forbidden("Authentication is required")
	}

	allowed, err := s.UserCan(callerID, vendorID, capability)
	if err != nil {
		s.logger.Error(
			"authorization lookup failed",
			"userId", callerID,
			"vendorId", vendorID,
			"capability", capability,
			"error", err,
		)
		return err
	}

	if !allowed {
		return errors_utils.Forbidden(message)
	}

	return nil
}

func (s *AuthorizationService) isOwner(callerID, vendorID int64) (bool, error) {
	role, err := s.GetRole(vendorID, callerID)
	if err != nil {
		return false, err
	}

	return role != nil && *role == memberships_enums.VendorRoleOwner, nil
}
