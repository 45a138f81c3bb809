package memberships_services

import (
	"sync"

	memberships_repositories "vendors-backend/internal/features/memberships/repositories"
	memberships_roles "vendors-backend/internal/features/memberships/roles"
	users_services "vendors-backend/internal/features/users/services"
	vendors_repositories "vendors-backend/internal/features/vendors/repositories"
	vendors_services "vendors-backend/internal/features/vendors/services"
	"vendors-backend/internal/util/logger"
	metrics_utils "vendors-backend/internal/util/metrics"
)

var rolePolicy = memberships_roles.NewRolePolicy()

var authorizationService = &AuthorizationService{
	memberships_repositories.GetMembershipRepository(),
	rolePolicy,
	users_services.GetUserService(),
	metrics_utils.GetMetrics(),
	logger.GetLogger(),
}

var membershipService = &MembershipService{
	memberships_repositories.GetMembershipRepository(),
	vendors_repositories.GetVendorRepository(),
	users_services.GetUserService(),
	rolePolicy,
	metrics_utils.GetMetrics(),
	logger.GetLogger(),
	nil,
}

// ConfigureRolePolicy replaces the policy shared by the authorization
// and membership services. Call it before the router starts; calling it
// without options restores the defaults.
func ConfigureRolePolicy(options ...memberships_roles.Option) {
	*rolePolicy = *memberships_roles.NewRolePolicy(options...)
}

var setupOnce sync.Once

// SetupDependencies subscribes the membership service to vendor
// lifecycle events.
func SetupDependencies() {
	setupOnce.Do(func() {
		vendorService := vendors_services.GetVendorService()
		vendorService.AddVendorPublishListener(membershipService)
		vendorService.AddVendorDeletionListener(membershipService)
	})
}

func GetRolePolicy() *memberships_roles.RolePolicy {
	return rolePolicy
}

func GetAuthorizationService() *AuthorizationService {
	return authorizationService
}

func GetMembershipService() *MembershipService {
	return membershipService
}
