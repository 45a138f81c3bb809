package memberships_controllers

import (
	memberships_services "vendors-backend/internal/features/memberships/services"
)

var membershipController = &MembershipController{
	memberships_services.GetMembershipService(),
	memberships_services.GetAuthorizationService(),
}

func GetMembershipController() *MembershipController {
	return membershipController
}
