package memberships_testing

import (
	memberships_enums "vendors-backend/internal/features/memberships/enums"
	memberships_models "vendors-backend/internal/features/memberships/models"
	memberships_repositories "vendors-backend/internal/features/memberships/repositories"
	users_dto "vendors-backend/internal/features/users/dto"
	users_enums "vendors-backend/internal/features/users/enums"
	users_testing "vendors-backend/internal/features/users/testing"
)

// AddMember inserts a membership without any authorization or
// invariant checks.
func AddMember(vendorID, userID int64, role memberships_enums.VendorRole) {
	err := memberships_repositories.GetMembershipRepository().Insert(
		&memberships_models.VendorMembership{
			VendorID: vendorID,
			UserID:   userID,
			Role:     role,
		},
	)
	if err != nil {
		panic(err)
	}
}

// CreateTestMember creates a regular user holding role on the vendor.
func CreateTestMember(vendorID int64, role memberships_enums.VendorRole) *users_dto.SignInResponseDTO {
	user := users_testing.CreateTestUser(users_enums.UserRoleMember)
	AddMember(vendorID, user.UserID, role)

	return user
}
