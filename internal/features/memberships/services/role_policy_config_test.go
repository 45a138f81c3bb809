package memberships_services

import (
	"testing"

	memberships_dto "vendors-backend/internal/features/memberships/dto"
	memberships_enums "vendors-backend/internal/features/memberships/enums"
	memberships_roles "vendors-backend/internal/features/memberships/roles"
	users_enums "vendors-backend/internal/features/users/enums"
	users_testing "vendors-backend/internal/features/users/testing"
	vendors_enums "vendors-backend/internal/features/vendors/enums"
	vendors_testing "vendors-backend/internal/features/vendors/testing"
	errors_utils "vendors-backend/internal/util/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_AddMember_WithRoleFromCatalogOverride_IsAccepted(t *testing.T) {
	ConfigureRolePolicy(memberships_roles.WithExtraRoles([]string{"auditor"}))
	t.Cleanup(func() { ConfigureRolePolicy() })

	service := GetMembershipService()
	owner := users_testing.CreateTestUser(users_enums.UserRoleMember)
	vendor := vendors_testing.CreateTestVendor(owner.UserID, vendors_enums.VendorStatusPublish)
	auditor := users_testing.CreateTestUser(users_enums.UserRoleMember)

	member, err := service.AddMember(vendor.ID, &memberships_dto.AddMemberRequestDTO{
		Role:  "auditor",
		Email: auditor.Email,
	}, owner.UserID)
	require.NoError(t, err)
	assert.Equal(t, memberships_enums.VendorRole("auditor"), member.Role)

	roles := service.ListRoles()
	assert.Equal(t, memberships_enums.VendorRole("auditor"), roles.Items[len(roles.Items)-1].Role)

	allowed, err := GetAuthorizationService().UserCan(auditor.UserID, vendor.ID, memberships_enums.CapabilityEditBasic)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func Test_ConfigureRolePolicy_WithoutOptions_RestoresDefaultCatalog(t *testing.T) {
	ConfigureRolePolicy(memberships_roles.WithExtraRoles([]string{"auditor"}))
	ConfigureRolePolicy()

	service := GetMembershipService()
	owner := users_testing.CreateTestUser(users_enums.UserRoleMember)
	vendor := vendors_testing.CreateTestVendor(owner.UserID, vendors_enums.VendorStatusPublish)
	auditor := users_testing.CreateTestUser(users_enums.UserRoleMember)

	_, err := service.AddMember(vendor.ID, &memberships_dto.AddMemberRequestDTO{
		Role:  "auditor",
		Email: auditor.Email,
	}, owner.UserID)
	assert.True(t, errors_utils.IsKind(err, errors_utils.KindValidation), "got %v", err)
	assert.Equal(t, memberships_roles.DefaultRoles(), GetRolePolicy().ListRoles())
}
